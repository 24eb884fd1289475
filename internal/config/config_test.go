package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvConfigFile, "SERVER_HOST", "SERVER_PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
		"SERVER_IDLE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT", "SERVER_ALLOWED_ORIGINS", "SERVER_METRICS_ENABLED",
		"STORE_BACKEND", "STORE_PATH", "STORE_SQLITE_PATH", "GRAPH_URI", "GRAPH_DATABASE",
		"GRAPH_USERNAME", "GRAPH_PASSWORD", "GRAPH_MAX_CONNECTIONS", "LOG_LEVEL", "LOG_FORMAT",
		"LOG_INCLUDE_CALLER", "BATCH_WORKERS", "BATCH_MAX_PAIRS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "file", cfg.Store.Backend)
	assert.Equal(t, "social_graph.json", cfg.Store.Path)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "socialgraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  port: 9000
  readTimeout: 3s
store:
  backend: sqlite
  sqlitePath: /tmp/graph.db
logging:
  level: debug
batch:
  workers: 8
`), 0o644))

	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.HTTP.Port)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, defaultWriteTimeout, cfg.HTTP.WriteTimeout)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "/tmp/graph.db", cfg.Store.SQLitePath)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 8, cfg.Batch.Workers)
}

func TestLoadConfigFileFromEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "socialgraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  path: custom.json\n"), 0o644))
	t.Setenv(EnvConfigFile, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "custom.json", cfg.Store.Path)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad port", env: map[string]string{"SERVER_PORT": "http"}},
		{name: "port out of range", env: map[string]string{"SERVER_PORT": "70000"}},
		{name: "bad duration", env: map[string]string{"SERVER_READ_TIMEOUT": "soon"}},
		{name: "unknown backend", env: map[string]string{"STORE_BACKEND": "redis"}},
		{name: "neo4j without uri", env: map[string]string{"STORE_BACKEND": "neo4j"}},
		{name: "no workers", env: map[string]string{"BATCH_WORKERS": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestAllowedOrigins(t *testing.T) {
	assert.Nil(t, HTTPConfig{}.AllowedOrigins())
	assert.Equal(t,
		[]string{"http://localhost:3000", "https://app.example"},
		HTTPConfig{AllowedOriginsCSV: " http://localhost:3000, ,https://app.example "}.AllowedOrigins())
}
