package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Store   StoreConfig   `yaml:"store"`
	Graph   GraphConfig   `yaml:"graph"`
	Logging LoggingConfig `yaml:"logging"`
	Batch   BatchConfig   `yaml:"batch"`
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host              string        `yaml:"host"`
	Port              int           `yaml:"port"`
	ReadTimeout       time.Duration `yaml:"readTimeout"`
	WriteTimeout      time.Duration `yaml:"writeTimeout"`
	IdleTimeout       time.Duration `yaml:"idleTimeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdownTimeout"`
	MetricsEnabled    bool          `yaml:"metricsEnabled"`
	AllowedOriginsCSV string        `yaml:"allowedOrigins"`
}

// AllowedOrigins splits the comma separated origin list, dropping blanks.
func (c HTTPConfig) AllowedOrigins() []string {
	if c.AllowedOriginsCSV == "" {
		return nil
	}
	var origins []string
	for _, part := range strings.Split(c.AllowedOriginsCSV, ",") {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}

// StoreConfig selects where snapshots are persisted.
type StoreConfig struct {
	Backend    string `yaml:"backend"` // file|sqlite|neo4j
	Path       string `yaml:"path"`
	SQLitePath string `yaml:"sqlitePath"`
}

// GraphConfig describes connectivity to Neo4j when it is the store backend.
type GraphConfig struct {
	URI            string `yaml:"uri"`
	Database       string `yaml:"database"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	MaxConnections int    `yaml:"maxConnections"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string `yaml:"level"`
	Format        string `yaml:"format"` // text|json
	IncludeCaller bool   `yaml:"includeCaller"`
}

// BatchConfig sizes the worker pool used for batch path queries.
type BatchConfig struct {
	Workers  int `yaml:"workers"`
	MaxPairs int `yaml:"maxPairs"`
}

// EnvConfigFile names the variable consulted when no config path is given.
const EnvConfigFile = "SOCIALGRAPH_CONFIG"

const (
	defaultHost             = "0.0.0.0"
	defaultPort             = 8080
	defaultReadTimeout      = 10 * time.Second
	defaultWriteTimeout     = 15 * time.Second
	defaultIdleTimeout      = 60 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultStoreBackend     = "file"
	defaultStorePath        = "social_graph.json"
	defaultSQLitePath       = "social_graph.db"
	defaultLoggingLevel     = "info"
	defaultLoggingFormat    = "text"
	defaultGraphMaxSessions = 10
	defaultBatchWorkers     = 4
	defaultBatchMaxPairs    = 1000
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Host:            defaultHost,
			Port:            defaultPort,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Store: StoreConfig{
			Backend:    defaultStoreBackend,
			Path:       defaultStorePath,
			SQLitePath: defaultSQLitePath,
		},
		Graph: GraphConfig{
			MaxConnections: defaultGraphMaxSessions,
		},
		Logging: LoggingConfig{
			Level:  defaultLoggingLevel,
			Format: defaultLoggingFormat,
		},
		Batch: BatchConfig{
			Workers:  defaultBatchWorkers,
			MaxPairs: defaultBatchMaxPairs,
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (or $SOCIALGRAPH_CONFIG when path is empty), then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := mergeFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case "file":
		if c.Store.Path == "" {
			return errors.New("store.path is required for the file backend")
		}
	case "sqlite":
		if c.Store.SQLitePath == "" {
			return errors.New("store.sqlitePath is required for the sqlite backend")
		}
	case "neo4j":
		if c.Graph.URI == "" {
			return errors.New("graph.uri is required for the neo4j backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("port %d is out of range", c.HTTP.Port)
	}
	if c.Batch.Workers <= 0 {
		return fmt.Errorf("batch workers must be positive, got %d", c.Batch.Workers)
	}
	return nil
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config file %s not found", path)
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.HTTP.Host = valueOrDefault("SERVER_HOST", cfg.HTTP.Host)
	cfg.HTTP.AllowedOriginsCSV = valueOrDefault("SERVER_ALLOWED_ORIGINS", cfg.HTTP.AllowedOriginsCSV)
	cfg.HTTP.MetricsEnabled = parseBoolWithDefault("SERVER_METRICS_ENABLED", cfg.HTTP.MetricsEnabled)

	port, err := parsePort("SERVER_PORT", cfg.HTTP.Port)
	if err != nil {
		return err
	}
	cfg.HTTP.Port = port

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"SERVER_READ_TIMEOUT", &cfg.HTTP.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout},
		{"SERVER_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout},
	}
	for _, d := range durations {
		if v := os.Getenv(d.key); v != "" {
			parsed, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", d.key, err)
			}
			*d.dst = parsed
		}
	}

	cfg.Store.Backend = valueOrDefault("STORE_BACKEND", cfg.Store.Backend)
	cfg.Store.Path = valueOrDefault("STORE_PATH", cfg.Store.Path)
	cfg.Store.SQLitePath = valueOrDefault("STORE_SQLITE_PATH", cfg.Store.SQLitePath)

	cfg.Graph.URI = valueOrDefault("GRAPH_URI", cfg.Graph.URI)
	cfg.Graph.Database = valueOrDefault("GRAPH_DATABASE", cfg.Graph.Database)
	cfg.Graph.Username = valueOrDefault("GRAPH_USERNAME", cfg.Graph.Username)
	cfg.Graph.Password = valueOrDefault("GRAPH_PASSWORD", cfg.Graph.Password)
	cfg.Graph.MaxConnections = parseIntWithDefault("GRAPH_MAX_CONNECTIONS", cfg.Graph.MaxConnections)

	cfg.Logging.Level = valueOrDefault("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = valueOrDefault("LOG_FORMAT", cfg.Logging.Format)
	cfg.Logging.IncludeCaller = parseBoolWithDefault("LOG_INCLUDE_CALLER", cfg.Logging.IncludeCaller)

	cfg.Batch.Workers = parseIntWithDefault("BATCH_WORKERS", cfg.Batch.Workers)
	cfg.Batch.MaxPairs = parseIntWithDefault("BATCH_MAX_PAIRS", cfg.Batch.MaxPairs)
	return nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}
