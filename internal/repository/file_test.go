package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/socialgraph/internal/domain"
)

func TestFileRepository_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "graph.json")
	repo := NewFileRepository(path)
	ctx := context.Background()

	want := domain.DefaultSnapshot()
	want.Nodes = append(want.Nodes, "Loner")
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestFileRepository_WritesSnapshotFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	repo := NewFileRepository(path)

	require.NoError(t, repo.Save(context.Background(), domain.Snapshot{
		Nodes: []string{"a", "b"},
		Edges: []domain.Edge{{Source: "a", Target: "b", Weight: 4}},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes":["a","b"],"edges":[{"source":"a","target":"b","weight":4}]}`, string(data))
}

func TestFileRepository_EmptyGraphWritesLists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, NewFileRepository(path).Save(context.Background(), domain.Snapshot{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes":[],"edges":[]}`, string(data))
}

func TestFileRepository_Missing(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "absent.json"))
	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestFileRepository_Malformed(t *testing.T) {
	cases := map[string]string{
		"invalid json":  `{"nodes": [`,
		"missing edges": `{"nodes": ["a"]}`,
		"wrong type":    `{"nodes": "a", "edges": []}`,
		"float weight":  `{"nodes": [], "edges": [{"source": "a", "target": "b", "weight": 1.5}]}`,
		"not an object": `[1, 2, 3]`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "graph.json")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

			_, err := NewFileRepository(path).Load(context.Background())
			assert.ErrorIs(t, err, ErrMalformedSnapshot)
		})
	}
}
