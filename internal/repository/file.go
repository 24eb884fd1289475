package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vanshika/socialgraph/internal/domain"
)

// FileRepository stores the snapshot as a JSON document on disk.
type FileRepository struct {
	path string
}

// NewFileRepository returns a repository reading and writing path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// fileSnapshot uses pointers so missing keys can be told apart from empty lists.
type fileSnapshot struct {
	Nodes *[]string      `json:"nodes"`
	Edges *[]domain.Edge `json:"edges"`
}

// Name identifies the backend in logs.
func (r *FileRepository) Name() string { return BackendFile + ":" + r.path }

// Load reads and decodes the snapshot file.
func (r *FileRepository) Load(ctx context.Context) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}

	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Snapshot{}, fmt.Errorf("%s: %w", r.path, ErrSnapshotNotFound)
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read %s: %w", r.path, err)
	}

	var raw fileSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.Snapshot{}, malformed("%s: %v", r.path, err)
	}
	if raw.Nodes == nil || raw.Edges == nil {
		return domain.Snapshot{}, malformed("%s: nodes and edges are required", r.path)
	}
	return domain.Snapshot{Nodes: *raw.Nodes, Edges: *raw.Edges}, nil
}

// Save writes the snapshot next to the target and renames it into place.
func (r *FileRepository) Save(ctx context.Context, snapshot domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(normalize(snapshot)); err != nil {
		tmp.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}

// Probe reports whether the snapshot directory is reachable.
func (r *FileRepository) Probe(context.Context) error {
	_, err := os.Stat(filepath.Dir(r.path))
	return err
}

// Close is a no-op for files.
func (r *FileRepository) Close(context.Context) error { return nil }

func normalize(s domain.Snapshot) domain.Snapshot {
	if s.Nodes == nil {
		s.Nodes = []string{}
	}
	if s.Edges == nil {
		s.Edges = []domain.Edge{}
	}
	return s
}
