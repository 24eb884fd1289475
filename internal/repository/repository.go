// Package repository persists social graph snapshots. Three backends share
// one contract: a JSON file, a SQLite database and a Neo4j graph.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vanshika/socialgraph/internal/domain"
)

var (
	// ErrSnapshotNotFound indicates no snapshot has been saved yet.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrMalformedSnapshot indicates stored state that cannot be decoded.
	ErrMalformedSnapshot = errors.New("malformed snapshot")
)

// SnapshotRepository loads and saves the whole graph at once.
type SnapshotRepository interface {
	Load(ctx context.Context) (domain.Snapshot, error)
	Save(ctx context.Context, snapshot domain.Snapshot) error
	// Probe reports whether the backing store is reachable.
	Probe(ctx context.Context) error
	Close(ctx context.Context) error
	Name() string
}

// Backend names accepted by configuration.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendNeo4j  = "neo4j"
)

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedSnapshot, fmt.Sprintf(format, args...))
}

func toString(val any) (string, bool) {
	switch v := val.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	default:
		return "", false
	}
}

func toInt(val any) (int, bool) {
	switch v := val.(type) {
	case int64:
		return int(v), true
	case int:
		return v, true
	case int32:
		return int(v), true
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}
