package repository

import (
	"context"
	"fmt"

	"github.com/vanshika/socialgraph/internal/config"
	"github.com/vanshika/socialgraph/internal/graph"
)

// Open builds the repository selected by cfg.Store.Backend.
func Open(ctx context.Context, cfg config.Config) (SnapshotRepository, error) {
	switch cfg.Store.Backend {
	case "", BackendFile:
		return NewFileRepository(cfg.Store.Path), nil
	case BackendSQLite:
		repo, err := OpenSQLite(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case BackendNeo4j:
		client, err := graph.NewNeo4jClient(ctx, graph.Options{
			URI:            cfg.Graph.URI,
			Database:       cfg.Graph.Database,
			Username:       cfg.Graph.Username,
			Password:       cfg.Graph.Password,
			MaxConnections: cfg.Graph.MaxConnections,
		})
		if err != nil {
			return nil, err
		}
		return NewNeo4jRepository(client), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
