package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// NewNeo4jClient establishes a Bolt connection using the official Neo4j driver
// and verifies it before returning.
func NewNeo4jClient(ctx context.Context, opts Options) (Client, error) {
	if opts.URI == "" {
		return nil, ErrMissingURI
	}

	auth := neo4j.NoAuth()
	if opts.Username != "" {
		auth = neo4j.BasicAuth(opts.Username, opts.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(opts.URI, auth, func(c *neo4j.Config) {
		if opts.MaxConnections > 0 {
			c.MaxConnectionPoolSize = opts.MaxConnections
		}
	})
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify graph connectivity: %w", err)
	}

	return &boltClient{
		driver:   driver,
		database: opts.Database,
	}, nil
}

type boltClient struct {
	driver   neo4j.DriverWithContext
	database string
}

func (c *boltClient) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.database,
		AccessMode:   mode,
	})
}

// ExecuteRead runs cypher in a managed read transaction, so transient
// cluster errors are retried by the driver.
func (c *boltClient) ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error) {
	session := c.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		return toResult(records), nil
	})
	if err != nil {
		return Result{}, err
	}
	return out.(Result), nil
}

func (c *boltClient) ExecuteWriteBatch(ctx context.Context, statements []Statement) error {
	session := c.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for i, stmt := range statements {
			res, err := tx.Run(ctx, stmt.Query, stmt.Params)
			if err != nil {
				return nil, fmt.Errorf("statement %d: %w", i, err)
			}
			if _, err := res.Consume(ctx); err != nil {
				return nil, fmt.Errorf("statement %d: %w", i, err)
			}
		}
		return nil, nil
	})
	return err
}

func (c *boltClient) VerifyConnectivity(ctx context.Context) error {
	return c.driver.VerifyConnectivity(ctx)
}

func (c *boltClient) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

func toResult(records []*neo4j.Record) Result {
	out := Result{Records: make([]Record, 0, len(records))}
	for _, rec := range records {
		record := make(Record, len(rec.Keys))
		for i, key := range rec.Keys {
			record[key] = rec.Values[i]
		}
		out.Records = append(out.Records, record)
	}
	return out
}
