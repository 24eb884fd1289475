// Package graph wraps the Neo4j Bolt driver behind a small client contract so
// snapshot persistence can be exercised against an in-memory fake.
package graph

import (
	"context"
	"errors"
)

// Client defines the minimal contract the snapshot repository needs from a
// graph database.
type Client interface {
	ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error)
	// ExecuteWriteBatch runs every statement inside a single write transaction.
	ExecuteWriteBatch(ctx context.Context, statements []Statement) error
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Statement is one parameterized Cypher statement.
type Statement struct {
	Query  string
	Params map[string]any
}

// Result is a simplified representation of a query response.
type Result struct {
	Records []Record
}

// Record groups key-value pairs returned from the graph engine.
type Record map[string]any

// Options configures a graph client implementation.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// ErrMissingURI indicates the graph URI is not provided.
var ErrMissingURI = errors.New("graph URI is required")
