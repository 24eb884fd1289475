package graph

import (
	"context"
	"sync"
)

// MemoryClient is an in-memory Client that records statements and replays
// canned read results. It backs repository tests without a running database.
type MemoryClient struct {
	mu           sync.Mutex
	batches      [][]Statement
	readCalls    []Statement
	readResults  []Result
	err          error
	connectivity error
	closed       bool
}

// NewMemoryClient instantiates an empty in-memory client.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{}
}

// WithError configures the client to return the provided error for subsequent calls.
func (m *MemoryClient) WithError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithConnectivityError forces VerifyConnectivity to return the supplied error.
func (m *MemoryClient) WithConnectivityError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectivity = err
	return m
}

// PushReadResult appends a result that will be returned on the next ExecuteRead call.
func (m *MemoryClient) PushReadResult(res Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readResults = append(m.readResults, res)
}

func (m *MemoryClient) ExecuteRead(_ context.Context, cypher string, params map[string]any) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return Result{}, m.err
	}

	m.readCalls = append(m.readCalls, Statement{Query: cypher, Params: cloneMap(params)})

	if len(m.readResults) == 0 {
		return Result{}, nil
	}

	res := m.readResults[0]
	m.readResults = m.readResults[1:]
	return res, nil
}

func (m *MemoryClient) ExecuteWriteBatch(_ context.Context, statements []Statement) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}

	batch := make([]Statement, len(statements))
	for i, stmt := range statements {
		batch[i] = Statement{Query: stmt.Query, Params: cloneMap(stmt.Params)}
	}
	m.batches = append(m.batches, batch)
	return nil
}

func (m *MemoryClient) VerifyConnectivity(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectivity
}

func (m *MemoryClient) Close(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// WriteBatches returns a snapshot of executed write transactions.
func (m *MemoryClient) WriteBatches() [][]Statement {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]Statement(nil), m.batches...)
}

// ReadCalls returns a snapshot of executed read queries.
func (m *MemoryClient) ReadCalls() []Statement {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Statement(nil), m.readCalls...)
}

// Closed reports whether Close has been called.
func (m *MemoryClient) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
