package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/vanshika/socialgraph/internal/domain"
	"github.com/vanshika/socialgraph/internal/graph"
)

// Neo4jRepository stores the snapshot as (:SocialUser)-[:CONNECTED_TO]->(:SocialUser)
// in a Neo4j database. Each connection is stored once; direction carries no meaning.
type Neo4jRepository struct {
	client graph.Client
	nowFn  func() time.Time
}

// NewNeo4jRepository instantiates a repository backed by the supplied graph client.
func NewNeo4jRepository(client graph.Client) *Neo4jRepository {
	return &Neo4jRepository{client: client, nowFn: time.Now}
}

// WithClock overrides the time provider used to stamp saves.
func (r *Neo4jRepository) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		r.nowFn = nowFn
	}
}

// Name identifies the backend in logs.
func (r *Neo4jRepository) Name() string { return BackendNeo4j }

// Load reads the saved users and connections.
func (r *Neo4jRepository) Load(ctx context.Context) (domain.Snapshot, error) {
	meta, err := r.client.ExecuteRead(ctx, loadMetaCypher, nil)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read snapshot meta: %w", err)
	}
	if len(meta.Records) == 0 {
		return domain.Snapshot{}, fmt.Errorf("neo4j: %w", ErrSnapshotNotFound)
	}

	snapshot := domain.Snapshot{Nodes: []string{}, Edges: []domain.Edge{}}

	users, err := r.client.ExecuteRead(ctx, loadUsersCypher, nil)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read users: %w", err)
	}
	for i, rec := range users.Records {
		name, ok := toString(rec["name"])
		if !ok {
			return domain.Snapshot{}, malformed("user %d has no name", i)
		}
		snapshot.Nodes = append(snapshot.Nodes, name)
	}

	conns, err := r.client.ExecuteRead(ctx, loadConnectionsCypher, nil)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read connections: %w", err)
	}
	for i, rec := range conns.Records {
		source, okSource := toString(rec["source"])
		target, okTarget := toString(rec["target"])
		weight, okWeight := toInt(rec["weight"])
		if !okSource || !okTarget || !okWeight {
			return domain.Snapshot{}, malformed("connection %d: %v", i, rec)
		}
		snapshot.Edges = append(snapshot.Edges, domain.Edge{Source: source, Target: target, Weight: weight})
	}
	return snapshot, nil
}

// Save replaces the stored graph inside one write transaction.
func (r *Neo4jRepository) Save(ctx context.Context, snapshot domain.Snapshot) error {
	users := make([]map[string]any, len(snapshot.Nodes))
	for i, name := range snapshot.Nodes {
		users[i] = map[string]any{"name": name, "position": i}
	}
	conns := make([]map[string]any, len(snapshot.Edges))
	for i, e := range snapshot.Edges {
		conns[i] = map[string]any{
			"source":   e.Source,
			"target":   e.Target,
			"weight":   e.Weight,
			"position": i,
		}
	}

	statements := []graph.Statement{
		{Query: clearSnapshotCypher},
		{Query: createUsersCypher, Params: map[string]any{"users": users}},
		{Query: createConnectionsCypher, Params: map[string]any{"connections": conns}},
		{Query: markSavedCypher, Params: map[string]any{"savedAt": r.nowFn().UTC().Format(time.RFC3339Nano)}},
	}
	if err := r.client.ExecuteWriteBatch(ctx, statements); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Probe verifies database connectivity.
func (r *Neo4jRepository) Probe(ctx context.Context) error {
	return r.client.VerifyConnectivity(ctx)
}

// Close releases the driver.
func (r *Neo4jRepository) Close(ctx context.Context) error {
	return r.client.Close(ctx)
}

const loadMetaCypher = `
MATCH (m:SocialGraphMeta)
RETURN m.savedAt AS savedAt
LIMIT 1
`

const loadUsersCypher = `
MATCH (u:SocialUser)
RETURN u.name AS name
ORDER BY u.position
`

const loadConnectionsCypher = `
MATCH (a:SocialUser)-[r:CONNECTED_TO]->(b:SocialUser)
RETURN a.name AS source, b.name AS target, r.weight AS weight
ORDER BY r.position
`

const clearSnapshotCypher = `
MATCH (n)
WHERE n:SocialUser OR n:SocialGraphMeta
DETACH DELETE n
`

const createUsersCypher = `
UNWIND $users AS user
CREATE (:SocialUser {name: user.name, position: user.position})
`

const createConnectionsCypher = `
UNWIND $connections AS c
MATCH (a:SocialUser {name: c.source})
MATCH (b:SocialUser {name: c.target})
CREATE (a)-[:CONNECTED_TO {weight: c.weight, position: c.position}]->(b)
`

const markSavedCypher = `
CREATE (:SocialGraphMeta {savedAt: $savedAt})
`
