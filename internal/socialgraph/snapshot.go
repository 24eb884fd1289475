package socialgraph

import (
	"fmt"

	"github.com/vanshika/socialgraph/internal/domain"
)

// FromSnapshot builds a graph from persisted state. Ids are normalized with
// NormalizeID; two distinct spellings of the same normalized id are rejected.
// Edge endpoints that are not listed in Nodes are added implicitly. Any
// invalid entry rejects the whole snapshot.
func FromSnapshot(s domain.Snapshot) (*Graph, error) {
	g := New()
	spelling := make(map[string]string)
	addNode := func(raw string) (string, error) {
		id, err := NormalizeID(raw)
		if err != nil {
			return "", err
		}
		if prev, ok := spelling[id]; ok && prev != raw {
			return "", fmt.Errorf("%q and %q: %w", prev, raw, ErrDuplicateID)
		}
		spelling[id] = raw
		if _, err := g.AddNode(id); err != nil {
			return "", err
		}
		return id, nil
	}

	for i, raw := range s.Nodes {
		if _, err := addNode(raw); err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
	}
	for i, e := range s.Edges {
		source, err := addNode(e.Source)
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		target, err := addNode(e.Target)
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		if err := g.AddEdge(source, target, e.Weight); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
	}
	return g, nil
}

// Seed returns the default ten-user graph.
func Seed() *Graph {
	g, err := FromSnapshot(domain.DefaultSnapshot())
	if err != nil {
		panic(fmt.Sprintf("default snapshot is invalid: %v", err))
	}
	return g
}

// Snapshot returns the persisted form of the graph.
func (g *Graph) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		Nodes: g.Nodes(),
		Edges: g.Edges(),
	}
}
