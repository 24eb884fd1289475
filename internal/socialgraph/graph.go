// Package socialgraph implements the in-memory weighted, undirected social
// graph and the queries run against it: Dijkstra shortest paths, the
// fundamental cycle basis, common-neighbor friend suggestion and degree
// centrality.
//
// A Graph is not safe for concurrent use. Callers that share one across
// goroutines must serialize writers against readers.
package socialgraph

import (
	"fmt"
	"sort"

	"github.com/vanshika/socialgraph/internal/domain"
)

// Graph owns the user set and the weighted connection set.
type Graph struct {
	// order keeps node insertion order so traversals are deterministic.
	order []string
	index map[string]int
	// adj[a][b] == adj[b][a] == weight of the connection a-b.
	adj   map[string]map[string]int
	edges int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		index: make(map[string]int),
		adj:   make(map[string]map[string]int),
	}
}

// AddNode inserts id if absent and reports whether it was created.
func (g *Graph) AddNode(id string) (bool, error) {
	if id == "" {
		return false, ErrEmptyID
	}
	if _, ok := g.adj[id]; ok {
		return false, nil
	}
	g.index[id] = len(g.order)
	g.order = append(g.order, id)
	g.adj[id] = make(map[string]int)
	return true, nil
}

// RemoveNode deletes id together with every connection incident to it.
func (g *Graph) RemoveNode(id string) error {
	nbrs, ok := g.adj[id]
	if !ok {
		return fmt.Errorf("remove %q: %w", id, ErrNodeNotFound)
	}
	for n := range nbrs {
		delete(g.adj[n], id)
		g.edges--
	}
	delete(g.adj, id)

	pos := g.index[id]
	delete(g.index, id)
	g.order = append(g.order[:pos], g.order[pos+1:]...)
	for i := pos; i < len(g.order); i++ {
		g.index[g.order[i]] = i
	}
	return nil
}

// AddEdge connects a and b with the given weight, overwriting any existing weight.
func (g *Graph) AddEdge(a, b string, weight int) error {
	if !g.HasNode(a) || !g.HasNode(b) {
		return fmt.Errorf("connect %q and %q: %w", a, b, ErrNodesMissing)
	}
	if a == b {
		return fmt.Errorf("connect %q: %w", a, ErrSelfConnection)
	}
	if weight < 0 || weight > MaxWeight {
		return fmt.Errorf("connect %q and %q with weight %d: %w", a, b, weight, ErrInvalidWeight)
	}
	if _, exists := g.adj[a][b]; !exists {
		g.edges++
	}
	g.adj[a][b] = weight
	g.adj[b][a] = weight
	return nil
}

// RemoveEdge disconnects a and b.
func (g *Graph) RemoveEdge(a, b string) error {
	if !g.HasEdge(a, b) {
		return fmt.Errorf("disconnect %q and %q: %w", a, b, ErrEdgeNotFound)
	}
	delete(g.adj[a], b)
	delete(g.adj[b], a)
	g.edges--
	return nil
}

// HasNode reports whether id is in the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.adj[id]
	return ok
}

// HasEdge reports whether a and b are directly connected.
func (g *Graph) HasEdge(a, b string) bool {
	_, ok := g.adj[a][b]
	return ok
}

// Weight returns the weight of the a-b connection.
func (g *Graph) Weight(a, b string) (int, bool) {
	w, ok := g.adj[a][b]
	return w, ok
}

// Neighbors returns the users directly connected to id, sorted by id.
func (g *Graph) Neighbors(id string) ([]string, error) {
	if !g.HasNode(id) {
		return nil, fmt.Errorf("neighbors of %q: %w", id, ErrNodeNotFound)
	}
	return g.sortedNeighbors(id), nil
}

// Degree returns the number of connections of id.
func (g *Graph) Degree(id string) (int, error) {
	nbrs, ok := g.adj[id]
	if !ok {
		return 0, fmt.Errorf("degree of %q: %w", id, ErrNodeNotFound)
	}
	return len(nbrs), nil
}

// Nodes returns every user in insertion order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Edges returns every connection once, ordered by the insertion position of
// its first endpoint and then by the id of the second.
func (g *Graph) Edges() []domain.Edge {
	out := make([]domain.Edge, 0, g.edges)
	for _, a := range g.order {
		for _, b := range g.sortedNeighbors(a) {
			if g.index[b] < g.index[a] {
				continue
			}
			out = append(out, domain.Edge{Source: a, Target: b, Weight: g.adj[a][b]})
		}
	}
	return out
}

// NodeCount returns |V|.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns |E|.
func (g *Graph) EdgeCount() int { return g.edges }

func (g *Graph) sortedNeighbors(id string) []string {
	nbrs := make([]string, 0, len(g.adj[id]))
	for n := range g.adj[id] {
		nbrs = append(nbrs, n)
	}
	sort.Strings(nbrs)
	return nbrs
}
