package domain

// Edge is one undirected weighted connection as it appears in a snapshot.
type Edge struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Weight int    `json:"weight" yaml:"weight"`
}

// Snapshot is the persisted form of the social graph. Every undirected
// connection appears exactly once in Edges.
type Snapshot struct {
	Nodes []string `json:"nodes" yaml:"nodes"`
	Edges []Edge   `json:"edges" yaml:"edges"`
}

// DefaultEdges are the connections used to seed a graph when no snapshot can be loaded.
var DefaultEdges = []Edge{
	{Source: "Alice", Target: "Bob", Weight: 2},
	{Source: "Alice", Target: "Charlie", Weight: 3},
	{Source: "Bob", Target: "Diana", Weight: 1},
	{Source: "Eve", Target: "Frank", Weight: 2},
	{Source: "Eve", Target: "Grace", Weight: 1},
	{Source: "Grace", Target: "Heidi", Weight: 3},
	{Source: "Heidi", Target: "Ivan", Weight: 2},
	{Source: "Ivan", Target: "Judy", Weight: 1},
	{Source: "Charlie", Target: "Grace", Weight: 4},
	{Source: "Diana", Target: "Frank", Weight: 3},
}

// DefaultSnapshot returns the seed snapshot with nodes listed in first-seen order.
func DefaultSnapshot() Snapshot {
	seen := make(map[string]struct{})
	var nodes []string
	for _, e := range DefaultEdges {
		for _, id := range []string{e.Source, e.Target} {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			nodes = append(nodes, id)
		}
	}
	return Snapshot{
		Nodes: nodes,
		Edges: append([]Edge(nil), DefaultEdges...),
	}
}
