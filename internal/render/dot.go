// Package render produces Graphviz DOT text for a social graph snapshot.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/vanshika/socialgraph/internal/domain"
)

// Options configures DOT output.
type Options struct {
	// Name is the graph identifier. Default: "SocialGraph"
	Name string

	// Radius of the circle nodes are pinned to, in inches. Default: 3
	Radius float64

	// Highlight is an ordered list of users (usually a shortest path) whose
	// nodes and consecutive edges are drawn emphasized.
	Highlight []string
}

// DefaultOptions returns the options used by the console and HTTP API.
func DefaultOptions() Options {
	return Options{Name: "SocialGraph", Radius: 3}
}

// Position is a fixed layout coordinate.
type Position struct {
	X, Y float64
}

// CircularLayout places users evenly on a circle in the given order, the
// first one at the top. A single user sits at the origin.
func CircularLayout(users []string, radius float64) map[string]Position {
	out := make(map[string]Position, len(users))
	n := len(users)
	if n == 1 {
		out[users[0]] = Position{}
		return out
	}
	for i, u := range users {
		angle := math.Pi/2 - 2*math.Pi*float64(i)/float64(n)
		out[u] = Position{
			X: round2(radius * math.Cos(angle)),
			Y: round2(radius * math.Sin(angle)),
		}
	}
	return out
}

// DOT writes snapshot as an undirected DOT graph. Positions are pinned so
// neato and fdp reproduce the circular layout; edge labels carry weights.
func DOT(w io.Writer, snapshot domain.Snapshot, opts Options) error {
	if opts.Name == "" {
		opts.Name = "SocialGraph"
	}
	if opts.Radius <= 0 {
		opts.Radius = 3
	}

	onPath := make(map[string]bool, len(opts.Highlight))
	pathEdges := make(map[[2]string]bool, len(opts.Highlight))
	for i, u := range opts.Highlight {
		onPath[u] = true
		if i > 0 {
			pathEdges[edgeKey(opts.Highlight[i-1], u)] = true
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "graph %s {\n", quoteID(opts.Name))
	sb.WriteString("    layout=neato;\n")
	sb.WriteString("    node [shape=ellipse, style=filled, fillcolor=\"skyblue\", fontname=\"Helvetica-Bold\"];\n")
	sb.WriteString("    edge [fontsize=10];\n")
	sb.WriteString("\n")

	positions := CircularLayout(snapshot.Nodes, opts.Radius)
	for _, u := range snapshot.Nodes {
		p := positions[u]
		fmt.Fprintf(&sb, "    %s [pos=\"%.2f,%.2f!\"", quoteID(u), p.X, p.Y)
		if onPath[u] {
			sb.WriteString(", fillcolor=\"#ff6b6b\", fontcolor=\"white\"")
		}
		sb.WriteString("];\n")
	}

	if len(snapshot.Edges) > 0 {
		sb.WriteString("\n")
	}
	for _, e := range snapshot.Edges {
		fmt.Fprintf(&sb, "    %s -- %s [label=\"%d\"", quoteID(e.Source), quoteID(e.Target), e.Weight)
		if pathEdges[edgeKey(e.Source, e.Target)] {
			sb.WriteString(", color=\"#ff6b6b\", penwidth=2.5")
		}
		sb.WriteString("];\n")
	}

	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// String is DOT rendered into a string.
func String(snapshot domain.Snapshot, opts Options) string {
	var sb strings.Builder
	_ = DOT(&sb, snapshot, opts)
	return sb.String()
}

func quoteID(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}

func edgeKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0
	}
	return r
}
