package socialgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCycleBasisSeedGraph(t *testing.T) {
	g := Seed()

	cycles := g.CycleBasis()
	require.Len(t, cycles, g.EdgeCount()-g.NodeCount()+1)
	assert.ElementsMatch(t,
		[]string{"Alice", "Bob", "Diana", "Frank", "Eve", "Grace", "Charlie"},
		cycles[0].Members,
	)
	assertClosedWalk(t, g, cycles[0].Members)
}

func TestCycleBasisShrinksAfterRemovingEdge(t *testing.T) {
	g := Seed()
	before := len(g.CycleBasis())

	require.NoError(t, g.RemoveEdge("Eve", "Grace"))

	assert.Len(t, g.CycleBasis(), before-1)
}

func TestCycleBasisForestIsEmpty(t *testing.T) {
	g := newTestGraph(t,
		[3]any{"a", "b", 1},
		[3]any{"b", "c", 1},
		[3]any{"d", "e", 1},
	)
	assert.Empty(t, g.CycleBasis())
	assert.Empty(t, New().CycleBasis())
}

func TestCycleBasisSize(t *testing.T) {
	// Two components: a complete graph on four users and a triangle.
	g := newTestGraph(t,
		[3]any{"a", "b", 1},
		[3]any{"a", "c", 1},
		[3]any{"a", "d", 1},
		[3]any{"b", "c", 1},
		[3]any{"b", "d", 1},
		[3]any{"c", "d", 1},
		[3]any{"x", "y", 1},
		[3]any{"y", "z", 1},
		[3]any{"z", "x", 1},
	)

	cycles := g.CycleBasis()
	assert.Len(t, cycles, g.EdgeCount()-g.NodeCount()+2)
	for _, c := range cycles {
		assert.GreaterOrEqual(t, len(c.Members), 3)
		assertClosedWalk(t, g, c.Members)
	}
}

func TestCycleBasisIsDeterministic(t *testing.T) {
	first := Seed().CycleBasis()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Seed().CycleBasis())
	}
}

func assertClosedWalk(t *testing.T, g *Graph, members []string) {
	t.Helper()
	for i := range members {
		next := members[(i+1)%len(members)]
		assert.True(t, g.HasEdge(members[i], next), "%s-%s not connected", members[i], next)
	}
}
