package socialgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGraph(t *testing.T, edges ...[3]any) *Graph {
	t.Helper()
	g := New()
	for _, e := range edges {
		a, b, w := e[0].(string), e[1].(string), e[2].(int)
		_, err := g.AddNode(a)
		require.NoError(t, err)
		_, err = g.AddNode(b)
		require.NoError(t, err)
		require.NoError(t, g.AddEdge(a, b, w))
	}
	return g
}

func TestAddNodeIsIdempotent(t *testing.T) {
	g := New()

	created, err := g.AddNode("Alice")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = g.AddNode("Alice")
	require.NoError(t, err)
	assert.False(t, created)

	assert.Equal(t, []string{"Alice"}, g.Nodes())
}

func TestAddNodeRejectsEmptyID(t *testing.T) {
	_, err := New().AddNode("")
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestRemoveNodeCascades(t *testing.T) {
	g := Seed()
	require.NoError(t, g.RemoveNode("Grace"))

	assert.False(t, g.HasNode("Grace"))
	_, err := g.Neighbors("Grace")
	assert.ErrorIs(t, err, ErrNodeNotFound)
	for _, e := range g.Edges() {
		assert.NotEqual(t, "Grace", e.Source)
		assert.NotEqual(t, "Grace", e.Target)
	}
	assert.Equal(t, 7, g.EdgeCount())
	assert.Equal(t, 9, g.NodeCount())

	nbrs, err := g.Neighbors("Eve")
	require.NoError(t, err)
	assert.Equal(t, []string{"Frank"}, nbrs)
}

func TestRemoveNodeMissing(t *testing.T) {
	err := New().RemoveNode("Nobody")
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestRemoveNodeKeepsInsertionOrder(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "c", "d"} {
		_, err := g.AddNode(id)
		require.NoError(t, err)
	}
	require.NoError(t, g.RemoveNode("b"))
	_, err := g.AddNode("e")
	require.NoError(t, err)
	require.NoError(t, g.RemoveNode("a"))

	assert.Equal(t, []string{"c", "d", "e"}, g.Nodes())
}

func TestAddEdge(t *testing.T) {
	g := New()
	_, _ = g.AddNode("Alice")
	_, _ = g.AddNode("Bob")

	t.Run("missing endpoint", func(t *testing.T) {
		err := g.AddEdge("Alice", "Zed", 1)
		assert.ErrorIs(t, err, ErrNodesMissing)
		assert.Equal(t, 0, g.EdgeCount())
	})

	t.Run("negative weight", func(t *testing.T) {
		err := g.AddEdge("Alice", "Bob", -1)
		assert.ErrorIs(t, err, ErrInvalidWeight)
		assert.False(t, g.HasEdge("Alice", "Bob"))
	})

	t.Run("self connection", func(t *testing.T) {
		err := g.AddEdge("Alice", "Alice", 1)
		assert.ErrorIs(t, err, ErrSelfConnection)
	})

	t.Run("weight above maximum", func(t *testing.T) {
		err := g.AddEdge("Alice", "Bob", MaxWeight+1)
		assert.ErrorIs(t, err, ErrInvalidWeight)
		assert.False(t, g.HasEdge("Alice", "Bob"))
	})

	t.Run("overwrite weight", func(t *testing.T) {
		require.NoError(t, g.AddEdge("Alice", "Bob", 5))
		require.NoError(t, g.AddEdge("Bob", "Alice", 2))

		w, ok := g.Weight("Alice", "Bob")
		require.True(t, ok)
		assert.Equal(t, 2, w)
		assert.Equal(t, 1, g.EdgeCount())
	})
}

func TestEdgeSymmetry(t *testing.T) {
	g := Seed()
	nodes := g.Nodes()
	for _, a := range nodes {
		for _, b := range nodes {
			assert.Equal(t, g.HasEdge(a, b), g.HasEdge(b, a), "%s-%s", a, b)
		}
	}
}

func TestRemoveEdge(t *testing.T) {
	g := Seed()
	require.NoError(t, g.RemoveEdge("Grace", "Eve"))
	assert.False(t, g.HasEdge("Eve", "Grace"))
	assert.Equal(t, 9, g.EdgeCount())

	err := g.RemoveEdge("Eve", "Grace")
	assert.ErrorIs(t, err, ErrEdgeNotFound)
}

func TestNeighbors(t *testing.T) {
	g := Seed()
	_, _ = g.AddNode("Loner")

	nbrs, err := g.Neighbors("Grace")
	require.NoError(t, err)
	assert.Equal(t, []string{"Charlie", "Eve", "Heidi"}, nbrs)

	nbrs, err = g.Neighbors("Loner")
	require.NoError(t, err)
	assert.Empty(t, nbrs)

	_, err = g.Neighbors("Nobody")
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestEdgesListsEachConnectionOnce(t *testing.T) {
	g := newTestGraph(t,
		[3]any{"a", "b", 1},
		[3]any{"b", "c", 2},
		[3]any{"c", "a", 3},
	)

	edges := g.Edges()
	require.Len(t, edges, 3)
	assert.Equal(t, "a", edges[0].Source)
	assert.Equal(t, "b", edges[0].Target)
	assert.Equal(t, "a", edges[1].Source)
	assert.Equal(t, "c", edges[1].Target)
	assert.Equal(t, 3, edges[1].Weight)
	assert.Equal(t, "b", edges[2].Source)
	assert.Equal(t, "c", edges[2].Target)
}

func TestParseWeight(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "3", want: 3},
		{in: " 0 ", want: 0},
		{in: "2.5", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
		{in: "-4", wantErr: true},
		{in: "2147483647", want: MaxWeight},
		{in: "2147483648", wantErr: true},
		{in: "9223372036854775807", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseWeight(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidWeight, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}
