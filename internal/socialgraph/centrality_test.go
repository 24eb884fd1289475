package socialgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDegreeCentralityBounds(t *testing.T) {
	g := Seed()
	for user, score := range g.DegreeCentrality() {
		assert.GreaterOrEqual(t, score, 0.0, user)
		assert.LessOrEqual(t, score, 1.0, user)
	}
}

func TestDegreeCentralityHub(t *testing.T) {
	g := newTestGraph(t,
		[3]any{"hub", "a", 5},
		[3]any{"hub", "b", 1},
		[3]any{"hub", "c", 3},
	)

	scores := g.DegreeCentrality()
	assert.Equal(t, 1.0, scores["hub"])
	assert.InDelta(t, 1.0/3.0, scores["a"], 1e-9)
}

func TestDegreeCentralityTinyGraphs(t *testing.T) {
	assert.Empty(t, New().DegreeCentrality())

	g := New()
	_, _ = g.AddNode("solo")
	assert.Equal(t, map[string]float64{"solo": 0}, g.DegreeCentrality())
}

func TestRankCentrality(t *testing.T) {
	ranked := Seed().RankCentrality()
	require.Len(t, ranked, 10)

	assert.Equal(t, "Grace", ranked[0].User)
	assert.Equal(t, 3, ranked[0].Degree)
	assert.InDelta(t, 3.0/9.0, ranked[0].Score, 1e-9)
	assert.Equal(t, "Judy", ranked[len(ranked)-1].User)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}
