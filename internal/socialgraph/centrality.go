package socialgraph

import (
	"sort"

	"github.com/vanshika/socialgraph/internal/domain"
)

// DegreeCentrality returns degree / (|V| - 1) for every user. Graphs with
// fewer than two users score every user 0.
func (g *Graph) DegreeCentrality() map[string]float64 {
	scores := make(map[string]float64, len(g.order))
	n := len(g.order)
	for _, id := range g.order {
		if n < 2 {
			scores[id] = 0
			continue
		}
		scores[id] = float64(len(g.adj[id])) / float64(n-1)
	}
	return scores
}

// RankCentrality returns degree centrality sorted by descending score, ties by user id.
func (g *Graph) RankCentrality() []domain.CentralityScore {
	scores := g.DegreeCentrality()
	ranked := make([]domain.CentralityScore, 0, len(scores))
	for _, id := range g.order {
		ranked = append(ranked, domain.CentralityScore{
			User:   id,
			Score:  scores[id],
			Degree: len(g.adj[id]),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].User < ranked[j].User
	})
	return ranked
}
