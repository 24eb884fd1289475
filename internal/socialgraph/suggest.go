package socialgraph

import (
	"fmt"
	"sort"

	"github.com/vanshika/socialgraph/internal/domain"
)

// SuggestFriends ranks second-degree users by the number of connections they
// share with user. Existing connections and user itself are never suggested.
// Connection weights play no part in the ranking.
func (g *Graph) SuggestFriends(user string) ([]domain.Suggestion, error) {
	direct, ok := g.adj[user]
	if !ok {
		return nil, fmt.Errorf("suggest friends for %q: %w", user, ErrUserNotFound)
	}

	counts := make(map[string]int)
	var order []string
	for _, friend := range g.sortedNeighbors(user) {
		for _, candidate := range g.sortedNeighbors(friend) {
			if candidate == user {
				continue
			}
			if _, already := direct[candidate]; already {
				continue
			}
			if counts[candidate] == 0 {
				order = append(order, candidate)
			}
			counts[candidate]++
		}
	}

	suggestions := make([]domain.Suggestion, 0, len(order))
	for _, candidate := range order {
		suggestions = append(suggestions, domain.Suggestion{User: candidate, MutualFriends: counts[candidate]})
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].MutualFriends > suggestions[j].MutualFriends
	})
	return suggestions, nil
}
