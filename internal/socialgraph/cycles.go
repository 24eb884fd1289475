package socialgraph

import "github.com/vanshika/socialgraph/internal/domain"

// CycleBasis returns the fundamental cycles of the graph. A depth-first
// spanning forest is grown from every unvisited node in insertion order; each
// non-tree edge closes exactly one cycle, which is rebuilt by walking both
// endpoints up to their lowest common ancestor.
//
// The number of cycles is |E| - |V| + components. A forest yields none.
func (g *Graph) CycleBasis() []domain.Community {
	parent := make(map[string]string, len(g.order))
	depth := make(map[string]int, len(g.order))
	finished := make(map[string]bool, len(g.order))
	var communities []domain.Community

	type frame struct {
		node string
		nbrs []string
		next int
	}

	for _, root := range g.order {
		if _, seen := depth[root]; seen {
			continue
		}
		depth[root] = 0
		stack := []frame{{node: root, nbrs: g.sortedNeighbors(root)}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == len(top.nbrs) {
				finished[top.node] = true
				stack = stack[:len(stack)-1]
				continue
			}
			u := top.node
			v := top.nbrs[top.next]
			top.next++

			if _, seen := depth[v]; !seen {
				parent[v] = u
				depth[v] = depth[u] + 1
				stack = append(stack, frame{node: v, nbrs: g.sortedNeighbors(v)})
				continue
			}
			// The tree edge back to the parent and edges already closed from
			// the descendant side are not new cycles.
			if p, ok := parent[u]; (ok && p == v) || finished[v] {
				continue
			}
			communities = append(communities, domain.Community{
				Members: closeCycle(u, v, parent, depth),
			})
		}
	}
	return communities
}

// closeCycle walks u and v up the DFS tree to their lowest common ancestor
// and returns u ... lca ... v.
func closeCycle(u, v string, parent map[string]string, depth map[string]int) []string {
	left := []string{u}
	right := []string{v}
	a, b := u, v
	for depth[a] > depth[b] {
		a = parent[a]
		left = append(left, a)
	}
	for depth[b] > depth[a] {
		b = parent[b]
		right = append(right, b)
	}
	for a != b {
		a = parent[a]
		b = parent[b]
		left = append(left, a)
		right = append(right, b)
	}

	cycle := left
	for i := len(right) - 2; i >= 0; i-- {
		cycle = append(cycle, right[i])
	}
	return cycle
}
