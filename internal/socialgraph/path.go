package socialgraph

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/vanshika/socialgraph/internal/domain"
)

// ShortestPath returns a minimum total weight path from source to target
// using Dijkstra's algorithm. Weights are non-negative by construction.
func (g *Graph) ShortestPath(source, target string) (domain.Path, error) {
	for _, id := range []string{source, target} {
		if !g.HasNode(id) {
			return domain.Path{}, fmt.Errorf("shortest path %q -> %q: %q: %w", source, target, id, ErrNodeNotFound)
		}
	}

	dist := map[string]int{source: 0}
	prev := make(map[string]string)
	done := make(map[string]bool)
	frontier := &distanceQueue{{node: source, dist: 0}}

	for frontier.Len() > 0 {
		cur := heap.Pop(frontier).(queueItem)
		if done[cur.node] {
			continue
		}
		done[cur.node] = true
		if cur.node == target {
			break
		}

		for next, w := range g.adj[cur.node] {
			if done[next] {
				continue
			}
			if w > math.MaxInt-cur.dist {
				continue
			}
			alt := cur.dist + w
			if d, seen := dist[next]; seen && d <= alt {
				continue
			}
			dist[next] = alt
			prev[next] = cur.node
			heap.Push(frontier, queueItem{node: next, dist: alt})
		}
	}

	if !done[target] {
		return domain.Path{}, fmt.Errorf("shortest path %q -> %q: %w", source, target, ErrNoPath)
	}

	var nodes []string
	for at := target; ; at = prev[at] {
		nodes = append(nodes, at)
		if at == source {
			break
		}
	}
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}

	return domain.Path{
		Source: source,
		Target: target,
		Nodes:  nodes,
		Cost:   dist[target],
	}, nil
}

type queueItem struct {
	node string
	dist int
}

// distanceQueue is a min-heap on tentative distance. Stale entries are
// skipped on pop instead of being updated in place.
type distanceQueue []queueItem

func (q distanceQueue) Len() int { return len(q) }

func (q distanceQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].node < q[j].node
}

func (q distanceQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *distanceQueue) Push(x any) { *q = append(*q, x.(queueItem)) }

func (q *distanceQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
