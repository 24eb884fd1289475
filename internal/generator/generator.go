package generator

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/vanshika/socialgraph/internal/domain"
	"github.com/vanshika/socialgraph/internal/socialgraph"
)

// Generator produces synthetic social graphs in snapshot form.
type Generator struct {
	cfg           Config
	rand          *rand.Rand
	nameFragments nameFragments
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	if cfg.NumUsers <= 0 {
		cfg.NumUsers = DefaultConfig().NumUsers
	}
	if cfg.ConnectionsPerUser <= 0 {
		cfg.ConnectionsPerUser = DefaultConfig().ConnectionsPerUser
	}
	if cfg.TriangleChance < 0 || cfg.TriangleChance > 1 {
		cfg.TriangleChance = DefaultConfig().TriangleChance
	}
	if cfg.MaxWeight <= 0 {
		cfg.MaxWeight = DefaultConfig().MaxWeight
	}
	if cfg.MaxWeight > socialgraph.MaxWeight {
		cfg.MaxWeight = socialgraph.MaxWeight
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:           cfg,
		rand:          rand.New(rand.NewSource(cfg.Seed)),
		nameFragments: defaultNameFragments(),
	}
}

// Generate synthesises a connected social graph. Every user after the first
// attaches to an earlier one, then extra random connections are added and,
// with TriangleChance, closed into triangles so communities exist. It
// respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (domain.Snapshot, error) {
	users := g.uniqueNames(g.cfg.NumUsers)
	b := newEdgeBuilder(len(users))

	for i := 1; i < len(users); i++ {
		if err := ctx.Err(); err != nil {
			return domain.Snapshot{}, err
		}
		b.add(i, g.rand.Intn(i), g.randomWeight())
	}

	target := g.cfg.NumUsers * g.cfg.ConnectionsPerUser / 2
	maxEdges := len(users) * (len(users) - 1) / 2
	if target > maxEdges {
		target = maxEdges
	}
	for attempts := 0; len(b.edges) < target && attempts < target*20+100; attempts++ {
		if err := ctx.Err(); err != nil {
			return domain.Snapshot{}, err
		}
		a := g.rand.Intn(len(users))
		if g.rand.Float64() < g.cfg.TriangleChance {
			if c, ok := g.friendOfFriend(b, a); ok {
				b.add(a, c, g.randomWeight())
				continue
			}
		}
		b.add(a, g.rand.Intn(len(users)), g.randomWeight())
	}

	edges := make([]domain.Edge, 0, len(b.edges))
	for _, e := range b.edges {
		edges = append(edges, domain.Edge{Source: users[e.a], Target: users[e.b], Weight: e.weight})
	}
	return domain.Snapshot{Nodes: users, Edges: edges}, nil
}

// indexedEdge holds user indexes with a < b, matching the order the graph
// itself reports edges in.
type indexedEdge struct {
	a, b   int
	weight int
}

type edgeBuilder struct {
	adj   []map[int]struct{}
	edges []indexedEdge
}

func newEdgeBuilder(n int) *edgeBuilder {
	adj := make([]map[int]struct{}, n)
	for i := range adj {
		adj[i] = make(map[int]struct{})
	}
	return &edgeBuilder{adj: adj}
}

func (b *edgeBuilder) add(x, y, weight int) bool {
	if x == y {
		return false
	}
	if _, ok := b.adj[x][y]; ok {
		return false
	}
	b.adj[x][y] = struct{}{}
	b.adj[y][x] = struct{}{}
	if x > y {
		x, y = y, x
	}
	b.edges = append(b.edges, indexedEdge{a: x, b: y, weight: weight})
	return true
}

// friendOfFriend picks a random user two hops from a that is not yet
// connected to it.
func (g *Generator) friendOfFriend(b *edgeBuilder, a int) (int, bool) {
	friends := sortedKeys(b.adj[a])
	if len(friends) == 0 {
		return 0, false
	}
	via := friends[g.rand.Intn(len(friends))]
	var candidates []int
	for _, c := range sortedKeys(b.adj[via]) {
		if c == a {
			continue
		}
		if _, ok := b.adj[a][c]; ok {
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[g.rand.Intn(len(candidates))], true
}

// uniqueNames draws n full names, suffixing repeats with a counter.
func (g *Generator) uniqueNames(n int) []string {
	seen := make(map[string]int, n)
	names := make([]string, 0, n)
	for len(names) < n {
		name := g.randomFullName()
		seen[name]++
		if count := seen[name]; count > 1 {
			name = fmt.Sprintf("%s %d", name, count)
		}
		names = append(names, name)
	}
	return names
}

func (g *Generator) randomWeight() int {
	return 1 + g.rand.Intn(g.cfg.MaxWeight)
}

func (g *Generator) randomFullName() string {
	return fmt.Sprintf("%s %s", g.nameFragments.first[g.rand.Intn(len(g.nameFragments.first))],
		g.nameFragments.last[g.rand.Intn(len(g.nameFragments.last))])
}

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

type nameFragments struct {
	first []string
	last  []string
}

func defaultNameFragments() nameFragments {
	return nameFragments{
		first: []string{"Jane", "John", "Alex", "Priya", "Liu", "Maria", "Omar", "Sofia", "Noah", "Emma", "Lucas", "Mia", "Ava", "Ethan", "Zara"},
		last:  []string{"Doe", "Smith", "Chen", "Patel", "Garcia", "Khan", "Kim", "Ivanov", "Nguyen", "Silva", "Brown", "Lee"},
	}
}
