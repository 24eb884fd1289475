package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/vanshika/socialgraph/internal/domain"
	"github.com/vanshika/socialgraph/internal/metrics"
	"github.com/vanshika/socialgraph/internal/repository"
	"github.com/vanshika/socialgraph/internal/socialgraph"
)

// GraphService owns the single in-memory graph. Mutations hold the write
// lock and queries the read lock, so many readers may run concurrently while
// writers are serialized.
type GraphService struct {
	mu      sync.RWMutex
	graph   *socialgraph.Graph
	repo    repository.SnapshotRepository
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewGraphService constructs a service around an empty graph. Call Load to
// populate it from the repository.
func NewGraphService(repo repository.SnapshotRepository, logger *slog.Logger, m *metrics.Metrics) *GraphService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &GraphService{
		graph:   socialgraph.New(),
		repo:    repo,
		logger:  logger.With("component", "graph-service"),
		metrics: m,
	}
}

// Load replaces the in-memory graph with the stored snapshot. Missing or
// malformed state is downgraded to a warning and the seed graph is used
// instead; other repository failures are returned.
func (s *GraphService) Load(ctx context.Context) (LoadResult, error) {
	snapshot, err := s.repo.Load(ctx)

	var g *socialgraph.Graph
	var reason string
	switch {
	case err == nil:
		g, err = socialgraph.FromSnapshot(snapshot)
		if err != nil {
			reason = fmt.Sprintf("invalid snapshot: %v", err)
		}
	case errors.Is(err, repository.ErrSnapshotNotFound), errors.Is(err, repository.ErrMalformedSnapshot):
		reason = err.Error()
	default:
		return LoadResult{}, fmt.Errorf("load snapshot from %s: %w", s.repo.Name(), err)
	}

	result := LoadResult{Source: LoadedFromStore}
	if reason != "" {
		s.logger.Warn("falling back to default graph", "store", s.repo.Name(), "reason", reason)
		g = socialgraph.Seed()
		result = LoadResult{Source: LoadedFromSeed, Reason: reason}
	} else {
		s.logger.Info("graph loaded", "store", s.repo.Name())
	}

	s.mu.Lock()
	s.graph = g
	result.Users, result.Connections = g.NodeCount(), g.EdgeCount()
	s.mu.Unlock()

	s.metrics.SetGraphSize(result.Users, result.Connections)
	return result, nil
}

// Save writes the full current graph to the repository.
func (s *GraphService) Save(ctx context.Context) error {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}

	err = s.repo.Save(ctx, snapshot)
	backend, _, _ := strings.Cut(s.repo.Name(), ":")
	s.metrics.ObserveSave(backend, err)
	if err != nil {
		s.logger.Error("snapshot save failed", "store", s.repo.Name(), "error", err)
		return fmt.Errorf("save snapshot to %s: %w", s.repo.Name(), err)
	}
	s.logger.Info("snapshot saved", "store", s.repo.Name(),
		"users", len(snapshot.Nodes), "connections", len(snapshot.Edges))
	return nil
}

// Replace swaps in a graph built from snapshot. The current graph is kept if
// the snapshot is invalid.
func (s *GraphService) Replace(ctx context.Context, snapshot domain.Snapshot) error {
	g, err := socialgraph.FromSnapshot(snapshot)
	if err != nil {
		return fmt.Errorf("replace graph: %w", err)
	}
	return s.write(ctx, "replace", func(*socialgraph.Graph) error {
		s.graph = g
		return nil
	})
}

// Probe checks the backing repository.
func (s *GraphService) Probe(ctx context.Context) error {
	return s.repo.Probe(ctx)
}

// StoreName identifies the backing repository.
func (s *GraphService) StoreName() string {
	return s.repo.Name()
}

// AddUser inserts a user and reports whether it was newly created.
func (s *GraphService) AddUser(ctx context.Context, id string) (bool, error) {
	id, err := normalizeUserID(id)
	if err != nil {
		return false, err
	}
	var created bool
	err = s.write(ctx, "add_user", func(g *socialgraph.Graph) error {
		created, err = g.AddNode(id)
		return err
	})
	return created, err
}

// AddUserWithConnections inserts a user and connects it to every target in
// one mutation. All targets and weights are checked before the graph is
// touched, so a rejected request leaves the graph unchanged. It returns the
// normalized id and whether the user was newly created.
func (s *GraphService) AddUserWithConnections(ctx context.Context, id string, conns []UserConnection) (UserCreation, error) {
	id, err := normalizeUserID(id)
	if err != nil {
		return UserCreation{}, err
	}
	targets := make([]string, len(conns))
	for i, c := range conns {
		if targets[i], err = normalizeUserID(c.Target); err != nil {
			return UserCreation{}, fmt.Errorf("connection %d: %w", i, err)
		}
	}

	result := UserCreation{ID: id}
	err = s.write(ctx, "add_user", func(g *socialgraph.Graph) error {
		for i, target := range targets {
			if err := checkConnection(g, id, target, conns[i].Weight); err != nil {
				return err
			}
		}
		created, err := g.AddNode(id)
		if err != nil {
			return err
		}
		result.Created = created
		for i, target := range targets {
			if err := g.AddEdge(id, target, conns[i].Weight); err != nil {
				return err
			}
			result.ConnectedTo = append(result.ConnectedTo, target)
		}
		return nil
	})
	if err != nil {
		return UserCreation{}, err
	}
	return result, nil
}

// checkConnection reports the error AddEdge would return for a connection
// from the not yet inserted user id to target.
func checkConnection(g *socialgraph.Graph, id, target string, weight int) error {
	if !g.HasNode(target) {
		return fmt.Errorf("connect %q and %q: %w", id, target, socialgraph.ErrNodesMissing)
	}
	if id == target {
		return fmt.Errorf("connect %q: %w", id, socialgraph.ErrSelfConnection)
	}
	if weight < 0 || weight > socialgraph.MaxWeight {
		return fmt.Errorf("connect %q and %q with weight %d: %w", id, target, weight, socialgraph.ErrInvalidWeight)
	}
	return nil
}

// RemoveUser deletes a user and all of its connections.
func (s *GraphService) RemoveUser(ctx context.Context, id string) error {
	id, err := normalizeUserID(id)
	if err != nil {
		return err
	}
	return s.write(ctx, "remove_user", func(g *socialgraph.Graph) error {
		return g.RemoveNode(id)
	})
}

// Connect creates a connection or overwrites the weight of an existing one.
func (s *GraphService) Connect(ctx context.Context, input ConnectionInput) error {
	source, target, err := normalizePair(input.Source, input.Target)
	if err != nil {
		return err
	}
	return s.write(ctx, "connect", func(g *socialgraph.Graph) error {
		return g.AddEdge(source, target, input.Weight)
	})
}

// Disconnect removes the connection between two users.
func (s *GraphService) Disconnect(ctx context.Context, a, b string) error {
	a, b, err := normalizePair(a, b)
	if err != nil {
		return err
	}
	return s.write(ctx, "disconnect", func(g *socialgraph.Graph) error {
		return g.RemoveEdge(a, b)
	})
}

// Users returns every user in insertion order.
func (s *GraphService) Users(ctx context.Context) ([]string, error) {
	var users []string
	err := s.read(ctx, "users", func(g *socialgraph.Graph) error {
		users = g.Nodes()
		return nil
	})
	return users, err
}

// ListUsers returns a page of users, optionally filtered by a case-insensitive substring.
func (s *GraphService) ListUsers(ctx context.Context, params ListUsersParams) (UsersPage, error) {
	page, pageSize := normalizePagination(params.Page, params.PageSize)
	search := strings.ToLower(sanitizeString(params.Search))

	var matched []domain.UserSummary
	err := s.read(ctx, "list_users", func(g *socialgraph.Graph) error {
		for _, id := range g.Nodes() {
			if search != "" && !strings.Contains(strings.ToLower(id), search) {
				continue
			}
			degree, err := g.Degree(id)
			if err != nil {
				return err
			}
			matched = append(matched, domain.UserSummary{ID: id, Connections: degree})
		}
		return nil
	})
	if err != nil {
		return UsersPage{}, err
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}
	items := append([]domain.UserSummary{}, matched[start:end]...)

	return UsersPage{
		Items:      items,
		Pagination: buildPaginationMeta(page, pageSize, len(matched)),
	}, nil
}

// Neighbors returns the direct connections of a user with their weights.
func (s *GraphService) Neighbors(ctx context.Context, id string) ([]domain.Neighbor, error) {
	id, err := normalizeUserID(id)
	if err != nil {
		return nil, err
	}
	var out []domain.Neighbor
	err = s.read(ctx, "neighbors", func(g *socialgraph.Graph) error {
		nbrs, err := g.Neighbors(id)
		if err != nil {
			return err
		}
		out = make([]domain.Neighbor, 0, len(nbrs))
		for _, n := range nbrs {
			w, _ := g.Weight(id, n)
			out = append(out, domain.Neighbor{User: n, Weight: w})
		}
		return nil
	})
	return out, err
}

// ShortestPath returns the minimum-weight path between two users.
func (s *GraphService) ShortestPath(ctx context.Context, source, target string) (domain.Path, error) {
	source, target, err := normalizePair(source, target)
	if err != nil {
		return domain.Path{}, err
	}
	var path domain.Path
	err = s.read(ctx, "shortest_path", func(g *socialgraph.Graph) error {
		path, err = g.ShortestPath(source, target)
		return err
	})
	return path, err
}

// Communities returns the fundamental cycle basis of the graph.
func (s *GraphService) Communities(ctx context.Context) ([]domain.Community, error) {
	var out []domain.Community
	err := s.read(ctx, "communities", func(g *socialgraph.Graph) error {
		out = g.CycleBasis()
		return nil
	})
	return out, err
}

// SuggestFriends ranks potential friends of user by mutual connections.
func (s *GraphService) SuggestFriends(ctx context.Context, user string) ([]domain.Suggestion, error) {
	user, err := normalizeUserID(user)
	if err != nil {
		return nil, err
	}
	var out []domain.Suggestion
	err = s.read(ctx, "suggest_friends", func(g *socialgraph.Graph) error {
		out, err = g.SuggestFriends(user)
		return err
	})
	return out, err
}

// Centrality returns users ranked by degree centrality.
func (s *GraphService) Centrality(ctx context.Context) ([]domain.CentralityScore, error) {
	var out []domain.CentralityScore
	err := s.read(ctx, "centrality", func(g *socialgraph.Graph) error {
		out = g.RankCentrality()
		return nil
	})
	return out, err
}

// Snapshot returns the persisted form of the current graph.
func (s *GraphService) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	var snapshot domain.Snapshot
	err := s.read(ctx, "snapshot", func(g *socialgraph.Graph) error {
		snapshot = g.Snapshot()
		return nil
	})
	return snapshot, err
}

// Stats summarizes the graph size.
func (s *GraphService) Stats(ctx context.Context) (domain.GraphStats, error) {
	var stats domain.GraphStats
	err := s.read(ctx, "stats", func(g *socialgraph.Graph) error {
		stats = statsOf(g)
		return nil
	})
	return stats, err
}

// Overview returns the snapshot and its stats read under one lock, so the
// two always describe the same graph.
func (s *GraphService) Overview(ctx context.Context) (domain.Snapshot, domain.GraphStats, error) {
	var (
		snapshot domain.Snapshot
		stats    domain.GraphStats
	)
	err := s.read(ctx, "overview", func(g *socialgraph.Graph) error {
		snapshot = g.Snapshot()
		stats = statsOf(g)
		return nil
	})
	return snapshot, stats, err
}

func statsOf(g *socialgraph.Graph) domain.GraphStats {
	return domain.GraphStats{
		Users:       g.NodeCount(),
		Connections: g.EdgeCount(),
		Communities: len(g.CycleBasis()),
	}
}

func (s *GraphService) read(ctx context.Context, op string, fn func(*socialgraph.Graph) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	started := time.Now()

	s.mu.RLock()
	err := fn(s.graph)
	s.mu.RUnlock()

	s.metrics.ObserveOperation(op, started, err)
	s.logger.Debug("query executed", "op", op, "error", err, "duration", time.Since(started))
	return err
}

func (s *GraphService) write(ctx context.Context, op string, fn func(*socialgraph.Graph) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	started := time.Now()

	s.mu.Lock()
	err := fn(s.graph)
	users, conns := s.graph.NodeCount(), s.graph.EdgeCount()
	s.mu.Unlock()

	s.metrics.ObserveOperation(op, started, err)
	if err != nil {
		s.logger.Info("mutation rejected", "op", op, "error", err)
		return err
	}
	s.metrics.SetGraphSize(users, conns)
	s.logger.Info("mutation applied", "op", op, "users", users, "connections", conns)
	return nil
}

func normalizePagination(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	if pageSize > 200 {
		pageSize = 200
	}
	return page, pageSize
}

func buildPaginationMeta(page, pageSize, total int) PaginationMeta {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(pageSize)))
		if total > 0 && totalPages == 0 {
			totalPages = 1
		}
	}
	return PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
