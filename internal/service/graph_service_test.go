package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/socialgraph/internal/domain"
	"github.com/vanshika/socialgraph/internal/metrics"
	"github.com/vanshika/socialgraph/internal/repository"
	"github.com/vanshika/socialgraph/internal/socialgraph"
)

type stubRepository struct {
	mu       sync.Mutex
	snapshot domain.Snapshot
	loadErr  error
	saveErr  error
	probeErr error
	saved    []domain.Snapshot
}

func (s *stubRepository) Load(context.Context) (domain.Snapshot, error) {
	if s.loadErr != nil {
		return domain.Snapshot{}, s.loadErr
	}
	return s.snapshot, nil
}

func (s *stubRepository) Save(_ context.Context, snapshot domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, snapshot)
	return nil
}

func (s *stubRepository) Probe(context.Context) error { return s.probeErr }
func (s *stubRepository) Close(context.Context) error { return nil }
func (s *stubRepository) Name() string                { return "stub:memory" }

func newSeededService(t *testing.T) (*GraphService, *stubRepository) {
	t.Helper()
	repo := &stubRepository{loadErr: repository.ErrSnapshotNotFound}
	svc := NewGraphService(repo, nil, metrics.New())
	res, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, LoadedFromSeed, res.Source)
	return svc, repo
}

func TestGraphService_LoadFromStore(t *testing.T) {
	repo := &stubRepository{snapshot: domain.Snapshot{
		Nodes: []string{"a", "b", "c"},
		Edges: []domain.Edge{{Source: "a", Target: "b", Weight: 1}},
	}}
	svc := NewGraphService(repo, nil, nil)

	res, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, LoadResult{Source: LoadedFromStore, Users: 3, Connections: 1}, res)

	users, err := svc.Users(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, users)
}

func TestGraphService_LoadFallsBackToSeed(t *testing.T) {
	tests := []struct {
		name string
		repo *stubRepository
	}{
		{name: "missing", repo: &stubRepository{loadErr: fmt.Errorf("x: %w", repository.ErrSnapshotNotFound)}},
		{name: "malformed", repo: &stubRepository{loadErr: fmt.Errorf("x: %w", repository.ErrMalformedSnapshot)}},
		{name: "invalid edge", repo: &stubRepository{snapshot: domain.Snapshot{
			Edges: []domain.Edge{{Source: "a", Target: "b", Weight: -3}},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewGraphService(tt.repo, nil, nil)

			res, err := svc.Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, LoadedFromSeed, res.Source)
			assert.NotEmpty(t, res.Reason)
			assert.Equal(t, 10, res.Users)
			assert.Equal(t, 10, res.Connections)
		})
	}
}

func TestGraphService_LoadPropagatesStoreFailures(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewGraphService(&stubRepository{loadErr: boom}, nil, nil)

	_, err := svc.Load(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestGraphService_Save(t *testing.T) {
	svc, repo := newSeededService(t)
	ctx := context.Background()

	_, err := svc.AddUser(ctx, "Zoe")
	require.NoError(t, err)
	require.NoError(t, svc.Save(ctx))

	require.Len(t, repo.saved, 1)
	assert.Contains(t, repo.saved[0].Nodes, "Zoe")
	assert.Len(t, repo.saved[0].Edges, 10)

	repo.saveErr = errors.New("disk full")
	assert.ErrorIs(t, svc.Save(ctx), repo.saveErr)
}

func TestGraphService_AddUser(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	created, err := svc.AddUser(ctx, "  Zoe   Quinn ")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.AddUser(ctx, "Zoe Quinn")
	require.NoError(t, err)
	assert.False(t, created)

	_, err = svc.AddUser(ctx, "   ")
	assert.ErrorIs(t, err, socialgraph.ErrEmptyID)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 11, stats.Users)
}

func TestGraphService_AddUserWithConnections(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	res, err := svc.AddUserWithConnections(ctx, " Zed  Smith ", []UserConnection{
		{Target: "Alice", Weight: 1},
		{Target: " Judy", Weight: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, UserCreation{ID: "Zed Smith", Created: true, ConnectedTo: []string{"Alice", "Judy"}}, res)

	nbrs, err := svc.Neighbors(ctx, "Zed Smith")
	require.NoError(t, err)
	assert.Equal(t, []domain.Neighbor{{User: "Alice", Weight: 1}, {User: "Judy", Weight: 3}}, nbrs)
}

func TestGraphService_AddUserWithConnectionsLeavesGraphUnchangedOnFailure(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		conns []UserConnection
		want  error
	}{
		{
			name:  "missing target after a valid one",
			id:    "Zed",
			conns: []UserConnection{{Target: "Alice", Weight: 1}, {Target: "Nobody", Weight: 2}},
			want:  socialgraph.ErrNodesMissing,
		},
		{
			name:  "weight above maximum",
			id:    "Zed",
			conns: []UserConnection{{Target: "Alice", Weight: 1}, {Target: "Bob", Weight: socialgraph.MaxWeight + 1}},
			want:  socialgraph.ErrInvalidWeight,
		},
		{
			name:  "existing user connected to itself",
			id:    "Alice",
			conns: []UserConnection{{Target: "Judy", Weight: 1}, {Target: "Alice", Weight: 1}},
			want:  socialgraph.ErrSelfConnection,
		},
		{
			name:  "blank target",
			id:    "Zed",
			conns: []UserConnection{{Target: "Alice", Weight: 1}, {Target: "  ", Weight: 1}},
			want:  socialgraph.ErrEmptyID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newSeededService(t)
			ctx := context.Background()
			before, err := svc.Snapshot(ctx)
			require.NoError(t, err)

			_, err = svc.AddUserWithConnections(ctx, tt.id, tt.conns)
			assert.ErrorIs(t, err, tt.want)

			after, err := svc.Snapshot(ctx)
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestGraphService_RemoveUserCascades(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	require.NoError(t, svc.RemoveUser(ctx, "Grace"))

	_, err := svc.Neighbors(ctx, "Grace")
	assert.ErrorIs(t, err, socialgraph.ErrNodeNotFound)
	assert.ErrorIs(t, svc.RemoveUser(ctx, "Grace"), socialgraph.ErrNodeNotFound)

	snapshot, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	for _, e := range snapshot.Edges {
		assert.NotEqual(t, "Grace", e.Source)
		assert.NotEqual(t, "Grace", e.Target)
	}
}

func TestGraphService_ConnectAndDisconnect(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	err := svc.Connect(ctx, ConnectionInput{Source: "Alice", Target: "Nobody", Weight: 1})
	assert.ErrorIs(t, err, socialgraph.ErrNodesMissing)

	err = svc.Connect(ctx, ConnectionInput{Source: "Alice", Target: "Judy", Weight: -1})
	assert.ErrorIs(t, err, socialgraph.ErrInvalidWeight)

	require.NoError(t, svc.Connect(ctx, ConnectionInput{Source: "Alice", Target: "Judy", Weight: 1}))
	nbrs, err := svc.Neighbors(ctx, "Judy")
	require.NoError(t, err)
	assert.Equal(t, []domain.Neighbor{{User: "Alice", Weight: 1}, {User: "Ivan", Weight: 1}}, nbrs)

	require.NoError(t, svc.Disconnect(ctx, "Judy", "Alice"))
	assert.ErrorIs(t, svc.Disconnect(ctx, "Judy", "Alice"), socialgraph.ErrEdgeNotFound)
}

func TestGraphService_Queries(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	path, err := svc.ShortestPath(ctx, "Alice", "Ivan")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Charlie", "Grace", "Heidi", "Ivan"}, path.Nodes)
	assert.Equal(t, 12, path.Cost)

	communities, err := svc.Communities(ctx)
	require.NoError(t, err)
	assert.Len(t, communities, 1)

	require.NoError(t, svc.Disconnect(ctx, "Eve", "Grace"))
	communities, err = svc.Communities(ctx)
	require.NoError(t, err)
	assert.Empty(t, communities)

	suggestions, err := svc.SuggestFriends(ctx, "Alice")
	require.NoError(t, err)
	assert.Len(t, suggestions, 2)

	_, err = svc.SuggestFriends(ctx, "Nobody")
	assert.ErrorIs(t, err, socialgraph.ErrUserNotFound)

	ranked, err := svc.Centrality(ctx)
	require.NoError(t, err)
	assert.Len(t, ranked, 10)
}

func TestGraphService_QueriesHonourCancelledContext(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ShortestPath(ctx, "Alice", "Bob")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = svc.AddUser(ctx, "Zoe")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGraphService_ListUsers(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	page, err := svc.ListUsers(ctx, ListUsersParams{Page: 2, PageSize: 4})
	require.NoError(t, err)
	assert.Equal(t, PaginationMeta{Page: 2, PageSize: 4, TotalItems: 10, TotalPages: 3}, page.Pagination)
	require.Len(t, page.Items, 4)
	assert.Equal(t, domain.UserSummary{ID: "Eve", Connections: 2}, page.Items[0])

	page, err = svc.ListUsers(ctx, ListUsersParams{Search: "AN"})
	require.NoError(t, err)
	assert.Equal(t, []domain.UserSummary{
		{ID: "Diana", Connections: 2},
		{ID: "Frank", Connections: 2},
		{ID: "Ivan", Connections: 2},
	}, page.Items)

	page, err = svc.ListUsers(ctx, ListUsersParams{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestGraphService_ReplaceRejectsInvalidSnapshot(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	err := svc.Replace(ctx, domain.Snapshot{Edges: []domain.Edge{{Source: "a", Target: "a", Weight: 1}}})
	assert.ErrorIs(t, err, socialgraph.ErrSelfConnection)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Users)

	require.NoError(t, svc.Replace(ctx, domain.Snapshot{Nodes: []string{"solo"}}))
	users, err := svc.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"solo"}, users)
}

func TestGraphService_ReplaceNormalizesIDs(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	require.NoError(t, svc.Replace(ctx, domain.Snapshot{
		Nodes: []string{"Mary  Ann", " Bob"},
		Edges: []domain.Edge{{Source: "Mary  Ann", Target: " Bob", Weight: 4}},
	}))

	users, err := svc.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mary Ann", "Bob"}, users)

	path, err := svc.ShortestPath(ctx, "Mary Ann", "Bob")
	require.NoError(t, err)
	assert.Equal(t, 4, path.Cost)

	require.NoError(t, svc.RemoveUser(ctx, "Mary  Ann"))
	require.NoError(t, svc.RemoveUser(ctx, "Bob"))

	err = svc.Replace(ctx, domain.Snapshot{Nodes: []string{"Bob", "Bob "}})
	assert.ErrorIs(t, err, socialgraph.ErrDuplicateID)
}

func TestGraphService_LoadFallsBackOnCollidingIDs(t *testing.T) {
	repo := &stubRepository{snapshot: domain.Snapshot{Nodes: []string{"Bob", " Bob"}}}
	svc := NewGraphService(repo, nil, nil)

	res, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, LoadedFromSeed, res.Source)
	assert.Contains(t, res.Reason, "invalid snapshot")
}

func TestGraphService_OverviewIsConsistentUnderWrites(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			id := fmt.Sprintf("writer-%d", i)
			_, _ = svc.AddUserWithConnections(ctx, id, []UserConnection{{Target: "Alice", Weight: 1}})
		}
	}()

	for i := 0; i < 100; i++ {
		snapshot, stats, err := svc.Overview(ctx)
		require.NoError(t, err)
		assert.Equal(t, len(snapshot.Nodes), stats.Users)
		assert.Equal(t, len(snapshot.Edges), stats.Connections)
	}
	wg.Wait()
}

func TestGraphService_ConcurrentReadersAndWriters(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			user := fmt.Sprintf("user-%d", i)
			_, err := svc.AddUser(ctx, user)
			assert.NoError(t, err)
			assert.NoError(t, svc.Connect(ctx, ConnectionInput{Source: user, Target: "Alice", Weight: i}))
		}(i)
		go func() {
			defer wg.Done()
			_, err := svc.ShortestPath(ctx, "Alice", "Judy")
			assert.NoError(t, err)
			_, err = svc.Centrality(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	nbrs, err := svc.Neighbors(ctx, "Alice")
	require.NoError(t, err)
	assert.Len(t, nbrs, 10)
}
