package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/socialgraph/internal/domain"
)

func TestBatchPathFinder_FindPaths(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()
	_, err := svc.AddUser(ctx, "Loner")
	require.NoError(t, err)

	finder := NewBatchPathFinder(svc, 3, 0)
	requests := []domain.PathRequest{
		{Source: "Alice", Target: "Ivan"},
		{Source: "Alice", Target: "Loner"},
		{Source: "Nobody", Target: "Alice"},
		{Source: "Judy", Target: "Judy"},
	}

	outcomes, err := finder.FindPaths(ctx, requests)
	require.NoError(t, err)
	require.Len(t, outcomes, len(requests))

	for i, out := range outcomes {
		assert.Equal(t, requests[i], out.Request)
	}
	require.NotNil(t, outcomes[0].Path)
	assert.Equal(t, 12, outcomes[0].Path.Cost)
	assert.Nil(t, outcomes[1].Path)
	assert.Contains(t, outcomes[1].Error, "no path")
	assert.Contains(t, outcomes[2].Error, "not found")
	require.NotNil(t, outcomes[3].Path)
	assert.Equal(t, []string{"Judy"}, outcomes[3].Path.Nodes)
}

func TestBatchPathFinder_ManyPairs(t *testing.T) {
	svc, _ := newSeededService(t)
	users, err := svc.Users(context.Background())
	require.NoError(t, err)

	var requests []domain.PathRequest
	for _, a := range users {
		for _, b := range users {
			requests = append(requests, domain.PathRequest{Source: a, Target: b})
		}
	}

	outcomes, err := NewBatchPathFinder(svc, 8, 0).FindPaths(context.Background(), requests)
	require.NoError(t, err)
	for _, out := range outcomes {
		require.NotNil(t, out.Path, "%v: %s", out.Request, out.Error)
	}
}

func TestBatchPathFinder_Limit(t *testing.T) {
	svc, _ := newSeededService(t)
	_, err := NewBatchPathFinder(svc, 2, 1).FindPaths(context.Background(), make([]domain.PathRequest, 2))
	assert.ErrorIs(t, err, ErrBatchTooLarge)
}

func TestBatchPathFinder_Cancelled(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBatchPathFinder(svc, 2, 0).FindPaths(ctx, []domain.PathRequest{{Source: "Alice", Target: "Bob"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTaskError(t *testing.T) {
	var te TaskError
	assert.NoError(t, te.asError())

	first := errors.New("first")
	te.append(first)
	te.append(nil)
	te.append(fmt.Errorf("second"))

	err := te.asError()
	require.Error(t, err)
	assert.ErrorIs(t, err, first)
	assert.Equal(t, "multiple errors: first; second;", err.Error())
}
