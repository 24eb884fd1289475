package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vanshika/socialgraph/internal/domain"
	"github.com/vanshika/socialgraph/internal/socialgraph"
)

// TaskError accumulates multiple errors produced by a batch.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := "multiple errors:"
	for _, err := range e.Errors {
		msg += " " + err.Error() + ";"
	}
	return msg
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *TaskError) Unwrap() []error {
	return e.Errors
}

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// ErrBatchTooLarge indicates a batch exceeding the configured pair limit.
var ErrBatchTooLarge = errors.New("too many pairs in batch")

// BatchPathFinder answers many shortest-path queries concurrently. Each
// worker takes the service read lock independently.
type BatchPathFinder struct {
	service  *GraphService
	workers  int
	maxPairs int
}

// NewBatchPathFinder creates a BatchPathFinder with the provided concurrency.
// A non-positive maxPairs disables the size limit.
func NewBatchPathFinder(service *GraphService, workers, maxPairs int) *BatchPathFinder {
	if workers <= 0 {
		workers = 4
	}
	return &BatchPathFinder{
		service:  service,
		workers:  workers,
		maxPairs: maxPairs,
	}
}

// FindPaths resolves every request. Domain failures such as a missing user
// or disconnected pair are reported per outcome; only unexpected failures
// abort with an error.
func (b *BatchPathFinder) FindPaths(ctx context.Context, requests []domain.PathRequest) ([]domain.PathOutcome, error) {
	if b.maxPairs > 0 && len(requests) > b.maxPairs {
		return nil, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(requests), b.maxPairs)
	}

	outcomes := make([]domain.PathOutcome, len(requests))
	err := b.run(ctx, len(requests), func(idx int) error {
		req := requests[idx]
		outcomes[idx].Request = req

		path, err := b.service.ShortestPath(ctx, req.Source, req.Target)
		switch {
		case err == nil:
			outcomes[idx].Path = &path
			return nil
		case isDomainError(err):
			outcomes[idx].Error = err.Error()
			return nil
		default:
			return fmt.Errorf("pair %d (%s -> %s): %w", idx, req.Source, req.Target, err)
		}
	})
	if err != nil {
		return nil, err
	}
	return outcomes, nil
}

func isDomainError(err error) bool {
	for _, target := range []error{
		socialgraph.ErrNodeNotFound,
		socialgraph.ErrNoPath,
		socialgraph.ErrEmptyID,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (b *BatchPathFinder) run(ctx context.Context, total int, workerFn func(idx int) error) error {
	if total == 0 {
		return nil
	}
	indexCh := make(chan int)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range indexCh {
			if err := workerFn(idx); err != nil {
				select {
				case errCh <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}

	for i := 0; i < b.workers; i++ {
		wg.Add(1)
		go worker()
	}

Loop:
	for i := 0; i < total; i++ {
		select {
		case indexCh <- i:
		case <-ctx.Done():
			break Loop
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	if err := ctx.Err(); err != nil {
		return err
	}

	var taskErr TaskError
	for err := range errCh {
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		taskErr.append(err)
	}
	return taskErr.asError()
}
