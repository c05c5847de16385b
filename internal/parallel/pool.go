// Package parallel provides a bounded worker pool for racing independent
// long-running tasks. It backs knuthbendix.Race, which runs several
// completion strategies on decoupled engine copies and keeps the first one
// to finish.
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// ErrNoTasks is returned when FirstSuccess is called with nothing to run.
var ErrNoTasks = errors.New("no tasks to run")

// Task is a cancellable unit of work. It must honor ctx and return ctx's
// error when cancelled.
type Task func(ctx context.Context) error

// Pool runs tasks with bounded concurrency.
type Pool struct {
	workers int
}

// NewPool creates a pool running at most workers tasks at once. If workers
// is 0 or negative it defaults to the number of CPU cores.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{workers: workers}
}

// FirstSuccess runs the tasks concurrently and returns the index of the
// first to return nil, cancelling the rest. If every task fails it returns
// -1 and the first error observed. Tasks still queued when the winner
// finishes are released with the cancelled context's error.
func (p *Pool) FirstSuccess(ctx context.Context, tasks []Task) (int, error) {
	if len(tasks) == 0 {
		return -1, ErrNoTasks
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		idx int
		err error
	}
	results := make(chan result, len(tasks))
	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup
	for i, t := range tasks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results <- result{i, ctx.Err()}
				return
			}
			results <- result{i, t(ctx)}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var firstErr error
	for r := range results {
		if r.err == nil {
			// Losers drain into the buffered channel; no goroutine leaks.
			return r.idx, nil
		}
		if firstErr == nil {
			firstErr = r.err
		}
	}
	return -1, firstErr
}
