package extractor

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"
)

// Pool bounds concurrent classifier/NLP calls so one slow extraction cannot
// stall other turns. Work that outlives its deadline is abandoned, never
// retried.
type Pool struct {
	sem *semaphore.Weighted
}

func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(workers))}
}

// Run executes fn on the pool under a wall-clock deadline. On deadline the
// in-flight call keeps its worker slot until it returns on its own, but the
// caller gets context.DeadlineExceeded immediately.
func (p *Pool) Run(ctx context.Context, wait time.Duration, fn func(context.Context) error) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	runCtx, cancel := context.WithTimeout(ctx, wait)
	done := make(chan error, 1)
	go func() {
		defer p.sem.Release(1)
		defer cancel()
		done <- fn(runCtx)
	}()
	select {
	case err := <-done:
		return err
	case <-runCtx.Done():
		return runCtx.Err()
	}
}
