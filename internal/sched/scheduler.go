// Package sched runs batches of independent asynchronous tasks under a
// concurrency cap and a minimum inter-start interval. It exists because the
// reverse-geocoding provider enforces a request-rate ceiling, but the same
// primitive fits any batched lookup against a rate-limited API.
package sched

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Task is an invocable unit of asynchronous work producing a value of type T,
// with no dependency on other tasks. The scheduler owns the task for its
// execution lifetime; the caller retains the result slot.
type Task[T any] func(ctx context.Context) (T, error)

// Config bounds a single Run call. It is not mutated by the scheduler.
type Config struct {
	// MaxConcurrent caps how many tasks may be executing at any instant.
	// Must be at least 1.
	MaxConcurrent int
	// MinInterval is the minimum spacing between consecutive task starts.
	// The spacing applies to the Nth start globally, not per slot: throughput
	// is bounded by both the concurrency cap and this interval, whichever is
	// more restrictive. Zero disables pacing.
	MinInterval time.Duration
}

func (c Config) validate() error {
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("scheduler config: maxConcurrent must be >= 1, got %d", c.MaxConcurrent)
	}
	if c.MinInterval < 0 {
		return fmt.Errorf("scheduler config: minInterval must be >= 0, got %v", c.MinInterval)
	}
	return nil
}

// Run executes tasks under cfg and returns their results in input order,
// regardless of completion order.
//
// The first task starts without delay. If any task fails, the whole batch
// fails: completed results are discarded, and in-flight tasks are not
// cancelled but their results are ignored. Callers that need partial-failure
// tolerance must wrap each task to convert its own errors into a sentinel
// success value.
func Run[T any](ctx context.Context, tasks []Task[T], cfg Config) ([]T, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if len(tasks) == 0 {
		return []T{}, nil
	}

	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}
	// Burst 1 with a full initial token: the first Wait returns immediately,
	// every later start is spaced by MinInterval.
	pacer := rate.NewLimiter(limit, 1)

	// launchCtx stops the launch loop after the first failure; task
	// invocations receive the caller's ctx so in-flight work is not
	// explicitly cancelled.
	launchCtx, cancelLaunch := context.WithCancel(ctx)
	defer cancelLaunch()

	sem := make(chan struct{}, cfg.MaxConcurrent)
	results := make([]T, len(tasks))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
		cancelLaunch()
	}

	for i, task := range tasks {
		select {
		case sem <- struct{}{}:
		case <-launchCtx.Done():
		}
		if launchCtx.Err() != nil {
			break
		}

		if err := pacer.Wait(launchCtx); err != nil {
			<-sem
			break
		}

		wg.Add(1)
		go func(i int, task Task[T]) {
			defer wg.Done()
			defer func() { <-sem }()

			v, err := task(ctx)
			if err != nil {
				fail(fmt.Errorf("scheduler: task %d: %w", i, err))
				return
			}
			results[i] = v
		}(i, task)
	}

	wg.Wait()

	mu.Lock()
	err := firstErr
	mu.Unlock()
	if err != nil {
		return nil, err
	}

	// The launch loop only breaks early on failure or caller cancellation.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("scheduler: batch aborted: %w", ctxErr)
	}

	return results, nil
}
