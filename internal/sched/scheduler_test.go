package sched

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunPreservesInputOrder(t *testing.T) {
	// Later tasks finish first; results must still come back in input order.
	tasks := make([]Task[int], 8)
	for i := range tasks {
		i := i
		tasks[i] = func(ctx context.Context) (int, error) {
			time.Sleep(time.Duration(8-i) * time.Millisecond)
			return i * 10, nil
		}
	}

	got, err := Run(context.Background(), tasks, Config{MaxConcurrent: 8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 8 {
		t.Fatalf("expected 8 results, got %d", len(got))
	}
	for i, v := range got {
		if v != i*10 {
			t.Errorf("results[%d] = %d, want %d", i, v, i*10)
		}
	}
}

func TestRunEmptyInput(t *testing.T) {
	got, err := Run(context.Background(), []Task[string]{}, Config{MaxConcurrent: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d entries", len(got))
	}
}

func TestRunInvalidConfig(t *testing.T) {
	tasks := []Task[int]{func(ctx context.Context) (int, error) { return 1, nil }}

	if _, err := Run(context.Background(), tasks, Config{MaxConcurrent: 0}); err == nil {
		t.Fatal("expected error for maxConcurrent=0")
	}
	if _, err := Run(context.Background(), tasks, Config{MaxConcurrent: 1, MinInterval: -time.Second}); err == nil {
		t.Fatal("expected error for negative minInterval")
	}
}

func TestRunRespectsConcurrencyCap(t *testing.T) {
	var inFlight, peak int64
	var mu sync.Mutex

	tasks := make([]Task[struct{}], 12)
	for i := range tasks {
		tasks[i] = func(ctx context.Context) (struct{}, error) {
			n := atomic.AddInt64(&inFlight, 1)
			mu.Lock()
			if n > peak {
				peak = n
			}
			mu.Unlock()
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt64(&inFlight, -1)
			return struct{}{}, nil
		}
	}

	if _, err := Run(context.Background(), tasks, Config{MaxConcurrent: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if peak > 3 {
		t.Fatalf("observed %d concurrent tasks, cap is 3", peak)
	}
}

func TestRunSpacesTaskStarts(t *testing.T) {
	const interval = 20 * time.Millisecond

	var mu sync.Mutex
	starts := make([]time.Time, 0, 4)

	tasks := make([]Task[struct{}], 4)
	for i := range tasks {
		tasks[i] = func(ctx context.Context) (struct{}, error) {
			mu.Lock()
			starts = append(starts, time.Now())
			mu.Unlock()
			return struct{}{}, nil
		}
	}

	began := time.Now()
	if _, err := Run(context.Background(), tasks, Config{MaxConcurrent: 4, MinInterval: interval}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(starts) != 4 {
		t.Fatalf("expected 4 starts, got %d", len(starts))
	}

	// First start must not be delayed by the pacer.
	if d := starts[0].Sub(began); d > interval {
		t.Errorf("first task delayed by %v", d)
	}

	// Starts happen in launch order, so consecutive start times must be
	// spaced by at least the configured interval (small tolerance for
	// timestamping after the pacer releases).
	const tolerance = 2 * time.Millisecond
	for i := 1; i < len(starts); i++ {
		if gap := starts[i].Sub(starts[i-1]); gap < interval-tolerance {
			t.Errorf("start %d only %v after start %d, want >= %v", i, gap, i-1, interval)
		}
	}
}

func TestRunFailFast(t *testing.T) {
	boom := errors.New("boom")
	var launched int64

	tasks := []Task[int]{
		func(ctx context.Context) (int, error) {
			atomic.AddInt64(&launched, 1)
			return 1, nil
		},
		func(ctx context.Context) (int, error) {
			atomic.AddInt64(&launched, 1)
			return 0, boom
		},
		func(ctx context.Context) (int, error) {
			atomic.AddInt64(&launched, 1)
			time.Sleep(50 * time.Millisecond)
			return 3, nil
		},
	}

	got, err := Run(context.Background(), tasks, Config{MaxConcurrent: 1})
	if err == nil {
		t.Fatal("expected batch failure")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want wrapped task error", err)
	}
	// Task 1's completed result must not leak out on failure.
	if got != nil {
		t.Fatalf("expected nil results on failure, got %v", got)
	}
	// With one slot, the failure on task 2 stops task 3 from launching.
	if n := atomic.LoadInt64(&launched); n > 2 {
		t.Errorf("launched %d tasks after failure, want at most 2", n)
	}
}

func TestRunContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tasks := make([]Task[int], 5)
	for i := range tasks {
		i := i
		tasks[i] = func(ctx context.Context) (int, error) {
			if i == 0 {
				cancel()
			}
			return i, nil
		}
	}

	_, err := Run(ctx, tasks, Config{MaxConcurrent: 1, MinInterval: 10 * time.Millisecond})
	if err == nil {
		t.Fatal("expected error after caller cancellation")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestRunManyTasksStress(t *testing.T) {
	tasks := make([]Task[string], 100)
	for i := range tasks {
		i := i
		tasks[i] = func(ctx context.Context) (string, error) {
			return fmt.Sprintf("r%d", i), nil
		}
	}

	got, err := Run(context.Background(), tasks, Config{MaxConcurrent: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range got {
		if want := fmt.Sprintf("r%d", i); v != want {
			t.Fatalf("results[%d] = %q, want %q", i, v, want)
		}
	}
}
