package executor_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/poolkit-dev/poolkit/executor"
)

func TestNewCoercesWorkerCount(t *testing.T) {
	for _, count := range []int{-3, 0} {
		e := executor.New(count)
		if got := e.WorkerCount(); got != 1 {
			t.Errorf("New(%d): expected 1 worker, got %d", count, got)
		}
		_ = e.Close(time.Second)
	}
}

func TestWorkerCount(t *testing.T) {
	e := executor.New(8)
	defer func() { _ = e.Close(time.Second) }()

	if got := e.WorkerCount(); got != 8 {
		t.Errorf("expected 8 workers, got %d", got)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	e := executor.New(2)

	e.Stop()
	e.Stop()
	e.Stop()

	if !e.Stopped() {
		t.Error("executor should report stopped")
	}
	if err := e.Close(time.Second); err != nil {
		t.Fatalf("Close after repeated Stop failed: %v", err)
	}
}

func TestCloseDrainsPendingTasks(t *testing.T) {
	e := executor.New(4)

	var counter atomic.Int64
	const pending = 500
	for i := 0; i < pending; i++ {
		if _, err := executor.Do(e, func() error {
			counter.Add(1)
			return nil
		}); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}

	if err := e.Close(5 * time.Second); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if got := counter.Load(); got != pending {
		t.Errorf("expected all %d pending tasks to run before shutdown, got %d", pending, got)
	}
}

func TestCloseTimeout(t *testing.T) {
	e := executor.New(1)

	release := make(chan struct{})
	if _, err := executor.Do(e, func() error {
		<-release
		return nil
	}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	err := e.Close(50 * time.Millisecond)
	if !errors.Is(err, executor.ErrShutdownTimeout) {
		t.Fatalf("expected ErrShutdownTimeout, got %v", err)
	}

	close(release)
	if err := e.Close(time.Second); err != nil {
		t.Fatalf("Close after release failed: %v", err)
	}
}

func TestFIFOStartOrder(t *testing.T) {
	// One worker serializes execution, so start order is observable.
	e := executor.New(1)

	var order []int
	const n = 50
	futures := make([]*executor.Future[struct{}], 0, n)
	for i := 0; i < n; i++ {
		i := i
		f, err := executor.Do(e, func() error {
			order = append(order, i)
			return nil
		})
		if err != nil {
			t.Fatalf("Submit %d failed: %v", i, err)
		}
		futures = append(futures, f)
	}

	for _, f := range futures {
		if _, err := f.Get(); err != nil {
			t.Fatalf("task failed: %v", err)
		}
	}
	if err := e.Close(time.Second); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if len(order) != n {
		t.Fatalf("expected %d executions, got %d", n, len(order))
	}
	for i, got := range order {
		if got != i {
			t.Fatalf("out-of-order execution at position %d: got task %d", i, got)
		}
	}
}

func TestQueueLen(t *testing.T) {
	e := executor.New(1)
	defer func() { _ = e.Close(time.Second) }()

	release := make(chan struct{})
	if _, err := executor.Do(e, func() error {
		<-release
		return nil
	}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	waitForQueueEmpty(t, e)

	for i := 0; i < 3; i++ {
		if _, err := executor.Do(e, func() error { return nil }); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}
	if got := e.QueueLen(); got != 3 {
		t.Errorf("expected 3 queued tasks, got %d", got)
	}

	close(release)
}
