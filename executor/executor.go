package executor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

var (
	// ErrStopped is returned by Submit once the executor has been stopped.
	ErrStopped = errors.New("executor: submit on stopped executor")

	// ErrQueueFull is returned by Submit when a bounded queue is at capacity.
	ErrQueueFull = errors.New("executor: task queue is full")

	// ErrShutdownTimeout is returned by Close when workers do not finish
	// draining within the given timeout.
	ErrShutdownTimeout = errors.New("executor: shutdown timeout reached")
)

// Executor runs submitted tasks on a fixed set of worker goroutines.
// All workers drain one shared FIFO queue, so tasks start in submission
// order. Create one with New and submit through the package-level Submit.
type Executor struct {
	workers  int
	capacity int
	limiter  *rate.Limiter
	log      *zap.Logger

	mu    sync.Mutex
	queue []boundTask

	stopped atomic.Bool
	quit    chan struct{} // closed by Stop; always-ready wake for all workers
	wake    chan struct{} // one token per pending submission, up to one per worker
	done    chan struct{} // closed once every worker has terminated
}

// New creates an executor and immediately starts workerCount workers, all
// idle. A count below one is coerced to one.
func New(workerCount int, opts ...Option) *Executor {
	if workerCount < 1 {
		workerCount = 1
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	e := &Executor{
		workers:  workerCount,
		capacity: cfg.queueCapacity,
		limiter:  cfg.limiter,
		log:      cfg.logger,
		quit:     make(chan struct{}),
		wake:     make(chan struct{}, workerCount),
		done:     make(chan struct{}),
	}

	var g errgroup.Group
	for i := 0; i < workerCount; i++ {
		i := i
		g.Go(func() error {
			e.worker(i)
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(e.done)
	}()

	return e
}

// Stop transitions the executor to stopped and wakes every worker. It is
// idempotent and does not discard queued tasks; workers keep draining until
// the queue is empty. Taking the queue lock here serializes the state flip
// against in-flight Submit calls, so no task is admitted after a caller has
// observed the stop.
func (e *Executor) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped.CompareAndSwap(false, true) {
		close(e.quit)
	}
}

// Close stops the executor and waits for every worker to finish draining.
// A timeout of zero or less waits forever; otherwise ErrShutdownTimeout is
// returned when the timeout expires first.
func (e *Executor) Close(timeout time.Duration) error {
	e.Stop()
	return waitUntil(e.done, timeout)
}

// WorkerCount returns the fixed worker count chosen at construction.
func (e *Executor) WorkerCount() int {
	return e.workers
}

// Stopped reports whether Stop has been called.
func (e *Executor) Stopped() bool {
	return e.stopped.Load()
}

// QueueLen returns the number of tasks waiting to start.
func (e *Executor) QueueLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

// enqueue admits a task under the queue lock. The stopped check and the
// append share one critical section; see Stop.
func (e *Executor) enqueue(t boundTask) error {
	e.mu.Lock()
	if e.stopped.Load() {
		e.mu.Unlock()
		return ErrStopped
	}
	if e.capacity > 0 && len(e.queue) >= e.capacity {
		e.mu.Unlock()
		return ErrQueueFull
	}
	e.queue = append(e.queue, t)
	e.mu.Unlock()

	// Non-blocking: with up to one buffered token per worker, a dropped
	// token means enough wake-ups are already pending, and every woken
	// worker drains the queue to empty before sleeping again.
	select {
	case e.wake <- struct{}{}:
	default:
	}
	return nil
}

// dequeue pops the task at the head of the queue, or nil when it is empty.
func (e *Executor) dequeue() boundTask {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.queue) == 0 {
		return nil
	}
	t := e.queue[0]
	e.queue[0] = nil
	e.queue = e.queue[1:]
	return t
}

// worker is the core loop: run queued tasks until the queue is empty, then
// sleep until woken by a submission or by Stop. The termination predicate is
// exactly "stopped and queue empty" — a stopped executor still drains.
func (e *Executor) worker(id int) {
	for {
		if t := e.dequeue(); t != nil {
			e.run(id, t)
			continue
		}

		select {
		case <-e.quit:
			e.drain(id)
			return
		case <-e.wake:
		}
	}
}

// drain runs remaining tasks until the queue is empty, then returns.
func (e *Executor) drain(id int) {
	for {
		t := e.dequeue()
		if t == nil {
			return
		}
		e.run(id, t)
	}
}

// run executes one task. Task failures (including recovered panics) are
// already folded into the returned error by the bound task itself; they are
// logged here and otherwise ignored so the worker survives.
func (e *Executor) run(id int, t boundTask) {
	if e.limiter != nil {
		_ = e.limiter.Wait(context.Background())
	}
	if err := t(); err != nil {
		e.log.Warn("task failed", zap.Int("worker", id), zap.Error(err))
	}
}

// waitUntil blocks until d is closed or the timeout is reached.
// A timeout of zero or less waits forever.
func waitUntil(d <-chan struct{}, timeout time.Duration) error {
	if timeout <= 0 {
		<-d
		return nil
	}

	select {
	case <-d:
		return nil
	case <-time.After(timeout):
		return ErrShutdownTimeout
	}
}
