package executor

import (
	"errors"
	"time"
)

// ErrFutureTimeout is returned by GetWithTimeout when the task has not
// resolved within the given duration. The task itself is unaffected and a
// later Get still succeeds.
var ErrFutureTimeout = errors.New("executor: timed out waiting for result")

// Future is the caller-side handle for one submitted task. It resolves
// exactly once, to either the task's value or its propagated failure.
type Future[R any] struct {
	value R
	err   error
	done  chan struct{}
}

func newFuture[R any]() *Future[R] {
	return &Future[R]{done: make(chan struct{})}
}

// deliver resolves the future. Called exactly once, by the bound task, after
// execution; the field writes happen before the close and are therefore
// visible to every Get.
func (f *Future[R]) deliver(value R, err error) {
	f.value = value
	f.err = err
	close(f.done)
}

// Get blocks until the task has executed and returns its value, or the
// failure the task produced. Repeated calls return the same outcome.
func (f *Future[R]) Get() (R, error) {
	<-f.done
	return f.value, f.err
}

// GetWithTimeout is Get with an upper bound on the wait. On expiry it
// returns ErrFutureTimeout without consuming the result.
func (f *Future[R]) GetWithTimeout(timeout time.Duration) (R, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.value, f.err
	case <-timer.C:
		var zero R
		return zero, ErrFutureTimeout
	}
}

// IsReady reports whether the task has executed, without blocking.
func (f *Future[R]) IsReady() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
