package executor

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrTaskPanic marks a task failure that was recovered from a panic rather
// than returned as an error. The wrapped error carries the panic value and
// the stack trace; match it with errors.Is.
var ErrTaskPanic = errors.New("executor: task panicked")

// TaskFunc is a unit of work producing a value of type R.
type TaskFunc[R any] func() (R, error)

// boundTask is the type-erased form a task takes on the queue: the typed
// result has already been routed into the task's own Future, only the error
// surfaces for worker-level logging.
type boundTask func() error

// Submit binds fn into a task, appends it to the tail of the executor's
// queue, wakes a worker, and returns the Future that will resolve to fn's
// outcome. It fails with ErrStopped when the executor has been stopped (the
// task is not queued) and with ErrQueueFull on a bounded queue at capacity.
func Submit[R any](e *Executor, fn TaskFunc[R]) (*Future[R], error) {
	f := newFuture[R]()

	t := func() error {
		value, err := invoke(fn)
		f.deliver(value, err)
		return err
	}

	if err := e.enqueue(t); err != nil {
		return nil, err
	}
	return f, nil
}

// Do submits a task that produces no value. The returned Future resolves
// once the task has executed and carries only its error, if any.
func Do(e *Executor, fn func() error) (*Future[struct{}], error) {
	return Submit(e, func() (struct{}, error) {
		return struct{}{}, fn()
	})
}

// invoke runs fn with panic recovery so a panicking task reaches its Future
// as an error instead of taking the worker down.
func invoke[R any](fn TaskFunc[R]) (value R, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("%w: %v\nstack trace:\n%s", ErrTaskPanic, r, buf[:n])
		}
	}()

	return fn()
}
