// Package executor provides a bounded task executor: a fixed set of worker
// goroutines draining one shared FIFO queue, with a future-style handle for
// every submitted task.
//
// The executor starts its workers at construction and runs until stopped.
// Submission binds a callable into a type-erased task and returns a Future
// that resolves to the task's value or its failure. Stopping is idempotent
// and never discards queued work: tasks admitted before Stop still run to
// completion, and their futures still resolve.
//
// # Basic Usage
//
//	e := executor.New(4)
//	defer e.Close(0)
//
//	f, err := executor.Submit(e, func() (int, error) {
//	    return 6 * 7, nil
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	v, err := f.Get() // blocks until the task has executed
//
// # Ordering
//
// Tasks begin executing in submission order across the whole pool; the shared
// queue, not any per-worker structure, is the single ordering authority. No
// guarantee is made about which worker runs which task.
//
// # Shutdown
//
// Stop flips the executor to stopped and wakes every worker; a worker
// terminates only once the executor is stopped AND the queue is empty, so
// pending tasks are drained first. Close is Stop plus waiting for all workers
// to terminate, with an optional timeout:
//
//	e.Stop()                      // reject new work, keep draining
//	if err := e.Close(5 * time.Second); err != nil {
//	    log.Printf("shutdown: %v", err)
//	}
//
// # Failure Handling
//
// A task returning an error, or panicking, affects only its own Future: the
// failure is recovered at the task boundary, logged, and delivered through
// Get. Panics are wrapped with ErrTaskPanic and carry the stack trace. One
// task's failure never terminates a worker or corrupts the queue.
//
// Submission after Stop fails synchronously with ErrStopped; the task is
// never queued. There is no mechanism to cancel a task after admission.
package executor
