// Package timing provides small measurement helpers: an accumulating
// stopwatch and a scoped duration logger. Nothing here feeds back into the
// components being measured; the package exists purely for reporting.
package timing

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrAlreadyRunning is returned by Start on a running stopwatch.
	ErrAlreadyRunning = errors.New("timing: stopwatch is already running")

	// ErrNotRunning is returned by Stop and Pause when the stopwatch is not
	// actively running.
	ErrNotRunning = errors.New("timing: stopwatch is not running")

	// ErrNotPaused is returned by Resume when the stopwatch is not paused.
	ErrNotPaused = errors.New("timing: stopwatch is not paused")
)

// Stopwatch accumulates elapsed time on the monotonic clock across
// start/stop and pause/resume cycles. Not safe for concurrent use.
type Stopwatch struct {
	running     bool
	paused      bool
	accumulated time.Duration
	startedAt   time.Time
}

// New returns a stopwatch that is already running.
func New() *Stopwatch {
	s := &Stopwatch{}
	_ = s.Start()
	return s
}

// NewStopped returns a stopwatch that has not been started.
func NewStopped() *Stopwatch {
	return &Stopwatch{}
}

// Start begins measuring. Starting a running stopwatch is an error.
func (s *Stopwatch) Start() error {
	if s.running {
		return ErrAlreadyRunning
	}
	s.startedAt = time.Now()
	s.running = true
	s.paused = false
	return nil
}

// Stop ends the current measurement and folds it into the accumulated total.
func (s *Stopwatch) Stop() error {
	if !s.running || s.paused {
		return ErrNotRunning
	}
	s.accumulated += time.Since(s.startedAt)
	s.running = false
	return nil
}

// Pause suspends measurement without ending it; Resume continues it.
func (s *Stopwatch) Pause() error {
	if !s.running || s.paused {
		return ErrNotRunning
	}
	s.accumulated += time.Since(s.startedAt)
	s.paused = true
	return nil
}

// Resume continues a paused measurement.
func (s *Stopwatch) Resume() error {
	if !s.paused {
		return ErrNotPaused
	}
	s.startedAt = time.Now()
	s.paused = false
	return nil
}

// Reset clears all state, including the accumulated total.
func (s *Stopwatch) Reset() {
	*s = Stopwatch{}
}

// Elapsed returns the accumulated duration, including the currently running
// segment if any.
func (s *Stopwatch) Elapsed() time.Duration {
	if s.running && !s.paused {
		return s.accumulated + time.Since(s.startedAt)
	}
	return s.accumulated
}

// IsRunning reports whether the stopwatch is measuring right now.
func (s *Stopwatch) IsRunning() bool {
	return s.running && !s.paused
}

// IsPaused reports whether the stopwatch is paused.
func (s *Stopwatch) IsPaused() bool {
	return s.paused
}

// Track logs the elapsed time of a scope on exit:
//
//	defer timing.Track(logger, "load-index")()
func Track(logger *zap.Logger, name string) func() {
	start := time.Now()
	return func() {
		logger.Info(name, zap.Duration("elapsed", time.Since(start)))
	}
}
