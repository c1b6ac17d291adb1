package timing_test

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/poolkit-dev/poolkit/timing"
)

func TestStopwatchAccumulates(t *testing.T) {
	s := timing.New()
	time.Sleep(20 * time.Millisecond)

	if err := s.Pause(); err != nil {
		t.Fatalf("Pause failed: %v", err)
	}
	paused := s.Elapsed()
	if paused < 20*time.Millisecond {
		t.Errorf("expected at least 20ms elapsed, got %v", paused)
	}

	// Time spent paused must not count.
	time.Sleep(20 * time.Millisecond)
	if got := s.Elapsed(); got != paused {
		t.Errorf("elapsed advanced while paused: %v -> %v", paused, got)
	}

	if err := s.Resume(); err != nil {
		t.Fatalf("Resume failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	total := s.Elapsed()
	if total < 30*time.Millisecond {
		t.Errorf("expected at least 30ms accumulated, got %v", total)
	}
}

func TestStopwatchMisuse(t *testing.T) {
	t.Run("start while running", func(t *testing.T) {
		s := timing.New()
		if err := s.Start(); !errors.Is(err, timing.ErrAlreadyRunning) {
			t.Errorf("expected ErrAlreadyRunning, got %v", err)
		}
	})

	t.Run("stop when never started", func(t *testing.T) {
		s := timing.NewStopped()
		if err := s.Stop(); !errors.Is(err, timing.ErrNotRunning) {
			t.Errorf("expected ErrNotRunning, got %v", err)
		}
	})

	t.Run("stop while paused", func(t *testing.T) {
		s := timing.New()
		if err := s.Pause(); err != nil {
			t.Fatalf("Pause failed: %v", err)
		}
		if err := s.Stop(); !errors.Is(err, timing.ErrNotRunning) {
			t.Errorf("expected ErrNotRunning, got %v", err)
		}
	})

	t.Run("pause twice", func(t *testing.T) {
		s := timing.New()
		if err := s.Pause(); err != nil {
			t.Fatalf("Pause failed: %v", err)
		}
		if err := s.Pause(); !errors.Is(err, timing.ErrNotRunning) {
			t.Errorf("expected ErrNotRunning, got %v", err)
		}
	})

	t.Run("resume when not paused", func(t *testing.T) {
		s := timing.New()
		if err := s.Resume(); !errors.Is(err, timing.ErrNotPaused) {
			t.Errorf("expected ErrNotPaused, got %v", err)
		}
	})
}

func TestStopwatchReset(t *testing.T) {
	s := timing.New()
	time.Sleep(5 * time.Millisecond)
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	s.Reset()
	if s.Elapsed() != 0 {
		t.Errorf("expected zero elapsed after Reset, got %v", s.Elapsed())
	}
	if s.IsRunning() || s.IsPaused() {
		t.Error("Reset stopwatch should be neither running nor paused")
	}
	if err := s.Start(); err != nil {
		t.Errorf("Start after Reset failed: %v", err)
	}
}

func TestStopwatchStates(t *testing.T) {
	s := timing.NewStopped()
	if s.IsRunning() {
		t.Error("NewStopped stopwatch reports running")
	}

	_ = s.Start()
	if !s.IsRunning() || s.IsPaused() {
		t.Error("started stopwatch should be running, not paused")
	}

	_ = s.Pause()
	if s.IsRunning() || !s.IsPaused() {
		t.Error("paused stopwatch should be paused, not running")
	}

	_ = s.Resume()
	if !s.IsRunning() {
		t.Error("resumed stopwatch should be running")
	}
}

func TestTrack(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	func() {
		defer timing.Track(logger, "scoped-work")()
		time.Sleep(10 * time.Millisecond)
	}()

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if entries[0].Message != "scoped-work" {
		t.Errorf("expected message %q, got %q", "scoped-work", entries[0].Message)
	}

	fields := entries[0].ContextMap()
	elapsed, ok := fields["elapsed"].(time.Duration)
	if !ok {
		t.Fatalf("expected an elapsed duration field, got %v", fields)
	}
	if elapsed < 10*time.Millisecond {
		t.Errorf("expected at least 10ms elapsed, got %v", elapsed)
	}
}
