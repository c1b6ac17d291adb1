package executor_test

import (
	"errors"
	"testing"
	"time"

	"github.com/poolkit-dev/poolkit/executor"
)

func TestFutureRepeatedGet(t *testing.T) {
	e := executor.New(1)
	defer func() { _ = e.Close(time.Second) }()

	f, err := executor.Submit(e, func() (string, error) {
		return "once", nil
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		v, err := f.Get()
		if err != nil {
			t.Fatalf("Get #%d returned error: %v", i, err)
		}
		if v != "once" {
			t.Errorf("Get #%d: expected %q, got %q", i, "once", v)
		}
	}
}

func TestFutureGetWithTimeout(t *testing.T) {
	e := executor.New(1)
	defer func() { _ = e.Close(time.Second) }()

	release := make(chan struct{})
	f, err := executor.Submit(e, func() (int, error) {
		<-release
		return 9, nil
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if _, err := f.GetWithTimeout(20 * time.Millisecond); !errors.Is(err, executor.ErrFutureTimeout) {
		t.Fatalf("expected ErrFutureTimeout, got %v", err)
	}

	close(release)

	// The timed-out wait must not consume the result.
	v, err := f.GetWithTimeout(time.Second)
	if err != nil {
		t.Fatalf("GetWithTimeout after release failed: %v", err)
	}
	if v != 9 {
		t.Errorf("expected 9, got %d", v)
	}
}

func TestFutureIsReady(t *testing.T) {
	e := executor.New(1)
	defer func() { _ = e.Close(time.Second) }()

	release := make(chan struct{})
	f, err := executor.Submit(e, func() (int, error) {
		<-release
		return 1, nil
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if f.IsReady() {
		t.Error("future ready before the task ran")
	}

	close(release)
	if _, err := f.Get(); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !f.IsReady() {
		t.Error("future not ready after Get returned")
	}
}
