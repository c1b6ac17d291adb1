package executor

import (
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Option is a functional option for configuring the executor.
type Option func(*config)

type config struct {
	queueCapacity int
	limiter       *rate.Limiter
	logger        *zap.Logger
}

func defaultConfig() *config {
	return &config{
		logger: zap.NewNop(),
	}
}

// WithQueueCapacity bounds the task queue. Submissions beyond the bound fail
// with ErrQueueFull instead of growing the queue. If not specified, the
// queue is unbounded.
func WithQueueCapacity(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.queueCapacity = n
		}
	}
}

// WithRateLimit sets a rate limiter for controlling task throughput.
// tasksPerSecond specifies the maximum number of tasks to start per second,
// burst the number of tasks that may start back-to-back. Useful when tasks
// call out to external services. If not specified, no rate limiting is
// applied.
//
// Example:
//
//	WithRateLimit(10, 5) // Allow 10 tasks/sec with burst of 5
func WithRateLimit(tasksPerSecond float64, burst int) Option {
	return func(cfg *config) {
		if tasksPerSecond > 0 && burst > 0 {
			cfg.limiter = rate.NewLimiter(rate.Limit(tasksPerSecond), burst)
		}
	}
}

// WithLogger sets the logger workers use to report task failures.
// Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}
