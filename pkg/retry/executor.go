package retry

import (
	"context"

	"github.com/prime001/humanrail-sdk/pkg/types"
)

// Func is the operation to retry. It receives the zero-based attempt index.
type Func[T any] func(ctx context.Context, attempt int) (T, error)

// Logger is the optional logging interface for retry events. Both
// *logrus.Logger and *logrus.Entry satisfy it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Executor drives repeated invocation of an operation according to its
// Config. The zero value is not usable; construct with NewExecutor.
// Executor is stateless across calls and safe for concurrent use.
type Executor struct {
	config Config
	clock  types.Clock
	logger Logger
}

// NewExecutor creates an executor for the given configuration. A nil
// logger disables logging.
func NewExecutor(cfg Config) *Executor {
	return &Executor{
		config: cfg.withDefaults(),
		clock:  types.NewRealClock(),
	}
}

// WithClock returns a copy of the executor using the given clock.
func (e *Executor) WithClock(clock types.Clock) *Executor {
	copied := *e
	copied.clock = clock
	return &copied
}

// WithLogger returns a copy of the executor logging retry events to logger.
func (e *Executor) WithLogger(logger Logger) *Executor {
	copied := *e
	copied.logger = logger
	return &copied
}

// Do executes op with retry logic.
//
// op is invoked at most MaxRetries+1 times. The first success returns
// immediately; a terminal failure returns immediately with no further
// attempts; a retryable failure sleeps per Delay and tries again. When
// attempts are exhausted the last observed failure is returned as-is.
//
// The wait between attempts observes ctx, so an in-flight backoff sleep
// is always interruptible; cancellation surfaces as an APIError with
// KindCancelled, distinct from exhaustion.
func Do[T any](e *Executor, ctx context.Context, op Func[T]) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= e.config.MaxRetries; attempt++ {
		result, err := op(ctx, attempt)
		if err == nil {
			if e.logger != nil && attempt > 0 {
				e.logger.Infof("operation succeeded on attempt %d", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		if !types.Retryable(err) {
			if e.logger != nil {
				e.logger.Debugf("failure is terminal, not retrying: %v", err)
			}
			return zero, err
		}

		// A status-less transport fault is only retryable while the
		// caller has not already cancelled.
		if ctx.Err() != nil {
			return zero, cancelError(ctx)
		}

		if attempt == e.config.MaxRetries {
			break
		}

		delay := Delay(attempt, e.config, types.RetryAfterHint(err))
		if e.logger != nil {
			e.logger.Warnf("attempt %d failed, retrying in %v: %v", attempt+1, delay, err)
		}

		if delay > 0 {
			timer := e.clock.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, cancelError(ctx)
			case <-timer.C():
			}
		}
	}

	if e.logger != nil {
		e.logger.Errorf("all %d attempts failed: %v", e.config.MaxRetries+1, lastErr)
	}
	return zero, lastErr
}

func cancelError(ctx context.Context) *types.APIError {
	return &types.APIError{
		Kind:    types.KindCancelled,
		Message: "operation cancelled while waiting to retry",
		Cause:   ctx.Err(),
	}
}
