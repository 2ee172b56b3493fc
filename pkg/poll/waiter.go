package poll

import (
	"context"
	"fmt"
	"time"

	"github.com/prime001/humanrail-sdk/pkg/types"
)

const (
	// DefaultInterval is the poll interval used when none is configured.
	DefaultInterval = 2 * time.Second
	// DefaultTimeout is the deadline used when none is configured.
	DefaultTimeout = 10 * time.Minute
)

// FetchFunc retrieves the current state of the remote entity.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// StatusFunc extracts the lifecycle status from a fetched entity.
type StatusFunc[T any] func(v T) types.TaskStatus

// Waiter polls a remote entity until it reaches a terminal status.
// It holds no mutable state and is safe for concurrent use.
type Waiter struct {
	interval time.Duration
	timeout  time.Duration
	clock    types.Clock
}

// NewWaiter creates a waiter with the given poll interval and deadline.
// Non-positive values fall back to the defaults.
func NewWaiter(interval, timeout time.Duration) *Waiter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Waiter{
		interval: interval,
		timeout:  timeout,
		clock:    types.NewRealClock(),
	}
}

// WithClock returns a copy of the waiter using the given clock.
func (w *Waiter) WithClock(clock types.Clock) *Waiter {
	copied := *w
	copied.clock = clock
	return &copied
}

// Wait fetches until status reports a terminal value or the deadline
// elapses.
//
// The first check runs immediately with no prior delay. Between checks
// the waiter sleeps min(interval, remaining budget), so it never
// busy-polls and never issues a check after the deadline except the
// final check landing exactly on the boundary — a terminal status
// observed on that final check still counts as success.
//
// A deadline expiry returns an APIError with KindTimeout carrying the
// elapsed duration and the last observed non-terminal status. A fetch
// failure or a cancelled ctx stops the wait immediately.
func Wait[T any](w *Waiter, ctx context.Context, fetch FetchFunc[T], status StatusFunc[T]) (T, error) {
	var zero T

	start := w.clock.Now()
	deadline := start.Add(w.timeout)

	for {
		v, err := fetch(ctx)
		if err != nil {
			return zero, err
		}
		current := status(v)
		if current.IsTerminal() {
			return v, nil
		}

		remaining := deadline.Sub(w.clock.Now())
		if remaining <= 0 {
			return zero, &types.APIError{
				Kind:       types.KindTimeout,
				Message:    fmt.Sprintf("no terminal status within %v (last status %q)", w.timeout, current),
				Elapsed:    w.clock.Since(start),
				LastStatus: current,
			}
		}

		sleep := w.interval
		if remaining < sleep {
			sleep = remaining
		}

		timer := w.clock.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, &types.APIError{
				Kind:    types.KindCancelled,
				Message: "wait cancelled before a terminal status was observed",
				Cause:   ctx.Err(),
			}
		case <-timer.C():
		}
	}
}
