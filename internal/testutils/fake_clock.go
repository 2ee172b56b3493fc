package testutils

import (
	"sync"
	"time"

	"github.com/prime001/humanrail-sdk/pkg/types"
)

// FakeClock is a deterministic types.Clock for tests that assert on sleep
// durations. Timers fire immediately and the recorded duration advances
// the fake's notion of now, so a retry or poll loop runs to completion
// without any real sleeping.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration

	// HoldTimers makes subsequently created timers never fire, for
	// exercising cancellation during a wait.
	HoldTimers bool
}

// NewFakeClock creates a fake clock starting at the given instant.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now returns the fake's current time
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Since returns the fake time elapsed since t
func (c *FakeClock) Since(t time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now.Sub(t)
}

// NewTimer records the requested duration, advances the fake time by it
// and returns an already-fired timer (unless HoldTimers is set).
func (c *FakeClock) NewTimer(d time.Duration) types.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sleeps = append(c.sleeps, d)

	ch := make(chan time.Time, 1)
	if !c.HoldTimers {
		c.now = c.now.Add(d)
		ch <- c.now
	}
	return &fakeTimer{ch: ch}
}

// Sleeps returns the durations of all timers created so far.
func (c *FakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.sleeps))
	copy(out, c.sleeps)
	return out
}

type fakeTimer struct {
	ch chan time.Time
}

func (t *fakeTimer) C() <-chan time.Time {
	return t.ch
}

func (t *fakeTimer) Stop() bool {
	return true
}
