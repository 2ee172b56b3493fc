package poll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prime001/humanrail-sdk/internal/testutils"
	"github.com/prime001/humanrail-sdk/pkg/types"
)

type taskRef struct {
	id     string
	status types.TaskStatus
}

// statusSequence returns a fetch func yielding the given statuses in
// order, repeating the last one indefinitely.
func statusSequence(calls *int, statuses ...types.TaskStatus) FetchFunc[taskRef] {
	return func(ctx context.Context) (taskRef, error) {
		i := *calls
		*calls++
		if i >= len(statuses) {
			i = len(statuses) - 1
		}
		return taskRef{id: "task_1", status: statuses[i]}, nil
	}
}

func refStatus(r taskRef) types.TaskStatus {
	return r.status
}

func TestWaitImmediateTerminal(t *testing.T) {
	mock := testutils.NewMockClock(t)
	waiter := NewWaiter(2*time.Second, time.Minute).WithClock(testutils.NewClockWrapper(mock))

	calls := 0
	fetch := statusSequence(&calls, types.TaskStatusVerified)

	got, err := Wait(waiter, context.Background(), fetch, refStatus)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.status != types.TaskStatusVerified {
		t.Errorf("status = %q, want verified", got.status)
	}
	if calls != 1 {
		t.Errorf("fetch calls = %d, want 1 (no sleep before the first check)", calls)
	}
}

func TestWaitPollsUntilTerminal(t *testing.T) {
	clock := testutils.NewFakeClock(time.Now())
	waiter := NewWaiter(2*time.Second, time.Minute).WithClock(clock)

	calls := 0
	fetch := statusSequence(&calls,
		types.TaskStatusPosted,
		types.TaskStatusAssigned,
		types.TaskStatusVerified,
	)

	got, err := Wait(waiter, context.Background(), fetch, refStatus)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.status != types.TaskStatusVerified {
		t.Errorf("status = %q, want verified", got.status)
	}
	if calls != 3 {
		t.Errorf("fetch calls = %d, want 3", calls)
	}

	sleeps := clock.Sleeps()
	if len(sleeps) != 2 || sleeps[0] != 2*time.Second || sleeps[1] != 2*time.Second {
		t.Errorf("sleeps = %v, want [2s 2s]", sleeps)
	}
}

func TestWaitTimeout(t *testing.T) {
	clock := testutils.NewFakeClock(time.Now())
	waiter := NewWaiter(2*time.Second, 5*time.Second).WithClock(clock)

	calls := 0
	fetch := statusSequence(&calls, types.TaskStatusPosted)

	_, err := Wait(waiter, context.Background(), fetch, refStatus)
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}

	var apiErr *types.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *types.APIError, got %T", err)
	}
	if apiErr.Kind != types.KindTimeout {
		t.Errorf("kind = %q, want timeout", apiErr.Kind)
	}
	if apiErr.Elapsed != 5*time.Second {
		t.Errorf("elapsed = %v, want 5s", apiErr.Elapsed)
	}
	if apiErr.LastStatus != types.TaskStatusPosted {
		t.Errorf("last status = %q, want posted", apiErr.LastStatus)
	}

	// The final sleep is shortened so the last check lands exactly on
	// the deadline.
	sleeps := clock.Sleeps()
	want := []time.Duration{2 * time.Second, 2 * time.Second, 1 * time.Second}
	if len(sleeps) != len(want) {
		t.Fatalf("sleeps = %v, want %v", sleeps, want)
	}
	for i := range want {
		if sleeps[i] != want[i] {
			t.Fatalf("sleeps = %v, want %v", sleeps, want)
		}
	}
	if calls != 4 {
		t.Errorf("fetch calls = %d, want 4", calls)
	}
}

func TestWaitTerminalOnDeadlineBoundary(t *testing.T) {
	clock := testutils.NewFakeClock(time.Now())
	waiter := NewWaiter(2*time.Second, 5*time.Second).WithClock(clock)

	calls := 0
	fetch := statusSequence(&calls,
		types.TaskStatusPosted,
		types.TaskStatusPosted,
		types.TaskStatusPosted,
		types.TaskStatusVerified, // observed by the final check at t=5s
	)

	got, err := Wait(waiter, context.Background(), fetch, refStatus)
	if err != nil {
		t.Fatalf("expected success on the deadline boundary, got %v", err)
	}
	if got.status != types.TaskStatusVerified {
		t.Errorf("status = %q, want verified", got.status)
	}
	if calls != 4 {
		t.Errorf("fetch calls = %d, want 4", calls)
	}
}

func TestWaitFetchErrorStopsImmediately(t *testing.T) {
	clock := testutils.NewFakeClock(time.Now())
	waiter := NewWaiter(2*time.Second, time.Minute).WithClock(clock)

	fetchErr := &types.APIError{Kind: types.KindServer, StatusCode: 503, Message: "unavailable"}
	calls := 0
	fetch := func(ctx context.Context) (taskRef, error) {
		calls++
		if calls == 2 {
			return taskRef{}, fetchErr
		}
		return taskRef{status: types.TaskStatusPosted}, nil
	}

	_, err := Wait(waiter, context.Background(), fetch, refStatus)
	if !errors.Is(err, fetchErr) {
		t.Fatalf("expected the fetch error as-is, got %v", err)
	}
	if calls != 2 {
		t.Errorf("fetch calls = %d, want 2 (no retry of a failed fetch)", calls)
	}
}

func TestWaitCancelledDuringSleep(t *testing.T) {
	clock := testutils.NewFakeClock(time.Now())
	clock.HoldTimers = true
	waiter := NewWaiter(2*time.Second, time.Minute).WithClock(clock)

	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	fetch := func(c context.Context) (taskRef, error) {
		calls++
		return taskRef{status: types.TaskStatusPosted}, nil
	}

	done := make(chan struct{})
	var err error
	go func() {
		defer close(done)
		_, err = Wait(waiter, ctx, fetch, refStatus)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	<-done

	var apiErr *types.APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != types.KindCancelled {
		t.Fatalf("expected KindCancelled error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("fetch calls = %d, want 1", calls)
	}
}

func TestNewWaiterDefaults(t *testing.T) {
	waiter := NewWaiter(0, 0)

	if waiter.interval != DefaultInterval {
		t.Errorf("interval = %v, want %v", waiter.interval, DefaultInterval)
	}
	if waiter.timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", waiter.timeout, DefaultTimeout)
	}
}
