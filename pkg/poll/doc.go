// Package poll waits for a remote task to reach a terminal status.
//
// A Waiter drives repeated invocation of a fetch operation until the
// fetched entity reports a terminal status or the deadline elapses. The
// first check happens immediately; subsequent checks are spaced by the
// poll interval, shortened near the deadline so the final check lands
// exactly on the boundary.
//
// Fetch failures stop the wait immediately. The fetch operation is
// expected to carry its own retry policy (composed via pkg/retry by the
// caller); retrying here as well would stack two backoff layers.
//
// Basic usage example:
//
//	waiter := poll.NewWaiter(2*time.Second, 10*time.Minute)
//
//	task, err := poll.Wait(waiter, ctx,
//		func(ctx context.Context) (*types.Task, error) {
//			return client.GetTask(ctx, taskID)
//		},
//		func(t *types.Task) types.TaskStatus { return t.Status },
//	)
package poll
