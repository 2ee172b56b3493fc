// Package retry provides the retry executor used for all HumanRail API calls.
//
// Key features:
//
// 1. Classification-aware retries:
//   - HTTP 429 and 5xx responses are retried until attempts are exhausted
//   - Network-level failures with no response are retried unless cancelled
//   - Every other failure is terminal and surfaces on first occurrence
//
// 2. Backoff strategies:
//   - BackoffExponential: baseDelay × 2^attempt
//   - BackoffLinear: baseDelay × (attempt+1)
//   - BackoffNone: retry immediately
//
// 3. Jitter and clamping:
//   - Computed delays get uniform jitter in [0, 0.5×delay) to desynchronize
//     concurrent retries after a shared outage
//   - Server-supplied Retry-After hints are used verbatim, without jitter
//   - Every delay is clamped to MaxDelay
//
// Basic usage example:
//
//	executor := retry.NewExecutor(retry.DefaultConfig())
//
//	body, err := retry.Do(executor, ctx, func(ctx context.Context, attempt int) ([]byte, error) {
//		return callAPI(ctx)
//	})
//
// Configuration is a plain value; pass a modified copy to change behavior:
//
//	cfg := retry.DefaultConfig()
//	cfg.MaxRetries = 5
//	cfg.Backoff = retry.BackoffLinear
//	executor := retry.NewExecutor(cfg)
//
// Thread safety:
//
// Executor holds no mutable state; a single Executor may be shared by
// concurrent calls.
package retry
