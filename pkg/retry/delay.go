package retry

import (
	"math"
	"math/rand"
	"time"
)

// Delay computes the wait before the retry following the given zero-based
// attempt. It is a pure function of its inputs apart from jitter.
//
// A positive server hint (Retry-After) overrides the backoff calculation
// entirely and is used without jitter, clamped to MaxDelay. Otherwise the
// configured backoff strategy produces a base value, jitter drawn uniformly
// from [0, 0.5×delay) is added, and the result is clamped to MaxDelay.
//
// When MaxDelay < BaseDelay the clamp can shrink the very first retry delay
// below one full backoff step; that behavior is intentional.
func Delay(attempt int, cfg Config, hint time.Duration) time.Duration {
	cfg = cfg.withDefaults()

	if hint > 0 {
		if hint > cfg.MaxDelay {
			return cfg.MaxDelay
		}
		return hint
	}

	if cfg.Backoff == BackoffNone {
		return 0
	}

	var delay time.Duration
	switch cfg.Backoff {
	case BackoffLinear:
		delay = cfg.BaseDelay * time.Duration(attempt+1)
	default: // exponential
		delay = time.Duration(float64(cfg.BaseDelay) * math.Pow(2, float64(attempt)))
	}

	// Jitter: random value in [0, 50%) of the delay.
	delay += time.Duration(rand.Float64() * float64(delay) * 0.5)

	if delay > cfg.MaxDelay {
		delay = cfg.MaxDelay
	}

	return delay
}
