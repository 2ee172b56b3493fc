package retry

import "time"

// Backoff selects the delay pattern between retry attempts.
type Backoff string

const (
	// BackoffExponential doubles the delay each attempt: 1s, 2s, 4s, 8s, ...
	BackoffExponential Backoff = "exponential"
	// BackoffLinear grows the delay by BaseDelay each attempt: 1s, 2s, 3s, ...
	BackoffLinear Backoff = "linear"
	// BackoffNone retries immediately without delay.
	BackoffNone Backoff = "none"
)

// Config configures retry behavior. It is a plain immutable value: copies
// are passed into each execution and never shared mutably across calls.
type Config struct {
	// MaxRetries is the number of retry attempts after the first try, so
	// the total attempt count is MaxRetries+1. Zero means a single attempt.
	MaxRetries int

	// Backoff is the delay strategy between attempts.
	Backoff Backoff

	// BaseDelay is the base delay for backoff calculation.
	BaseDelay time.Duration

	// MaxDelay caps every computed delay, including server hints.
	MaxDelay time.Duration
}

// DefaultConfig returns the retry configuration used by the client unless
// overridden: 3 retries with exponential backoff between 1s and 30s.
func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		Backoff:    BackoffExponential,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
	}
}

// withDefaults fills zero-valued fields so a partially specified Config
// behaves sensibly.
func (c Config) withDefaults() Config {
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.Backoff == "" {
		c.Backoff = BackoffExponential
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = 1 * time.Second
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 30 * time.Second
	}
	return c
}
