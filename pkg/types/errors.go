// Package types defines error types
package types

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrorKind discriminates API error variants. A single switch over the
// kind replaces a per-status error hierarchy.
type ErrorKind string

const (
	// KindTransport is a network-level failure with no HTTP response.
	KindTransport ErrorKind = "transport"

	// KindRateLimited is an HTTP 429 response.
	KindRateLimited ErrorKind = "rate_limited"

	// KindServer is an HTTP 5xx response.
	KindServer ErrorKind = "server"

	// KindClient is any other non-2xx response; never retried.
	KindClient ErrorKind = "client"

	// KindTimeout is a polling or request deadline that elapsed.
	KindTimeout ErrorKind = "timeout"

	// KindCancelled is an external cancellation observed during a wait.
	KindCancelled ErrorKind = "cancelled"
)

// APIError is the error type for all failures surfaced by the SDK.
// Kind is always set; the remaining fields are populated per variant.
type APIError struct {
	Kind    ErrorKind
	Message string

	// StatusCode is the HTTP status code, zero for transport failures.
	StatusCode int

	// RetryAfter is the server-supplied retry hint, zero when absent.
	RetryAfter time.Duration

	// RequestID is the X-Request-Id of the failing response, if any.
	RequestID string

	// Body is the decoded error response from the API, if any.
	Body *APIErrorResponse

	// Elapsed and LastStatus describe a polling timeout.
	Elapsed    time.Duration
	LastStatus TaskStatus

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("humanrail: %s (status=%d, request_id=%s)", e.Message, e.StatusCode, e.RequestID)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("humanrail: %s (status=%d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("humanrail: %s", e.Message)
}

// Unwrap returns the underlying error
func (e *APIError) Unwrap() error {
	return e.Cause
}

// ErrorFromStatus builds an APIError for a non-2xx response, mapping the
// status code to its kind.
func ErrorFromStatus(statusCode int, body *APIErrorResponse, requestID string, retryAfter time.Duration) *APIError {
	message := fmt.Sprintf("API request failed with status %d", statusCode)
	if body != nil && body.Error.Message != "" {
		message = body.Error.Message
	}

	kind := KindClient
	switch {
	case statusCode == 429:
		kind = KindRateLimited
	case statusCode >= 500 && statusCode <= 599:
		kind = KindServer
	}

	return &APIError{
		Kind:       kind,
		Message:    message,
		StatusCode: statusCode,
		RetryAfter: retryAfter,
		RequestID:  requestID,
		Body:       body,
	}
}

// Retryable reports whether an error may be retried. Rate limits, 5xx
// responses and status-less transport failures are retryable; everything
// else, including context cancellation, is terminal.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case KindTransport, KindRateLimited, KindServer:
			return true
		default:
			return false
		}
	}

	// Errors without a status code are treated as transport-level faults.
	return true
}

// RetryAfterHint returns the server-supplied retry hint carried by err,
// or zero when there is none.
func RetryAfterHint(err error) time.Duration {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.RetryAfter
	}
	return 0
}

// KindOf returns the kind of the APIError in err's chain, or the empty
// string when err carries no APIError.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}
