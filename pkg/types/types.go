// Package types defines the task model shared across the SDK
package types

// TaskStatus represents the status of a task in the escalation pipeline.
//
// Lifecycle: posted → assigned → submitted → verified|failed|cancelled|expired
type TaskStatus string

const (
	TaskStatusPosted    TaskStatus = "posted"
	TaskStatusAssigned  TaskStatus = "assigned"
	TaskStatusSubmitted TaskStatus = "submitted"
	TaskStatusVerified  TaskStatus = "verified"
	TaskStatusFailed    TaskStatus = "failed"
	TaskStatusCancelled TaskStatus = "cancelled"
	TaskStatusExpired   TaskStatus = "expired"
)

// IsTerminal reports whether the status is one from which the task
// cannot transition further. The terminal set is closed: verified,
// failed, cancelled and expired.
func (s TaskStatus) IsTerminal() bool {
	switch s {
	case TaskStatusVerified, TaskStatusFailed, TaskStatusCancelled, TaskStatusExpired:
		return true
	default:
		return false
	}
}

// RiskTier determines worker pool selection and verification depth.
type RiskTier string

const (
	RiskTierLow      RiskTier = "low"
	RiskTierMedium   RiskTier = "medium"
	RiskTierHigh     RiskTier = "high"
	RiskTierCritical RiskTier = "critical"
)

// PayoutCurrency is the currency used for worker payouts.
type PayoutCurrency string

const (
	PayoutCurrencyUSD  PayoutCurrency = "USD"
	PayoutCurrencySATS PayoutCurrency = "SATS"
	PayoutCurrencyBTC  PayoutCurrency = "BTC"
)

// PayoutRail is the payment rail used for payouts.
type PayoutRail string

const (
	PayoutRailLightning PayoutRail = "lightning"
	PayoutRailStrike    PayoutRail = "strike"
	PayoutRailInternal  PayoutRail = "internal"
)

// Payout is the payout configuration for a task.
type Payout struct {
	Currency PayoutCurrency `json:"currency"`
	// MaxAmount is the maximum amount to pay for this task.
	MaxAmount float64 `json:"maxAmount"`
}

// PayoutResult contains payout details once a task has been paid.
type PayoutResult struct {
	ID       string         `json:"id"`
	Amount   float64        `json:"amount"`
	Currency PayoutCurrency `json:"currency"`
	Rail     PayoutRail     `json:"rail"`
	// PaidAt is the ISO 8601 timestamp of when the payout was executed.
	PaidAt string `json:"paidAt"`
}

// TaskCreateRequest is the request body for creating a new task.
type TaskCreateRequest struct {
	// IdempotencyKey prevents duplicate task creation on retry.
	IdempotencyKey string `json:"idempotencyKey"`
	// TaskType identifies the kind of work, e.g. "refund_eligibility".
	TaskType string `json:"taskType"`
	// RiskTier determines routing and verification depth. Defaults to "medium".
	RiskTier RiskTier `json:"riskTier,omitempty"`
	// SLASeconds is the SLA in seconds. Defaults to 600.
	SLASeconds int `json:"slaSeconds,omitempty"`
	// Payload is arbitrary context handed to the human worker.
	Payload map[string]any `json:"payload"`
	// OutputSchema is the JSON Schema the worker's output must conform to.
	OutputSchema map[string]any `json:"outputSchema"`
	Payout       Payout         `json:"payout"`
	// CallbackURL is an optional webhook URL for task lifecycle events.
	CallbackURL string `json:"callbackUrl,omitempty"`
	// Metadata is client-side tracking data, never shown to workers.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Task is a task in the escalation pipeline.
type Task struct {
	ID             string         `json:"id"`
	IdempotencyKey string         `json:"idempotencyKey"`
	Status         TaskStatus     `json:"status"`
	TaskType       string         `json:"taskType"`
	RiskTier       RiskTier       `json:"riskTier"`
	SLASeconds     int            `json:"slaSeconds"`
	Payload        map[string]any `json:"payload"`
	OutputSchema   map[string]any `json:"outputSchema"`
	Payout         Payout         `json:"payout"`
	CallbackURL    string         `json:"callbackUrl,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	// Output is the verified worker output, present only when status is "verified".
	Output map[string]any `json:"output,omitempty"`
	// PayoutResult is present only after payment.
	PayoutResult *PayoutResult `json:"payoutResult,omitempty"`
	// FailureReason is present when status is "failed".
	FailureReason string `json:"failureReason,omitempty"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
	ExpiresAt     string `json:"expiresAt"`
}

// TaskCancelResult is the response body of the cancel endpoint.
type TaskCancelResult struct {
	ID          string     `json:"id"`
	Status      TaskStatus `json:"status"`
	CancelledAt string     `json:"cancelledAt"`
}

// TaskListParams are the filter and pagination parameters for listing tasks.
type TaskListParams struct {
	Status   TaskStatus
	TaskType string
	// Limit is the maximum number of tasks to return. Defaults to 20 server-side.
	Limit int
	// After is the pagination cursor (task ID to start after).
	After         string
	CreatedAfter  string
	CreatedBefore string
}

// TaskListResponse is a paginated list of tasks.
type TaskListResponse struct {
	Data    []Task `json:"data"`
	HasMore bool   `json:"hasMore"`
	// NextCursor is passed as After to fetch the next page.
	NextCursor string `json:"nextCursor,omitempty"`
}

// WebhookEventType is the type of a webhook event.
type WebhookEventType string

const (
	WebhookEventTaskPosted    WebhookEventType = "task.posted"
	WebhookEventTaskAssigned  WebhookEventType = "task.assigned"
	WebhookEventTaskSubmitted WebhookEventType = "task.submitted"
	WebhookEventTaskVerified  WebhookEventType = "task.verified"
	WebhookEventTaskFailed    WebhookEventType = "task.failed"
	WebhookEventTaskCancelled WebhookEventType = "task.cancelled"
	WebhookEventTaskExpired   WebhookEventType = "task.expired"
)

// WebhookEvent is an event delivered to a task's callback URL.
type WebhookEvent struct {
	ID        string           `json:"id"`
	Type      WebhookEventType `json:"type"`
	CreatedAt string           `json:"createdAt"`
	// Data is the task as of the moment the event was emitted.
	Data Task `json:"data"`
}

// APIErrorResponse is the error response body returned by the API.
type APIErrorResponse struct {
	Error struct {
		Type    string         `json:"type"`
		Message string         `json:"message"`
		Code    string         `json:"code,omitempty"`
		Details map[string]any `json:"details,omitempty"`
	} `json:"error"`
	RequestID string `json:"requestId"`
}
