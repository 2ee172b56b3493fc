package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prime001/humanrail-sdk/pkg/types"
)

// maxBodyBytes bounds webhook request bodies; HumanRail events are small.
const maxBodyBytes = 1 << 20

// ParseEvent decodes a verified webhook payload into a WebhookEvent.
func ParseEvent(payload []byte) (*types.WebhookEvent, error) {
	var event types.WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("webhook: failed to decode event: %w", err)
	}
	return &event, nil
}

// EventFunc processes a verified webhook event. Returning an error makes
// the handler respond 500 so the service redelivers the event.
type EventFunc func(ctx context.Context, event *types.WebhookEvent) error

// Handler is an http.Handler that verifies inbound event signatures and
// dispatches verified events to an EventFunc.
type Handler struct {
	verifier *Verifier
	handle   EventFunc
}

// NewHandler creates a webhook handler with the given signing secret and
// replay tolerance.
func NewHandler(secret string, tolerance time.Duration, fn EventFunc) *Handler {
	return &Handler{
		verifier: NewVerifier(secret, tolerance),
		handle:   fn,
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "failed to read payload", http.StatusBadRequest)
		return
	}

	if !h.verifier.Verify(payload, r.Header.Get(SignatureHeader)) {
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	event, err := ParseEvent(payload)
	if err != nil {
		http.Error(w, "malformed event payload", http.StatusBadRequest)
		return
	}

	if err := h.handle(r.Context(), event); err != nil {
		http.Error(w, "event processing failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
