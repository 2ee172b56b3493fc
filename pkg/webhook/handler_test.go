package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prime001/humanrail-sdk/pkg/types"
)

func signedRequest(t *testing.T, payload []byte, secret string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/humanrail", strings.NewReader(string(payload)))
	req.Header.Set(SignatureHeader, Construct(payload, secret, time.Now().Unix()))
	return req
}

func eventPayload(t *testing.T, status types.TaskStatus) []byte {
	t.Helper()
	event := types.WebhookEvent{
		ID:        "evt_1",
		Type:      types.WebhookEventTaskVerified,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Data:      types.Task{ID: "task_1", Status: status},
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return payload
}

func TestHandlerDispatchesVerifiedEvent(t *testing.T) {
	var got *types.WebhookEvent
	handler := NewHandler(testSecret, 5*time.Minute, func(ctx context.Context, event *types.WebhookEvent) error {
		got = event
		return nil
	})

	payload := eventPayload(t, types.TaskStatusVerified)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, signedRequest(t, payload, testSecret))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "evt_1", got.ID)
	assert.Equal(t, types.WebhookEventTaskVerified, got.Type)
	assert.Equal(t, types.TaskStatusVerified, got.Data.Status)
}

func TestHandlerRejectsInvalidSignature(t *testing.T) {
	called := false
	handler := NewHandler(testSecret, 5*time.Minute, func(ctx context.Context, event *types.WebhookEvent) error {
		called = true
		return nil
	})

	payload := eventPayload(t, types.TaskStatusVerified)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, signedRequest(t, payload, "whsec_wrong"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called, "handler must not run for unverified payloads")
}

func TestHandlerRejectsMissingSignature(t *testing.T) {
	handler := NewHandler(testSecret, 5*time.Minute, func(ctx context.Context, event *types.WebhookEvent) error {
		return nil
	})

	payload := eventPayload(t, types.TaskStatusVerified)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/humanrail", strings.NewReader(string(payload)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandlerRejectsMalformedEvent(t *testing.T) {
	handler := NewHandler(testSecret, 5*time.Minute, func(ctx context.Context, event *types.WebhookEvent) error {
		return nil
	})

	payload := []byte("{not json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, signedRequest(t, payload, testSecret))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerReportsProcessingFailure(t *testing.T) {
	handler := NewHandler(testSecret, 5*time.Minute, func(ctx context.Context, event *types.WebhookEvent) error {
		return errors.New("downstream unavailable")
	})

	payload := eventPayload(t, types.TaskStatusFailed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, signedRequest(t, payload, testSecret))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandlerRejectsNonPost(t *testing.T) {
	handler := NewHandler(testSecret, 5*time.Minute, func(ctx context.Context, event *types.WebhookEvent) error {
		return nil
	})

	req := httptest.NewRequest(http.MethodGet, "/webhooks/humanrail", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestParseEvent(t *testing.T) {
	payload := eventPayload(t, types.TaskStatusExpired)

	event, err := ParseEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, types.TaskStatusExpired, event.Data.Status)

	_, err = ParseEvent([]byte("not json"))
	assert.Error(t, err)
}
