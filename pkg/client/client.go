package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/prime001/humanrail-sdk/pkg/poll"
	"github.com/prime001/humanrail-sdk/pkg/retry"
	"github.com/prime001/humanrail-sdk/pkg/types"
)

const (
	defaultBaseURL = "https://api.humanrail.dev/v1"
	defaultTimeout = 30 * time.Second
	sdkVersion     = "0.1.0"
	userAgent      = "humanrail-sdk-go/" + sdkVersion
)

// Config configures a Client. It is a plain value populated with defaults
// by New; construct one with DefaultConfig and override fields as needed.
type Config struct {
	// APIKey authenticates requests. Required.
	APIKey string

	// BaseURL is the API root. Defaults to the production endpoint.
	BaseURL string

	// Timeout is the per-request HTTP timeout. Ignored when HTTPClient is set.
	Timeout time.Duration

	// HTTPClient replaces the default http.Client.
	HTTPClient *http.Client

	// Retry configures the retry executor wrapping every request.
	Retry retry.Config

	// RequestsPerSecond enables a client-side token bucket when positive.
	RequestsPerSecond float64
	// Burst is the token bucket burst size. Defaults to 1.
	Burst int

	// Logger receives retry and request logs. Defaults to a silent logger.
	Logger retry.Logger
}

// DefaultConfig returns the configuration used unless overridden.
func DefaultConfig() Config {
	return Config{
		BaseURL: defaultBaseURL,
		Timeout: defaultTimeout,
		Retry:   retry.DefaultConfig(),
	}
}

// Client is the HumanRail API client. It holds no mutable state beyond
// the pooled transport and is safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	executor   *retry.Executor
	limiter    *rate.Limiter
	logger     retry.Logger
}

// New creates a client from cfg, filling in defaults for zero fields.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Logger == nil {
		silent := logrus.New()
		silent.SetOutput(io.Discard)
		cfg.Logger = silent
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    trimTrailingSlash(cfg.BaseURL),
		httpClient: cfg.HTTPClient,
		executor:   retry.NewExecutor(cfg.Retry).WithLogger(cfg.Logger),
		limiter:    limiter,
		logger:     cfg.Logger,
	}
}

// CreateTask creates a new task for human review.
//
// If a task with the same IdempotencyKey already exists, the existing
// task is returned rather than a duplicate being created.
func (c *Client) CreateTask(ctx context.Context, req types.TaskCreateRequest) (*types.Task, error) {
	if req.RiskTier == "" {
		req.RiskTier = types.RiskTierMedium
	}
	if req.SLASeconds == 0 {
		req.SLASeconds = 600
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("humanrail: failed to marshal request: %w", err)
	}

	respBody, err := c.doRequest(ctx, http.MethodPost, "/tasks", body, req.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	return decodeTask(respBody)
}

// GetTask retrieves a task by its ID.
func (c *Client) GetTask(ctx context.Context, taskID string) (*types.Task, error) {
	respBody, err := c.doRequest(ctx, http.MethodGet, "/tasks/"+url.PathEscape(taskID), nil, "")
	if err != nil {
		return nil, err
	}
	return decodeTask(respBody)
}

// CancelTask cancels a task that has not yet reached a terminal status.
// Tasks already in a terminal status return an APIError with KindClient
// and a 409 status code.
func (c *Client) CancelTask(ctx context.Context, taskID string) (*types.TaskCancelResult, error) {
	path := "/tasks/" + url.PathEscape(taskID) + "/cancel"
	respBody, err := c.doRequest(ctx, http.MethodPost, path, nil, "")
	if err != nil {
		return nil, err
	}

	var result types.TaskCancelResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("humanrail: failed to unmarshal response: %w", err)
	}
	return &result, nil
}

// ListTasks lists tasks with optional filters and cursor pagination.
func (c *Client) ListTasks(ctx context.Context, params types.TaskListParams) (*types.TaskListResponse, error) {
	query := url.Values{}
	if params.Status != "" {
		query.Set("status", string(params.Status))
	}
	if params.TaskType != "" {
		query.Set("task_type", params.TaskType)
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.After != "" {
		query.Set("after", params.After)
	}
	if params.CreatedAfter != "" {
		query.Set("created_after", params.CreatedAfter)
	}
	if params.CreatedBefore != "" {
		query.Set("created_before", params.CreatedBefore)
	}

	path := "/tasks"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	respBody, err := c.doRequest(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}

	var result types.TaskListResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("humanrail: failed to unmarshal response: %w", err)
	}
	return &result, nil
}

// WaitOptions configures WaitForCompletion. The zero value polls every
// 2 seconds with a 10-minute deadline.
type WaitOptions struct {
	PollInterval time.Duration
	Timeout      time.Duration
}

// WaitForCompletion polls a task until it reaches a terminal status.
//
// Each status fetch goes through the client's retry executor; the waiter
// itself never retries a failed fetch. A convenience for workflows that
// prefer polling over webhooks.
func (c *Client) WaitForCompletion(ctx context.Context, taskID string, opts WaitOptions) (*types.Task, error) {
	waiter := poll.NewWaiter(opts.PollInterval, opts.Timeout)
	return poll.Wait(waiter, ctx,
		func(ctx context.Context) (*types.Task, error) {
			return c.GetTask(ctx, taskID)
		},
		func(t *types.Task) types.TaskStatus {
			return t.Status
		})
}

// doRequest executes one API request through the retry executor.
func (c *Client) doRequest(ctx context.Context, method, path string, body []byte, idempotencyKey string) ([]byte, error) {
	return retry.Do(c.executor, ctx, func(ctx context.Context, attempt int) ([]byte, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, &types.APIError{
					Kind:    types.KindCancelled,
					Message: "request aborted while waiting for rate limiter",
					Cause:   err,
				}
			}
		}

		var bodyReader io.Reader
		if body != nil {
			bodyReader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
		if err != nil {
			return nil, fmt.Errorf("humanrail: failed to create request: %w", err)
		}

		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", userAgent)
		if idempotencyKey != "" {
			req.Header.Set("Idempotency-Key", idempotencyKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, &types.APIError{
				Kind:    types.KindTransport,
				Message: fmt.Sprintf("request to %s %s failed: %v", method, path, err),
				Cause:   err,
			}
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &types.APIError{
				Kind:       types.KindTransport,
				Message:    fmt.Sprintf("failed to read response body: %v", err),
				StatusCode: resp.StatusCode,
				Cause:      err,
			}
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return respBody, nil
		}

		var errorBody *types.APIErrorResponse
		if err := json.Unmarshal(respBody, &errorBody); err != nil {
			errorBody = nil
		}

		return nil, types.ErrorFromStatus(
			resp.StatusCode,
			errorBody,
			resp.Header.Get("X-Request-Id"),
			parseRetryAfter(resp.Header.Get("Retry-After")),
		)
	})
}

// parseRetryAfter parses a Retry-After value in whole or fractional
// seconds. Unparseable values yield zero, i.e. no hint.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}

func decodeTask(body []byte) (*types.Task, error) {
	var task types.Task
	if err := json.Unmarshal(body, &task); err != nil {
		return nil, fmt.Errorf("humanrail: failed to unmarshal response: %w", err)
	}
	return &task, nil
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
