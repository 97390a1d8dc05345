// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/danielhkuo/mmm-reach/models"
)

// maxErrorBody bounds how much of a failed response is read for logging.
const maxErrorBody = 4 << 10

// State is the client's submission state.
type State int

const (
	StateIdle State = iota
	StateSubmitting
)

func (s State) String() string {
	if s == StateSubmitting {
		return "submitting"
	}
	return "idle"
}

// Submitter runs one submit cycle against the analysis service.
type Submitter interface {
	Submit(ctx context.Context, inputs models.ChannelInputs) (*models.AllocationResult, error)
	State() State
}

// Client validates channel inputs and posts them to the analysis endpoint.
// At most one request is outstanding at a time.
type Client struct {
	endpoint   string
	httpClient *http.Client
	submitting atomic.Bool
}

type Option func(*Client)

// WithHTTPClient replaces the transport client. The default has no timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

func (c *Client) State() State {
	if c.submitting.Load() {
		return StateSubmitting
	}
	return StateIdle
}

// Submit validates inputs, sends a single request and returns the decoded
// result. It fails with *ValidationError before any network activity, with
// *RequestError when the call does not succeed, and with
// ErrSubmissionInFlight when another submission is outstanding.
func (c *Client) Submit(ctx context.Context, inputs models.ChannelInputs) (*models.AllocationResult, error) {
	if !c.submitting.CompareAndSwap(false, true) {
		slog.Debug("submission ignored, request in flight", "endpoint", c.endpoint)
		return nil, ErrSubmissionInFlight
	}
	defer c.submitting.Store(false)

	req, err := BuildRequest(inputs)
	if err != nil {
		return nil, err
	}

	return c.post(ctx, req)
}

func (c *Client) post(ctx context.Context, body models.AnalyzeRequest) (*models.AllocationResult, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("failed to encode request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("failed to build request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		reqErr := &RequestError{Err: err}
		slog.Error("analysis request failed",
			"endpoint", c.endpoint,
			"error", reqErr.Detail(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, reqErr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &RequestError{StatusCode: resp.StatusCode, Err: serviceError(resp.Body)}
		slog.Error("analysis request rejected",
			"endpoint", c.endpoint,
			"status", resp.StatusCode,
			"error", reqErr.Detail(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, reqErr
	}

	var result models.AllocationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		reqErr := &RequestError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
		slog.Error("analysis response unreadable", "endpoint", c.endpoint, "error", reqErr.Detail())
		return nil, reqErr
	}
	if err := checkResult(&result); err != nil {
		reqErr := &RequestError{StatusCode: resp.StatusCode, Err: err}
		slog.Error("analysis response incomplete", "endpoint", c.endpoint, "error", reqErr.Detail())
		return nil, reqErr
	}

	slog.Info("analysis completed",
		"endpoint", c.endpoint,
		"status", resp.StatusCode,
		"channels", len(result.Results),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &result, nil
}

// checkResult rejects a decoded response that could not be displayed in full.
func checkResult(res *models.AllocationResult) error {
	if len(res.Results) == 0 {
		return errors.New("response has no channel results")
	}
	if res.TotalBudget < 0 {
		return fmt.Errorf("negative total budget %v", res.TotalBudget)
	}
	for i, row := range res.Results {
		if row.Channel == "" {
			return fmt.Errorf("result %d has no channel", i)
		}
		if row.Budget < 0 {
			return fmt.Errorf("negative budget %v for %s", row.Budget, row.Channel)
		}
	}
	return nil
}

// serviceError extracts the {"error": "..."} message the service sends with
// 4xx responses, falling back to the raw body.
func serviceError(r io.Reader) error {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return nil
	}

	var body models.ErrorResponse
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		return errors.New(body.Error)
	}
	return errors.New(string(bytes.TrimSpace(raw)))
}
