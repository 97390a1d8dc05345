// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/danielhkuo/mmm-reach/allocation"
	"github.com/danielhkuo/mmm-reach/db"
	"github.com/danielhkuo/mmm-reach/models"
	"github.com/danielhkuo/mmm-reach/report"
)

// AllocationHandler serves the dashboard and the JSON API. It holds the
// result currently on display; a failed submission never replaces it.
type AllocationHandler struct {
	client  allocation.Submitter
	store   *db.SubmissionStore
	current atomic.Pointer[models.AllocationResult]
}

// NewAllocationHandler wires the client. store may be nil to disable the
// submission audit log.
func NewAllocationHandler(client allocation.Submitter, store *db.SubmissionStore) *AllocationHandler {
	return &AllocationHandler{client: client, store: store}
}

// AnalyzeResponse is returned by POST /api/analyze and GET /api/result
type AnalyzeResponse struct {
	Result models.AllocationResult `json:"result"`
	Report report.Report           `json:"report"`
}

func newAnalyzeResponse(res *models.AllocationResult) AnalyzeResponse {
	return AnalyzeResponse{Result: *res, Report: report.Build(*res)}
}

// Current returns the displayed result, or nil before the first success.
func (h *AllocationHandler) Current() *models.AllocationResult {
	return h.current.Load()
}

// submit runs one submit cycle. The outbound call is detached from request
// cancellation so it always runs to completion once issued.
func (h *AllocationHandler) submit(ctx context.Context, inputs models.ChannelInputs) (*models.AllocationResult, error) {
	start := time.Now()

	result, err := h.client.Submit(context.WithoutCancel(ctx), inputs)
	if errors.Is(err, allocation.ErrSubmissionInFlight) {
		return nil, err
	}

	if err == nil {
		h.current.Store(result)
	}

	h.audit(ctx, inputs, err, time.Since(start))
	return result, err
}

func (h *AllocationHandler) audit(ctx context.Context, inputs models.ChannelInputs, err error, elapsed time.Duration) {
	if h.store == nil {
		return
	}

	sub := &models.Submission{
		Efficiencies: make(map[models.Channel]string, len(inputs)),
		Models:       make(map[models.Channel]string, len(inputs)),
		Outcome:      outcomeOf(err),
		DurationMs:   elapsed.Milliseconds(),
	}
	for ch, in := range inputs {
		sub.Efficiencies[ch] = in.Efficiency
		if in.Model != "" {
			sub.Models[ch] = in.Model
		}
	}
	if err != nil {
		sub.Message = err.Error()
	}

	if err := h.store.Record(context.WithoutCancel(ctx), sub); err != nil {
		slog.Error("failed to record submission", "error", err)
	}
}

func outcomeOf(err error) string {
	var vErr *allocation.ValidationError
	switch {
	case err == nil:
		return models.OutcomeOK
	case errors.As(err, &vErr):
		return models.OutcomeValidationError
	default:
		return models.OutcomeRequestError
	}
}
