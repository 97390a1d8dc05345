// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/mmm-reach/allocation"
	"github.com/danielhkuo/mmm-reach/middleware"
	"github.com/danielhkuo/mmm-reach/models"
)

// Analyze handles POST /api/analyze
// Body: {"efficiencies": {...}, "models": {...}}; efficiencies may be strings or numbers
func (h *AllocationHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if name, ok := req.UnknownChannel(); ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("unknown channel %q", name))
		return
	}

	result, err := h.submit(r.Context(), req.Inputs())

	var vErr *allocation.ValidationError
	var rErr *allocation.RequestError
	switch {
	case err == nil:
		middleware.JSONResponse(w, http.StatusOK, newAnalyzeResponse(result))
	case errors.Is(err, allocation.ErrSubmissionInFlight):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.As(err, &vErr):
		middleware.ErrorResponse(w, http.StatusBadRequest, vErr.Error())
	case errors.As(err, &rErr):
		middleware.ErrorResponse(w, http.StatusBadGateway, rErr.Error())
	default:
		slog.Error("unexpected submit error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}

// GetResult handles GET /api/result
// Returns the result currently on display
func (h *AllocationHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	result := h.Current()
	if result == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "No result yet")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, newAnalyzeResponse(result))
}
