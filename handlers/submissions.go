// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/mmm-reach/db"
	"github.com/danielhkuo/mmm-reach/middleware"
)

const (
	defaultSubmissionLimit = 20
	maxSubmissionLimit     = 100
)

type SubmissionsHandler struct {
	store *db.SubmissionStore
}

func NewSubmissionsHandler(store *db.SubmissionStore) *SubmissionsHandler {
	return &SubmissionsHandler{store: store}
}

// List handles GET /api/submissions?limit=N
// Returns the most recent submission audit records, newest first
func (h *SubmissionsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Submission log is disabled")
		return
	}

	limit := defaultSubmissionLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxSubmissionLimit)
	}

	submissions, err := h.store.Recent(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list submissions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"submissions": submissions,
		"count":       len(submissions),
	})
}
