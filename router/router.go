// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/mmm-reach/allocation"
	"github.com/danielhkuo/mmm-reach/cliparse"
	"github.com/danielhkuo/mmm-reach/db"
	"github.com/danielhkuo/mmm-reach/handlers"
	"github.com/danielhkuo/mmm-reach/middleware"
)

// NewRouter wires every endpoint. conn may be nil when the audit log is
// disabled.
func NewRouter(conn *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	var store *db.SubmissionStore
	if conn != nil {
		store = db.NewSubmissionStore(conn, cfg.DatabaseType)
	}

	// Initialize handlers
	allocHandler := handlers.NewAllocationHandler(allocation.NewClient(cfg.AnalyzeURL), store)
	subsHandler := handlers.NewSubmissionsHandler(store)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Dashboard
	mux.HandleFunc("GET /{$}", middleware.WithLogging(allocHandler.Index))
	mux.HandleFunc("POST /analyze", middleware.WithLogging(allocHandler.SubmitForm))

	// JSON API
	mux.HandleFunc("POST /api/analyze", middleware.WithLogging(allocHandler.Analyze))
	mux.HandleFunc("GET /api/result", middleware.WithLogging(allocHandler.GetResult))
	mux.HandleFunc("GET /api/submissions", middleware.WithLogging(subsHandler.List))

	return mux
}
