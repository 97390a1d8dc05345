// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the media mix reach service.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(conn, cfg)

conn is the audit log database. Pass nil to run without one.

# Endpoints

Health:

	GET /health

Dashboard:

	GET  /        - Input form and current result
	POST /analyze - Submit the form

JSON API:

	POST /api/analyze     - Submit efficiencies and models
	GET  /api/result      - Result currently on display
	GET  /api/submissions - Recent submission audit records

# Handler Initialization

The router builds one allocation client for cfg.AnalyzeURL and shares it
between the dashboard and the JSON API, so both surfaces see the same
in-flight guard and the same displayed result.
*/
package router
