// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the media mix reach service.

# Handler Types

  - AllocationHandler: Dashboard page and JSON analyze API
  - SubmissionsHandler: Submission audit log listing

Handlers are created via constructor functions:

	client := allocation.NewClient(cfg.AnalyzeURL)
	allocHandler := handlers.NewAllocationHandler(client, store)
	subsHandler := handlers.NewSubmissionsHandler(store)

store may be nil, which disables the audit log.

# Dashboard

The dashboard is a single server-rendered page:

	GET  /        → Index (input form plus the result on display)
	POST /analyze → SubmitForm (form fields efficiency_<Channel>, model_<Channel>)

A successful submit shows "Calculation completed!" with the allocation table
and pie chart. A validation failure names the offending channel and makes no
network call. A request failure shows "Error: failed to get prediction" and
keeps the previous result on display. A submit while another one is in
flight is ignored.

# JSON API

	POST /api/analyze     → Analyze (200, 400 invalid input, 409 in flight, 502 service failure)
	GET  /api/result      → GetResult (404 before the first success)
	GET  /api/submissions → List (?limit=N, default 20, max 100)

Analyze and GetResult return both the raw service result and the derived
report (table rows with budget shares, and chart slices).
*/
package handlers
