// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the media mix reach server.

The server collects a target efficiency level (0 to 100) and a measurement
model for each advertising channel (TV, Facebook, YouTube, Radio, Press),
validates them, and forwards one request at a time to a remote analysis
service. The returned budget allocation is shown as a table and a pie chart
of budget share per channel.

# Starting the Server

With no configuration the server listens on port 3318 and uses the public
analysis endpoint:

	go run main.go

Or with flags:

	go run main.go -p 3318 -api "https://example.com/api/analyze" -d "mmm.db" -t sqlite

Variables in a .env file in the working directory are loaded first.

# Configuration

All settings are optional:

  - PORT (-p): Server port (default: 3318)
  - ANALYZE_API_URL (-api): Analysis service endpoint
  - DATABASE_URL (-d): Submission audit database; empty disables the audit log
  - DATABASE_TYPE (-t): sqlite (default) or postgres

# Architecture

  - allocation: Input validation and the single-flight analysis client
  - report: Budget share table and pie chart geometry
  - handlers: Dashboard page, JSON API, submission log
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Channels, model catalog, request/response types
  - db: Audit log schema and store
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
