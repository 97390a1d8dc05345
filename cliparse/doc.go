// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - AnalyzeURL: Analysis service endpoint (default: hosted service)
  - DatabaseURL: Submission audit database (optional; empty disables the log)
  - DatabaseType: sqlite or postgres (default: sqlite)

# CLI Flags

	-p    Server port
	-api  Analysis service endpoint URL
	-d    Database URL
	-t    Database type

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	ANALYZE_API_URL → -api
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t

CLI flags take precedence over environment variables. main loads a .env file
into the environment before parsing.

# Validation

ParseFlags returns an error if:

  - PORT is not a number or outside 1-65535
  - the endpoint is not an absolute http(s) URL
  - the database type is not sqlite or postgres
*/
package cliparse
