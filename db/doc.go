// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections, schema creation, and the submission
audit log.

# Connecting

Open selects the driver by database type and pings the server:

	conn, err := db.Open(db.TypeSQLite, "mmm-reach.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

SQLite uses modernc.org/sqlite (no cgo); PostgreSQL uses lib/pq.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - submission: one row per submit attempt (inputs, outcome, duration)

Allocation results are never stored.

# Submission Store

	store := db.NewSubmissionStore(conn, cfg.DatabaseType)
	err := store.Record(ctx, &models.Submission{...})
	recent, err := store.Recent(ctx, 20)

Queries are written with ? placeholders and rewritten to $n for PostgreSQL.
*/
package db
