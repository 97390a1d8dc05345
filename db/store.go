// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/mmm-reach/models"
)

// timeLayout is fixed width so text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SubmissionStore persists submission audit records.
type SubmissionStore struct {
	db     *sql.DB
	dbType string
}

func NewSubmissionStore(db *sql.DB, dbType string) *SubmissionStore {
	return &SubmissionStore{db: db, dbType: dbType}
}

// Record inserts s, assigning an ID and timestamp when they are unset.
func (s *SubmissionStore) Record(ctx context.Context, sub *models.Submission) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}
	sub.CreatedAt = sub.CreatedAt.UTC()

	efficiencies, err := json.Marshal(nonNil(sub.Efficiencies))
	if err != nil {
		return fmt.Errorf("failed to encode efficiencies: %w", err)
	}
	modelsJSON, err := json.Marshal(nonNil(sub.Models))
	if err != nil {
		return fmt.Errorf("failed to encode models: %w", err)
	}

	_, err = s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO submission (id, efficiencies, models, outcome, message, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), sub.ID, string(efficiencies), string(modelsJSON), sub.Outcome, sub.Message,
		sub.DurationMs, sub.CreatedAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}

	return nil
}

// Recent returns up to limit records, newest first.
func (s *SubmissionStore) Recent(ctx context.Context, limit int) ([]models.Submission, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT id, efficiencies, models, outcome, message, duration_ms, created_at
		FROM submission
		ORDER BY created_at DESC
		LIMIT ?
	`), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	submissions := []models.Submission{}
	for rows.Next() {
		var sub models.Submission
		var efficiencies, modelsJSON, createdAt string
		if err := rows.Scan(&sub.ID, &efficiencies, &modelsJSON, &sub.Outcome,
			&sub.Message, &sub.DurationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}

		if err := json.Unmarshal([]byte(efficiencies), &sub.Efficiencies); err != nil {
			return nil, fmt.Errorf("failed to decode efficiencies for %s: %w", sub.ID, err)
		}
		if err := json.Unmarshal([]byte(modelsJSON), &sub.Models); err != nil {
			return nil, fmt.Errorf("failed to decode models for %s: %w", sub.ID, err)
		}
		sub.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for %s: %w", sub.ID, err)
		}

		submissions = append(submissions, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read submissions: %w", err)
	}

	return submissions, nil
}

// rebind rewrites ? placeholders as $1, $2, ... for PostgreSQL.
func (s *SubmissionStore) rebind(query string) string {
	if s.dbType != TypePostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func nonNil(m map[models.Channel]string) map[models.Channel]string {
	if m == nil {
		return map[models.Channel]string{}
	}
	return m
}
