// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/askflow/models"
)

// Archive is the durable record of completed submissions and ban events.
// It is write-mostly: the bot never reads it on the user path, except for
// replaying bans at startup.
type Archive struct {
	db *sql.DB
}

func New(db *sql.DB) *Archive {
	return &Archive{db: db}
}

// RecordSubmission stores a completed submission and its ordered answers in
// one transaction.
func (a *Archive) RecordSubmission(ctx context.Context, sub models.Submission) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin submission tx: %w", err)
	}
	defer tx.Rollback()

	var startedAt string
	if !sub.StartedAt.IsZero() {
		startedAt = sub.StartedAt.UTC().Format(time.RFC3339)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO submission (id, user_id, username, first_name, last_name, lang, contact_link, closing_text, started_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, sub.ID, sub.UserID, sub.Username, sub.FirstName, sub.LastName, sub.Lang,
		sub.ContactLink, sub.ClosingText, startedAt, sub.CompletedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}

	for i, ans := range sub.Answers {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO submission_answer (submission_id, position, label, answer)
			VALUES ($1, $2, $3, $4)
		`, sub.ID, i, ans.Label, ans.Text)
		if err != nil {
			return fmt.Errorf("insert answer %s: %w", ans.Label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit submission: %w", err)
	}
	return nil
}

// RecordBan stores a ban event. Re-banning the same user is a no-op.
func (a *Archive) RecordBan(ctx context.Context, userID int64, reason string) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO ban (user_id, reason, banned_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO NOTHING
	`, userID, reason, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert ban: %w", err)
	}
	return nil
}

// BannedUsers returns every banned identity, for replay into the engine's
// ban set at startup.
func (a *Archive) BannedUsers(ctx context.Context) ([]int64, error) {
	rows, err := a.db.QueryContext(ctx, `SELECT user_id FROM ban`)
	if err != nil {
		return nil, fmt.Errorf("query bans: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan ban: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Submission reads one archived submission back, answers in stored order.
func (a *Archive) Submission(ctx context.Context, id string) (models.Submission, error) {
	var sub models.Submission
	var startedAt, completedAt string
	err := a.db.QueryRowContext(ctx, `
		SELECT id, user_id, username, first_name, last_name, lang, contact_link, closing_text, started_at, completed_at
		FROM submission WHERE id = $1
	`, id).Scan(&sub.ID, &sub.UserID, &sub.Username, &sub.FirstName, &sub.LastName,
		&sub.Lang, &sub.ContactLink, &sub.ClosingText, &startedAt, &completedAt)
	if err != nil {
		return models.Submission{}, fmt.Errorf("query submission: %w", err)
	}
	if startedAt != "" {
		if sub.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
			return models.Submission{}, fmt.Errorf("parse started_at: %w", err)
		}
	}
	if sub.CompletedAt, err = time.Parse(time.RFC3339, completedAt); err != nil {
		return models.Submission{}, fmt.Errorf("parse completed_at: %w", err)
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT label, answer FROM submission_answer
		WHERE submission_id = $1 ORDER BY position
	`, id)
	if err != nil {
		return models.Submission{}, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ans models.Answer
		if err := rows.Scan(&ans.Label, &ans.Text); err != nil {
			return models.Submission{}, fmt.Errorf("scan answer: %w", err)
		}
		sub.Answers = append(sub.Answers, ans)
	}
	return sub, rows.Err()
}
