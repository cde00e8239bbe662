// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package archive

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all archive tables. Safe to call multiple times -
// uses IF NOT EXISTS. The SQL is kept portable across the two supported
// drivers (sqlite and postgres): no driver-specific defaults, timestamps
// stored as RFC3339 text.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create archive schema: %w", err)
	}
	return nil
}

const schema = `
-- Completed survey submissions
CREATE TABLE IF NOT EXISTS submission (
    id TEXT PRIMARY KEY,
    user_id BIGINT NOT NULL,
    username TEXT,
    first_name TEXT,
    last_name TEXT,
    lang TEXT NOT NULL,
    contact_link TEXT,
    closing_text TEXT,
    started_at TEXT,
    completed_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submission_user_id ON submission(user_id);

-- Answers in traversal order
CREATE TABLE IF NOT EXISTS submission_answer (
    submission_id TEXT NOT NULL REFERENCES submission(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    label TEXT NOT NULL,
    answer TEXT NOT NULL,
    PRIMARY KEY (submission_id, position)
);

-- Age-gate ban events
CREATE TABLE IF NOT EXISTS ban (
    user_id BIGINT PRIMARY KEY,
    reason TEXT,
    banned_at TEXT NOT NULL
);
`
