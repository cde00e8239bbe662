// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package archive

import (
	"context"
	"database/sql"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/askflow/models"
)

func setupArchive(t *testing.T) *Archive {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := CreateSchema(db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return New(db)
}

func TestRecordSubmissionRoundTrip(t *testing.T) {
	a := setupArchive(t)
	ctx := context.Background()

	started := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	sub := models.Submission{
		ID:        "sub-1",
		UserID:    42,
		Username:  "anna_k",
		FirstName: "Anna",
		LastName:  "K",
		Lang:      models.LangEN,
		Answers: []models.Answer{
			{Label: "q1", Text: "25"},
			{Label: "q2", Text: "around 3000 usd"},
			{Label: "q6", Text: "from a podcast"},
		},
		ContactLink: "@manager",
		ClosingText: "Thanks!",
		StartedAt:   started,
		CompletedAt: started.Add(5 * time.Minute),
	}

	if err := a.RecordSubmission(ctx, sub); err != nil {
		t.Fatalf("RecordSubmission failed: %v", err)
	}

	got, err := a.Submission(ctx, "sub-1")
	if err != nil {
		t.Fatalf("Submission failed: %v", err)
	}
	if got.ID != sub.ID || got.UserID != sub.UserID || got.Username != sub.Username ||
		got.FirstName != sub.FirstName || got.LastName != sub.LastName ||
		got.Lang != sub.Lang || got.ContactLink != sub.ContactLink || got.ClosingText != sub.ClosingText {
		t.Errorf("round trip changed the submission:\n stored: %+v\n read:   %+v", sub, got)
	}
	if !got.StartedAt.Equal(sub.StartedAt) || !got.CompletedAt.Equal(sub.CompletedAt) {
		t.Errorf("timestamps drifted: %v / %v", got.StartedAt, got.CompletedAt)
	}
	if !reflect.DeepEqual(got.Answers, sub.Answers) {
		t.Errorf("answers changed: %+v", got.Answers)
	}
}

func TestRecordSubmission_NoStartTime(t *testing.T) {
	a := setupArchive(t)
	ctx := context.Background()

	sub := models.Submission{
		ID:          "sub-2",
		UserID:      7,
		Lang:        models.LangRU,
		CompletedAt: time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC),
	}
	if err := a.RecordSubmission(ctx, sub); err != nil {
		t.Fatalf("RecordSubmission failed: %v", err)
	}

	got, err := a.Submission(ctx, "sub-2")
	if err != nil {
		t.Fatalf("Submission failed: %v", err)
	}
	if !got.StartedAt.IsZero() {
		t.Errorf("missing start time should read back as zero, got %v", got.StartedAt)
	}
	if len(got.Answers) != 0 {
		t.Errorf("expected no answers, got %+v", got.Answers)
	}
}

func TestRecordSubmission_DuplicateIDFails(t *testing.T) {
	a := setupArchive(t)
	ctx := context.Background()

	sub := models.Submission{ID: "dup", UserID: 1, Lang: models.LangEN, CompletedAt: time.Now()}
	if err := a.RecordSubmission(ctx, sub); err != nil {
		t.Fatalf("first RecordSubmission failed: %v", err)
	}
	if err := a.RecordSubmission(ctx, sub); err == nil {
		t.Error("duplicate submission id should fail")
	}
}

func TestRecordBanIdempotent(t *testing.T) {
	a := setupArchive(t)
	ctx := context.Background()

	if err := a.RecordBan(ctx, 42, "underage"); err != nil {
		t.Fatalf("RecordBan failed: %v", err)
	}
	if err := a.RecordBan(ctx, 42, "underage"); err != nil {
		t.Fatalf("repeated RecordBan should be a no-op: %v", err)
	}
	if err := a.RecordBan(ctx, 43, "underage"); err != nil {
		t.Fatalf("RecordBan failed: %v", err)
	}

	ids, err := a.BannedUsers(ctx)
	if err != nil {
		t.Fatalf("BannedUsers failed: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("expected 2 banned users, got %v", ids)
	}
}

func TestBannedUsersEmpty(t *testing.T) {
	a := setupArchive(t)

	ids, err := a.BannedUsers(context.Background())
	if err != nil {
		t.Fatalf("BannedUsers failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("fresh archive should have no bans, got %v", ids)
	}
}
