// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/askflow/models"
)

func TestCanonicalContact(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"@manager", "@manager"},
		{"manager", "@manager"},
		{"  manager  ", "@manager"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := CanonicalContact(tt.in); got != tt.want {
			t.Errorf("CanonicalContact(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderFinalPhrase(t *testing.T) {
	tests := []struct {
		name    string
		phrase  string
		contact string
		want    string
	}{
		{"substitutes placeholder", "Message {contact_link} now.", "manager", "Message @manager now."},
		{"multiple occurrences", "{contact_link} or {contact_link}", "@a", "@a or @a"},
		{"no placeholder", "Thanks!", "@manager", "Thanks!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderFinalPhrase(tt.phrase, tt.contact); got != tt.want {
				t.Errorf("RenderFinalPhrase = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOperator(t *testing.T) {
	sub := models.Submission{
		ID:        "abc-123",
		UserID:    42,
		Username:  "anna_k",
		FirstName: "Anna",
		Lang:      models.LangEN,
		Answers: []models.Answer{
			{Label: "q1", Text: "25"},
			{Label: "q2", Text: "around 3000 usd"},
			{Label: "q6", Text: "from a podcast"},
		},
		ContactLink: "@manager",
		ClosingText: "Thank you! Message @manager to continue.",
		StartedAt:   time.Now().Add(-10 * time.Minute),
		CompletedAt: time.Now(),
	}

	got := Operator(sub)

	for _, want := range []string{
		"New survey submission",
		"ID: 42",
		"Username: @anna_k",
		"First name: Anna",
		"Last name: -",
		"Language: en",
		"Started: ",
		"q1: 25",
		"q6: from a podcast",
		"Contact for user: @manager",
		"Closing message: Thank you! Message @manager to continue.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}

	// Answers appear in traversal order.
	if strings.Index(got, "q1: 25") > strings.Index(got, "q6: from a podcast") {
		t.Error("answers out of order in the report")
	}
}

func TestOperator_NoUsernameNoStart(t *testing.T) {
	got := Operator(models.Submission{UserID: 7, Lang: models.LangRU})

	if !strings.Contains(got, "Username: -") {
		t.Error("missing username should render as a dash")
	}
	if strings.Contains(got, "Started:") {
		t.Error("zero start time should be omitted")
	}
}
