// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
	"time"
)

// Recognized survey languages
const (
	LangRU = "ru"
	LangEN = "en"
)

// Label returns the stable answer key for a question index: "q1", "q2", ...
// Branching rules and operator reports both reference answers by this label.
func Label(idx int) string {
	return fmt.Sprintf("q%d", idx+1)
}

// Inbound is one user turn delivered by the chat transport.
// Attachments and non-text payloads never reach the engine.
type Inbound struct {
	UserID    int64
	ChatID    int64
	Text      string
	Username  string
	FirstName string
	LastName  string
}

// Keyboard is the transport-agnostic suggested-replies markup.
// A zero Keyboard means "no markup change"; Remove clears any previous one.
type Keyboard struct {
	Rows   [][]string
	Remove bool
}

// RemoveKeyboard clears the user's reply keyboard.
func RemoveKeyboard() Keyboard {
	return Keyboard{Remove: true}
}

// SingleColumn lays out one button per row.
func SingleColumn(buttons ...string) Keyboard {
	rows := make([][]string, 0, len(buttons))
	for _, b := range buttons {
		rows = append(rows, []string{b})
	}
	return Keyboard{Rows: rows}
}

// WideChoice lays out the first four choices as a 2x2 grid and the rest one
// per row. Used for the discovery-source question, which tends to have many
// short options. Falls back to a single column below four choices.
func WideChoice(choices []string) Keyboard {
	if len(choices) < 4 {
		return SingleColumn(choices...)
	}
	rows := [][]string{choices[:2], choices[2:4]}
	for _, c := range choices[4:] {
		rows = append(rows, []string{c})
	}
	return Keyboard{Rows: rows}
}

// Answer is one collected answer. Submissions keep answers as an ordered
// slice so traversal order survives into reports and the archive.
type Answer struct {
	Label string
	Text  string
}

// Submission is a completed response set headed to the operator and archive.
type Submission struct {
	ID          string
	UserID      int64
	Username    string
	FirstName   string
	LastName    string
	Lang        string
	Answers     []Answer
	ContactLink string // resolved (canonicalized) contact reference
	ClosingText string // final phrase as rendered for the user
	StartedAt   time.Time
	CompletedAt time.Time
}

// ErrorResponse is the JSON error body for the webhook HTTP surface.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
