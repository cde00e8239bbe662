// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"sync"
	"time"

	"github.com/danielhkuo/askflow/models"
)

// State is the per-user position in the survey state machine.
type State int

const (
	StateSelectingLanguage State = iota
	StateAwaitingStart
	StateAwaitingAnswer
	StateAwaitingOverride
)

// Session is the mutable record for one survey attempt. It is owned by the
// engine from creation to completion, ban, or reset; a new /start discards
// any prior incomplete session for the user (no merge, no resume).
type Session struct {
	UserID    int64
	Lang      string
	State     State
	Position  int
	Answers   []models.Answer
	StartedAt time.Time
	LastSeen  time.Time
}

// SetAnswer records text under a label. Re-recording the current label
// replaces it (the override path); labels already passed are never touched.
func (s *Session) SetAnswer(label, text string) {
	for i := range s.Answers {
		if s.Answers[i].Label == label {
			s.Answers[i].Text = text
			return
		}
	}
	s.Answers = append(s.Answers, models.Answer{Label: label, Text: text})
}

// Answer looks up a recorded answer by label.
func (s *Session) Answer(label string) (string, bool) {
	for i := range s.Answers {
		if s.Answers[i].Label == label {
			return s.Answers[i].Text, true
		}
	}
	return "", false
}

// sessionStore maps user identity to the active session. Insertion and
// lookup are atomic; the read-validate-write sequence of one turn is not,
// so duplicate rapid messages from one user keep last-write-wins semantics.
type sessionStore struct {
	mu sync.Mutex
	m  map[int64]*Session
}

func newSessionStore() *sessionStore {
	return &sessionStore{m: make(map[int64]*Session)}
}

func (st *sessionStore) Get(userID int64) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.m[userID]
	return s, ok
}

// Start creates a fresh session, discarding any prior one.
func (st *sessionStore) Start(userID int64, now time.Time) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s := &Session{
		UserID:    userID,
		State:     StateSelectingLanguage,
		StartedAt: now,
		LastSeen:  now,
	}
	st.m[userID] = s
	return s
}

func (st *sessionStore) Delete(userID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.m, userID)
}

// PurgeIdle drops sessions not seen since the cutoff and reports how many.
func (st *sessionStore) PurgeIdle(cutoff time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, s := range st.m {
		if s.LastSeen.Before(cutoff) {
			delete(st.m, id)
			n++
		}
	}
	return n
}

// banSet is the append-only record of identities excluded by the age gate.
// There is no unban path; entries live for the process lifetime (and are
// replayed from the archive on startup when one is configured).
type banSet struct {
	mu sync.RWMutex
	m  map[int64]struct{}
}

func newBanSet() *banSet {
	return &banSet{m: make(map[int64]struct{})}
}

func (b *banSet) Add(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.m[userID] = struct{}{}
}

func (b *banSet) Has(userID int64) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.m[userID]
	return ok
}
