// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"testing"
	"time"
)

func TestSessionSetAnswer(t *testing.T) {
	s := &Session{}

	s.SetAnswer("q1", "25")
	s.SetAnswer("q2", "Other")
	s.SetAnswer("q2", "from a podcast") // override replaces in place
	s.SetAnswer("q3", "Anna")

	if len(s.Answers) != 3 {
		t.Fatalf("expected 3 answers, got %d", len(s.Answers))
	}
	if s.Answers[1].Label != "q2" || s.Answers[1].Text != "from a podcast" {
		t.Errorf("override did not replace q2: %+v", s.Answers[1])
	}
	if s.Answers[0].Label != "q1" || s.Answers[2].Label != "q3" {
		t.Errorf("answer order not preserved: %+v", s.Answers)
	}

	if got, ok := s.Answer("q2"); !ok || got != "from a podcast" {
		t.Errorf("Answer(q2) = %q, %v", got, ok)
	}
	if _, ok := s.Answer("q9"); ok {
		t.Error("missing label should not resolve")
	}
}

func TestSessionStoreStartDiscardsPrior(t *testing.T) {
	st := newSessionStore()
	now := time.Now()

	first := st.Start(7, now)
	first.Position = 3
	first.SetAnswer("q1", "old")

	second := st.Start(7, now)
	if second.Position != 0 || len(second.Answers) != 0 {
		t.Errorf("restart should produce a fresh session: %+v", second)
	}
	got, ok := st.Get(7)
	if !ok || got != second {
		t.Error("store should hold the fresh session")
	}
}

func TestSessionStorePurgeIdle(t *testing.T) {
	st := newSessionStore()
	base := time.Now()

	stale := st.Start(1, base.Add(-2*time.Hour))
	stale.LastSeen = base.Add(-2 * time.Hour)
	fresh := st.Start(2, base)
	fresh.LastSeen = base

	n := st.PurgeIdle(base.Add(-time.Hour))
	if n != 1 {
		t.Errorf("PurgeIdle = %d, want 1", n)
	}
	if _, ok := st.Get(1); ok {
		t.Error("stale session should be gone")
	}
	if _, ok := st.Get(2); !ok {
		t.Error("fresh session should survive")
	}
}

func TestBanSet(t *testing.T) {
	b := newBanSet()
	if b.Has(5) {
		t.Error("new set should be empty")
	}
	b.Add(5)
	b.Add(5)
	if !b.Has(5) {
		t.Error("added user should be banned")
	}
	if b.Has(6) {
		t.Error("other users are unaffected")
	}
}
