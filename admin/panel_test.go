// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package admin

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/danielhkuo/askflow/models"
	"github.com/danielhkuo/askflow/testutil"
)

const operatorID int64 = 999

func newTestPanel(t *testing.T) (*Panel, *testutil.FakeStore, *testutil.FakeSender) {
	t.Helper()
	store := testutil.NewFakeStore(testutil.SampleDocument())
	sender := &testutil.FakeSender{}
	return New(store, sender, operatorID), store, sender
}

func send(t *testing.T, p *Panel, userID int64, text string) {
	t.Helper()
	msg := models.Inbound{UserID: userID, ChatID: userID, Text: text}
	if err := p.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage(%q) failed: %v", text, err)
	}
}

func TestNonOperatorRefused(t *testing.T) {
	p, _, sender := newTestPanel(t)

	if !p.Handles(models.Inbound{UserID: 5, Text: "/admin"}) {
		t.Error("the panel should claim every /admin command")
	}
	send(t, p, 5, "/admin")
	if got := sender.LastText(t); got.Text != "No access." {
		t.Errorf("non-operator got %q", got.Text)
	}

	// No session was opened; later texts are not panel turns.
	if p.Handles(models.Inbound{UserID: 5, Text: "Edit questions"}) {
		t.Error("refused user must not hold a panel session")
	}
}

func TestHandles(t *testing.T) {
	p, _, _ := newTestPanel(t)

	if p.Handles(models.Inbound{UserID: operatorID, Text: "hello"}) {
		t.Error("operator without a session is a survey user")
	}
	send(t, p, operatorID, "/admin")
	if !p.Handles(models.Inbound{UserID: operatorID, Text: "Edit questions"}) {
		t.Error("operator mid-edit belongs to the panel")
	}
}

func TestEditContactLink(t *testing.T) {
	p, store, sender := newTestPanel(t)

	send(t, p, operatorID, "/admin")
	if got := sender.LastText(t); got.Text != "Admin panel:" {
		t.Fatalf("expected the menu, got %q", got.Text)
	}

	send(t, p, operatorID, "Edit contact link")
	if got := sender.LastText(t); !strings.Contains(got.Text, "@manager") {
		t.Errorf("prompt should show the current link, got %q", got.Text)
	}

	send(t, p, operatorID, "@newmanager")
	if store.Load().ContactLink != "@newmanager" {
		t.Errorf("contact link not saved: %q", store.Load().ContactLink)
	}
	texts := sender.TextsTo(operatorID)
	if texts[len(texts)-2].Text != "Saved." {
		t.Errorf("expected a save confirmation, got %q", texts[len(texts)-2].Text)
	}
}

func TestEditFinalPhrase(t *testing.T) {
	p, store, _ := newTestPanel(t)

	send(t, p, operatorID, "/admin")
	send(t, p, operatorID, "Edit final phrase")
	send(t, p, operatorID, "All done! Write to {contact_link}.")

	if got := store.Load().FinalPhrase.For(models.LangEN); got != "All done! Write to {contact_link}." {
		t.Errorf("final phrase not saved: %q", got)
	}
}

func TestEditQuestionText(t *testing.T) {
	p, store, sender := newTestPanel(t)

	send(t, p, operatorID, "/admin")
	send(t, p, operatorID, "Edit questions")
	send(t, p, operatorID, "English")
	if got := sender.LastText(t); !strings.Contains(got.Text, "1) How old are you?") {
		t.Fatalf("expected the numbered question list, got %q", got.Text)
	}

	send(t, p, operatorID, "5")
	got := sender.LastText(t)
	if !strings.Contains(got.Text, "What is your name?") {
		t.Fatalf("expected the question detail, got %q", got.Text)
	}
	if len(got.Keyboard.Rows) != 2 {
		t.Errorf("text question should only offer text editing, got %+v", got.Keyboard.Rows)
	}

	send(t, p, operatorID, "Edit text")
	send(t, p, operatorID, "What should we call you?")

	if got := store.Load().Questions[models.LangEN][4].Text; got != "What should we call you?" {
		t.Errorf("question text not saved: %q", got)
	}
}

func TestEditChoices(t *testing.T) {
	p, store, sender := newTestPanel(t)

	send(t, p, operatorID, "/admin")
	send(t, p, operatorID, "Edit questions")
	send(t, p, operatorID, "English")
	send(t, p, operatorID, "6")
	got := sender.LastText(t)
	if len(got.Keyboard.Rows) != 3 {
		t.Fatalf("choice question should offer choice editing, got %+v", got.Keyboard.Rows)
	}

	send(t, p, operatorID, "Edit choices")
	send(t, p, operatorID, "Telegram, TikTok , Other")

	want := []string{"Telegram", "TikTok", "Other"}
	if got := store.Load().Questions[models.LangEN][5].Choices; !reflect.DeepEqual(got, want) {
		t.Errorf("choices not saved: %+v", got)
	}
}

func TestBadQuestionNumber(t *testing.T) {
	p, _, sender := newTestPanel(t)

	send(t, p, operatorID, "/admin")
	send(t, p, operatorID, "Edit questions")
	send(t, p, operatorID, "Russian")

	send(t, p, operatorID, "99")
	if got := sender.LastText(t); got.Text != "No such question." {
		t.Errorf("out-of-range number got %q", got.Text)
	}
	send(t, p, operatorID, "abc")
	if got := sender.LastText(t); got.Text != "That is not a question number." {
		t.Errorf("non-number got %q", got.Text)
	}
}

func TestSaveFailureKeepsEdit(t *testing.T) {
	p, store, sender := newTestPanel(t)
	store.SaveErr = errors.New("disk full")

	send(t, p, operatorID, "/admin")
	send(t, p, operatorID, "Edit contact link")
	send(t, p, operatorID, "@newmanager")

	got := sender.LastText(t)
	if !strings.Contains(got.Text, "NOT persisted") {
		t.Fatalf("expected the failure notice, got %q", got.Text)
	}
	if !reflect.DeepEqual(got.Keyboard.Rows, [][]string{{"Retry"}, {"Discard"}}) {
		t.Errorf("expected Retry/Discard, got %+v", got.Keyboard.Rows)
	}
	if store.Load().ContactLink != "@manager" {
		t.Error("failed save must not change the stored document")
	}

	// The disk recovers; retry persists the kept edit.
	store.SaveErr = nil
	send(t, p, operatorID, "Retry")
	if store.Load().ContactLink != "@newmanager" {
		t.Errorf("retry did not persist the edit: %q", store.Load().ContactLink)
	}
}

func TestSaveFailureDiscard(t *testing.T) {
	p, store, sender := newTestPanel(t)
	store.SaveErr = errors.New("disk full")

	send(t, p, operatorID, "/admin")
	send(t, p, operatorID, "Edit contact link")
	send(t, p, operatorID, "@newmanager")

	store.SaveErr = nil
	send(t, p, operatorID, "Discard")
	texts := sender.TextsTo(operatorID)
	if texts[len(texts)-2].Text != "Change discarded." {
		t.Errorf("expected the discard confirmation, got %q", texts[len(texts)-2].Text)
	}
	if store.Load().ContactLink != "@manager" {
		t.Error("discard must leave the stored document alone")
	}
}

func TestEditPersistsToDisk(t *testing.T) {
	store, _ := testutil.TempStore(t, testutil.SampleDocument())
	sender := &testutil.FakeSender{}
	p := New(store, sender, operatorID)

	send(t, p, operatorID, "/admin")
	send(t, p, operatorID, "Edit contact link")
	send(t, p, operatorID, "support_team")

	// Re-read through the verified file store, not a cache.
	if got := store.Load().ContactLink; got != "support_team" {
		t.Errorf("contact link on disk = %q", got)
	}
}

func TestExit(t *testing.T) {
	p, _, sender := newTestPanel(t)

	send(t, p, operatorID, "/admin")
	send(t, p, operatorID, "Exit")
	if got := sender.LastText(t); got.Text != "Left the admin panel." {
		t.Errorf("exit got %q", got.Text)
	}
	if p.Handles(models.Inbound{UserID: operatorID, Text: "Edit questions"}) {
		t.Error("closed session must not claim turns")
	}
}
