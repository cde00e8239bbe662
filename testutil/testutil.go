// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/danielhkuo/askflow/docstore"
	"github.com/danielhkuo/askflow/models"
)

// SentText is one recorded SendText call.
type SentText struct {
	ChatID   int64
	Text     string
	Keyboard models.Keyboard
}

// SentPhoto is one recorded SendPhoto call.
type SentPhoto struct {
	ChatID int64
	Path   string
}

// FakeSender records outbound messages instead of delivering them.
// Err, when set, is returned from every send.
type FakeSender struct {
	mu     sync.Mutex
	Texts  []SentText
	Photos []SentPhoto
	Err    error
}

func (f *FakeSender) SendText(_ context.Context, chatID int64, text string, kb models.Keyboard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Texts = append(f.Texts, SentText{ChatID: chatID, Text: text, Keyboard: kb})
	return nil
}

func (f *FakeSender) SendPhoto(_ context.Context, chatID int64, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Photos = append(f.Photos, SentPhoto{ChatID: chatID, Path: path})
	return nil
}

// LastText returns the most recent recorded text message.
func (f *FakeSender) LastText(t *testing.T) SentText {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Texts) == 0 {
		t.Fatal("no text messages were sent")
	}
	return f.Texts[len(f.Texts)-1]
}

// TextsTo returns every text sent to one chat, in order.
func (f *FakeSender) TextsTo(chatID int64) []SentText {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []SentText
	for _, m := range f.Texts {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out
}

// Reset clears the recorded messages.
func (f *FakeSender) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Texts = nil
	f.Photos = nil
}

// FakeStore is an in-memory document store with a controllable save error.
type FakeStore struct {
	mu      sync.Mutex
	Doc     models.Document
	SaveErr error
	Saves   int
}

func NewFakeStore(doc models.Document) *FakeStore {
	return &FakeStore{Doc: doc}
}

func (s *FakeStore) Load() models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Doc.Clone()
}

func (s *FakeStore) Save(doc models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Saves++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Doc = doc.Clone()
	return nil
}

var _ docstore.Store = (*FakeStore)(nil)

// TempStore writes a document to a file under t.TempDir and opens a real
// FileStore over it.
func TempStore(t *testing.T, doc models.Document) (*docstore.FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions_data.json")
	store := docstore.NewFile(path)
	if err := store.Save(doc); err != nil {
		t.Fatalf("Failed to seed question document: %v", err)
	}
	return store, path
}

// SampleDocument builds a bilingual document shaped like the deployed one:
// age gate, income, prior-experience choice with a dependent follow-up, a
// name question, and the discovery-source choice with an "other" escape.
func SampleDocument() models.Document {
	ru := []models.Question{
		{Text: "Сколько вам лет?", Type: models.TypeText, Role: models.RoleAge},
		{Text: "Какой доход вы хотите получать?", Type: models.TypeText, Role: models.RoleIncome},
		{Text: "Есть ли у вас опыт работы в этой сфере?", Type: models.TypeChoice, Choices: []string{"Да", "Нет"}},
		{Text: "Расскажите о вашем опыте", Type: models.TypeText,
			DependsOn: &models.Dependency{QuestionIdx: 2, Values: []string{"Да"}}},
		{Text: "Как вас зовут?", Type: models.TypeText, Role: models.RoleName},
		{Text: "Как вы узнали про компанию?", Type: models.TypeChoice, Role: models.RoleSource,
			Choices: []string{"Telegram", "Instagram", "YouTube", "Знакомые", "Другое"}},
	}
	en := []models.Question{
		{Text: "How old are you?", Type: models.TypeText, Role: models.RoleAge},
		{Text: "What income would you like to receive?", Type: models.TypeText, Role: models.RoleIncome},
		{Text: "Do you have experience in this field?", Type: models.TypeChoice, Choices: []string{"Yes", "No"}},
		{Text: "Tell us about your experience", Type: models.TypeText,
			DependsOn: &models.Dependency{QuestionIdx: 2, Values: []string{"Yes"}}},
		{Text: "What is your name?", Type: models.TypeText, Role: models.RoleName},
		{Text: "How did you hear about us?", Type: models.TypeChoice, Role: models.RoleSource,
			Choices: []string{"Telegram", "Instagram", "YouTube", "Friends", "Other"}},
	}
	return models.Document{
		Questions:   map[string][]models.Question{models.LangRU: ru, models.LangEN: en},
		ContactLink: "@manager",
		FinalPhrase: models.FlatText("Thank you! Message {contact_link} to continue."),
	}
}
