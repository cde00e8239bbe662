// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package admin

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/danielhkuo/askflow/docstore"
	"github.com/danielhkuo/askflow/models"
)

// Sender is the slice of the delivery adapter the panel needs.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string, kb models.Keyboard) error
}

type state int

const (
	stateMain state = iota
	stateChooseLang
	stateChooseQuestion
	stateEditMenu
	stateEditText
	stateEditChoices
	stateEditLink
	stateEditPhrase
	stateSaveFailed
)

// session is the operator's editing position. pending holds an edit that
// failed to save; it survives until an explicit retry or discard.
type session struct {
	state   state
	lang    string
	qnum    int
	pending *models.Document
}

// Panel is the runtime editing surface for the question document. Only the
// single configured operator id may use it.
type Panel struct {
	store      docstore.Store
	sender     Sender
	operatorID int64

	mu       sync.Mutex
	sessions map[int64]*session
}

func New(store docstore.Store, sender Sender, operatorID int64) *Panel {
	return &Panel{
		store:      store,
		sender:     sender,
		operatorID: operatorID,
		sessions:   make(map[int64]*session),
	}
}

// Handles reports whether this turn belongs to the panel: any /admin
// command (so refusals come from here too), or an operator with an open
// panel session.
func (p *Panel) Handles(msg models.Inbound) bool {
	if strings.EqualFold(strings.TrimSpace(msg.Text), "/admin") {
		return true
	}
	if msg.UserID != p.operatorID {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.sessions[msg.UserID]
	return ok
}

// HandleMessage processes one operator turn.
func (p *Panel) HandleMessage(ctx context.Context, msg models.Inbound) error {
	text := strings.TrimSpace(msg.Text)

	if strings.EqualFold(text, "/admin") {
		if msg.UserID != p.operatorID {
			return p.sender.SendText(ctx, msg.ChatID, "No access.", models.Keyboard{})
		}
		p.setSession(msg.UserID, &session{state: stateMain})
		return p.showMenu(ctx, msg.ChatID)
	}

	s := p.getSession(msg.UserID)
	if s == nil {
		return nil
	}

	switch s.state {
	case stateMain:
		return p.handleMenu(ctx, s, msg, text)
	case stateChooseLang:
		return p.handleChooseLang(ctx, s, msg, text)
	case stateChooseQuestion:
		return p.handleChooseQuestion(ctx, s, msg, text)
	case stateEditMenu:
		return p.handleEditMenu(ctx, s, msg, text)
	case stateEditText:
		return p.applyQuestionEdit(ctx, s, msg, func(q *models.Question) {
			q.Text = text
		})
	case stateEditChoices:
		return p.applyQuestionEdit(ctx, s, msg, func(q *models.Question) {
			q.Choices = splitChoices(text)
		})
	case stateEditLink:
		doc := p.store.Load()
		doc.ContactLink = text
		return p.save(ctx, s, msg.ChatID, doc)
	case stateEditPhrase:
		doc := p.store.Load()
		doc.FinalPhrase = models.FlatText(text)
		return p.save(ctx, s, msg.ChatID, doc)
	case stateSaveFailed:
		return p.handleSaveFailed(ctx, s, msg, text)
	}
	return nil
}

func (p *Panel) handleMenu(ctx context.Context, s *session, msg models.Inbound, text string) error {
	switch text {
	case "Edit questions":
		s.state = stateChooseLang
		return p.sender.SendText(ctx, msg.ChatID, "Choose a language:",
			models.SingleColumn("Russian", "English", "Back"))
	case "Edit contact link":
		doc := p.store.Load()
		s.state = stateEditLink
		prompt := fmt.Sprintf("Current link: %s\n\nSend the new link (for example, @manager):", doc.ContactLink)
		return p.sender.SendText(ctx, msg.ChatID, prompt, models.RemoveKeyboard())
	case "Edit final phrase":
		doc := p.store.Load()
		s.state = stateEditPhrase
		prompt := fmt.Sprintf(
			"Current final phrase:\n%s\n\nSend the new final phrase (you can use {contact_link} to substitute the link):",
			describePhrase(doc))
		return p.sender.SendText(ctx, msg.ChatID, prompt, models.RemoveKeyboard())
	case "Exit":
		p.deleteSession(msg.UserID)
		return p.sender.SendText(ctx, msg.ChatID, "Left the admin panel.", models.RemoveKeyboard())
	}
	return p.showMenu(ctx, msg.ChatID)
}

func (p *Panel) handleChooseLang(ctx context.Context, s *session, msg models.Inbound, text string) error {
	switch text {
	case "Russian":
		s.lang = models.LangRU
	case "English":
		s.lang = models.LangEN
	default:
		s.state = stateMain
		return p.showMenu(ctx, msg.ChatID)
	}
	s.state = stateChooseQuestion
	return p.listQuestions(ctx, s, msg.ChatID)
}

func (p *Panel) listQuestions(ctx context.Context, s *session, chatID int64) error {
	doc := p.store.Load()
	qs := doc.QuestionsFor(s.lang)

	var b strings.Builder
	b.WriteString("Pick a question number to edit:\n")
	for i, q := range qs {
		fmt.Fprintf(&b, "%d) %s (%s)\n", i+1, q.Text, q.Type)
	}
	b.WriteString("\nSend a question number, or 'Back'.")
	return p.sender.SendText(ctx, chatID, b.String(), models.RemoveKeyboard())
}

func (p *Panel) handleChooseQuestion(ctx context.Context, s *session, msg models.Inbound, text string) error {
	if strings.EqualFold(text, "back") {
		s.state = stateMain
		return p.showMenu(ctx, msg.ChatID)
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return p.sender.SendText(ctx, msg.ChatID, "That is not a question number.", models.Keyboard{})
	}
	doc := p.store.Load()
	qs := doc.QuestionsFor(s.lang)
	if n < 1 || n > len(qs) {
		return p.sender.SendText(ctx, msg.ChatID, "No such question.", models.Keyboard{})
	}
	s.qnum = n - 1
	s.state = stateEditMenu

	q := qs[s.qnum]
	buttons := []string{"Edit text"}
	if q.Type == models.TypeChoice {
		buttons = append(buttons, "Edit choices")
	}
	buttons = append(buttons, "Back")
	prompt := fmt.Sprintf("Question: %s\nType: %s", q.Text, q.Type)
	return p.sender.SendText(ctx, msg.ChatID, prompt, models.SingleColumn(buttons...))
}

func (p *Panel) handleEditMenu(ctx context.Context, s *session, msg models.Inbound, text string) error {
	switch text {
	case "Edit text":
		s.state = stateEditText
		return p.sender.SendText(ctx, msg.ChatID, "Send the new question text:", models.RemoveKeyboard())
	case "Edit choices":
		doc := p.store.Load()
		qs := doc.QuestionsFor(s.lang)
		var current []string
		if s.qnum < len(qs) {
			current = qs[s.qnum].Choices
		}
		s.state = stateEditChoices
		prompt := fmt.Sprintf("Current choices:\n%s\n\nSend the new choices, comma-separated:",
			strings.Join(current, "\n"))
		return p.sender.SendText(ctx, msg.ChatID, prompt, models.RemoveKeyboard())
	case "Back":
		s.state = stateChooseQuestion
		return p.listQuestions(ctx, s, msg.ChatID)
	}
	return p.handleChooseQuestion(ctx, s, msg, strconv.Itoa(s.qnum+1))
}

// applyQuestionEdit reloads the document, applies the mutation to the
// selected question, and saves. The reload means a concurrent edit of a
// different question is not clobbered.
func (p *Panel) applyQuestionEdit(ctx context.Context, s *session, msg models.Inbound, mutate func(*models.Question)) error {
	doc := p.store.Load()
	qs := doc.QuestionsFor(s.lang)
	if s.qnum >= len(qs) {
		s.state = stateMain
		if err := p.sender.SendText(ctx, msg.ChatID, "That question no longer exists.", models.Keyboard{}); err != nil {
			return err
		}
		return p.showMenu(ctx, msg.ChatID)
	}
	mutate(&qs[s.qnum])
	doc.Questions[s.lang] = qs
	return p.save(ctx, s, msg.ChatID, doc)
}

// save persists the edited document. On failure the edit is kept in the
// session and the operator decides between retry and discard; nothing is
// retried automatically.
func (p *Panel) save(ctx context.Context, s *session, chatID int64, doc models.Document) error {
	if err := p.store.Save(doc); err != nil {
		slog.Error("document save failed", "error", err)
		pending := doc.Clone()
		s.pending = &pending
		s.state = stateSaveFailed
		return p.sender.SendText(ctx, chatID,
			"Saving failed; the change was NOT persisted. Your edit is kept in memory.",
			models.SingleColumn("Retry", "Discard"))
	}
	s.pending = nil
	s.state = stateMain
	if err := p.sender.SendText(ctx, chatID, "Saved.", models.Keyboard{}); err != nil {
		return err
	}
	return p.showMenu(ctx, chatID)
}

func (p *Panel) handleSaveFailed(ctx context.Context, s *session, msg models.Inbound, text string) error {
	switch {
	case strings.EqualFold(text, "retry"):
		if s.pending == nil {
			s.state = stateMain
			return p.showMenu(ctx, msg.ChatID)
		}
		return p.save(ctx, s, msg.ChatID, *s.pending)
	case strings.EqualFold(text, "discard"):
		s.pending = nil
		s.state = stateMain
		if err := p.sender.SendText(ctx, msg.ChatID, "Change discarded.", models.Keyboard{}); err != nil {
			return err
		}
		return p.showMenu(ctx, msg.ChatID)
	}
	return p.sender.SendText(ctx, msg.ChatID, "Send 'Retry' or 'Discard'.",
		models.SingleColumn("Retry", "Discard"))
}

func (p *Panel) showMenu(ctx context.Context, chatID int64) error {
	return p.sender.SendText(ctx, chatID, "Admin panel:", models.SingleColumn(
		"Edit questions",
		"Edit contact link",
		"Edit final phrase",
		"Exit",
	))
}

func (p *Panel) getSession(userID int64) *session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sessions[userID]
}

func (p *Panel) setSession(userID int64, s *session) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sessions[userID] = s
}

func (p *Panel) deleteSession(userID int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.sessions, userID)
}

func splitChoices(text string) []string {
	var out []string
	for _, c := range strings.Split(text, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func describePhrase(doc models.Document) string {
	if doc.FinalPhrase.IsZero() {
		return "(not set)"
	}
	ru := doc.FinalPhrase.For(models.LangRU)
	en := doc.FinalPhrase.For(models.LangEN)
	if ru == en {
		return ru
	}
	return fmt.Sprintf("ru: %s\nen: %s", ru, en)
}
