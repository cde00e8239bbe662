// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/askflow/docstore"
	"github.com/danielhkuo/askflow/models"
	"github.com/danielhkuo/askflow/report"
	"github.com/danielhkuo/askflow/validate"
)

// Sender is the delivery boundary. The engine only ever produces content
// and a recipient; transport details stay behind this interface.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string, kb models.Keyboard) error
	SendPhoto(ctx context.Context, chatID int64, path string) error
}

// Recorder persists completed submissions and ban events. Recording
// failures are logged and never abort a user's turn.
type Recorder interface {
	RecordSubmission(ctx context.Context, sub models.Submission) error
	RecordBan(ctx context.Context, userID int64, reason string) error
}

// Config carries the engine's fixed settings.
type Config struct {
	OperatorID int64  // recipient of completed-survey reports
	MediaDir   string // logo.jpg and per-question <index+1>.jpg images
}

// Engine walks users through the survey: one state machine instance per
// user session, validated answers, dependency-aware advancing, and a final
// report to the operator.
type Engine struct {
	store    docstore.Store
	sender   Sender
	recorder Recorder // may be nil
	cfg      Config

	sessions *sessionStore
	bans     *banSet
	now      func() time.Time
}

// New creates an engine. recorder may be nil when no archive is configured.
func New(store docstore.Store, sender Sender, recorder Recorder, cfg Config) *Engine {
	return &Engine{
		store:    store,
		sender:   sender,
		recorder: recorder,
		cfg:      cfg,
		sessions: newSessionStore(),
		bans:     newBanSet(),
		now:      time.Now,
	}
}

// Ban adds a user to the ban set directly. Used to replay archived bans at
// startup; there is no corresponding unban.
func (e *Engine) Ban(userID int64) {
	e.bans.Add(userID)
}

// Banned reports whether a user is excluded from the survey.
func (e *Engine) Banned(userID int64) bool {
	return e.bans.Has(userID)
}

// EvictIdle drops sessions idle for longer than maxIdle and returns the
// count. Abandoned sessions otherwise live forever.
func (e *Engine) EvictIdle(maxIdle time.Duration) int {
	return e.sessions.PurgeIdle(e.now().Add(-maxIdle))
}

// HandleMessage processes one inbound user turn. The question document is
// loaded at most once per turn; branching decisions within the turn see a
// single immutable snapshot.
func (e *Engine) HandleMessage(ctx context.Context, msg models.Inbound) error {
	text := strings.TrimSpace(msg.Text)
	lower := strings.ToLower(text)

	// The ban check precedes every state transition.
	if e.bans.Has(msg.UserID) {
		blocked := ageBlockMsg[models.LangRU] + "\n" + ageBlockMsg[models.LangEN]
		return e.sender.SendText(ctx, msg.ChatID, blocked, models.Keyboard{})
	}

	s, ok := e.sessions.Get(msg.UserID)

	// /start always discards prior state; bare "start" only counts as a
	// survey entry when there is no session to confuse it with.
	if lower == "/start" || (!ok && lower == "start") {
		e.sessions.Start(msg.UserID, e.now())
		return e.sender.SendText(ctx, msg.ChatID, langPrompt, langKeyboard())
	}
	if !ok {
		// Unrecognized text outside any session is a re-prompt, not a drop.
		return e.sender.SendText(ctx, msg.ChatID, noSessionPrompt, models.Keyboard{})
	}
	s.LastSeen = e.now()

	switch s.State {
	case StateSelectingLanguage:
		return e.handleLanguage(ctx, s, msg, text)
	case StateAwaitingStart:
		return e.handleStartConfirmation(ctx, s, msg, lower)
	case StateAwaitingAnswer:
		return e.handleAnswer(ctx, s, msg)
	case StateAwaitingOverride:
		return e.handleOverride(ctx, s, msg)
	}
	return nil
}

func (e *Engine) handleLanguage(ctx context.Context, s *Session, msg models.Inbound, text string) error {
	lang, ok := resolveLang(text)
	if !ok {
		return e.sender.SendText(ctx, msg.ChatID, langRetryPrompt, langKeyboard())
	}
	s.Lang = lang
	s.State = StateAwaitingStart

	if logo := filepath.Join(e.cfg.MediaDir, "logo.jpg"); fileExists(logo) {
		if err := e.sender.SendPhoto(ctx, msg.ChatID, logo); err != nil {
			slog.Warn("logo delivery failed", "user_id", msg.UserID, "error", err)
		}
	}
	if err := e.sender.SendText(ctx, msg.ChatID, welcomeText[lang], models.Keyboard{}); err != nil {
		return err
	}
	return e.sender.SendText(ctx, msg.ChatID, startSurveyPrompt, startKeyboard(lang))
}

func (e *Engine) handleStartConfirmation(ctx context.Context, s *Session, msg models.Inbound, lower string) error {
	if lower != startToken[s.Lang] {
		return e.sender.SendText(ctx, msg.ChatID, pressStartMsg[s.Lang], startKeyboard(s.Lang))
	}
	doc := e.store.Load()
	s.State = StateAwaitingAnswer
	s.Position = 0
	return e.askNext(ctx, s, msg, doc)
}

func (e *Engine) handleAnswer(ctx context.Context, s *Session, msg models.Inbound) error {
	doc := e.store.Load()
	qs := doc.QuestionsFor(s.Lang)
	if s.Position >= len(qs) {
		// The document shrank under an in-flight session; finish cleanly.
		return e.complete(ctx, s, msg, doc)
	}
	q := qs[s.Position]

	switch validate.Answer(q, msg.Text) {
	case validate.Underage:
		return e.banUser(ctx, s, msg)
	case validate.Rejected:
		return e.sender.SendText(ctx, msg.ChatID, errorMsg[s.Lang], retryKeyboard(q))
	case validate.OtherToken:
		// Hold the position; the free-form replacement lands on this label.
		s.State = StateAwaitingOverride
		return e.sender.SendText(ctx, msg.ChatID, overridePrompt[s.Lang], models.RemoveKeyboard())
	}

	s.SetAnswer(models.Label(s.Position), msg.Text)
	s.Position++
	return e.askNext(ctx, s, msg, doc)
}

func (e *Engine) handleOverride(ctx context.Context, s *Session, msg models.Inbound) error {
	if !validate.Override(msg.Text) {
		return e.sender.SendText(ctx, msg.ChatID, errorMsg[s.Lang], models.Keyboard{})
	}
	s.SetAnswer(models.Label(s.Position), msg.Text)
	s.Position++
	s.State = StateAwaitingAnswer
	return e.askNext(ctx, s, msg, e.store.Load())
}

// askNext advances the cursor to the next applicable question and prompts
// it, or completes the survey when the list is exhausted.
func (e *Engine) askNext(ctx context.Context, s *Session, msg models.Inbound, doc models.Document) error {
	qs := doc.QuestionsFor(s.Lang)
	pos := nextPosition(qs, s.Answer, s.Position)
	if pos >= len(qs) {
		return e.complete(ctx, s, msg, doc)
	}
	s.Position = pos
	q := qs[pos]

	if img := filepath.Join(e.cfg.MediaDir, fmt.Sprintf("%d.jpg", pos+1)); fileExists(img) {
		if err := e.sender.SendPhoto(ctx, msg.ChatID, img); err != nil {
			slog.Warn("question image delivery failed", "user_id", msg.UserID, "position", pos, "error", err)
		}
	}
	return e.sender.SendText(ctx, msg.ChatID, q.Text, questionKeyboard(q))
}

func (e *Engine) banUser(ctx context.Context, s *Session, msg models.Inbound) error {
	e.bans.Add(msg.UserID)
	e.sessions.Delete(msg.UserID)
	slog.Info("user banned by age gate", "user_id", msg.UserID)
	if e.recorder != nil {
		if err := e.recorder.RecordBan(ctx, msg.UserID, "underage"); err != nil {
			slog.Error("ban archive failed", "user_id", msg.UserID, "error", err)
		}
	}
	return e.sender.SendText(ctx, msg.ChatID, ageBlockMsg[s.Lang], models.RemoveKeyboard())
}

// complete renders the closing message, reports to the operator, archives
// the submission, and destroys the session.
func (e *Engine) complete(ctx context.Context, s *Session, msg models.Inbound, doc models.Document) error {
	contact := doc.ContactLink
	if contact == "" {
		contact = defaultContact
	}
	phrase := doc.FinalPhrase.For(s.Lang)
	if phrase == "" {
		phrase = defaultFinalPhrase[s.Lang]
	}
	rendered := report.RenderFinalPhrase(phrase, contact)

	if err := e.sender.SendText(ctx, msg.ChatID, rendered, models.RemoveKeyboard()); err != nil {
		return err
	}

	sub := models.Submission{
		ID:          uuid.NewString(),
		UserID:      msg.UserID,
		Username:    msg.Username,
		FirstName:   msg.FirstName,
		LastName:    msg.LastName,
		Lang:        s.Lang,
		Answers:     append([]models.Answer(nil), s.Answers...),
		ContactLink: report.CanonicalContact(contact),
		ClosingText: rendered,
		StartedAt:   s.StartedAt,
		CompletedAt: e.now(),
	}

	if err := e.sender.SendText(ctx, e.cfg.OperatorID, report.Operator(sub), models.Keyboard{}); err != nil {
		slog.Error("operator report delivery failed", "user_id", msg.UserID, "error", err)
	}
	if e.recorder != nil {
		if err := e.recorder.RecordSubmission(ctx, sub); err != nil {
			slog.Error("submission archive failed", "submission_id", sub.ID, "error", err)
		}
	}

	e.sessions.Delete(msg.UserID)
	slog.Info("survey completed", "user_id", msg.UserID, "lang", s.Lang, "answers", len(sub.Answers))
	return nil
}

func questionKeyboard(q models.Question) models.Keyboard {
	if q.Type != models.TypeChoice {
		return models.RemoveKeyboard()
	}
	if q.Role == models.RoleSource {
		return models.WideChoice(q.Choices)
	}
	return models.SingleColumn(q.Choices...)
}

// retryKeyboard re-offers the choices on rejection; free-text rejections
// leave the (absent) keyboard alone.
func retryKeyboard(q models.Question) models.Keyboard {
	if q.Type == models.TypeChoice {
		return questionKeyboard(q)
	}
	return models.Keyboard{}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
