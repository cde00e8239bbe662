// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/danielhkuo/askflow/admin"
	"github.com/danielhkuo/askflow/cliparse"
	"github.com/danielhkuo/askflow/engine"
	"github.com/danielhkuo/askflow/middleware"
	"github.com/danielhkuo/askflow/models"
	"github.com/danielhkuo/askflow/telegram"
)

// Dispatcher routes one inbound turn to either the admin panel or the
// survey engine. Both ingress modes (webhook and long polling) go through
// here.
type Dispatcher struct {
	eng   *engine.Engine
	panel *admin.Panel
}

func NewDispatcher(eng *engine.Engine, panel *admin.Panel) *Dispatcher {
	return &Dispatcher{eng: eng, panel: panel}
}

// Dispatch hands the turn to the admin panel when it claims it (an /admin
// command, or the operator mid-edit), otherwise to the engine.
func (d *Dispatcher) Dispatch(ctx context.Context, msg models.Inbound) error {
	if d.panel != nil && d.panel.Handles(msg) {
		return d.panel.HandleMessage(ctx, msg)
	}
	return d.eng.HandleMessage(ctx, msg)
}

// NewRouter builds the webhook HTTP surface.
func NewRouter(d *Dispatcher, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Telegram update ingress
	mux.HandleFunc("POST /webhook",
		middleware.WithLogging(middleware.RequireSecret(cfg.WebhookSecret, webhookHandler(d))))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("askflow bot v1"))
	})

	return mux
}

// webhookHandler decodes one Telegram update and dispatches it. Telegram
// re-delivers on non-200 responses, so handler errors are logged and the
// response is 200 regardless.
func webhookHandler(d *Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var upd tgbotapi.Update
		if err := middleware.ParseJSONBody(r, &upd); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		msg, ok := telegram.InboundFrom(upd)
		if !ok {
			// Not a text message; acknowledge and move on.
			w.WriteHeader(http.StatusOK)
			return
		}
		if err := d.Dispatch(r.Context(), msg); err != nil {
			slog.Error("turn failed", "user_id", msg.UserID, "error", err)
		}
		w.WriteHeader(http.StatusOK)
	}
}
