// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers for the
webhook surface.

# Logging

WithLogging wraps a handler with slog request/completion logging:

	mux.HandleFunc("POST /webhook", middleware.WithLogging(handler))

# Webhook Secret

RequireSecret enforces the X-Telegram-Bot-Api-Secret-Token header that
Telegram echoes back when a secret was registered with the webhook. The
comparison is constant-time; an empty configured secret disables the check
entirely.

# JSON Helpers

JSONResponse, ErrorResponse and ParseJSONBody handle the small amount of
JSON the webhook surface speaks.
*/
package middleware
