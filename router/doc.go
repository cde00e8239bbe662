// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires the webhook HTTP surface and turn dispatch.

# Routes

	GET  /health   liveness probe
	POST /webhook  Telegram update ingress (logged, secret-checked)
	GET  /         identification string

Uses Go 1.22+ method routing on the standard ServeMux.

# Dispatch

Every decoded turn goes through Dispatcher.Dispatch: the admin panel claims
/admin commands and the operator's open editing sessions, everything else
is a survey turn for the engine. The long-polling mode in main uses the
same Dispatcher, so both ingress paths behave identically.

The webhook handler always answers 200 once the update is decoded;
Telegram re-delivers updates on error responses, and a failed turn must
not be replayed against a session that may have already advanced.
*/
package router
