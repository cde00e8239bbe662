// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package telegram is the delivery adapter: the only package that touches the
Telegram Bot API.

Client implements the engine's Sender interface (text with reply keyboards,
photos from file paths) and owns both ingress modes: webhook registration
for deployments with a public URL, and a long-polling update channel for
everything else. InboundFrom converts raw updates into models.Inbound so
the engine never sees transport types.
*/
package telegram
