// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the askflow survey bot.

askflow walks Telegram users through a sequential, conditionally branching
survey defined in a runtime-editable question document, validates every
answer, and reports each completed response set to a single operator.

# Starting the Bot

The bot requires environment variables or CLI flags for configuration:

	BOT_TOKEN=... OPERATOR_ID=... go run .

With a public URL it serves Telegram webhooks:

	BOT_TOKEN=... OPERATOR_ID=... WEBHOOK_URL=https://bot.example.com go run .

Without one it long-polls, which is the usual development mode. A .env
file in the working directory is loaded automatically.

# Configuration

Required settings:

  - BOT_TOKEN (-token): Telegram bot token
  - OPERATOR_ID (-operator): Telegram user id receiving reports and
    allowed into /admin

Optional settings:

  - QUESTIONS_FILE (-questions): question document (default: questions_data.json)
  - MEDIA_DIR (-media): logo.jpg and per-question images (default: media)
  - WEBHOOK_URL / WEBHOOK_SECRET / PORT: webhook mode
  - ARCHIVE_DRIVER / ARCHIVE_URL: submission archive (default: sqlite file)
  - SESSION_TTL (-session-ttl): idle session eviction (default: never)

# Architecture

The bot uses a handler-based architecture with dependency injection:

  - engine: the survey traversal state machine (sessions, validation
    dispatch, branching, completion)
  - validate: stateless answer validators
  - models: question document, keyboards, wire types
  - docstore: JSON file persistence with verified saves
  - admin: the operator's runtime editing panel
  - report: closing-message and operator-report rendering
  - archive: durable submission/ban record (sqlite or postgres)
  - telegram: the delivery adapter (the only Telegram-aware package)
  - router: webhook ingress and turn dispatch
  - middleware: logging, webhook secret check, JSON helpers
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
