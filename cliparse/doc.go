// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - BotToken: Telegram bot token (required)
  - OperatorID: Telegram user id of the single operator (required)
  - QuestionsFile: question document path (default: questions_data.json)
  - MediaDir: logo and per-question images (default: media)
  - Port: webhook server port (default: 10000)
  - WebhookURL: public base URL; empty switches the bot to long polling
  - WebhookSecret: optional secret echoed back by Telegram per delivery
  - ArchiveDriver / ArchiveURL: submission archive (sqlite by default,
    postgres for shared deployments, none to disable)
  - SessionTTL: idle session eviction period (0 = sessions never expire)

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	BOT_TOKEN       → -token
	OPERATOR_ID     → -operator
	QUESTIONS_FILE  → -questions
	MEDIA_DIR       → -media
	WEBHOOK_URL     → -webhook-url
	WEBHOOK_SECRET  → -webhook-secret
	ARCHIVE_DRIVER  → -archive-driver
	ARCHIVE_URL     → -archive-url
	SESSION_TTL     → -session-ttl

CLI flags take precedence over environment variables. main loads a .env
file (godotenv) before parsing, so a local .env behaves like exported
environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - BOT_TOKEN must be provided
  - OPERATOR_ID must be provided and numeric
  - ARCHIVE_URL must be provided when the postgres driver is selected
*/
package cliparse
