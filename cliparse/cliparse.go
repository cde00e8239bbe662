package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Archive driver choices
const (
	ArchiveSQLite   = "sqlite"
	ArchivePostgres = "postgres"
	ArchiveNone     = "none"
)

type Config struct {
	Port          int
	BotToken      string
	OperatorID    int64
	QuestionsFile string
	MediaDir      string
	WebhookURL    string
	WebhookSecret string
	ArchiveDriver string
	ArchiveURL    string
	SessionTTL    time.Duration
}

// ParseFlags validates flags and fills defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("askflow", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Webhook server port")
	fs.StringVar(&cfg.WebhookURL, "webhook-url", "", "Public base URL for the webhook (empty = long polling)")

	// Bot identity (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.BotToken, "token", "", "Telegram bot token (prefer env)")
	fs.Int64Var(&cfg.OperatorID, "operator", 0, "Operator Telegram user id")
	fs.StringVar(&cfg.WebhookSecret, "webhook-secret", "", "Webhook secret token (prefer env)")

	// Content
	fs.StringVar(&cfg.QuestionsFile, "questions", "", "Question document path")
	fs.StringVar(&cfg.MediaDir, "media", "", "Directory with logo.jpg and per-question images")

	// Archive
	fs.StringVar(&cfg.ArchiveDriver, "archive-driver", "", "Archive driver (sqlite, postgres or none)")
	fs.StringVar(&cfg.ArchiveURL, "archive-url", "", "Archive DSN")

	// Sessions
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", 0, "Evict sessions idle longer than this (0 = never)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 10000 // default
		}
	}
	if cfg.WebhookURL == "" {
		cfg.WebhookURL = os.Getenv("WEBHOOK_URL")
	}
	if cfg.WebhookSecret == "" {
		cfg.WebhookSecret = os.Getenv("WEBHOOK_SECRET")
	}

	// Bot token and operator - MUST be provided
	if cfg.BotToken == "" {
		cfg.BotToken = os.Getenv("BOT_TOKEN")
	}
	if cfg.BotToken == "" {
		return Config{}, errors.New("BOT_TOKEN required")
	}
	if cfg.OperatorID == 0 {
		if idStr := os.Getenv("OPERATOR_ID"); idStr != "" {
			id, err := strconv.ParseInt(idStr, 10, 64)
			if err != nil {
				return Config{}, errors.New("invalid OPERATOR_ID env variable")
			}
			cfg.OperatorID = id
		}
	}
	if cfg.OperatorID == 0 {
		return Config{}, errors.New("OPERATOR_ID required")
	}

	if cfg.QuestionsFile == "" {
		cfg.QuestionsFile = os.Getenv("QUESTIONS_FILE")
	}
	if cfg.QuestionsFile == "" {
		cfg.QuestionsFile = "questions_data.json"
	}
	if cfg.MediaDir == "" {
		cfg.MediaDir = os.Getenv("MEDIA_DIR")
	}
	if cfg.MediaDir == "" {
		cfg.MediaDir = "media"
	}

	if cfg.ArchiveDriver == "" {
		cfg.ArchiveDriver = os.Getenv("ARCHIVE_DRIVER")
	}
	if cfg.ArchiveDriver == "" {
		cfg.ArchiveDriver = ArchiveSQLite
	}
	switch cfg.ArchiveDriver {
	case ArchiveSQLite, ArchivePostgres, ArchiveNone:
	default:
		return Config{}, fmt.Errorf("unknown archive driver %q (want sqlite, postgres or none)", cfg.ArchiveDriver)
	}
	if cfg.ArchiveURL == "" {
		cfg.ArchiveURL = os.Getenv("ARCHIVE_URL")
	}
	if cfg.ArchiveURL == "" && cfg.ArchiveDriver == ArchiveSQLite {
		cfg.ArchiveURL = "askflow.db"
	}
	if cfg.ArchiveURL == "" && cfg.ArchiveDriver == ArchivePostgres {
		return Config{}, errors.New("ARCHIVE_URL required for the postgres archive driver")
	}

	if cfg.SessionTTL == 0 {
		if ttlStr := os.Getenv("SESSION_TTL"); ttlStr != "" {
			ttl, err := time.ParseDuration(ttlStr)
			if err != nil {
				return Config{}, errors.New("invalid SESSION_TTL env variable")
			}
			cfg.SessionTTL = ttl
		}
	}
	if cfg.SessionTTL < 0 {
		return Config{}, errors.New("session-ttl must not be negative")
	}

	return cfg, nil
}
