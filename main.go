// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/askflow/admin"
	"github.com/danielhkuo/askflow/archive"
	"github.com/danielhkuo/askflow/cliparse"
	"github.com/danielhkuo/askflow/docstore"
	"github.com/danielhkuo/askflow/engine"
	"github.com/danielhkuo/askflow/router"
	"github.com/danielhkuo/askflow/telegram"
)

func main() {
	// A local .env behaves like exported environment variables
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	store := docstore.NewFile(cfg.QuestionsFile)

	// Submission archive (optional)
	var rec engine.Recorder
	var arch *archive.Archive
	if cfg.ArchiveDriver != cliparse.ArchiveNone {
		dbConn, err := sql.Open(cfg.ArchiveDriver, cfg.ArchiveURL)
		if err != nil {
			slog.Error("archive connection failed", "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()

		if err := dbConn.Ping(); err != nil {
			slog.Error("archive ping failed", "error", err)
			os.Exit(1)
		}
		if err := archive.CreateSchema(dbConn); err != nil {
			slog.Error("archive schema creation failed", "error", err)
			os.Exit(1)
		}
		arch = archive.New(dbConn)
		rec = arch
		slog.Info("Archive ready", "driver", cfg.ArchiveDriver)
	}

	// Connect to Telegram
	tg, err := telegram.New(cfg.BotToken)
	if err != nil {
		slog.Error("telegram connection failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Authorized", "bot", tg.Username())

	eng := engine.New(store, tg, rec, engine.Config{
		OperatorID: cfg.OperatorID,
		MediaDir:   cfg.MediaDir,
	})

	// Bans are permanent; replay them after a restart.
	if arch != nil {
		banned, err := arch.BannedUsers(context.Background())
		if err != nil {
			slog.Error("ban replay failed", "error", err)
			os.Exit(1)
		}
		for _, id := range banned {
			eng.Ban(id)
		}
		if len(banned) > 0 {
			slog.Info("Replayed bans", "count", len(banned))
		}
	}

	panel := admin.New(store, tg, cfg.OperatorID)
	disp := router.NewDispatcher(eng, panel)

	if cfg.SessionTTL > 0 {
		go func() {
			ticker := time.NewTicker(cfg.SessionTTL)
			defer ticker.Stop()
			for range ticker.C {
				if n := eng.EvictIdle(cfg.SessionTTL); n > 0 {
					slog.Info("Evicted idle sessions", "count", n)
				}
			}
		}()
	}

	if cfg.WebhookURL != "" {
		runWebhook(tg, disp, cfg)
	} else {
		runPolling(tg, disp)
	}
}

func runWebhook(tg *telegram.Client, disp *router.Dispatcher, cfg cliparse.Config) {
	url := strings.TrimSuffix(cfg.WebhookURL, "/") + "/webhook"
	if err := tg.RegisterWebhook(url, cfg.WebhookSecret); err != nil {
		slog.Error("webhook registration failed", "error", err)
		os.Exit(1)
	}

	mux := router.NewRouter(disp, cfg)
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	slog.Info("Webhook listening", "port", cfg.Port, "url", url)
	err := server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

func runPolling(tg *telegram.Client, disp *router.Dispatcher) {
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		tg.Stop()
	}()

	slog.Info("Long polling for updates")
	for upd := range tg.Updates() {
		msg, ok := telegram.InboundFrom(upd)
		if !ok {
			continue
		}
		if err := disp.Dispatch(context.Background(), msg); err != nil {
			slog.Error("turn failed", "user_id", msg.UserID, "error", err)
		}
	}
	slog.Info("Update channel closed")
}
