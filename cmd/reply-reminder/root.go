package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smith3v/reply-reminder/pkg/api"
	"github.com/smith3v/reply-reminder/pkg/bot"
	"github.com/smith3v/reply-reminder/pkg/bot/handlers"
	"github.com/smith3v/reply-reminder/pkg/config"
	"github.com/smith3v/reply-reminder/pkg/db"
	"github.com/smith3v/reply-reminder/pkg/logger"
	"github.com/smith3v/reply-reminder/pkg/metrics"
	"github.com/smith3v/reply-reminder/pkg/notifier"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	defaultConfigFile = "config.json"
	shutdownTimeout   = 10 * time.Second
)

func newRootCommand() *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:           "reply-reminder",
		Short:         "Track messages that still need a reply and get reminded before they go stale",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			file := configFile
			if !cmd.Flags().Changed("config") {
				if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
					file = ""
				}
			}
			return run(cmd.Context(), file)
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", defaultConfigFile, "path to the JSON config file")
	return cmd
}

func run(parent context.Context, configFile string) error {
	if parent == nil {
		parent = context.Background()
	}
	if err := config.LoadConfig(configFile); err != nil {
		return err
	}
	cfg := config.AppConfig

	if err := logger.Configure(logger.Options{
		Level:  cfg.Logging.Level,
		File:   cfg.Logging.File,
		Format: cfg.Logging.Format,
	}); err != nil {
		logger.Error("failed to configure logger", "error", err)
	}
	gin.SetMode(cfg.Server.Mode)

	store, err := db.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := store.EnsureSettings(ctx); err != nil {
		return err
	}

	m, err := metrics.New()
	if err != nil {
		return err
	}

	router := api.NewRouter(store, api.Options{
		Metrics:        m,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
		DefaultSnooze:  cfg.Reminders.DefaultSnooze,
	})
	srv := newServer(cfg.Server, router)

	g, ctx := errgroup.WithContext(ctx)

	var sender notifier.Sender = notifier.LogSender{}
	if cfg.Telegram.Token != "" {
		b, err := bot.New(cfg.Telegram.Token, handlers.New(store, handlers.Options{
			ChatID:        cfg.Telegram.ChatID,
			DefaultSnooze: cfg.Reminders.DefaultSnooze,
		}))
		if err != nil {
			return err
		}
		if err := bot.SetCommands(ctx, b); err != nil {
			logger.Warn("failed to publish bot commands", "error", err)
		}
		if cfg.Telegram.ChatID != 0 {
			sender = notifier.NewTelegramSender(b, cfg.Telegram.ChatID)
		} else {
			logger.Warn("telegram.chat_id not set, reminders are logged instead of sent")
		}
		g.Go(func() error {
			logger.Info("starting telegram bot")
			b.Start(ctx)
			return nil
		})
	} else {
		logger.Info("telegram token not provided, reminders are logged")
	}

	n := notifier.New(store, sender, notifier.Options{
		Threshold:     cfg.Reminders.AlertThreshold,
		RenotifyAfter: cfg.Reminders.RenotifyAfter,
		Metrics:       m,
	})
	g.Go(func() error {
		n.Start(ctx, cfg.Reminders.PollInterval)
		return nil
	})

	g.Go(func() error {
		logger.Info("http server listening", "addr", cfg.Server.Addr)
		return srv.Run()
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
