package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dangerclosesec/crmboard"
	"github.com/dangerclosesec/crmboard/internal/auth"
	"github.com/dangerclosesec/crmboard/internal/config"
	"github.com/dangerclosesec/crmboard/internal/database"
	"github.com/dangerclosesec/crmboard/internal/email"
	"github.com/dangerclosesec/crmboard/internal/handler"
	"github.com/dangerclosesec/crmboard/internal/lock"
	"github.com/dangerclosesec/crmboard/internal/metrics"
	"github.com/dangerclosesec/crmboard/internal/realtime"
	"github.com/dangerclosesec/crmboard/internal/repository"
	"github.com/dangerclosesec/crmboard/internal/service"
)

const (
	tokenExpiry     = 24 * time.Hour
	lockExpiry      = 2 * time.Minute
	shutdownTimeout = 30 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   slog.TimeKey,
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	db, err := database.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}

	m := metrics.New()
	hub := realtime.NewHub(realtime.DefaultBuffer, m)
	defer hub.Close()

	var (
		publisher realtime.Publisher = hub
		locker                       = lock.NewMemoryLocker()
	)
	if cfg.Redis.URL != "" {
		client, err := realtime.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer client.Close()

		relay := realtime.NewRedisRelay(client, hub)
		go func() {
			if err := relay.Run(ctx); err != nil {
				logger.Error("realtime relay stopped", "error", err)
			}
		}()
		publisher = relay
		locker = lock.NewRedisLocker(client, lockExpiry)
	}

	pipelineRepo := repository.NewPipelineRepository(db)
	stageRepo := repository.NewStageRepository(db)
	batchRepo := repository.NewBatchRepository(db)
	cardRepo := repository.NewCardRepository(db)
	clientRepo := repository.NewClientRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	cacheService := service.NewCacheService(service.CacheConfig{
		Size: cfg.Cache.Size,
		TTL:  cfg.Cache.TTL,
	})
	defer cacheService.Close()

	activityService := service.NewActivityService(activityRepo)
	pipelineService := service.NewPipelineService(pipelineRepo, stageRepo, batchRepo, cacheService, publisher, activityService)
	cardService := service.NewCardService(cardRepo, stageRepo, clientRepo, cacheService, publisher, activityService, m)
	clientService := service.NewClientService(clientRepo, activityService)
	calendarService := service.NewCalendarService(calendarRepo)

	var mailer email.Sender
	if cfg.Sendgrid.APIKey != "" || cfg.SMTP.Host != "" {
		emailService, err := email.NewEmailService(cfg, email.ProviderFor(cfg))
		if err != nil {
			return fmt.Errorf("setting up email: %w", err)
		}
		mailer = emailService
	} else {
		logger.Warn("no mail provider configured, reminders are published as events only")
	}

	reminders := service.NewReminderService(calendarRepo, mailer, publisher, locker, m, service.ReminderConfig{
		Schedule: cfg.Reminder.Schedule,
		Batch:    cfg.Reminder.Batch,
		BaseURL:  cfg.BaseURL,
	})
	if err := reminders.Start(ctx); err != nil {
		return err
	}
	defer reminders.Stop()

	r := handler.NewRouter(handler.Deps{
		Logger:       logger,
		TokenManager: auth.NewTokenManager(cfg.JWT.Secret, tokenExpiry),
		Metrics:      m,
		Hub:          hub,
		Pipelines:    pipelineService,
		Cards:        cardService,
		Clients:      clientService,
		Calendar:     calendarService,
		Activity:     activityService,
		CORSOrigins:  cfg.Server.CORSOrigins,
		Version:      crmboard.Version,
		Shutdown:     ctx,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", "port", cfg.Server.Port, "version", crmboard.Version)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("shutdown started", "signal", sig)

		// end realtime streams and the relay before draining requests
		stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
