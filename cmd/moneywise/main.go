package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"MoneyWise/internal/config"
	"MoneyWise/internal/httpapi"
	"MoneyWise/internal/ledger"
	"MoneyWise/internal/logger"
	"MoneyWise/internal/notifier"
	"MoneyWise/internal/recorder"
	"MoneyWise/internal/scheduler"
	"MoneyWise/internal/store"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.New("info").Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	log.Info().Str("addr", cfg.Server.Addr).Str("storage", cfg.Storage.Backend).Msg("MoneyWise starting")

	// Init snapshot store
	if cfg.Storage.Backend == store.BackendSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o755); err != nil {
			log.Fatal().Err(err).Msg("create storage directory")
		}
	}
	kv, err := store.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("open storage")
	}
	defer kv.Close()

	// Init recorder
	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Database.SQLitePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0o755); err != nil {
			log.Warn().Err(err).Msg("create recorder directory, using noop")
		} else if sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log); err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		} else {
			rec = sr
			defer sr.Close()
		}
	}

	// Init assistant
	opts := []ledger.Option{
		ledger.WithLogger(log),
		ledger.WithRecorder(rec),
		ledger.WithEpochs(cfg.Model.Epochs),
		ledger.WithDefaultBudget(cfg.Budgets.Default),
	}
	if cfg.Model.Seed != 0 {
		opts = append(opts, ledger.WithSeed(cfg.Model.Seed))
	}
	assistant, err := ledger.New(store.NewSnapshot(kv), opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("init assistant")
	}
	guard := ledger.NewGuard(assistant)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Telegram notifier
	var (
		tn     *notifier.TelegramNotifier
		sender scheduler.Sender
	)
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log)
		sender = tn
	} else {
		log.Info().Msg("telegram disabled, notifications are logged only")
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, guard, sender, rec, log)
	if err := sched.RegisterAll(cfg.Schedule.WeeklyCron, cfg.Schedule.DailyCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info().Msg("telegram polling started")
	}

	// Start HTTP server
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           httpapi.NewRouter(httpapi.NewHandler(guard, log), log),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server")
			cancel()
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Info().Msg("shutdown signal received, stopping...")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP shutdown")
	}
	cancel()
	log.Info().Msg("MoneyWise stopped")
}
