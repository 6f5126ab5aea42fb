package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Forumul/internal/api/middleware"
	"Forumul/internal/api/routes"
	"Forumul/internal/app"
	"Forumul/internal/config"
)

func main() {
	cfg, err := config.Load(os.Getenv("FORUMUL_CONFIG"))
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := app.NewLogger(cfg.Log, os.Stderr)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	forum, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer func() { _ = forum.Close() }()

	router := routes.NewRouter(routes.Deps{
		Posts:       forum.Posts,
		Comments:    forum.Comments,
		Sequencer:   forum.Sequencer,
		RateLimiter: middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, logger),
		Logger:      logger,
		MaxUpload:   cfg.Media.MaxUploadBytes(),
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("forumul API starting", "addr", cfg.HTTP.Addr, "store", cfg.Store)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
