package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"Forumul/internal/app"
	"Forumul/internal/client/cli"
	"Forumul/internal/config"
)

func main() {
	cfg, err := config.Load(os.Getenv("FORUMUL_CONFIG"))
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Logs go to a file when FORUMUL_LOG_FILE is set so they do not interleave with the prompt
	var logOut io.Writer = os.Stderr
	if path := os.Getenv("FORUMUL_LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			log.Fatal("Failed to open log file:", err)
		}
		defer func() { _ = f.Close() }()
		logOut = f
	}

	logger, err := app.NewLogger(cfg.Log, logOut)
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

	cli.NewApp(forum.Posts, forum.Comments, forum.Sequencer, os.Stdin, os.Stdout, logger).Run(ctx)
}
