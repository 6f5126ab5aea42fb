// Package app wires configuration into repositories, the blob store and the mutation sequencer.
// Both binaries start from Build.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"Forumul/internal/config"
	"Forumul/internal/core/comments"
	"Forumul/internal/core/forum"
	"Forumul/internal/core/media"
	"Forumul/internal/core/posts"
	"Forumul/internal/db/memory"
	"Forumul/internal/db/postgres"
	"Forumul/internal/storage/s3store"
)

// App is the wired core
type App struct {
	Posts     posts.Repository
	Comments  comments.Repository
	Sequencer *forum.Sequencer
	Logger    *slog.Logger
	db        *sql.DB
}

// newBlobStore is a seam so tests can run without S3
var newBlobStore = func(ctx context.Context, cfg config.S3Config, logger *slog.Logger) (media.BlobStore, error) {
	return s3store.New(ctx, s3store.Config{
		Endpoint:      cfg.Endpoint,
		Region:        cfg.Region,
		AccessKey:     cfg.AccessKey,
		SecretKey:     cfg.SecretKey,
		Bucket:        cfg.Bucket,
		PublicBaseURL: cfg.PublicBaseURL,
		PresignTTL:    cfg.PresignTTL,
		UsePathStyle:  cfg.UsePathStyle,
	}, logger)
}

// Build opens the configured store, runs migrations when asked, and wires the sequencer
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{Logger: logger}

	switch cfg.Store {
	case config.StoreMemory:
		store := memory.NewStore()
		a.Posts = store.Posts()
		a.Comments = store.Comments()
		logger.Warn("using in-memory store, data is lost on exit")

	default:
		db, err := postgres.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		if cfg.Database.Migrate {
			if err := postgres.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return nil, err
			}
			logger.Info("migrations completed")
		}
		a.db = db
		a.Posts = postgres.NewPostRepository(db)
		a.Comments = postgres.NewCommentRepository(db)
		logger.Info("connected to database", "driver", cfg.Database.Driver)
	}

	blobs, err := newBlobStore(ctx, cfg.S3, logger)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to create blob store: %w", err)
	}

	resolver, err := media.NewResolver(blobs, int(cfg.Media.MaxUploadBytes()), logger)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to create image resolver: %w", err)
	}

	a.Sequencer = forum.NewSequencer(a.Posts, a.Comments, resolver, logger)
	return a, nil
}

// Close releases the database connection, if any
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// NewLogger builds the process logger from config
func NewLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(cfg.Format) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (allowed: text, json)", cfg.Format)
	}
}
