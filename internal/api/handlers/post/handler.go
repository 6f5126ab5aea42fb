package post

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"Forumul/internal/api/handlers"
	"Forumul/internal/core/comments"
	"Forumul/internal/core/forum"
	"Forumul/internal/core/posts"
)

// Handler serves the post endpoints. Every request builds its own screen and closes it on return.
type Handler struct {
	posts     posts.Repository
	comments  comments.Repository
	sequencer *forum.Sequencer
	logger    *slog.Logger
	now       func() time.Time
	maxUpload int64
}

// NewHandler creates a new post handler. maxUpload bounds the image part of multipart forms.
func NewHandler(postRepo posts.Repository, commentRepo comments.Repository, sequencer *forum.Sequencer, maxUpload int64, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		posts:     postRepo,
		comments:  commentRepo,
		sequencer: sequencer,
		logger:    logger,
		now:       time.Now,
		maxUpload: maxUpload,
	}
}

// postID parses the {id} URL parameter, writing a 400 on failure
func (h *Handler) postID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := posts.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		handlers.HandleServiceError(w, h.logger, err)
		return 0, false
	}
	return id, true
}
