package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"Forumul/internal/api/handlers/comments"
	"Forumul/internal/api/handlers/post"
	"Forumul/internal/api/middleware"
	corecomments "Forumul/internal/core/comments"
	"Forumul/internal/core/forum"
	"Forumul/internal/core/posts"
)

// Deps is everything the router needs to serve the API
type Deps struct {
	Posts       posts.Repository
	Comments    corecomments.Repository
	Sequencer   *forum.Sequencer
	RateLimiter *middleware.RateLimiter // optional
	Logger      *slog.Logger
	MaxUpload   int64
}

// NewRouter builds the chi router with request middleware and every API route
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)

	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Middleware)
	}

	RegisterPostRoutes(r, post.NewHandler(deps.Posts, deps.Comments, deps.Sequencer, deps.MaxUpload, deps.Logger))
	RegisterCommentRoutes(r, comments.NewCreateHandler(deps.Sequencer, deps.Logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
