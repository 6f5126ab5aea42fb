package routes

import (
	"github.com/go-chi/chi/v5"

	"Forumul/internal/api/handlers/comments"
)

// RegisterCommentRoutes registers the comment endpoints on the router
func RegisterCommentRoutes(r chi.Router, h *comments.CreateHandler) {
	r.Post("/api/posts/{id}/comments", h.HandleCreate)
}
