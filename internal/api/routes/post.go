package routes

import (
	"github.com/go-chi/chi/v5"

	"Forumul/internal/api/handlers/post"
)

// RegisterPostRoutes registers the post endpoints on the router
func RegisterPostRoutes(r chi.Router, h *post.Handler) {
	r.Get("/api/posts", h.HandleList)
	r.Post("/api/posts", h.HandleCreate)
	r.Get("/api/posts/{id}", h.HandleGet)
	r.Put("/api/posts/{id}", h.HandleUpdate)
	r.Delete("/api/posts/{id}", h.HandleDelete)
	r.Post("/api/posts/{id}/upvote", h.HandleUpvote)
}
