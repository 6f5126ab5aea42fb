package post

import (
	"net/http"

	"Forumul/internal/api/handlers"
)

// HandleCreate handles POST /api/posts
// Accepts JSON {title, content, imageUrl} or multipart/form-data with an optional "image" file.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := h.readPostInput(w, r)
	if !ok {
		return
	}

	created, err := h.sequencer.CreatePost(r.Context(), in)
	if err != nil {
		handlers.HandleServiceError(w, h.logger, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, NewPostView(created, h.now()))
}
