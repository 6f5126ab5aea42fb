package post

import (
	"net/http"

	"Forumul/internal/api/handlers"
)

// HandleUpdate handles PUT /api/posts/{id}
// Title, content and image are overwritten; blank imageUrl with no file clears the image.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	in, ok := h.readPostInput(w, r)
	if !ok {
		return
	}

	updated, err := h.sequencer.UpdatePost(r.Context(), id, in)
	if err != nil {
		handlers.HandleServiceError(w, h.logger, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, NewPostView(updated, h.now()))
}
