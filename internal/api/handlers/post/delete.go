package post

import (
	"net/http"

	"Forumul/internal/api/handlers"
)

// HandleDelete handles DELETE /api/posts/{id}
// Comments are removed first; if that fails the post is kept and 500 CascadeDeleteFailed is returned.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	if err := h.sequencer.DeletePost(r.Context(), id); err != nil {
		handlers.HandleServiceError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
