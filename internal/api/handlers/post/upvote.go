package post

import (
	"net/http"

	"Forumul/internal/api/handlers"
	"Forumul/internal/core/forum"
)

// HandleUpvote handles POST /api/posts/{id}/upvote
// The request loads the post into a detail screen and upvotes from that cached count.
func (h *Handler) HandleUpvote(w http.ResponseWriter, r *http.Request) {
	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	screen := forum.NewDetailScreen(h.posts, h.comments, h.logger)
	defer screen.Close()

	if err := screen.LoadPostDetail(r.Context(), id); err != nil {
		handlers.HandleServiceError(w, h.logger, err)
		return
	}

	upvotes, err := h.sequencer.Upvote(r.Context(), screen, id)
	if err != nil {
		handlers.HandleServiceError(w, h.logger, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, UpvoteResponse{Upvotes: upvotes})
}
