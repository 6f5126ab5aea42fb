package post

import (
	"net/http"

	"Forumul/internal/api/handlers"
	"Forumul/internal/core/forum"
)

// HandleGet handles GET /api/posts/{id}
// The post and its comments load in parallel; a failed comment fetch still returns the post
// with an empty list and commentsUnavailable set.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
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

	post, ok := screen.Post()
	if !ok {
		handlers.HandleServiceError(w, h.logger, forum.NewNotFoundError("post", id))
		return
	}

	now := h.now()
	thread := screen.Comments()
	views := make([]CommentView, 0, len(thread))
	for _, c := range thread {
		views = append(views, NewCommentView(c, now))
	}

	handlers.WriteJSON(w, http.StatusOK, DetailResponse{
		Post:                NewPostView(post, now),
		Comments:            views,
		CommentsUnavailable: screen.CommentsDegraded(),
	})
}
