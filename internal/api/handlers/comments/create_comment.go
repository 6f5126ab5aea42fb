package comments

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"Forumul/internal/api/handlers"
	"Forumul/internal/api/handlers/post"
	"Forumul/internal/core/forum"
	"Forumul/internal/core/posts"
)

// maxCommentBody bounds the JSON body of a comment submission
const maxCommentBody = 64 << 10

type createCommentRequest struct {
	Content string `json:"content"`
}

// CreateHandler handles comment creation
type CreateHandler struct {
	sequencer *forum.Sequencer
	logger    *slog.Logger
	now       func() time.Time
}

// NewCreateHandler creates a new create comment handler
func NewCreateHandler(sequencer *forum.Sequencer, logger *slog.Logger) *CreateHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CreateHandler{
		sequencer: sequencer,
		logger:    logger,
		now:       time.Now,
	}
}

// HandleCreate handles POST /api/posts/{id}/comments
// Blank content is accepted and discarded: 204 with no write.
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	postID, err := posts.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		handlers.HandleServiceError(w, h.logger, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxCommentBody)

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	created, err := h.sequencer.AddComment(r.Context(), postID, req.Content)
	if err != nil {
		handlers.HandleServiceError(w, h.logger, err)
		return
	}
	if created == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, post.NewCommentView(*created, h.now()))
}
