package post

import (
	"net/http"

	"Forumul/internal/api/handlers"
	"Forumul/internal/core/forum"
)

// HandleList handles GET /api/posts?search=&sort=newest|popular
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	mode, err := forum.ParseSortMode(r.URL.Query().Get("sort"))
	if err != nil {
		handlers.HandleServiceError(w, h.logger, err)
		return
	}

	screen := forum.NewListScreen(h.posts, h.logger)
	defer screen.Close()

	if err := screen.LoadPosts(r.Context()); err != nil {
		handlers.HandleServiceError(w, h.logger, err)
		return
	}
	screen.SetSearchTerm(r.URL.Query().Get("search"))
	screen.SetSortMode(mode)

	pres := screen.Presentation()
	handlers.WriteJSON(w, http.StatusOK, ListResponse{
		Search:       pres.SearchTerm,
		Sort:         pres.Sort,
		EmptyMessage: pres.EmptyMessage(),
		Posts:        pres.Summaries(h.now()),
		Total:        pres.Total,
	})
}
