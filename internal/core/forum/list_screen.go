package forum

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"Forumul/internal/core/posts"
)

// ListScreen is the view-model of the post list.
// It owns the raw post collection for one screen instance plus its search and sort state,
// and keeps the presentation list derived from those three inputs.
type ListScreen struct {
	repo         posts.Repository
	logger       *slog.Logger
	raw          []*posts.Post
	presentation []posts.Post
	searchTerm   string
	sort         SortMode
	mu           sync.RWMutex
	loaded       bool
	closed       bool
}

// NewListScreen creates a list screen sorted newest first with no search term
func NewListScreen(repo posts.Repository, logger *slog.Logger) *ListScreen {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListScreen{
		repo:   repo,
		logger: logger,
		sort:   SortNewest,
	}
}

// LoadPosts replaces the raw collection with every post from the store, newest first.
// On failure the previous cache is kept and a StoreReadError is returned.
func (s *ListScreen) LoadPosts(ctx context.Context) error {
	if s.isClosed() {
		return ErrScreenClosed
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to load posts", "error", err)
		return &StoreReadError{Op: "list posts", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrScreenClosed
	}

	s.raw = make([]*posts.Post, 0, len(list))
	for _, p := range list {
		s.raw = append(s.raw, p.Clone())
	}
	s.loaded = true
	s.recompute()

	s.logger.Debug("posts loaded", "count", len(s.raw))
	return nil
}

// SetSearchTerm updates the search term and recomputes the presentation. No store access.
func (s *ListScreen) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.searchTerm = term
	s.recompute()
}

// SetSortMode updates the sort mode and recomputes the presentation. No store access.
func (s *ListScreen) SetSortMode(mode SortMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sort = mode
	s.recompute()
}

// Presentation returns a snapshot of the derived list
func (s *ListScreen) Presentation() Presentation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Presentation{
		SearchTerm: s.searchTerm,
		Sort:       s.sort,
		Posts:      slices.Clone(s.presentation),
		Total:      len(s.raw),
	}
}

// Loaded reports whether the first load has completed
func (s *ListScreen) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// CachedPost returns the last-known copy of a post in the raw collection
func (s *ListScreen) CachedPost(id int64) (*posts.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.raw[i].Clone(), true
	}
	return nil, false
}

// ApplyMutationResult patches the raw collection in place and recomputes the presentation.
// Results arriving before the first load are ignored; there is nothing to patch yet.
func (s *ListScreen) ApplyMutationResult(m Mutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrScreenClosed
	}
	if !s.loaded {
		s.logger.Debug("ignoring mutation before first load", "kind", m.Kind.String(), "post_id", m.PostID)
		return nil
	}

	switch m.Kind {
	case MutationPostCreated:
		if m.Post == nil {
			return nil
		}
		if i := s.indexOf(m.Post.ID); i >= 0 {
			s.raw[i] = m.Post.Clone()
		} else {
			// The store lists newest first, so a fresh post goes to the front
			s.raw = slices.Insert(s.raw, 0, m.Post.Clone())
		}
	case MutationPostUpdated:
		if m.Post == nil {
			return nil
		}
		if i := s.indexOf(m.Post.ID); i >= 0 {
			s.raw[i] = m.Post.Clone()
		}
	case MutationPostDeleted:
		if i := s.indexOf(m.PostID); i >= 0 {
			s.raw = slices.Delete(s.raw, i, i+1)
		}
	case MutationPostUpvoted:
		if i := s.indexOf(m.PostID); i >= 0 {
			s.raw[i].Upvotes = m.Upvotes
		}
	case MutationCommentAdded:
		// the list shows no comment data
		return nil
	}

	s.recompute()
	return nil
}

// Close tears the screen down. Later loads and mutation results are dropped.
func (s *ListScreen) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.raw = nil
	s.presentation = nil
}

func (s *ListScreen) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// indexOf must be called with the lock held
func (s *ListScreen) indexOf(id int64) int {
	return slices.IndexFunc(s.raw, func(p *posts.Post) bool { return p.ID == id })
}

// recompute must be called with the write lock held
func (s *ListScreen) recompute() {
	s.presentation = DerivePresentation(s.raw, s.searchTerm, s.sort)
}
