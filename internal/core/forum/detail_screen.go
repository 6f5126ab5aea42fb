package forum

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"Forumul/internal/core/comments"
	"Forumul/internal/core/posts"
	"Forumul/internal/core/timeutil"
)

// DetailState is the lifecycle state of a detail screen
type DetailState int

const (
	// DetailIdle means no load has completed yet
	DetailIdle DetailState = iota
	// DetailReady means a post and its comments are cached
	DetailReady
	// DetailNotFound is terminal: the store reported the post absent
	DetailNotFound
	// DetailDeleted is terminal: the post was deleted through this client
	DetailDeleted
)

func (s DetailState) String() string {
	switch s {
	case DetailReady:
		return "ready"
	case DetailNotFound:
		return "not_found"
	case DetailDeleted:
		return "deleted"
	default:
		return "idle"
	}
}

// DetailScreen is the view-model of a single post and its comments
type DetailScreen struct {
	posts            posts.Repository
	comments         comments.Repository
	logger           *slog.Logger
	post             *posts.Post
	thread           []*comments.Comment
	mu               sync.RWMutex
	state            DetailState
	commentsDegraded bool
	closed           bool
}

// NewDetailScreen creates an idle detail screen
func NewDetailScreen(postRepo posts.Repository, commentRepo comments.Repository, logger *slog.Logger) *DetailScreen {
	if logger == nil {
		logger = slog.Default()
	}
	return &DetailScreen{
		posts:    postRepo,
		comments: commentRepo,
		logger:   logger,
	}
}

// LoadPostDetail fetches a post and its comments in parallel.
// A missing post moves the screen to the terminal DetailNotFound state and returns NotFoundError.
// A failed comment fetch never blocks the post: see degradeComments.
func (s *DetailScreen) LoadPostDetail(ctx context.Context, id int64) error {
	if s.isClosed() {
		return ErrScreenClosed
	}

	var (
		post        *posts.Post
		thread      []*comments.Comment
		commentsErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		post, err = s.posts.GetByID(gctx, id)
		return err
	})
	g.Go(func() error {
		// never fails the group; handled by the fallback below
		thread, commentsErr = s.comments.ListByPost(gctx, id)
		return nil
	})
	postErr := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrScreenClosed
	}

	if postErr != nil {
		if posts.IsNotFound(postErr) {
			s.state = DetailNotFound
			s.post = nil
			s.thread = nil
			s.logger.Info("post not found", "post_id", id)
			return NewNotFoundError("post", id)
		}
		s.logger.Error("failed to load post", "post_id", id, "error", postErr)
		return &StoreReadError{Op: "get post", Err: postErr}
	}

	degraded := commentsErr != nil
	if degraded {
		thread = s.degradeComments(id, commentsErr)
	}

	s.post = post.Clone()
	s.thread = cloneThread(thread)
	slices.SortStableFunc(s.thread, func(a, b *comments.Comment) int {
		return timeutil.OldestFirst(a.CreatedAt, b.CreatedAt)
	})
	s.commentsDegraded = degraded
	s.state = DetailReady

	s.logger.Debug("post detail loaded",
		"post_id", id,
		"comment_count", len(s.thread),
		"comments_degraded", degraded)
	return nil
}

// degradeComments is the fallback for a failed comment fetch: the post is still shown
// with an empty comment list and the failure is logged instead of surfaced.
func (s *DetailScreen) degradeComments(postID int64, cause error) []*comments.Comment {
	s.logger.Warn("comment fetch failed, showing post without comments",
		"post_id", postID,
		"error", cause)
	return []*comments.Comment{}
}

// State returns the lifecycle state
func (s *DetailScreen) State() DetailState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Post returns a copy of the cached post, if any
func (s *DetailScreen) Post() (*posts.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.post == nil {
		return nil, false
	}
	return s.post.Clone(), true
}

// Comments returns a copy of the cached comments, oldest first
func (s *DetailScreen) Comments() []comments.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]comments.Comment, 0, len(s.thread))
	for _, c := range s.thread {
		out = append(out, *c)
	}
	return out
}

// CommentsDegraded reports whether the comment list is the empty fallback after a failed fetch
func (s *DetailScreen) CommentsDegraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.commentsDegraded
}

// CachedPost returns the cached post when it has the given ID
func (s *DetailScreen) CachedPost(id int64) (*posts.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.post == nil || s.post.ID != id {
		return nil, false
	}
	return s.post.Clone(), true
}

// ApplyMutationResult patches the cached post and comment sequence.
// Results addressed to other posts are ignored.
func (s *DetailScreen) ApplyMutationResult(m Mutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrScreenClosed
	}
	if s.post == nil || m.PostID != s.post.ID {
		return nil
	}

	switch m.Kind {
	case MutationPostUpdated:
		if m.Post != nil {
			s.post = m.Post.Clone()
		}
	case MutationPostUpvoted:
		s.post.Upvotes = m.Upvotes
	case MutationCommentAdded:
		if m.Comment != nil {
			// inserts are always newest, so appending keeps ascending order
			c := *m.Comment
			s.thread = append(s.thread, &c)
		}
	case MutationPostDeleted:
		s.post = nil
		s.thread = nil
		s.state = DetailDeleted
	}
	return nil
}

// Close tears the screen down. Later loads and mutation results are dropped.
func (s *DetailScreen) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.post = nil
	s.thread = nil
}

func (s *DetailScreen) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

func cloneThread(in []*comments.Comment) []*comments.Comment {
	out := make([]*comments.Comment, 0, len(in))
	for _, c := range in {
		if c == nil {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out
}
