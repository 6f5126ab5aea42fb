// Package memory provides process-local repositories for development and tests.
// Behaviour matches the postgres adapters: ids are assigned sequentially,
// lists come back newest first for posts and oldest first for comments.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"Forumul/internal/core/comments"
	"Forumul/internal/core/posts"
	"Forumul/internal/core/timeutil"
)

// Store holds posts and comments behind one lock so the comment FK check sees a consistent post table
type Store struct {
	now           func() time.Time
	posts         map[int64]*posts.Post
	comments      map[int64][]*comments.Comment
	mu            sync.RWMutex
	nextPostID    int64
	nextCommentID int64
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		now:      time.Now,
		posts:    make(map[int64]*posts.Post),
		comments: make(map[int64][]*comments.Comment),
	}
}

// Posts returns the post repository view of the store
func (s *Store) Posts() posts.Repository {
	return &postRepo{s: s}
}

// Comments returns the comment repository view of the store
func (s *Store) Comments() comments.Repository {
	return &commentRepo{s: s}
}

type postRepo struct {
	s *Store
}

func (r *postRepo) List(ctx context.Context) ([]*posts.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*posts.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		out = append(out, p.Clone())
	}
	slices.SortFunc(out, func(a, b *posts.Post) int {
		if c := timeutil.NewestFirst(a.CreatedAt, b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

func (r *postRepo) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, posts.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *postRepo) Create(ctx context.Context, in posts.NewPost) (*posts.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextPostID++
	p := &posts.Post{
		ID:        r.s.nextPostID,
		Title:     in.Title,
		Content:   copyString(in.Content),
		ImageURL:  copyString(in.ImageURL),
		CreatedAt: r.s.now().UTC(),
	}
	r.s.posts[p.ID] = p
	return p.Clone(), nil
}

func (r *postRepo) Update(ctx context.Context, id int64, fields posts.UpdateFields) (*posts.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, posts.ErrNotFound
	}
	p.Title = fields.Title
	p.Content = copyString(fields.Content)
	p.ImageURL = copyString(fields.ImageURL)
	return p.Clone(), nil
}

func (r *postRepo) SetUpvotes(ctx context.Context, id int64, upvotes int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[id]
	if !ok {
		return posts.ErrNotFound
	}
	p.Upvotes = upvotes
	return nil
}

func (r *postRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[id]; !ok {
		return posts.ErrNotFound
	}
	delete(r.s.posts, id)
	return nil
}

type commentRepo struct {
	s *Store
}

func (r *commentRepo) ListByPost(ctx context.Context, postID int64) ([]*comments.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	thread := r.s.comments[postID]
	out := make([]*comments.Comment, 0, len(thread))
	for _, c := range thread {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *commentRepo) Create(ctx context.Context, postID int64, content string) (*comments.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[postID]; !ok {
		return nil, comments.ErrPostNotFound
	}

	r.s.nextCommentID++
	c := &comments.Comment{
		ID:        r.s.nextCommentID,
		PostID:    postID,
		Content:   content,
		CreatedAt: r.s.now().UTC(),
	}
	r.s.comments[postID] = append(r.s.comments[postID], c)

	cp := *c
	return &cp, nil
}

func (r *commentRepo) DeleteByPost(ctx context.Context, postID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.comments, postID)
	return nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
