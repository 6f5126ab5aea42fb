package forum

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"Forumul/internal/core/comments"
	"Forumul/internal/core/media"
	"Forumul/internal/core/posts"
)

// Mock repositories for testing
type mockPostRepository struct {
	mock.Mock
}

func (m *mockPostRepository) List(ctx context.Context) ([]*posts.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*posts.Post), args.Error(1)
}

func (m *mockPostRepository) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*posts.Post), args.Error(1)
}

func (m *mockPostRepository) Create(ctx context.Context, in posts.NewPost) (*posts.Post, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*posts.Post), args.Error(1)
}

func (m *mockPostRepository) Update(ctx context.Context, id int64, fields posts.UpdateFields) (*posts.Post, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*posts.Post), args.Error(1)
}

func (m *mockPostRepository) SetUpvotes(ctx context.Context, id int64, upvotes int) error {
	args := m.Called(ctx, id, upvotes)
	return args.Error(0)
}

func (m *mockPostRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockCommentRepository struct {
	mock.Mock
}

func (m *mockCommentRepository) ListByPost(ctx context.Context, postID int64) ([]*comments.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*comments.Comment), args.Error(1)
}

func (m *mockCommentRepository) Create(ctx context.Context, postID int64, content string) (*comments.Comment, error) {
	args := m.Called(ctx, postID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*comments.Comment), args.Error(1)
}

func (m *mockCommentRepository) DeleteByPost(ctx context.Context, postID int64) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

type mockImageResolver struct {
	mock.Mock
}

func (m *mockImageResolver) ResolveImage(ctx context.Context, in media.Input) (*string, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string {
	return &s
}

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testPost(id int64, title string, upvotes int, created time.Time) *posts.Post {
	return &posts.Post{
		ID:        id,
		Title:     title,
		Upvotes:   upvotes,
		CreatedAt: created,
	}
}
