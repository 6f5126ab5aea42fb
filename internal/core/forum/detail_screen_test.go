package forum

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"Forumul/internal/core/comments"
	"Forumul/internal/core/posts"
)

func testComment(id, postID int64, content string, created time.Time) *comments.Comment {
	return &comments.Comment{ID: id, PostID: postID, Content: content, CreatedAt: created}
}

func TestDetailScreen_LoadPostDetail(t *testing.T) {
	postRepo := new(mockPostRepository)
	commentRepo := new(mockCommentRepository)

	postRepo.On("GetByID", mock.Anything, int64(5)).Return(testPost(5, "hello", 2, baseTime), nil)
	commentRepo.On("ListByPost", mock.Anything, int64(5)).Return([]*comments.Comment{
		testComment(2, 5, "second", baseTime.Add(2*time.Minute)),
		testComment(1, 5, "first", baseTime.Add(time.Minute)),
	}, nil)

	screen := NewDetailScreen(postRepo, commentRepo, discardLogger())
	require.NoError(t, screen.LoadPostDetail(context.Background(), 5))

	assert.Equal(t, DetailReady, screen.State())
	post, ok := screen.Post()
	require.True(t, ok)
	assert.Equal(t, "hello", post.Title)

	thread := screen.Comments()
	require.Len(t, thread, 2)
	assert.Equal(t, "first", thread[0].Content)
	assert.Equal(t, "second", thread[1].Content)
	assert.False(t, screen.CommentsDegraded())
}

func TestDetailScreen_NotFound(t *testing.T) {
	postRepo := new(mockPostRepository)
	commentRepo := new(mockCommentRepository)

	postRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, posts.ErrNotFound)
	commentRepo.On("ListByPost", mock.Anything, int64(404)).Return([]*comments.Comment{}, nil)

	screen := NewDetailScreen(postRepo, commentRepo, discardLogger())
	err := screen.LoadPostDetail(context.Background(), 404)

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, DetailNotFound, screen.State())
	_, ok := screen.Post()
	assert.False(t, ok)
}

func TestDetailScreen_PostReadFailure(t *testing.T) {
	postRepo := new(mockPostRepository)
	commentRepo := new(mockCommentRepository)

	postRepo.On("GetByID", mock.Anything, int64(5)).Return(nil, errors.New("timeout"))
	commentRepo.On("ListByPost", mock.Anything, int64(5)).Return([]*comments.Comment{}, nil)

	screen := NewDetailScreen(postRepo, commentRepo, discardLogger())
	err := screen.LoadPostDetail(context.Background(), 5)

	assert.True(t, IsStoreReadError(err))
	assert.Equal(t, DetailIdle, screen.State())
}

func TestDetailScreen_CommentFailureDegrades(t *testing.T) {
	postRepo := new(mockPostRepository)
	commentRepo := new(mockCommentRepository)

	postRepo.On("GetByID", mock.Anything, int64(5)).Return(testPost(5, "hello", 0, baseTime), nil)
	commentRepo.On("ListByPost", mock.Anything, int64(5)).Return(nil, errors.New("comments table locked"))

	screen := NewDetailScreen(postRepo, commentRepo, discardLogger())
	require.NoError(t, screen.LoadPostDetail(context.Background(), 5))

	assert.Equal(t, DetailReady, screen.State())
	assert.True(t, screen.CommentsDegraded())
	assert.Empty(t, screen.Comments())
	_, ok := screen.Post()
	assert.True(t, ok)
}

func loadedDetailScreen(t *testing.T, post *posts.Post, thread ...*comments.Comment) *DetailScreen {
	t.Helper()
	postRepo := new(mockPostRepository)
	commentRepo := new(mockCommentRepository)
	postRepo.On("GetByID", mock.Anything, post.ID).Return(post, nil)
	commentRepo.On("ListByPost", mock.Anything, post.ID).Return(thread, nil)

	screen := NewDetailScreen(postRepo, commentRepo, discardLogger())
	require.NoError(t, screen.LoadPostDetail(context.Background(), post.ID))
	return screen
}

func TestDetailScreen_ApplyMutationResult(t *testing.T) {
	screen := loadedDetailScreen(t, testPost(5, "hello", 2, baseTime),
		testComment(1, 5, "first", baseTime.Add(time.Minute)))

	// other posts are ignored
	require.NoError(t, screen.ApplyMutationResult(Mutation{Kind: MutationPostUpvoted, PostID: 6, Upvotes: 50}))
	post, _ := screen.Post()
	assert.Equal(t, 2, post.Upvotes)

	require.NoError(t, screen.ApplyMutationResult(Mutation{Kind: MutationPostUpvoted, PostID: 5, Upvotes: 3}))
	post, _ = screen.Post()
	assert.Equal(t, 3, post.Upvotes)

	added := testComment(2, 5, "second", baseTime.Add(time.Hour))
	require.NoError(t, screen.ApplyMutationResult(Mutation{Kind: MutationCommentAdded, PostID: 5, Comment: added}))
	thread := screen.Comments()
	require.Len(t, thread, 2)
	assert.Equal(t, "second", thread[1].Content)

	edited := testPost(5, "hello again", 3, baseTime)
	require.NoError(t, screen.ApplyMutationResult(Mutation{Kind: MutationPostUpdated, PostID: 5, Post: edited}))
	post, _ = screen.Post()
	assert.Equal(t, "hello again", post.Title)

	require.NoError(t, screen.ApplyMutationResult(Mutation{Kind: MutationPostDeleted, PostID: 5}))
	assert.Equal(t, DetailDeleted, screen.State())
	assert.Empty(t, screen.Comments())
}

func TestDetailScreen_Closed(t *testing.T) {
	screen := loadedDetailScreen(t, testPost(5, "hello", 2, baseTime))
	screen.Close()

	assert.ErrorIs(t, screen.LoadPostDetail(context.Background(), 5), ErrScreenClosed)
	assert.ErrorIs(t, screen.ApplyMutationResult(Mutation{Kind: MutationPostUpvoted, PostID: 5, Upvotes: 9}), ErrScreenClosed)
	_, ok := screen.CachedPost(5)
	assert.False(t, ok)
}

func TestDetailScreen_CloseDuringLoadDropsResult(t *testing.T) {
	postRepo := new(mockPostRepository)
	commentRepo := new(mockCommentRepository)
	screen := NewDetailScreen(postRepo, commentRepo, discardLogger())

	postRepo.On("GetByID", mock.Anything, int64(5)).
		Run(func(mock.Arguments) { screen.Close() }).
		Return(testPost(5, "hello", 0, baseTime), nil)
	commentRepo.On("ListByPost", mock.Anything, int64(5)).Return([]*comments.Comment{}, nil)

	err := screen.LoadPostDetail(context.Background(), 5)

	assert.ErrorIs(t, err, ErrScreenClosed)
	assert.Equal(t, DetailIdle, screen.State())
}
