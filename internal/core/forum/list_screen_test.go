package forum

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"Forumul/internal/core/posts"
)

func loadedListScreen(t *testing.T, list ...*posts.Post) (*ListScreen, *mockPostRepository) {
	t.Helper()
	repo := new(mockPostRepository)
	repo.On("List", mock.Anything).Return(list, nil).Once()

	screen := NewListScreen(repo, discardLogger())
	require.NoError(t, screen.LoadPosts(context.Background()))
	return screen, repo
}

func TestListScreen_LoadPosts(t *testing.T) {
	screen, repo := loadedListScreen(t,
		testPost(2, "B", 5, baseTime.Add(time.Hour)),
		testPost(1, "A", 3, baseTime),
	)

	pres := screen.Presentation()
	assert.True(t, screen.Loaded())
	assert.Equal(t, 2, pres.Total)
	assert.Equal(t, []string{"B", "A"}, titles(pres.Posts))
	repo.AssertExpectations(t)
}

func TestListScreen_LoadPosts_FailureKeepsCache(t *testing.T) {
	screen, repo := loadedListScreen(t, testPost(1, "A", 3, baseTime))
	repo.On("List", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	err := screen.LoadPosts(context.Background())

	require.Error(t, err)
	assert.True(t, IsStoreReadError(err))
	assert.Equal(t, []string{"A"}, titles(screen.Presentation().Posts))
}

func TestListScreen_SearchAndSortWithoutStore(t *testing.T) {
	screen, repo := loadedListScreen(t,
		testPost(3, "cats and dogs", 1, baseTime.Add(2*time.Hour)),
		testPost(2, "dogs", 9, baseTime.Add(time.Hour)),
		testPost(1, "cats", 4, baseTime),
	)

	screen.SetSearchTerm("CAT")
	assert.Equal(t, []string{"cats and dogs", "cats"}, titles(screen.Presentation().Posts))

	screen.SetSortMode(SortPopular)
	assert.Equal(t, []string{"cats", "cats and dogs"}, titles(screen.Presentation().Posts))

	screen.SetSearchTerm("bird")
	pres := screen.Presentation()
	assert.Empty(t, pres.Posts)
	assert.Equal(t, `No posts found for "bird"`, pres.EmptyMessage())

	// only the initial load touched the store
	repo.AssertNumberOfCalls(t, "List", 1)
}

func TestListScreen_ApplyMutationResult(t *testing.T) {
	screen, _ := loadedListScreen(t,
		testPost(2, "B", 5, baseTime.Add(time.Hour)),
		testPost(1, "A", 3, baseTime),
	)

	created := testPost(3, "C", 0, baseTime.Add(2*time.Hour))
	require.NoError(t, screen.ApplyMutationResult(Mutation{Kind: MutationPostCreated, PostID: 3, Post: created}))
	assert.Equal(t, []string{"C", "B", "A"}, titles(screen.Presentation().Posts))

	updated := testPost(1, "A edited", 3, baseTime)
	require.NoError(t, screen.ApplyMutationResult(Mutation{Kind: MutationPostUpdated, PostID: 1, Post: updated}))
	assert.Equal(t, []string{"C", "B", "A edited"}, titles(screen.Presentation().Posts))

	require.NoError(t, screen.ApplyMutationResult(Mutation{Kind: MutationPostUpvoted, PostID: 1, Upvotes: 10}))
	cached, ok := screen.CachedPost(1)
	require.True(t, ok)
	assert.Equal(t, 10, cached.Upvotes)

	screen.SetSortMode(SortPopular)
	assert.Equal(t, []string{"A edited", "B", "C"}, titles(screen.Presentation().Posts))

	require.NoError(t, screen.ApplyMutationResult(Mutation{Kind: MutationPostDeleted, PostID: 2}))
	assert.Equal(t, []string{"A edited", "C"}, titles(screen.Presentation().Posts))
	_, ok = screen.CachedPost(2)
	assert.False(t, ok)

	require.NoError(t, screen.ApplyMutationResult(Mutation{Kind: MutationCommentAdded, PostID: 1}))
	assert.Equal(t, 2, screen.Presentation().Total)
}

func TestListScreen_CachedPostIsACopy(t *testing.T) {
	screen, _ := loadedListScreen(t, testPost(1, "A", 3, baseTime))

	cached, ok := screen.CachedPost(1)
	require.True(t, ok)
	cached.Upvotes = 99

	again, _ := screen.CachedPost(1)
	assert.Equal(t, 3, again.Upvotes)
}

func TestListScreen_IgnoresMutationBeforeLoad(t *testing.T) {
	screen := NewListScreen(new(mockPostRepository), discardLogger())

	err := screen.ApplyMutationResult(Mutation{Kind: MutationPostCreated, PostID: 1, Post: testPost(1, "A", 0, baseTime)})

	require.NoError(t, err)
	assert.False(t, screen.Loaded())
	assert.Equal(t, 0, screen.Presentation().Total)
}

func TestListScreen_Closed(t *testing.T) {
	screen, repo := loadedListScreen(t, testPost(1, "A", 3, baseTime))
	screen.Close()

	assert.ErrorIs(t, screen.LoadPosts(context.Background()), ErrScreenClosed)
	assert.ErrorIs(t, screen.ApplyMutationResult(Mutation{Kind: MutationPostDeleted, PostID: 1}), ErrScreenClosed)
	repo.AssertNumberOfCalls(t, "List", 1)
}

func TestListScreen_CloseDuringLoadDropsResult(t *testing.T) {
	repo := new(mockPostRepository)
	screen := NewListScreen(repo, discardLogger())
	repo.On("List", mock.Anything).
		Run(func(mock.Arguments) { screen.Close() }).
		Return([]*posts.Post{testPost(1, "A", 0, baseTime)}, nil).Once()

	err := screen.LoadPosts(context.Background())

	assert.ErrorIs(t, err, ErrScreenClosed)
	assert.False(t, screen.Loaded())
}
