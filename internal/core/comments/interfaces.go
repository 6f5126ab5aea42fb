package comments

import "context"

// Repository defines the data access contract for comments scoped to a post
type Repository interface {
	// ListByPost returns the comments of a post ordered by creation time, oldest first
	ListByPost(ctx context.Context, postID int64) ([]*Comment, error)

	// Create inserts a comment and returns it with the store-assigned ID and CreatedAt.
	// Returns ErrPostNotFound when the post does not exist.
	Create(ctx context.Context, postID int64, content string) (*Comment, error)

	// DeleteByPost removes every comment of a post.
	// Succeeds when the post has no comments.
	DeleteByPost(ctx context.Context, postID int64) error
}
