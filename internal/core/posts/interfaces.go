package posts

import "context"

// Repository defines the data access contract the forum core needs for posts.
// Implementations return ErrNotFound when the addressed post does not exist.
type Repository interface {
	// List returns every post ordered by creation time, newest first
	List(ctx context.Context) ([]*Post, error)

	// GetByID retrieves a single post
	GetByID(ctx context.Context, id int64) (*Post, error)

	// Create inserts a post and returns it with the store-assigned ID and CreatedAt
	Create(ctx context.Context, post NewPost) (*Post, error)

	// Update overwrites title, content and image of an existing post and returns the stored row
	Update(ctx context.Context, id int64, fields UpdateFields) (*Post, error)

	// SetUpvotes writes an absolute upvote count.
	// Callers compute the value from the count they last read; this is not an atomic increment.
	SetUpvotes(ctx context.Context, id int64, upvotes int) error

	// Delete removes a post by ID
	Delete(ctx context.Context, id int64) error
}
