package posts

import "errors"

// Sentinel errors for post operations
var (
	// ErrNotFound is returned by repositories when no post has the requested ID
	ErrNotFound = errors.New("post not found")

	// ErrTitleRequired is returned when the title is empty after trimming
	ErrTitleRequired = errors.New("title required")

	// ErrInvalidID is returned when a post identifier cannot be parsed
	ErrInvalidID = errors.New("invalid post id")
)

// IsNotFound checks if error is a post not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
