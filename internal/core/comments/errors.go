package comments

import "errors"

var (
	// ErrPostNotFound indicates the comment references a post that doesn't exist
	ErrPostNotFound = errors.New("parent post not found")
)

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPostNotFound)
}
