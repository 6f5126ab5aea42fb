package comments

import (
	"strings"
	"time"
)

// Comment represents a text reply attached to exactly one post.
// Comments are always read oldest first.
type Comment struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Content   string    `json:"content" db:"content"`
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
}

// NormalizeContent trims comment text.
// ok is false when nothing is left, in which case the submission must be discarded.
func NormalizeContent(content string) (trimmed string, ok bool) {
	trimmed = strings.TrimSpace(content)
	return trimmed, trimmed != ""
}
