package posts

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Post represents a top-level discussion item as stored in the posts table
type Post struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Content   *string   `json:"content,omitempty" db:"content"`
	ImageURL  *string   `json:"imageUrl,omitempty" db:"image_url"`
	Title     string    `json:"title" db:"title"`
	ID        int64     `json:"id" db:"id"`
	Upvotes   int       `json:"upvotes" db:"upvotes"`
}

// Clone returns a deep copy so cached posts never share optional fields with callers
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Content != nil {
		c := *p.Content
		cp.Content = &c
	}
	if p.ImageURL != nil {
		u := *p.ImageURL
		cp.ImageURL = &u
	}
	return &cp
}

// NewPost is the normalized field set written on insert.
// The store assigns ID and CreatedAt; Upvotes always starts at zero.
type NewPost struct {
	Content  *string
	ImageURL *string
	Title    string
}

// UpdateFields is the partial field set overwritten by an edit.
// Upvotes, ID and CreatedAt are never part of an update.
type UpdateFields struct {
	Content  *string
	ImageURL *string
	Title    string
}

// NormalizeTitle trims the title and rejects it when nothing is left
func NormalizeTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", ErrTitleRequired
	}
	return trimmed, nil
}

// NormalizeOptional trims optional text. Blank input becomes nil, never an empty string.
func NormalizeOptional(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ParseID parses a route identifier into a post ID
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}
