package forum

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"Forumul/internal/core/posts"
	"Forumul/internal/core/timeutil"
)

// SortMode selects the ordering of the presentation list
type SortMode string

const (
	// SortNewest orders by creation time, newest first
	SortNewest SortMode = "newest"
	// SortPopular orders by upvotes, highest first, keeping prior order on ties
	SortPopular SortMode = "popular"
)

// previewRunes is how much post content the list shows before truncating
const previewRunes = 150

// ParseSortMode parses a sort query value. Empty input selects SortNewest.
func ParseSortMode(raw string) (SortMode, error) {
	switch SortMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", SortNewest:
		return SortNewest, nil
	case SortPopular:
		return SortPopular, nil
	default:
		return "", NewValidationError("sort", fmt.Sprintf("unknown sort mode %q (allowed: newest, popular)", raw))
	}
}

// DerivePresentation computes the presentation list from the raw collection, a search term and a sort mode.
// It is pure: raw is never modified and the result holds copies.
//  1. Copy the raw collection
//  2. Keep posts whose lower-cased title contains the lower-cased term (empty term keeps all)
//  3. Stable sort by the selected mode
func DerivePresentation(raw []*posts.Post, term string, mode SortMode) []posts.Post {
	needle := strings.ToLower(term)

	out := make([]posts.Post, 0, len(raw))
	for _, p := range raw {
		if p == nil {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Title), needle) {
			continue
		}
		out = append(out, *p.Clone())
	}

	switch mode {
	case SortPopular:
		slices.SortStableFunc(out, func(a, b posts.Post) int {
			return cmp.Compare(b.Upvotes, a.Upvotes)
		})
	default:
		slices.SortStableFunc(out, func(a, b posts.Post) int {
			return timeutil.NewestFirst(a.CreatedAt, b.CreatedAt)
		})
	}

	return out
}

// Presentation is the derived list a list screen shows
type Presentation struct {
	SearchTerm string
	Sort       SortMode
	Posts      []posts.Post
	Total      int // size of the raw collection before filtering
}

// EmptyMessage returns the message to show instead of an empty list, or "" when there are posts
func (p Presentation) EmptyMessage() string {
	if len(p.Posts) > 0 {
		return ""
	}
	if p.Total == 0 {
		return "No posts yet"
	}
	return fmt.Sprintf("No posts found for %q", p.SearchTerm)
}

// PostSummary is a list entry ready for display
type PostSummary struct {
	CreatedAt time.Time `json:"createdAt"`
	ImageURL  *string   `json:"imageUrl,omitempty"`
	Title     string    `json:"title"`
	Preview   string    `json:"preview,omitempty"`
	PostedAgo string    `json:"postedAgo"`
	ID        int64     `json:"id"`
	Upvotes   int       `json:"upvotes"`
}

// Summaries renders the presentation entries relative to now
func (p Presentation) Summaries(now time.Time) []PostSummary {
	out := make([]PostSummary, 0, len(p.Posts))
	for _, post := range p.Posts {
		out = append(out, PostSummary{
			CreatedAt: post.CreatedAt,
			ImageURL:  post.ImageURL,
			Title:     post.Title,
			Preview:   PreviewContent(post.Content),
			PostedAgo: timeutil.TimeAgo(now, post.CreatedAt),
			ID:        post.ID,
			Upvotes:   post.Upvotes,
		})
	}
	return out
}

// PreviewContent truncates post content for list display
func PreviewContent(content *string) string {
	if content == nil {
		return ""
	}
	runes := []rune(*content)
	if len(runes) <= previewRunes {
		return *content
	}
	return string(runes[:previewRunes]) + "..."
}
