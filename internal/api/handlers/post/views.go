package post

import (
	"time"

	"Forumul/internal/core/comments"
	"Forumul/internal/core/forum"
	"Forumul/internal/core/posts"
	"Forumul/internal/core/timeutil"
)

// ListResponse is the body of GET /api/posts
type ListResponse struct {
	Search       string              `json:"search"`
	Sort         forum.SortMode      `json:"sort"`
	EmptyMessage string              `json:"emptyMessage,omitempty"`
	Posts        []forum.PostSummary `json:"posts"`
	Total        int                 `json:"total"`
}

// PostView is a full post as returned by the detail and write endpoints
type PostView struct {
	CreatedAt time.Time `json:"createdAt"`
	Content   *string   `json:"content"`
	ImageURL  *string   `json:"imageUrl"`
	Title     string    `json:"title"`
	PostedAgo string    `json:"postedAgo"`
	ID        int64     `json:"id"`
	Upvotes   int       `json:"upvotes"`
}

// CommentView is a comment with its relative timestamp
type CommentView struct {
	CreatedAt time.Time `json:"createdAt"`
	Content   string    `json:"content"`
	PostedAgo string    `json:"postedAgo"`
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
}

// DetailResponse is the body of GET /api/posts/{id}
type DetailResponse struct {
	Post                PostView      `json:"post"`
	Comments            []CommentView `json:"comments"`
	CommentsUnavailable bool          `json:"commentsUnavailable"`
}

// UpvoteResponse is the body of POST /api/posts/{id}/upvote
type UpvoteResponse struct {
	Upvotes int `json:"upvotes"`
}

// NewPostView renders a post relative to now
func NewPostView(p *posts.Post, now time.Time) PostView {
	return PostView{
		CreatedAt: p.CreatedAt,
		Content:   p.Content,
		ImageURL:  p.ImageURL,
		Title:     p.Title,
		PostedAgo: timeutil.TimeAgo(now, p.CreatedAt),
		ID:        p.ID,
		Upvotes:   p.Upvotes,
	}
}

// NewCommentView renders a comment relative to now
func NewCommentView(c comments.Comment, now time.Time) CommentView {
	return CommentView{
		CreatedAt: c.CreatedAt,
		Content:   c.Content,
		PostedAgo: timeutil.TimeAgo(now, c.CreatedAt),
		ID:        c.ID,
		PostID:    c.PostID,
	}
}
