package forum

import (
	"Forumul/internal/core/comments"
	"Forumul/internal/core/posts"
)

// MutationKind identifies which sequencer operation produced a result
type MutationKind int

const (
	MutationPostCreated MutationKind = iota + 1
	MutationPostUpdated
	MutationPostDeleted
	MutationPostUpvoted
	MutationCommentAdded
)

func (k MutationKind) String() string {
	switch k {
	case MutationPostCreated:
		return "post_created"
	case MutationPostUpdated:
		return "post_updated"
	case MutationPostDeleted:
		return "post_deleted"
	case MutationPostUpvoted:
		return "post_upvoted"
	case MutationCommentAdded:
		return "comment_added"
	default:
		return "unknown"
	}
}

// Mutation is a completed write that screens patch into their caches instead of refetching
type Mutation struct {
	Post    *posts.Post       // created or updated post
	Comment *comments.Comment // added comment
	Kind    MutationKind
	PostID  int64 // addressed post for every kind
	Upvotes int   // new count for MutationPostUpvoted
}

// Screen is a view-model that keeps a cache consistent with mutation results
type Screen interface {
	// ApplyMutationResult patches the cache and recomputes derived state.
	// Returns ErrScreenClosed when the screen was torn down.
	ApplyMutationResult(m Mutation) error
}

// PostCache is a screen that can answer with its last-known copy of a post
type PostCache interface {
	Screen
	CachedPost(id int64) (*posts.Post, bool)
}
