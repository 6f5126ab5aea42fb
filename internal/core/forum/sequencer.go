package forum

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"Forumul/internal/core/comments"
	"Forumul/internal/core/media"
	"Forumul/internal/core/posts"
)

// ImageResolver resolves the image part of a post form to a single URL
type ImageResolver interface {
	ResolveImage(ctx context.Context, in media.Input) (*string, error)
}

// PostInput is the raw post form as submitted
type PostInput struct {
	Image   media.Input
	Title   string
	Content string
}

// preparedPost is a validated post form whose image is already resolved.
// Only prepare produces one, so every write below is forced to happen after media resolution.
type preparedPost struct {
	content *string
	image   *string
	title   string
}

// Sequencer orchestrates every multi-step write and patches screens on success.
// Each operation either completes and patches the given screens, or returns an error
// and leaves every cache untouched.
type Sequencer struct {
	posts    posts.Repository
	comments comments.Repository
	images   ImageResolver
	logger   *slog.Logger
}

// NewSequencer creates a new mutation sequencer
func NewSequencer(postRepo posts.Repository, commentRepo comments.Repository, images ImageResolver, logger *slog.Logger) *Sequencer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sequencer{
		posts:    postRepo,
		comments: commentRepo,
		images:   images,
		logger:   logger,
	}
}

// CreatePost validates the form, resolves its image, then inserts the post with zero upvotes.
// Flow: validate title -> resolve media (abort without a write on failure) -> insert -> patch screens
func (s *Sequencer) CreatePost(ctx context.Context, in PostInput, screens ...Screen) (*posts.Post, error) {
	prepared, err := s.prepare(ctx, in)
	if err != nil {
		return nil, err
	}

	created, err := s.posts.Create(ctx, posts.NewPost{
		Title:    prepared.title,
		Content:  prepared.content,
		ImageURL: prepared.image,
	})
	if err != nil {
		s.logger.Error("failed to create post", "error", err)
		return nil, &StoreWriteError{Op: "create post", Err: err}
	}

	s.logger.Info("post created", "post_id", created.ID, "has_image", created.ImageURL != nil)
	s.publish(Mutation{Kind: MutationPostCreated, PostID: created.ID, Post: created}, screens)
	return created.Clone(), nil
}

// UpdatePost overwrites title, content and image of a post.
// Same validation and resolve-before-write ordering as CreatePost; upvotes are untouched.
func (s *Sequencer) UpdatePost(ctx context.Context, id int64, in PostInput, screens ...Screen) (*posts.Post, error) {
	prepared, err := s.prepare(ctx, in)
	if err != nil {
		return nil, err
	}

	updated, err := s.posts.Update(ctx, id, posts.UpdateFields{
		Title:    prepared.title,
		Content:  prepared.content,
		ImageURL: prepared.image,
	})
	if err != nil {
		if posts.IsNotFound(err) {
			return nil, NewNotFoundError("post", id)
		}
		s.logger.Error("failed to update post", "post_id", id, "error", err)
		return nil, &StoreWriteError{Op: "update post", Err: err}
	}

	s.logger.Info("post updated", "post_id", id)
	s.publish(Mutation{Kind: MutationPostUpdated, PostID: id, Post: updated}, screens)
	return updated.Clone(), nil
}

// Upvote writes the cached upvote count plus one and patches the screens with it.
// The count comes from cache, not from a fresh read, so two clients upvoting at once can race;
// each click still lands as +1 on the count that client saw.
func (s *Sequencer) Upvote(ctx context.Context, cache PostCache, id int64, screens ...Screen) (int, error) {
	cached, ok := cache.CachedPost(id)
	if !ok {
		return 0, NewNotFoundError("post", id)
	}

	next := cached.Upvotes + 1
	if err := s.posts.SetUpvotes(ctx, id, next); err != nil {
		if posts.IsNotFound(err) {
			return 0, NewNotFoundError("post", id)
		}
		s.logger.Error("failed to upvote post", "post_id", id, "error", err)
		return 0, &StoreWriteError{Op: "upvote post", Err: err}
	}

	s.logger.Info("post upvoted", "post_id", id, "upvotes", next)
	s.publish(Mutation{Kind: MutationPostUpvoted, PostID: id, Upvotes: next}, append([]Screen{cache}, screens...))
	return next, nil
}

// AddComment trims and stores a comment, then appends it to the screens' comment sequences.
// Blank content is a silent no-op: nil comment, nil error, no write.
func (s *Sequencer) AddComment(ctx context.Context, postID int64, content string, screens ...Screen) (*comments.Comment, error) {
	text, ok := comments.NormalizeContent(content)
	if !ok {
		s.logger.Debug("discarding blank comment", "post_id", postID)
		return nil, nil
	}

	created, err := s.comments.Create(ctx, postID, text)
	if err != nil {
		if comments.IsNotFound(err) {
			return nil, NewNotFoundError("post", postID)
		}
		s.logger.Error("failed to add comment", "post_id", postID, "error", err)
		return nil, &StoreWriteError{Op: "add comment", Err: err}
	}

	s.logger.Info("comment added", "post_id", postID, "comment_id", created.ID)
	s.publish(Mutation{Kind: MutationCommentAdded, PostID: postID, Comment: created}, screens)

	cp := *created
	return &cp, nil
}

// DeletePost removes a post and its comments as one operation.
// Comments go first; if that fails the post delete is never attempted and CascadeDeleteError is returned.
func (s *Sequencer) DeletePost(ctx context.Context, id int64, screens ...Screen) error {
	if err := s.comments.DeleteByPost(ctx, id); err != nil {
		s.logger.Error("comment cascade failed, post kept", "post_id", id, "error", err)
		return &CascadeDeleteError{PostID: id, Err: err}
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		if posts.IsNotFound(err) {
			return NewNotFoundError("post", id)
		}
		s.logger.Error("failed to delete post", "post_id", id, "error", err)
		return &StoreWriteError{Op: "delete post", Err: err}
	}

	s.logger.Info("post deleted", "post_id", id)
	s.publish(Mutation{Kind: MutationPostDeleted, PostID: id}, screens)
	return nil
}

// prepare is the first phase of every post write: validate, normalize, resolve media
func (s *Sequencer) prepare(ctx context.Context, in PostInput) (preparedPost, error) {
	title, err := posts.NormalizeTitle(in.Title)
	if err != nil {
		return preparedPost{}, NewValidationError("title", "title required")
	}

	var image *string
	if in.Image.HasFile() && s.images == nil {
		return preparedPost{}, &MediaUploadError{Err: fmt.Errorf("%w: image resolver", media.ErrNilDependency)}
	}
	if s.images != nil {
		image, err = s.images.ResolveImage(ctx, in.Image)
		if err != nil {
			if media.IsInputError(err) {
				return preparedPost{}, NewValidationError("image", err.Error())
			}
			return preparedPost{}, &MediaUploadError{Err: err}
		}
	} else {
		image = posts.NormalizeOptional(in.Image.URL)
	}

	return preparedPost{
		title:   title,
		content: posts.NormalizeOptional(in.Content),
		image:   image,
	}, nil
}

// publish patches every live screen. A torn-down screen is skipped; the write already succeeded.
func (s *Sequencer) publish(m Mutation, screens []Screen) {
	for _, screen := range screens {
		if screen == nil {
			continue
		}
		if err := screen.ApplyMutationResult(m); err != nil {
			if errors.Is(err, ErrScreenClosed) {
				s.logger.Debug("dropping mutation result for closed screen", "kind", m.Kind.String(), "post_id", m.PostID)
				continue
			}
			s.logger.Warn("failed to apply mutation result", "kind", m.Kind.String(), "post_id", m.PostID, "error", err)
		}
	}
}
