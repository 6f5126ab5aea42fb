package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Forumul/internal/core/comments"
)

type postgresCommentRepo struct {
	db *sql.DB
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *sql.DB) comments.Repository {
	return &postgresCommentRepo{db: db}
}

func scanComment(row rowScanner) (*comments.Comment, error) {
	var c comments.Comment
	if err := row.Scan(&c.ID, &c.PostID, &c.Content, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByPost returns the comments of a post, oldest first
func (r *postgresCommentRepo) ListByPost(ctx context.Context, postID int64) ([]*comments.Comment, error) {
	query := `
		SELECT id, post_id, content, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments for post %d: %w", postID, err)
	}
	defer func() { _ = rows.Close() }()

	result := []*comments.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return result, nil
}

// Create inserts a comment. A missing parent post surfaces as comments.ErrPostNotFound.
func (r *postgresCommentRepo) Create(ctx context.Context, postID int64, content string) (*comments.Comment, error) {
	query := `
		INSERT INTO comments (post_id, content)
		VALUES ($1, $2)
		RETURNING id, post_id, content, created_at
	`

	c, err := scanComment(r.db.QueryRowContext(ctx, query, postID, content))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, comments.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}
	return c, nil
}

// DeleteByPost removes every comment of a post. Deleting zero rows is not an error.
func (r *postgresCommentRepo) DeleteByPost(ctx context.Context, postID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("failed to delete comments for post %d: %w", postID, err)
	}
	return nil
}
