package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"Forumul/internal/core/posts"
)

const postColumns = `id, title, content, image_url, upvotes, created_at`

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*posts.Post, error) {
	var (
		post     posts.Post
		content  sql.NullString
		imageURL sql.NullString
	)

	if err := row.Scan(&post.ID, &post.Title, &content, &imageURL, &post.Upvotes, &post.CreatedAt); err != nil {
		return nil, err
	}

	if content.Valid {
		post.Content = &content.String
	}
	if imageURL.Valid {
		post.ImageURL = &imageURL.String
	}
	return &post, nil
}

// List returns every post, newest first
func (r *postgresPostRepo) List(ctx context.Context) ([]*posts.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := []*posts.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return result, nil
}

// GetByID retrieves a post by its ID
func (r *postgresPostRepo) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, posts.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post %d: %w", id, err)
	}
	return post, nil
}

// Create inserts a post with zero upvotes; the database assigns id and created_at
func (r *postgresPostRepo) Create(ctx context.Context, in posts.NewPost) (*posts.Post, error) {
	query := `
		INSERT INTO posts (title, content, image_url)
		VALUES ($1, $2, $3)
		RETURNING ` + postColumns

	post, err := scanPost(r.db.QueryRowContext(ctx, query, in.Title, in.Content, in.ImageURL))
	if err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}
	return post, nil
}

// Update overwrites title, content and image_url
func (r *postgresPostRepo) Update(ctx context.Context, id int64, fields posts.UpdateFields) (*posts.Post, error) {
	query := `
		UPDATE posts
		SET title = $2, content = $3, image_url = $4
		WHERE id = $1
		RETURNING ` + postColumns

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id, fields.Title, fields.Content, fields.ImageURL))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, posts.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update post %d: %w", id, err)
	}
	return post, nil
}

// SetUpvotes writes an absolute upvote count
func (r *postgresPostRepo) SetUpvotes(ctx context.Context, id int64, upvotes int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE posts SET upvotes = $2 WHERE id = $1`, id, upvotes)
	if err != nil {
		return fmt.Errorf("failed to set upvotes on post %d: %w", id, err)
	}
	return expectOneRow(res)
}

// Delete removes a post. Its comments must already be gone.
func (r *postgresPostRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("post %d still has comments: %w", id, err)
		}
		return fmt.Errorf("failed to delete post %d: %w", id, err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if n == 0 {
		return posts.ErrNotFound
	}
	return nil
}
