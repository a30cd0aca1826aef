// Package posts provides the PostgreSQL-backed post store. Update and Delete
// are scoped to both the post id and the author id, so a wrong-author access
// is indistinguishable from a missing post.
package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/elizarovs/postkeeper/internal/common"
	"github.com/elizarovs/postkeeper/internal/dbx"
	"github.com/elizarovs/postkeeper/internal/server/models"
)

// PostgresRepository implements post storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new post row and fills in the db-assigned creation time.
func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	query :=
		`INSERT INTO posts (id, title, description, author_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		post.ID, post.Title, post.Description, post.AuthorID).Scan(&post.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

// GetByAuthor returns all posts authored by authorID, newest first.
func (r *PostgresRepository) GetByAuthor(ctx context.Context, authorID string) ([]*models.Post, error) {
	query :=
		`SELECT id, title, description, created_at, author_id FROM posts
		 WHERE author_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Post
	for rows.Next() {
		var item models.Post
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.CreatedAt, &item.AuthorID); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns the post for id or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query :=
		`SELECT id, title, description, created_at, author_id FROM posts
		 WHERE id = $1
		 `

	post := &models.Post{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&post.ID, &post.Title, &post.Description, &post.CreatedAt, &post.AuthorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return post, nil
}

// Update writes only the supplied columns of the author's post and returns
// the fresh row. A missing id or an author mismatch both yield
// common.ErrorNotFound, with no mutation.
func (r *PostgresRepository) Update(ctx context.Context, id, authorID string, params UpdateParams) (*models.Post, error) {
	sets := make([]string, 0, 2)
	args := make([]any, 0, 4)

	if params.Title != nil {
		args = append(args, *params.Title)
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if params.Description != nil {
		args = append(args, *params.Description)
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)))
	}

	if len(sets) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", common.ErrorValidation)
	}

	args = append(args, id, authorID)
	query := fmt.Sprintf(
		`UPDATE posts SET %s
		 WHERE id = $%d AND author_id = $%d
		 RETURNING id, title, description, created_at, author_id`,
		strings.Join(sets, ", "), len(args)-1, len(args))

	post := &models.Post{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&post.ID, &post.Title, &post.Description, &post.CreatedAt, &post.AuthorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return post, nil
}

// Delete removes the author's post by id and reports whether a row was
// actually deleted.
func (r *PostgresRepository) Delete(ctx context.Context, id, authorID string) (bool, error) {
	query :=
		`DELETE FROM posts
		 WHERE id = $1 AND author_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, authorID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}
