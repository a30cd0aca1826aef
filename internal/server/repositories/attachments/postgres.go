// Package attachments provides PostgreSQL-backed storage for post attachment
// records: the S3 storage key plus the upload lifecycle state.
package attachments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/elizarovs/postkeeper/internal/common"
	"github.com/elizarovs/postkeeper/internal/dbx"
	"github.com/elizarovs/postkeeper/internal/server/models"
)

// PostgresRepository implements attachment storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateOrReplace upserts the attachment row for a post. Issuing a new upload
// slot for a post replaces the previous record, including its storage key.
func (r *PostgresRepository) CreateOrReplace(ctx context.Context, attachment *models.Attachment) error {
	query := `
		INSERT INTO attachments (post_id, author_id, storage_key, content_type, upload_status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (post_id)
		DO UPDATE SET
			storage_key = EXCLUDED.storage_key,
			content_type = EXCLUDED.content_type,
			upload_status = EXCLUDED.upload_status
	`
	res, err := r.db.ExecContext(ctx, query,
		attachment.PostID, attachment.AuthorID, attachment.StorageKey, attachment.ContentType, attachment.UploadStatus)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
	return nil
}

// GetByPostID returns the attachment row for postID or common.ErrorNotFound.
func (r *PostgresRepository) GetByPostID(ctx context.Context, postID string) (*models.Attachment, error) {
	query := `
		SELECT post_id, author_id, storage_key, content_type, upload_status, created_at
		FROM attachments
		WHERE post_id = $1
	`

	attachment := &models.Attachment{}
	err := r.db.QueryRowContext(ctx, query, postID).Scan(
		&attachment.PostID, &attachment.AuthorID, &attachment.StorageKey,
		&attachment.ContentType, &attachment.UploadStatus, &attachment.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return attachment, nil
}

// MarkUploaded flips the attachment for postID to completed.
// Exactly one row must be affected.
func (r *PostgresRepository) MarkUploaded(ctx context.Context, postID string) error {
	query := `UPDATE attachments SET upload_status = 'completed' WHERE post_id = $1`

	res, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
