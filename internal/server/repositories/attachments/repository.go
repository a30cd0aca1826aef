package attachments

import (
	"context"

	"github.com/elizarovs/postkeeper/internal/server/models"
)

type Repository interface {
	CreateOrReplace(ctx context.Context, attachment *models.Attachment) error
	GetByPostID(ctx context.Context, postID string) (*models.Attachment, error)
	MarkUploaded(ctx context.Context, postID string) error
}
