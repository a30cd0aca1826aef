package posts

import (
	"context"

	"github.com/elizarovs/postkeeper/internal/server/models"
)

// UpdateParams lists the mutable post columns. Only non-nil fields are written.
type UpdateParams struct {
	Title       *string
	Description *string
}

type Repository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	GetByAuthor(ctx context.Context, authorID string) ([]*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Update(ctx context.Context, id, authorID string, params UpdateParams) (*models.Post, error)
	Delete(ctx context.Context, id, authorID string) (bool, error)
}
