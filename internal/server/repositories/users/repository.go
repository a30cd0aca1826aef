package users

import (
	"context"

	"github.com/elizarovs/postkeeper/internal/server/models"
)

// UpdateParams lists the mutable account columns. Only non-nil fields are
// written, preserving the "only supplied fields change" contract.
type UpdateParams struct {
	FirstName    *string
	LastName     *string
	PasswordHash *string
}

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdatePartial(ctx context.Context, id string, params UpdateParams) (*models.User, error)
	SetToken(ctx context.Context, id string, token string) error
}
