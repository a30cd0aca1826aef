// Package services contains server-side business logic. This file implements
// UserService, which handles registration, credential verification, JWT
// issuance, and the single-session token stored on the account row.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/elizarovs/postkeeper/internal/common"
	"github.com/elizarovs/postkeeper/internal/dbx"
	"github.com/elizarovs/postkeeper/internal/server/auth"
	"github.com/elizarovs/postkeeper/internal/server/config"
	"github.com/elizarovs/postkeeper/internal/server/models"
	"github.com/elizarovs/postkeeper/internal/server/repositories/repomanager"
	"github.com/elizarovs/postkeeper/internal/server/repositories/users"
)

const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// UserService provides authentication-related operations:
//   - Register: create accounts
//   - Authenticate/Login: verify credentials and mint the session token
//   - UpdateProfile: partial profile updates, optionally re-hashing a password
//
// One token is live per account at a time: Login overwrites the stored token,
// which invalidates whatever was issued before.
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// UpdateProfileParams lists the account fields a client may change.
// Only non-nil fields are applied.
type UpdateProfileParams struct {
	FirstName *string
	LastName  *string
	Password  *string
}

// Register validates the input and creates a new account with no session
// token. A duplicate email yields common.ErrorEmailInUse; the unique index
// backs up the lookup-based check against racing registrations.
func (s *UserService) Register(ctx context.Context, email, password, firstName, lastName string) (*models.User, error) {
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", common.ErrorValidation)
	}
	if firstName == "" || lastName == "" {
		return nil, fmt.Errorf("%w: invalid first name or last name", common.ErrorValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters long", common.ErrorValidation, minPasswordLength)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Token:        "",
	}

	var created *models.User

	// check-then-insert runs in one transaction; the unique index on email
	// still backs it up against a racing registration
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if _, err := repo.GetByEmail(ctx, email); err == nil {
			return common.ErrorEmailInUse
		} else if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error checking existing account: %w", err)
		}

		u, err := repo.Create(ctx, user)
		if err != nil {
			return err
		}
		created = u
		return nil
	})

	if err != nil {
		if errors.Is(err, common.ErrorEmailInUse) {
			return nil, common.ErrorEmailInUse
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}
	return created, nil
}

// Authenticate verifies the credentials and returns the account on match.
// An unknown email and a wrong password are indistinguishable to the caller:
// both yield common.ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

// Login composes Authenticate, mints a fresh JWT, and persists it as the
// account's current token. Concurrent logins race last-write-wins: the loser's
// token is simply invalidated, which is the accepted single-session behavior.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, err := auth.GenerateToken(user.ID, user.FirstName, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	if err := s.repomanager.Users(s.db).SetToken(ctx, user.ID, token); err != nil {
		return "", fmt.Errorf("error storing session token: %w", err)
	}

	return token, nil
}

// GetByID resolves an account by id. Used by the request gate.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

// UpdateProfile applies a partial update to the account. A supplied password
// is validated and re-hashed; common.ErrorNotFound is returned if the account
// vanished between token issuance and this call.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, params UpdateProfileParams) (*models.User, error) {
	if params.FirstName == nil && params.LastName == nil && params.Password == nil {
		return nil, fmt.Errorf("%w: no fields to update", common.ErrorValidation)
	}

	update := users.UpdateParams{
		FirstName: params.FirstName,
		LastName:  params.LastName,
	}

	if params.Password != nil {
		if len(*params.Password) < minPasswordLength {
			return nil, fmt.Errorf("%w: password must be at least %d characters long", common.ErrorValidation, minPasswordLength)
		}
		hash, err := auth.HashPassword(*params.Password)
		if err != nil {
			return nil, common.ErrorInternal
		}
		update.PasswordHash = &hash
	}

	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error resolving account: %w", err)
	}

	u, err := repo.UpdatePartial(ctx, userID, update)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating account: %w", err)
	}
	return u, nil
}
