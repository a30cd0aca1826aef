// Package users provides the PostgreSQL-backed credential store: account
// rows including the password hash and the single current session token.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/elizarovs/postkeeper/internal/common"
	"github.com/elizarovs/postkeeper/internal/dbx"
	"github.com/elizarovs/postkeeper/internal/server/models"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint hit.
const uniqueViolation = "23505"

// PostgresRepository implements account storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new account row. A duplicate email surfaces as
// common.ErrorEmailInUse via the unique index.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (id, email, password_hash, first_name, last_name, token)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Token).Scan(&user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorEmailInUse
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// GetByEmail returns the account for email or common.ErrorNotFound.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, first_name, last_name, token, created_at FROM users
		 WHERE email = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// GetByID returns the account for id or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, first_name, last_name, token, created_at FROM users
		 WHERE id = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// UpdatePartial updates only the supplied columns and returns the fresh row.
// Returns common.ErrorValidation when no field is set and common.ErrorNotFound
// when the account is gone.
func (r *PostgresRepository) UpdatePartial(ctx context.Context, id string, params UpdateParams) (*models.User, error) {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)

	if params.FirstName != nil {
		args = append(args, *params.FirstName)
		sets = append(sets, fmt.Sprintf("first_name = $%d", len(args)))
	}
	if params.LastName != nil {
		args = append(args, *params.LastName)
		sets = append(sets, fmt.Sprintf("last_name = $%d", len(args)))
	}
	if params.PasswordHash != nil {
		args = append(args, *params.PasswordHash)
		sets = append(sets, fmt.Sprintf("password_hash = $%d", len(args)))
	}

	if len(sets) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", common.ErrorValidation)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE users SET %s
		 WHERE id = $%d
		 RETURNING id, email, password_hash, first_name, last_name, token, created_at`,
		strings.Join(sets, ", "), len(args))

	return r.scanOne(r.db.QueryRowContext(ctx, query, args...))
}

// SetToken overwrites the account's current session token. Writing a new
// token invalidates whatever token was stored before (last write wins).
func (r *PostgresRepository) SetToken(ctx context.Context, id string, token string) error {
	query :=
		`UPDATE users SET token = $1
		 WHERE id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, token, id)
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

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.Token, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}
