// Package common defines shared constants and sentinel errors used across
// the layers of postkeeper. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors. Wrapped with a field-specific message, matched
	// at the HTTP boundary via errors.Is.
	ErrorValidation = errors.New("validation error")

	// ErrorEmailInUse signals a registration attempt for an existing account.
	ErrorEmailInUse = errors.New("email in use")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
