// Package auth holds the credential primitives of the server: HS256 JWT
// issuance/verification and bcrypt password hashing. Neither consults any
// store; liveness against the stored token is the REST layer's job.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/elizarovs/postkeeper/internal/common"
)

// Claims carries the registered claims plus the account identity embedded
// in every issued token.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string `json:"id"`
	DisplayName string `json:"username"`
}

// GenerateToken signs a token for userID valid for validityDuration.
// displayName is informational only and never used for authorization.
func GenerateToken(userID, displayName string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID:      userID,
		DisplayName: displayName,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies signature and expiry and returns the embedded claims.
// Expiry maps to common.ErrTokenExpired; every other failure (bad signature,
// malformed token, wrong algorithm) maps to common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
