package rest

import (
	"github.com/gofiber/fiber/v3"

	"github.com/elizarovs/postkeeper/internal/server/auth"
	"github.com/elizarovs/postkeeper/internal/server/models"
)

const userLocalsKey = "user"

// requireSession is the request gate. It accepts a request only when the
// bearer token parses, the account exists, and the token matches the one
// stored on the account row. A token invalidated by a later login fails the
// comparison even though its signature is still valid.
func (s *Server) requireSession(c fiber.Ctx) error {
	token := extractToken(c)
	if token == "" {
		return unauthorized(c)
	}

	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return unauthorized(c)
	}

	user, err := s.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		return unauthorized(c)
	}

	if user.Token == "" || user.Token != token {
		return unauthorized(c)
	}

	c.Locals(userLocalsKey, user)

	return c.Next()
}

// extractToken pulls the bearer token from the Authorization header.
func extractToken(c fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return ""
}

// currentUser returns the account stashed by requireSession, or nil.
func currentUser(c fiber.Ctx) *models.User {
	u, _ := c.Locals(userLocalsKey).(*models.User)
	return u
}

func unauthorized(c fiber.Ctx) error {
	return respond(c, fiber.StatusUnauthorized, "Unauthorized", nil)
}
