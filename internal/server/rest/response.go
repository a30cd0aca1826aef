package rest

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/elizarovs/postkeeper/internal/common"
)

// envelope is the uniform response body: status text, numeric code, and an
// optional message and payload.
type envelope struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respond(c fiber.Ctx, code int, message string, data any) error {
	return c.Status(code).JSON(envelope{
		Status:  http.StatusText(code),
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// respondError maps a service error to its HTTP status. Internal failures are
// reported without detail.
func respondError(c fiber.Ctx, err error) error {
	code := mapErrorToStatus(err)
	message := err.Error()
	if code == fiber.StatusInternalServerError {
		message = "internal server error"
	}
	if code == fiber.StatusUnauthorized {
		message = "Unauthorized"
	}
	return respond(c, code, message, nil)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return fiber.StatusUnauthorized
	case errors.Is(err, common.ErrorNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, common.ErrorEmailInUse):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
