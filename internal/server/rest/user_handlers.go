package rest

import (
	"github.com/gofiber/fiber/v3"

	"github.com/elizarovs/postkeeper/internal/buildinfo"
	"github.com/elizarovs/postkeeper/internal/server/services"
)

func (s *Server) handleHealth(c fiber.Ctx) error {
	s.logger.Info(c.Context(), "health check", "remote", c.IP())
	return c.JSON(fiber.Map{"message": buildinfo.Version()})
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (s *Server) handleRegister(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	user, err := s.users.Register(c.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		s.logger.Info(c.Context(), "registration rejected", "error", err)
		return respondError(c, err)
	}

	s.logger.Info(c.Context(), "account created", "user_id", user.ID)
	return respond(c, fiber.StatusCreated, "User created successfully.", user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	token, err := s.users.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	s.logger.Info(c.Context(), "login successful")
	return respond(c, fiber.StatusOK, "User logged in successfully.", fiber.Map{"token": token})
}

func (s *Server) handleProfile(c fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	return respond(c, fiber.StatusOK, "", user)
}

type updateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Password  *string `json:"password"`
}

func (s *Server) handleUpdateProfile(c fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return unauthorized(c)
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	updated, err := s.users.UpdateProfile(c.Context(), user.ID, services.UpdateProfileParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, fiber.StatusOK, "Profile updated successfully.", updated)
}
