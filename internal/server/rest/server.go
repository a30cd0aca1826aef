// Package rest exposes the HTTP API: public registration and login, and a
// token-gated surface for profile, posts, and attachments.
package rest

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/elizarovs/postkeeper/internal/logging"
	"github.com/elizarovs/postkeeper/internal/server/models"
	"github.com/elizarovs/postkeeper/internal/server/repositories/posts"
	"github.com/elizarovs/postkeeper/internal/server/services"
)

// UserProvider is the slice of UserService the HTTP layer needs.
type UserProvider interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, params services.UpdateProfileParams) (*models.User, error)
}

// PostProvider is the slice of PostService the HTTP layer needs.
type PostProvider interface {
	Create(ctx context.Context, authorID, title, description string) (*models.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*models.Post, error)
	Update(ctx context.Context, id, authorID string, params posts.UpdateParams) (*models.Post, error)
	Delete(ctx context.Context, id, authorID string) (bool, error)
	RequestAttachmentUpload(ctx context.Context, postID, authorID, contentType string) (*models.Attachment, string, error)
	CompleteAttachmentUpload(ctx context.Context, postID, authorID string) error
	AttachmentDownloadURL(ctx context.Context, postID, authorID string) (string, error)
}

type Server struct {
	address   string
	logger    logging.Logger
	users     UserProvider
	posts     PostProvider
	jwtSecret []byte
	app       *fiber.App
}

func NewServer(address string, l logging.Logger, us UserProvider, ps PostProvider, secretKey string) (*Server, error) {
	s := &Server{
		address:   address,
		logger:    l.With("module", "rest_server"),
		users:     us,
		posts:     ps,
		jwtSecret: []byte(secretKey),
	}
	s.app = s.newApp()
	return s, nil
}

func (s *Server) newApp() *fiber.App {
	app := fiber.New()

	app.Get("/health", s.handleHealth)

	user := app.Group("/user")
	user.Post("/register", s.handleRegister)
	user.Post("/login", s.handleLogin)

	// everything below requires a live session token; the gate runs first
	user.Get("/", s.requireSession, s.handleProfile)
	user.Patch("/update", s.requireSession, s.handleUpdateProfile)
	user.Post("/post", s.requireSession, s.handleCreatePost)
	user.Get("/posts", s.requireSession, s.handleListPosts)
	user.Patch("/post/:id", s.requireSession, s.handleUpdatePost)
	user.Delete("/post/:id", s.requireSession, s.handleDeletePost)
	user.Post("/post/:id/attachment", s.requireSession, s.handleRequestAttachmentUpload)
	user.Post("/post/:id/attachment/complete", s.requireSession, s.handleCompleteAttachmentUpload)
	user.Get("/post/:id/attachment", s.requireSession, s.handleAttachmentDownloadURL)

	return app
}

func (s *Server) Run(ctx context.Context) error {

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := s.app.Shutdown(); err != nil {
			s.logger.Error(ctx, "error shutting down HTTP server", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.app.Listen(s.address, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
		return err
	}

	return nil
}
