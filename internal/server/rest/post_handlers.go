package rest

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/elizarovs/postkeeper/internal/server/repositories/posts"
)

type postRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Server) handleCreatePost(c fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return unauthorized(c)
	}

	var req postRequest
	if err := c.Bind().Body(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	post, err := s.posts.Create(c.Context(), user.ID, req.Title, req.Description)
	if err != nil {
		return respondError(c, err)
	}

	s.logger.Info(c.Context(), "post created", "post_id", post.ID, "user_id", user.ID)
	return respond(c, fiber.StatusCreated, "Post created successfully.", post)
}

func (s *Server) handleListPosts(c fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return unauthorized(c)
	}

	list, err := s.posts.ListByAuthor(c.Context(), user.ID)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, fiber.StatusOK, "", list)
}

type updatePostRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (s *Server) handleUpdatePost(c fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return unauthorized(c)
	}

	id := c.Params("id")

	var req updatePostRequest
	if err := c.Bind().Body(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	post, err := s.posts.Update(c.Context(), id, user.ID, posts.UpdateParams{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, fiber.StatusOK, fmt.Sprintf("Successfully updated post ID: %s", id), post)
}

func (s *Server) handleDeletePost(c fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return unauthorized(c)
	}

	id := c.Params("id")

	deleted, err := s.posts.Delete(c.Context(), id, user.ID)
	if err != nil {
		return respondError(c, err)
	}
	if !deleted {
		return respond(c, fiber.StatusNotFound, fmt.Sprintf("There is no post of ID: %s", id), nil)
	}

	s.logger.Info(c.Context(), "post deleted", "post_id", id, "user_id", user.ID)
	return respond(c, fiber.StatusOK, fmt.Sprintf("Post %s deleted successfully", id), nil)
}

type attachmentUploadRequest struct {
	ContentType string `json:"contentType"`
}

func (s *Server) handleRequestAttachmentUpload(c fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return unauthorized(c)
	}

	id := c.Params("id")

	var req attachmentUploadRequest
	if err := c.Bind().Body(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "invalid request body", nil)
	}

	attachment, url, err := s.posts.RequestAttachmentUpload(c.Context(), id, user.ID, req.ContentType)
	if err != nil {
		return respondError(c, err)
	}

	s.logger.Info(c.Context(), "attachment upload requested", "post_id", id, "user_id", user.ID)
	return respond(c, fiber.StatusCreated, "", fiber.Map{
		"attachment": attachment,
		"uploadUrl":  url,
	})
}

func (s *Server) handleCompleteAttachmentUpload(c fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return unauthorized(c)
	}

	id := c.Params("id")

	if err := s.posts.CompleteAttachmentUpload(c.Context(), id, user.ID); err != nil {
		return respondError(c, err)
	}

	return respond(c, fiber.StatusOK, "Attachment uploaded successfully.", nil)
}

func (s *Server) handleAttachmentDownloadURL(c fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return unauthorized(c)
	}

	id := c.Params("id")

	url, err := s.posts.AttachmentDownloadURL(c.Context(), id, user.ID)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, fiber.StatusOK, "", fiber.Map{"downloadUrl": url})
}
