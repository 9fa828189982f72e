package server

import (
	"devlink/internal/models"
	"devlink/internal/service"
	"devlink/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles POST /api/posts/comment/:id
func (s *Server) AddComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs := validation.CommentText(req.Text); len(errs) > 0 {
		return models.RespondWithFieldErrors(c, errs)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	post, err := s.postService.AddComment(ctx, service.AddCommentInput{
		UserID: userID,
		PostID: postID,
		Text:   req.Text,
		Name:   user.Fullname,
		Avatar: user.Avatar,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// UpdateComment handles PUT /api/posts/comment/:id/:commentId
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID := c.Params("commentId")

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs := validation.CommentText(req.Text); len(errs) > 0 {
		return models.RespondWithFieldErrors(c, errs)
	}

	post, err := s.postService.UpdateComment(ctx, service.UpdateCommentInput{
		UserID:    userID,
		PostID:    postID,
		CommentID: commentID,
		Text:      req.Text,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// DeleteComment handles DELETE /api/posts/comment/:id/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID := c.Params("commentId")

	post, err := s.postService.DeleteComment(ctx, userID, postID, commentID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}
