package server

import (
	"devlink/internal/models"
	"devlink/internal/service"
	"devlink/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs := validation.PostText(req.Text); len(errs) > 0 {
		return models.RespondWithFieldErrors(c, errs)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	post, err := s.postService.Create(ctx, service.CreatePostInput{
		UserID: userID,
		Text:   req.Text,
		Name:   user.Fullname,
		Avatar: user.Avatar,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	posts, err := s.postService.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.Get(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
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

	if errs := validation.PostText(req.Text); len(errs) > 0 {
		return models.RespondWithFieldErrors(c, errs)
	}

	post, err := s.postService.Update(ctx, service.UpdatePostInput{
		UserID: userID,
		PostID: postID,
		Text:   req.Text,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.Delete(ctx, userID, postID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"delete": "success"})
}

// ToggleLike handles POST /api/posts/like/:id. Liking a post the caller has
// already liked removes the like.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.ToggleLike(ctx, userID, postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}
