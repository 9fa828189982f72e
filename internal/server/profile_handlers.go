package server

import (
	"time"

	"devlink/internal/models"
	"devlink/internal/service"
	"devlink/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// GetMyProfile handles GET /api/profile
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	profile, err := s.profileService.GetOwn(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// UpsertProfile handles POST /api/profile. It creates the caller's profile on
// first submit and patches it afterwards. The handle is always derived from
// the caller's username, never from the body.
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	username := s.usernameFromClaims(c)

	var req validation.ProfileInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Handle = username
	if errs := validation.Profile(req); len(errs) > 0 {
		return models.RespondWithFieldErrors(c, errs)
	}

	profile, err := s.profileService.Upsert(ctx, service.UpsertProfileInput{
		UserID:    userID,
		Username:  username,
		Company:   req.Company,
		Location:  req.Location,
		Status:    req.Status,
		Skills:    req.Skills,
		Bio:       req.Bio,
		Twitter:   req.Twitter,
		Linkedin:  req.Linkedin,
		Github:    req.Github,
		Portfolio: req.Portfolio,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// GetAllProfiles handles GET /api/profile/all
func (s *Server) GetAllProfiles(c *fiber.Ctx) error {
	profiles, err := s.profileService.List(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profiles)
}

// GetProfileByHandleOrID handles GET /api/profile/user/:handleOrId
func (s *Server) GetProfileByHandleOrID(c *fiber.Ctx) error {
	handleOrID := c.Params("handleOrId")

	profile, err := s.profileService.GetByHandleOrID(c.Context(), handleOrID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// AddExperience handles POST /api/profile/experience
func (s *Server) AddExperience(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req validation.ExperienceInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs := validation.Experience(req); len(errs) > 0 {
		return models.RespondWithFieldErrors(c, errs)
	}

	profile, err := s.profileService.AddExperience(ctx, service.AddExperienceInput{
		UserID: userID,
		Entry:  req,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// experiencePatch is the partial-update body for an experience entry. Absent
// fields leave the stored value untouched.
type experiencePatch struct {
	Title       *string    `json:"title"`
	Company     *string    `json:"company"`
	Location    *string    `json:"location"`
	From        *time.Time `json:"from"`
	To          *time.Time `json:"to"`
	Current     *bool      `json:"current"`
	Description *string    `json:"description"`
}

// UpdateExperience handles PUT /api/profile/experience/:entryId
func (s *Server) UpdateExperience(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	entryID := c.Params("entryId")

	var req experiencePatch
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.UpdateExperience(ctx, service.UpdateExperienceInput{
		UserID:      userID,
		EntryID:     entryID,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// RemoveExperience handles DELETE /api/profile/experience/:entryId
func (s *Server) RemoveExperience(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	entryID := c.Params("entryId")

	profile, err := s.profileService.RemoveExperience(ctx, userID, entryID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// AddEducation handles POST /api/profile/education
func (s *Server) AddEducation(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req validation.EducationInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs := validation.Education(req); len(errs) > 0 {
		return models.RespondWithFieldErrors(c, errs)
	}

	profile, err := s.profileService.AddEducation(ctx, service.AddEducationInput{
		UserID: userID,
		Entry:  req,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// educationPatch is the partial-update body for an education entry.
type educationPatch struct {
	School      *string    `json:"school"`
	Degree      *string    `json:"degree"`
	Field       *string    `json:"field"`
	Location    *string    `json:"location"`
	From        *time.Time `json:"from"`
	To          *time.Time `json:"to"`
	Current     *bool      `json:"current"`
	Description *string    `json:"description"`
}

// UpdateEducation handles PUT /api/profile/education/:entryId
func (s *Server) UpdateEducation(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	entryID := c.Params("entryId")

	var req educationPatch
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.UpdateEducation(ctx, service.UpdateEducationInput{
		UserID:      userID,
		EntryID:     entryID,
		School:      req.School,
		Degree:      req.Degree,
		Field:       req.Field,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// RemoveEducation handles DELETE /api/profile/education/:entryId
func (s *Server) RemoveEducation(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	entryID := c.Params("entryId")

	profile, err := s.profileService.RemoveEducation(ctx, userID, entryID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// usernameFromClaims reads the username the auth middleware stored with the
// verified token claims.
func (s *Server) usernameFromClaims(c *fiber.Ctx) string {
	claims, ok := c.Locals("claims").(jwt.MapClaims)
	if !ok {
		return ""
	}
	username, _ := claims["username"].(string)
	return username
}
