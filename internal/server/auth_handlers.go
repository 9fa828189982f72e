package server

import (
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	"devlink/internal/middleware"
	"devlink/internal/models"
	"devlink/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = time.Hour

// gravatarURL derives the avatar URL from the account email. An empty email
// still yields a valid default-image URL.
func gravatarURL(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "http://www.gravatar.com/avatar/?d=mm"
	}
	return fmt.Sprintf("http://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", md5.Sum([]byte(email)))
}

// normalizeGender maps the submitted gender to its single-letter code.
func normalizeGender(gender string) string {
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "male":
		return models.GenderMale
	case "female":
		return models.GenderFemale
	default:
		return models.GenderUnspecified
	}
}

// generateToken signs a JWT carrying the user's id, username and avatar.
func (s *Server) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"avatar":   user.Avatar,
		"iss":      middleware.TokenIssuer,
		"aud":      middleware.TokenAudience,
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      now.Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWTSecret))
}

// Register handles POST /api/users/register
func (s *Server) Register(c *fiber.Ctx) error {
	ctx := c.Context()

	var req validation.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs := validation.Register(req); len(errs) > 0 {
		return models.RespondWithFieldErrors(c, errs)
	}

	// Report which identity field collides before attempting the insert.
	if existing, err := s.userRepo.GetByEmail(ctx, req.Email); err != nil {
		return respondServiceError(c, err)
	} else if existing != nil {
		return models.RespondWithFieldErrors(c, models.FieldErrors{"email": "Email already exists"})
	}
	if existing, err := s.userRepo.GetByUsername(ctx, req.Username); err != nil {
		return respondServiceError(c, err)
	} else if existing != nil {
		return models.RespondWithFieldErrors(c, models.FieldErrors{"username": "Username already exists"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return respondServiceError(c, models.NewInternalError(err))
	}

	user := &models.User{
		Username: req.Username,
		Fullname: req.Fullname,
		Email:    req.Email,
		Password: string(hash),
		Gender:   normalizeGender(req.Gender),
		Avatar:   gravatarURL(req.Email),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// Login handles POST /api/users/login
func (s *Server) Login(c *fiber.Ctx) error {
	ctx := c.Context()

	var req validation.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs := validation.Login(req); len(errs) > 0 {
		return models.RespondWithFieldErrors(c, errs)
	}

	// The same generic message covers an unknown identity and a bad
	// password so the endpoint does not leak which accounts exist.
	user, err := s.userRepo.GetByUsernameOrEmail(ctx, req.Username)
	if err != nil {
		return respondServiceError(c, err)
	}
	if user == nil {
		return models.RespondWithFieldErrors(c, models.FieldErrors{"login": "Incorrect username or password"})
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return models.RespondWithFieldErrors(c, models.FieldErrors{"login": "Incorrect username or password"})
	}

	token, err := s.generateToken(user)
	if err != nil {
		return respondServiceError(c, models.NewInternalError(err))
	}
	middleware.TokensIssued.Inc()

	return c.JSON(fiber.Map{
		"success": "true",
		"token":   "Bearer " + token,
	})
}

// CurrentUser handles GET /api/users/current
func (s *Server) CurrentUser(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user.Ref())
}
