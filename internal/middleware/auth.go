// Package middleware provides authentication, logging, rate limiting and
// metrics middleware for the application.
package middleware

import (
	"context"
	"strings"

	"devlink/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Issuer and audience stamped into every token and checked on every request.
const (
	TokenIssuer   = "devlink-api"
	TokenAudience = "devlink-client"
)

// AuthRequired returns a middleware that enforces authentication for
// protected routes. On success the caller's id is stored in
// c.Locals("userID") and the token claims in c.Locals("claims").
func AuthRequired(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(cfg.JWTSecret), nil
		}, jwt.WithIssuer(TokenIssuer), jwt.WithAudience(TokenAudience))

		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token claims",
			})
		}

		// The id claim is the numeric user id. JSON numbers decode as
		// float64.
		idClaim, ok := claims["id"].(float64)
		if !ok || idClaim <= 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid user ID in token",
			})
		}

		c.Locals("userID", uint(idClaim))
		c.Locals("claims", claims)

		// Sync to UserContext so the context-aware logger picks it up in
		// deeper layers.
		ctx := context.WithValue(c.UserContext(), UserIDKey, uint(idClaim))
		c.SetUserContext(ctx)

		return c.Next()
	}
}
