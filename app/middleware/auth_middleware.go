// Package middleware provides HTTP middleware for authentication and observability
package middleware

import (
	"errors"
	"strings"

	"deskquote/app/dto"
	"deskquote/app/services"

	"github.com/gofiber/fiber/v3"
)

// AuthMiddleware handles negotiator token authentication
type AuthMiddleware struct {
	tokenService services.TokenService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenService services.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenService: tokenService}
}

// Authenticate validates the bearer token and stores the negotiator
// identity in the request locals.
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		token := m.extractToken(c)
		if token == "" {
			return m.unauthorizedResponse(c, "Authentication required", "MISSING_TOKEN")
		}

		claims, err := m.tokenService.ValidateToken(token)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTokenExpired):
				return m.unauthorizedResponse(c, "Token has expired", "TOKEN_EXPIRED")
			default:
				return m.unauthorizedResponse(c, "Invalid token", "INVALID_TOKEN")
			}
		}

		c.Locals("author", claims.Author)
		c.Locals("token_id", claims.TokenID)
		return c.Next()
	}
}

func (m *AuthMiddleware) extractToken(c fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func (m *AuthMiddleware) unauthorizedResponse(c fiber.Ctx, message, code string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code: code,
		},
	})
}

// AuthorFromContext returns the authenticated negotiator identity, with a
// fallback for unauthenticated routes.
func AuthorFromContext(c fiber.Ctx) string {
	if author, ok := c.Locals("author").(string); ok && author != "" {
		return author
	}
	return "anonymous"
}
