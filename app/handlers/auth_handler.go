// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"
	"time"

	"deskquote/app/dto"
	"deskquote/app/services"
	"deskquote/utils"

	"github.com/gofiber/fiber/v3"
)

// AuthHandlerInterface defines the contract for auth handlers
type AuthHandlerInterface interface {
	IssueToken(c fiber.Ctx) error
}

// AuthHandler issues the bearer tokens that identify negotiators
type AuthHandler struct {
	base
	tokenService services.TokenService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(tokenService services.TokenService) *AuthHandler {
	return &AuthHandler{
		base:         newBase(),
		tokenService: tokenService,
	}
}

// IssueToken issues a signed negotiator token
// @Summary Issue token
// @Description Issue a bearer token identifying the negotiator for authored operations
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.IssueTokenRequest true "Negotiator identity"
// @Success 200 {object} dto.APIResponse{data=dto.IssueTokenResponse} "Token issued successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/auth/token [post]
func (h *AuthHandler) IssueToken(c fiber.Ctx) error {
	var req dto.IssueTokenRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if handled, err := h.validateRequest(c, &req); handled {
		return err
	}

	token, err := h.tokenService.GenerateToken(req.Author)
	if err != nil {
		log.Println("Token issuance failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Token issuance failed", "TOKEN_ISSUANCE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Token issued successfully", &dto.IssueTokenResponse{
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(utils.AccessTokenTTL).Format(time.RFC3339),
	})
}
