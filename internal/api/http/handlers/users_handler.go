package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/carmarket-service/internal/api/dto"
	"github.com/spec-kit/carmarket-service/internal/service"
	apperrors "github.com/spec-kit/carmarket-service/pkg/util"
)

// UsersHandler manages registration, login and token refresh.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request payload")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewBadRequest("name, email and password are required")
	}

	user, tokens, err := h.auth.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AuthEnvelope{
		Message: "User registered successfully",
		User:    dto.NewUserResponse(user),
		Tokens:  tokenResponse(tokens),
	})
}

// Login POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request payload")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewBadRequest("email and password are required")
	}

	user, tokens, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.AuthEnvelope{
		Message: "Login successful",
		User:    dto.NewUserResponse(user),
		Tokens:  tokenResponse(tokens),
	})
}

// Refresh POST /auth/refresh.
func (h *UsersHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid request payload")
	}
	if req.RefreshToken == "" {
		return apperrors.NewBadRequest("refreshToken is required")
	}

	tokens, err := h.auth.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Token refreshed successfully",
		"tokens":  tokenResponse(tokens),
	})
}

func tokenResponse(tokens *service.TokenPair) dto.TokenResponse {
	return dto.TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt,
	}
}
