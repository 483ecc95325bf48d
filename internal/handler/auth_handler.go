package handler

import (
	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles token issuance.
type AuthHandler struct {
	authService domain.AuthService
	appConfig   *config.Config
	validator   *validation.Validator
}

func NewAuthHandler(authService domain.AuthService, appConfig *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		appConfig:   appConfig,
		validator:   validation.NewValidator(),
	}
}

// IssueToken exchanges credentials for a JWT access token.
// @Summary Issue an access token
// @Description Authenticates email and password and returns a bearer token. An unknown email registers a new account.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.TokenRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "Invalid credentials format"
// @Failure 401 {object} middleware.ErrorResponse "Invalid credentials"
// @Router /v1/auth/token [post]
func (h *AuthHandler) IssueToken(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidRequestError("Malformed request body")
	}

	if errs := h.validator.ValidateTokenRequest(req.Email, req.Password); len(errs) > 0 {
		return errs
	}

	token, err := h.authService.IssueToken(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(h.appConfig.Auth.TokenExpiry.Seconds()),
	})
}
