package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/supportstack/helpdesk-service/internal/api/dto"
	"github.com/supportstack/helpdesk-service/internal/auth"
	"github.com/supportstack/helpdesk-service/internal/service"
	apperrors "github.com/supportstack/helpdesk-service/pkg/util/errorutil"
)

// AuthHandler exposes registration, login and logout.
type AuthHandler struct {
	auth          *service.AuthService
	secureCookies bool
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: authService, secureCookies: secureCookies}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.FullName) == "" || req.Password == "" {
		return apperrors.NewValidationError("username, email, fullname, password required", nil)
	}

	user, err := h.auth.Register(c.Context(), req.Username, req.Email, req.FullName, req.Password)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, dto.NewUserSummary(user),
		"account created, please log in", apperrors.CategorySuccess)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return apperrors.NewUnauthorized("invalid credentials")
		}
		return err
	}

	h.setSessionCookie(c, token, exp)
	return respond(c, http.StatusOK, fiber.Map{
		"user":       dto.NewUserSummary(user),
		"token":      token,
		"expires_at": exp,
	}, "logged in", apperrors.CategorySuccess)
}

// Logout handles POST /auth/logout. Revocation is unconditional for any
// authenticated actor.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sessionID, ok := auth.SessionIDFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.auth.Logout(c.Context(), sessionID); err != nil {
		return apperrors.MapError(err)
	}

	h.clearSessionCookie(c)
	return respond(c, http.StatusOK, nil, "logged out", apperrors.CategoryInfo)
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string, exp time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Expires:  exp,
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
