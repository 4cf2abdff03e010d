package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/supportstack/helpdesk-service/internal/api/dto"
	"github.com/supportstack/helpdesk-service/internal/auth"
	"github.com/supportstack/helpdesk-service/internal/service"
	apperrors "github.com/supportstack/helpdesk-service/pkg/util/errorutil"
)

// AdminUsersHandler exposes the admin account-management surface.
type AdminUsersHandler struct {
	service *service.UserService
}

// NewAdminUsersHandler constructs handler.
func NewAdminUsersHandler(userService *service.UserService) *AdminUsersHandler {
	return &AdminUsersHandler{service: userService}
}

// List GET /admin/users.
func (h *AdminUsersHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	users, err := h.service.ListUsers(c.Context(), actor)
	if err != nil {
		return err
	}
	items := make([]dto.UserSummary, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserSummary(&users[i]))
	}
	return respond(c, http.StatusOK, items, "", "")
}

// Edit POST /admin/users/:id.
func (h *AdminUsersHandler) Edit(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	targetID, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}
	var req dto.EditUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.FullName) == "" || req.Role == "" {
		return apperrors.NewValidationError("username, email, fullname, role required", nil)
	}

	user, err := h.service.EditUser(c.Context(), actor, targetID, service.UserEditInput{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewUserSummary(user),
		"user "+user.Username+" updated", apperrors.CategorySuccess)
}

// Delete POST /admin/users/:id/delete.
func (h *AdminUsersHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	targetID, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}
	if err := h.service.DeleteUser(c.Context(), actor, targetID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "user deleted", apperrors.CategoryWarning)
}
