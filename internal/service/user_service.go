package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/supportstack/helpdesk-service/internal/auth"
	"github.com/supportstack/helpdesk-service/internal/domain"
	"github.com/supportstack/helpdesk-service/internal/repository"
	apperrors "github.com/supportstack/helpdesk-service/pkg/util/errorutil"
)

// UserService implements the admin account-management operations.
type UserService struct {
	users repository.UserRepository
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// UserEditInput overwrites the mutable account fields.
type UserEditInput struct {
	Username string
	Email    string
	FullName string
	Role     domain.Role
}

// ListUsers returns every account. Admin only.
func (s *UserService) ListUsers(ctx context.Context, actor *domain.User) ([]domain.User, error) {
	if !auth.Allows(actor.Role, auth.ActionManageUsers) {
		return nil, apperrors.NewForbidden("access denied: administrator role required")
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// EditUser overwrites username, email, full name and role on an existing
// account. A uniqueness collision surfaces as one generic update failure.
func (s *UserService) EditUser(ctx context.Context, actor *domain.User, targetID int64, input UserEditInput) (*domain.User, error) {
	if !auth.Allows(actor.Role, auth.ActionManageUsers) {
		return nil, apperrors.NewForbidden("access denied: administrator role required")
	}
	if !input.Role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", nil)
	}

	user, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": targetID})
		}
		return nil, apperrors.MapError(err)
	}

	user.Username = strings.TrimSpace(input.Username)
	user.Email = strings.TrimSpace(input.Email)
	user.FullName = strings.TrimSpace(input.FullName)
	user.Role = input.Role

	if err := s.users.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("update failed: username or email already taken", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// DeleteUser removes an account. Admins can never delete themselves, and an
// account still referenced as requester or commenter cannot be removed.
func (s *UserService) DeleteUser(ctx context.Context, actor *domain.User, targetID int64) error {
	if !auth.Allows(actor.Role, auth.ActionManageUsers) {
		return apperrors.NewForbidden("access denied: administrator role required")
	}
	if !auth.CanDeleteUser(actor, targetID) {
		return apperrors.NewForbidden("you cannot delete your own account")
	}

	if err := s.users.Delete(ctx, targetID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": targetID})
		}
		if repository.IsForeignKeyViolation(err) {
			return apperrors.NewConflict("delete failed: user still referenced by tickets", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}
