package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/supportstack/helpdesk-service/internal/auth"
	"github.com/supportstack/helpdesk-service/internal/config"
	"github.com/supportstack/helpdesk-service/internal/domain"
	"github.com/supportstack/helpdesk-service/internal/repository"
	apperrors "github.com/supportstack/helpdesk-service/pkg/util/errorutil"
)

// ErrInvalidCredentials is the single failure for both unknown usernames and
// wrong passwords, so the two are externally indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// SessionManager abstracts the live-session registry. Satisfied by
// *auth.SessionStore.
type SessionManager interface {
	Create(ctx context.Context, userID int64) (string, error)
	Revoke(ctx context.Context, sessionID string) error
}

// AuthService coordinates registration, login and logout.
type AuthService struct {
	users      repository.UserRepository
	sessions   SessionManager
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, sessions SessionManager) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.SessionSecret, cfg.Auth.SessionTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account in a single atomic insert. The role is always
// EMPLOYEE regardless of input, and a uniqueness collision on either username
// or email surfaces as one generic conflict.
func (s *AuthService) Register(ctx context.Context, username, email, fullName, password string) (*domain.User, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Username:     strings.TrimSpace(username),
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
		Role:         domain.RoleEmployee,
		FullName:     strings.TrimSpace(fullName),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("username or email already taken", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Login authenticates by exact username match and password verification,
// opens a session and returns the signed session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	sessionID, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	token, exp, err := s.tokenMgr.GenerateToken(sessionID, user)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// Logout revokes the session unconditionally.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Revoke(ctx, sessionID)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
