package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/supportstack/helpdesk-service/internal/domain"
	"github.com/supportstack/helpdesk-service/internal/repository"
	apperrors "github.com/supportstack/helpdesk-service/pkg/util/errorutil"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "helpdesk_session"

const (
	actorKey     = "auth_actor"
	sessionIDKey = "auth_session_id"
)

// AuthMiddleware validates session tokens and loads the acting user.
type AuthMiddleware struct {
	tokens   *TokenManager
	sessions *SessionStore
	users    repository.UserRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, sessions *SessionStore, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, sessions: sessions, users: users}
}

// Handle enforces authentication for protected routes. The token comes from
// the session cookie; a bearer Authorization header is accepted as well.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	tokenStr := c.Cookies(SessionCookie)
	if tokenStr == "" {
		header := c.Get("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenStr = parts[1]
		}
	}
	if tokenStr == "" {
		return apperrors.NewUnauthorized("authentication required")
	}

	claims, err := m.tokens.ParseToken(tokenStr)
	if err != nil {
		return apperrors.NewUnauthorized("invalid session")
	}

	userID, err := m.sessions.Validate(c.Context(), claims.SessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return apperrors.NewUnauthorized("session expired")
		}
		return apperrors.MapError(err)
	}
	if userID != claims.UserID {
		return apperrors.NewUnauthorized("invalid session")
	}

	user, err := m.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("account no longer exists")
		}
		return apperrors.MapError(err)
	}

	c.Locals(actorKey, user)
	c.Locals(sessionIDKey, claims.SessionID)
	return c.Next()
}

// ActorFromContext retrieves the authenticated user.
func ActorFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(actorKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}

// SessionIDFromContext retrieves the current session id.
func SessionIDFromContext(c *fiber.Ctx) (string, bool) {
	val := c.Locals(sessionIDKey)
	if val == nil {
		return "", false
	}
	id, ok := val.(string)
	return id, ok
}
