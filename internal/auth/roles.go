package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/supportstack/helpdesk-service/internal/domain"
	apperrors "github.com/supportstack/helpdesk-service/pkg/util/errorutil"
)

// RequireRole blocks the whole route unless the actor holds one of the allowed
// roles. The denial carries a danger-category message so the client can flash
// it like any other warning.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		actor, ok := ActorFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[actor.Role]; !exists {
			return apperrors.NewForbidden("access denied: administrator role required")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures the caller passed the auth middleware.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := ActorFromContext(c); !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		return c.Next()
	}
}
