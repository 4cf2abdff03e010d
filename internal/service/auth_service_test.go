package service

import (
	"context"
	"errors"
	"testing"

	"github.com/supportstack/helpdesk-service/internal/auth"
	"github.com/supportstack/helpdesk-service/internal/config"
	"github.com/supportstack/helpdesk-service/internal/domain"
	apperrors "github.com/supportstack/helpdesk-service/pkg/util/errorutil"
)

func testAuthConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			SessionSecret:     "test-secret",
			SessionTTLMinutes: 30,
			BcryptCost:        4,
		},
	}
}

func TestRegisterForcesEmployeeRole(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), users, newFakeSessions())

	user, err := svc.Register(context.Background(), "alice", "alice@corp.test", "Alice A", "hunter2")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleEmployee {
		t.Errorf("role = %q, want EMPLOYEE", user.Role)
	}
	if user.ID == 0 {
		t.Error("id must be assigned")
	}
	if err := auth.ComparePassword(user.PasswordHash, "hunter2"); err != nil {
		t.Error("stored hash must verify against the password")
	}
}

func TestRegisterDuplicateUsernameGenericConflict(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), users, newFakeSessions())

	ctx := context.Background()
	if _, err := svc.Register(ctx, "alice", "alice@corp.test", "Alice A", "pw"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, "alice", "other@corp.test", "Other", "pw")
	if err == nil {
		t.Fatal("duplicate username must fail")
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "CONFLICT" {
		t.Fatalf("want generic CONFLICT, got %v", err)
	}
	if len(users.users) != 1 {
		t.Fatalf("duplicate row created: %d users", len(users.users))
	}
}

func TestLoginIssuesRevocableSession(t *testing.T) {
	users := newFakeUserRepo()
	sessions := newFakeSessions()
	svc := NewAuthService(testAuthConfig(), users, sessions)

	ctx := context.Background()
	registered, err := svc.Register(ctx, "bob", "bob@corp.test", "Bob B", "secret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, token, _, err := svc.Login(ctx, "bob", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("logged-in id = %d, want %d", user.ID, registered.ID)
	}

	claims, err := svc.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != registered.ID {
		t.Errorf("token user id = %d, want %d", claims.UserID, registered.ID)
	}
	if got, ok := sessions.active[claims.SessionID]; !ok || got != registered.ID {
		t.Fatal("session must be registered for the user")
	}

	if err := svc.Logout(ctx, claims.SessionID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := sessions.active[claims.SessionID]; ok {
		t.Fatal("logout must revoke the session")
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), users, newFakeSessions())

	ctx := context.Background()
	if _, err := svc.Register(ctx, "carol", "carol@corp.test", "Carol C", "right-pw"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, _, wrongPw := svc.Login(ctx, "carol", "wrong-pw")
	_, _, _, unknown := svc.Login(ctx, "nobody", "whatever")

	if !errors.Is(wrongPw, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", wrongPw)
	}
	if !errors.Is(unknown, ErrInvalidCredentials) {
		t.Fatalf("unknown user: got %v, want ErrInvalidCredentials", unknown)
	}
	if wrongPw.Error() != unknown.Error() {
		t.Fatal("both failures must be externally identical")
	}
}
