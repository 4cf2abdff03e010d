package auth

import (
	"testing"
	"time"

	"github.com/supportstack/helpdesk-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 30)
	user := &domain.User{ID: 42, Role: domain.RoleTechnician}

	token, exp, err := tm.GenerateToken("sess-1", user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if exp.Before(time.Now()) {
		t.Fatal("expiry must be in the future")
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.SessionID != "sess-1" {
		t.Errorf("session id = %q, want sess-1", claims.SessionID)
	}
	if claims.UserID != 42 {
		t.Errorf("user id = %d, want 42", claims.UserID)
	}
	if claims.Role != domain.RoleTechnician {
		t.Errorf("role = %q, want TECHNICIAN", claims.Role)
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	tm := NewTokenManager("secret-a", 30)
	other := NewTokenManager("secret-b", 30)

	token, _, err := tm.GenerateToken("sess-1", &domain.User{ID: 1, Role: domain.RoleEmployee})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := other.ParseToken(token); err == nil {
		t.Fatal("token signed with a different secret must be rejected")
	}
}

func TestTokenGarbageRejected(t *testing.T) {
	tm := NewTokenManager("secret", 30)
	if _, err := tm.ParseToken("not-a-token"); err == nil {
		t.Fatal("garbage token must be rejected")
	}
}
