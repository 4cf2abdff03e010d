package service

import (
	"context"
	"errors"
	"testing"

	"github.com/supportstack/helpdesk-service/internal/domain"
	apperrors "github.com/supportstack/helpdesk-service/pkg/util/errorutil"
)

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != code {
		t.Fatalf("got %v, want %s", err, code)
	}
}

func TestListUsersRequiresAdmin(t *testing.T) {
	users := newFakeUserRepo()
	admin := users.add(domain.User{Username: "root", Email: "root@corp.test", Role: domain.RoleAdmin})
	tech := users.add(domain.User{Username: "bob", Email: "bob@corp.test", Role: domain.RoleTechnician})
	svc := NewUserService(users)

	ctx := context.Background()
	list, err := svc.ListUsers(ctx, admin)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("admin sees %d accounts, want 2", len(list))
	}

	_, err = svc.ListUsers(ctx, tech)
	assertDomainCode(t, err, "FORBIDDEN")
}

func TestEditUserOverwritesFields(t *testing.T) {
	users := newFakeUserRepo()
	admin := users.add(domain.User{Username: "root", Email: "root@corp.test", Role: domain.RoleAdmin})
	target := users.add(domain.User{Username: "alice", Email: "alice@corp.test", Role: domain.RoleEmployee})
	svc := NewUserService(users)

	updated, err := svc.EditUser(context.Background(), admin, target.ID, UserEditInput{
		Username: "alice.w",
		Email:    "alice.w@corp.test",
		FullName: "Alice Wong",
		Role:     domain.RoleTechnician,
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if updated.Role != domain.RoleTechnician || updated.Username != "alice.w" {
		t.Errorf("edit did not apply: %+v", updated)
	}
	if users.users[target.ID].Role != domain.RoleTechnician {
		t.Error("promotion must persist")
	}
}

func TestEditUserRejectsBadInput(t *testing.T) {
	users := newFakeUserRepo()
	admin := users.add(domain.User{Username: "root", Email: "root@corp.test", Role: domain.RoleAdmin})
	users.add(domain.User{Username: "alice", Email: "alice@corp.test", Role: domain.RoleEmployee})
	target := users.add(domain.User{Username: "bob", Email: "bob@corp.test", Role: domain.RoleEmployee})
	svc := NewUserService(users)

	ctx := context.Background()

	_, err := svc.EditUser(ctx, admin, target.ID, UserEditInput{
		Username: "bob", Email: "bob@corp.test", Role: domain.Role("MANAGER"),
	})
	assertDomainCode(t, err, "VALIDATION_FAILED")

	// Taking alice's username collides and must not change the row.
	_, err = svc.EditUser(ctx, admin, target.ID, UserEditInput{
		Username: "alice", Email: "bob@corp.test", Role: domain.RoleEmployee,
	})
	assertDomainCode(t, err, "CONFLICT")
	if users.users[target.ID].Username != "bob" {
		t.Error("failed edit must leave the account unchanged")
	}

	_, err = svc.EditUser(ctx, admin, 404, UserEditInput{
		Username: "ghost", Email: "ghost@corp.test", Role: domain.RoleEmployee,
	})
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestDeleteUserSelfGuard(t *testing.T) {
	users := newFakeUserRepo()
	admin := users.add(domain.User{Username: "root", Email: "root@corp.test", Role: domain.RoleAdmin})
	svc := NewUserService(users)

	err := svc.DeleteUser(context.Background(), admin, admin.ID)
	assertDomainCode(t, err, "FORBIDDEN")
	if _, ok := users.users[admin.ID]; !ok {
		t.Fatal("self-delete must leave the account intact")
	}
}

func TestDeleteUser(t *testing.T) {
	users := newFakeUserRepo()
	admin := users.add(domain.User{Username: "root", Email: "root@corp.test", Role: domain.RoleAdmin})
	gone := users.add(domain.User{Username: "temp", Email: "temp@corp.test", Role: domain.RoleEmployee})
	busy := users.add(domain.User{Username: "busy", Email: "busy@corp.test", Role: domain.RoleEmployee})
	users.referenced[busy.ID] = true
	svc := NewUserService(users)

	ctx := context.Background()

	if err := svc.DeleteUser(ctx, admin, gone.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := users.users[gone.ID]; ok {
		t.Error("account must be removed")
	}

	// A user still referenced by ticket rows cannot be deleted.
	err := svc.DeleteUser(ctx, admin, busy.ID)
	assertDomainCode(t, err, "CONFLICT")
	if _, ok := users.users[busy.ID]; !ok {
		t.Error("referenced account must survive the failed delete")
	}

	err = svc.DeleteUser(ctx, admin, 404)
	assertDomainCode(t, err, "NOT_FOUND")

	employee := users.add(domain.User{Username: "emp", Email: "emp@corp.test", Role: domain.RoleEmployee})
	err = svc.DeleteUser(ctx, employee, gone.ID)
	assertDomainCode(t, err, "FORBIDDEN")
}
