package auth

import (
	"testing"

	"github.com/supportstack/helpdesk-service/internal/domain"
)

func userWithRole(id int64, role domain.Role) *domain.User {
	return &domain.User{ID: id, Role: role}
}

func ticketFor(requesterID int64, assignedTo *int64) *domain.Ticket {
	return &domain.Ticket{ID: 100, RequesterID: requesterID, AssignedTo: assignedTo}
}

func ptr(v int64) *int64 { return &v }

func TestCanViewTicketMatrix(t *testing.T) {
	const actorID = int64(7)
	const otherID = int64(8)

	tests := []struct {
		name   string
		role   domain.Role
		ticket *domain.Ticket
		want   bool
	}{
		{"admin sees own request", domain.RoleAdmin, ticketFor(actorID, nil), true},
		{"admin sees foreign unassigned", domain.RoleAdmin, ticketFor(otherID, nil), true},
		{"admin sees foreign assigned elsewhere", domain.RoleAdmin, ticketFor(otherID, ptr(otherID)), true},

		{"technician sees own assignment", domain.RoleTechnician, ticketFor(otherID, ptr(actorID)), true},
		{"technician sees unassigned pool", domain.RoleTechnician, ticketFor(otherID, nil), true},
		{"technician blocked from foreign assignment", domain.RoleTechnician, ticketFor(otherID, ptr(otherID)), false},

		{"employee sees own request", domain.RoleEmployee, ticketFor(actorID, nil), true},
		{"employee sees own request even when assigned", domain.RoleEmployee, ticketFor(actorID, ptr(otherID)), true},
		{"employee blocked from foreign unassigned", domain.RoleEmployee, ticketFor(otherID, nil), false},
		{"employee blocked from foreign assigned", domain.RoleEmployee, ticketFor(otherID, ptr(otherID)), false},

		{"unknown role denied", domain.Role("GUEST"), ticketFor(actorID, nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := userWithRole(actorID, tt.role)
			if got := CanViewTicket(actor, tt.ticket); got != tt.want {
				t.Fatalf("CanViewTicket(%s) = %v, want %v", tt.role, got, tt.want)
			}
			if got := CanComment(actor, tt.ticket); got != tt.want {
				t.Fatalf("CanComment(%s) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestCanViewTicketNilInputs(t *testing.T) {
	if CanViewTicket(nil, ticketFor(1, nil)) {
		t.Fatal("nil actor must be denied")
	}
	if CanViewTicket(userWithRole(1, domain.RoleAdmin), nil) {
		t.Fatal("nil ticket must be denied")
	}
}

func TestAllowsTable(t *testing.T) {
	tests := []struct {
		role   domain.Role
		action Action
		want   bool
	}{
		{domain.RoleEmployee, ActionCreateTicket, true},
		{domain.RoleEmployee, ActionChangeStatus, false},
		{domain.RoleEmployee, ActionAssignTicket, false},
		{domain.RoleEmployee, ActionManageUsers, false},

		{domain.RoleTechnician, ActionCreateTicket, true},
		{domain.RoleTechnician, ActionChangeStatus, true},
		{domain.RoleTechnician, ActionAssignTicket, false},
		{domain.RoleTechnician, ActionManageUsers, false},

		{domain.RoleAdmin, ActionChangeStatus, true},
		{domain.RoleAdmin, ActionAssignTicket, true},
		{domain.RoleAdmin, ActionManageUsers, true},
		{domain.RoleAdmin, ActionViewAllTickets, true},

		{domain.Role("GUEST"), ActionCreateTicket, false},
	}

	for _, tt := range tests {
		if got := Allows(tt.role, tt.action); got != tt.want {
			t.Errorf("Allows(%s, %s) = %v, want %v", tt.role, tt.action, got, tt.want)
		}
	}
}

func TestCanDeleteUser(t *testing.T) {
	admin := userWithRole(1, domain.RoleAdmin)

	if CanDeleteUser(admin, admin.ID) {
		t.Fatal("admin must not delete their own account")
	}
	if !CanDeleteUser(admin, 2) {
		t.Fatal("admin must be able to delete another account")
	}
	if CanDeleteUser(userWithRole(3, domain.RoleTechnician), 2) {
		t.Fatal("technician must not delete accounts")
	}
	if CanDeleteUser(nil, 2) {
		t.Fatal("nil actor must be denied")
	}
}
