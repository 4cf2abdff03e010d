package auth

import "github.com/supportstack/helpdesk-service/internal/domain"

// Action identifies an operation checked against the permission table.
type Action string

const (
	ActionCreateTicket   Action = "ticket.create"
	ActionViewAllTickets Action = "ticket.view_all"
	ActionChangeStatus   Action = "ticket.change_status"
	ActionAssignTicket   Action = "ticket.assign"
	ActionManageUsers    Action = "user.manage"
)

// permissions is the closed (role, action) decision table. Anything absent is
// denied. Per-resource visibility lives in CanViewTicket, not here.
var permissions = map[domain.Role]map[Action]bool{
	domain.RoleEmployee: {
		ActionCreateTicket: true,
	},
	domain.RoleTechnician: {
		ActionCreateTicket: true,
		ActionChangeStatus: true,
	},
	domain.RoleAdmin: {
		ActionCreateTicket:   true,
		ActionViewAllTickets: true,
		ActionChangeStatus:   true,
		ActionAssignTicket:   true,
		ActionManageUsers:    true,
	},
}

// Allows reports whether the role may perform the action.
func Allows(role domain.Role, action Action) bool {
	return permissions[role][action]
}

// CanViewTicket applies the per-role visibility rule: admins see every ticket,
// technicians see their own assignments plus the unassigned pool, employees see
// only tickets they requested.
func CanViewTicket(actor *domain.User, ticket *domain.Ticket) bool {
	if actor == nil || ticket == nil {
		return false
	}
	switch actor.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleTechnician:
		return ticket.AssignedTo == nil || *ticket.AssignedTo == actor.ID
	case domain.RoleEmployee:
		return ticket.RequesterID == actor.ID
	}
	return false
}

// CanComment mirrors visibility: anyone who can view the ticket may append to
// its thread.
func CanComment(actor *domain.User, ticket *domain.Ticket) bool {
	return CanViewTicket(actor, ticket)
}

// CanDeleteUser permits admin deletes of any account except the admin's own.
func CanDeleteUser(actor *domain.User, targetID int64) bool {
	if actor == nil || !Allows(actor.Role, ActionManageUsers) {
		return false
	}
	return actor.ID != targetID
}
