package domain

import "time"

// Role enumerates account roles.
type Role string

const (
	RoleEmployee   Role = "EMPLOYEE"
	RoleTechnician Role = "TECHNICIAN"
	RoleAdmin      Role = "ADMIN"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleTechnician, RoleAdmin:
		return true
	}
	return false
}

// Staff reports whether the role works tickets and may be an assignment target.
func (r Role) Staff() bool {
	return r == RoleTechnician || r == RoleAdmin
}

// User is the domain model for accounts. Username and email are globally unique.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	FullName     string
	CreatedAt    time.Time
}
