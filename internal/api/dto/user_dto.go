package dto

import (
	"time"

	"github.com/supportstack/helpdesk-service/internal/domain"
)

// RegisterRequest payload for new accounts. Any role supplied in input is
// ignored; new accounts are always employees.
type RegisterRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	FullName string `json:"fullname" form:"fullname"`
	Password string `json:"password" form:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// EditUserRequest payload for the admin account edit.
type EditUserRequest struct {
	Username string      `json:"username" form:"username"`
	Email    string      `json:"email" form:"email"`
	FullName string      `json:"fullname" form:"fullname"`
	Role     domain.Role `json:"role" form:"role"`
}

// UserSummary is the account view returned to clients. The password hash
// never leaves the service.
type UserSummary struct {
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	FullName  string      `json:"full_name"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewUserSummary maps a domain user.
func NewUserSummary(u *domain.User) UserSummary {
	return UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
	}
}
