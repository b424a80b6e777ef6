package user

import (
	"time"

	"github.com/google/uuid"
)

// Role represents user role in the marketplace (matches user_role enum)
type Role string

const (
	RoleGuest Role = "guest"
	RoleHost  Role = "host"
)

// User represents a user account (matches users table)
type User struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	FullName     string    `db:"full_name"`
	Role         Role      `db:"role"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsHost returns true if the user can list spaces
func (u *User) IsHost() bool {
	return u.Role == RoleHost
}

// IsValidRole checks if role is valid for registration
func IsValidRole(role string) bool {
	return role == string(RoleGuest) || role == string(RoleHost)
}
