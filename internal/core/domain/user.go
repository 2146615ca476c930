package domain

import "time"

// Role is the closed set of access roles a user can hold.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleEditor  Role = "editor"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEditor:
		return true
	}
	return false
}

// User models an account in the system.
// PasswordHash never serializes to JSON; external responses additionally go
// through Projection so the hash cannot leak by accident.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Projection returns a copy of u with the password hash stripped, safe to
// hand to the transport layer.
func (u *User) Projection() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	return &clone
}
