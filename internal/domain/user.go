package domain

import "time"

// Role represents a user role.
type Role string

const (
	RoleUser    Role = "USER"
	RoleManager Role = "MANAGER"
)

// IsValid checks if the role is one of the allowed values.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleManager
}

// User is the authenticated principal making requests.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Roles        []Role
	CreatedAt    time.Time
}

// HasRole checks if the user carries the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsManager reports whether the user has the manager role, which bypasses
// project membership checks.
func (u *User) IsManager() bool {
	return u.HasRole(RoleManager)
}
