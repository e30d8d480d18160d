package domain

import "time"

// RoleType enumerates the fixed privilege levels.
type RoleType string

const (
	RoleUser    RoleType = "user"
	RolePremium RoleType = "premium"
	RoleAdmin   RoleType = "admin"
)

// Valid reports whether the value is one of the known role types.
func (r RoleType) Valid() bool {
	switch r {
	case RoleUser, RolePremium, RoleAdmin:
		return true
	}
	return false
}

// Role is a privilege level referenced by users.
type Role struct {
	ID        int64
	RoleType  RoleType
	CreatedAt time.Time
	UpdatedAt time.Time
}
