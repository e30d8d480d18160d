package domain

import "time"

// User is the domain model for tracked account holders.
type User struct {
	ID           int64
	RoleID       int64
	Username     string
	Email        string
	PasswordHash string
	Height       float64
	Weight       float64
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Role is populated when the record is loaded with its role joined.
	Role *Role
}
