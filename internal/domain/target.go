package domain

import "time"

// Target is a personal weight goal owned by exactly one user.
type Target struct {
	ID           int64
	UserID       int64
	Name         string
	TargetWeight float64
	StartDate    time.Time
	EndDate      time.Time
	Public       bool
	Reached      bool
	Closed       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
