package domain

import "time"

// Measurement is a weigh-in recorded against a target.
type Measurement struct {
	ID              int64
	TargetID        int64
	Weight          float64
	MeasurementDate time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
