package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMeasurementRecorded EventType = "measurement_recorded"
	EventMeasurementChanged  EventType = "measurement_changed"
	EventTargetUpdated       EventType = "target_updated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TargetID  int64       `json:"target_id"`
	ActorID   int64       `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MeasurementRecordedPayload payload.
type MeasurementRecordedPayload struct {
	MeasurementID   int64     `json:"measurement_id"`
	Weight          float64   `json:"weight"`
	MeasurementDate time.Time `json:"measurement_date"`
}

// TargetUpdatedPayload payload.
type TargetUpdatedPayload struct {
	TargetWeight float64   `json:"target_weight"`
	EndDate      time.Time `json:"end_date"`
}
