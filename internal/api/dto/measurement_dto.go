package dto

import (
	"time"

	"github.com/spec-kit/weight-tracker/internal/domain"
)

// MeasurementCreateRequest is the payload for a new weigh-in.
type MeasurementCreateRequest struct {
	Weight          float64 `json:"weight"`
	MeasurementDate string  `json:"measurement_date"`
}

// MeasurementUpdateRequest carries optional fields for PATCH.
type MeasurementUpdateRequest struct {
	Weight          *float64 `json:"weight"`
	MeasurementDate *string  `json:"measurement_date"`
}

// MeasurementResponse is the wire shape for a weigh-in.
type MeasurementResponse struct {
	ID              int64   `json:"id"`
	TargetID        int64   `json:"target_id"`
	Weight          float64 `json:"weight"`
	MeasurementDate string  `json:"measurement_date"`
}

// NewMeasurementResponse maps a measurement to the wire shape.
func NewMeasurementResponse(m *domain.Measurement) MeasurementResponse {
	return MeasurementResponse{
		ID:              m.ID,
		TargetID:        m.TargetID,
		Weight:          m.Weight,
		MeasurementDate: m.MeasurementDate.Format(time.DateOnly),
	}
}

// NewMeasurementResponses maps a list of measurements.
func NewMeasurementResponses(measurements []*domain.Measurement) []MeasurementResponse {
	out := make([]MeasurementResponse, 0, len(measurements))
	for _, m := range measurements {
		out = append(out, NewMeasurementResponse(m))
	}
	return out
}
