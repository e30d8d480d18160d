package dto

import (
	"time"

	"github.com/spec-kit/weight-tracker/internal/domain"
)

// TargetCreateRequest is the payload for a new weight target. Dates
// use the YYYY-MM-DD form.
type TargetCreateRequest struct {
	Name         string  `json:"name"`
	TargetWeight float64 `json:"target_weight"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Public       *bool   `json:"public"`
}

// TargetUpdateRequest carries optional fields for PATCH.
type TargetUpdateRequest struct {
	Name         *string  `json:"name"`
	TargetWeight *float64 `json:"target_weight"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	Public       *bool    `json:"public"`
}

// TargetResponse is the wire shape for a target.
type TargetResponse struct {
	ID           int64                 `json:"id"`
	UserID       int64                 `json:"user_id"`
	Name         string                `json:"name"`
	TargetWeight float64               `json:"target_weight"`
	StartDate    string                `json:"start_date"`
	EndDate      string                `json:"end_date"`
	Public       bool                  `json:"public"`
	Reached      bool                  `json:"reached"`
	Closed       bool                  `json:"closed"`
	Measurements []MeasurementResponse `json:"measurements"`
}

// NewTargetResponse maps a target to the wire shape.
func NewTargetResponse(target *domain.Target) TargetResponse {
	return TargetResponse{
		ID:           target.ID,
		UserID:       target.UserID,
		Name:         target.Name,
		TargetWeight: target.TargetWeight,
		StartDate:    target.StartDate.Format(time.DateOnly),
		EndDate:      target.EndDate.Format(time.DateOnly),
		Public:       target.Public,
		Reached:      target.Reached,
		Closed:       target.Closed,
		Measurements: make([]MeasurementResponse, 0),
	}
}

// NewTargetResponses maps a list of targets.
func NewTargetResponses(targets []*domain.Target) []TargetResponse {
	out := make([]TargetResponse, 0, len(targets))
	for _, target := range targets {
		out = append(out, NewTargetResponse(target))
	}
	return out
}
