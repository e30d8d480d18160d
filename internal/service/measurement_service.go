package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/weight-tracker/internal/domain"
	"github.com/spec-kit/weight-tracker/internal/events"
	"github.com/spec-kit/weight-tracker/internal/repository"
	apperrors "github.com/spec-kit/weight-tracker/pkg/util"
)

// MeasurementService coordinates weigh-in workflows.
type MeasurementService struct {
	measurements repository.MeasurementRepository
	targets      repository.TargetRepository
	dispatcher   events.Dispatcher
}

// MeasurementDependencies bundles dependencies for the measurement service.
type MeasurementDependencies struct {
	MeasurementRepo repository.MeasurementRepository
	TargetRepo      repository.TargetRepository
	Dispatcher      events.Dispatcher
}

// MeasurementCreateInput describes a new weigh-in.
type MeasurementCreateInput struct {
	Weight          float64
	MeasurementDate time.Time
}

// MeasurementUpdateInput carries updatable fields; nil leaves a field
// unchanged.
type MeasurementUpdateInput struct {
	Weight          *float64
	MeasurementDate *time.Time
}

// NewMeasurementService constructs the service.
func NewMeasurementService(deps MeasurementDependencies) *MeasurementService {
	return &MeasurementService{
		measurements: deps.MeasurementRepo,
		targets:      deps.TargetRepo,
		dispatcher:   deps.Dispatcher,
	}
}

// ListForTarget returns the weigh-ins recorded against a target owned
// by the declared user.
func (s *MeasurementService) ListForTarget(ctx context.Context, targetID, userID int64) ([]*domain.Measurement, error) {
	if err := s.ensureTarget(ctx, targetID, userID); err != nil {
		return nil, err
	}
	return s.measurements.ListForTarget(ctx, targetID, userID)
}

// GetScoped resolves a measurement through the target -> user chain.
func (s *MeasurementService) GetScoped(ctx context.Context, measurementID, targetID, userID int64) (*domain.Measurement, error) {
	m, err := s.measurements.GetScoped(ctx, measurementID, targetID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(fmt.Sprintf("Measurement with id %d not found", measurementID))
		}
		return nil, err
	}
	return m, nil
}

// Create records a weigh-in and publishes an event so target progress
// gets re-evaluated.
func (s *MeasurementService) Create(ctx context.Context, targetID, userID, actorID int64, input MeasurementCreateInput) (*domain.Measurement, error) {
	if err := s.ensureTarget(ctx, targetID, userID); err != nil {
		return nil, err
	}

	m := &domain.Measurement{
		TargetID:        targetID,
		Weight:          input.Weight,
		MeasurementDate: input.MeasurementDate,
	}
	if err := s.measurements.Create(ctx, m); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventMeasurementRecorded, m, actorID)
	return m, nil
}

// Update applies updatable fields to an already resolved measurement.
func (s *MeasurementService) Update(ctx context.Context, m *domain.Measurement, actorID int64, input MeasurementUpdateInput) (*domain.Measurement, error) {
	if input.Weight != nil {
		m.Weight = *input.Weight
	}
	if input.MeasurementDate != nil {
		m.MeasurementDate = *input.MeasurementDate
	}

	if err := s.measurements.Update(ctx, m); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventMeasurementChanged, m, actorID)
	return m, nil
}

// Delete removes an already resolved measurement.
func (s *MeasurementService) Delete(ctx context.Context, m *domain.Measurement, actorID int64) error {
	if err := s.measurements.Delete(ctx, m.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound(fmt.Sprintf("Measurement with id %d not found", m.ID))
		}
		return err
	}
	s.publish(ctx, events.EventMeasurementChanged, m, actorID)
	return nil
}

func (s *MeasurementService) ensureTarget(ctx context.Context, targetID, userID int64) error {
	if _, err := s.targets.GetForUser(ctx, targetID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound(fmt.Sprintf("Target with id %d for user %d not found", targetID, userID))
		}
		return err
	}
	return nil
}

func (s *MeasurementService) publish(ctx context.Context, eventType events.EventType, m *domain.Measurement, actorID int64) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TargetID:  m.TargetID,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload: events.MeasurementRecordedPayload{
			MeasurementID:   m.ID,
			Weight:          m.Weight,
			MeasurementDate: m.MeasurementDate,
		},
	})
}
