package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/weight-tracker/internal/events"
	"github.com/spec-kit/weight-tracker/internal/repository"
)

// ProgressService re-evaluates target flags when weigh-ins change. A
// target is reached once any measurement is at or below the goal
// weight, and closed once the end date passes without reaching it.
type ProgressService struct {
	targets      repository.TargetRepository
	measurements repository.MeasurementRepository
	dispatcher   events.Dispatcher
	logger       *zap.Logger
}

// NewProgressService constructs the service.
func NewProgressService(targets repository.TargetRepository, measurements repository.MeasurementRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ProgressService {
	return &ProgressService{
		targets:      targets,
		measurements: measurements,
		dispatcher:   dispatcher,
		logger:       logger,
	}
}

// RegisterHandlers subscribes progress evaluation to the events that
// can change a target's standing.
func (s *ProgressService) RegisterHandlers() {
	handler := func(ctx context.Context, event events.Event) error {
		return s.EvaluateTarget(ctx, event.TargetID)
	}
	s.dispatcher.Subscribe(events.EventMeasurementRecorded, handler)
	s.dispatcher.Subscribe(events.EventMeasurementChanged, handler)
	s.dispatcher.Subscribe(events.EventTargetUpdated, handler)
}

// EvaluateTarget recomputes the reached/closed flags for one target
// and persists them when they changed.
func (s *ProgressService) EvaluateTarget(ctx context.Context, targetID int64) error {
	target, err := s.targets.GetByID(ctx, targetID)
	if err != nil {
		s.logger.Warn("progress evaluation skipped", zap.Int64("target_id", targetID), zap.Error(err))
		return err
	}

	measurements, err := s.measurements.ListForTarget(ctx, target.ID, target.UserID)
	if err != nil {
		return err
	}

	reached := false
	for _, m := range measurements {
		if m.Weight <= target.TargetWeight {
			reached = true
			break
		}
	}
	closed := !reached && !target.EndDate.IsZero() && time.Now().After(target.EndDate)

	if reached == target.Reached && closed == target.Closed {
		return nil
	}

	target.Reached = reached
	target.Closed = closed
	if err := s.targets.Update(ctx, target); err != nil {
		s.logger.Error("failed to persist target progress", zap.Int64("target_id", targetID), zap.Error(err))
		return err
	}

	s.logger.Info("target progress updated",
		zap.Int64("target_id", target.ID),
		zap.Bool("reached", reached),
		zap.Bool("closed", closed),
	)
	return nil
}
