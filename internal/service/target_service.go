package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/weight-tracker/internal/domain"
	"github.com/spec-kit/weight-tracker/internal/events"
	"github.com/spec-kit/weight-tracker/internal/persistence"
	"github.com/spec-kit/weight-tracker/internal/repository"
	apperrors "github.com/spec-kit/weight-tracker/pkg/util"
)

const (
	publicTargetsCacheKey = "targets:public"
	publicTargetsCacheTTL = time.Minute
)

// TargetService coordinates weight-target workflows.
type TargetService struct {
	targets    repository.TargetRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	cache      *persistence.Redis
	logger     *zap.Logger
}

// TargetDependencies bundles dependencies for the target service.
type TargetDependencies struct {
	TargetRepo repository.TargetRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Cache      *persistence.Redis
	Logger     *zap.Logger
}

// TargetCreateInput describes target creation payload.
type TargetCreateInput struct {
	Name         string
	TargetWeight float64
	StartDate    time.Time
	EndDate      time.Time
	Public       bool
}

// TargetUpdateInput carries the updatable fields; nil leaves a field
// unchanged. Reached/closed are derived, never client-settable.
type TargetUpdateInput struct {
	Name         *string
	TargetWeight *float64
	StartDate    *time.Time
	EndDate      *time.Time
	Public       *bool
}

// NewTargetService constructs the service.
func NewTargetService(deps TargetDependencies) *TargetService {
	return &TargetService{
		targets:    deps.TargetRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		cache:      deps.Cache,
		logger:     deps.Logger,
	}
}

// ListPublic returns all public targets, served from cache when warm.
func (s *TargetService) ListPublic(ctx context.Context) ([]*domain.Target, error) {
	if payload, ok := s.cache.GetCached(ctx, publicTargetsCacheKey); ok {
		var cached []*domain.Target
		if err := json.Unmarshal([]byte(payload), &cached); err == nil {
			return cached, nil
		}
	}

	targets, err := s.targets.ListPublic(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(targets); err == nil {
		if err := s.cache.SetCached(ctx, publicTargetsCacheKey, string(payload), publicTargetsCacheTTL); err != nil {
			s.logger.Warn("failed to cache public targets", zap.Error(err))
		}
	}
	return targets, nil
}

// ListByUser returns a user's targets; unknown users are a 404.
func (s *TargetService) ListByUser(ctx context.Context, userID int64) ([]*domain.Target, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.targets.ListByUser(ctx, userID)
}

// GetByName resolves a target by its name.
func (s *TargetService) GetByName(ctx context.Context, name string) (*domain.Target, error) {
	target, err := s.targets.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(fmt.Sprintf("Target with name %s not found", name))
		}
		return nil, err
	}
	return target, nil
}

// GetForUser resolves a target scoped to its declared owner.
func (s *TargetService) GetForUser(ctx context.Context, targetID, userID int64) (*domain.Target, error) {
	target, err := s.targets.GetForUser(ctx, targetID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(fmt.Sprintf("Target with id %d for user %d not found", targetID, userID))
		}
		return nil, err
	}
	return target, nil
}

// Create records a new target for the given user.
func (s *TargetService) Create(ctx context.Context, userID int64, input TargetCreateInput) (*domain.Target, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	target := &domain.Target{
		UserID:       userID,
		Name:         input.Name,
		TargetWeight: input.TargetWeight,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Public:       input.Public,
	}
	if err := s.targets.Create(ctx, target); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return target, nil
}

// Update applies the whitelisted fields to an already resolved target.
func (s *TargetService) Update(ctx context.Context, target *domain.Target, actorID int64, input TargetUpdateInput) (*domain.Target, error) {
	if input.Name != nil {
		target.Name = *input.Name
	}
	if input.TargetWeight != nil {
		target.TargetWeight = *input.TargetWeight
	}
	if input.StartDate != nil {
		target.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		target.EndDate = *input.EndDate
	}
	if input.Public != nil {
		target.Public = *input.Public
	}

	if err := s.targets.Update(ctx, target); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTargetUpdated,
		TargetID:  target.ID,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload: events.TargetUpdatedPayload{
			TargetWeight: target.TargetWeight,
			EndDate:      target.EndDate,
		},
	})
	return target, nil
}

// Delete removes an already resolved target.
func (s *TargetService) Delete(ctx context.Context, target *domain.Target) error {
	if err := s.targets.Delete(ctx, target.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound(fmt.Sprintf("Target with id %d for user %d not found", target.ID, target.UserID))
		}
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *TargetService) ensureUser(ctx context.Context, userID int64) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound(fmt.Sprintf("User with id %d not found", userID))
		}
		return err
	}
	return nil
}

func (s *TargetService) invalidateCache(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, publicTargetsCacheKey); err != nil {
		s.logger.Warn("failed to invalidate public targets cache", zap.Error(err))
	}
}

func (s *TargetService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
