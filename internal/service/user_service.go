package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/weight-tracker/internal/auth"
	"github.com/spec-kit/weight-tracker/internal/domain"
	"github.com/spec-kit/weight-tracker/internal/repository"
	apperrors "github.com/spec-kit/weight-tracker/pkg/util"
)

// UserService coordinates account workflows.
type UserService struct {
	users      repository.UserRepository
	roles      repository.RoleRepository
	targets    repository.TargetRepository
	bcryptCost int
}

// UserDependencies bundles repositories for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	RoleRepo   repository.RoleRepository
	TargetRepo repository.TargetRepository
	BcryptCost int
}

// UserCreateInput describes registration payload.
type UserCreateInput struct {
	Username string
	Email    string
	Password string
	Height   float64
	Weight   float64
}

// UserUpdateInput carries the updatable fields. Nil means "leave
// unchanged"; id, role and timestamps are never client-settable.
type UserUpdateInput struct {
	Username *string
	Email    *string
	Password *string
	Height   *float64
	Weight   *float64
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:      deps.UserRepo,
		roles:      deps.RoleRepo,
		targets:    deps.TargetRepo,
		bcryptCost: deps.BcryptCost,
	}
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// GetByID returns a user and their targets.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, []*domain.Target, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound(fmt.Sprintf("User with id %d not found", id))
		}
		return nil, nil, err
	}
	targets, err := s.targets.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, targets, nil
}

// GetByUsername returns a user and their targets by unique username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, []*domain.Target, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound(fmt.Sprintf("User with username %s not found", username))
		}
		return nil, nil, err
	}
	targets, err := s.targets.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, targets, nil
}

// Register creates a new account with the default user role. The role
// is server-assigned; clients cannot pick one.
func (s *UserService) Register(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict(fmt.Sprintf("User with email %s already exists", input.Email))
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, apperrors.NewConflict(fmt.Sprintf("User with username %s already exists", input.Username))
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	role, err := s.roles.GetByType(ctx, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		RoleID:       role.ID,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Height:       input.Height,
		Weight:       input.Weight,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies the whitelisted fields to an existing user. Lookup
// happens before anything else so an unknown id is a 404, never a
// silent no-op.
func (s *UserService) Update(ctx context.Context, id int64, input UserUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(fmt.Sprintf("User with id %d not found", id))
		}
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		if existing, err := s.users.GetByEmail(ctx, *input.Email); err == nil && existing.ID != user.ID {
			return nil, apperrors.NewConflict(fmt.Sprintf("User with email %s already exists", *input.Email))
		} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}
	if input.Username != nil && *input.Username != user.Username {
		if existing, err := s.users.GetByUsername(ctx, *input.Username); err == nil && existing.ID != user.ID {
			return nil, apperrors.NewConflict(fmt.Sprintf("User with username %s already exists", *input.Username))
		} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if input.Height != nil {
		user.Height = *input.Height
	}
	if input.Weight != nil {
		user.Weight = *input.Weight
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound(fmt.Sprintf("User with id %d not found", id))
		}
		return err
	}
	return nil
}
