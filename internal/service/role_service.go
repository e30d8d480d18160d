package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/weight-tracker/internal/domain"
	"github.com/spec-kit/weight-tracker/internal/repository"
	apperrors "github.com/spec-kit/weight-tracker/pkg/util"
)

// RoleService coordinates role management. All callers are expected to
// have passed the admin-only gate already.
type RoleService struct {
	roles repository.RoleRepository
}

// NewRoleService constructs the service.
func NewRoleService(roles repository.RoleRepository) *RoleService {
	return &RoleService{roles: roles}
}

// List returns all roles.
func (s *RoleService) List(ctx context.Context) ([]*domain.Role, error) {
	return s.roles.List(ctx)
}

// GetByID returns one role.
func (s *RoleService) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(fmt.Sprintf("Role with id %d not found", id))
		}
		return nil, err
	}
	return role, nil
}

// GetByType returns one role by its type name.
func (s *RoleService) GetByType(ctx context.Context, roleType domain.RoleType) (*domain.Role, error) {
	role, err := s.roles.GetByType(ctx, roleType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(fmt.Sprintf("Role with role type %s not found", roleType))
		}
		return nil, err
	}
	return role, nil
}

// Create adds a role; duplicate types are a conflict.
func (s *RoleService) Create(ctx context.Context, roleType domain.RoleType) (*domain.Role, error) {
	if !roleType.Valid() {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("Unknown role type %s", roleType))
	}
	if _, err := s.roles.GetByType(ctx, roleType); err == nil {
		return nil, apperrors.NewConflict(fmt.Sprintf("Role with role type %s already exists", roleType))
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	role := &domain.Role{RoleType: roleType}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Update changes a role's type. The type is the only updatable field.
func (s *RoleService) Update(ctx context.Context, id int64, roleType domain.RoleType) (*domain.Role, error) {
	if !roleType.Valid() {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("Unknown role type %s", roleType))
	}
	role, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing, err := s.roles.GetByType(ctx, roleType); err == nil && existing.ID != id {
		return nil, apperrors.NewConflict(fmt.Sprintf("Role with role type %s already exists", roleType))
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	role.RoleType = roleType
	if err := s.roles.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Delete removes a role.
func (s *RoleService) Delete(ctx context.Context, id int64) (*domain.Role, error) {
	role, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.roles.Delete(ctx, id); err != nil {
		return nil, err
	}
	return role, nil
}
