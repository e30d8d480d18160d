package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/weight-tracker/internal/domain"
)

// Hand-rolled repository mocks; unset funcs report "no rows" so tests
// only wire what they exercise.

type mockUserRepo struct {
	CreateFunc        func(ctx context.Context, user *domain.User) error
	UpdateFunc        func(ctx context.Context, user *domain.User) error
	DeleteFunc        func(ctx context.Context, id int64) error
	GetByIDFunc       func(ctx context.Context, id int64) (*domain.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
	ListFunc          func(ctx context.Context) ([]*domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc == nil {
		return nil
	}
	return m.CreateFunc(ctx, user)
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc == nil {
		return nil
	}
	return m.UpdateFunc(ctx, user)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(ctx, id)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFunc == nil {
		return nil, pgx.ErrNoRows
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc == nil {
		return nil, pgx.ErrNoRows
	}
	return m.GetByEmailFunc(ctx, email)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFunc == nil {
		return nil, pgx.ErrNoRows
	}
	return m.GetByUsernameFunc(ctx, username)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFunc == nil {
		return nil, nil
	}
	return m.ListFunc(ctx)
}

type mockRoleRepo struct {
	CreateFunc    func(ctx context.Context, role *domain.Role) error
	UpdateFunc    func(ctx context.Context, role *domain.Role) error
	DeleteFunc    func(ctx context.Context, id int64) error
	GetByIDFunc   func(ctx context.Context, id int64) (*domain.Role, error)
	GetByTypeFunc func(ctx context.Context, roleType domain.RoleType) (*domain.Role, error)
	ListFunc      func(ctx context.Context) ([]*domain.Role, error)
}

func (m *mockRoleRepo) Create(ctx context.Context, role *domain.Role) error {
	if m.CreateFunc == nil {
		return nil
	}
	return m.CreateFunc(ctx, role)
}

func (m *mockRoleRepo) Update(ctx context.Context, role *domain.Role) error {
	if m.UpdateFunc == nil {
		return nil
	}
	return m.UpdateFunc(ctx, role)
}

func (m *mockRoleRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(ctx, id)
}

func (m *mockRoleRepo) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	if m.GetByIDFunc == nil {
		return nil, pgx.ErrNoRows
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *mockRoleRepo) GetByType(ctx context.Context, roleType domain.RoleType) (*domain.Role, error) {
	if m.GetByTypeFunc == nil {
		return nil, pgx.ErrNoRows
	}
	return m.GetByTypeFunc(ctx, roleType)
}

func (m *mockRoleRepo) List(ctx context.Context) ([]*domain.Role, error) {
	if m.ListFunc == nil {
		return nil, nil
	}
	return m.ListFunc(ctx)
}

type mockTargetRepo struct {
	CreateFunc     func(ctx context.Context, target *domain.Target) error
	UpdateFunc     func(ctx context.Context, target *domain.Target) error
	DeleteFunc     func(ctx context.Context, id int64) error
	GetByIDFunc    func(ctx context.Context, id int64) (*domain.Target, error)
	GetForUserFunc func(ctx context.Context, id, userID int64) (*domain.Target, error)
	GetByNameFunc  func(ctx context.Context, name string) (*domain.Target, error)
	ListByUserFunc func(ctx context.Context, userID int64) ([]*domain.Target, error)
	ListPublicFunc func(ctx context.Context) ([]*domain.Target, error)
}

func (m *mockTargetRepo) Create(ctx context.Context, target *domain.Target) error {
	if m.CreateFunc == nil {
		return nil
	}
	return m.CreateFunc(ctx, target)
}

func (m *mockTargetRepo) Update(ctx context.Context, target *domain.Target) error {
	if m.UpdateFunc == nil {
		return nil
	}
	return m.UpdateFunc(ctx, target)
}

func (m *mockTargetRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(ctx, id)
}

func (m *mockTargetRepo) GetByID(ctx context.Context, id int64) (*domain.Target, error) {
	if m.GetByIDFunc == nil {
		return nil, pgx.ErrNoRows
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *mockTargetRepo) GetForUser(ctx context.Context, id, userID int64) (*domain.Target, error) {
	if m.GetForUserFunc == nil {
		return nil, pgx.ErrNoRows
	}
	return m.GetForUserFunc(ctx, id, userID)
}

func (m *mockTargetRepo) GetByName(ctx context.Context, name string) (*domain.Target, error) {
	if m.GetByNameFunc == nil {
		return nil, pgx.ErrNoRows
	}
	return m.GetByNameFunc(ctx, name)
}

func (m *mockTargetRepo) ListByUser(ctx context.Context, userID int64) ([]*domain.Target, error) {
	if m.ListByUserFunc == nil {
		return nil, nil
	}
	return m.ListByUserFunc(ctx, userID)
}

func (m *mockTargetRepo) ListPublic(ctx context.Context) ([]*domain.Target, error) {
	if m.ListPublicFunc == nil {
		return nil, nil
	}
	return m.ListPublicFunc(ctx)
}

type mockMeasurementRepo struct {
	CreateFunc        func(ctx context.Context, measurement *domain.Measurement) error
	UpdateFunc        func(ctx context.Context, measurement *domain.Measurement) error
	DeleteFunc        func(ctx context.Context, id int64) error
	GetScopedFunc     func(ctx context.Context, id, targetID, userID int64) (*domain.Measurement, error)
	ListForTargetFunc func(ctx context.Context, targetID, userID int64) ([]*domain.Measurement, error)
}

func (m *mockMeasurementRepo) Create(ctx context.Context, measurement *domain.Measurement) error {
	if m.CreateFunc == nil {
		return nil
	}
	return m.CreateFunc(ctx, measurement)
}

func (m *mockMeasurementRepo) Update(ctx context.Context, measurement *domain.Measurement) error {
	if m.UpdateFunc == nil {
		return nil
	}
	return m.UpdateFunc(ctx, measurement)
}

func (m *mockMeasurementRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(ctx, id)
}

func (m *mockMeasurementRepo) GetScoped(ctx context.Context, id, targetID, userID int64) (*domain.Measurement, error) {
	if m.GetScopedFunc == nil {
		return nil, pgx.ErrNoRows
	}
	return m.GetScopedFunc(ctx, id, targetID, userID)
}

func (m *mockMeasurementRepo) ListForTarget(ctx context.Context, targetID, userID int64) ([]*domain.Measurement, error) {
	if m.ListForTargetFunc == nil {
		return nil, nil
	}
	return m.ListForTargetFunc(ctx, targetID, userID)
}
