package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/weight-tracker/internal/domain"
)

// TargetRepository defines persistence access for weight targets.
type TargetRepository interface {
	Create(ctx context.Context, target *domain.Target) error
	Update(ctx context.Context, target *domain.Target) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Target, error)
	// GetForUser resolves a target scoped to its owner; a target that
	// exists under a different user is reported as not found.
	GetForUser(ctx context.Context, id, userID int64) (*domain.Target, error)
	GetByName(ctx context.Context, name string) (*domain.Target, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Target, error)
	ListPublic(ctx context.Context) ([]*domain.Target, error)
}

type targetRepository struct {
	pool *pgxpool.Pool
}

// NewTargetRepository returns a Postgres-backed implementation.
func NewTargetRepository(pool *pgxpool.Pool) TargetRepository {
	return &targetRepository{pool: pool}
}

const targetColumns = `
        id, user_id, name, target_weight, start_date, end_date, public,
        reached, closed, created_at, updated_at`

func scanTarget(row pgx.Row) (*domain.Target, error) {
	var target domain.Target
	if err := row.Scan(
		&target.ID,
		&target.UserID,
		&target.Name,
		&target.TargetWeight,
		&target.StartDate,
		&target.EndDate,
		&target.Public,
		&target.Reached,
		&target.Closed,
		&target.CreatedAt,
		&target.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &target, nil
}

func (r *targetRepository) Create(ctx context.Context, target *domain.Target) error {
	const query = `
        INSERT INTO targets (user_id, name, target_weight, start_date, end_date, public, reached, closed)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		target.UserID,
		target.Name,
		target.TargetWeight,
		target.StartDate,
		target.EndDate,
		target.Public,
		target.Reached,
		target.Closed,
	).Scan(&target.ID, &target.CreatedAt, &target.UpdatedAt)
}

func (r *targetRepository) Update(ctx context.Context, target *domain.Target) error {
	const query = `
        UPDATE targets
        SET name=$1, target_weight=$2, start_date=$3, end_date=$4, public=$5, reached=$6, closed=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		target.Name,
		target.TargetWeight,
		target.StartDate,
		target.EndDate,
		target.Public,
		target.Reached,
		target.Closed,
		target.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *targetRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM targets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *targetRepository) GetByID(ctx context.Context, id int64) (*domain.Target, error) {
	query := `SELECT` + targetColumns + ` FROM targets WHERE id=$1`
	return scanTarget(r.pool.QueryRow(ctx, query, id))
}

func (r *targetRepository) GetForUser(ctx context.Context, id, userID int64) (*domain.Target, error) {
	query := `SELECT` + targetColumns + ` FROM targets WHERE id=$1 AND user_id=$2`
	return scanTarget(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *targetRepository) GetByName(ctx context.Context, name string) (*domain.Target, error) {
	query := `SELECT` + targetColumns + ` FROM targets WHERE name=$1 ORDER BY id LIMIT 1`
	return scanTarget(r.pool.QueryRow(ctx, query, name))
}

func (r *targetRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Target, error) {
	query := `SELECT` + targetColumns + ` FROM targets WHERE user_id=$1 ORDER BY id`
	return r.list(ctx, query, userID)
}

func (r *targetRepository) ListPublic(ctx context.Context) ([]*domain.Target, error) {
	query := `SELECT` + targetColumns + ` FROM targets WHERE public ORDER BY id`
	return r.list(ctx, query)
}

func (r *targetRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Target, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	targets := make([]*domain.Target, 0)
	for rows.Next() {
		target, err := scanTarget(rows)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	return targets, rows.Err()
}
