package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/weight-tracker/internal/domain"
)

// MeasurementRepository defines persistence access for weigh-ins.
// Scoped lookups walk the measurement -> target -> user chain so a
// caller can never reach a measurement through someone else's target.
type MeasurementRepository interface {
	Create(ctx context.Context, measurement *domain.Measurement) error
	Update(ctx context.Context, measurement *domain.Measurement) error
	Delete(ctx context.Context, id int64) error
	GetScoped(ctx context.Context, id, targetID, userID int64) (*domain.Measurement, error)
	ListForTarget(ctx context.Context, targetID, userID int64) ([]*domain.Measurement, error)
}

type measurementRepository struct {
	pool *pgxpool.Pool
}

// NewMeasurementRepository returns a Postgres-backed implementation.
func NewMeasurementRepository(pool *pgxpool.Pool) MeasurementRepository {
	return &measurementRepository{pool: pool}
}

const measurementColumns = `
        m.id, m.target_id, m.weight, m.measurement_date, m.created_at, m.updated_at`

func scanMeasurement(row pgx.Row) (*domain.Measurement, error) {
	var m domain.Measurement
	if err := row.Scan(
		&m.ID,
		&m.TargetID,
		&m.Weight,
		&m.MeasurementDate,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *measurementRepository) Create(ctx context.Context, measurement *domain.Measurement) error {
	const query = `
        INSERT INTO measurements (target_id, weight, measurement_date)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		measurement.TargetID,
		measurement.Weight,
		measurement.MeasurementDate,
	).Scan(&measurement.ID, &measurement.CreatedAt, &measurement.UpdatedAt)
}

func (r *measurementRepository) Update(ctx context.Context, measurement *domain.Measurement) error {
	const query = `
        UPDATE measurements SET weight=$1, measurement_date=$2, updated_at=NOW()
        WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query,
		measurement.Weight,
		measurement.MeasurementDate,
		measurement.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *measurementRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM measurements WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *measurementRepository) GetScoped(ctx context.Context, id, targetID, userID int64) (*domain.Measurement, error) {
	query := `SELECT` + measurementColumns + `
        FROM measurements m
        JOIN targets t ON t.id = m.target_id
        WHERE m.id=$1 AND t.id=$2 AND t.user_id=$3`
	return scanMeasurement(r.pool.QueryRow(ctx, query, id, targetID, userID))
}

func (r *measurementRepository) ListForTarget(ctx context.Context, targetID, userID int64) ([]*domain.Measurement, error) {
	query := `SELECT` + measurementColumns + `
        FROM measurements m
        JOIN targets t ON t.id = m.target_id
        WHERE t.id=$1 AND t.user_id=$2
        ORDER BY m.measurement_date, m.id`

	rows, err := r.pool.Query(ctx, query, targetID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	measurements := make([]*domain.Measurement, 0)
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			return nil, err
		}
		measurements = append(measurements, m)
	}
	return measurements, rows.Err()
}
