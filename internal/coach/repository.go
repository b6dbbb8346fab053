package coach

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrCoachNotFound = errors.New("coach not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, specialization string, hourlyRate float64, isAvailable bool) (*Coach, error) {
	query := `
		INSERT INTO coaches (name, specialization, hourly_rate, is_available)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, specialization, hourly_rate, is_available, created_at
	`

	var c Coach
	err := r.db.GetContext(ctx, &c, query, name, specialization, hourlyRate, isAvailable)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Coach, error) {
	query := `
		SELECT id, name, specialization, hourly_rate, is_available, created_at
		FROM coaches
		ORDER BY name ASC
	`

	var coaches []Coach
	err := r.db.SelectContext(ctx, &coaches, query)
	if err != nil {
		return nil, err
	}

	return coaches, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Coach, error) {
	query := `
		SELECT id, name, specialization, hourly_rate, is_available, created_at
		FROM coaches
		WHERE id = $1
	`

	var c Coach
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCoachNotFound
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) Update(ctx context.Context, c *Coach) (*Coach, error) {
	query := `
		UPDATE coaches
		SET name = $2, specialization = $3, hourly_rate = $4, is_available = $5
		WHERE id = $1
		RETURNING id, name, specialization, hourly_rate, is_available, created_at
	`

	var updated Coach
	err := r.db.GetContext(ctx, &updated, query, c.ID, c.Name, c.Specialization, c.HourlyRate, c.IsAvailable)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCoachNotFound
	}
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM coaches WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrCoachNotFound
	}

	return nil
}
