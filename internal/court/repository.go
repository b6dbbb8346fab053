package court

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrCourtNotFound = errors.New("court not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, courtType string, basePrice float64, isActive bool) (*Court, error) {
	query := `
		INSERT INTO courts (name, type, base_price, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, type, base_price, is_active, created_at
	`

	var c Court
	err := r.db.GetContext(ctx, &c, query, name, courtType, basePrice, isActive)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Court, error) {
	query := `
		SELECT id, name, type, base_price, is_active, created_at
		FROM courts
		ORDER BY name ASC
	`

	var courts []Court
	err := r.db.SelectContext(ctx, &courts, query)
	if err != nil {
		return nil, err
	}

	return courts, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Court, error) {
	query := `
		SELECT id, name, type, base_price, is_active, created_at
		FROM courts
		WHERE id = $1
	`

	var c Court
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCourtNotFound
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) Update(ctx context.Context, c *Court) (*Court, error) {
	query := `
		UPDATE courts
		SET name = $2, type = $3, base_price = $4, is_active = $5
		WHERE id = $1
		RETURNING id, name, type, base_price, is_active, created_at
	`

	var updated Court
	err := r.db.GetContext(ctx, &updated, query, c.ID, c.Name, c.Type, c.BasePrice, c.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCourtNotFound
	}
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM courts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrCourtNotFound
	}

	return nil
}
