package equipment

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"courtbook/internal/db"
)

var (
	ErrEquipmentNotFound   = errors.New("equipment not found")
	ErrEquipmentTypeExists = errors.New("equipment type already exists")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, equipmentType string, totalStock int, pricePerUnit float64) (*Equipment, error) {
	// The type column is UNIQUE; check first to return a clean error instead
	// of a driver constraint violation.
	taken, err := db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM equipment WHERE type = $1)`, equipmentType)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEquipmentTypeExists
	}

	query := `
		INSERT INTO equipment (type, total_stock, price_per_unit)
		VALUES ($1, $2, $3)
		RETURNING id, type, total_stock, price_per_unit, created_at
	`

	var e Equipment
	err = r.db.GetContext(ctx, &e, query, equipmentType, totalStock, pricePerUnit)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Equipment, error) {
	query := `
		SELECT id, type, total_stock, price_per_unit, created_at
		FROM equipment
		ORDER BY type ASC
	`

	var items []Equipment
	err := r.db.SelectContext(ctx, &items, query)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Equipment, error) {
	query := `
		SELECT id, type, total_stock, price_per_unit, created_at
		FROM equipment
		WHERE id = $1
	`

	var e Equipment
	err := r.db.GetContext(ctx, &e, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEquipmentNotFound
	}
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func (r *repository) GetByType(ctx context.Context, equipmentType string) (*Equipment, error) {
	query := `
		SELECT id, type, total_stock, price_per_unit, created_at
		FROM equipment
		WHERE type = $1
	`

	var e Equipment
	err := r.db.GetContext(ctx, &e, query, equipmentType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEquipmentNotFound
	}
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func (r *repository) Update(ctx context.Context, e *Equipment) (*Equipment, error) {
	query := `
		UPDATE equipment
		SET total_stock = $2, price_per_unit = $3
		WHERE id = $1
		RETURNING id, type, total_stock, price_per_unit, created_at
	`

	var updated Equipment
	err := r.db.GetContext(ctx, &updated, query, e.ID, e.TotalStock, e.PricePerUnit)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEquipmentNotFound
	}
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrEquipmentNotFound
	}

	return nil
}
