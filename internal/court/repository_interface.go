package court

import "context"

type Repository interface {
	Create(ctx context.Context, name, courtType string, basePrice float64, isActive bool) (*Court, error)
	GetAll(ctx context.Context) ([]Court, error)
	GetByID(ctx context.Context, id int64) (*Court, error)
	Update(ctx context.Context, c *Court) (*Court, error)
	Delete(ctx context.Context, id int64) error
}
