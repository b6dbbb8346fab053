package coach

import "context"

type Repository interface {
	Create(ctx context.Context, name, specialization string, hourlyRate float64, isAvailable bool) (*Coach, error)
	GetAll(ctx context.Context) ([]Coach, error)
	GetByID(ctx context.Context, id int64) (*Coach, error)
	Update(ctx context.Context, c *Coach) (*Coach, error)
	Delete(ctx context.Context, id int64) error
}
