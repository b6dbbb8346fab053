package pricing

import "context"

type Repository interface {
	Create(ctx context.Context, r *Rule) (*Rule, error)
	GetAll(ctx context.Context) ([]Rule, error)
	GetActive(ctx context.Context) ([]Rule, error)
	GetByID(ctx context.Context, id int64) (*Rule, error)
	Update(ctx context.Context, r *Rule) (*Rule, error)
	Delete(ctx context.Context, id int64) error
}
