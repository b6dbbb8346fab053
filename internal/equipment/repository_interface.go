package equipment

import "context"

type Repository interface {
	Create(ctx context.Context, equipmentType string, totalStock int, pricePerUnit float64) (*Equipment, error)
	GetAll(ctx context.Context) ([]Equipment, error)
	GetByID(ctx context.Context, id int64) (*Equipment, error)
	GetByType(ctx context.Context, equipmentType string) (*Equipment, error)
	Update(ctx context.Context, e *Equipment) (*Equipment, error)
	Delete(ctx context.Context, id int64) error
}
