package user

import "context"

type Repository interface {
	Create(ctx context.Context, name, email, phone string) (*User, error)
	GetAll(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}
