package users

import "context"

type Repository interface {
	Create(ctx context.Context, u User) error
	Update(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Delete(ctx context.Context, id string) error
}
