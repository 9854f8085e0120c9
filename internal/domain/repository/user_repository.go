package repository

import (
	"context"

	"github.com/jhoicas/imprenta-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindCustomerByPhone(ctx context.Context, phone string) (*entity.User, error)
	CountByRole(ctx context.Context, role string) (int, error)
}
