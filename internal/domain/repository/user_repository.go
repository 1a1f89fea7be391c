package repository

import (
	"context"

	"github.com/jhoicas/Menu-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindActiveBySubdomain(ctx context.Context, subdomain string) (*entity.User, error)
	SubdomainExists(ctx context.Context, subdomain string) (bool, error)
}
