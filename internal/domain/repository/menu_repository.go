package repository

import (
	"context"

	"github.com/jhoicas/Menu-api/internal/domain/entity"
)

// MenuRepository define el puerto de persistencia para Menu (DIP).
type MenuRepository interface {
	Create(ctx context.Context, menu *entity.Menu) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Menu, error)
	Update(ctx context.Context, menu *entity.Menu) error
	ListActiveByUser(ctx context.Context, userID int64) ([]*entity.Menu, error)
	SetActive(ctx context.Context, id int64, active bool) error
}
