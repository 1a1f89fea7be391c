package repository

import (
	"context"

	"github.com/jhoicas/Menu-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Item, error)
	// Update persiste los campos editables; nunca la posición (solo la escribe SiblingRepository).
	Update(ctx context.Context, item *entity.Item) error
	ListByCategory(ctx context.Context, categoryID int64, activeOnly bool) ([]*entity.Item, error)
	ListActiveByUser(ctx context.Context, userID int64) ([]*entity.Item, error)
	Delete(ctx context.Context, id int64) error
	DeleteByCategory(ctx context.Context, categoryID int64) error
}
