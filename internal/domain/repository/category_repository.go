package repository

import (
	"context"

	"github.com/jhoicas/Menu-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	// Update persiste los campos editables; nunca la posición (solo la escribe SiblingRepository).
	Update(ctx context.Context, category *entity.Category) error
	// ListByMenu lista las categorías del menú por posición; activeOnly filtra las inactivas.
	ListByMenu(ctx context.Context, menuID int64, activeOnly bool) ([]*entity.Category, error)
	// ListActiveByUser lista las categorías activas de todos los menús del usuario.
	ListActiveByUser(ctx context.Context, userID int64) ([]*entity.Category, error)
	Delete(ctx context.Context, id int64) error
}
