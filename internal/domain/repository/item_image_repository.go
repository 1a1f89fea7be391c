package repository

import (
	"context"

	"github.com/jhoicas/Menu-api/internal/domain/entity"
)

// ItemImageRepository define el puerto de persistencia para ItemImage (DIP).
type ItemImageRepository interface {
	Create(ctx context.Context, image *entity.ItemImage) error
	GetByID(ctx context.Context, id int64) (*entity.ItemImage, error)
	Update(ctx context.Context, image *entity.ItemImage) error
	// ListByItems devuelve las imágenes de varios ítems ordenadas por sort_order, id.
	ListByItems(ctx context.Context, itemIDs []int64, activeOnly bool) ([]*entity.ItemImage, error)
	MaxSortOrder(ctx context.Context, itemID int64) (max int64, found bool, err error)
	Delete(ctx context.Context, id int64) error
	DeleteByItem(ctx context.Context, itemID int64) error
	DeleteByCategory(ctx context.Context, categoryID int64) error
}
