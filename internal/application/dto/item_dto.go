package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un ítem. Las imágenes se cargan aparte.
type CreateItemRequest struct {
	CategoryID  int64            `json:"categoryId" validate:"required,gt=0"`
	Title       string           `json:"title" validate:"required,max=160"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Active      *bool            `json:"active"`
}

// ItemPatch actualización parcial de un ítem. CategoryID solo se acepta si coincide con
// la categoría actual: un ítem no cambia de categoría.
type ItemPatch struct {
	CategoryID  *int64                    `json:"categoryId"`
	Title       *string                   `json:"title"`
	Description Nullable[string]          `json:"description"`
	Price       Nullable[decimal.Decimal] `json:"price"`
	Active      *bool                     `json:"active"`
	NewPosition *float64                  `json:"newPosition"`
}

// IsEmpty indica que el patch no trae ningún campo reconocido.
func (p ItemPatch) IsEmpty() bool {
	return p.CategoryID == nil && p.Title == nil && !p.Description.Set && !p.Price.Set &&
		p.Active == nil && p.NewPosition == nil
}

// ItemResponse salida de un ítem con sus imágenes.
type ItemResponse struct {
	ID          int64            `json:"id"`
	CategoryID  int64            `json:"categoryId"`
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Active      bool             `json:"active"`
	Position    int64            `json:"position"`
	Images      []ImageResponse  `json:"images"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// ItemListResponse ítems activos del tenant.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
}
