package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría. Siempre se agrega al final del menú.
type CreateCategoryRequest struct {
	MenuID int64  `json:"menuId" validate:"required,gt=0"`
	Title  string `json:"title" validate:"required,max=120"`
	Active *bool  `json:"active"`
}

// CategoryPatch actualización parcial de una categoría. NewPosition reubica la categoría
// dentro de su menú (valores fuera de rango se recortan).
type CategoryPatch struct {
	Title       *string  `json:"title"`
	Active      *bool    `json:"active"`
	NewPosition *float64 `json:"newPosition"`
}

// IsEmpty indica que el patch no trae ningún campo reconocido.
func (p CategoryPatch) IsEmpty() bool {
	return p.Title == nil && p.Active == nil && p.NewPosition == nil
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        int64     `json:"id"`
	MenuID    int64     `json:"menuId"`
	Title     string    `json:"title"`
	Active    bool      `json:"active"`
	Position  int64     `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategoryListResponse categorías activas del tenant.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
}
