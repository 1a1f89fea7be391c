package entity

import "time"

// MenuColor colores de marca del menú en HEX "#RRGGBB".
type MenuColor struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// Menu representa la carta digital de un tenant. Es el padre del grupo de categorías.
type Menu struct {
	ID              int64
	UserID          int64
	Title           string
	Active          bool
	Logo            *string
	BackgroundImage *string
	Color           *MenuColor
	Pos             *string // nombre o descripción de los puntos de venta
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// MenuTree menú con su jerarquía completa, ordenada por posición.
type MenuTree struct {
	Menu       *Menu
	Categories []*CategoryTree
}

// CategoryTree categoría con sus ítems ordenados.
type CategoryTree struct {
	Category *Category
	Items    []*ItemWithImages
}

// ItemWithImages ítem con sus imágenes ordenadas por sort_order.
type ItemWithImages struct {
	Item   *Item
	Images []*ItemImage
}
