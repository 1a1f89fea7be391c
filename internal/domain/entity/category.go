package entity

import "time"

// Category representa una sección del menú (Entradas, Pizzas, Bebidas...).
// Position ordena la categoría dentro de su menú; solo es comparable entre hermanas.
type Category struct {
	ID        int64
	MenuID    int64
	Title     string
	Active    bool
	Position  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
