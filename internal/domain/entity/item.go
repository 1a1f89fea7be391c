package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un plato o producto dentro de una categoría.
type Item struct {
	ID          int64
	CategoryID  int64
	Title       string
	Description *string
	Price       *decimal.Decimal // DECIMAL(10,2); nil = sin precio publicado
	Active      bool
	Position    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
