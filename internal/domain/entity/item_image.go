package entity

import "time"

// ItemImage imagen de un ítem. SortOrder define el orden de la galería.
type ItemImage struct {
	ID        int64
	ItemID    int64
	URL       string
	Alt       *string
	SortOrder int64
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
