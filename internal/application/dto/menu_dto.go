package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// MenuColorDTO colores HEX #RRGGBB.
type MenuColorDTO struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// CreateMenuRequest entrada para crear un menú.
type CreateMenuRequest struct {
	Title           string        `json:"title" validate:"required,max=120"`
	Active          *bool         `json:"active"`
	Logo            *string       `json:"logo"`
	BackgroundImage *string       `json:"backgroundImage"`
	Color           *MenuColorDTO `json:"color"`
	Pos             *string       `json:"pos"`
}

// MenuPatch actualización parcial de un menú. Solo se aplican los campos presentes;
// los Nullable aceptan null para limpiar el valor.
type MenuPatch struct {
	Title           *string                `json:"title"`
	Active          *bool                  `json:"active"`
	Logo            Nullable[string]       `json:"logo"`
	BackgroundImage Nullable[string]       `json:"backgroundImage"`
	Color           Nullable[MenuColorDTO] `json:"color"`
	Pos             Nullable[string]       `json:"pos"`
}

// IsEmpty indica que el patch no trae ningún campo reconocido.
func (p MenuPatch) IsEmpty() bool {
	return p.Title == nil && p.Active == nil && !p.Logo.Set && !p.BackgroundImage.Set &&
		!p.Color.Set && !p.Pos.Set
}

// MenuResponse salida de un menú sin jerarquía.
type MenuResponse struct {
	ID              int64         `json:"id"`
	UserID          int64         `json:"userId"`
	Title           string        `json:"title"`
	Active          bool          `json:"active"`
	Logo            *string       `json:"logo"`
	BackgroundImage *string       `json:"backgroundImage"`
	Color           *MenuColorDTO `json:"color"`
	Pos             *string       `json:"pos"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// MenuListResponse menús activos del tenant.
type MenuListResponse struct {
	Items []MenuResponse `json:"items"`
}

// MenuTreeResponse menú con categorías, ítems e imágenes ordenados.
type MenuTreeResponse struct {
	MenuResponse
	Categories []CategoryTreeResponse `json:"categories"`
}

// CategoryTreeResponse categoría dentro del árbol del menú.
type CategoryTreeResponse struct {
	ID       int64          `json:"id"`
	Title    string         `json:"title"`
	Active   bool           `json:"active"`
	Position int64          `json:"position"`
	Items    []ItemResponse `json:"items"`
}

// QRRequest parámetros de generación del QR del menú público. Vacíos = png de 512px.
type QRRequest struct {
	Format string
	Size   *int
}

// QRJSONResponse respuesta cuando el proveedor devuelve JSON en lugar de la imagen.
type QRJSONResponse struct {
	TargetURL        string          `json:"targetUrl"`
	ProviderResponse json.RawMessage `json:"providerResponse"`
}

// PrintableMenu datos que necesita el generador del PDF imprimible.
type PrintableMenu struct {
	Title      string
	PublicURL  string
	Categories []PrintableCategory
}

// PrintableCategory sección del PDF.
type PrintableCategory struct {
	Title string
	Items []PrintableItem
}

// PrintableItem línea del PDF.
type PrintableItem struct {
	Title       string
	Description string
	Price       *decimal.Decimal
}
