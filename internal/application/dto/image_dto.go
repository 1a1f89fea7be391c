package dto

// CreateImageRequest entrada para agregar una imagen a un ítem por URL.
// Sin SortOrder la imagen va al final de la galería.
type CreateImageRequest struct {
	URL       string  `json:"url" validate:"required,url,max=1024"`
	Alt       *string `json:"alt"`
	SortOrder *int64  `json:"sortOrder"`
	Active    *bool   `json:"active"`
}

// ImagePatch actualización parcial de una imagen.
type ImagePatch struct {
	URL       *string          `json:"url"`
	Alt       Nullable[string] `json:"alt"`
	SortOrder *int64           `json:"sortOrder"`
	Active    *bool            `json:"active"`
}

// IsEmpty indica que el patch no trae ningún campo reconocido.
func (p ImagePatch) IsEmpty() bool {
	return p.URL == nil && !p.Alt.Set && p.SortOrder == nil && p.Active == nil
}

// ImageResponse salida de una imagen.
type ImageResponse struct {
	ID        int64   `json:"id"`
	ItemID    int64   `json:"itemId"`
	URL       string  `json:"url"`
	Alt       *string `json:"alt"`
	SortOrder int64   `json:"sortOrder"`
	Active    bool    `json:"active"`
}

// ImageListResponse galería de un ítem.
type ImageListResponse struct {
	Items []ImageResponse `json:"items"`
}
