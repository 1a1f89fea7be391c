package catalog

import (
	"github.com/jhoicas/Menu-api/internal/application/dto"
	"github.com/jhoicas/Menu-api/internal/domain/entity"
)

func toMenuResponse(m *entity.Menu) *dto.MenuResponse {
	out := &dto.MenuResponse{
		ID:              m.ID,
		UserID:          m.UserID,
		Title:           m.Title,
		Active:          m.Active,
		Logo:            m.Logo,
		BackgroundImage: m.BackgroundImage,
		Pos:             m.Pos,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.Color != nil {
		out.Color = &dto.MenuColorDTO{Primary: m.Color.Primary, Secondary: m.Color.Secondary}
	}
	return out
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:        c.ID,
		MenuID:    c.MenuID,
		Title:     c.Title,
		Active:    c.Active,
		Position:  c.Position,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toItemResponse(it *entity.Item, images []*entity.ItemImage) *dto.ItemResponse {
	out := &dto.ItemResponse{
		ID:          it.ID,
		CategoryID:  it.CategoryID,
		Title:       it.Title,
		Description: it.Description,
		Price:       it.Price,
		Active:      it.Active,
		Position:    it.Position,
		Images:      make([]dto.ImageResponse, 0, len(images)),
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
	for _, img := range images {
		out.Images = append(out.Images, *toImageResponse(img))
	}
	return out
}

func toImageResponse(img *entity.ItemImage) *dto.ImageResponse {
	return &dto.ImageResponse{
		ID:        img.ID,
		ItemID:    img.ItemID,
		URL:       img.URL,
		Alt:       img.Alt,
		SortOrder: img.SortOrder,
		Active:    img.Active,
	}
}

func toMenuTreeResponse(tree *entity.MenuTree) *dto.MenuTreeResponse {
	out := &dto.MenuTreeResponse{
		MenuResponse: *toMenuResponse(tree.Menu),
		Categories:   make([]dto.CategoryTreeResponse, 0, len(tree.Categories)),
	}
	for _, ct := range tree.Categories {
		c := dto.CategoryTreeResponse{
			ID:       ct.Category.ID,
			Title:    ct.Category.Title,
			Active:   ct.Category.Active,
			Position: ct.Category.Position,
			Items:    make([]dto.ItemResponse, 0, len(ct.Items)),
		}
		for _, it := range ct.Items {
			c.Items = append(c.Items, *toItemResponse(it.Item, it.Images))
		}
		out.Categories = append(out.Categories, c)
	}
	return out
}

// groupImages agrupa imágenes por ítem conservando el orden en que llegaron.
func groupImages(images []*entity.ItemImage) map[int64][]*entity.ItemImage {
	out := make(map[int64][]*entity.ItemImage)
	for _, img := range images {
		out[img.ItemID] = append(out[img.ItemID], img)
	}
	return out
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
