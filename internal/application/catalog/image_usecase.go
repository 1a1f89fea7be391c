package catalog

import (
	"context"
	"time"

	"github.com/jhoicas/Menu-api/internal/application/dto"
	"github.com/jhoicas/Menu-api/internal/domain"
	"github.com/jhoicas/Menu-api/internal/domain/entity"
)

// ImageUseCase galería de imágenes de un ítem (por URL; la subida de archivos queda afuera).
type ImageUseCase struct {
	repos Repos
	tx    TxRunner
}

// NewImageUseCase construye el caso de uso.
func NewImageUseCase(repos Repos, tx TxRunner) *ImageUseCase {
	return &ImageUseCase{repos: repos, tx: tx}
}

// List imágenes del ítem por sort_order, id.
func (uc *ImageUseCase) List(ctx context.Context, userID, itemID int64) (*dto.ImageListResponse, error) {
	item, err := uc.repos.assertItemOwnedBy(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}
	images, err := uc.repos.Images.ListByItems(ctx, []int64{item.ID}, false)
	if err != nil {
		return nil, err
	}
	out := &dto.ImageListResponse{Items: make([]dto.ImageResponse, 0, len(images))}
	for _, img := range images {
		out.Items = append(out.Items, *toImageResponse(img))
	}
	return out, nil
}

// Add agrega una imagen. Sin sortOrder va después de la última (max+1).
func (uc *ImageUseCase) Add(ctx context.Context, userID, itemID int64, in dto.CreateImageRequest) (*dto.ImageResponse, error) {
	url, err := optionalURL("url", &in.URL)
	if err != nil {
		return nil, err
	}
	if url == nil {
		return nil, invalid("url es obligatoria")
	}
	alt, err := optionalText("alt", in.Alt, maxImageAlt)
	if err != nil {
		return nil, err
	}
	if in.SortOrder != nil && *in.SortOrder < 0 {
		return nil, invalid("sortOrder no puede ser negativo")
	}
	item, err := uc.repos.assertItemOwnedBy(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	image := &entity.ItemImage{
		ItemID:    item.ID,
		URL:       *url,
		Alt:       alt,
		Active:    boolOr(in.Active, true),
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.tx.Run(ctx, func(r TxRepos) error {
		if in.SortOrder != nil {
			image.SortOrder = *in.SortOrder
		} else {
			max, found, err := r.Images.MaxSortOrder(ctx, item.ID)
			if err != nil {
				return err
			}
			if found {
				image.SortOrder = max + 1
			}
		}
		return r.Images.Create(ctx, image)
	})
	if err != nil {
		return nil, err
	}
	return toImageResponse(image), nil
}

// Update aplica el patch sobre una imagen del tenant.
func (uc *ImageUseCase) Update(ctx context.Context, userID, imageID int64, patch dto.ImagePatch) (*dto.ImageResponse, error) {
	image, err := uc.imageForUser(ctx, imageID, userID)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return toImageResponse(image), nil
	}
	if patch.URL != nil {
		url, err := optionalURL("url", patch.URL)
		if err != nil {
			return nil, err
		}
		if url == nil {
			return nil, invalid("url no puede ser vacía")
		}
		image.URL = *url
	}
	if patch.Alt.Set {
		if image.Alt, err = optionalText("alt", patch.Alt.Value, maxImageAlt); err != nil {
			return nil, err
		}
	}
	if patch.SortOrder != nil {
		if *patch.SortOrder < 0 {
			return nil, invalid("sortOrder no puede ser negativo")
		}
		image.SortOrder = *patch.SortOrder
	}
	if patch.Active != nil {
		image.Active = *patch.Active
	}
	image.UpdatedAt = time.Now()
	if err := uc.repos.Images.Update(ctx, image); err != nil {
		return nil, err
	}
	return toImageResponse(image), nil
}

// Delete borra una imagen del tenant.
func (uc *ImageUseCase) Delete(ctx context.Context, userID, imageID int64) error {
	image, err := uc.imageForUser(ctx, imageID, userID)
	if err != nil {
		return err
	}
	return uc.repos.Images.Delete(ctx, image.ID)
}

func (uc *ImageUseCase) imageForUser(ctx context.Context, imageID, userID int64) (*entity.ItemImage, error) {
	if imageID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	image, err := uc.repos.Images.GetByID(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, domain.ErrNotFound
	}
	if _, _, _, err := uc.repos.itemForUser(ctx, image.ItemID, userID); err != nil {
		return nil, err
	}
	return image, nil
}
