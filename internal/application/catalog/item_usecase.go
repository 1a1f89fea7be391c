package catalog

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Menu-api/internal/application/dto"
	appordering "github.com/jhoicas/Menu-api/internal/application/ordering"
	"github.com/jhoicas/Menu-api/internal/domain"
	"github.com/jhoicas/Menu-api/internal/domain/entity"
)

// ItemUseCase casos de uso de ítems.
type ItemUseCase struct {
	repos     Repos
	tx        TxRunner
	positions *appordering.PositionService
}

// NewItemUseCase construye el caso de uso. positions debe ser el servicio del grupo "items".
func NewItemUseCase(repos Repos, tx TxRunner, positions *appordering.PositionService) *ItemUseCase {
	return &ItemUseCase{repos: repos, tx: tx, positions: positions}
}

// List ítems activos de menús activos del tenant, con sus imágenes.
func (uc *ItemUseCase) List(ctx context.Context, userID int64) (*dto.ItemListResponse, error) {
	items, err := uc.repos.Items.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &dto.ItemListResponse{Items: make([]dto.ItemResponse, 0, len(items))}
	if len(items) == 0 {
		return out, nil
	}
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	images, err := uc.repos.Images.ListByItems(ctx, ids, false)
	if err != nil {
		return nil, err
	}
	byItem := groupImages(images)
	for _, it := range items {
		out.Items = append(out.Items, *toItemResponse(it, byItem[it.ID]))
	}
	return out, nil
}

// Get ítem activo del tenant con sus imágenes.
func (uc *ItemUseCase) Get(ctx context.Context, userID, itemID int64) (*dto.ItemResponse, error) {
	item, err := uc.repos.assertItemOwnedBy(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}
	return uc.withImages(ctx, item)
}

// Create agrega el ítem al final de su categoría.
func (uc *ItemUseCase) Create(ctx context.Context, userID int64, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	title, err := requiredText("title", in.Title, maxItemTitle)
	if err != nil {
		return nil, err
	}
	if in.CategoryID <= 0 {
		return nil, invalid("categoryId es obligatorio")
	}
	description, err := optionalText("description", in.Description, maxItemDescription)
	if err != nil {
		return nil, err
	}
	price, err := validPrice(in.Price)
	if err != nil {
		return nil, err
	}
	if _, err := uc.repos.assertCategoryOwnedBy(ctx, in.CategoryID, userID); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &entity.Item{
		CategoryID:  in.CategoryID,
		Title:       title,
		Description: description,
		Price:       price,
		Active:      boolOr(in.Active, true),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.tx.Run(ctx, func(r TxRepos) error {
		pos, err := uc.positions.AssignInitialPosition(ctx, r.ItemSiblings, item.CategoryID)
		if err != nil {
			return err
		}
		item.Position = pos
		return r.Items.Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(item, nil), nil
}

// Update aplica el patch. Un ítem no cambia de categoría: CategoryID distinto de la
// actual devuelve ErrCategoryMove.
func (uc *ItemUseCase) Update(ctx context.Context, userID, itemID int64, patch dto.ItemPatch) (*dto.ItemResponse, error) {
	item, _, _, err := uc.repos.itemForUser(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}
	if patch.CategoryID != nil && *patch.CategoryID != item.CategoryID {
		return nil, domain.ErrCategoryMove
	}
	if patch.IsEmpty() {
		return uc.withImages(ctx, item)
	}

	fields := false
	if patch.Title != nil {
		if item.Title, err = requiredText("title", *patch.Title, maxItemTitle); err != nil {
			return nil, err
		}
		fields = true
	}
	if patch.Description.Set {
		if item.Description, err = optionalText("description", patch.Description.Value, maxItemDescription); err != nil {
			return nil, err
		}
		fields = true
	}
	if patch.Price.Set {
		if item.Price, err = validPrice(patch.Price.Value); err != nil {
			return nil, err
		}
		fields = true
	}
	if patch.Active != nil {
		item.Active = *patch.Active
		fields = true
	}
	item.UpdatedAt = time.Now()

	err = uc.tx.Run(ctx, func(r TxRepos) error {
		if patch.NewPosition != nil {
			pos, err := uc.positions.ResolvePositionWithGaps(ctx, r.ItemSiblings, item.CategoryID, *patch.NewPosition, item.ID)
			if err != nil {
				return err
			}
			if err := r.ItemSiblings.UpdatePosition(ctx, item.ID, pos); err != nil {
				return err
			}
			item.Position = pos
		}
		if !fields {
			return nil
		}
		return r.Items.Update(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return uc.withImages(ctx, item)
}

// Delete borra el ítem y sus imágenes. Los hermanos no se renumeran.
func (uc *ItemUseCase) Delete(ctx context.Context, userID, itemID int64) error {
	item, _, _, err := uc.repos.itemForUser(ctx, itemID, userID)
	if err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r TxRepos) error {
		if err := r.Images.DeleteByItem(ctx, item.ID); err != nil {
			return err
		}
		return r.Items.Delete(ctx, item.ID)
	})
}

func (uc *ItemUseCase) withImages(ctx context.Context, item *entity.Item) (*dto.ItemResponse, error) {
	images, err := uc.repos.Images.ListByItems(ctx, []int64{item.ID}, false)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item, images), nil
}

// validPrice precio no negativo redondeado a 2 decimales (DECIMAL(10,2)).
func validPrice(p *decimal.Decimal) (*decimal.Decimal, error) {
	if p == nil {
		return nil, nil
	}
	if p.IsNegative() {
		return nil, invalid("price no puede ser negativo")
	}
	v := p.Round(2)
	if v.GreaterThanOrEqual(maxPrice) {
		return nil, invalid("price fuera de rango")
	}
	return &v, nil
}

var maxPrice = decimal.New(1, 8) // DECIMAL(10,2) admite hasta 99999999.99
