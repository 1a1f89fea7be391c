package catalog

import (
	"context"
	"time"

	"github.com/jhoicas/Menu-api/internal/application/dto"
	appordering "github.com/jhoicas/Menu-api/internal/application/ordering"
	"github.com/jhoicas/Menu-api/internal/domain"
	"github.com/jhoicas/Menu-api/internal/domain/entity"
)

// CategoryUseCase casos de uso de categorías. Las posiciones las asigna el motor de
// posiciones dentro de la transacción de cada operación.
type CategoryUseCase struct {
	repos     Repos
	tx        TxRunner
	positions *appordering.PositionService
}

// NewCategoryUseCase construye el caso de uso. positions debe ser el servicio del grupo "categories".
func NewCategoryUseCase(repos Repos, tx TxRunner, positions *appordering.PositionService) *CategoryUseCase {
	return &CategoryUseCase{repos: repos, tx: tx, positions: positions}
}

// List categorías activas de todos los menús del tenant, por posición.
func (uc *CategoryUseCase) List(ctx context.Context, userID int64) (*dto.CategoryListResponse, error) {
	list, err := uc.repos.Categories.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &dto.CategoryListResponse{Items: make([]dto.CategoryResponse, 0, len(list))}
	for _, c := range list {
		out.Items = append(out.Items, *toCategoryResponse(c))
	}
	return out, nil
}

// Get categoría activa del tenant.
func (uc *CategoryUseCase) Get(ctx context.Context, userID, categoryID int64) (*dto.CategoryResponse, error) {
	category, _, err := uc.repos.categoryForUser(ctx, categoryID, userID)
	if err != nil {
		return nil, err
	}
	if !category.Active {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(category), nil
}

// Create agrega la categoría al final de su menú.
func (uc *CategoryUseCase) Create(ctx context.Context, userID int64, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	title, err := requiredText("title", in.Title, maxCategoryTitle)
	if err != nil {
		return nil, err
	}
	if in.MenuID <= 0 {
		return nil, invalid("menuId es obligatorio")
	}
	if _, err := uc.repos.assertMenuOwnedBy(ctx, in.MenuID, userID); err != nil {
		return nil, err
	}

	now := time.Now()
	category := &entity.Category{
		MenuID:    in.MenuID,
		Title:     title,
		Active:    boolOr(in.Active, true),
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.tx.Run(ctx, func(r TxRepos) error {
		pos, err := uc.positions.AssignInitialPosition(ctx, r.CategorySiblings, category.MenuID)
		if err != nil {
			return err
		}
		category.Position = pos
		return r.Categories.Create(ctx, category)
	})
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Update aplica el patch. NewPosition reubica la categoría entre sus hermanas del mismo
// menú, rebalanceando el grupo si hace falta, todo en una transacción.
func (uc *CategoryUseCase) Update(ctx context.Context, userID, categoryID int64, patch dto.CategoryPatch) (*dto.CategoryResponse, error) {
	category, _, err := uc.repos.categoryForUser(ctx, categoryID, userID)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return toCategoryResponse(category), nil
	}
	if patch.Title != nil {
		if category.Title, err = requiredText("title", *patch.Title, maxCategoryTitle); err != nil {
			return nil, err
		}
	}
	if patch.Active != nil {
		category.Active = *patch.Active
	}
	category.UpdatedAt = time.Now()

	err = uc.tx.Run(ctx, func(r TxRepos) error {
		if patch.NewPosition != nil {
			pos, err := uc.positions.ResolvePositionWithGaps(ctx, r.CategorySiblings, category.MenuID, *patch.NewPosition, category.ID)
			if err != nil {
				return err
			}
			if err := r.CategorySiblings.UpdatePosition(ctx, category.ID, pos); err != nil {
				return err
			}
			category.Position = pos
		}
		if patch.Title == nil && patch.Active == nil {
			return nil
		}
		return r.Categories.Update(ctx, category)
	})
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Delete borra la categoría con sus ítems e imágenes. Las hermanas no se renumeran.
func (uc *CategoryUseCase) Delete(ctx context.Context, userID, categoryID int64) error {
	category, _, err := uc.repos.categoryForUser(ctx, categoryID, userID)
	if err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r TxRepos) error {
		if err := r.Images.DeleteByCategory(ctx, category.ID); err != nil {
			return err
		}
		if err := r.Items.DeleteByCategory(ctx, category.ID); err != nil {
			return err
		}
		return r.Categories.Delete(ctx, category.ID)
	})
}
