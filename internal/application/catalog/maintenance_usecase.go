package catalog

import (
	"context"

	"github.com/jhoicas/Menu-api/internal/application/dto"
	appordering "github.com/jhoicas/Menu-api/internal/application/ordering"
	"github.com/jhoicas/Menu-api/internal/domain"
)

// MaintenanceUseCase tareas administrativas sobre el orden de un menú. No verifica tenant:
// solo se expone a administradores y a la CLI.
type MaintenanceUseCase struct {
	repos      Repos
	tx         TxRunner
	categories *appordering.PositionService
	items      *appordering.PositionService
}

// NewMaintenanceUseCase construye el caso de uso.
func NewMaintenanceUseCase(repos Repos, tx TxRunner, categories, items *appordering.PositionService) *MaintenanceUseCase {
	return &MaintenanceUseCase{repos: repos, tx: tx, categories: categories, items: items}
}

// RebalanceMenu renumera las categorías del menú y, salvo categoriesOnly, los ítems de cada
// categoría. Todo en una transacción; un grupo ya canónico no se reescribe.
func (uc *MaintenanceUseCase) RebalanceMenu(ctx context.Context, menuID int64, categoriesOnly bool) (*dto.RebalanceSummary, error) {
	if menuID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	menu, err := uc.repos.Menus.GetByID(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, domain.ErrNotFound
	}

	summary := &dto.RebalanceSummary{MenuID: menu.ID}
	err = uc.tx.Run(ctx, func(r TxRepos) error {
		if err := uc.categories.RebalanceGroup(ctx, r.CategorySiblings, menu.ID); err != nil {
			return err
		}
		categories, err := r.Categories.ListByMenu(ctx, menu.ID, false)
		if err != nil {
			return err
		}
		summary.Categories = len(categories)
		if categoriesOnly {
			return nil
		}
		for _, c := range categories {
			if err := uc.items.RebalanceGroup(ctx, r.ItemSiblings, c.ID); err != nil {
				return err
			}
			summary.ItemGroups++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}
