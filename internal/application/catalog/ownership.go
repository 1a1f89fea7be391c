package catalog

import (
	"context"
	"errors"

	"github.com/jhoicas/Menu-api/internal/domain"
	"github.com/jhoicas/Menu-api/internal/domain/entity"
)

// Guardas de pertenencia al tenant. Corren antes de cualquier operación de posiciones:
// el motor de posiciones confía en que el padre ya fue validado.
//
// Las variantes xxxForUser ubican el recurso del usuario sin mirar el estado activo y
// devuelven ErrNotFound también cuando es de otro tenant. Las variantes assertXxxOwnedBy
// exigen toda la cadena activa y se usan para crear hijos debajo del recurso.

func (r Repos) menuForUser(ctx context.Context, menuID, userID int64) (*entity.Menu, error) {
	if menuID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	menu, err := r.Menus.GetByID(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if menu == nil || menu.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return menu, nil
}

func (r Repos) categoryForUser(ctx context.Context, categoryID, userID int64) (*entity.Category, *entity.Menu, error) {
	if categoryID <= 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	category, err := r.Categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, nil, err
	}
	if category == nil {
		return nil, nil, domain.ErrNotFound
	}
	menu, err := r.menuForUser(ctx, category.MenuID, userID)
	if err != nil {
		return nil, nil, err
	}
	return category, menu, nil
}

func (r Repos) itemForUser(ctx context.Context, itemID, userID int64) (*entity.Item, *entity.Category, *entity.Menu, error) {
	if itemID <= 0 {
		return nil, nil, nil, domain.ErrInvalidInput
	}
	item, err := r.Items.GetByID(ctx, itemID)
	if err != nil {
		return nil, nil, nil, err
	}
	if item == nil {
		return nil, nil, nil, domain.ErrNotFound
	}
	category, menu, err := r.categoryForUser(ctx, item.CategoryID, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	return item, category, menu, nil
}

// assertMenuOwnedBy menú activo del usuario; ErrForbidden si no existe, es ajeno o está inactivo.
func (r Repos) assertMenuOwnedBy(ctx context.Context, menuID, userID int64) (*entity.Menu, error) {
	menu, err := r.menuForUser(ctx, menuID, userID)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && !menu.Active) {
		return nil, domain.ErrForbidden
	}
	return menu, err
}

// assertCategoryOwnedBy categoría activa colgando de un menú activo del usuario.
func (r Repos) assertCategoryOwnedBy(ctx context.Context, categoryID, userID int64) (*entity.Category, error) {
	category, menu, err := r.categoryForUser(ctx, categoryID, userID)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && (!category.Active || !menu.Active)) {
		return nil, domain.ErrForbidden
	}
	return category, err
}

// assertItemOwnedBy ítem activo con toda su cadena activa; ErrNotFound si no.
func (r Repos) assertItemOwnedBy(ctx context.Context, itemID, userID int64) (*entity.Item, error) {
	item, category, menu, err := r.itemForUser(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}
	if !item.Active || !category.Active || !menu.Active {
		return nil, domain.ErrNotFound
	}
	return item, nil
}
