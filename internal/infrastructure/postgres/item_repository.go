package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Menu-api/internal/domain"
	"github.com/jhoicas/Menu-api/internal/domain/entity"
	"github.com/jhoicas/Menu-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `i.id, i.category_id, i.title, i.description, i.price, i.active, i.position, i.created_at, i.updated_at`

// ItemRepo implementación de ItemRepository. price es NUMERIC(10,2) mapeado a decimal.Decimal.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	query := `
		INSERT INTO items (category_id, title, description, price, active, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		it.CategoryID, it.Title, it.Description, it.Price, it.Active, it.Position, it.CreatedAt, it.UpdatedAt,
	).Scan(&it.ID)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items i WHERE i.id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// Update escribe los campos editables. La posición solo cambia por SiblingRepo.UpdatePosition.
func (r *ItemRepo) Update(ctx context.Context, it *entity.Item) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE items SET title = $2, description = $3, price = $4, active = $5, updated_at = $6
		WHERE id = $1`,
		it.ID, it.Title, it.Description, it.Price, it.Active, it.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ItemRepo) ListByCategory(ctx context.Context, categoryID int64, activeOnly bool) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items i WHERE i.category_id = $1`
	if activeOnly {
		query += ` AND i.active = TRUE`
	}
	query += ` ORDER BY i.position, i.id`
	return r.list(ctx, query, categoryID)
}

// ListActiveByUser ítems activos bajo categorías y menús activos del usuario.
func (r *ItemRepo) ListActiveByUser(ctx context.Context, userID int64) ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items i
		JOIN categories c ON c.id = i.category_id
		JOIN menus m ON m.id = c.menu_id
		WHERE m.user_id = $1 AND m.active = TRUE AND i.active = TRUE
		ORDER BY i.position, i.id`
	return r.list(ctx, query, userID)
}

func (r *ItemRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (r *ItemRepo) DeleteByCategory(ctx context.Context, categoryID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM items WHERE category_id = $1`, categoryID); err != nil {
		return fmt.Errorf("delete items by category: %w", err)
	}
	return nil
}

func (r *ItemRepo) list(ctx context.Context, query string, arg int64) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func scanItem(row rowScanner) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(&it.ID, &it.CategoryID, &it.Title, &it.Description, &it.Price, &it.Active, &it.Position,
		&it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}
