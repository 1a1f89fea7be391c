package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/Menu-api/internal/domain"
	"github.com/jhoicas/Menu-api/internal/domain/entity"
	"github.com/jhoicas/Menu-api/internal/domain/repository"
)

var _ repository.ItemImageRepository = (*ItemImageRepo)(nil)

// ItemImageRepo implementación de ItemImageRepository.
type ItemImageRepo struct {
	q Querier
}

// NewItemImageRepository construye el adaptador.
func NewItemImageRepository(q Querier) *ItemImageRepo {
	return &ItemImageRepo{q: q}
}

func (r *ItemImageRepo) Create(ctx context.Context, img *entity.ItemImage) error {
	query := `
		INSERT INTO item_images (item_id, url, alt, sort_order, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		img.ItemID, img.URL, img.Alt, img.SortOrder, img.Active, img.CreatedAt, img.UpdatedAt,
	).Scan(&img.ID)
	if err != nil {
		return fmt.Errorf("insert item image: %w", err)
	}
	return nil
}

func (r *ItemImageRepo) GetByID(ctx context.Context, id int64) (*entity.ItemImage, error) {
	query, args, err := imagesSelect().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	img, err := scanImage(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item image: %w", err)
	}
	return img, nil
}

func (r *ItemImageRepo) Update(ctx context.Context, img *entity.ItemImage) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE item_images SET url = $2, alt = $3, sort_order = $4, active = $5, updated_at = $6
		WHERE id = $1`,
		img.ID, img.URL, img.Alt, img.SortOrder, img.Active, img.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update item image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ItemImageRepo) ListByItems(ctx context.Context, itemIDs []int64, activeOnly bool) ([]*entity.ItemImage, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	query, args, err := listImagesQuery(itemIDs, activeOnly).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list item images: %w", err)
	}
	defer rows.Close()
	var list []*entity.ItemImage
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item image: %w", err)
		}
		list = append(list, img)
	}
	return list, rows.Err()
}

func (r *ItemImageRepo) MaxSortOrder(ctx context.Context, itemID int64) (int64, bool, error) {
	var max *int64
	if err := r.q.QueryRow(ctx, `SELECT MAX(sort_order) FROM item_images WHERE item_id = $1`, itemID).Scan(&max); err != nil {
		return 0, false, fmt.Errorf("max sort order: %w", err)
	}
	if max == nil {
		return 0, false, nil
	}
	return *max, true, nil
}

func (r *ItemImageRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM item_images WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete item image: %w", err)
	}
	return nil
}

func (r *ItemImageRepo) DeleteByItem(ctx context.Context, itemID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM item_images WHERE item_id = $1`, itemID); err != nil {
		return fmt.Errorf("delete images by item: %w", err)
	}
	return nil
}

func (r *ItemImageRepo) DeleteByCategory(ctx context.Context, categoryID int64) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM item_images WHERE item_id IN (SELECT id FROM items WHERE category_id = $1)`, categoryID)
	if err != nil {
		return fmt.Errorf("delete images by category: %w", err)
	}
	return nil
}

func imagesSelect() sq.SelectBuilder {
	return psql.Select("id", "item_id", "url", "alt", "sort_order", "active", "created_at", "updated_at").
		From("item_images")
}

func listImagesQuery(itemIDs []int64, activeOnly bool) sq.SelectBuilder {
	b := imagesSelect().Where(sq.Eq{"item_id": itemIDs})
	if activeOnly {
		b = b.Where(sq.Eq{"active": true})
	}
	return b.OrderBy("sort_order ASC", "id ASC")
}

func scanImage(row rowScanner) (*entity.ItemImage, error) {
	var img entity.ItemImage
	err := row.Scan(&img.ID, &img.ItemID, &img.URL, &img.Alt, &img.SortOrder, &img.Active, &img.CreatedAt, &img.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &img, nil
}
