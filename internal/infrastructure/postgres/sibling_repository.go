package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/Menu-api/internal/domain"
	"github.com/jhoicas/Menu-api/internal/domain/ordering"
	"github.com/jhoicas/Menu-api/internal/domain/repository"
)

var _ repository.SiblingRepository = (*SiblingRepo)(nil)

// siblingGroup tabla de hermanos, tabla padre y columna que los agrupa.
type siblingGroup struct {
	table        string
	parentTable  string
	parentColumn string
}

var (
	categoryGroup = siblingGroup{table: "categories", parentTable: "menus", parentColumn: "menu_id"}
	itemGroup     = siblingGroup{table: "items", parentTable: "categories", parentColumn: "category_id"}
)

// SiblingRepo adaptador genérico de SiblingRepository. El mismo código sirve para categorías de
// un menú y para ítems de una categoría; solo cambian las tablas.
type SiblingRepo struct {
	q     Querier
	group siblingGroup
}

// NewCategorySiblings grupo de categorías por menú.
func NewCategorySiblings(q Querier) *SiblingRepo {
	return &SiblingRepo{q: q, group: categoryGroup}
}

// NewItemSiblings grupo de ítems por categoría.
func NewItemSiblings(q Querier) *SiblingRepo {
	return &SiblingRepo{q: q, group: itemGroup}
}

// LockGroup toma FOR UPDATE sobre la fila del padre: serializa altas y movimientos del grupo
// aunque esté vacío.
func (r *SiblingRepo) LockGroup(ctx context.Context, parentID int64) error {
	query, args, err := r.lockQuery(parentID).ToSql()
	if err != nil {
		return err
	}
	var id int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if noRows(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock %s %d: %w", r.group.parentTable, parentID, err)
	}
	return nil
}

func (r *SiblingRepo) MaxPosition(ctx context.Context, parentID int64) (int64, bool, error) {
	query, args, err := psql.Select("MAX(position)").
		From(r.group.table).
		Where(sq.Eq{r.group.parentColumn: parentID}).
		ToSql()
	if err != nil {
		return 0, false, err
	}
	var max *int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&max); err != nil {
		return 0, false, fmt.Errorf("max position %s: %w", r.group.table, err)
	}
	if max == nil {
		return 0, false, nil
	}
	return *max, true, nil
}

func (r *SiblingRepo) FindNeighbors(ctx context.Context, parentID, target, excludeID int64, lock bool) (ordering.Neighbors, error) {
	var nb ordering.Neighbors
	prev, err := r.neighbor(ctx, r.neighborQuery(parentID, target, excludeID, true, lock))
	if err != nil {
		return nb, err
	}
	next, err := r.neighbor(ctx, r.neighborQuery(parentID, target, excludeID, false, lock))
	if err != nil {
		return nb, err
	}
	nb.Previous, nb.Next = prev, next
	return nb, nil
}

func (r *SiblingRepo) neighbor(ctx context.Context, b sq.SelectBuilder) (*ordering.Sibling, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	var s ordering.Sibling
	if err := r.q.QueryRow(ctx, query, args...).Scan(&s.ID, &s.Position); err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("neighbor %s: %w", r.group.table, err)
	}
	return &s, nil
}

func (r *SiblingRepo) ListOrdered(ctx context.Context, parentID int64, lock bool) ([]ordering.Sibling, error) {
	b := psql.Select("id", "position").
		From(r.group.table).
		Where(sq.Eq{r.group.parentColumn: parentID}).
		OrderBy("position ASC", "id ASC")
	if lock {
		b = b.Suffix("FOR UPDATE")
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.group.table, err)
	}
	defer rows.Close()
	var out []ordering.Sibling
	for rows.Next() {
		var s ordering.Sibling
		if err := rows.Scan(&s.ID, &s.Position); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.group.table, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SiblingRepo) UpdatePosition(ctx context.Context, id, position int64) error {
	query, args, err := psql.Update(r.group.table).
		Set("position", position).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update position %s %d: %w", r.group.table, id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SiblingRepo) lockQuery(parentID int64) sq.SelectBuilder {
	return psql.Select("id").
		From(r.group.parentTable).
		Where(sq.Eq{"id": parentID}).
		Suffix("FOR UPDATE")
}

// neighborQuery anterior: mayor posición <= target; siguiente: menor posición > target.
func (r *SiblingRepo) neighborQuery(parentID, target, excludeID int64, previous, lock bool) sq.SelectBuilder {
	b := psql.Select("id", "position").
		From(r.group.table).
		Where(sq.Eq{r.group.parentColumn: parentID})
	if previous {
		b = b.Where(sq.LtOrEq{"position": target}).OrderBy("position DESC", "id DESC")
	} else {
		b = b.Where(sq.Gt{"position": target}).OrderBy("position ASC", "id ASC")
	}
	if excludeID > 0 {
		b = b.Where(sq.NotEq{"id": excludeID})
	}
	b = b.Limit(1)
	if lock {
		b = b.Suffix("FOR UPDATE")
	}
	return b
}
