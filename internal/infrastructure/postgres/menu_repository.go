package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Menu-api/internal/domain"
	"github.com/jhoicas/Menu-api/internal/domain/entity"
	"github.com/jhoicas/Menu-api/internal/domain/repository"
)

var _ repository.MenuRepository = (*MenuRepo)(nil)

const menuColumns = `id, user_id, title, active, logo, background_image, color, pos, created_at, updated_at`

// MenuRepo implementación de MenuRepository. color se guarda como JSONB.
type MenuRepo struct {
	q Querier
}

// NewMenuRepository construye el adaptador.
func NewMenuRepository(q Querier) *MenuRepo {
	return &MenuRepo{q: q}
}

func (r *MenuRepo) Create(ctx context.Context, m *entity.Menu) error {
	query := `
		INSERT INTO menus (user_id, title, active, logo, background_image, color, pos, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.UserID, m.Title, m.Active, m.Logo, m.BackgroundImage, m.Color, m.Pos, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("insert menu: %w", err)
	}
	return nil
}

func (r *MenuRepo) GetByID(ctx context.Context, id int64) (*entity.Menu, error) {
	m, err := scanMenu(r.q.QueryRow(ctx, `SELECT `+menuColumns+` FROM menus WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu: %w", err)
	}
	return m, nil
}

func (r *MenuRepo) Update(ctx context.Context, m *entity.Menu) error {
	query := `
		UPDATE menus
		SET title = $2, active = $3, logo = $4, background_image = $5, color = $6, pos = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, m.ID, m.Title, m.Active, m.Logo, m.BackgroundImage, m.Color, m.Pos, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update menu: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MenuRepo) ListActiveByUser(ctx context.Context, userID int64) ([]*entity.Menu, error) {
	rows, err := r.q.Query(ctx, `SELECT `+menuColumns+` FROM menus WHERE user_id = $1 AND active = TRUE ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	defer rows.Close()
	var list []*entity.Menu
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *MenuRepo) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE menus SET active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set menu active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMenu(row rowScanner) (*entity.Menu, error) {
	var m entity.Menu
	err := row.Scan(&m.ID, &m.UserID, &m.Title, &m.Active, &m.Logo, &m.BackgroundImage, &m.Color, &m.Pos,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
