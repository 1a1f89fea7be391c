package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Menu-api/internal/application/catalog"
)

var _ catalog.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// NewRepos repositorios sobre el pool, para lecturas y escrituras sin transacción.
func NewRepos(pool *pgxpool.Pool) catalog.Repos {
	return reposOn(pool)
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Los locks FOR UPDATE tomados por los repos de hermanos duran hasta el Commit.
func (r *TxRunner) Run(ctx context.Context, fn func(repos catalog.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := catalog.TxRepos{
		Repos:            reposOn(tx),
		CategorySiblings: NewCategorySiblings(tx),
		ItemSiblings:     NewItemSiblings(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func reposOn(q Querier) catalog.Repos {
	return catalog.Repos{
		Menus:      NewMenuRepository(q),
		Categories: NewCategoryRepository(q),
		Items:      NewItemRepository(q),
		Images:     NewItemImageRepository(q),
	}
}
