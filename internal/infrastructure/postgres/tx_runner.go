package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akazantsev/pricewatch/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside one PostgreSQL transaction with every
// repository bound to it.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner on the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, executes fn with tx-bound repositories, and
// commits. Everything rolls back when fn fails.
func (r *TxRunner) Run(ctx context.Context, fn func(tx ports.RepoSet) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := ports.RepoSet{
		Categories:    NewCategoryRepository(tx),
		Subcategories: NewSubcategoryRepository(tx),
		Products:      NewProductRepository(tx),
		PriceLists:    NewPriceListRepository(tx),
		Prices:        NewPriceRepository(tx),
		Stores:        NewStoreRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
