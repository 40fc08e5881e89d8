package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/akazantsev/pricewatch/internal/domain/entity"
	"github.com/akazantsev/pricewatch/internal/domain/repository"
)

var _ repository.PriceListRepository = (*PriceListRepo)(nil)

const priceListColumns = `id, COALESCE(store_id, 0), COALESCE(product_id, 0), current_price`

// PriceListRepo implements the PriceListRepository port over PostgreSQL.
type PriceListRepo struct {
	q Querier
}

// NewPriceListRepository builds the adapter. Pass a pool or a tx (Querier).
func NewPriceListRepository(q Querier) *PriceListRepo {
	return &PriceListRepo{q: q}
}

func (r *PriceListRepo) Create(pl *entity.PriceList) error {
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO price_lists (store_id, product_id, current_price)
		 VALUES (NULLIF($1, 0), NULLIF($2, 0), $3) RETURNING id`,
		pl.StoreID, pl.ProductID, pl.CurrentPrice,
	).Scan(&pl.ID)
	if err != nil {
		return fmt.Errorf("insert price list: %w", err)
	}
	return nil
}

func (r *PriceListRepo) GetByID(id int64) (*entity.PriceList, error) {
	var pl entity.PriceList
	err := r.q.QueryRow(context.Background(),
		`SELECT `+priceListColumns+` FROM price_lists WHERE id = $1`, id,
	).Scan(&pl.ID, &pl.StoreID, &pl.ProductID, &pl.CurrentPrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get price list: %w", err)
	}
	return &pl, nil
}

func (r *PriceListRepo) ExistsByID(id int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM price_lists WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("price list exists: %w", err)
	}
	return exists, nil
}

func (r *PriceListRepo) ListAll() ([]*entity.PriceList, error) {
	return r.list(`SELECT ` + priceListColumns + ` FROM price_lists ORDER BY id ASC`)
}

func (r *PriceListRepo) ListByProducts(productIDs []int64) ([]*entity.PriceList, error) {
	return r.list(
		`SELECT `+priceListColumns+` FROM price_lists WHERE product_id = ANY($1) ORDER BY id ASC`,
		productIDs)
}

func (r *PriceListRepo) ListByProductsAndStores(productIDs, storeIDs []int64) ([]*entity.PriceList, error) {
	return r.list(
		`SELECT `+priceListColumns+` FROM price_lists
		 WHERE product_id = ANY($1) AND store_id = ANY($2) ORDER BY id ASC`,
		productIDs, storeIDs)
}

func (r *PriceListRepo) Update(pl *entity.PriceList) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE price_lists SET store_id = NULLIF($2, 0), product_id = NULLIF($3, 0),
			current_price = $4
		 WHERE id = $1`,
		pl.ID, pl.StoreID, pl.ProductID, pl.CurrentPrice,
	)
	if err != nil {
		return fmt.Errorf("update price list: %w", err)
	}
	return nil
}

func (r *PriceListRepo) UpdateCurrentPrice(id int64, price decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE price_lists SET current_price = $2 WHERE id = $1`, id, price)
	if err != nil {
		return fmt.Errorf("update current price: %w", err)
	}
	return nil
}

func (r *PriceListRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM price_lists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete price list: %w", err)
	}
	return nil
}

func (r *PriceListRepo) list(query string, args ...any) ([]*entity.PriceList, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list price lists: %w", err)
	}
	defer rows.Close()
	var list []*entity.PriceList
	for rows.Next() {
		var pl entity.PriceList
		if err := rows.Scan(&pl.ID, &pl.StoreID, &pl.ProductID, &pl.CurrentPrice); err != nil {
			return nil, fmt.Errorf("scan price list: %w", err)
		}
		list = append(list, &pl)
	}
	return list, rows.Err()
}
