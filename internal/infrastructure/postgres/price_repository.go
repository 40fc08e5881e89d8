package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/akazantsev/pricewatch/internal/domain/entity"
	"github.com/akazantsev/pricewatch/internal/domain/repository"
)

var _ repository.PriceRepository = (*PriceRepo)(nil)

// PriceRepo implements the PriceRepository port over PostgreSQL.
type PriceRepo struct {
	q Querier
}

// NewPriceRepository builds the adapter. Pass a pool or a tx (Querier).
func NewPriceRepository(q Querier) *PriceRepo {
	return &PriceRepo{q: q}
}

func (r *PriceRepo) Create(p *entity.Price) error {
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO prices (price_list_id, price, date) VALUES ($1, $2, $3) RETURNING id`,
		p.PriceListID, p.Price, p.Date,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert price: %w", err)
	}
	return nil
}

func (r *PriceRepo) GetByID(id int64) (*entity.Price, error) {
	var p entity.Price
	err := r.q.QueryRow(context.Background(),
		`SELECT id, price_list_id, price, date FROM prices WHERE id = $1`, id,
	).Scan(&p.ID, &p.PriceListID, &p.Price, &p.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get price: %w", err)
	}
	return &p, nil
}

func (r *PriceRepo) ExistsByID(id int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM prices WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("price exists: %w", err)
	}
	return exists, nil
}

// ListByPriceList returns the history in insertion order. The pricing
// engine resolves same-date ties in favour of the earliest inserted entry.
func (r *PriceRepo) ListByPriceList(priceListID int64) ([]*entity.Price, error) {
	return r.list(
		`SELECT id, price_list_id, price, date FROM prices
		 WHERE price_list_id = $1 ORDER BY id ASC`,
		priceListID)
}

func (r *PriceRepo) ListByPriceListBetween(priceListID int64, start, end time.Time) ([]*entity.Price, error) {
	return r.list(
		`SELECT id, price_list_id, price, date FROM prices
		 WHERE price_list_id = $1 AND date BETWEEN $2 AND $3
		 ORDER BY date DESC`,
		priceListID, start, end)
}

func (r *PriceRepo) Update(p *entity.Price) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE prices SET price_list_id = $2, price = $3, date = $4 WHERE id = $1`,
		p.ID, p.PriceListID, p.Price, p.Date,
	)
	if err != nil {
		return fmt.Errorf("update price: %w", err)
	}
	return nil
}

func (r *PriceRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM prices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete price: %w", err)
	}
	return nil
}

func (r *PriceRepo) DeleteByPriceList(priceListID int64) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM prices WHERE price_list_id = $1`, priceListID)
	if err != nil {
		return fmt.Errorf("delete price history: %w", err)
	}
	return nil
}

func (r *PriceRepo) list(query string, args ...any) ([]*entity.Price, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list prices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Price
	for rows.Next() {
		var p entity.Price
		if err := rows.Scan(&p.ID, &p.PriceListID, &p.Price, &p.Date); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
