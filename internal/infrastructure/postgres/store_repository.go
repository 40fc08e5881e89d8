package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/akazantsev/pricewatch/internal/domain"
	"github.com/akazantsev/pricewatch/internal/domain/entity"
	"github.com/akazantsev/pricewatch/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implements the StoreRepository port over PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository builds the adapter. Pass a pool or a tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

func (r *StoreRepo) Create(s *entity.Store) error {
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO stores (name, city) VALUES ($1, $2) RETURNING id`,
		s.Name, s.City,
	).Scan(&s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: store %q in %q", domain.ErrDuplicate, s.Name, s.City)
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

func (r *StoreRepo) GetByID(id int64) (*entity.Store, error) {
	var s entity.Store
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, city FROM stores WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.City)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return &s, nil
}

func (r *StoreRepo) ExistsByID(id int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM stores WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("store exists: %w", err)
	}
	return exists, nil
}

func (r *StoreRepo) ListAll() ([]*entity.Store, error) {
	return r.list(`SELECT id, name, city FROM stores ORDER BY name ASC`)
}

// Search filters by exact city and/or name, case-insensitively. Empty
// filters match everything.
func (r *StoreRepo) Search(city, name string, asc bool) ([]*entity.Store, error) {
	query := `SELECT id, name, city FROM stores
		WHERE ($1 = '' OR city ILIKE $1) AND ($2 = '' OR name ILIKE $2)
		ORDER BY name ` + orderDir(asc)
	return r.list(query, city, name)
}

func (r *StoreRepo) Update(s *entity.Store) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE stores SET name = $2, city = $3 WHERE id = $1`,
		s.ID, s.Name, s.City,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: store %q in %q", domain.ErrDuplicate, s.Name, s.City)
		}
		return fmt.Errorf("update store: %w", err)
	}
	return nil
}

func (r *StoreRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	return nil
}

func (r *StoreRepo) list(query string, args ...any) ([]*entity.Store, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Store
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.City); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
