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

var _ repository.SubcategoryRepository = (*SubcategoryRepo)(nil)

// SubcategoryRepo implements the SubcategoryRepository port over PostgreSQL.
type SubcategoryRepo struct {
	q Querier
}

// NewSubcategoryRepository builds the adapter. Pass a pool or a tx (Querier).
func NewSubcategoryRepository(q Querier) *SubcategoryRepo {
	return &SubcategoryRepo{q: q}
}

func (r *SubcategoryRepo) Create(s *entity.Subcategory) error {
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO subcategories (name, category_id) VALUES ($1, $2) RETURNING id`,
		s.Name, s.CategoryID,
	).Scan(&s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: subcategory name %q", domain.ErrDuplicate, s.Name)
		}
		return fmt.Errorf("insert subcategory: %w", err)
	}
	return nil
}

func (r *SubcategoryRepo) GetByID(id int64) (*entity.Subcategory, error) {
	var s entity.Subcategory
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, category_id FROM subcategories WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.CategoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subcategory: %w", err)
	}
	return &s, nil
}

func (r *SubcategoryRepo) ExistsByID(id int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM subcategories WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("subcategory exists: %w", err)
	}
	return exists, nil
}

func (r *SubcategoryRepo) ListAll() ([]*entity.Subcategory, error) {
	return r.list(`SELECT id, name, category_id FROM subcategories ORDER BY name ASC`)
}

func (r *SubcategoryRepo) ListByCategory(categoryID int64) ([]*entity.Subcategory, error) {
	return r.list(`SELECT id, name, category_id FROM subcategories WHERE category_id = $1 ORDER BY name ASC`, categoryID)
}

func (r *SubcategoryRepo) list(query string, args ...any) ([]*entity.Subcategory, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Subcategory
	for rows.Next() {
		var s entity.Subcategory
		if err := rows.Scan(&s.ID, &s.Name, &s.CategoryID); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *SubcategoryRepo) ListProductIDs(subcategoryID int64) ([]int64, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id FROM products WHERE subcategory_id = $1 ORDER BY id ASC`, subcategoryID)
	if err != nil {
		return nil, fmt.Errorf("list subcategory products: %w", err)
	}
	defer rows.Close()
	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ReplaceProductMembership makes productIDs the complete membership of the
// subcategory. Products dropped from the list are detached (their
// subcategory reference cleared), not deleted.
func (r *SubcategoryRepo) ReplaceProductMembership(subcategoryID int64, productIDs []int64) error {
	if productIDs == nil {
		// nil encodes as SQL NULL; ANY(NULL) matches nothing and the
		// detach would be a no-op. An omitted list means empty membership.
		productIDs = []int64{}
	}
	ctx := context.Background()
	if _, err := r.q.Exec(ctx,
		`UPDATE products SET subcategory_id = NULL WHERE subcategory_id = $1 AND NOT (id = ANY($2))`,
		subcategoryID, productIDs,
	); err != nil {
		return fmt.Errorf("detach products: %w", err)
	}
	if len(productIDs) == 0 {
		return nil
	}
	if _, err := r.q.Exec(ctx,
		`UPDATE products SET subcategory_id = $1 WHERE id = ANY($2)`,
		subcategoryID, productIDs,
	); err != nil {
		return fmt.Errorf("attach products: %w", err)
	}
	return nil
}

func (r *SubcategoryRepo) Update(s *entity.Subcategory) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE subcategories SET name = $2, category_id = $3 WHERE id = $1`,
		s.ID, s.Name, s.CategoryID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: subcategory name %q", domain.ErrDuplicate, s.Name)
		}
		return fmt.Errorf("update subcategory: %w", err)
	}
	return nil
}

func (r *SubcategoryRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM subcategories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete subcategory: %w", err)
	}
	return nil
}
