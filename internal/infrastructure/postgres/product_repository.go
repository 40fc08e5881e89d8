package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/akazantsev/pricewatch/internal/domain/entity"
	"github.com/akazantsev/pricewatch/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const (
	productColumns = `id, COALESCE(subcategory_id, 0), name, brand, quantity, unit, manufacturer`

	// aliased variant for joined search queries
	productColumnsP = `p.id, COALESCE(p.subcategory_id, 0), p.name, p.brand, p.quantity, p.unit, p.manufacturer`
)

// ProductRepo implements the ProductRepository port over PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the adapter. Pass a pool or a tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func (r *ProductRepo) Create(p *entity.Product) error {
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO products (subcategory_id, name, brand, quantity, unit, manufacturer)
		 VALUES (NULLIF($1, 0), $2, $3, $4, $5, $6) RETURNING id`,
		p.SubcategoryID, p.Name, p.Brand, p.Quantity, string(p.Unit), p.Manufacturer,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, err := r.scanOne(r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) ExistsByID(id int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("product exists: %w", err)
	}
	return exists, nil
}

func (r *ProductRepo) SearchByKeyword(keyword string, asc bool) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE (name ILIKE $1 OR brand ILIKE $1 OR manufacturer ILIKE $1)
		ORDER BY name ` + orderDir(asc)
	return r.list(query, likePattern(keyword))
}

func (r *ProductRepo) SearchByCategory(categoryName, keyword string, asc bool) ([]*entity.Product, error) {
	query := `SELECT ` + productColumnsP + ` FROM products p
		JOIN subcategories s ON s.id = p.subcategory_id
		JOIN categories c ON c.id = s.category_id
		WHERE c.name ILIKE $1
		  AND (p.name ILIKE $2 OR p.brand ILIKE $2 OR p.manufacturer ILIKE $2)
		ORDER BY p.name ` + orderDir(asc)
	return r.list(query, categoryName, likePattern(keyword))
}

func (r *ProductRepo) SearchBySubcategory(subcategoryName, keyword string, asc bool) ([]*entity.Product, error) {
	query := `SELECT ` + productColumnsP + ` FROM products p
		JOIN subcategories s ON s.id = p.subcategory_id
		WHERE s.name ILIKE $1
		  AND (p.name ILIKE $2 OR p.brand ILIKE $2 OR p.manufacturer ILIKE $2)
		ORDER BY p.name ` + orderDir(asc)
	return r.list(query, subcategoryName, likePattern(keyword))
}

func (r *ProductRepo) ListPriceListIDs(productID int64) ([]int64, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id FROM price_lists WHERE product_id = $1 ORDER BY id ASC`, productID)
	if err != nil {
		return nil, fmt.Errorf("list product price lists: %w", err)
	}
	defer rows.Close()
	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan price list id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ReplacePriceLists makes priceListIDs the complete set of price lists bound
// to the product. Lists dropped from the set are detached, not deleted.
func (r *ProductRepo) ReplacePriceLists(productID int64, priceListIDs []int64) error {
	if priceListIDs == nil {
		// nil encodes as SQL NULL; ANY(NULL) matches nothing and the
		// detach would be a no-op. An omitted list means empty bindings.
		priceListIDs = []int64{}
	}
	ctx := context.Background()
	if _, err := r.q.Exec(ctx,
		`UPDATE price_lists SET product_id = NULL WHERE product_id = $1 AND NOT (id = ANY($2))`,
		productID, priceListIDs,
	); err != nil {
		return fmt.Errorf("detach price lists: %w", err)
	}
	if len(priceListIDs) == 0 {
		return nil
	}
	if _, err := r.q.Exec(ctx,
		`UPDATE price_lists SET product_id = $1 WHERE id = ANY($2)`,
		productID, priceListIDs,
	); err != nil {
		return fmt.Errorf("attach price lists: %w", err)
	}
	return nil
}

func (r *ProductRepo) Update(p *entity.Product) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET subcategory_id = NULLIF($2, 0), name = $3, brand = $4,
			quantity = $5, unit = $6, manufacturer = $7
		 WHERE id = $1`,
		p.ID, p.SubcategoryID, p.Name, p.Brand, p.Quantity, string(p.Unit), p.Manufacturer,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r *ProductRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ProductRepo) scanOne(row rowScanner) (*entity.Product, error) {
	var p entity.Product
	var unit string
	err := row.Scan(&p.ID, &p.SubcategoryID, &p.Name, &p.Brand, &p.Quantity, &unit, &p.Manufacturer)
	if err != nil {
		return nil, err
	}
	p.Unit = entity.Unit(unit)
	return &p, nil
}

func (r *ProductRepo) list(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
