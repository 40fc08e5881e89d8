// Package memrepo provides in-memory repository fakes for tests. One DB
// backs all ports, so cross-entity queries and membership replacement behave
// like they do against the real schema.
package memrepo

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/akazantsev/pricewatch/internal/application/ports"
	"github.com/akazantsev/pricewatch/internal/domain/entity"
)

// DB is a shared in-memory backing store. The per-port adapters below give
// the use cases the same view a real database would, including the
// cross-entity membership queries.
type DB struct {
	nextID        int64
	categories    map[int64]*entity.Category
	subcategories map[int64]*entity.Subcategory
	products      map[int64]*entity.Product
	priceLists    map[int64]*entity.PriceList
	prices        map[int64]*entity.Price
	stores        map[int64]*entity.Store
}

// NewDB builds an empty store.
func NewDB() *DB {
	return &DB{
		categories:    map[int64]*entity.Category{},
		subcategories: map[int64]*entity.Subcategory{},
		products:      map[int64]*entity.Product{},
		priceLists:    map[int64]*entity.PriceList{},
		prices:        map[int64]*entity.Price{},
		stores:        map[int64]*entity.Store{},
	}
}

func (db *DB) id() int64 {
	db.nextID++
	return db.nextID
}

func (db *DB) RepoSet() ports.RepoSet {
	return ports.RepoSet{
		Categories:    &CategoryRepo{db},
		Subcategories: &SubcategoryRepo{db},
		Products:      &ProductRepo{db},
		PriceLists:    &PriceListRepo{db},
		Prices:        &PriceRepo{db},
		Stores:        &StoreRepo{db},
	}
}

// TxRunner runs the callback directly against the shared store. Tests
// exercise transactional composition, not rollback.
type TxRunner struct {
	db *DB
}

// NewTxRunner builds the runner over the store.
func NewTxRunner(db *DB) *TxRunner {
	return &TxRunner{db: db}
}

func (r *TxRunner) Run(ctx context.Context, fn func(tx ports.RepoSet) error) error {
	return fn(r.db.RepoSet())
}

type CategoryRepo struct{ db *DB }

func (r *CategoryRepo) Create(c *entity.Category) error {
	c.ID = r.db.id()
	r.db.categories[c.ID] = c
	return nil
}

func (r *CategoryRepo) GetByID(id int64) (*entity.Category, error) {
	c, ok := r.db.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *CategoryRepo) GetByName(name string) (*entity.Category, error) {
	for _, c := range r.db.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepo) ExistsByID(id int64) (bool, error) {
	_, ok := r.db.categories[id]
	return ok, nil
}

func (r *CategoryRepo) ListAll() ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(r.db.categories))
	for _, c := range r.db.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CategoryRepo) Update(c *entity.Category) error {
	cp := *c
	r.db.categories[c.ID] = &cp
	return nil
}

func (r *CategoryRepo) Delete(id int64) error {
	delete(r.db.categories, id)
	for sid, s := range r.db.subcategories {
		if s.CategoryID == id {
			_ = (&SubcategoryRepo{r.db}).Delete(sid)
		}
	}
	return nil
}

type SubcategoryRepo struct{ db *DB }

func (r *SubcategoryRepo) Create(s *entity.Subcategory) error {
	s.ID = r.db.id()
	r.db.subcategories[s.ID] = s
	return nil
}

func (r *SubcategoryRepo) GetByID(id int64) (*entity.Subcategory, error) {
	s, ok := r.db.subcategories[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *SubcategoryRepo) ExistsByID(id int64) (bool, error) {
	_, ok := r.db.subcategories[id]
	return ok, nil
}

func (r *SubcategoryRepo) ListAll() ([]*entity.Subcategory, error) {
	out := make([]*entity.Subcategory, 0, len(r.db.subcategories))
	for _, s := range r.db.subcategories {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *SubcategoryRepo) ListByCategory(categoryID int64) ([]*entity.Subcategory, error) {
	all, _ := r.ListAll()
	out := all[:0]
	for _, s := range all {
		if s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *SubcategoryRepo) ListProductIDs(subcategoryID int64) ([]int64, error) {
	ids := []int64{}
	for _, p := range r.db.products {
		if p.SubcategoryID == subcategoryID {
			ids = append(ids, p.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *SubcategoryRepo) ReplaceProductMembership(subcategoryID int64, productIDs []int64) error {
	keep := map[int64]bool{}
	for _, id := range productIDs {
		keep[id] = true
	}
	for _, p := range r.db.products {
		switch {
		case keep[p.ID]:
			p.SubcategoryID = subcategoryID
		case p.SubcategoryID == subcategoryID:
			p.SubcategoryID = 0 // detached, not deleted
		}
	}
	return nil
}

func (r *SubcategoryRepo) Update(s *entity.Subcategory) error {
	cp := *s
	r.db.subcategories[s.ID] = &cp
	return nil
}

func (r *SubcategoryRepo) Delete(id int64) error {
	delete(r.db.subcategories, id)
	for pid, p := range r.db.products {
		if p.SubcategoryID == id {
			_ = (&ProductRepo{r.db}).Delete(pid)
		}
	}
	return nil
}

type ProductRepo struct{ db *DB }

func (r *ProductRepo) Create(p *entity.Product) error {
	p.ID = r.db.id()
	r.db.products[p.ID] = p
	return nil
}

func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.db.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepo) ExistsByID(id int64) (bool, error) {
	_, ok := r.db.products[id]
	return ok, nil
}

func matchesKeyword(p *entity.Product, keyword string) bool {
	k := strings.ToLower(keyword)
	return strings.Contains(strings.ToLower(p.Name), k) ||
		strings.Contains(strings.ToLower(p.Brand), k) ||
		strings.Contains(strings.ToLower(p.Manufacturer), k)
}

func (r *ProductRepo) search(filter func(*entity.Product) bool, asc bool) []*entity.Product {
	out := []*entity.Product{}
	for _, p := range r.db.products {
		if filter(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if asc {
			return out[i].Name < out[j].Name
		}
		return out[i].Name > out[j].Name
	})
	return out
}

func (r *ProductRepo) SearchByKeyword(keyword string, asc bool) ([]*entity.Product, error) {
	return r.search(func(p *entity.Product) bool { return matchesKeyword(p, keyword) }, asc), nil
}

func (r *ProductRepo) SearchByCategory(categoryName, keyword string, asc bool) ([]*entity.Product, error) {
	return r.search(func(p *entity.Product) bool {
		s, ok := r.db.subcategories[p.SubcategoryID]
		if !ok {
			return false
		}
		c, ok := r.db.categories[s.CategoryID]
		if !ok || !strings.EqualFold(c.Name, categoryName) {
			return false
		}
		return matchesKeyword(p, keyword)
	}, asc), nil
}

func (r *ProductRepo) SearchBySubcategory(subcategoryName, keyword string, asc bool) ([]*entity.Product, error) {
	return r.search(func(p *entity.Product) bool {
		s, ok := r.db.subcategories[p.SubcategoryID]
		if !ok || !strings.EqualFold(s.Name, subcategoryName) {
			return false
		}
		return matchesKeyword(p, keyword)
	}, asc), nil
}

func (r *ProductRepo) ListPriceListIDs(productID int64) ([]int64, error) {
	ids := []int64{}
	for _, pl := range r.db.priceLists {
		if pl.ProductID == productID {
			ids = append(ids, pl.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *ProductRepo) ReplacePriceLists(productID int64, priceListIDs []int64) error {
	keep := map[int64]bool{}
	for _, id := range priceListIDs {
		keep[id] = true
	}
	for _, pl := range r.db.priceLists {
		switch {
		case keep[pl.ID]:
			pl.ProductID = productID
		case pl.ProductID == productID:
			pl.ProductID = 0
		}
	}
	return nil
}

func (r *ProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.db.products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) Delete(id int64) error {
	delete(r.db.products, id)
	for plid, pl := range r.db.priceLists {
		if pl.ProductID == id {
			_ = (&PriceListRepo{r.db}).Delete(plid)
		}
	}
	return nil
}

type PriceListRepo struct{ db *DB }

func (r *PriceListRepo) Create(pl *entity.PriceList) error {
	pl.ID = r.db.id()
	r.db.priceLists[pl.ID] = pl
	return nil
}

func (r *PriceListRepo) GetByID(id int64) (*entity.PriceList, error) {
	pl, ok := r.db.priceLists[id]
	if !ok {
		return nil, nil
	}
	cp := *pl
	return &cp, nil
}

func (r *PriceListRepo) ExistsByID(id int64) (bool, error) {
	_, ok := r.db.priceLists[id]
	return ok, nil
}

func (r *PriceListRepo) list(filter func(*entity.PriceList) bool) []*entity.PriceList {
	out := []*entity.PriceList{}
	for _, pl := range r.db.priceLists {
		if filter(pl) {
			cp := *pl
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *PriceListRepo) ListAll() ([]*entity.PriceList, error) {
	return r.list(func(*entity.PriceList) bool { return true }), nil
}

func (r *PriceListRepo) ListByProducts(productIDs []int64) ([]*entity.PriceList, error) {
	in := map[int64]bool{}
	for _, id := range productIDs {
		in[id] = true
	}
	return r.list(func(pl *entity.PriceList) bool { return in[pl.ProductID] }), nil
}

func (r *PriceListRepo) ListByProductsAndStores(productIDs, storeIDs []int64) ([]*entity.PriceList, error) {
	inP := map[int64]bool{}
	for _, id := range productIDs {
		inP[id] = true
	}
	inS := map[int64]bool{}
	for _, id := range storeIDs {
		inS[id] = true
	}
	return r.list(func(pl *entity.PriceList) bool { return inP[pl.ProductID] && inS[pl.StoreID] }), nil
}

func (r *PriceListRepo) Update(pl *entity.PriceList) error {
	cp := *pl
	r.db.priceLists[pl.ID] = &cp
	return nil
}

func (r *PriceListRepo) UpdateCurrentPrice(id int64, price decimal.Decimal) error {
	if pl, ok := r.db.priceLists[id]; ok {
		pl.CurrentPrice = price
	}
	return nil
}

func (r *PriceListRepo) Delete(id int64) error {
	delete(r.db.priceLists, id)
	for pid, p := range r.db.prices {
		if p.PriceListID == id {
			delete(r.db.prices, pid)
		}
	}
	return nil
}

type PriceRepo struct{ db *DB }

func (r *PriceRepo) Create(p *entity.Price) error {
	p.ID = r.db.id()
	r.db.prices[p.ID] = p
	return nil
}

func (r *PriceRepo) GetByID(id int64) (*entity.Price, error) {
	p, ok := r.db.prices[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *PriceRepo) ExistsByID(id int64) (bool, error) {
	_, ok := r.db.prices[id]
	return ok, nil
}

func (r *PriceRepo) ListByPriceList(priceListID int64) ([]*entity.Price, error) {
	out := []*entity.Price{}
	for _, p := range r.db.prices {
		if p.PriceListID == priceListID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *PriceRepo) ListByPriceListBetween(priceListID int64, start, end time.Time) ([]*entity.Price, error) {
	all, _ := r.ListByPriceList(priceListID)
	out := []*entity.Price{}
	for _, p := range all {
		if !p.Date.Before(start) && !p.Date.After(end) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *PriceRepo) Update(p *entity.Price) error {
	cp := *p
	r.db.prices[p.ID] = &cp
	return nil
}

func (r *PriceRepo) Delete(id int64) error {
	delete(r.db.prices, id)
	return nil
}

func (r *PriceRepo) DeleteByPriceList(priceListID int64) error {
	for id, p := range r.db.prices {
		if p.PriceListID == priceListID {
			delete(r.db.prices, id)
		}
	}
	return nil
}

type StoreRepo struct{ db *DB }

func (r *StoreRepo) Create(s *entity.Store) error {
	s.ID = r.db.id()
	r.db.stores[s.ID] = s
	return nil
}

func (r *StoreRepo) GetByID(id int64) (*entity.Store, error) {
	s, ok := r.db.stores[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *StoreRepo) ExistsByID(id int64) (bool, error) {
	_, ok := r.db.stores[id]
	return ok, nil
}

func (r *StoreRepo) ListAll() ([]*entity.Store, error) {
	return r.Search("", "", true)
}

func (r *StoreRepo) Search(city, name string, asc bool) ([]*entity.Store, error) {
	out := []*entity.Store{}
	for _, s := range r.db.stores {
		if city != "" && !strings.EqualFold(s.City, city) {
			continue
		}
		if name != "" && !strings.EqualFold(s.Name, name) {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if asc {
			return out[i].Name < out[j].Name
		}
		return out[i].Name > out[j].Name
	})
	return out, nil
}

func (r *StoreRepo) Update(s *entity.Store) error {
	cp := *s
	r.db.stores[s.ID] = &cp
	return nil
}

func (r *StoreRepo) Delete(id int64) error {
	delete(r.db.stores, id)
	for plid, pl := range r.db.priceLists {
		if pl.StoreID == id {
			_ = (&PriceListRepo{r.db}).Delete(plid)
		}
	}
	return nil
}
