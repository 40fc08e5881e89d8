package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/akazantsev/pricewatch/internal/application/dto"
	"github.com/akazantsev/pricewatch/internal/application/usecase"
	"github.com/akazantsev/pricewatch/internal/testutil/memrepo"
)

// fixture wires every use case over one shared in-memory store.
type fixture struct {
	db            *memrepo.DB
	categories    *usecase.CategoryUseCase
	subcategories *usecase.SubcategoryUseCase
	products      *usecase.ProductUseCase
	priceLists    *usecase.PriceListUseCase
	prices        *usecase.PriceUseCase
	stores        *usecase.StoreUseCase
}

func newFixture() *fixture {
	db := memrepo.NewDB()
	repos := db.RepoSet()
	tx := memrepo.NewTxRunner(db)

	subcategories := usecase.NewSubcategoryUseCase(repos.Subcategories, repos.Categories, repos.Products, tx)
	return &fixture{
		db:            db,
		categories:    usecase.NewCategoryUseCase(repos.Categories, subcategories, tx),
		subcategories: subcategories,
		products:      usecase.NewProductUseCase(repos.Products, repos.Subcategories, repos.PriceLists, tx),
		priceLists:    usecase.NewPriceListUseCase(repos.PriceLists, repos.Prices, repos.Products, repos.Stores, tx),
		prices:        usecase.NewPriceUseCase(repos.Prices, repos.PriceLists, tx),
		stores:        usecase.NewStoreUseCase(repos.Stores),
	}
}

func (f *fixture) category(t *testing.T, name string) dto.CategoryDTO {
	t.Helper()
	c, err := f.categories.Create(context.Background(), dto.CategoryDTO{Name: name})
	require.NoError(t, err)
	return c
}

func (f *fixture) subcategory(t *testing.T, name string, categoryID int64) dto.SubcategoryDTO {
	t.Helper()
	s, err := f.subcategories.Create(context.Background(), dto.SubcategoryDTO{Name: name, CategoryID: categoryID})
	require.NoError(t, err)
	return s
}

func (f *fixture) product(t *testing.T, name string, subcategoryID int64) dto.ProductDTO {
	t.Helper()
	p, err := f.products.Create(context.Background(), dto.ProductDTO{
		SubcategoryID: subcategoryID,
		Name:          name,
		Brand:         "Acme",
		Quantity:      500,
		Unit:          "gram",
		Manufacturer:  "Acme Foods",
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) store(t *testing.T, name, city string) dto.StoreDTO {
	t.Helper()
	s, err := f.stores.Create(context.Background(), dto.StoreDTO{Name: name, City: city})
	require.NoError(t, err)
	return s
}

func (f *fixture) priceList(t *testing.T, storeID, productID int64, history ...dto.PriceDTO) dto.PriceListDTO {
	t.Helper()
	pl, err := f.priceLists.Create(context.Background(), dto.PriceListDTO{
		StoreID:      storeID,
		ProductID:    productID,
		PriceHistory: history,
	})
	require.NoError(t, err)
	return pl
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
