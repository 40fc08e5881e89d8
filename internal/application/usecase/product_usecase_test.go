package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akazantsev/pricewatch/internal/application/dto"
	"github.com/akazantsev/pricewatch/internal/domain"
)

func TestProductCreate_RejectsInvalidUnit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	c := f.category(t, "Dairy")
	s := f.subcategory(t, "Milk", c.ID)

	_, err := f.products.Create(ctx, dto.ProductDTO{
		SubcategoryID: s.ID,
		Name:          "Whole Milk",
		Brand:         "Acme",
		Quantity:      1,
		Unit:          "barrel",
		Manufacturer:  "Acme Foods",
	})
	require.ErrorIs(t, err, domain.ErrBadRequest)
	assert.Contains(t, err.Error(), "MILLILITER", "the error lists the valid unit names")
}

func TestProductCreate_RejectsNonPositiveQuantity(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	c := f.category(t, "Dairy")
	s := f.subcategory(t, "Milk", c.ID)

	_, err := f.products.Create(ctx, dto.ProductDTO{
		SubcategoryID: s.ID,
		Name:          "Whole Milk",
		Brand:         "Acme",
		Quantity:      0,
		Unit:          "litre",
		Manufacturer:  "Acme Foods",
	})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestProductCreate_UnitIsCaseInsensitive(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	c := f.category(t, "Dairy")
	s := f.subcategory(t, "Milk", c.ID)

	out, err := f.products.Create(ctx, dto.ProductDTO{
		SubcategoryID: s.ID,
		Name:          "Whole Milk",
		Brand:         "Acme",
		Quantity:      1,
		Unit:          "Litre",
		Manufacturer:  "Acme Foods",
	})
	require.NoError(t, err)
	assert.Equal(t, "LITRE", out.Unit)
}

func TestProductSearch_ScopesAreMutuallyExclusive(t *testing.T) {
	f := newFixture()

	_, err := f.products.Search(context.Background(), dto.ProductSearchRequest{
		CategoryName:    "Dairy",
		SubcategoryName: "Milk",
	})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestProductSearch_EmptyResultIsNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.products.Search(context.Background(), dto.ProductSearchRequest{Keyword: "caviar"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductSearch_KeywordAndScope(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	dairy := f.category(t, "Dairy")
	milk := f.subcategory(t, "Milk", dairy.ID)
	cheese := f.subcategory(t, "Cheese", dairy.ID)
	f.product(t, "Whole Milk", milk.ID)
	f.product(t, "Cheddar", cheese.ID)

	// unscoped keyword matches across the catalog
	out, err := f.products.Search(ctx, dto.ProductSearchRequest{Keyword: "milk"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Whole Milk", out[0].Name)

	// subcategory scope narrows the match set
	_, err = f.products.Search(ctx, dto.ProductSearchRequest{Keyword: "milk", SubcategoryName: "Cheese"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// empty keyword inside a category scope matches the whole scope
	out, err = f.products.Search(ctx, dto.ProductSearchRequest{CategoryName: "Dairy"})
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestProductSearch_SortDirection(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	dairy := f.category(t, "Dairy")
	milk := f.subcategory(t, "Milk", dairy.ID)
	f.product(t, "Apple Juice", milk.ID)
	f.product(t, "Zucchini", milk.ID)

	out, err := f.products.Search(ctx, dto.ProductSearchRequest{SortDirection: "desc"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Zucchini", out[0].Name)
}

// Product update replaces the full price-list association; dropped lists are
// detached, never deleted.
func TestProductUpdate_ReplacesPriceListBindings(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	dairy := f.category(t, "Dairy")
	milk := f.subcategory(t, "Milk", dairy.ID)
	p := f.product(t, "Whole Milk", milk.ID)
	store := f.store(t, "Lenta", "Moscow")
	pl1 := f.priceList(t, store.ID, p.ID)
	pl2 := f.priceList(t, store.ID, p.ID)

	out, err := f.products.Update(ctx, dto.ProductDTO{
		ID:            p.ID,
		SubcategoryID: milk.ID,
		Name:          "Whole Milk",
		Brand:         "Acme",
		Quantity:      500,
		Unit:          "gram",
		Manufacturer:  "Acme Foods",
		PriceListIDs:  []int64{pl1.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{pl1.ID}, out.PriceListIDs)

	// the dropped list survives, detached from the product
	got, err := f.priceLists.FindByID(ctx, pl2.ID)
	require.NoError(t, err)
	assert.Zero(t, got.ProductID)
}

// An omitted price-list field arrives as a nil slice and detaches every bound
// list, same as an explicit empty one.
func TestProductUpdate_NilPriceListsDetachesAll(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	dairy := f.category(t, "Dairy")
	milk := f.subcategory(t, "Milk", dairy.ID)
	p := f.product(t, "Whole Milk", milk.ID)
	store := f.store(t, "Lenta", "Moscow")
	pl := f.priceList(t, store.ID, p.ID)

	out, err := f.products.Update(ctx, dto.ProductDTO{
		ID:            p.ID,
		SubcategoryID: milk.ID,
		Name:          "Whole Milk",
		Brand:         "Acme",
		Quantity:      500,
		Unit:          "gram",
		Manufacturer:  "Acme Foods",
		PriceListIDs:  nil,
	})
	require.NoError(t, err)
	assert.Empty(t, out.PriceListIDs)

	got, err := f.priceLists.FindByID(ctx, pl.ID)
	require.NoError(t, err)
	assert.Zero(t, got.ProductID)
}
