package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akazantsev/pricewatch/internal/application/dto"
	"github.com/akazantsev/pricewatch/internal/domain"
)

func TestStoreSearch_ByCityAndName(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store(t, "Lenta", "Moscow")
	f.store(t, "Lenta", "Kazan")
	f.store(t, "Magnit", "Moscow")

	out, err := f.stores.Search(ctx, dto.StoreSearchRequest{City: "moscow"})
	require.NoError(t, err)
	assert.Len(t, out, 2)

	out, err = f.stores.Search(ctx, dto.StoreSearchRequest{City: "Moscow", Name: "Lenta"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Lenta", out[0].Name)
}

func TestStoreSearch_EmptyResultIsNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.stores.Search(context.Background(), dto.StoreSearchRequest{City: "Sochi"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreSearch_InvalidSortDirection(t *testing.T) {
	f := newFixture()

	_, err := f.stores.Search(context.Background(), dto.StoreSearchRequest{SortDirection: "sideways"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

// Deleting a store removes its price lists but never the products they
// pointed at.
func TestStoreDelete_KeepsProducts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	c := f.category(t, "Dairy")
	s := f.subcategory(t, "Milk", c.ID)
	p := f.product(t, "Whole Milk", s.ID)
	store := f.store(t, "Lenta", "Moscow")
	pl := f.priceList(t, store.ID, p.ID,
		dto.PriceDTO{Price: money("50.00"), Date: time.Date(2021, time.May, 1, 0, 0, 0, 0, time.UTC)},
	)

	require.NoError(t, f.stores.Delete(ctx, store.ID))

	_, err := f.priceLists.FindByID(ctx, pl.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.products.FindByID(ctx, p.ID)
	assert.NoError(t, err)
}
