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

func (f *fixture) catalogWithProduct(t *testing.T) (dto.StoreDTO, dto.ProductDTO) {
	t.Helper()
	c := f.category(t, "Dairy")
	s := f.subcategory(t, "Milk", c.ID)
	p := f.product(t, "Whole Milk", s.ID)
	store := f.store(t, "Lenta", "Moscow")
	return store, p
}

// Sending a history overrides whatever current price the caller supplied:
// the derivation is the only source of truth.
func TestPriceListCreate_DerivesCurrentPriceFromHistory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	store, p := f.catalogWithProduct(t)

	out, err := f.priceLists.Create(ctx, dto.PriceListDTO{
		StoreID:      store.ID,
		ProductID:    p.ID,
		CurrentPrice: money("1.00"), // ignored
		PriceHistory: []dto.PriceDTO{
			{Price: money("65.12"), Date: day(2021, time.January, 1)},
			{Price: money("99.99"), Date: day(2021, time.February, 2)},
		},
	})
	require.NoError(t, err)
	assert.True(t, out.CurrentPrice.Equal(money("99.99")), "got %s", out.CurrentPrice)
	assert.Len(t, out.PriceHistory, 2)
	assert.Equal(t, "Lenta", out.StoreName)
}

func TestPriceListCreate_EmptyHistoryUsesSuppliedPriceNormalized(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	store, p := f.catalogWithProduct(t)

	out, err := f.priceLists.Create(ctx, dto.PriceListDTO{
		StoreID:      store.ID,
		ProductID:    p.ID,
		CurrentPrice: money("49.999"),
	})
	require.NoError(t, err)
	assert.True(t, out.CurrentPrice.Equal(money("49.99")), "got %s", out.CurrentPrice)
	assert.Empty(t, out.PriceHistory)
}

func TestPriceListCreate_RequiresStoreAndProduct(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	store, p := f.catalogWithProduct(t)

	_, err := f.priceLists.Create(ctx, dto.PriceListDTO{StoreID: 99, ProductID: p.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = f.priceLists.Create(ctx, dto.PriceListDTO{StoreID: store.ID, ProductID: 99})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

// The payload's history replaces the stored one wholesale, whether it carries
// entries or not.
func TestPriceListUpdate_HistoryReplacement(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	store, p := f.catalogWithProduct(t)
	pl := f.priceList(t, store.ID, p.ID,
		dto.PriceDTO{Price: money("65.12"), Date: day(2021, time.January, 1)},
	)

	out, err := f.priceLists.Update(ctx, dto.PriceListDTO{
		ID:        pl.ID,
		StoreID:   store.ID,
		ProductID: p.ID,
		PriceHistory: []dto.PriceDTO{
			{Price: money("70.00"), Date: day(2021, time.March, 1)},
			{Price: money("75.50"), Date: day(2021, time.April, 1)},
		},
	})
	require.NoError(t, err)
	assert.Len(t, out.PriceHistory, 2)
	assert.True(t, out.CurrentPrice.Equal(money("75.50")), "got %s", out.CurrentPrice)

	// empty history clears the stored entries; the supplied current price is
	// taken verbatim, so it cannot diverge from any surviving entry
	out, err = f.priceLists.Update(ctx, dto.PriceListDTO{
		ID:           pl.ID,
		StoreID:      store.ID,
		ProductID:    p.ID,
		CurrentPrice: money("10.00"),
	})
	require.NoError(t, err)
	assert.Empty(t, out.PriceHistory)
	assert.True(t, out.CurrentPrice.Equal(money("10.00")), "got %s", out.CurrentPrice)
}

func TestPriceListCompare_RequiresProductIDs(t *testing.T) {
	f := newFixture()

	_, err := f.priceLists.Compare(context.Background(), dto.PriceComparisonRequest{})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestPriceListCompare_EmptyMatchIsNotFound(t *testing.T) {
	f := newFixture()
	_, p := f.catalogWithProduct(t)

	_, err := f.priceLists.Compare(context.Background(), dto.PriceComparisonRequest{ProductIDs: []int64{p.ID}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPriceListCompare_StoreRestriction(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	store, p := f.catalogWithProduct(t)
	other := f.store(t, "Magnit", "Kazan")
	f.priceList(t, store.ID, p.ID, dto.PriceDTO{Price: money("50.00"), Date: day(2021, time.May, 1)})
	f.priceList(t, other.ID, p.ID, dto.PriceDTO{Price: money("48.00"), Date: day(2021, time.May, 1)})

	out, err := f.priceLists.Compare(ctx, dto.PriceComparisonRequest{ProductIDs: []int64{p.ID}})
	require.NoError(t, err)
	assert.Len(t, out, 2)

	out, err = f.priceLists.Compare(ctx, dto.PriceComparisonRequest{
		ProductIDs: []int64{p.ID},
		StoreIDs:   []int64{other.ID},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Magnit", out[0].StoreName)
}

func TestPriceListDynamics_WindowEndBeforeStart(t *testing.T) {
	f := newFixture()

	_, err := f.priceLists.CompareDynamics(context.Background(), dto.PriceDynamicsRequest{
		ProductIDs: []int64{1},
		StartDate:  day(2021, time.June, 1),
		EndDate:    day(2021, time.May, 1),
	})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

// A matched price list with no entries inside the window still appears in the
// dynamics result, with an empty history.
func TestPriceListDynamics_EmptyWindowStillListed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	store, p := f.catalogWithProduct(t)
	pl := f.priceList(t, store.ID, p.ID,
		dto.PriceDTO{Price: money("50.00"), Date: day(2021, time.January, 10)},
		dto.PriceDTO{Price: money("55.00"), Date: day(2021, time.February, 10)},
	)

	out, err := f.priceLists.CompareDynamics(ctx, dto.PriceDynamicsRequest{
		ProductIDs: []int64{p.ID},
		StartDate:  day(2022, time.January, 1),
		EndDate:    day(2022, time.December, 31),
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, pl.ID, out[0].ID)
	assert.Empty(t, out[0].PriceHistory)
}

func TestPriceListDynamics_WindowIsInclusiveNewestFirst(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	store, p := f.catalogWithProduct(t)
	f.priceList(t, store.ID, p.ID,
		dto.PriceDTO{Price: money("50.00"), Date: day(2021, time.January, 10)},
		dto.PriceDTO{Price: money("55.00"), Date: day(2021, time.February, 10)},
		dto.PriceDTO{Price: money("60.00"), Date: day(2021, time.March, 10)},
	)

	out, err := f.priceLists.CompareDynamics(ctx, dto.PriceDynamicsRequest{
		ProductIDs: []int64{p.ID},
		StartDate:  day(2021, time.January, 10),
		EndDate:    day(2021, time.February, 10),
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	history := out[0].PriceHistory
	require.Len(t, history, 2)
	assert.True(t, history[0].Date.After(history[1].Date), "newest first")
}

func TestPriceListRecompute_EmptyHistoryFails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	store, p := f.catalogWithProduct(t)
	pl := f.priceList(t, store.ID, p.ID)

	err := f.priceLists.RecomputeCurrentPrice(ctx, pl.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
