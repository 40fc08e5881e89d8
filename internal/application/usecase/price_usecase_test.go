package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akazantsev/pricewatch/internal/application/dto"
	"github.com/akazantsev/pricewatch/internal/application/usecase"
	"github.com/akazantsev/pricewatch/internal/domain"
	"github.com/akazantsev/pricewatch/internal/domain/entity"
	"github.com/akazantsev/pricewatch/internal/domain/repository"
	"github.com/akazantsev/pricewatch/internal/testutil/memrepo"
)

// Adding a history entry immediately re-derives the owning list's current
// price: the pair is one operation, not two.
func TestPriceCreate_RecomputesCurrentPrice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	store, p := f.catalogWithProduct(t)
	pl := f.priceList(t, store.ID, p.ID,
		dto.PriceDTO{Price: money("65.12"), Date: day(2021, time.January, 1)},
	)

	_, err := f.prices.Create(ctx, dto.PriceDTO{
		PriceListID: pl.ID,
		Price:       money("99.999"), // normalized on entry
		Date:        day(2021, time.February, 2),
	})
	require.NoError(t, err)

	got, err := f.priceLists.FindByID(ctx, pl.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentPrice.Equal(money("99.99")), "got %s", got.CurrentPrice)
}

// An older entry does not displace the current price; the latest date wins.
func TestPriceCreate_BackdatedEntryKeepsCurrentPrice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	store, p := f.catalogWithProduct(t)
	pl := f.priceList(t, store.ID, p.ID,
		dto.PriceDTO{Price: money("99.99"), Date: day(2021, time.February, 2)},
	)

	_, err := f.prices.Create(ctx, dto.PriceDTO{
		PriceListID: pl.ID,
		Price:       money("10.00"),
		Date:        day(2020, time.December, 1),
	})
	require.NoError(t, err)

	got, err := f.priceLists.FindByID(ctx, pl.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentPrice.Equal(money("99.99")), "got %s", got.CurrentPrice)
}

func TestPriceCreate_TruncatesDateToCalendarDay(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	store, p := f.catalogWithProduct(t)
	pl := f.priceList(t, store.ID, p.ID,
		dto.PriceDTO{Price: money("50.00"), Date: day(2021, time.January, 1)},
	)

	out, err := f.prices.Create(ctx, dto.PriceDTO{
		PriceListID: pl.ID,
		Price:       money("51.00"),
		Date:        time.Date(2021, time.March, 5, 17, 45, 3, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, day(2021, time.March, 5), out.Date)
}

// Moving an entry between lists re-derives both the new and the old owner.
func TestPriceUpdate_MovingEntryRecomputesBothLists(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	store, p := f.catalogWithProduct(t)
	plA := f.priceList(t, store.ID, p.ID,
		dto.PriceDTO{Price: money("10.00"), Date: day(2021, time.January, 1)},
		dto.PriceDTO{Price: money("20.00"), Date: day(2021, time.June, 1)},
	)
	plB := f.priceList(t, store.ID, p.ID,
		dto.PriceDTO{Price: money("30.00"), Date: day(2021, time.January, 1)},
	)

	// move plA's newest entry over to plB
	listA, err := f.priceLists.FindByID(ctx, plA.ID)
	require.NoError(t, err)
	moved := listA.PriceHistory[1]

	_, err = f.prices.Update(ctx, dto.PriceDTO{
		ID:          moved.ID,
		PriceListID: plB.ID,
		Price:       moved.Price,
		Date:        moved.Date,
	})
	require.NoError(t, err)

	gotA, err := f.priceLists.FindByID(ctx, plA.ID)
	require.NoError(t, err)
	assert.True(t, gotA.CurrentPrice.Equal(money("10.00")), "old owner re-derived, got %s", gotA.CurrentPrice)

	gotB, err := f.priceLists.FindByID(ctx, plB.ID)
	require.NoError(t, err)
	assert.True(t, gotB.CurrentPrice.Equal(money("20.00")), "new owner re-derived, got %s", gotB.CurrentPrice)
}

func TestPriceDelete_RecomputesCurrentPrice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	store, p := f.catalogWithProduct(t)
	pl := f.priceList(t, store.ID, p.ID,
		dto.PriceDTO{Price: money("65.12"), Date: day(2021, time.January, 1)},
		dto.PriceDTO{Price: money("99.99"), Date: day(2021, time.February, 2)},
	)

	got, err := f.priceLists.FindByID(ctx, pl.ID)
	require.NoError(t, err)
	newest := got.PriceHistory[1]

	require.NoError(t, f.prices.Delete(ctx, newest.ID))

	got, err = f.priceLists.FindByID(ctx, pl.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentPrice.Equal(money("65.12")), "got %s", got.CurrentPrice)
}

// The last history entry cannot be deleted: the list would lose its
// derivable current price.
func TestPriceDelete_LastEntryFails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	store, p := f.catalogWithProduct(t)
	pl := f.priceList(t, store.ID, p.ID,
		dto.PriceDTO{Price: money("65.12"), Date: day(2021, time.January, 1)},
	)

	got, err := f.priceLists.FindByID(ctx, pl.ID)
	require.NoError(t, err)
	only := got.PriceHistory[0]

	err = f.prices.Delete(ctx, only.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// vanishingPriceRepo reports an entry as existing but returns no record for
// it, the window a concurrent delete leaves between the existence check and
// the load.
type vanishingPriceRepo struct {
	repository.PriceRepository
}

func (r *vanishingPriceRepo) GetByID(id int64) (*entity.Price, error) {
	return nil, nil
}

func TestPriceDelete_VanishedEntryFailsCleanly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	store, p := f.catalogWithProduct(t)
	pl := f.priceList(t, store.ID, p.ID,
		dto.PriceDTO{Price: money("65.12"), Date: day(2021, time.January, 1)},
	)

	repos := f.db.RepoSet()
	prices := usecase.NewPriceUseCase(
		&vanishingPriceRepo{repos.Prices},
		repos.PriceLists,
		memrepo.NewTxRunner(f.db),
	)

	got, err := f.priceLists.FindByID(ctx, pl.ID)
	require.NoError(t, err)

	err = prices.Delete(ctx, got.PriceHistory[0].ID)
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestPriceFindBetween_EmptyWindowIsNotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	store, p := f.catalogWithProduct(t)
	pl := f.priceList(t, store.ID, p.ID,
		dto.PriceDTO{Price: money("50.00"), Date: day(2021, time.January, 1)},
	)

	_, err := f.prices.FindBetween(ctx, pl.ID, day(2022, time.January, 1), day(2022, time.June, 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
