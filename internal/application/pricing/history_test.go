package pricing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akazantsev/pricewatch/internal/application/pricing"
	"github.com/akazantsev/pricewatch/internal/domain"
	"github.com/akazantsev/pricewatch/internal/domain/entity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func price(d time.Time, v string) *entity.Price {
	return &entity.Price{Price: decimal.RequireFromString(v), Date: d}
}

func TestNormalize_TruncatesToTwoDigits(t *testing.T) {
	cases := map[string]string{
		"99.999":  "99.99",
		"65.125":  "65.12",
		"10":      "10",
		"0.019":   "0.01",
		"-1.011":  "-1.01", // truncation moves toward zero, never away
		"1234.56": "1234.56",
	}
	for in, want := range cases {
		got := pricing.Normalize(decimal.RequireFromString(in))
		assert.True(t, got.Equal(decimal.RequireFromString(want)), "Normalize(%s) = %s, want %s", in, got, want)
	}
}

func TestCurrentPrice_LatestDateWins(t *testing.T) {
	history := []*entity.Price{
		price(date(2021, time.January, 1), "65.12"),
		price(date(2021, time.February, 2), "99.99"),
	}
	got, err := pricing.CurrentPrice(history)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("99.99")), "got %s", got)
}

func TestCurrentPrice_OrderOfEntriesDoesNotMatter(t *testing.T) {
	history := []*entity.Price{
		price(date(2021, time.February, 2), "99.99"),
		price(date(2021, time.January, 1), "65.12"),
	}
	got, err := pricing.CurrentPrice(history)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("99.99")), "got %s", got)
}

// Entries sharing the latest date: the first one in insertion order wins,
// even when a later entry carries a different price.
func TestCurrentPrice_SameDateFirstEntryWins(t *testing.T) {
	history := []*entity.Price{
		price(date(2021, time.January, 1), "10.00"),
		price(date(2021, time.January, 1), "20.00"),
	}
	got, err := pricing.CurrentPrice(history)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("10.00")), "got %s", got)
}

func TestCurrentPrice_EmptyHistoryFails(t *testing.T) {
	_, err := pricing.CurrentPrice(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestCurrentPrice_ResultIsNormalized(t *testing.T) {
	history := []*entity.Price{
		price(date(2022, time.March, 3), "5.999"),
	}
	got, err := pricing.CurrentPrice(history)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("5.99")), "got %s", got)
}
