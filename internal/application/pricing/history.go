package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/akazantsev/pricewatch/internal/domain"
	"github.com/akazantsev/pricewatch/internal/domain/entity"
	"github.com/akazantsev/pricewatch/internal/domain/repository"
)

// Normalize brings a monetary value to the fixed 2-digit scale by truncating
// the extra digits toward zero. Applied the moment a value enters the system,
// never later.
func Normalize(d decimal.Decimal) decimal.Decimal {
	return d.RoundDown(2)
}

// CurrentPrice derives the current price of a price list from its history:
// the price of the entry with the latest date. Only a strictly later date
// replaces the tracked entry, so when several entries share the latest date
// the first one in iteration order wins, not necessarily the largest price.
//
// Deriving from an empty history has no defined "latest" and fails.
func CurrentPrice(history []*entity.Price) (decimal.Decimal, error) {
	if len(history) == 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: cannot derive current price from empty history", domain.ErrInvalidState)
	}
	last := history[0]
	for _, p := range history[1:] {
		if p.Date.After(last.Date) {
			last = p
		}
	}
	return Normalize(last.Price), nil
}

// Recompute reloads the full history of a price list in insertion order,
// derives the current price, and persists it. Callers mutating price history
// run it through the same transaction as the mutation, so the pair commits as
// one unit and the current price can never be left stale.
func Recompute(priceLists repository.PriceListRepository, prices repository.PriceRepository, priceListID int64) error {
	history, err := prices.ListByPriceList(priceListID)
	if err != nil {
		return fmt.Errorf("load price history: %w", err)
	}
	current, err := CurrentPrice(history)
	if err != nil {
		return err
	}
	if err := priceLists.UpdateCurrentPrice(priceListID, current); err != nil {
		return fmt.Errorf("persist current price: %w", err)
	}
	return nil
}
