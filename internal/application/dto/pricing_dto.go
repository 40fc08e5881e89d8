package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceListDTO is the transfer shape of a PriceList with its full history.
// When PriceHistory is non-empty on the way in, CurrentPrice is ignored and
// re-derived from the history.
type PriceListDTO struct {
	ID           int64           `json:"id"`
	StoreID      int64           `json:"store_id"`
	StoreName    string          `json:"store_name,omitempty"`
	ProductID    int64           `json:"product_id"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	PriceHistory []PriceDTO      `json:"price_history"`
}

// PriceDTO is the transfer shape of a single price-history entry.
type PriceDTO struct {
	ID          int64           `json:"id"`
	PriceListID int64           `json:"price_list_id"`
	Price       decimal.Decimal `json:"price"`
	Date        time.Time       `json:"date"` // calendar date, time component ignored
}

// PriceComparisonRequest selects the price lists to compare. StoreIDs is an
// optional additional restriction.
type PriceComparisonRequest struct {
	ProductIDs []int64 `json:"product_ids" query:"product_ids"`
	StoreIDs   []int64 `json:"store_ids" query:"store_ids"`
}

// PriceDynamicsRequest adds an inclusive date window to a comparison; each
// returned price list carries only the history entries inside the window.
type PriceDynamicsRequest struct {
	ProductIDs []int64   `json:"product_ids" query:"product_ids"`
	StoreIDs   []int64   `json:"store_ids" query:"store_ids"`
	StartDate  time.Time `json:"start_date" query:"start_date"`
	EndDate    time.Time `json:"end_date" query:"end_date"`
}
