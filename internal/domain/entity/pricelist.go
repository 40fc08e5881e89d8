package entity

import "github.com/shopspring/decimal"

// PriceList is the per-(store, product) pricing record. CurrentPrice always
// reflects the chronologically latest Price entry whenever the history is
// non-empty; the pricing engine keeps the two in sync.
type PriceList struct {
	ID           int64
	StoreID      int64
	ProductID    int64
	CurrentPrice decimal.Decimal // fixed 2-digit scale, truncated
}
