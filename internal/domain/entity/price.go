package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Price is a single price-history entry of a PriceList. Date is a calendar
// date, not a timestamp; several entries may share a date.
type Price struct {
	ID          int64
	PriceListID int64
	Price       decimal.Decimal // fixed 2-digit scale, truncated
	Date        time.Time       // midnight UTC
}

// DateOf truncates t to its calendar date at midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
