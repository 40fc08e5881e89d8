package importer

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/akazantsev/pricewatch/internal/domain"
)

// CellKind tags what a sheet cell holds.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellDate
)

// Cell is one typed cell of a tabular input row.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Date   time.Time
}

// IsEmpty reports whether the cell carries no value.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// Sheet is the row-oriented tabular input. Rows[0] is the header row and is
// skipped by the pipeline.
type Sheet struct {
	Rows [][]Cell
}

// SheetReader is the port to the spreadsheet parser. Only .xlsx input is
// accepted; anything else fails with a format error.
type SheetReader interface {
	Read(filename string, r io.Reader) (*Sheet, error)
}

// CellAddress renders a zero-based (column, row) position in A1 notation, the
// form used in import error messages.
func CellAddress(col, row int) string {
	name := ""
	n := col + 1
	for n > 0 {
		n--
		name = string(rune('A'+n%26)) + name
		n /= 26
	}
	return fmt.Sprintf("%s%d", name, row+1)
}

func intCell(c Cell, addr string) (int64, error) {
	if c.Kind != CellNumber {
		return 0, fmt.Errorf("%w: expected a numeric value in cell %s", domain.ErrBadRequest, addr)
	}
	return int64(c.Number), nil
}

func textCell(c Cell, addr string) (string, error) {
	if c.Kind != CellText {
		return "", fmt.Errorf("%w: expected a text value in cell %s", domain.ErrBadRequest, addr)
	}
	return c.Text, nil
}

func moneyCell(c Cell, addr string) (decimal.Decimal, error) {
	switch c.Kind {
	case CellNumber:
		return decimal.NewFromFloat(c.Number), nil
	case CellText:
		d, err := decimal.NewFromString(c.Text)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: invalid number format in cell %s", domain.ErrBadRequest, addr)
		}
		return d, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: expected a numeric value in cell %s", domain.ErrBadRequest, addr)
	}
}

func dateCell(c Cell, addr string) (time.Time, error) {
	switch c.Kind {
	case CellDate:
		return c.Date, nil
	case CellText:
		t, err := time.Parse(time.DateOnly, c.Text)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: expected a date (YYYY-MM-DD) in cell %s", domain.ErrBadRequest, addr)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("%w: expected a date value in cell %s", domain.ErrBadRequest, addr)
	}
}
