package entity

import (
	"fmt"
	"strings"

	"github.com/akazantsev/pricewatch/internal/domain"
)

// Unit is the unit of measure a product is sold in.
type Unit string

const (
	UnitMilliliter Unit = "MILLILITER"
	UnitLitre      Unit = "LITRE"
	UnitGram       Unit = "GRAM"
	UnitKilogram   Unit = "KILOGRAM"
	UnitPiece      Unit = "PIECE"
)

// Units lists every valid unit, in declaration order.
var Units = []Unit{UnitMilliliter, UnitLitre, UnitGram, UnitKilogram, UnitPiece}

// ParseUnit matches s against the unit names, case-insensitively.
func ParseUnit(s string) (Unit, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for _, u := range Units {
		if string(u) == upper {
			return u, nil
		}
	}
	return "", fmt.Errorf("%w: wrong unit of measure %q, possible units: %s",
		domain.ErrBadRequest, s, UnitNames())
}

// UnitNames returns the comma-separated list of valid unit names for error messages.
func UnitNames() string {
	names := make([]string, len(Units))
	for i, u := range Units {
		names[i] = string(u)
	}
	return strings.Join(names, ", ")
}

// Abbreviation returns the short label used on price tags.
func (u Unit) Abbreviation() string {
	switch u {
	case UnitMilliliter:
		return "ml"
	case UnitLitre:
		return "l"
	case UnitGram:
		return "g"
	case UnitKilogram:
		return "kg"
	case UnitPiece:
		return "pc"
	default:
		return ""
	}
}
