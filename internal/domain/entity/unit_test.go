package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akazantsev/pricewatch/internal/domain"
	"github.com/akazantsev/pricewatch/internal/domain/entity"
)

func TestParseUnit(t *testing.T) {
	for _, in := range []string{"LITRE", "litre", " Litre "} {
		u, err := entity.ParseUnit(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, entity.UnitLitre, u)
	}
}

func TestParseUnit_Invalid(t *testing.T) {
	_, err := entity.ParseUnit("barrel")
	require.ErrorIs(t, err, domain.ErrBadRequest)
	// the message enumerates the valid names
	assert.Contains(t, err.Error(), "MILLILITER, LITRE, GRAM, KILOGRAM, PIECE")
}

func TestUnitAbbreviation(t *testing.T) {
	assert.Equal(t, "kg", entity.UnitKilogram.Abbreviation())
	assert.Equal(t, "pc", entity.UnitPiece.Abbreviation())
	assert.Equal(t, "", entity.Unit("BARREL").Abbreviation())
}

func TestDateOf(t *testing.T) {
	in := time.Date(2021, time.July, 14, 18, 33, 12, 500, time.FixedZone("MSK", 3*3600))
	got := entity.DateOf(in)
	assert.Equal(t, time.Date(2021, time.July, 14, 0, 0, 0, 0, time.UTC), got)
}
