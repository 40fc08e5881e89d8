package usecase

import (
	"fmt"
	"strings"

	"github.com/akazantsev/pricewatch/internal/domain"
)

// validateID is the identity check required before any update, delete, or
// cross-entity reference resolution: the id must be set (non-zero) and a
// record with that id must exist. Pure read, no side effects.
func validateID(kind string, id int64, exists func(int64) (bool, error)) error {
	if id == 0 {
		return fmt.Errorf("%w: %s id cannot be 0 or null", domain.ErrInvalidID, kind)
	}
	ok, err := exists(id)
	if err != nil {
		return fmt.Errorf("check %s id: %w", kind, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s does not exist with id %d", domain.ErrInvalidID, kind, id)
	}
	return nil
}

// requireNewID rejects caller-supplied identities on create; the store
// assigns them.
func requireNewID(kind string, id int64) error {
	if id != 0 {
		return fmt.Errorf("%w: new %s id can only be 0 or null", domain.ErrBadRequest, kind)
	}
	return nil
}

// ParseSortDirection turns an asc/desc token into a sort flag. An empty token
// means ascending.
func ParseSortDirection(s string) (asc bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc":
		return true, nil
	case "desc":
		return false, nil
	default:
		return false, fmt.Errorf("%w: invalid sorting direction %q, valid values: asc, desc", domain.ErrBadRequest, s)
	}
}
