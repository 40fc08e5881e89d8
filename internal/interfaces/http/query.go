package http

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/akazantsev/pricewatch/internal/domain"
)

// idListQuery parses a comma-separated id list query parameter. An absent
// parameter yields nil.
func idListQuery(c *fiber.Ctx, name string) ([]int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a comma-separated list of ids", domain.ErrBadRequest, name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// dateQuery parses a required YYYY-MM-DD query parameter.
func dateQuery(c *fiber.Ctx, name string) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: %s is required (YYYY-MM-DD)", domain.ErrBadRequest, name)
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be a date (YYYY-MM-DD)", domain.ErrBadRequest, name)
	}
	return t, nil
}
