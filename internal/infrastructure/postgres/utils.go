package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation reports whether err is a unique-constraint violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// orderDir renders the ORDER BY direction for queries that sort by a
// caller-chosen direction. Never caller-controlled text.
func orderDir(asc bool) string {
	if asc {
		return "ASC"
	}
	return "DESC"
}

// likePattern wraps a keyword for a case-insensitive substring match.
// An empty keyword yields a pattern that matches every row.
func likePattern(keyword string) string {
	return "%" + keyword + "%"
}
