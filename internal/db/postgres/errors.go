package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// foreignKeyViolation is the SQLSTATE both drivers report for a broken FK reference
const foreignKeyViolation = "23503"

// isForeignKeyViolation checks the driver error for SQLSTATE 23503.
// Both lib/pq and pgx are handled since the driver is chosen at startup.
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == foreignKeyViolation
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == foreignKeyViolation
	}

	return false
}
