package dbx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the repositories translate.
const (
	pgUniqueViolation           = "23505"
	pgInvalidTextRepresentation = "22P02"
)

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

// IsInvalidText reports whether PostgreSQL rejected a parameter it could not
// parse, such as a malformed UUID in a lookup.
func IsInvalidText(err error) bool {
	return pgCode(err) == pgInvalidTextRepresentation
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
