package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes surfaced as application outcomes.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// IsUniqueViolation reports whether err is a unique-constraint failure
// (duplicate username or email).
func IsUniqueViolation(err error) bool {
	return pgErrCode(err) == uniqueViolationCode
}

// IsForeignKeyViolation reports whether err is a referential-integrity
// failure, e.g. deleting a user who still has requested tickets.
func IsForeignKeyViolation(err error) bool {
	return pgErrCode(err) == foreignKeyViolationCode
}

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
