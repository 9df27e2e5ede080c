package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateKey signals a unique-constraint violation (duplicate username,
// media entry id, or rating pair). Callers treat it as a conflict, not a crash.
var ErrDuplicateKey = errors.New("duplicate key")

// isUniqueViolation reports whether err is a Postgres unique violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// translateDuplicate maps unique violations onto ErrDuplicateKey and passes
// everything else through unmodified.
func translateDuplicate(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	return err
}
