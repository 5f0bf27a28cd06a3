package database

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// IsUniqueViolation reports whether err is a PostgreSQL unique_violation.
func IsUniqueViolation(err error) bool {
	return hasCode(err, pgerrcode.UniqueViolation)
}

// ConstraintName returns the violated constraint or index name, if any.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// IsConcurrentWriteConflict reports whether err was caused by another
// transaction committing first: serialization failures, deadlocks, and
// unique violations on the partial indexes that guard per-group invariants.
func IsConcurrentWriteConflict(err error) bool {
	return hasCode(err, pgerrcode.SerializationFailure) ||
		hasCode(err, pgerrcode.DeadlockDetected) ||
		IsUniqueViolation(err)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
