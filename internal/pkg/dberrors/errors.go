package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn" // Import pgconn for PgError
)

// PostgreSQL error codes handled by the application layer.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	// Check if the error is a PgError, if the code is unique_violation (23505),
	// and if the constraint name matches the provided one.
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation && pgErr.ConstraintName == constraintName
}

// IsUniqueViolation checks if the error is any PostgreSQL unique violation.
// Used where the losing side of a check-then-insert race must be re-presented
// as a normal validation failure regardless of which constraint fired.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}

// IsForeignKeyViolation checks if the error is a PostgreSQL foreign key violation.
// RESTRICT foreign keys fire this when a protected parent row is deleted.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation
}
