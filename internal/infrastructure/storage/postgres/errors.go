package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"devinventory/internal/core/apperror"
)

// PostgreSQL error codes the repositories translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// MapError converts driver errors into AppErrors for table and key.
// Errors it does not recognise are returned unchanged.
func MapError(err error, table, key string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NewNotFound(table, key)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return apperror.NewDuplicate(table, constraintColumn(pgErr, table), key).
			WithDetail("constraint", pgErr.ConstraintName).
			WithCause(err)
	case pgForeignKeyViolation:
		return apperror.NewConflict("record is referenced by other records").
			WithDetail("entity", table).
			WithDetail("id", key).
			WithCause(err)
	}
	return err
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// constraintColumn guesses the column from a "<table>_<column>_key" style constraint name.
func constraintColumn(pgErr *pgconn.PgError, table string) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	name := strings.TrimPrefix(pgErr.ConstraintName, table+"_")
	name = strings.TrimSuffix(name, "_key")
	name = strings.TrimSuffix(name, "_uniq")
	if name == "" {
		return "unknown"
	}
	return name
}
