package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// IsUniqueViolation reports whether err is a Postgres unique constraint failure.
func IsUniqueViolation(err error) bool {
	return hasCode(err, pgUniqueViolation)
}

// IsConstraintViolation reports whether err is a foreign key or check constraint failure.
func IsConstraintViolation(err error) bool {
	return hasCode(err, pgForeignKeyViolation) || hasCode(err, pgCheckViolation)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
