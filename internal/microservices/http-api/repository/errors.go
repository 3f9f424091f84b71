package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrAliasTaken is returned when a region or block alias collides with
	// an existing one (postgres unique violation).
	ErrAliasTaken = errors.New("alias already taken")

	// ErrInvalidReference is returned when an insert points at a missing
	// row (postgres foreign key violation).
	ErrInvalidReference = errors.New("referenced row does not exist")
)

// postgres error codes we care about
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError maps driver-level constraint errors to repository errors
// so services don't have to inspect pgconn types themselves.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrAliasTaken
		case pgForeignKeyViolation:
			return ErrInvalidReference
		}
	}
	return err
}
