package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate marks a postgres unique-constraint violation. The unique
// indexes (username, email, slugs, one review per title and author) are the
// source of truth for uniqueness; concurrent writers race past any
// application-level pre-check and land here instead.
var ErrDuplicate = errors.New("duplicate record")

const uniqueViolationCode = "23505"

// translateError maps driver-level errors onto repository sentinels so
// services never have to know about postgres error codes.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}
