// Package pgerr maps database/sql and PostgreSQL errors onto the sentinel
// errors in common, so services never look at driver types.
package pgerr

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/travelmate/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Translate wraps err for the caller. sql.ErrNoRows becomes
// common.ErrorNotFound, unique violations common.ErrorAlreadyExists and
// foreign key violations common.ErrorInvalidReference. Anything else is returned as a "db error".
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, pgErr.ConstraintName)
		case foreignKeyViolation:
			return fmt.Errorf("%w: %s", common.ErrorInvalidReference, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("db error: %w", err)
}

// RequireOne returns common.ErrorNotFound when an UPDATE or DELETE touched
// no rows.
func RequireOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
