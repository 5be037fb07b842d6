package postgresengine

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

const (
	sqlStateUniqueViolation      = "23505"
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateLockNotAvailable     = "55P03"

	primaryKeySuffix = "_pkey"
)

// sqlState extracts the SQLSTATE and the violated constraint from a pgx or lib/pq error.
func sqlState(err error) (code string, constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName, true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint, true
	}

	return "", "", false
}

// translateDBError maps database errors that carry a domain meaning to a *rental.Violation.
// It returns nil for every other error.
func (e *Engine) translateDBError(err error) *rental.Violation {
	code, constraint, ok := sqlState(err)
	if !ok {
		return nil
	}

	switch code {
	case sqlStateUniqueViolation:
		switch constraint {
		case e.tables.pendingRentalIndex:
			return rental.NewDuplicateRequest("this item")
		case e.tables.pendingAccessIndex:
			return rental.NewDuplicateRequest("this collection")
		default:
			if strings.HasSuffix(constraint, primaryKeySuffix) {
				return rental.NewInvalidInput("A record with this id already exists.")
			}

			return rental.NewConflict("a row with the same key was written concurrently")
		}

	case sqlStateSerializationFailure, sqlStateDeadlockDetected, sqlStateLockNotAvailable:
		return rental.NewConflict("the transaction could not be serialized")

	default:
		return nil
	}
}

// wrapDBError translates err or joins it with the given sentinel, logging unexpected failures.
func (e *Engine) wrapDBError(ctx context.Context, err error, sentinel error, logMsg string, sqlQuery string) error {
	if violation := e.translateDBError(err); violation != nil {
		e.logInfo(ctx, logMsgConcurrencyConflict, logAttrViolationKind, violation.Kind.String(), logAttrError, err.Error())
		return violation
	}

	e.logError(ctx, logMsg, err, logAttrQuery, sqlQuery)

	return errors.Join(sentinel, err)
}
