package rental

import (
	"errors"
	"time"
)

var (
	// ErrNilDatabaseConnection is returned when an engine is constructed without a database handle.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyTableNamePrefix is returned when an empty table name prefix is supplied.
	ErrEmptyTableNamePrefix = errors.New("empty table name prefix supplied")
)

// DefaultRentalPeriod is the time between approval and the expected return of rented units.
const DefaultRentalPeriod = 7 * 24 * time.Hour

// MaxItemQuantity is the upper bound for the number of units an item can own.
const MaxItemQuantity = 9999

// ToTimestamp normalises a time to UTC with microsecond precision, matching what PostgreSQL stores.
func ToTimestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
