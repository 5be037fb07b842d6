package rental

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// CompareIDs orders ids bytewise, the same order PostgreSQL uses for the uuid type.
func CompareIDs(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}

// SortedUniqueIDs returns a sorted copy of ids without duplicates.
// Rows are always locked in this order.
func SortedUniqueIDs(ids []uuid.UUID) []uuid.UUID {
	out := slices.Clone(ids)
	slices.SortFunc(out, CompareIDs)

	return slices.Compact(out)
}

// NewRecordIDs returns n time-ordered ids, so borrow records written together sort together.
// No item owns more than MaxItemQuantity units, so larger n is rejected.
func NewRecordIDs(n int) ([]uuid.UUID, error) {
	if n > MaxItemQuantity {
		return nil, NewInvalidInput(fmt.Sprintf("Cannot lend more than %d units at once.", MaxItemQuantity))
	}

	ids := make([]uuid.UUID, 0, max(n, 0))
	for range n {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, nil
}

// RecordIDSource hands out the ids of the borrow records a lend writes.
// Decide functions call it only once the stock check passed.
type RecordIDSource func(n int) ([]uuid.UUID, error)

// Generate returns n ids from s, falling back to NewRecordIDs when s is nil.
func (s RecordIDSource) Generate(n int) ([]uuid.UUID, error) {
	if s == nil {
		return NewRecordIDs(n)
	}

	return s(n)
}
