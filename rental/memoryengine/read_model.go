package memoryengine

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

func (e *Engine) ItemStock(ctx context.Context, itemID uuid.UUID) (rental.ItemStock, error) {
	if err := ctx.Err(); err != nil {
		return rental.ItemStock{}, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	item, ok := e.state.items[itemID]
	if !ok {
		return rental.ItemStock{}, rental.NewNotFound("item", itemID)
	}

	return rental.ItemStock{Item: item, OpenBorrows: e.state.openBorrows(itemID)}, nil
}

func (e *Engine) ItemStocks(ctx context.Context, filter rental.ItemFilter) ([]rental.ItemStock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	inAny := make(map[uuid.UUID]bool)
	inPrivate := make(map[uuid.UUID]bool)
	for link := range e.state.links {
		inAny[link.ItemID] = true
		if e.state.collections[link.CollectionID].IsPrivate {
			inPrivate[link.ItemID] = true
		}
	}

	stocks := make([]rental.ItemStock, 0)
	for _, item := range e.state.items {
		switch {
		case filter.LibraryID.Valid && item.LibraryID != filter.LibraryID:
			continue
		case filter.NotInAnyCollection && inAny[item.ID]:
			continue
		case filter.NotInPrivateCollections && inPrivate[item.ID]:
			continue
		}

		stocks = append(stocks, rental.ItemStock{Item: item, OpenBorrows: e.state.openBorrows(item.ID)})
	}

	slices.SortFunc(stocks, func(a, b rental.ItemStock) int {
		if c := strings.Compare(a.Item.Title, b.Item.Title); c != 0 {
			return c
		}

		return rental.CompareIDs(a.Item.ID, b.Item.ID)
	})

	return stocks, nil
}

func (e *Engine) Libraries(ctx context.Context) ([]rental.Library, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	libraries := slices.AppendSeq(make([]rental.Library, 0, len(e.state.libraries)), maps.Values(e.state.libraries))
	slices.SortFunc(libraries, func(a, b rental.Library) int {
		return cmp.Or(strings.Compare(a.Title, b.Title), rental.CompareIDs(a.ID, b.ID))
	})

	return libraries, nil
}

func (e *Engine) Collections(ctx context.Context) ([]rental.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	collections := make([]rental.Collection, 0, len(e.state.collections))
	for _, c := range e.state.collections {
		c.AllowedUsers = slices.Clone(c.AllowedUsers)
		collections = append(collections, c)
	}

	slices.SortFunc(collections, func(a, b rental.Collection) int {
		return cmp.Or(strings.Compare(a.Title, b.Title), rental.CompareIDs(a.ID, b.ID))
	})

	return collections, nil
}

func (e *Engine) Memberships(ctx context.Context) ([]rental.Membership, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.state.memberships(func(rental.CollectionItem) bool { return true }), nil
}

func (e *Engine) PatronProfile(ctx context.Context, patronID uuid.UUID) (rental.Patron, error) {
	if err := ctx.Err(); err != nil {
		return rental.Patron{}, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	patron, ok := e.state.patrons[patronID]
	if !ok {
		return rental.Patron{}, rental.NewNotFound("patron", patronID)
	}

	return patron, nil
}

type groupKey struct {
	patronID uuid.UUID
	itemID   uuid.UUID
}

func (e *Engine) OpenBorrowGroups(ctx context.Context, patronID uuid.NullUUID) ([]rental.BorrowGroup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	groups := make(map[groupKey]rental.BorrowGroup)
	for _, r := range e.state.borrows {
		if !r.IsOpen() || (patronID.Valid && r.PatronID != patronID.UUID) {
			continue
		}

		key := groupKey{patronID: r.PatronID, itemID: r.ItemID}
		g, ok := groups[key]
		if !ok {
			g = rental.BorrowGroup{
				PatronID:           r.PatronID,
				ItemID:             r.ItemID,
				ItemTitle:          e.state.items[r.ItemID].Title,
				EarliestBorrowedAt: r.BorrowedAt,
			}
		}

		g.Count++
		if r.BorrowedAt.Before(g.EarliestBorrowedAt) {
			g.EarliestBorrowedAt = r.BorrowedAt
		}

		groups[key] = g
	}

	out := slices.AppendSeq(make([]rental.BorrowGroup, 0, len(groups)), maps.Values(groups))
	slices.SortFunc(out, func(a, b rental.BorrowGroup) int {
		return cmp.Or(
			a.EarliestBorrowedAt.Compare(b.EarliestBorrowedAt),
			rental.CompareIDs(a.PatronID, b.PatronID),
			rental.CompareIDs(a.ItemID, b.ItemID),
		)
	})

	return out, nil
}

func (e *Engine) ReturnedBorrowGroups(ctx context.Context, patronID uuid.UUID) ([]rental.ReturnGroup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	groups := make(map[groupKey]rental.ReturnGroup)
	for _, r := range e.state.borrows {
		if r.IsOpen() || r.PatronID != patronID {
			continue
		}

		key := groupKey{patronID: r.PatronID, itemID: r.ItemID}
		g, ok := groups[key]
		if !ok {
			g = rental.ReturnGroup{
				PatronID:  r.PatronID,
				ItemID:    r.ItemID,
				ItemTitle: e.state.items[r.ItemID].Title,
			}
		}

		g.Count++
		if r.ReturnedAt.After(g.LatestReturnedAt) {
			g.LatestReturnedAt = *r.ReturnedAt
		}

		groups[key] = g
	}

	out := slices.AppendSeq(make([]rental.ReturnGroup, 0, len(groups)), maps.Values(groups))
	slices.SortFunc(out, func(a, b rental.ReturnGroup) int {
		return cmp.Or(
			b.LatestReturnedAt.Compare(a.LatestReturnedAt),
			rental.CompareIDs(a.ItemID, b.ItemID),
		)
	})

	return out, nil
}

func (e *Engine) RentalRequests(ctx context.Context, filter rental.RentalRequestFilter) ([]rental.RentalRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]rental.RentalRequest, 0)
	for _, r := range e.state.rentalRequests {
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}

		if filter.PatronID.Valid && r.PatronID != filter.PatronID.UUID {
			continue
		}

		out = append(out, r)
	}

	slices.SortFunc(out, func(a, b rental.RentalRequest) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), rental.CompareIDs(a.ID, b.ID))
	})

	return out, nil
}

func (e *Engine) CountRentalRequestsByStatus(ctx context.Context, patronID uuid.NullUUID) (map[rental.RequestStatus]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	counts := make(map[rental.RequestStatus]int)
	for _, r := range e.state.rentalRequests {
		if patronID.Valid && r.PatronID != patronID.UUID {
			continue
		}

		counts[r.Status]++
	}

	return counts, nil
}

func decidedAfter(status rental.RequestStatus, decidedAt *time.Time, after *time.Time) bool {
	if !status.IsTerminal() || decidedAt == nil {
		return false
	}

	return after == nil || decidedAt.After(*after)
}

func (e *Engine) CountDecidedRentalRequests(ctx context.Context, patronID uuid.UUID, after *time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	count := 0
	for _, r := range e.state.rentalRequests {
		if r.PatronID == patronID && decidedAfter(r.Status, r.ApprovedDate, after) {
			count++
		}
	}

	return count, nil
}

func (e *Engine) CountDecidedAccessRequests(ctx context.Context, patronID uuid.UUID, after *time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	count := 0
	for _, r := range e.state.accessRequests {
		if r.PatronID == patronID && decidedAfter(r.Status, r.ApprovedDate, after) {
			count++
		}
	}

	return count, nil
}

func (e *Engine) ItemEvents(ctx context.Context, itemID uuid.UUID) (rental.StorableEvents, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make(rental.StorableEvents, 0)
	for _, event := range e.state.events {
		if referencesItem(event.PayloadJSON, itemID.String()) {
			out = append(out, event)
		}
	}

	return out, nil
}

// referencesItem mirrors the jsonb containment checks of the postgres engine on rental.ItemReferenceFields.
func referencesItem(payloadJSON []byte, itemID string) bool {
	var payload map[string]any
	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &payload); err != nil {
		return false
	}

	for _, field := range rental.ItemReferenceFields {
		switch v := payload[field].(type) {
		case string:
			if v == itemID {
				return true
			}
		case []any:
			for _, element := range v {
				if s, ok := element.(string); ok && s == itemID {
					return true
				}
			}
		}
	}

	return false
}
