package memoryengine

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

type transaction struct {
	state state
}

// duplicateID rejects a caller-supplied id that is taken. Retrying with the same id cannot succeed.
func duplicateID(entity string, id uuid.UUID) error {
	return rental.NewInvalidInput(fmt.Sprintf("A %s with id %s already exists.", entity, id))
}

func (tx *transaction) InsertLibrary(_ context.Context, library rental.Library) error {
	if _, ok := tx.state.libraries[library.ID]; ok {
		return duplicateID("library", library.ID)
	}

	tx.state.libraries[library.ID] = library

	return nil
}

func (tx *transaction) InsertItem(_ context.Context, item rental.Item) error {
	if _, ok := tx.state.items[item.ID]; ok {
		return duplicateID("item", item.ID)
	}

	if item.LibraryID.Valid {
		if _, ok := tx.state.libraries[item.LibraryID.UUID]; !ok {
			return rental.NewNotFound("library", item.LibraryID.UUID)
		}
	}

	tx.state.items[item.ID] = item

	return nil
}

func (tx *transaction) LockItem(_ context.Context, itemID uuid.UUID) (rental.Item, error) {
	item, ok := tx.state.items[itemID]
	if !ok {
		return rental.Item{}, rental.NewNotFound("item", itemID)
	}

	return item, nil
}

func (tx *transaction) LockItems(ctx context.Context, itemIDs []uuid.UUID) ([]rental.Item, error) {
	sorted := rental.SortedUniqueIDs(itemIDs)
	items := make([]rental.Item, 0, len(sorted))

	for _, id := range sorted {
		item, err := tx.LockItem(ctx, id)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}

func (tx *transaction) UpdateItemStock(_ context.Context, itemID uuid.UUID, quantity int, status rental.ItemStatus) error {
	item, ok := tx.state.items[itemID]
	if !ok {
		return rental.NewNotFound("item", itemID)
	}

	item.Quantity = quantity
	item.Status = status
	tx.state.items[itemID] = item

	return nil
}

func (tx *transaction) CountOpenBorrows(_ context.Context, itemID uuid.UUID) (int, error) {
	return tx.state.openBorrows(itemID), nil
}

func (tx *transaction) CountOpenBorrowsByPatron(_ context.Context, itemID, patronID uuid.UUID) (int, error) {
	count := 0
	for _, r := range tx.state.borrows {
		if r.ItemID == itemID && r.PatronID == patronID && r.IsOpen() {
			count++
		}
	}

	return count, nil
}

func (tx *transaction) LockOldestOpenBorrows(_ context.Context, itemID, patronID uuid.UUID, limit int) ([]rental.BorrowRecord, error) {
	open := make([]rental.BorrowRecord, 0)
	for _, r := range tx.state.borrows {
		if r.ItemID == itemID && r.PatronID == patronID && r.IsOpen() {
			open = append(open, r)
		}
	}

	slices.SortFunc(open, func(a, b rental.BorrowRecord) int {
		if c := a.BorrowedAt.Compare(b.BorrowedAt); c != 0 {
			return c
		}

		return rental.CompareIDs(a.ID, b.ID)
	})

	if limit < len(open) {
		open = open[:limit]
	}

	return open, nil
}

func (tx *transaction) InsertBorrowRecords(_ context.Context, records []rental.BorrowRecord) error {
	for _, r := range records {
		if _, ok := tx.state.borrows[r.ID]; ok {
			return duplicateID("borrow record", r.ID)
		}

		tx.state.borrows[r.ID] = r
	}

	return nil
}

func (tx *transaction) CloseBorrowRecords(_ context.Context, recordIDs []uuid.UUID, returnedAt time.Time) (int64, error) {
	var closed int64
	for _, id := range recordIDs {
		r, ok := tx.state.borrows[id]
		if !ok || !r.IsOpen() {
			continue
		}

		at := returnedAt
		r.ReturnedAt = &at
		tx.state.borrows[id] = r
		closed++
	}

	return closed, nil
}

func (tx *transaction) InsertPatron(_ context.Context, patron rental.Patron) error {
	if _, ok := tx.state.patrons[patron.ID]; ok {
		return duplicateID("patron", patron.ID)
	}

	tx.state.patrons[patron.ID] = patron

	return nil
}

func (tx *transaction) Patron(_ context.Context, patronID uuid.UUID) (rental.Patron, error) {
	patron, ok := tx.state.patrons[patronID]
	if !ok {
		return rental.Patron{}, rental.NewNotFound("patron", patronID)
	}

	return patron, nil
}

func (tx *transaction) UpdatePatronViewedAt(_ context.Context, patronID uuid.UUID, rentalsViewedAt, accessViewedAt *time.Time) error {
	patron, ok := tx.state.patrons[patronID]
	if !ok {
		return rental.NewNotFound("patron", patronID)
	}

	if rentalsViewedAt != nil {
		at := *rentalsViewedAt
		patron.RentalsLastViewedAt = &at
	}

	if accessViewedAt != nil {
		at := *accessViewedAt
		patron.AccessRequestsLastViewedAt = &at
	}

	tx.state.patrons[patronID] = patron

	return nil
}

func (tx *transaction) LockRentalRequest(_ context.Context, requestID uuid.UUID) (rental.RentalRequest, error) {
	request, ok := tx.state.rentalRequests[requestID]
	if !ok {
		return rental.RentalRequest{}, rental.NewNotFound("rental request", requestID)
	}

	return request, nil
}

func (tx *transaction) HasPendingRentalRequest(_ context.Context, patronID, itemID uuid.UUID) (bool, error) {
	for _, r := range tx.state.rentalRequests {
		if r.PatronID == patronID && r.ItemID == itemID && r.Status == rental.RequestStatusPending {
			return true, nil
		}
	}

	return false, nil
}

func (tx *transaction) InsertRentalRequest(ctx context.Context, request rental.RentalRequest) error {
	if _, ok := tx.state.rentalRequests[request.ID]; ok {
		return duplicateID("rental request", request.ID)
	}

	if request.Status == rental.RequestStatusPending {
		pending, _ := tx.HasPendingRentalRequest(ctx, request.PatronID, request.ItemID)
		if pending {
			return rental.NewDuplicateRequest("this item")
		}
	}

	tx.state.rentalRequests[request.ID] = request

	return nil
}

func (tx *transaction) UpdateRentalRequest(_ context.Context, request rental.RentalRequest) error {
	if _, ok := tx.state.rentalRequests[request.ID]; !ok {
		return rental.NewNotFound("rental request", request.ID)
	}

	tx.state.rentalRequests[request.ID] = request

	return nil
}

func (tx *transaction) DeleteRentalRequest(_ context.Context, requestID uuid.UUID) error {
	delete(tx.state.rentalRequests, requestID)

	return nil
}

func (tx *transaction) InsertCollection(_ context.Context, collection rental.Collection) error {
	if _, ok := tx.state.collections[collection.ID]; ok {
		return duplicateID("collection", collection.ID)
	}

	collection.AllowedUsers = rental.SortedUniqueIDs(collection.AllowedUsers)
	tx.state.collections[collection.ID] = collection

	return nil
}

func (tx *transaction) LockCollection(_ context.Context, collectionID uuid.UUID) (rental.Collection, error) {
	collection, ok := tx.state.collections[collectionID]
	if !ok {
		return rental.Collection{}, rental.NewNotFound("collection", collectionID)
	}

	collection.AllowedUsers = slices.Clone(collection.AllowedUsers)

	return collection, nil
}

func (tx *transaction) CollectionItemIDs(_ context.Context, collectionID uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)
	for link := range tx.state.links {
		if link.CollectionID == collectionID {
			ids = append(ids, link.ItemID)
		}
	}

	slices.SortFunc(ids, rental.CompareIDs)

	return ids, nil
}

func (tx *transaction) MembershipsOf(_ context.Context, itemIDs []uuid.UUID) ([]rental.Membership, error) {
	wanted := make(map[uuid.UUID]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = struct{}{}
	}

	return tx.state.memberships(func(link rental.CollectionItem) bool {
		_, ok := wanted[link.ItemID]
		return ok
	}), nil
}

func (tx *transaction) LinkItems(_ context.Context, collectionID uuid.UUID, itemIDs []uuid.UUID) error {
	if _, ok := tx.state.collections[collectionID]; !ok {
		return rental.NewNotFound("collection", collectionID)
	}

	for _, id := range itemIDs {
		if _, ok := tx.state.items[id]; !ok {
			return rental.NewNotFound("item", id)
		}

		tx.state.links[rental.CollectionItem{CollectionID: collectionID, ItemID: id}] = struct{}{}
	}

	return nil
}

func (tx *transaction) UnlinkItems(_ context.Context, links []rental.CollectionItem) error {
	for _, link := range links {
		delete(tx.state.links, link)
	}

	return nil
}

func (tx *transaction) AddAllowedUser(_ context.Context, collectionID, patronID uuid.UUID) error {
	collection, ok := tx.state.collections[collectionID]
	if !ok {
		return rental.NewNotFound("collection", collectionID)
	}

	if !collection.Allows(patronID) {
		collection.AllowedUsers = rental.SortedUniqueIDs(append(slices.Clone(collection.AllowedUsers), patronID))
		tx.state.collections[collectionID] = collection
	}

	return nil
}

func (tx *transaction) LockAccessRequest(_ context.Context, requestID uuid.UUID) (rental.CollectionAccessRequest, error) {
	request, ok := tx.state.accessRequests[requestID]
	if !ok {
		return rental.CollectionAccessRequest{}, rental.NewNotFound("access request", requestID)
	}

	return request, nil
}

func (tx *transaction) HasPendingAccessRequest(_ context.Context, patronID, collectionID uuid.UUID) (bool, error) {
	for _, r := range tx.state.accessRequests {
		if r.PatronID == patronID && r.CollectionID == collectionID && r.Status == rental.RequestStatusPending {
			return true, nil
		}
	}

	return false, nil
}

func (tx *transaction) InsertAccessRequest(ctx context.Context, request rental.CollectionAccessRequest) error {
	if _, ok := tx.state.accessRequests[request.ID]; ok {
		return duplicateID("access request", request.ID)
	}

	if request.Status == rental.RequestStatusPending {
		pending, _ := tx.HasPendingAccessRequest(ctx, request.PatronID, request.CollectionID)
		if pending {
			return rental.NewDuplicateRequest("this collection")
		}
	}

	tx.state.accessRequests[request.ID] = request

	return nil
}

func (tx *transaction) UpdateAccessRequest(_ context.Context, request rental.CollectionAccessRequest) error {
	if _, ok := tx.state.accessRequests[request.ID]; !ok {
		return rental.NewNotFound("access request", request.ID)
	}

	tx.state.accessRequests[request.ID] = request

	return nil
}

func (tx *transaction) DeleteAccessRequest(_ context.Context, requestID uuid.UUID) error {
	delete(tx.state.accessRequests, requestID)

	return nil
}

func (tx *transaction) AppendEvents(_ context.Context, events ...rental.StorableEvent) error {
	tx.state.events = append(tx.state.events, events...)

	return nil
}

var _ rental.Tx = (*transaction)(nil)
