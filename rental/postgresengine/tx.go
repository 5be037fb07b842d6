package postgresengine

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/rental/postgresengine/internal/adapters"
)

type transaction struct {
	engine *Engine
	db     adapters.DBTx
}

func idValues(ids []uuid.UUID) []string {
	values := make([]string, len(ids))
	for i, id := range ids {
		values[i] = id.String()
	}

	return values
}

func nullableID(id uuid.NullUUID) any {
	if !id.Valid {
		return nil
	}

	return id.UUID.String()
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}

	return rental.ToTimestamp(*t)
}

func (tx *transaction) exec(ctx context.Context, statement sqlBuilder, action string) (int64, error) {
	return tx.engine.exec(ctx, tx.db, statement, action)
}

func (tx *transaction) count(ctx context.Context, statement sqlBuilder, action string) (int, error) {
	n, _, err := queryOne(ctx, tx.engine, tx.db, statement, action, scanInt)

	return n, err
}

func (tx *transaction) InsertLibrary(ctx context.Context, library rental.Library) error {
	statement := tx.engine.builder().
		Insert(tx.engine.tables.libraries).
		Rows(goqu.Record{
			colID:          library.ID.String(),
			colTitle:       library.Title,
			colDescription: library.Description,
			colLocation:    library.Location,
		})

	_, err := tx.exec(ctx, statement, "insert library")

	return err
}

func (tx *transaction) InsertItem(ctx context.Context, item rental.Item) error {
	b := tx.engine.builder()

	if item.LibraryID.Valid {
		exists, err := tx.count(ctx, b.From(tx.engine.tables.libraries).
			Select(goqu.COUNT("*")).
			Where(goqu.C(colID).Eq(item.LibraryID.UUID.String())),
			"check library")
		if err != nil {
			return err
		}

		if exists == 0 {
			return rental.NewNotFound("library", item.LibraryID.UUID)
		}
	}

	statement := b.
		Insert(tx.engine.tables.items).
		Rows(goqu.Record{
			colID:          item.ID.String(),
			colLibraryID:   nullableID(item.LibraryID),
			colTitle:       item.Title,
			colDescription: item.Description,
			colLocation:    item.Location,
			colQuantity:    item.Quantity,
			colStatus:      string(item.Status),
			colCreatedAt:   rental.ToTimestamp(item.CreatedAt),
		})

	_, err := tx.exec(ctx, statement, "insert item")

	return err
}

func (tx *transaction) LockItem(ctx context.Context, itemID uuid.UUID) (rental.Item, error) {
	statement := tx.engine.builder().
		From(tx.engine.tables.items).
		Select(itemColumns("")...).
		Where(goqu.C(colID).Eq(itemID.String())).
		ForUpdate(exp.Wait)

	item, found, err := queryOne(ctx, tx.engine, tx.db, statement, "lock item", scanItem)
	if err != nil {
		return rental.Item{}, err
	}

	if !found {
		return rental.Item{}, rental.NewNotFound("item", itemID)
	}

	return item, nil
}

func (tx *transaction) LockItems(ctx context.Context, itemIDs []uuid.UUID) ([]rental.Item, error) {
	sorted := rental.SortedUniqueIDs(itemIDs)
	if len(sorted) == 0 {
		return []rental.Item{}, nil
	}

	statement := tx.engine.builder().
		From(tx.engine.tables.items).
		Select(itemColumns("")...).
		Where(goqu.Ex{colID: idValues(sorted)}).
		Order(goqu.C(colID).Asc()).
		ForUpdate(exp.Wait)

	items, err := queryRows(ctx, tx.engine, tx.db, statement, "lock items", scanItem)
	if err != nil {
		return nil, err
	}

	if len(items) != len(sorted) {
		for i, id := range sorted {
			if i >= len(items) || items[i].ID != id {
				return nil, rental.NewNotFound("item", id)
			}
		}
	}

	return items, nil
}

func (tx *transaction) UpdateItemStock(ctx context.Context, itemID uuid.UUID, quantity int, status rental.ItemStatus) error {
	statement := tx.engine.builder().
		Update(tx.engine.tables.items).
		Set(goqu.Record{colQuantity: quantity, colStatus: string(status)}).
		Where(goqu.C(colID).Eq(itemID.String()))

	rowsAffected, err := tx.exec(ctx, statement, "update item stock")
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return rental.NewNotFound("item", itemID)
	}

	return nil
}

func (tx *transaction) CountOpenBorrows(ctx context.Context, itemID uuid.UUID) (int, error) {
	statement := tx.engine.builder().
		From(tx.engine.tables.borrowRecords).
		Select(goqu.COUNT("*")).
		Where(
			goqu.C(colItemID).Eq(itemID.String()),
			goqu.C(colReturnedAt).IsNull(),
		)

	return tx.count(ctx, statement, "count open borrows")
}

func (tx *transaction) CountOpenBorrowsByPatron(ctx context.Context, itemID, patronID uuid.UUID) (int, error) {
	statement := tx.engine.builder().
		From(tx.engine.tables.borrowRecords).
		Select(goqu.COUNT("*")).
		Where(
			goqu.C(colItemID).Eq(itemID.String()),
			goqu.C(colPatronID).Eq(patronID.String()),
			goqu.C(colReturnedAt).IsNull(),
		)

	return tx.count(ctx, statement, "count open borrows by patron")
}

func (tx *transaction) LockOldestOpenBorrows(
	ctx context.Context,
	itemID, patronID uuid.UUID,
	limit int,
) ([]rental.BorrowRecord, error) {

	if limit <= 0 {
		return []rental.BorrowRecord{}, nil
	}

	statement := tx.engine.builder().
		From(tx.engine.tables.borrowRecords).
		Select(borrowRecordColumns()...).
		Where(
			goqu.C(colItemID).Eq(itemID.String()),
			goqu.C(colPatronID).Eq(patronID.String()),
			goqu.C(colReturnedAt).IsNull(),
		).
		Order(goqu.C(colBorrowedAt).Asc(), goqu.C(colID).Asc()).
		Limit(uint(limit)).
		ForUpdate(exp.Wait)

	return queryRows(ctx, tx.engine, tx.db, statement, "lock oldest open borrows", scanBorrowRecord)
}

func (tx *transaction) InsertBorrowRecords(ctx context.Context, records []rental.BorrowRecord) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([]any, len(records))
	for i, r := range records {
		rows[i] = goqu.Record{
			colID:              r.ID.String(),
			colItemID:          r.ItemID.String(),
			colPatronID:        r.PatronID.String(),
			colRentalRequestID: nullableID(r.RentalRequestID),
			colBorrowedAt:      rental.ToTimestamp(r.BorrowedAt),
			colReturnedAt:      nullableTime(r.ReturnedAt),
		}
	}

	statement := tx.engine.builder().Insert(tx.engine.tables.borrowRecords).Rows(rows...)

	_, err := tx.exec(ctx, statement, "insert borrow records")

	return err
}

func (tx *transaction) CloseBorrowRecords(ctx context.Context, recordIDs []uuid.UUID, returnedAt time.Time) (int64, error) {
	if len(recordIDs) == 0 {
		return 0, nil
	}

	statement := tx.engine.builder().
		Update(tx.engine.tables.borrowRecords).
		Set(goqu.Record{colReturnedAt: rental.ToTimestamp(returnedAt)}).
		Where(
			goqu.Ex{colID: idValues(recordIDs)},
			goqu.C(colReturnedAt).IsNull(),
		)

	return tx.exec(ctx, statement, "close borrow records")
}

func (tx *transaction) InsertPatron(ctx context.Context, patron rental.Patron) error {
	statement := tx.engine.builder().
		Insert(tx.engine.tables.patrons).
		Rows(goqu.Record{
			colID:                  patron.ID.String(),
			colName:                patron.Name,
			colRole:                patron.Role.String(),
			colRentalsLastViewedAt: nullableTime(patron.RentalsLastViewedAt),
			colAccessLastViewedAt:  nullableTime(patron.AccessRequestsLastViewedAt),
		})

	_, err := tx.exec(ctx, statement, "insert patron")

	return err
}

func (tx *transaction) Patron(ctx context.Context, patronID uuid.UUID) (rental.Patron, error) {
	return tx.engine.patron(ctx, tx.db, patronID)
}

func (tx *transaction) UpdatePatronViewedAt(
	ctx context.Context,
	patronID uuid.UUID,
	rentalsViewedAt, accessViewedAt *time.Time,
) error {

	record := goqu.Record{}
	if rentalsViewedAt != nil {
		record[colRentalsLastViewedAt] = rental.ToTimestamp(*rentalsViewedAt)
	}

	if accessViewedAt != nil {
		record[colAccessLastViewedAt] = rental.ToTimestamp(*accessViewedAt)
	}

	if len(record) == 0 {
		_, err := tx.Patron(ctx, patronID)
		return err
	}

	statement := tx.engine.builder().
		Update(tx.engine.tables.patrons).
		Set(record).
		Where(goqu.C(colID).Eq(patronID.String()))

	rowsAffected, err := tx.exec(ctx, statement, "update patron viewed at")
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return rental.NewNotFound("patron", patronID)
	}

	return nil
}

func (tx *transaction) LockRentalRequest(ctx context.Context, requestID uuid.UUID) (rental.RentalRequest, error) {
	statement := tx.engine.builder().
		From(tx.engine.tables.rentalRequests).
		Select(rentalRequestColumns()...).
		Where(goqu.C(colID).Eq(requestID.String())).
		ForUpdate(exp.Wait)

	request, found, err := queryOne(ctx, tx.engine, tx.db, statement, "lock rental request", scanRentalRequest)
	if err != nil {
		return rental.RentalRequest{}, err
	}

	if !found {
		return rental.RentalRequest{}, rental.NewNotFound("rental request", requestID)
	}

	return request, nil
}

func (tx *transaction) HasPendingRentalRequest(ctx context.Context, patronID, itemID uuid.UUID) (bool, error) {
	statement := tx.engine.builder().
		From(tx.engine.tables.rentalRequests).
		Select(goqu.COUNT("*")).
		Where(
			goqu.C(colPatronID).Eq(patronID.String()),
			goqu.C(colItemID).Eq(itemID.String()),
			goqu.C(colStatus).Eq(string(rental.RequestStatusPending)),
		)

	n, err := tx.count(ctx, statement, "check pending rental request")

	return n > 0, err
}

func rentalRequestRecord(request rental.RentalRequest) goqu.Record {
	return goqu.Record{
		colItemID:         request.ItemID.String(),
		colPatronID:       request.PatronID.String(),
		colQuantity:       request.Quantity,
		colStatus:         string(request.Status),
		colApproverID:     nullableID(request.ApproverID),
		colApprovedDate:   nullableTime(request.ApprovedDate),
		colRentStartDate:  nullableTime(request.RentStartDate),
		colRentReturnDate: nullableTime(request.RentReturnDate),
		colCreatedAt:      rental.ToTimestamp(request.CreatedAt),
	}
}

func (tx *transaction) InsertRentalRequest(ctx context.Context, request rental.RentalRequest) error {
	record := rentalRequestRecord(request)
	record[colID] = request.ID.String()

	statement := tx.engine.builder().Insert(tx.engine.tables.rentalRequests).Rows(record)

	_, err := tx.exec(ctx, statement, "insert rental request")

	return err
}

func (tx *transaction) UpdateRentalRequest(ctx context.Context, request rental.RentalRequest) error {
	statement := tx.engine.builder().
		Update(tx.engine.tables.rentalRequests).
		Set(rentalRequestRecord(request)).
		Where(goqu.C(colID).Eq(request.ID.String()))

	rowsAffected, err := tx.exec(ctx, statement, "update rental request")
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return rental.NewNotFound("rental request", request.ID)
	}

	return nil
}

func (tx *transaction) DeleteRentalRequest(ctx context.Context, requestID uuid.UUID) error {
	statement := tx.engine.builder().
		Delete(tx.engine.tables.rentalRequests).
		Where(goqu.C(colID).Eq(requestID.String()))

	_, err := tx.exec(ctx, statement, "delete rental request")

	return err
}

func (tx *transaction) InsertCollection(ctx context.Context, collection rental.Collection) error {
	statement := tx.engine.builder().
		Insert(tx.engine.tables.collections).
		Rows(goqu.Record{
			colID:          collection.ID.String(),
			colTitle:       collection.Title,
			colDescription: collection.Description,
			colIsPrivate:   collection.IsPrivate,
			colCreatedBy:   collection.CreatedBy.String(),
			colCreatedAt:   rental.ToTimestamp(collection.CreatedAt),
		})

	if _, err := tx.exec(ctx, statement, "insert collection"); err != nil {
		return err
	}

	allowed := rental.SortedUniqueIDs(collection.AllowedUsers)
	if len(allowed) == 0 {
		return nil
	}

	rows := make([]any, len(allowed))
	for i, patronID := range allowed {
		rows[i] = goqu.Record{colCollectionID: collection.ID.String(), colPatronID: patronID.String()}
	}

	_, err := tx.exec(ctx, tx.engine.builder().Insert(tx.engine.tables.collectionAllowedUsers).Rows(rows...), "insert allowed users")

	return err
}

func (tx *transaction) LockCollection(ctx context.Context, collectionID uuid.UUID) (rental.Collection, error) {
	statement := tx.engine.builder().
		From(tx.engine.tables.collections).
		Select(collectionColumns()...).
		Where(goqu.C(colID).Eq(collectionID.String())).
		ForUpdate(exp.Wait)

	collection, found, err := queryOne(ctx, tx.engine, tx.db, statement, "lock collection", scanCollection)
	if err != nil {
		return rental.Collection{}, err
	}

	if !found {
		return rental.Collection{}, rental.NewNotFound("collection", collectionID)
	}

	allowed, err := tx.engine.allowedUsers(ctx, tx.db, collectionID)
	if err != nil {
		return rental.Collection{}, err
	}

	collection.AllowedUsers = allowed[collectionID]
	if collection.AllowedUsers == nil {
		collection.AllowedUsers = []uuid.UUID{}
	}

	return collection, nil
}

func (tx *transaction) CollectionItemIDs(ctx context.Context, collectionID uuid.UUID) ([]uuid.UUID, error) {
	statement := tx.engine.builder().
		From(tx.engine.tables.collectionItems).
		Select(goqu.C(colItemID)).
		Where(goqu.C(colCollectionID).Eq(collectionID.String())).
		Order(goqu.C(colItemID).Asc())

	return queryRows(ctx, tx.engine, tx.db, statement, "collection item ids", scanID)
}

func (tx *transaction) MembershipsOf(ctx context.Context, itemIDs []uuid.UUID) ([]rental.Membership, error) {
	if len(itemIDs) == 0 {
		return []rental.Membership{}, nil
	}

	statement := tx.engine.membershipsStatement().
		Where(goqu.I(aliasCollectionItems + "." + colItemID).In(idValues(itemIDs)))

	return queryRows(ctx, tx.engine, tx.db, statement, "memberships of items", scanMembership)
}

func (tx *transaction) LinkItems(ctx context.Context, collectionID uuid.UUID, itemIDs []uuid.UUID) error {
	if len(itemIDs) == 0 {
		return nil
	}

	rows := make([]any, len(itemIDs))
	for i, itemID := range itemIDs {
		rows[i] = goqu.Record{colCollectionID: collectionID.String(), colItemID: itemID.String()}
	}

	statement := tx.engine.builder().
		Insert(tx.engine.tables.collectionItems).
		Rows(rows...).
		OnConflict(goqu.DoNothing())

	_, err := tx.exec(ctx, statement, "link items")

	return err
}

func (tx *transaction) UnlinkItems(ctx context.Context, links []rental.CollectionItem) error {
	if len(links) == 0 {
		return nil
	}

	pairs := make([]exp.Expression, len(links))
	for i, link := range links {
		pairs[i] = goqu.Ex{
			colCollectionID: link.CollectionID.String(),
			colItemID:       link.ItemID.String(),
		}
	}

	statement := tx.engine.builder().
		Delete(tx.engine.tables.collectionItems).
		Where(goqu.Or(pairs...))

	_, err := tx.exec(ctx, statement, "unlink items")

	return err
}

func (tx *transaction) AddAllowedUser(ctx context.Context, collectionID, patronID uuid.UUID) error {
	statement := tx.engine.builder().
		Insert(tx.engine.tables.collectionAllowedUsers).
		Rows(goqu.Record{colCollectionID: collectionID.String(), colPatronID: patronID.String()}).
		OnConflict(goqu.DoNothing())

	_, err := tx.exec(ctx, statement, "add allowed user")

	return err
}

func (tx *transaction) LockAccessRequest(ctx context.Context, requestID uuid.UUID) (rental.CollectionAccessRequest, error) {
	statement := tx.engine.builder().
		From(tx.engine.tables.accessRequests).
		Select(accessRequestColumns()...).
		Where(goqu.C(colID).Eq(requestID.String())).
		ForUpdate(exp.Wait)

	request, found, err := queryOne(ctx, tx.engine, tx.db, statement, "lock access request", scanAccessRequest)
	if err != nil {
		return rental.CollectionAccessRequest{}, err
	}

	if !found {
		return rental.CollectionAccessRequest{}, rental.NewNotFound("access request", requestID)
	}

	return request, nil
}

func (tx *transaction) HasPendingAccessRequest(ctx context.Context, patronID, collectionID uuid.UUID) (bool, error) {
	statement := tx.engine.builder().
		From(tx.engine.tables.accessRequests).
		Select(goqu.COUNT("*")).
		Where(
			goqu.C(colPatronID).Eq(patronID.String()),
			goqu.C(colCollectionID).Eq(collectionID.String()),
			goqu.C(colStatus).Eq(string(rental.RequestStatusPending)),
		)

	n, err := tx.count(ctx, statement, "check pending access request")

	return n > 0, err
}

func accessRequestRecord(request rental.CollectionAccessRequest) goqu.Record {
	return goqu.Record{
		colCollectionID: request.CollectionID.String(),
		colPatronID:     request.PatronID.String(),
		colStatus:       string(request.Status),
		colApproverID:   nullableID(request.ApproverID),
		colApprovedDate: nullableTime(request.ApprovedDate),
		colCreatedAt:    rental.ToTimestamp(request.CreatedAt),
	}
}

func (tx *transaction) InsertAccessRequest(ctx context.Context, request rental.CollectionAccessRequest) error {
	record := accessRequestRecord(request)
	record[colID] = request.ID.String()

	statement := tx.engine.builder().Insert(tx.engine.tables.accessRequests).Rows(record)

	_, err := tx.exec(ctx, statement, "insert access request")

	return err
}

func (tx *transaction) UpdateAccessRequest(ctx context.Context, request rental.CollectionAccessRequest) error {
	statement := tx.engine.builder().
		Update(tx.engine.tables.accessRequests).
		Set(accessRequestRecord(request)).
		Where(goqu.C(colID).Eq(request.ID.String()))

	rowsAffected, err := tx.exec(ctx, statement, "update access request")
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return rental.NewNotFound("access request", request.ID)
	}

	return nil
}

func (tx *transaction) DeleteAccessRequest(ctx context.Context, requestID uuid.UUID) error {
	statement := tx.engine.builder().
		Delete(tx.engine.tables.accessRequests).
		Where(goqu.C(colID).Eq(requestID.String()))

	_, err := tx.exec(ctx, statement, "delete access request")

	return err
}

func (tx *transaction) AppendEvents(ctx context.Context, events ...rental.StorableEvent) error {
	if len(events) == 0 {
		return nil
	}

	rows := make([]any, len(events))
	for i, event := range events {
		rows[i] = goqu.Record{
			colEventType:  event.EventType,
			colOccurredAt: event.OccurredAt,
			colPayload:    goqu.L(castJsonb, string(event.PayloadJSON)),
			colMetadata:   goqu.L(castJsonb, string(event.MetadataJSON)),
		}
	}

	statement := tx.engine.builder().Insert(tx.engine.tables.events).Rows(rows...)

	_, err := tx.exec(ctx, statement, "append events")

	return err
}

var _ rental.Tx = (*transaction)(nil)
