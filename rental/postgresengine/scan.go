package postgresengine

import (
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/rental/postgresengine/internal/adapters"
)

// qualified turns column names into (optionally alias-qualified) identifiers for Select.
func qualified(alias string, cols ...string) []any {
	identifiers := make([]any, len(cols))
	for i, col := range cols {
		if alias == "" {
			identifiers[i] = goqu.C(col)
			continue
		}

		identifiers[i] = goqu.I(alias + "." + col)
	}

	return identifiers
}

func itemColumns(alias string) []any {
	return qualified(alias, colID, colLibraryID, colTitle, colDescription, colLocation, colQuantity, colStatus, colCreatedAt)
}

func libraryColumns() []any {
	return qualified("", colID, colTitle, colDescription, colLocation)
}

func patronColumns() []any {
	return qualified("", colID, colName, colRole, colRentalsLastViewedAt, colAccessLastViewedAt)
}

func borrowRecordColumns() []any {
	return qualified("", colID, colItemID, colPatronID, colRentalRequestID, colBorrowedAt, colReturnedAt)
}

func rentalRequestColumns() []any {
	return qualified("",
		colID, colItemID, colPatronID, colQuantity, colStatus,
		colApproverID, colApprovedDate, colRentStartDate, colRentReturnDate, colCreatedAt,
	)
}

func collectionColumns() []any {
	return qualified("", colID, colTitle, colDescription, colIsPrivate, colCreatedBy, colCreatedAt)
}

func accessRequestColumns() []any {
	return qualified("", colID, colCollectionID, colPatronID, colStatus, colApproverID, colApprovedDate, colCreatedAt)
}

func membershipColumns() []any {
	return []any{
		goqu.I(aliasCollectionItems + "." + colItemID),
		goqu.I(aliasCollectionItems + "." + colCollectionID),
		goqu.I(aliasCollections + "." + colTitle),
		goqu.I(aliasCollections + "." + colIsPrivate),
	}
}

// utc normalizes a nullable timestamp read from the database.
func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	normalized := rental.ToTimestamp(*t)

	return &normalized
}

func scanItem(rows adapters.DBRows) (rental.Item, error) {
	var item rental.Item
	var status string

	if err := rows.Scan(
		&item.ID, &item.LibraryID, &item.Title, &item.Description, &item.Location,
		&item.Quantity, &status, &item.CreatedAt,
	); err != nil {
		return rental.Item{}, err
	}

	item.Status = rental.ItemStatus(status)
	item.CreatedAt = rental.ToTimestamp(item.CreatedAt)

	return item, nil
}

func scanItemStock(rows adapters.DBRows) (rental.ItemStock, error) {
	var stock rental.ItemStock
	var status string

	if err := rows.Scan(
		&stock.Item.ID, &stock.Item.LibraryID, &stock.Item.Title, &stock.Item.Description, &stock.Item.Location,
		&stock.Item.Quantity, &status, &stock.Item.CreatedAt, &stock.OpenBorrows,
	); err != nil {
		return rental.ItemStock{}, err
	}

	stock.Item.Status = rental.ItemStatus(status)
	stock.Item.CreatedAt = rental.ToTimestamp(stock.Item.CreatedAt)

	return stock, nil
}

func scanLibrary(rows adapters.DBRows) (rental.Library, error) {
	var library rental.Library
	err := rows.Scan(&library.ID, &library.Title, &library.Description, &library.Location)

	return library, err
}

func scanPatron(rows adapters.DBRows) (rental.Patron, error) {
	var patron rental.Patron
	var role string

	if err := rows.Scan(
		&patron.ID, &patron.Name, &role, &patron.RentalsLastViewedAt, &patron.AccessRequestsLastViewedAt,
	); err != nil {
		return rental.Patron{}, err
	}

	parsed, parseErr := rental.ParseRole(role)
	if parseErr != nil {
		return rental.Patron{}, parseErr
	}

	patron.Role = parsed
	patron.RentalsLastViewedAt = utc(patron.RentalsLastViewedAt)
	patron.AccessRequestsLastViewedAt = utc(patron.AccessRequestsLastViewedAt)

	return patron, nil
}

func scanBorrowRecord(rows adapters.DBRows) (rental.BorrowRecord, error) {
	var record rental.BorrowRecord

	if err := rows.Scan(
		&record.ID, &record.ItemID, &record.PatronID, &record.RentalRequestID, &record.BorrowedAt, &record.ReturnedAt,
	); err != nil {
		return rental.BorrowRecord{}, err
	}

	record.BorrowedAt = rental.ToTimestamp(record.BorrowedAt)
	record.ReturnedAt = utc(record.ReturnedAt)

	return record, nil
}

func scanRentalRequest(rows adapters.DBRows) (rental.RentalRequest, error) {
	var request rental.RentalRequest
	var status string

	if err := rows.Scan(
		&request.ID, &request.ItemID, &request.PatronID, &request.Quantity, &status,
		&request.ApproverID, &request.ApprovedDate, &request.RentStartDate, &request.RentReturnDate, &request.CreatedAt,
	); err != nil {
		return rental.RentalRequest{}, err
	}

	request.Status = rental.RequestStatus(status)
	request.ApprovedDate = utc(request.ApprovedDate)
	request.RentStartDate = utc(request.RentStartDate)
	request.RentReturnDate = utc(request.RentReturnDate)
	request.CreatedAt = rental.ToTimestamp(request.CreatedAt)

	return request, nil
}

func scanCollection(rows adapters.DBRows) (rental.Collection, error) {
	var collection rental.Collection

	if err := rows.Scan(
		&collection.ID, &collection.Title, &collection.Description, &collection.IsPrivate,
		&collection.CreatedBy, &collection.CreatedAt,
	); err != nil {
		return rental.Collection{}, err
	}

	collection.CreatedAt = rental.ToTimestamp(collection.CreatedAt)

	return collection, nil
}

type allowedUser struct {
	collectionID uuid.UUID
	patronID     uuid.UUID
}

func scanAllowedUser(rows adapters.DBRows) (allowedUser, error) {
	var user allowedUser
	err := rows.Scan(&user.collectionID, &user.patronID)

	return user, err
}

func scanAccessRequest(rows adapters.DBRows) (rental.CollectionAccessRequest, error) {
	var request rental.CollectionAccessRequest
	var status string

	if err := rows.Scan(
		&request.ID, &request.CollectionID, &request.PatronID, &status,
		&request.ApproverID, &request.ApprovedDate, &request.CreatedAt,
	); err != nil {
		return rental.CollectionAccessRequest{}, err
	}

	request.Status = rental.RequestStatus(status)
	request.ApprovedDate = utc(request.ApprovedDate)
	request.CreatedAt = rental.ToTimestamp(request.CreatedAt)

	return request, nil
}

func scanMembership(rows adapters.DBRows) (rental.Membership, error) {
	var membership rental.Membership
	err := rows.Scan(&membership.ItemID, &membership.CollectionID, &membership.CollectionTitle, &membership.IsPrivate)

	return membership, err
}

func scanBorrowGroup(rows adapters.DBRows) (rental.BorrowGroup, error) {
	var group rental.BorrowGroup

	if err := rows.Scan(&group.PatronID, &group.ItemID, &group.ItemTitle, &group.Count, &group.EarliestBorrowedAt); err != nil {
		return rental.BorrowGroup{}, err
	}

	group.EarliestBorrowedAt = rental.ToTimestamp(group.EarliestBorrowedAt)

	return group, nil
}

func scanReturnGroup(rows adapters.DBRows) (rental.ReturnGroup, error) {
	var group rental.ReturnGroup

	if err := rows.Scan(&group.PatronID, &group.ItemID, &group.ItemTitle, &group.Count, &group.LatestReturnedAt); err != nil {
		return rental.ReturnGroup{}, err
	}

	group.LatestReturnedAt = rental.ToTimestamp(group.LatestReturnedAt)

	return group, nil
}

type eventRow struct {
	eventType  string
	occurredAt time.Time
	payload    []byte
	metadata   []byte
}

func scanEventRow(rows adapters.DBRows) (eventRow, error) {
	var row eventRow
	err := rows.Scan(&row.eventType, &row.occurredAt, &row.payload, &row.metadata)

	return row, err
}

type statusCount struct {
	status string
	count  int
}

func scanStatusCount(rows adapters.DBRows) (statusCount, error) {
	var sc statusCount
	err := rows.Scan(&sc.status, &sc.count)

	return sc, err
}
