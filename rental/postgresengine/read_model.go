package postgresengine

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/rental/postgresengine/internal/adapters"
)

const (
	operationItemStock          = "item_stock"
	operationItemStocks         = "item_stocks"
	operationLibraries          = "libraries"
	operationCollections        = "collections"
	operationMemberships        = "memberships"
	operationPatronProfile      = "patron_profile"
	operationOpenBorrowGroups   = "open_borrow_groups"
	operationReturnedGroups     = "returned_borrow_groups"
	operationRentalRequests     = "rental_requests"
	operationCountByStatus      = "count_rental_requests_by_status"
	operationCountDecidedRental = "count_decided_rental_requests"
	operationCountDecidedAccess = "count_decided_access_requests"
	operationItemEvents         = "item_events"
)

func col(alias, name string) exp.IdentifierExpression {
	return goqu.I(alias + "." + name)
}

// itemStocksStatement selects items together with their number of open borrow records.
func (e *Engine) itemStocksStatement() *goqu.SelectDataset {
	b := e.builder()

	openBorrows := b.From(goqu.T(e.tables.borrowRecords).As(aliasBorrows)).
		Select(goqu.COUNT("*")).
		Where(
			col(aliasBorrows, colItemID).Eq(col(aliasItems, colID)),
			col(aliasBorrows, colReturnedAt).IsNull(),
		)

	columns := append(itemColumns(aliasItems), goqu.L("?", openBorrows).As(aliasOpenBorrows))

	return b.From(goqu.T(e.tables.items).As(aliasItems)).
		Select(columns...).
		Order(col(aliasItems, colTitle).Asc(), col(aliasItems, colID).Asc())
}

func (e *Engine) membershipsStatement() *goqu.SelectDataset {
	return e.builder().
		From(goqu.T(e.tables.collectionItems).As(aliasCollectionItems)).
		Join(
			goqu.T(e.tables.collections).As(aliasCollections),
			goqu.On(col(aliasCollections, colID).Eq(col(aliasCollectionItems, colCollectionID))),
		).
		Select(membershipColumns()...).
		Order(col(aliasCollectionItems, colItemID).Asc(), col(aliasCollectionItems, colCollectionID).Asc())
}

func (e *Engine) patron(ctx context.Context, q adapters.Querier, patronID uuid.UUID) (rental.Patron, error) {
	statement := e.builder().
		From(e.tables.patrons).
		Select(patronColumns()...).
		Where(goqu.C(colID).Eq(patronID.String()))

	patron, found, err := queryOne(ctx, e, q, statement, "patron", scanPatron)
	if err != nil {
		return rental.Patron{}, err
	}

	if !found {
		return rental.Patron{}, rental.NewNotFound("patron", patronID)
	}

	return patron, nil
}

// allowedUsers returns the allowed users per collection, of one collection or of all when collectionIDs is empty.
func (e *Engine) allowedUsers(
	ctx context.Context,
	q adapters.Querier,
	collectionIDs ...uuid.UUID,
) (map[uuid.UUID][]uuid.UUID, error) {

	statement := e.builder().
		From(e.tables.collectionAllowedUsers).
		Select(goqu.C(colCollectionID), goqu.C(colPatronID)).
		Order(goqu.C(colCollectionID).Asc(), goqu.C(colPatronID).Asc())

	if len(collectionIDs) > 0 {
		statement = statement.Where(goqu.Ex{colCollectionID: idValues(collectionIDs)})
	}

	users, err := queryRows(ctx, e, q, statement, "allowed users", scanAllowedUser)
	if err != nil {
		return nil, err
	}

	byCollection := make(map[uuid.UUID][]uuid.UUID)
	for _, user := range users {
		byCollection[user.collectionID] = append(byCollection[user.collectionID], user.patronID)
	}

	return byCollection, nil
}

func (e *Engine) ItemStock(ctx context.Context, itemID uuid.UUID) (stock rental.ItemStock, err error) {
	defer func(start time.Time) { e.observeRead(ctx, operationItemStock, start, err) }(time.Now())

	statement := e.itemStocksStatement().Where(col(aliasItems, colID).Eq(itemID.String()))

	stock, found, err := queryOne(ctx, e, e.db, statement, operationItemStock, scanItemStock)
	if err != nil {
		return rental.ItemStock{}, err
	}

	if !found {
		return rental.ItemStock{}, rental.NewNotFound("item", itemID)
	}

	return stock, nil
}

func (e *Engine) ItemStocks(ctx context.Context, filter rental.ItemFilter) (stocks []rental.ItemStock, err error) {
	defer func(start time.Time) { e.observeRead(ctx, operationItemStocks, start, err) }(time.Now())

	b := e.builder()
	statement := e.itemStocksStatement()

	if filter.LibraryID.Valid {
		statement = statement.Where(col(aliasItems, colLibraryID).Eq(filter.LibraryID.UUID.String()))
	}

	if filter.NotInAnyCollection {
		anyMembership := b.From(goqu.T(e.tables.collectionItems).As(aliasCollectionItems)).
			Select(goqu.L("1")).
			Where(col(aliasCollectionItems, colItemID).Eq(col(aliasItems, colID)))

		statement = statement.Where(goqu.L("NOT EXISTS ?", anyMembership))
	}

	if filter.NotInPrivateCollections {
		privateMembership := b.From(goqu.T(e.tables.collectionItems).As(aliasCollectionItems)).
			Join(
				goqu.T(e.tables.collections).As(aliasCollections),
				goqu.On(col(aliasCollections, colID).Eq(col(aliasCollectionItems, colCollectionID))),
			).
			Select(goqu.L("1")).
			Where(
				col(aliasCollectionItems, colItemID).Eq(col(aliasItems, colID)),
				col(aliasCollections, colIsPrivate).IsTrue(),
			)

		statement = statement.Where(goqu.L("NOT EXISTS ?", privateMembership))
	}

	return queryRows(ctx, e, e.db, statement, operationItemStocks, scanItemStock)
}

func (e *Engine) Libraries(ctx context.Context) (libraries []rental.Library, err error) {
	defer func(start time.Time) { e.observeRead(ctx, operationLibraries, start, err) }(time.Now())

	statement := e.builder().
		From(e.tables.libraries).
		Select(libraryColumns()...).
		Order(goqu.C(colTitle).Asc(), goqu.C(colID).Asc())

	return queryRows(ctx, e, e.db, statement, operationLibraries, scanLibrary)
}

func (e *Engine) Collections(ctx context.Context) (collections []rental.Collection, err error) {
	defer func(start time.Time) { e.observeRead(ctx, operationCollections, start, err) }(time.Now())

	statement := e.builder().
		From(e.tables.collections).
		Select(collectionColumns()...).
		Order(goqu.C(colTitle).Asc(), goqu.C(colID).Asc())

	collections, err = queryRows(ctx, e, e.db, statement, operationCollections, scanCollection)
	if err != nil {
		return nil, err
	}

	allowed, err := e.allowedUsers(ctx, e.db)
	if err != nil {
		return nil, err
	}

	for i := range collections {
		collections[i].AllowedUsers = allowed[collections[i].ID]
		if collections[i].AllowedUsers == nil {
			collections[i].AllowedUsers = []uuid.UUID{}
		}
	}

	return collections, nil
}

func (e *Engine) Memberships(ctx context.Context) (memberships []rental.Membership, err error) {
	defer func(start time.Time) { e.observeRead(ctx, operationMemberships, start, err) }(time.Now())

	return queryRows(ctx, e, e.db, e.membershipsStatement(), operationMemberships, scanMembership)
}

func (e *Engine) PatronProfile(ctx context.Context, patronID uuid.UUID) (patron rental.Patron, err error) {
	defer func(start time.Time) { e.observeRead(ctx, operationPatronProfile, start, err) }(time.Now())

	return e.patron(ctx, e.db, patronID)
}

func (e *Engine) OpenBorrowGroups(ctx context.Context, patronID uuid.NullUUID) (groups []rental.BorrowGroup, err error) {
	defer func(start time.Time) { e.observeRead(ctx, operationOpenBorrowGroups, start, err) }(time.Now())

	earliest := goqu.MIN(aliasBorrows + "." + colBorrowedAt)

	statement := e.builder().
		From(goqu.T(e.tables.borrowRecords).As(aliasBorrows)).
		Join(goqu.T(e.tables.items).As(aliasItems), goqu.On(col(aliasItems, colID).Eq(col(aliasBorrows, colItemID)))).
		Select(col(aliasBorrows, colPatronID), col(aliasBorrows, colItemID), col(aliasItems, colTitle), goqu.COUNT("*"), earliest).
		Where(col(aliasBorrows, colReturnedAt).IsNull()).
		GroupBy(col(aliasBorrows, colPatronID), col(aliasBorrows, colItemID), col(aliasItems, colTitle)).
		Order(earliest.Asc(), col(aliasBorrows, colPatronID).Asc(), col(aliasBorrows, colItemID).Asc())

	if patronID.Valid {
		statement = statement.Where(col(aliasBorrows, colPatronID).Eq(patronID.UUID.String()))
	}

	return queryRows(ctx, e, e.db, statement, operationOpenBorrowGroups, scanBorrowGroup)
}

func (e *Engine) ReturnedBorrowGroups(ctx context.Context, patronID uuid.UUID) (groups []rental.ReturnGroup, err error) {
	defer func(start time.Time) { e.observeRead(ctx, operationReturnedGroups, start, err) }(time.Now())

	latest := goqu.MAX(aliasBorrows + "." + colReturnedAt)

	statement := e.builder().
		From(goqu.T(e.tables.borrowRecords).As(aliasBorrows)).
		Join(goqu.T(e.tables.items).As(aliasItems), goqu.On(col(aliasItems, colID).Eq(col(aliasBorrows, colItemID)))).
		Select(col(aliasBorrows, colPatronID), col(aliasBorrows, colItemID), col(aliasItems, colTitle), goqu.COUNT("*"), latest).
		Where(
			col(aliasBorrows, colPatronID).Eq(patronID.String()),
			col(aliasBorrows, colReturnedAt).IsNotNull(),
		).
		GroupBy(col(aliasBorrows, colPatronID), col(aliasBorrows, colItemID), col(aliasItems, colTitle)).
		Order(latest.Desc(), col(aliasBorrows, colItemID).Asc())

	return queryRows(ctx, e, e.db, statement, operationReturnedGroups, scanReturnGroup)
}

func (e *Engine) RentalRequests(
	ctx context.Context,
	filter rental.RentalRequestFilter,
) (requests []rental.RentalRequest, err error) {

	defer func(start time.Time) { e.observeRead(ctx, operationRentalRequests, start, err) }(time.Now())

	statement := e.builder().
		From(e.tables.rentalRequests).
		Select(rentalRequestColumns()...).
		Order(goqu.C(colCreatedAt).Desc(), goqu.C(colID).Asc())

	if filter.Status != "" {
		statement = statement.Where(goqu.C(colStatus).Eq(string(filter.Status)))
	}

	if filter.PatronID.Valid {
		statement = statement.Where(goqu.C(colPatronID).Eq(filter.PatronID.UUID.String()))
	}

	return queryRows(ctx, e, e.db, statement, operationRentalRequests, scanRentalRequest)
}

func (e *Engine) CountRentalRequestsByStatus(
	ctx context.Context,
	patronID uuid.NullUUID,
) (counts map[rental.RequestStatus]int, err error) {

	defer func(start time.Time) { e.observeRead(ctx, operationCountByStatus, start, err) }(time.Now())

	statement := e.builder().
		From(e.tables.rentalRequests).
		Select(goqu.C(colStatus), goqu.COUNT("*")).
		GroupBy(goqu.C(colStatus))

	if patronID.Valid {
		statement = statement.Where(goqu.C(colPatronID).Eq(patronID.UUID.String()))
	}

	rows, err := queryRows(ctx, e, e.db, statement, operationCountByStatus, scanStatusCount)
	if err != nil {
		return nil, err
	}

	counts = make(map[rental.RequestStatus]int, len(rows))
	for _, row := range rows {
		counts[rental.RequestStatus(row.status)] = row.count
	}

	return counts, nil
}

func (e *Engine) countDecided(
	ctx context.Context,
	table string,
	patronID uuid.UUID,
	after *time.Time,
	action string,
) (int, error) {

	statement := e.builder().
		From(table).
		Select(goqu.COUNT("*")).
		Where(
			goqu.C(colPatronID).Eq(patronID.String()),
			goqu.C(colStatus).In(string(rental.RequestStatusApproved), string(rental.RequestStatusRejected)),
			goqu.C(colApprovedDate).IsNotNull(),
		)

	if after != nil {
		statement = statement.Where(goqu.C(colApprovedDate).Gt(rental.ToTimestamp(*after)))
	}

	n, _, err := queryOne(ctx, e, e.db, statement, action, scanInt)

	return n, err
}

func (e *Engine) CountDecidedRentalRequests(ctx context.Context, patronID uuid.UUID, after *time.Time) (n int, err error) {
	defer func(start time.Time) { e.observeRead(ctx, operationCountDecidedRental, start, err) }(time.Now())

	return e.countDecided(ctx, e.tables.rentalRequests, patronID, after, operationCountDecidedRental)
}

func (e *Engine) CountDecidedAccessRequests(ctx context.Context, patronID uuid.UUID, after *time.Time) (n int, err error) {
	defer func(start time.Time) { e.observeRead(ctx, operationCountDecidedAccess, start, err) }(time.Now())

	return e.countDecided(ctx, e.tables.accessRequests, patronID, after, operationCountDecidedAccess)
}

// itemReferenceExpressions matches payloads that reference the item through one of rental.ItemReferenceFields,
// either as a single id or as an element of an id array.
func itemReferenceExpressions(itemID uuid.UUID) ([]exp.Expression, error) {
	id := itemID.String()
	expressions := make([]exp.Expression, 0, 2*len(rental.ItemReferenceFields))

	for _, field := range rental.ItemReferenceFields {
		for _, value := range []any{id, []string{id}} {
			containment, err := jsoniter.ConfigFastest.Marshal(map[string]any{field: value})
			if err != nil {
				return nil, err
			}

			expressions = append(expressions, goqu.L("? @> "+castJsonb, goqu.C(colPayload), string(containment)))
		}
	}

	return expressions, nil
}

func (e *Engine) ItemEvents(ctx context.Context, itemID uuid.UUID) (events rental.StorableEvents, err error) {
	defer func(start time.Time) { e.observeRead(ctx, operationItemEvents, start, err) }(time.Now())

	references, err := itemReferenceExpressions(itemID)
	if err != nil {
		return nil, errors.Join(ErrBuildingQueryFailed, err)
	}

	statement := e.builder().
		From(e.tables.events).
		Select(goqu.C(colEventType), goqu.C(colOccurredAt), goqu.C(colPayload), goqu.C(colMetadata)).
		Where(goqu.Or(references...)).
		Order(goqu.C(colSequenceNumber).Asc())

	rows, err := queryRows(ctx, e, e.db, statement, operationItemEvents, scanEventRow)
	if err != nil {
		return nil, err
	}

	events = make(rental.StorableEvents, 0, len(rows))
	for _, row := range rows {
		event, buildErr := rental.BuildStorableEvent(row.eventType, row.occurredAt, row.payload, row.metadata)
		if buildErr != nil {
			e.logError(ctx, logMsgScanRowFailed, buildErr, logAttrAction, operationItemEvents)
			return nil, errors.Join(ErrBuildingStorableEventFailed, buildErr)
		}

		events = append(events, event)
	}

	return events, nil
}
