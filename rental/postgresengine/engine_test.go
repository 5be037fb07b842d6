package postgresengine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/rental/postgresengine"
	"github.com/AntonStoeckl/gear-rental-go/testutil/observability/testdoubles"
	"github.com/AntonStoeckl/gear-rental-go/testutil/postgreswrapper"
)

const tablePrefix = "pgengine_test_"

var fixedTime = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newEngine(t *testing.T, options ...postgresengine.Option) *postgresengine.Engine {
	t.Helper()

	return postgreswrapper.CreateWrapperWithTestConfig(t, tablePrefix, options...).Engine()
}

func within(t *testing.T, engine rental.Engine, fn rental.TxFunc) {
	t.Helper()

	require.NoError(t, engine.WithinTransaction(context.Background(), fn), "error in arranging test data")
}

func givenItem(t *testing.T, engine rental.Engine, title string, quantity int) rental.Item {
	t.Helper()

	item := rental.Item{
		ID:        uuid.New(),
		Title:     title,
		Quantity:  quantity,
		Status:    rental.ItemStatusAvailable,
		CreatedAt: fixedTime,
	}

	within(t, engine, func(ctx context.Context, tx rental.Tx) error {
		return tx.InsertItem(ctx, item)
	})

	return item
}

func givenOpenBorrows(t *testing.T, engine rental.Engine, item rental.Item, patronID uuid.UUID, borrowedAt ...time.Time) []rental.BorrowRecord {
	t.Helper()

	records := make([]rental.BorrowRecord, len(borrowedAt))
	for i, at := range borrowedAt {
		records[i] = rental.BorrowRecord{ID: uuid.New(), ItemID: item.ID, PatronID: patronID, BorrowedAt: at}
	}

	within(t, engine, func(ctx context.Context, tx rental.Tx) error {
		return tx.InsertBorrowRecords(ctx, records)
	})

	return records
}

func Test_WithinTransaction_RollsBack_WhenFunctionFails(t *testing.T) {
	// arrange
	engine := newEngine(t)
	item := givenItem(t, engine, "Tent", 5)
	failure := errors.New("boom")

	// act
	err := engine.WithinTransaction(context.Background(), func(ctx context.Context, tx rental.Tx) error {
		if err := tx.InsertBorrowRecords(ctx, []rental.BorrowRecord{
			{ID: uuid.New(), ItemID: item.ID, PatronID: uuid.New(), BorrowedAt: fixedTime},
		}); err != nil {
			return err
		}

		if err := tx.UpdateItemStock(ctx, item.ID, 5, rental.ItemStatusRentedOut); err != nil {
			return err
		}

		return failure
	})

	// assert
	assert.ErrorIs(t, err, failure)

	stock, stockErr := engine.ItemStock(context.Background(), item.ID)
	require.NoError(t, stockErr)
	assert.Equal(t, 0, stock.OpenBorrows)
	assert.Equal(t, rental.ItemStatusAvailable, stock.Item.Status)
}

func Test_WithinTransaction_RecordsObservability(t *testing.T) {
	// arrange
	metrics := testdoubles.NewMetricsCollectorSpy(true)
	tracing := testdoubles.NewTracingCollectorSpy(true)
	logger := testdoubles.NewContextualLoggerSpy(true)
	engine := newEngine(t,
		postgresengine.WithMetrics(metrics),
		postgresengine.WithTracing(tracing),
		postgresengine.WithContextualLogger(logger),
	)
	item := givenItem(t, engine, "Tent", 1)
	metrics.Reset()

	// act
	err := engine.WithinTransaction(context.Background(), func(ctx context.Context, tx rental.Tx) error {
		_, lockErr := tx.LockItem(ctx, item.ID)
		return lockErr
	})

	// assert
	require.NoError(t, err)
	assert.True(t, metrics.HasDurationRecordForMetric("rental_store_tx_duration_seconds").WithStatus("success").Assert())
	assert.True(t, tracing.HasFinishedSpan("rentalstore.tx", "success"))
	assert.True(t, logger.HasDebugLog("executed sql for: lock item"))
}

func Test_WithinTransaction_ReleasesRowLocks_WhenFunctionPanics(t *testing.T) {
	// arrange
	engine := newEngine(t)
	item := givenItem(t, engine, "Tent", 1)

	// act
	assert.Panics(t, func() {
		_ = engine.WithinTransaction(context.Background(), func(ctx context.Context, tx rental.Tx) error {
			if _, err := tx.LockItem(ctx, item.ID); err != nil {
				return err
			}

			panic("boom")
		})
	})

	// assert
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := engine.WithinTransaction(ctx, func(ctx context.Context, tx rental.Tx) error {
		_, lockErr := tx.LockItem(ctx, item.ID)
		return lockErr
	})
	assert.NoError(t, err, "the row lock of the panicked transaction must be released")
}

func Test_LockItem_ReportsNotFound(t *testing.T) {
	// arrange
	engine := newEngine(t)
	missing := uuid.New()

	// act
	err := engine.WithinTransaction(context.Background(), func(ctx context.Context, tx rental.Tx) error {
		_, lockErr := tx.LockItem(ctx, missing)
		return lockErr
	})

	// assert
	assert.ErrorIs(t, err, rental.ErrNotFound)
}

func Test_LockItems_ReturnsItemsInIDOrder_AndReportsMissingItems(t *testing.T) {
	// arrange
	engine := newEngine(t)
	first := givenItem(t, engine, "Tent", 1)
	second := givenItem(t, engine, "Stove", 1)
	missing := uuid.New()

	var locked []rental.Item

	// act
	err := engine.WithinTransaction(context.Background(), func(ctx context.Context, tx rental.Tx) error {
		var lockErr error
		locked, lockErr = tx.LockItems(ctx, []uuid.UUID{second.ID, first.ID, second.ID})

		return lockErr
	})
	missingErr := engine.WithinTransaction(context.Background(), func(ctx context.Context, tx rental.Tx) error {
		_, lockErr := tx.LockItems(ctx, []uuid.UUID{first.ID, missing})
		return lockErr
	})

	// assert
	require.NoError(t, err)
	require.Len(t, locked, 2)
	assert.Equal(t, -1, rental.CompareIDs(locked[0].ID, locked[1].ID))
	assert.ErrorIs(t, missingErr, rental.ErrNotFound)
}

func Test_LockOldestOpenBorrows_ReturnsOldestFirst(t *testing.T) {
	// arrange
	engine := newEngine(t)
	item := givenItem(t, engine, "Tent", 5)
	patronID := uuid.New()
	records := givenOpenBorrows(t, engine, item, patronID,
		fixedTime.Add(2*time.Hour), fixedTime, fixedTime.Add(time.Hour))
	givenOpenBorrows(t, engine, item, uuid.New(), fixedTime.Add(-time.Hour))

	var locked []rental.BorrowRecord

	// act
	err := engine.WithinTransaction(context.Background(), func(ctx context.Context, tx rental.Tx) error {
		var lockErr error
		locked, lockErr = tx.LockOldestOpenBorrows(ctx, item.ID, patronID, 2)

		return lockErr
	})

	// assert
	require.NoError(t, err)
	require.Len(t, locked, 2)
	assert.Equal(t, records[1].ID, locked[0].ID)
	assert.Equal(t, records[2].ID, locked[1].ID)
	assert.True(t, locked[0].BorrowedAt.Equal(fixedTime))
}

func Test_CloseBorrowRecords_CountsOnlyOpenRecords(t *testing.T) {
	// arrange
	engine := newEngine(t)
	item := givenItem(t, engine, "Tent", 5)
	records := givenOpenBorrows(t, engine, item, uuid.New(), fixedTime)

	var first, second int64

	// act
	within(t, engine, func(ctx context.Context, tx rental.Tx) error {
		var err error
		if first, err = tx.CloseBorrowRecords(ctx, []uuid.UUID{records[0].ID}, fixedTime.Add(time.Hour)); err != nil {
			return err
		}

		second, err = tx.CloseBorrowRecords(ctx, []uuid.UUID{records[0].ID}, fixedTime.Add(2*time.Hour))

		return err
	})

	// assert
	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(0), second)
}

func Test_InsertRentalRequest_ReportsDuplicatePendingRequest(t *testing.T) {
	// arrange
	engine := newEngine(t)
	item := givenItem(t, engine, "Tent", 5)
	patronID := uuid.New()
	request := rental.RentalRequest{
		ID:        uuid.New(),
		ItemID:    item.ID,
		PatronID:  patronID,
		Quantity:  1,
		Status:    rental.RequestStatusPending,
		CreatedAt: fixedTime,
	}

	within(t, engine, func(ctx context.Context, tx rental.Tx) error {
		return tx.InsertRentalRequest(ctx, request)
	})

	// act
	err := engine.WithinTransaction(context.Background(), func(ctx context.Context, tx rental.Tx) error {
		duplicate := request
		duplicate.ID = uuid.New()

		return tx.InsertRentalRequest(ctx, duplicate)
	})

	// assert
	assert.ErrorIs(t, err, rental.ErrDuplicateRequest)
}

func Test_ItemStocks_AppliesFilters(t *testing.T) {
	// arrange
	engine := newEngine(t)
	free := givenItem(t, engine, "A free item", 1)
	public := givenItem(t, engine, "B public item", 1)
	private := givenItem(t, engine, "C private item", 1)
	publicCollection := rental.Collection{ID: uuid.New(), Title: "Public", CreatedBy: uuid.New(), CreatedAt: fixedTime}
	privateCollection := rental.Collection{
		ID: uuid.New(), Title: "Private", IsPrivate: true, CreatedBy: uuid.New(),
		AllowedUsers: []uuid.UUID{uuid.New()}, CreatedAt: fixedTime,
	}

	within(t, engine, func(ctx context.Context, tx rental.Tx) error {
		for _, c := range []rental.Collection{publicCollection, privateCollection} {
			if err := tx.InsertCollection(ctx, c); err != nil {
				return err
			}
		}

		if err := tx.LinkItems(ctx, publicCollection.ID, []uuid.UUID{public.ID}); err != nil {
			return err
		}

		return tx.LinkItems(ctx, privateCollection.ID, []uuid.UUID{private.ID})
	})

	testCases := []struct {
		name     string
		filter   rental.ItemFilter
		expected []uuid.UUID
	}{
		{name: "no filter", filter: rental.ItemFilter{}, expected: []uuid.UUID{free.ID, public.ID, private.ID}},
		{name: "not in any collection", filter: rental.ItemFilter{NotInAnyCollection: true}, expected: []uuid.UUID{free.ID}},
		{name: "not in private collections", filter: rental.ItemFilter{NotInPrivateCollections: true}, expected: []uuid.UUID{free.ID, public.ID}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			stocks, err := engine.ItemStocks(context.Background(), tc.filter)

			// assert
			require.NoError(t, err)
			ids := make([]uuid.UUID, len(stocks))
			for i, s := range stocks {
				ids[i] = s.Item.ID
			}
			assert.Equal(t, tc.expected, ids)
		})
	}
}

func Test_Collections_IncludeAllowedUsers(t *testing.T) {
	// arrange
	engine := newEngine(t)
	allowed := uuid.New()
	collection := rental.Collection{
		ID: uuid.New(), Title: "Climbing", IsPrivate: true, CreatedBy: uuid.New(),
		AllowedUsers: []uuid.UUID{allowed}, CreatedAt: fixedTime,
	}
	added := uuid.New()

	within(t, engine, func(ctx context.Context, tx rental.Tx) error {
		if err := tx.InsertCollection(ctx, collection); err != nil {
			return err
		}

		if err := tx.AddAllowedUser(ctx, collection.ID, added); err != nil {
			return err
		}

		return tx.AddAllowedUser(ctx, collection.ID, added)
	})

	// act
	collections, err := engine.Collections(context.Background())

	// assert
	require.NoError(t, err)
	require.Len(t, collections, 1)
	assert.ElementsMatch(t, []uuid.UUID{allowed, added}, collections[0].AllowedUsers)
	assert.True(t, collections[0].IsPrivate)
}

func Test_OpenBorrowGroups_AggregatesPerPatronAndItem(t *testing.T) {
	// arrange
	engine := newEngine(t)
	item := givenItem(t, engine, "Tent", 5)
	patronID := uuid.New()
	givenOpenBorrows(t, engine, item, patronID, fixedTime.Add(time.Hour), fixedTime)

	// act
	groups, err := engine.OpenBorrowGroups(context.Background(), uuid.NullUUID{UUID: patronID, Valid: true})

	// assert
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, 2, groups[0].Count)
	assert.Equal(t, "Tent", groups[0].ItemTitle)
	assert.True(t, groups[0].EarliestBorrowedAt.Equal(fixedTime))
}

func Test_CountDecidedRentalRequests_CountsOnlyAfterTimestamp(t *testing.T) {
	// arrange
	engine := newEngine(t)
	item := givenItem(t, engine, "Tent", 5)
	patronID := uuid.New()
	early := fixedTime
	late := fixedTime.Add(48 * time.Hour)

	within(t, engine, func(ctx context.Context, tx rental.Tx) error {
		for _, decidedAt := range []time.Time{early, late} {
			at := decidedAt
			if err := tx.InsertRentalRequest(ctx, rental.RentalRequest{
				ID: uuid.New(), ItemID: item.ID, PatronID: patronID, Quantity: 1,
				Status: rental.RequestStatusRejected, ApprovedDate: &at, CreatedAt: fixedTime,
			}); err != nil {
				return err
			}
		}

		return nil
	})

	viewedAt := fixedTime.Add(24 * time.Hour)

	// act
	all, allErr := engine.CountDecidedRentalRequests(context.Background(), patronID, nil)
	unread, unreadErr := engine.CountDecidedRentalRequests(context.Background(), patronID, &viewedAt)

	// assert
	require.NoError(t, allErr)
	require.NoError(t, unreadErr)
	assert.Equal(t, 2, all)
	assert.Equal(t, 1, unread)
}

func Test_ItemEvents_FindsEventsByPayloadContainment(t *testing.T) {
	// arrange
	engine := newEngine(t)
	itemID := uuid.New()

	single, err := rental.BuildStorableEventWithEmptyMetadata("ItemRegistered", fixedTime,
		[]byte(`{"ItemID":"`+itemID.String()+`"}`))
	require.NoError(t, err)
	list, err := rental.BuildStorableEventWithEmptyMetadata("CollectionItemsReplaced", fixedTime.Add(time.Minute),
		[]byte(`{"RemovedItemIDs":["`+itemID.String()+`"]}`))
	require.NoError(t, err)
	other, err := rental.BuildStorableEventWithEmptyMetadata("ItemRegistered", fixedTime,
		[]byte(`{"ItemID":"`+uuid.NewString()+`"}`))
	require.NoError(t, err)

	within(t, engine, func(ctx context.Context, tx rental.Tx) error {
		return tx.AppendEvents(ctx, single, other, list)
	})

	// act
	events, err := engine.ItemEvents(context.Background(), itemID)

	// assert
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "ItemRegistered", events[0].EventType)
	assert.Equal(t, "CollectionItemsReplaced", events[1].EventType)
}
