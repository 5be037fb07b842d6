package memoryengine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/rental/memoryengine"
)

func newEngine(t *testing.T) *memoryengine.Engine {
	t.Helper()

	engine, err := memoryengine.NewEngine()
	require.NoError(t, err)

	return engine
}

func insertItem(t *testing.T, engine *memoryengine.Engine, quantity int) rental.Item {
	t.Helper()

	item := rental.Item{ID: uuid.New(), Title: "Tent", Quantity: quantity, Status: rental.ItemStatusAvailable}
	err := engine.WithinTransaction(context.Background(), func(ctx context.Context, tx rental.Tx) error {
		return tx.InsertItem(ctx, item)
	})
	require.NoError(t, err)

	return item
}

func Test_NewEngine_Fails_WhenLoggerIsNil(t *testing.T) {
	// act
	_, err := memoryengine.NewEngine(memoryengine.WithLogger(nil))

	// assert
	assert.ErrorIs(t, err, memoryengine.ErrNilLogger)
}

func Test_WithinTransaction_RollsBack_WhenFunctionFails(t *testing.T) {
	// arrange
	engine := newEngine(t)
	item := insertItem(t, engine, 5)
	patronID := uuid.New()
	failure := errors.New("boom")

	// act
	err := engine.WithinTransaction(context.Background(), func(ctx context.Context, tx rental.Tx) error {
		if err := tx.InsertBorrowRecords(ctx, []rental.BorrowRecord{
			{ID: uuid.New(), ItemID: item.ID, PatronID: patronID, BorrowedAt: time.Now()},
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
	assert.Equal(t, 0, stock.OpenBorrows, "no borrow record must survive the rollback")
	assert.Equal(t, rental.ItemStatusAvailable, stock.Item.Status)
}

func Test_WithinTransaction_DiscardsChangesAndUnlocks_WhenFunctionPanics(t *testing.T) {
	// arrange
	engine := newEngine(t)
	item := insertItem(t, engine, 5)

	// act
	assert.Panics(t, func() {
		_ = engine.WithinTransaction(context.Background(), func(ctx context.Context, tx rental.Tx) error {
			if err := tx.UpdateItemStock(ctx, item.ID, 5, rental.ItemStatusRentedOut); err != nil {
				return err
			}

			panic("boom")
		})
	})

	// assert
	stock, err := engine.ItemStock(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, rental.ItemStatusAvailable, stock.Item.Status)

	err = engine.WithinTransaction(context.Background(), func(ctx context.Context, tx rental.Tx) error {
		_, lockErr := tx.LockItem(ctx, item.ID)
		return lockErr
	})
	assert.NoError(t, err)
}

func Test_WithinTransaction_Fails_WhenContextIsCanceled(t *testing.T) {
	// arrange
	engine := newEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	err := engine.WithinTransaction(ctx, func(context.Context, rental.Tx) error { return nil })

	// assert
	assert.ErrorIs(t, err, context.Canceled)
}

func Test_LockOldestOpenBorrows_ReturnsOldestFirst(t *testing.T) {
	// arrange
	engine := newEngine(t)
	item := insertItem(t, engine, 5)
	patronID := uuid.New()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	records := []rental.BorrowRecord{
		{ID: uuid.New(), ItemID: item.ID, PatronID: patronID, BorrowedAt: base.Add(2 * time.Hour)},
		{ID: uuid.New(), ItemID: item.ID, PatronID: patronID, BorrowedAt: base},
		{ID: uuid.New(), ItemID: item.ID, PatronID: patronID, BorrowedAt: base.Add(time.Hour)},
		{ID: uuid.New(), ItemID: item.ID, PatronID: uuid.New(), BorrowedAt: base.Add(-time.Hour)},
	}

	var locked []rental.BorrowRecord

	// act
	err := engine.WithinTransaction(context.Background(), func(ctx context.Context, tx rental.Tx) error {
		if err := tx.InsertBorrowRecords(ctx, records); err != nil {
			return err
		}

		var lockErr error
		locked, lockErr = tx.LockOldestOpenBorrows(ctx, item.ID, patronID, 2)

		return lockErr
	})

	// assert
	require.NoError(t, err)
	require.Len(t, locked, 2)
	assert.Equal(t, records[1].ID, locked[0].ID)
	assert.Equal(t, records[2].ID, locked[1].ID)
}

func Test_CloseBorrowRecords_CountsOnlyOpenRecords(t *testing.T) {
	// arrange
	engine := newEngine(t)
	item := insertItem(t, engine, 5)
	record := rental.BorrowRecord{ID: uuid.New(), ItemID: item.ID, PatronID: uuid.New(), BorrowedAt: time.Now()}

	var first, second int64

	// act
	err := engine.WithinTransaction(context.Background(), func(ctx context.Context, tx rental.Tx) error {
		if err := tx.InsertBorrowRecords(ctx, []rental.BorrowRecord{record}); err != nil {
			return err
		}

		first, _ = tx.CloseBorrowRecords(ctx, []uuid.UUID{record.ID}, time.Now())
		second, _ = tx.CloseBorrowRecords(ctx, []uuid.UUID{record.ID}, time.Now())

		return nil
	})

	// assert
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(0), second)
}

func Test_InsertRentalRequest_Fails_WhenPendingRequestExists(t *testing.T) {
	// arrange
	engine := newEngine(t)
	item := insertItem(t, engine, 5)
	patronID := uuid.New()

	// act
	err := engine.WithinTransaction(context.Background(), func(ctx context.Context, tx rental.Tx) error {
		for range 2 {
			if err := tx.InsertRentalRequest(ctx, rental.RentalRequest{
				ID: uuid.New(), ItemID: item.ID, PatronID: patronID, Quantity: 1, Status: rental.RequestStatusPending,
			}); err != nil {
				return err
			}
		}

		return nil
	})

	// assert
	assert.ErrorIs(t, err, rental.ErrDuplicateRequest)
}

func Test_ItemStocks_AppliesCollectionFilters(t *testing.T) {
	// arrange
	engine := newEngine(t)
	free := insertItem(t, engine, 1)
	public := insertItem(t, engine, 1)
	private := insertItem(t, engine, 1)

	publicCollection := rental.Collection{ID: uuid.New(), Title: "Camping"}
	privateCollection := rental.Collection{ID: uuid.New(), Title: "Staff", IsPrivate: true}

	err := engine.WithinTransaction(context.Background(), func(ctx context.Context, tx rental.Tx) error {
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
	require.NoError(t, err)

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

			ids := make([]uuid.UUID, 0, len(stocks))
			for _, s := range stocks {
				ids = append(ids, s.Item.ID)
			}
			assert.ElementsMatch(t, tc.expected, ids)
		})
	}
}

func Test_CountDecidedRentalRequests_CountsOnlyDecisionsAfterTimestamp(t *testing.T) {
	// arrange
	engine := newEngine(t)
	item := insertItem(t, engine, 5)
	patronID := uuid.New()
	early := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	late := early.Add(48 * time.Hour)

	err := engine.WithinTransaction(context.Background(), func(ctx context.Context, tx rental.Tx) error {
		requests := []rental.RentalRequest{
			{ID: uuid.New(), ItemID: item.ID, PatronID: patronID, Quantity: 1, Status: rental.RequestStatusApproved, ApprovedDate: &early},
			{ID: uuid.New(), ItemID: item.ID, PatronID: patronID, Quantity: 1, Status: rental.RequestStatusRejected, ApprovedDate: &late},
			{ID: uuid.New(), ItemID: item.ID, PatronID: patronID, Quantity: 1, Status: rental.RequestStatusPending},
		}
		for _, r := range requests {
			if err := tx.InsertRentalRequest(ctx, r); err != nil {
				return err
			}
		}

		return nil
	})
	require.NoError(t, err)

	viewedAt := early.Add(time.Hour)

	// act
	all, errAll := engine.CountDecidedRentalRequests(context.Background(), patronID, nil)
	unread, errUnread := engine.CountDecidedRentalRequests(context.Background(), patronID, &viewedAt)

	// assert
	require.NoError(t, errAll)
	require.NoError(t, errUnread)
	assert.Equal(t, 2, all)
	assert.Equal(t, 1, unread)
}

func Test_ItemEvents_FindsEventsReferencingTheItem(t *testing.T) {
	// arrange
	engine := newEngine(t)
	itemID := uuid.New()
	otherID := uuid.New()

	payloads := []string{
		`{"ItemID":"` + itemID.String() + `"}`,
		`{"ItemIDs":["` + otherID.String() + `","` + itemID.String() + `"]}`,
		`{"RemovedItemIDs":["` + itemID.String() + `"]}`,
		`{"ItemID":"` + otherID.String() + `"}`,
	}

	err := engine.WithinTransaction(context.Background(), func(ctx context.Context, tx rental.Tx) error {
		for _, p := range payloads {
			event, err := rental.BuildStorableEventWithEmptyMetadata("Something", time.Now(), []byte(p))
			if err != nil {
				return err
			}

			if err := tx.AppendEvents(ctx, event); err != nil {
				return err
			}
		}

		return nil
	})
	require.NoError(t, err)

	// act
	events, err := engine.ItemEvents(context.Background(), itemID)

	// assert
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func Test_LockItem_ReportsNotFound(t *testing.T) {
	// arrange
	engine := newEngine(t)

	// act
	err := engine.WithinTransaction(context.Background(), func(ctx context.Context, tx rental.Tx) error {
		_, err := tx.LockItem(ctx, uuid.New())
		return err
	})

	// assert
	assert.ErrorIs(t, err, rental.ErrNotFound)
}
