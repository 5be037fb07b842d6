package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/gear-rental-go/httpapi"
	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/rental/oteladapters"
	"github.com/AntonStoeckl/gear-rental-go/shared/shell"
	. "github.com/AntonStoeckl/gear-rental-go/testutil/fixtures" //nolint:revive
)

func Test_Simulation_KeepsLedgerConsistentUnderContention(t *testing.T) {
	// arrange
	engine := NewMemoryEngine(t)
	handlers, err := httpapi.NewHandlers(engine, httpapi.Instrumentation{})
	require.NoError(t, err)

	cfg := Config{
		Rate:        2000,
		Workers:     8,
		Duration:    300 * time.Millisecond,
		Items:       2,
		Patrons:     10,
		MaxQuantity: 3,
		Weights:     [numScenarios]int{35, 25, 5, 5, 10, 20},
	}
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(slog.NewTextHandler(io.Discard, nil))
	simulation := NewSimulation(handlers, cfg, logger)

	// act
	require.NoError(t, simulation.Setup(context.Background()))
	simulation.Run(context.Background())

	// assert
	inconsistencies, err := VerifyLedger(context.Background(), engine)
	require.NoError(t, err)
	assert.Empty(t, inconsistencies)
	assert.Positive(t, simulation.Stats().Total(outcomeSuccess))
	assert.Zero(t, simulation.Stats().Total(outcomeError))
}

func Test_VerifyLedger_ReportsOverLentAndStaleItems(t *testing.T) {
	// arrange
	engine := NewMemoryEngine(t)
	healthy := GivenItem(t, engine, "Tent", 2)
	GivenOpenBorrows(t, engine, healthy.ID, GivenUniqueID(t), 1, FixedTime)

	broken := rental.Item{ID: GivenUniqueID(t), Title: "Stove", Quantity: 1, Status: rental.ItemStatusAvailable}
	err := engine.WithinTransaction(context.Background(), func(ctx context.Context, tx rental.Tx) error {
		if err := tx.InsertItem(ctx, broken); err != nil {
			return err
		}

		return tx.InsertBorrowRecords(ctx, []rental.BorrowRecord{
			{ID: uuid.New(), ItemID: broken.ID, PatronID: uuid.New(), BorrowedAt: FixedTime},
			{ID: uuid.New(), ItemID: broken.ID, PatronID: uuid.New(), BorrowedAt: FixedTime},
		})
	})
	require.NoError(t, err)

	// act
	inconsistencies, err := VerifyLedger(context.Background(), engine)

	// assert
	require.NoError(t, err)
	require.Len(t, inconsistencies, 1)
	assert.Equal(t, broken.ID, inconsistencies[0].ItemID)
	assert.Equal(t, 2, inconsistencies[0].OpenBorrows)
	assert.Equal(t, rental.ItemStatusAvailable, inconsistencies[0].CachedStatus)
	assert.Equal(t, rental.ItemStatusRentedOut, inconsistencies[0].DerivedStatus)
}

func Test_OutcomeOf(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "success", expected: outcomeSuccess},
		{name: "nothing to do", err: errNothingToDo, expected: outcomeSkipped},
		{name: "violation", err: rental.NewInvalidInput("bad"), expected: "invalid_input"},
		{name: "canceled", err: context.Canceled, expected: outcomeCanceled},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, outcomeOf(shell.HandlerResult{}, tc.err))
		})
	}
}
