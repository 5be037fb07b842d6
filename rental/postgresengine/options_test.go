package postgresengine_test

import (
	"database/sql"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/rental/postgresengine"
)

func Test_NewEngine_Fails_WhenDatabaseHandleIsNil(t *testing.T) {
	testCases := []struct {
		name      string
		construct func() error
	}{
		{
			name: "pgx pool",
			construct: func() error {
				_, err := postgresengine.NewEngineFromPGXPool(nil)
				return err
			},
		},
		{
			name: "pgx pool with nil replica",
			construct: func() error {
				_, err := postgresengine.NewEngineFromPGXPoolWithReplica(new(pgxpool.Pool), nil)
				return err
			},
		},
		{
			name: "sql.DB",
			construct: func() error {
				_, err := postgresengine.NewEngineFromSQLDB(nil)
				return err
			},
		},
		{
			name: "sqlx.DB",
			construct: func() error {
				_, err := postgresengine.NewEngineFromSQLX(nil)
				return err
			},
		},
		{
			name: "sqlx.DB with nil replica",
			construct: func() error {
				_, err := postgresengine.NewEngineFromSQLXWithReplica(new(sqlx.DB), nil)
				return err
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.construct(), rental.ErrNilDatabaseConnection)
		})
	}
}

func Test_WithTableNamePrefix(t *testing.T) {
	testCases := []struct {
		name        string
		prefix      string
		expectedErr error
	}{
		{name: "empty", prefix: "", expectedErr: rental.ErrEmptyTableNamePrefix},
		{name: "upper case", prefix: "Gear_", expectedErr: postgresengine.ErrInvalidTableNamePrefix},
		{name: "sql injection", prefix: "x; DROP TABLE y; --", expectedErr: postgresengine.ErrInvalidTableNamePrefix},
		{name: "leading digit", prefix: "1_", expectedErr: postgresengine.ErrInvalidTableNamePrefix},
		{name: "valid", prefix: "rental_test_", expectedErr: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			engine, err := postgresengine.NewEngineFromSQLDB(new(sql.DB), postgresengine.WithTableNamePrefix(tc.prefix))

			// assert
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, engine)
				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, engine)
		})
	}
}

func Test_TableNames_AreDerivedFromPrefix(t *testing.T) {
	// act
	tables := postgresengine.TableNames("x_")

	// assert
	assert.Contains(t, tables, "x_items")
	assert.Contains(t, tables, "x_borrow_records")
	assert.Contains(t, tables, "x_events")
	for _, table := range tables {
		assert.Regexp(t, `^x_[a-z_]+$`, table)
	}
}
