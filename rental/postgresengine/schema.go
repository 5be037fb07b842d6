package postgresengine

import (
	"context"
	"errors"
	"fmt"
)

// DefaultTableNamePrefix is used when WithTableNamePrefix is not supplied.
const DefaultTableNamePrefix = "gear_"

// ErrCreatingSchemaFailed is returned when a DDL statement fails.
var ErrCreatingSchemaFailed = errors.New("creating schema failed")

type tableNames struct {
	prefix                 string
	libraries              string
	items                  string
	patrons                string
	borrowRecords          string
	rentalRequests         string
	collections            string
	collectionAllowedUsers string
	collectionItems        string
	accessRequests         string
	events                 string
	pendingRentalIndex     string
	pendingAccessIndex     string
}

func newTableNames(prefix string) tableNames {
	return tableNames{
		prefix:                 prefix,
		libraries:              prefix + "libraries",
		items:                  prefix + "items",
		patrons:                prefix + "patrons",
		borrowRecords:          prefix + "borrow_records",
		rentalRequests:         prefix + "rental_requests",
		collections:            prefix + "collections",
		collectionAllowedUsers: prefix + "collection_allowed_users",
		collectionItems:        prefix + "collection_items",
		accessRequests:         prefix + "access_requests",
		events:                 prefix + "events",
		pendingRentalIndex:     prefix + "rental_requests_one_pending_idx",
		pendingAccessIndex:     prefix + "access_requests_one_pending_idx",
	}
}

// TableNames returns every table of the schema for the given prefix, parents before children.
func TableNames(prefix string) []string {
	t := newTableNames(prefix)

	return []string{
		t.libraries,
		t.items,
		t.patrons,
		t.borrowRecords,
		t.rentalRequests,
		t.collections,
		t.collectionAllowedUsers,
		t.collectionItems,
		t.accessRequests,
		t.events,
	}
}

func (t tableNames) ddl() []string {
	p := t.prefix

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id          uuid PRIMARY KEY,
	title       text NOT NULL,
	description text NOT NULL DEFAULT '',
	location    text NOT NULL DEFAULT ''
)`, t.libraries),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id          uuid PRIMARY KEY,
	library_id  uuid NULL REFERENCES %s (id),
	title       text NOT NULL,
	description text NOT NULL DEFAULT '',
	location    text NOT NULL DEFAULT '',
	quantity    integer NOT NULL CHECK (quantity BETWEEN 1 AND 9999),
	status      text NOT NULL CHECK (status IN ('available', 'rented_out')),
	created_at  timestamptz NOT NULL
)`, t.items, t.libraries),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id                             uuid PRIMARY KEY,
	name                           text NOT NULL,
	role                           text NOT NULL,
	rentals_last_viewed_at         timestamptz NULL,
	access_requests_last_viewed_at timestamptz NULL
)`, t.patrons),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id                uuid PRIMARY KEY,
	item_id           uuid NOT NULL REFERENCES %s (id),
	patron_id         uuid NOT NULL,
	rental_request_id uuid NULL,
	borrowed_at       timestamptz NOT NULL,
	returned_at       timestamptz NULL
)`, t.borrowRecords, t.items),

		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %sborrow_records_open_idx
	ON %s (item_id, patron_id, borrowed_at) WHERE returned_at IS NULL`, p, t.borrowRecords),

		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %sborrow_records_patron_idx ON %s (patron_id)`, p, t.borrowRecords),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id               uuid PRIMARY KEY,
	item_id          uuid NOT NULL REFERENCES %s (id),
	patron_id        uuid NOT NULL,
	quantity         integer NOT NULL CHECK (quantity > 0),
	status           text NOT NULL CHECK (status IN ('pending', 'approved', 'rejected')),
	approver_id      uuid NULL,
	approved_date    timestamptz NULL,
	rent_start_date  timestamptz NULL,
	rent_return_date timestamptz NULL,
	created_at       timestamptz NOT NULL
)`, t.rentalRequests, t.items),

		fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS %s
	ON %s (patron_id, item_id) WHERE status = 'pending'`, t.pendingRentalIndex, t.rentalRequests),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id          uuid PRIMARY KEY,
	title       text NOT NULL,
	description text NOT NULL DEFAULT '',
	is_private  boolean NOT NULL,
	created_by  uuid NOT NULL,
	created_at  timestamptz NOT NULL
)`, t.collections),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	collection_id uuid NOT NULL REFERENCES %s (id) ON DELETE CASCADE,
	patron_id     uuid NOT NULL,
	PRIMARY KEY (collection_id, patron_id)
)`, t.collectionAllowedUsers, t.collections),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	collection_id uuid NOT NULL REFERENCES %s (id) ON DELETE CASCADE,
	item_id       uuid NOT NULL REFERENCES %s (id),
	PRIMARY KEY (collection_id, item_id)
)`, t.collectionItems, t.collections, t.items),

		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %scollection_items_item_idx ON %s (item_id)`, p, t.collectionItems),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id            uuid PRIMARY KEY,
	collection_id uuid NOT NULL REFERENCES %s (id),
	patron_id     uuid NOT NULL,
	status        text NOT NULL CHECK (status IN ('pending', 'approved', 'rejected')),
	approver_id   uuid NULL,
	approved_date timestamptz NULL,
	created_at    timestamptz NOT NULL
)`, t.accessRequests, t.collections),

		fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS %s
	ON %s (patron_id, collection_id) WHERE status = 'pending'`, t.pendingAccessIndex, t.accessRequests),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	sequence_number bigserial PRIMARY KEY,
	event_type      text NOT NULL,
	occurred_at     timestamptz NOT NULL,
	payload         jsonb NOT NULL,
	metadata        jsonb NOT NULL
)`, t.events),

		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %sevents_payload_idx ON %s USING gin (payload jsonb_path_ops)`, p, t.events),
	}
}

// CreateSchema creates all tables and indexes if they do not exist yet. It is idempotent.
func (e *Engine) CreateSchema(ctx context.Context) error {
	for _, statement := range e.tables.ddl() {
		if _, err := e.executeSQL(ctx, e.db, statement, logActionCreateSchema); err != nil {
			return errors.Join(ErrCreatingSchemaFailed, err)
		}
	}

	e.logOperation(ctx, logActionCreateSchema, logAttrTablePrefix, e.tables.prefix)

	return nil
}
