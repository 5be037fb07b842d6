package memoryengine

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

// ErrNilLogger is returned when WithLogger is called with nil.
var ErrNilLogger = errors.New("logger must not be nil")

const (
	logMsgTxCommitted  = "memory transaction committed"
	logMsgTxRolledBack = "memory transaction rolled back"
	logAttrError       = "error"
	logAttrEvents      = "appended_events"
)

// Engine is an in-memory rental.Engine.
type Engine struct {
	mu     sync.RWMutex
	state  state
	logger rental.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a logger for transaction outcomes.
func WithLogger(logger rental.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			return ErrNilLogger
		}

		e.logger = logger

		return nil
	}
}

// NewEngine creates an empty in-memory engine.
func NewEngine(options ...Option) (*Engine, error) {
	e := &Engine{state: newState()}

	for _, option := range options {
		if err := option(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// WithinTransaction runs fn against a private copy of the state and commits it if fn returns nil.
func (e *Engine) WithinTransaction(ctx context.Context, fn rental.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	tx := &transaction{state: e.state.clone()}

	if err := fn(ctx, tx); err != nil {
		if e.logger != nil {
			e.logger.Debug(logMsgTxRolledBack, logAttrError, err.Error())
		}

		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if e.logger != nil {
		e.logger.Debug(logMsgTxCommitted, logAttrEvents, len(tx.state.events)-len(e.state.events))
	}

	e.state = tx.state

	return nil
}

type state struct {
	libraries      map[uuid.UUID]rental.Library
	items          map[uuid.UUID]rental.Item
	borrows        map[uuid.UUID]rental.BorrowRecord
	patrons        map[uuid.UUID]rental.Patron
	rentalRequests map[uuid.UUID]rental.RentalRequest
	collections    map[uuid.UUID]rental.Collection
	links          map[rental.CollectionItem]struct{}
	accessRequests map[uuid.UUID]rental.CollectionAccessRequest
	events         rental.StorableEvents
}

func newState() state {
	return state{
		libraries:      make(map[uuid.UUID]rental.Library),
		items:          make(map[uuid.UUID]rental.Item),
		borrows:        make(map[uuid.UUID]rental.BorrowRecord),
		patrons:        make(map[uuid.UUID]rental.Patron),
		rentalRequests: make(map[uuid.UUID]rental.RentalRequest),
		collections:    make(map[uuid.UUID]rental.Collection),
		links:          make(map[rental.CollectionItem]struct{}),
		accessRequests: make(map[uuid.UUID]rental.CollectionAccessRequest),
	}
}

// clone copies every map. Entity values are copied by value; the only shared slices
// (Collection.AllowedUsers) are cloned explicitly and time pointers are never mutated in place.
func (s state) clone() state {
	collections := make(map[uuid.UUID]rental.Collection, len(s.collections))
	for id, c := range s.collections {
		c.AllowedUsers = slices.Clone(c.AllowedUsers)
		collections[id] = c
	}

	return state{
		libraries:      maps.Clone(s.libraries),
		items:          maps.Clone(s.items),
		borrows:        maps.Clone(s.borrows),
		patrons:        maps.Clone(s.patrons),
		rentalRequests: maps.Clone(s.rentalRequests),
		collections:    collections,
		links:          maps.Clone(s.links),
		accessRequests: maps.Clone(s.accessRequests),
		events:         slices.Clone(s.events),
	}
}

func (s state) openBorrows(itemID uuid.UUID) int {
	count := 0
	for _, r := range s.borrows {
		if r.ItemID == itemID && r.IsOpen() {
			count++
		}
	}

	return count
}

func (s state) memberships(keep func(rental.CollectionItem) bool) []rental.Membership {
	out := make([]rental.Membership, 0)
	for link := range s.links {
		if !keep(link) {
			continue
		}

		c := s.collections[link.CollectionID]
		out = append(out, rental.Membership{
			ItemID:          link.ItemID,
			CollectionID:    link.CollectionID,
			CollectionTitle: c.Title,
			IsPrivate:       c.IsPrivate,
		})
	}

	slices.SortFunc(out, func(a, b rental.Membership) int {
		if c := rental.CompareIDs(a.ItemID, b.ItemID); c != 0 {
			return c
		}

		return rental.CompareIDs(a.CollectionID, b.CollectionID)
	})

	return out
}

var _ rental.Engine = (*Engine)(nil)
