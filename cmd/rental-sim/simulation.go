package main

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/AntonStoeckl/gear-rental-go/features/command/approverentalrequest"
	"github.com/AntonStoeckl/gear-rental-go/features/command/cancelrentalrequest"
	"github.com/AntonStoeckl/gear-rental-go/features/command/denyrentalrequest"
	"github.com/AntonStoeckl/gear-rental-go/features/command/recordborrow"
	"github.com/AntonStoeckl/gear-rental-go/features/command/registeritem"
	"github.com/AntonStoeckl/gear-rental-go/features/command/registerpatron"
	"github.com/AntonStoeckl/gear-rental-go/features/command/returnborrowedunits"
	"github.com/AntonStoeckl/gear-rental-go/features/command/submitrentalrequest"
	"github.com/AntonStoeckl/gear-rental-go/features/query/currentlyborrowed"
	"github.com/AntonStoeckl/gear-rental-go/features/query/rentalrequestsbystatus"
	"github.com/AntonStoeckl/gear-rental-go/httpapi"
	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/shell"
)

const maxUnitsPerRequest = 2

// Simulation drives concurrent rental operations against one set of handlers.
type Simulation struct {
	handlers  httpapi.Handlers
	cfg       Config
	selector  ScenarioSelector
	stats     *Stats
	logger    rental.ContextualLogger
	now       func() time.Time
	librarian rental.Actor
	patrons   []uuid.UUID
	items     []uuid.UUID
}

func NewSimulation(handlers httpapi.Handlers, cfg Config, logger rental.ContextualLogger) *Simulation {
	return &Simulation{
		handlers:  handlers,
		cfg:       cfg,
		selector:  NewScenarioSelector(cfg.Weights),
		stats:     NewStats(),
		logger:    logger,
		now:       time.Now,
		librarian: rental.Librarian(uuid.New()),
	}
}

func (s *Simulation) Stats() *Stats {
	return s.stats
}

// Setup registers the librarian, the patrons and the items the workers compete for.
func (s *Simulation) Setup(ctx context.Context) error {
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)) //nolint:gosec

	if _, err := s.handlers.RegisterPatron.Handle(ctx, registerpatron.BuildCommand(
		s.librarian, s.librarian.ID, "Simulation Librarian", rental.RoleLibrarian, s.now(),
	)); err != nil {
		return err
	}

	for range s.cfg.Patrons {
		patronID := uuid.New()
		if _, err := s.handlers.RegisterPatron.Handle(ctx, registerpatron.BuildCommand(
			s.librarian, patronID, "Patron "+patronID.String()[:8], rental.RolePatron, s.now(),
		)); err != nil {
			return err
		}

		s.patrons = append(s.patrons, patronID)
	}

	for range s.cfg.Items {
		itemID := uuid.New()
		quantity := 1 + rng.IntN(s.cfg.MaxQuantity)
		if _, err := s.handlers.RegisterItem.Handle(ctx, registeritem.BuildCommand(
			s.librarian, itemID, uuid.NullUUID{}, "Item "+itemID.String()[:8], "", "", quantity, s.now(),
		)); err != nil {
			return err
		}

		s.items = append(s.items, itemID)
	}

	s.logger.InfoContext(ctx, "simulation setup done", "patrons", len(s.patrons), "items", len(s.items))

	return nil
}

// Run starts the workers and blocks until the configured duration has passed or ctx is done.
func (s *Simulation) Run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.cfg.Duration)
	defer cancel()

	limiter := rate.NewLimiter(rate.Limit(s.cfg.Rate), s.cfg.Workers)

	var wg sync.WaitGroup
	for workerID := range s.cfg.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker(runCtx, limiter, workerID)
		}()
	}

	wg.Wait()
}

func (s *Simulation) worker(ctx context.Context, limiter *rate.Limiter, workerID int) {
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(workerID))) //nolint:gosec

	for {
		if err := limiter.Wait(ctx); err != nil {
			return
		}

		scenario := s.selector.Pick(rng)
		result, err := s.execute(ctx, rng, scenario)

		outcome := outcomeOf(result, err)
		if outcome == outcomeError {
			s.logger.WarnContext(ctx, "operation failed", "scenario", scenario.String(), "error", err.Error())
		}

		s.stats.Record(scenario, outcome)
	}
}

func (s *Simulation) execute(ctx context.Context, rng *rand.Rand, scenario Scenario) (shell.HandlerResult, error) {
	switch scenario {
	case ScenarioSubmit:
		patron := rental.PatronActor(pick(rng, s.patrons))
		command := submitrentalrequest.BuildCommand(
			patron, uuid.New(), pick(rng, s.items), 1+rng.IntN(maxUnitsPerRequest), s.now(),
		)

		return s.handlers.SubmitRentalRequest.Handle(ctx, command)

	case ScenarioApprove, ScenarioDeny, ScenarioCancel:
		request, err := s.pendingRequest(ctx, rng)
		if err != nil {
			return shell.HandlerResult{}, err
		}

		switch scenario {
		case ScenarioApprove:
			return s.handlers.ApproveRentalRequest.Handle(ctx,
				approverentalrequest.BuildCommand(s.librarian, request.RequestID, s.now()))
		case ScenarioDeny:
			return s.handlers.DenyRentalRequest.Handle(ctx,
				denyrentalrequest.BuildCommand(s.librarian, request.RequestID, s.now()))
		default:
			return s.handlers.CancelRentalRequest.Handle(ctx,
				cancelrentalrequest.BuildCommand(rental.PatronActor(request.PatronID), request.RequestID, s.now()))
		}

	case ScenarioBorrow:
		command := recordborrow.BuildCommand(s.librarian, pick(rng, s.items), pick(rng, s.patrons), 1, s.now())

		return s.handlers.RecordBorrow.Handle(ctx, command)

	case ScenarioReturn:
		borrowed, err := s.handlers.CurrentlyBorrowed.Handle(ctx, currentlyborrowed.BuildQuery())
		if err != nil {
			return shell.HandlerResult{}, err
		}

		if len(borrowed.Borrowed) == 0 {
			return shell.HandlerResult{}, errNothingToDo
		}

		group := pick(rng, borrowed.Borrowed)
		command := returnborrowedunits.BuildCommand(s.librarian, group.ItemID, group.PatronID, 1+rng.IntN(group.Count), s.now())

		return s.handlers.ReturnBorrowedUnits.Handle(ctx, command)

	default:
		return shell.HandlerResult{}, errors.New("unknown scenario " + scenario.String())
	}
}

func (s *Simulation) pendingRequest(ctx context.Context, rng *rand.Rand) (rentalrequestsbystatus.RentalRequestInfo, error) {
	query, err := rentalrequestsbystatus.BuildQuery(string(rental.RequestStatusPending), uuid.NullUUID{})
	if err != nil {
		return rentalrequestsbystatus.RentalRequestInfo{}, err
	}

	pending, err := s.handlers.RentalRequestsByStatus.Handle(ctx, query)
	if err != nil {
		return rentalrequestsbystatus.RentalRequestInfo{}, err
	}

	if len(pending.Requests) == 0 {
		return rentalrequestsbystatus.RentalRequestInfo{}, errNothingToDo
	}

	return pick(rng, pending.Requests), nil
}

// Report logs the outcome counts per scenario.
func (s *Simulation) Report(ctx context.Context) {
	snapshot := s.stats.Snapshot()

	for scenario := range Scenario(numScenarios) {
		counts := snapshot[scenario]
		if len(counts) == 0 {
			continue
		}

		args := make([]any, 0, 2*len(counts)+2)
		args = append(args, "scenario", scenario.String())
		for _, outcome := range Outcomes(counts) {
			args = append(args, outcome, counts[outcome])
		}

		s.logger.InfoContext(ctx, "simulation outcomes", args...)
	}
}

func pick[T any](rng *rand.Rand, from []T) T {
	return from[rng.IntN(len(from))]
}
