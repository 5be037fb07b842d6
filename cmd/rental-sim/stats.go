package main

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/shell"
)

const (
	outcomeSuccess    = "success"
	outcomeIdempotent = "idempotent"
	outcomeSkipped    = "skipped"
	outcomeCanceled   = "canceled"
	outcomeError      = "error"
)

// errNothingToDo is returned by a scenario that found no candidate, e.g. approve without pending requests.
var errNothingToDo = errors.New("nothing to do")

// Stats counts outcomes per scenario. Violations are counted by their kind.
type Stats struct {
	mu     sync.Mutex
	counts map[Scenario]map[string]int
}

func NewStats() *Stats {
	return &Stats{counts: make(map[Scenario]map[string]int)}
}

func outcomeOf(result shell.HandlerResult, err error) string {
	var violation *rental.Violation

	switch {
	case err == nil && result.Idempotent:
		return outcomeIdempotent
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, errNothingToDo):
		return outcomeSkipped
	case errors.As(err, &violation):
		return violation.Kind.String()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeCanceled
	default:
		return outcomeError
	}
}

func (s *Stats) Record(scenario Scenario, outcome string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.counts[scenario] == nil {
		s.counts[scenario] = make(map[string]int)
	}

	s.counts[scenario][outcome]++
}

// Snapshot returns a copy of all counts.
func (s *Stats) Snapshot() map[Scenario]map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[Scenario]map[string]int, len(s.counts))
	for scenario, outcomes := range s.counts {
		out[scenario] = maps.Clone(outcomes)
	}

	return out
}

// Total returns the number of operations with the given outcome over all scenarios.
func (s *Stats) Total(outcome string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, outcomes := range s.counts {
		total += outcomes[outcome]
	}

	return total
}

// Outcomes returns the outcome names of a scenario in a stable order.
func Outcomes(counts map[string]int) []string {
	return slices.Sorted(maps.Keys(counts))
}
