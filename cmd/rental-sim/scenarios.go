package main

import (
	"math/rand/v2"
)

// Scenario is one kind of operation the workers perform.
type Scenario int

const (
	ScenarioSubmit Scenario = iota
	ScenarioApprove
	ScenarioDeny
	ScenarioCancel
	ScenarioBorrow
	ScenarioReturn

	numScenarios = 6
)

func (s Scenario) String() string {
	switch s {
	case ScenarioSubmit:
		return "submit"
	case ScenarioApprove:
		return "approve"
	case ScenarioDeny:
		return "deny"
	case ScenarioCancel:
		return "cancel"
	case ScenarioBorrow:
		return "borrow"
	case ScenarioReturn:
		return "return"
	default:
		return "unknown"
	}
}

// ScenarioSelector picks scenarios with probabilities proportional to their weights.
type ScenarioSelector struct {
	cumulative [numScenarios]int
}

func NewScenarioSelector(weights [numScenarios]int) ScenarioSelector {
	sel := ScenarioSelector{}

	sum := 0
	for i, w := range weights {
		sum += w
		sel.cumulative[i] = sum
	}

	return sel
}

// Pick must only be called on a selector with a positive total weight.
func (s ScenarioSelector) Pick(rng *rand.Rand) Scenario {
	n := rng.IntN(s.cumulative[numScenarios-1])
	for i, c := range s.cumulative {
		if n < c {
			return Scenario(i)
		}
	}

	return ScenarioSubmit
}
