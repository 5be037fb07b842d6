package main

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ScenarioSelector_NeverPicksZeroWeightScenarios(t *testing.T) {
	// arrange
	selector := NewScenarioSelector([numScenarios]int{0, 3, 0, 0, 1, 0})
	rng := rand.New(rand.NewPCG(1, 2)) //nolint:gosec
	picked := make(map[Scenario]int)

	// act
	for range 1000 {
		picked[selector.Pick(rng)]++
	}

	// assert
	assert.Len(t, picked, 2)
	assert.Positive(t, picked[ScenarioApprove])
	assert.Positive(t, picked[ScenarioBorrow])
	assert.Greater(t, picked[ScenarioApprove], picked[ScenarioBorrow])
}
