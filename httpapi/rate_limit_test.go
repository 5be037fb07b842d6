package httpapi

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func Test_ActorLimiter_DropsIdleBuckets(t *testing.T) {
	// arrange
	clock := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	limiter := newActorLimiter(rate.Limit(1), 1)
	limiter.now = func() time.Time { return clock }

	idle := uuid.New()
	active := uuid.New()
	assert.True(t, limiter.allow(idle))
	assert.True(t, limiter.allow(active))

	// act
	clock = clock.Add(limiterIdleTTL - time.Second)
	limiter.allow(active)
	clock = clock.Add(limiterPruneInterval)
	limiter.allow(active)

	// assert
	assert.Len(t, limiter.limiters, 1)
	assert.Contains(t, limiter.limiters, active)
}

func Test_ActorLimiter_KeepsBucketsOfActiveActors(t *testing.T) {
	// arrange
	clock := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	limiter := newActorLimiter(rate.Limit(0), 1)
	limiter.now = func() time.Time { return clock }
	actor := uuid.New()

	// act
	first := limiter.allow(actor)
	clock = clock.Add(limiterPruneInterval)
	second := limiter.allow(actor)

	// assert
	assert.True(t, first)
	assert.False(t, second, "an actor seen recently must keep its drained bucket")
}
