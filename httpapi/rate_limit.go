package httpapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL       = 10 * time.Minute
	limiterPruneInterval = time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// actorLimiter hands out one token bucket per actor.
// Buckets idle for limiterIdleTTL are dropped, a returning actor starts with a full bucket.
type actorLimiter struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu         sync.Mutex
	limiters   map[uuid.UUID]*limiterEntry
	lastPruned time.Time
}

func newActorLimiter(limit rate.Limit, burst int) *actorLimiter {
	return &actorLimiter{
		limit:    limit,
		burst:    burst,
		now:      time.Now,
		limiters: make(map[uuid.UUID]*limiterEntry),
	}
}

func (l *actorLimiter) allow(actorID uuid.UUID) bool {
	now := l.now()

	l.mu.Lock()
	l.pruneIdle(now)

	entry, ok := l.limiters[actorID]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[actorID] = entry
	}
	entry.lastSeen = now
	l.mu.Unlock()

	return entry.limiter.AllowN(now, 1)
}

// pruneIdle must be called with mu held.
func (l *actorLimiter) pruneIdle(now time.Time) {
	if now.Sub(l.lastPruned) < limiterPruneInterval {
		return
	}

	for id, entry := range l.limiters {
		if now.Sub(entry.lastSeen) >= limiterIdleTTL {
			delete(l.limiters, id)
		}
	}

	l.lastPruned = now
}

// rateLimit must run after identify.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := actorFrom(r.Context())
		if !s.limiter.allow(actor.ID) {
			s.logWarn(r.Context(), logMsgRateLimited, logAttrActorID, actor.ID.String())
			w.Header().Set("Retry-After", "1")
			s.writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: errorKindRateLimited, Message: errRateLimited.Error()})

			return
		}

		next.ServeHTTP(w, r)
	})
}
