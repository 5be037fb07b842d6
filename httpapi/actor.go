package httpapi

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

const (
	headerActorID   = "X-Actor-ID"
	headerActorRole = "X-Actor-Role"
)

type actorKey struct{}

// actorFromHeaders reads the caller identity set by the upstream identity layer.
func actorFromHeaders(r *http.Request) (rental.Actor, bool) {
	id, err := uuid.Parse(r.Header.Get(headerActorID))
	if err != nil {
		return rental.Actor{}, false
	}

	role, err := rental.ParseRole(r.Header.Get(headerActorRole))
	if err != nil {
		return rental.Actor{}, false
	}

	return rental.Actor{ID: id, Role: role}, true
}

func withActor(ctx context.Context, actor rental.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// actorFrom returns the actor stored by the identify middleware.
func actorFrom(ctx context.Context) rental.Actor {
	actor, _ := ctx.Value(actorKey{}).(rental.Actor)

	return actor
}

// identify rejects requests without a valid identity and stores the actor in the request context.
func (s *Server) identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFromHeaders(r)
		if !ok {
			s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: errorKindUnauthenticated, Message: errMissingActor.Error()})
			return
		}

		next.ServeHTTP(w, r.WithContext(withActor(r.Context(), actor)))
	})
}
