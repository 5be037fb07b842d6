package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

const (
	errorKindBadRequest      = "bad_request"
	errorKindUnauthenticated = "unauthenticated"
	errorKindRateLimited     = "rate_limited"
	errorKindUnavailable     = "unavailable"
	errorKindInternal        = "internal"
)

var (
	errMissingActor = errors.New("missing or malformed X-Actor-ID / X-Actor-Role headers")
	errRateLimited  = errors.New("too many requests, slow down")
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error       string `json:"error"`
	Message     string `json:"message"`
	Outstanding *int   `json:"outstanding,omitempty"`
}

// statusFor maps a violation kind to its HTTP status code.
func statusFor(kind rental.ErrorKind) int {
	switch kind {
	case rental.KindInvalidInput, rental.KindInsufficientStock, rental.KindExceedsOutstanding, rental.KindNoOpenBorrow,
		rental.KindAlreadyInCollection, rental.KindBelongsToPrivateCollection:
		return http.StatusUnprocessableEntity
	case rental.KindDuplicateRequest, rental.KindInvalidState, rental.KindConflict:
		return http.StatusConflict
	case rental.KindForbidden:
		return http.StatusForbidden
	case rental.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err. Violations carry their own message; anything else is logged and hidden from the caller.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var violation *rental.Violation

	switch {
	case errors.As(err, &violation):
		body := errorResponse{Error: violation.Kind.String(), Message: violation.Message}
		if violation.Kind == rental.KindExceedsOutstanding {
			body.Outstanding = &violation.Outstanding
		}

		s.writeJSON(w, statusFor(violation.Kind), body)

	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		s.writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error:   errorKindUnavailable,
			Message: "The request did not complete in time, please retry.",
		})

	default:
		s.logError(r.Context(), logMsgRequestFailed, logAttrPath, r.URL.Path, logAttrError, err.Error())
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   errorKindInternal,
			Message: "Something went wrong on our side.",
		})
	}
}

func (s *Server) writeBadRequest(w http.ResponseWriter, message string) {
	s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorKindBadRequest, Message: message})
}
