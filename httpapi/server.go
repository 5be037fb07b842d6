package httpapi

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"

	"github.com/AntonStoeckl/gear-rental-go/rental"
)

const (
	defaultRequestTimeout = 10 * time.Second
	defaultRateLimit      = rate.Limit(20)
	defaultRateBurst      = 40
	maxBodyBytes          = 1 << 20

	logMsgRequestFailed = "request failed"
	logMsgRateLimited   = "request rate limited"
	logMsgEncodeFailed  = "encoding response failed"
	logAttrPath         = "path"
	logAttrError        = "error"
	logAttrActorID      = "actor_id"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Server routes HTTP requests to the use case handlers.
type Server struct {
	handlers       Handlers
	limiter        *actorLimiter
	requestTimeout time.Duration
	now            func() time.Time
	newID          func() (uuid.UUID, error)
	logger         rental.ContextualLogger
}

// Option configures a Server.
type Option func(*Server)

// WithRateLimit sets the per-actor token bucket.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(s *Server) {
		s.limiter = newActorLimiter(limit, burst)
	}
}

// WithRequestTimeout bounds the time a single request may take.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.requestTimeout = timeout
	}
}

// WithClock replaces the source of command timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithIDGenerator replaces the source of ids for newly created entities.
func WithIDGenerator(newID func() (uuid.UUID, error)) Option {
	return func(s *Server) {
		s.newID = newID
	}
}

// WithContextualLogger sets the logger for failed requests.
func WithContextualLogger(logger rental.ContextualLogger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a Server with sane defaults for everything not set by opts.
func NewServer(handlers Handlers, opts ...Option) *Server {
	s := &Server{
		handlers:       handlers,
		limiter:        newActorLimiter(defaultRateLimit, defaultRateBurst),
		requestTimeout: defaultRequestTimeout,
		now:            time.Now,
		newID:          uuid.NewV7,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Router returns the HTTP handler serving the whole API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.requestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.identify)
		r.Use(s.rateLimit)

		r.Post("/patrons", s.registerPatron)
		r.Get("/patrons/{patronID}/borrowing-history", s.borrowingHistory)

		r.Post("/libraries", s.registerLibrary)
		r.Get("/libraries/overview", s.libraryOverview)

		r.Post("/items", s.registerItem)
		r.Get("/items/uncollected", s.uncollectedItems)
		r.Route("/items/{itemID}", func(r chi.Router) {
			r.Put("/quantity", s.changeItemQuantity)
			r.Get("/availability", s.itemAvailability)
			r.Get("/activity", s.itemActivity)
			r.Post("/borrows", s.recordBorrow)
			r.Post("/returns", s.returnBorrowedUnits)
		})

		r.Get("/borrows", s.currentlyBorrowed)

		r.Get("/rental-requests", s.rentalRequestsByStatus)
		r.Post("/rental-requests", s.submitRentalRequest)
		r.Route("/rental-requests/{requestID}", func(r chi.Router) {
			r.Post("/approve", s.approveRentalRequest)
			r.Post("/deny", s.denyRentalRequest)
			r.Delete("/", s.cancelRentalRequest)
		})

		r.Post("/collections", s.createCollection)
		r.Route("/collections/{collectionID}", func(r chi.Router) {
			r.Post("/items", s.addCollectionItem)
			r.Put("/items", s.setCollectionItems)
			r.Post("/access-requests", s.submitAccessRequest)
		})

		r.Route("/access-requests/{requestID}", func(r chi.Router) {
			r.Post("/approve", s.approveAccessRequest)
			r.Post("/deny", s.denyAccessRequest)
			r.Delete("/", s.cancelAccessRequest)
		})

		r.Get("/catalog", s.gearCatalog)

		r.Get("/me/notifications", s.unreadNotifications)
		r.Post("/me/notifications/viewed", s.markNotificationsViewed)
	})

	return r
}

// decode reads a JSON body into dst. It writes the 400 response itself and reports whether decoding succeeded.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.writeBadRequest(w, "The request body could not be read.")
		return false
	}

	if err = json.Unmarshal(body, dst); err != nil {
		s.writeBadRequest(w, "The request body is not valid JSON for this endpoint.")
		return false
	}

	return true
}

// pathID parses a uuid URL parameter. It writes the 400 response itself on failure.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		s.writeBadRequest(w, "The path parameter '"+name+"' must be a UUID.")
		return uuid.Nil, false
	}

	return id, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		s.logError(context.Background(), logMsgEncodeFailed, logAttrError, err.Error())
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func (s *Server) logError(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.ErrorContext(ctx, msg, args...)
	}
}

func (s *Server) logWarn(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.WarnContext(ctx, msg, args...)
	}
}
