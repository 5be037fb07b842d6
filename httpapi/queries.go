package httpapi

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/features/query/borrowinghistory"
	"github.com/AntonStoeckl/gear-rental-go/features/query/currentlyborrowed"
	"github.com/AntonStoeckl/gear-rental-go/features/query/gearcatalog"
	"github.com/AntonStoeckl/gear-rental-go/features/query/itemactivity"
	"github.com/AntonStoeckl/gear-rental-go/features/query/itemavailability"
	"github.com/AntonStoeckl/gear-rental-go/features/query/libraryoverview"
	"github.com/AntonStoeckl/gear-rental-go/features/query/rentalrequestsbystatus"
	"github.com/AntonStoeckl/gear-rental-go/features/query/uncollecteditems"
	"github.com/AntonStoeckl/gear-rental-go/features/query/unreadnotifications"
	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/shell"
)

func handleQuery[Q shell.Query, R any](
	s *Server,
	w http.ResponseWriter,
	r *http.Request,
	handler shell.CoreQueryHandler[Q, R],
	query Q,
) {

	result, err := handler.Handle(r.Context(), query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

// patronScope resolves the optional patron_id filter. Patrons only ever see their own data.
func (s *Server) patronScope(w http.ResponseWriter, r *http.Request) (uuid.NullUUID, bool) {
	actor := actorFrom(r.Context())
	if actor.Role == rental.RolePatron {
		return uuid.NullUUID{UUID: actor.ID, Valid: true}, true
	}

	raw := r.URL.Query().Get("patron_id")
	if raw == "" {
		return uuid.NullUUID{}, true
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		s.writeBadRequest(w, "The query parameter 'patron_id' must be a UUID.")
		return uuid.NullUUID{}, false
	}

	return uuid.NullUUID{UUID: id, Valid: true}, true
}

func (s *Server) itemAvailability(w http.ResponseWriter, r *http.Request) {
	if itemID, ok := s.pathID(w, r, "itemID"); ok {
		handleQuery(s, w, r, s.handlers.ItemAvailability, itemavailability.BuildQuery(itemID))
	}
}

func (s *Server) itemActivity(w http.ResponseWriter, r *http.Request) {
	if actorFrom(r.Context()).Role != rental.RoleLibrarian {
		s.writeError(w, r, rental.NewForbidden("view item activity"))
		return
	}

	if itemID, ok := s.pathID(w, r, "itemID"); ok {
		handleQuery(s, w, r, s.handlers.ItemActivity, itemactivity.BuildQuery(itemID))
	}
}

func (s *Server) currentlyBorrowed(w http.ResponseWriter, r *http.Request) {
	patronID, ok := s.patronScope(w, r)
	if !ok {
		return
	}

	query := currentlyborrowed.BuildQuery()
	if patronID.Valid {
		query = currentlyborrowed.BuildQueryForPatron(patronID.UUID)
	}

	handleQuery(s, w, r, s.handlers.CurrentlyBorrowed, query)
}

func (s *Server) borrowingHistory(w http.ResponseWriter, r *http.Request) {
	patronID, ok := s.pathID(w, r, "patronID")
	if !ok {
		return
	}

	actor := actorFrom(r.Context())
	if actor.Role != rental.RoleLibrarian && actor.ID != patronID {
		s.writeError(w, r, rental.NewForbidden("view the history of another patron"))
		return
	}

	handleQuery(s, w, r, s.handlers.BorrowingHistory, borrowinghistory.BuildQuery(patronID))
}

func (s *Server) rentalRequestsByStatus(w http.ResponseWriter, r *http.Request) {
	patronID, ok := s.patronScope(w, r)
	if !ok {
		return
	}

	query, err := rentalrequestsbystatus.BuildQuery(r.URL.Query().Get("status"), patronID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	handleQuery(s, w, r, s.handlers.RentalRequestsByStatus, query)
}

func (s *Server) unreadNotifications(w http.ResponseWriter, r *http.Request) {
	query := unreadnotifications.BuildQuery(actorFrom(r.Context()).ID)
	handleQuery(s, w, r, s.handlers.UnreadNotifications, query)
}

func (s *Server) uncollectedItems(w http.ResponseWriter, r *http.Request) {
	handleQuery(s, w, r, s.handlers.UncollectedItems, uncollecteditems.BuildQuery())
}

func (s *Server) libraryOverview(w http.ResponseWriter, r *http.Request) {
	handleQuery(s, w, r, s.handlers.LibraryOverview, libraryoverview.BuildQuery())
}

func (s *Server) gearCatalog(w http.ResponseWriter, r *http.Request) {
	kinds := make([]rental.GearKind, 0)
	for _, raw := range r.URL.Query()["kind"] {
		kind, err := rental.ParseGearKind(raw)
		if err != nil {
			s.writeBadRequest(w, "The query parameter 'kind' must be one of library, collection, item.")
			return
		}

		kinds = append(kinds, kind)
	}

	handleQuery(s, w, r, s.handlers.GearCatalog, gearcatalog.BuildQuery(actorFrom(r.Context()), kinds...))
}
