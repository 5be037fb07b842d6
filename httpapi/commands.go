package httpapi

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/gear-rental-go/features/command/addcollectionitem"
	"github.com/AntonStoeckl/gear-rental-go/features/command/approveaccessrequest"
	"github.com/AntonStoeckl/gear-rental-go/features/command/approverentalrequest"
	"github.com/AntonStoeckl/gear-rental-go/features/command/cancelaccessrequest"
	"github.com/AntonStoeckl/gear-rental-go/features/command/cancelrentalrequest"
	"github.com/AntonStoeckl/gear-rental-go/features/command/changeitemquantity"
	"github.com/AntonStoeckl/gear-rental-go/features/command/createcollection"
	"github.com/AntonStoeckl/gear-rental-go/features/command/denyaccessrequest"
	"github.com/AntonStoeckl/gear-rental-go/features/command/denyrentalrequest"
	"github.com/AntonStoeckl/gear-rental-go/features/command/marknotificationsviewed"
	"github.com/AntonStoeckl/gear-rental-go/features/command/recordborrow"
	"github.com/AntonStoeckl/gear-rental-go/features/command/registeritem"
	"github.com/AntonStoeckl/gear-rental-go/features/command/registerlibrary"
	"github.com/AntonStoeckl/gear-rental-go/features/command/registerpatron"
	"github.com/AntonStoeckl/gear-rental-go/features/command/returnborrowedunits"
	"github.com/AntonStoeckl/gear-rental-go/features/command/setcollectionitems"
	"github.com/AntonStoeckl/gear-rental-go/features/command/submitaccessrequest"
	"github.com/AntonStoeckl/gear-rental-go/features/command/submitrentalrequest"
	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/shared/core"
	"github.com/AntonStoeckl/gear-rental-go/shared/shell"
)

const (
	statusSuccess    = "success"
	statusIdempotent = "idempotent"
)

// commandResponse is the body of a successful command. ID is set when the command created an entity.
type commandResponse struct {
	Status    string           `json:"status"`
	ID        *uuid.UUID       `json:"id,omitempty"`
	EventType string           `json:"event_type,omitempty"`
	Event     core.DomainEvent `json:"event,omitempty"`
}

// handleCommand runs the command and renders its outcome. created is the id of the entity the command creates, if any.
func handleCommand[C shell.Command](
	s *Server,
	w http.ResponseWriter,
	r *http.Request,
	handler shell.CoreCommandHandler[C],
	command C,
	created *uuid.UUID,
) {

	result, err := handler.Handle(r.Context(), command)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if result.Idempotent {
		s.writeJSON(w, http.StatusOK, commandResponse{Status: statusIdempotent, ID: created})
		return
	}

	status := http.StatusOK
	if created != nil {
		status = http.StatusCreated
	}

	response := commandResponse{Status: statusSuccess, ID: created, Event: result.Event}
	if result.Event != nil {
		response.EventType = result.Event.IsEventType()
	}

	s.writeJSON(w, status, response)
}

// createdID generates the id of a new entity. It writes the 500 response itself on failure.
func (s *Server) createdID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := s.newID()
	if err != nil {
		s.writeError(w, r, err)
		return uuid.Nil, false
	}

	return id, true
}

type registerPatronRequest struct {
	PatronID uuid.UUID `json:"patron_id"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
}

func (s *Server) registerPatron(w http.ResponseWriter, r *http.Request) {
	var req registerPatronRequest
	if !s.decode(w, r, &req) {
		return
	}

	role, err := rental.ParseRole(req.Role)
	if err != nil {
		s.writeError(w, r, rental.NewInvalidInput("Role must be 'librarian' or 'patron'."))
		return
	}

	command := registerpatron.BuildCommand(actorFrom(r.Context()), req.PatronID, req.Name, role, s.now())
	handleCommand(s, w, r, s.handlers.RegisterPatron, command, &req.PatronID)
}

type registerLibraryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

func (s *Server) registerLibrary(w http.ResponseWriter, r *http.Request) {
	var req registerLibraryRequest
	if !s.decode(w, r, &req) {
		return
	}

	libraryID, ok := s.createdID(w, r)
	if !ok {
		return
	}

	command := registerlibrary.BuildCommand(actorFrom(r.Context()), libraryID, req.Title, req.Description, req.Location, s.now())
	handleCommand(s, w, r, s.handlers.RegisterLibrary, command, &libraryID)
}

type registerItemRequest struct {
	LibraryID   *uuid.UUID `json:"library_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Quantity    int        `json:"quantity"`
}

func (s *Server) registerItem(w http.ResponseWriter, r *http.Request) {
	var req registerItemRequest
	if !s.decode(w, r, &req) {
		return
	}

	itemID, ok := s.createdID(w, r)
	if !ok {
		return
	}

	var libraryID uuid.NullUUID
	if req.LibraryID != nil {
		libraryID = uuid.NullUUID{UUID: *req.LibraryID, Valid: true}
	}

	command := registeritem.BuildCommand(
		actorFrom(r.Context()), itemID, libraryID, req.Title, req.Description, req.Location, req.Quantity, s.now(),
	)
	handleCommand(s, w, r, s.handlers.RegisterItem, command, &itemID)
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (s *Server) changeItemQuantity(w http.ResponseWriter, r *http.Request) {
	itemID, ok := s.pathID(w, r, "itemID")
	if !ok {
		return
	}

	var req quantityRequest
	if !s.decode(w, r, &req) {
		return
	}

	command := changeitemquantity.BuildCommand(actorFrom(r.Context()), itemID, req.Quantity, s.now())
	handleCommand(s, w, r, s.handlers.ChangeItemQuantity, command, nil)
}

type loanRequest struct {
	PatronID uuid.UUID `json:"patron_id"`
	Quantity int       `json:"quantity"`
}

func (s *Server) recordBorrow(w http.ResponseWriter, r *http.Request) {
	itemID, ok := s.pathID(w, r, "itemID")
	if !ok {
		return
	}

	var req loanRequest
	if !s.decode(w, r, &req) {
		return
	}

	command := recordborrow.BuildCommand(actorFrom(r.Context()), itemID, req.PatronID, req.Quantity, s.now())
	handleCommand(s, w, r, s.handlers.RecordBorrow, command, nil)
}

func (s *Server) returnBorrowedUnits(w http.ResponseWriter, r *http.Request) {
	itemID, ok := s.pathID(w, r, "itemID")
	if !ok {
		return
	}

	var req loanRequest
	if !s.decode(w, r, &req) {
		return
	}

	command := returnborrowedunits.BuildCommand(actorFrom(r.Context()), itemID, req.PatronID, req.Quantity, s.now())
	handleCommand(s, w, r, s.handlers.ReturnBorrowedUnits, command, nil)
}

type submitRentalRequestRequest struct {
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int       `json:"quantity"`
}

func (s *Server) submitRentalRequest(w http.ResponseWriter, r *http.Request) {
	var req submitRentalRequestRequest
	if !s.decode(w, r, &req) {
		return
	}

	requestID, ok := s.createdID(w, r)
	if !ok {
		return
	}

	command := submitrentalrequest.BuildCommand(actorFrom(r.Context()), requestID, req.ItemID, req.Quantity, s.now())
	handleCommand(s, w, r, s.handlers.SubmitRentalRequest, command, &requestID)
}

func (s *Server) approveRentalRequest(w http.ResponseWriter, r *http.Request) {
	if requestID, ok := s.pathID(w, r, "requestID"); ok {
		command := approverentalrequest.BuildCommand(actorFrom(r.Context()), requestID, s.now())
		handleCommand(s, w, r, s.handlers.ApproveRentalRequest, command, nil)
	}
}

func (s *Server) denyRentalRequest(w http.ResponseWriter, r *http.Request) {
	if requestID, ok := s.pathID(w, r, "requestID"); ok {
		command := denyrentalrequest.BuildCommand(actorFrom(r.Context()), requestID, s.now())
		handleCommand(s, w, r, s.handlers.DenyRentalRequest, command, nil)
	}
}

func (s *Server) cancelRentalRequest(w http.ResponseWriter, r *http.Request) {
	if requestID, ok := s.pathID(w, r, "requestID"); ok {
		command := cancelrentalrequest.BuildCommand(actorFrom(r.Context()), requestID, s.now())
		handleCommand(s, w, r, s.handlers.CancelRentalRequest, command, nil)
	}
}

type createCollectionRequest struct {
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	IsPrivate    bool        `json:"is_private"`
	ItemIDs      []uuid.UUID `json:"item_ids"`
	AllowedUsers []uuid.UUID `json:"allowed_users"`
}

func (s *Server) createCollection(w http.ResponseWriter, r *http.Request) {
	var req createCollectionRequest
	if !s.decode(w, r, &req) {
		return
	}

	collectionID, ok := s.createdID(w, r)
	if !ok {
		return
	}

	command := createcollection.BuildCommand(
		actorFrom(r.Context()), collectionID, req.Title, req.Description, req.IsPrivate, req.ItemIDs, req.AllowedUsers, s.now(),
	)
	handleCommand(s, w, r, s.handlers.CreateCollection, command, &collectionID)
}

type collectionItemRequest struct {
	ItemID uuid.UUID `json:"item_id"`
}

func (s *Server) addCollectionItem(w http.ResponseWriter, r *http.Request) {
	collectionID, ok := s.pathID(w, r, "collectionID")
	if !ok {
		return
	}

	var req collectionItemRequest
	if !s.decode(w, r, &req) {
		return
	}

	command := addcollectionitem.BuildCommand(actorFrom(r.Context()), collectionID, req.ItemID, s.now())
	handleCommand(s, w, r, s.handlers.AddCollectionItem, command, nil)
}

type collectionItemsRequest struct {
	ItemIDs []uuid.UUID `json:"item_ids"`
}

func (s *Server) setCollectionItems(w http.ResponseWriter, r *http.Request) {
	collectionID, ok := s.pathID(w, r, "collectionID")
	if !ok {
		return
	}

	var req collectionItemsRequest
	if !s.decode(w, r, &req) {
		return
	}

	command := setcollectionitems.BuildCommand(actorFrom(r.Context()), collectionID, req.ItemIDs, s.now())
	handleCommand(s, w, r, s.handlers.SetCollectionItems, command, nil)
}

func (s *Server) submitAccessRequest(w http.ResponseWriter, r *http.Request) {
	collectionID, ok := s.pathID(w, r, "collectionID")
	if !ok {
		return
	}

	requestID, ok := s.createdID(w, r)
	if !ok {
		return
	}

	command := submitaccessrequest.BuildCommand(actorFrom(r.Context()), requestID, collectionID, s.now())
	handleCommand(s, w, r, s.handlers.SubmitAccessRequest, command, &requestID)
}

func (s *Server) approveAccessRequest(w http.ResponseWriter, r *http.Request) {
	if requestID, ok := s.pathID(w, r, "requestID"); ok {
		command := approveaccessrequest.BuildCommand(actorFrom(r.Context()), requestID, s.now())
		handleCommand(s, w, r, s.handlers.ApproveAccessRequest, command, nil)
	}
}

func (s *Server) denyAccessRequest(w http.ResponseWriter, r *http.Request) {
	if requestID, ok := s.pathID(w, r, "requestID"); ok {
		command := denyaccessrequest.BuildCommand(actorFrom(r.Context()), requestID, s.now())
		handleCommand(s, w, r, s.handlers.DenyAccessRequest, command, nil)
	}
}

func (s *Server) cancelAccessRequest(w http.ResponseWriter, r *http.Request) {
	if requestID, ok := s.pathID(w, r, "requestID"); ok {
		command := cancelaccessrequest.BuildCommand(actorFrom(r.Context()), requestID, s.now())
		handleCommand(s, w, r, s.handlers.CancelAccessRequest, command, nil)
	}
}

type markViewedRequest struct {
	Rentals        bool `json:"rentals"`
	AccessRequests bool `json:"access_requests"`
}

func (s *Server) markNotificationsViewed(w http.ResponseWriter, r *http.Request) {
	var req markViewedRequest
	if !s.decode(w, r, &req) {
		return
	}

	command := marknotificationsviewed.BuildCommand(actorFrom(r.Context()), req.Rentals, req.AccessRequests, s.now())
	handleCommand(s, w, r, s.handlers.MarkNotificationsViewed, command, nil)
}
