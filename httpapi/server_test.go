package httpapi_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/AntonStoeckl/gear-rental-go/httpapi"
	"github.com/AntonStoeckl/gear-rental-go/rental"
	"github.com/AntonStoeckl/gear-rental-go/rental/memoryengine"
	. "github.com/AntonStoeckl/gear-rental-go/testutil/fixtures" //nolint:revive
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type apiClient struct {
	t      *testing.T
	router http.Handler
}

func newAPI(t *testing.T, engine *memoryengine.Engine, opts ...httpapi.Option) apiClient {
	t.Helper()

	handlers, err := httpapi.NewHandlers(engine, httpapi.Instrumentation{})
	require.NoError(t, err)

	opts = append([]httpapi.Option{httpapi.WithClock(func() time.Time { return FixedTime })}, opts...)

	return apiClient{t: t, router: httpapi.NewServer(handlers, opts...).Router()}
}

func (c apiClient) do(actor *rental.Actor, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	c.t.Helper()

	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		require.NoError(c.t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if actor != nil {
		req.Header.Set("X-Actor-ID", actor.ID.String())
		req.Header.Set("X-Actor-Role", actor.Role.String())
	}

	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	decoded := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	}

	return rec, decoded
}

func actorPtr(actor rental.Actor) *rental.Actor {
	return &actor
}

func Test_Router_RejectsRequestsWithoutIdentity(t *testing.T) {
	// arrange
	api := newAPI(t, NewMemoryEngine(t))

	// act
	rec, body := api.do(nil, http.MethodGet, "/api/v1/catalog", nil)

	// assert
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthenticated", body["error"])
}

func Test_Router_HealthzNeedsNoIdentity(t *testing.T) {
	// arrange
	api := newAPI(t, NewMemoryEngine(t))

	// act
	rec, _ := api.do(nil, http.MethodGet, "/healthz", nil)

	// assert
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func Test_Router_RentalLifecycle(t *testing.T) {
	// arrange
	engine := NewMemoryEngine(t)
	api := newAPI(t, engine)
	librarian := actorPtr(rental.Librarian(GivenLibrarian(t, engine, "Lin").ID))
	patron := GivenPatron(t, engine, "Ada")
	ada := actorPtr(rental.PatronActor(patron.ID))

	// act: register an item
	rec, body := api.do(librarian, http.MethodPost, "/api/v1/items", map[string]any{"title": "Tent", "quantity": 3})

	// assert
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "ItemRegistered", body["event_type"])
	itemID := body["id"].(string) //nolint:forcetypeassert

	// act: the patron asks for two units
	rec, body = api.do(ada, http.MethodPost, "/api/v1/rental-requests", map[string]any{"item_id": itemID, "quantity": 2})

	// assert
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	requestID := body["id"].(string) //nolint:forcetypeassert

	// act: a second pending request for the same item
	rec, body = api.do(ada, http.MethodPost, "/api/v1/rental-requests", map[string]any{"item_id": itemID, "quantity": 1})

	// assert
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "duplicate_request", body["error"])
	assert.Equal(t, "You already have a pending request for 'Tent'.", body["message"])

	// act: the patron may not approve
	rec, body = api.do(ada, http.MethodPost, "/api/v1/rental-requests/"+requestID+"/approve", nil)

	// assert
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", body["error"])

	// act: the librarian approves
	rec, body = api.do(librarian, http.MethodPost, "/api/v1/rental-requests/"+requestID+"/approve", nil)

	// assert
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "RentalRequestApproved", body["event_type"])

	// act: availability
	rec, body = api.do(ada, http.MethodGet, "/api/v1/items/"+itemID+"/availability", nil)

	// assert
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 1.0, body["AvailableQuantity"], 0.0001)
	assert.Equal(t, "available", body["Status"])

	// act: returning more than is outstanding
	rec, body = api.do(librarian, http.MethodPost, "/api/v1/items/"+itemID+"/returns",
		map[string]any{"patron_id": patron.ID.String(), "quantity": 5})

	// assert
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "exceeds_outstanding", body["error"])
	assert.InDelta(t, 2.0, body["outstanding"], 0.0001)

	// act: returning what is outstanding
	rec, body = api.do(librarian, http.MethodPost, "/api/v1/items/"+itemID+"/returns",
		map[string]any{"patron_id": patron.ID.String(), "quantity": 2})

	// assert
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "BorrowedUnitsReturned", body["event_type"])
}

func Test_Router_ErrorMapping(t *testing.T) {
	// arrange
	engine := NewMemoryEngine(t)
	api := newAPI(t, engine)
	librarian := actorPtr(rental.Librarian(GivenUniqueID(t)))
	item := GivenItem(t, engine, "Tent", 1)

	testCases := []struct {
		name           string
		method         string
		path           string
		body           any
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "unknown item",
			method:         http.MethodGet,
			path:           "/api/v1/items/" + uuid.NewString() + "/availability",
			expectedStatus: http.StatusNotFound,
			expectedError:  "not_found",
		},
		{
			name:           "malformed path id",
			method:         http.MethodGet,
			path:           "/api/v1/items/not-a-uuid/availability",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "bad_request",
		},
		{
			name:           "malformed body",
			method:         http.MethodPut,
			path:           "/api/v1/items/" + item.ID.String() + "/quantity",
			body:           `{"quantity": "many"`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "bad_request",
		},
		{
			name:           "invalid quantity",
			method:         http.MethodPut,
			path:           "/api/v1/items/" + item.ID.String() + "/quantity",
			body:           map[string]any{"quantity": -1},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "invalid_input",
		},
		{
			name:           "unknown request status",
			method:         http.MethodGet,
			path:           "/api/v1/rental-requests?status=lost",
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "invalid_input",
		},
		{
			name:           "unknown catalog kind",
			method:         http.MethodGet,
			path:           "/api/v1/catalog?kind=bicycle",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "bad_request",
		},
		{
			name:           "unknown role",
			method:         http.MethodPost,
			path:           "/api/v1/patrons",
			body:           map[string]any{"patron_id": uuid.NewString(), "name": "Ada", "role": "admin"},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "invalid_input",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			rec, body := api.do(librarian, tc.method, tc.path, tc.body)

			// assert
			assert.Equal(t, tc.expectedStatus, rec.Code, rec.Body.String())
			assert.Equal(t, tc.expectedError, body["error"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func Test_Router_PatronsSeeOnlyTheirOwnHistory(t *testing.T) {
	// arrange
	engine := NewMemoryEngine(t)
	api := newAPI(t, engine)
	ada := GivenPatron(t, engine, "Ada")
	bob := GivenPatron(t, engine, "Bob")

	// act
	own, _ := api.do(actorPtr(rental.PatronActor(ada.ID)), http.MethodGet, "/api/v1/patrons/"+ada.ID.String()+"/borrowing-history", nil)
	other, body := api.do(actorPtr(rental.PatronActor(ada.ID)), http.MethodGet, "/api/v1/patrons/"+bob.ID.String()+"/borrowing-history", nil)

	// assert
	assert.Equal(t, http.StatusOK, own.Code)
	assert.Equal(t, http.StatusForbidden, other.Code)
	assert.Equal(t, "forbidden", body["error"])
}

func Test_Router_GearCatalogRendersKindsByName(t *testing.T) {
	// arrange
	engine := NewMemoryEngine(t)
	api := newAPI(t, engine)
	GivenLibrary(t, engine, "North")
	GivenItem(t, engine, "Tent", 1)

	// act
	rec, body := api.do(actorPtr(rental.PatronActor(GivenUniqueID(t))), http.MethodGet, "/api/v1/catalog?kind=library", nil)

	// assert
	require.Equal(t, http.StatusOK, rec.Code)
	entries, ok := body["Entries"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 1)
	assert.Equal(t, "library", entries[0].(map[string]any)["Kind"]) //nolint:forcetypeassert
}

func Test_Router_RateLimitsPerActor(t *testing.T) {
	// arrange
	api := newAPI(t, NewMemoryEngine(t), httpapi.WithRateLimit(rate.Limit(0), 1))
	ada := actorPtr(rental.PatronActor(GivenUniqueID(t)))
	bob := actorPtr(rental.PatronActor(GivenUniqueID(t)))

	// act
	first, _ := api.do(ada, http.MethodGet, "/api/v1/catalog", nil)
	second, body := api.do(ada, http.MethodGet, "/api/v1/catalog", nil)
	other, _ := api.do(bob, http.MethodGet, "/api/v1/catalog", nil)

	// assert
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "rate_limited", body["error"])
	assert.Equal(t, http.StatusOK, other.Code)
}
