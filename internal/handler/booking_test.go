package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railbook/railbook/internal/booking"
	"github.com/railbook/railbook/internal/queue"
)

// newBookingHandler wires a handler without persistence and with an
// event-capturing publisher.
func newBookingHandler() (*BookingHandler, *[]queue.TripBookedEvent) {
	h := NewBookingHandler(newTestEngine(), booking.NewService(), nil)
	var events []queue.TripBookedEvent
	h.Publish = func(c echo.Context, event queue.TripBookedEvent) {
		events = append(events, event)
	}
	return h, &events
}

func doPOST(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBookTripHandler(t *testing.T) {
	h, events := newBookingHandler()
	e := echo.New()

	body := `{
		"route_ids": ["PAR-LYO-0800"],
		"travel_date": "2026-10-05",
		"travelers": [
			{"full_name": "Maria Garcia", "age": 34, "document_id": "X1234567"},
			{"full_name": "Ana Lopez", "age": 29, "document_id": "Y0000001"}
		],
		"ticket_class": "SECOND"
	}`
	c, rec := doPOST(e, "/v1/trips", body)
	require.NoError(t, h.BookTrip(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var trip tripView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trip))

	assert.Equal(t, int64(1), trip.ID)
	assert.Equal(t, "2026-10-05", trip.TravelDate)
	assert.False(t, trip.Persisted)
	require.Len(t, trip.Reservations, 2)
	assert.Equal(t, int64(1000), trip.Reservations[0].TicketID)
	assert.Equal(t, "Garcia", trip.Reservations[0].LastName)
	assert.Equal(t, int64(1001), trip.Reservations[1].TicketID)
	assert.Equal(t, "SECOND", trip.Reservations[0].Class)
	assert.Equal(t, 0, trip.Connection.Transfers)
	assert.Equal(t, int64(9000), trip.Connection.PriceSecondClass.AmountCents)

	require.Len(t, *events, 1)
	event := (*events)[0]
	assert.Equal(t, int64(1), event.TripID)
	assert.Equal(t, "PAR", event.OriginCode)
	assert.Equal(t, "LYO", event.DestinationCode)
	assert.Equal(t, []int64{1000, 1001}, event.TicketIDs)
	assert.Equal(t, int64(9000), event.TotalPriceCents)
	assert.Equal(t, "EUR", event.Currency)
}

func TestBookTripHandlerMultiLeg(t *testing.T) {
	h, _ := newBookingHandler()
	e := echo.New()

	body := `{
		"route_ids": ["PAR-DIJ-0800", "DIJ-LYO-1030"],
		"travel_date": "2026-10-05",
		"travelers": [{"full_name": "Maria Garcia", "age": 34, "document_id": "X1234567"}],
		"ticket_class": "FIRST"
	}`
	c, rec := doPOST(e, "/v1/trips", body)
	require.NoError(t, h.BookTrip(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var trip tripView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trip))
	assert.Equal(t, 1, trip.Connection.Transfers)
	assert.Equal(t, 240, trip.Connection.DurationMinutes)
}

func TestBookTripHandlerPolicyViolation(t *testing.T) {
	h, events := newBookingHandler()
	e := echo.New()

	// The 10:00 onward leg leaves only a 30 minute daytime transfer.
	body := `{
		"route_ids": ["PAR-DIJ-0800", "DIJ-LYO-1000"],
		"travel_date": "2026-10-05",
		"travelers": [{"full_name": "Maria Garcia", "age": 34, "document_id": "X1234567"}],
		"ticket_class": "SECOND"
	}`
	c, rec := doPOST(e, "/v1/trips", body)
	require.NoError(t, h.BookTrip(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, *events)
}

func TestBookTripHandlerBadRequests(t *testing.T) {
	h, events := newBookingHandler()
	e := echo.New()

	traveler := `{"full_name": "Maria Garcia", "age": 34, "document_id": "X1234567"}`
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "malformed json", body: `{"route_ids": [`, status: http.StatusBadRequest},
		{name: "no route ids", body: `{"route_ids": [], "travel_date": "2026-10-05", "travelers": [` + traveler + `], "ticket_class": "SECOND"}`, status: http.StatusBadRequest},
		{name: "bad travel date", body: `{"route_ids": ["PAR-LYO-0800"], "travel_date": "05/10/2026", "travelers": [` + traveler + `], "ticket_class": "SECOND"}`, status: http.StatusBadRequest},
		{name: "unknown ticket class", body: `{"route_ids": ["PAR-LYO-0800"], "travel_date": "2026-10-05", "travelers": [` + traveler + `], "ticket_class": "BUSINESS"}`, status: http.StatusBadRequest},
		{name: "unknown route id", body: `{"route_ids": ["PAR-LYO-0000"], "travel_date": "2026-10-05", "travelers": [` + traveler + `], "ticket_class": "SECOND"}`, status: http.StatusNotFound},
		{name: "no travelers", body: `{"route_ids": ["PAR-LYO-0800"], "travel_date": "2026-10-05", "travelers": [], "ticket_class": "SECOND"}`, status: http.StatusBadRequest},
		{name: "negative age", body: `{"route_ids": ["PAR-LYO-0800"], "travel_date": "2026-10-05", "travelers": [{"full_name": "Maria Garcia", "age": -1, "document_id": "X1"}], "ticket_class": "SECOND"}`, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := doPOST(e, "/v1/trips", tt.body)
			require.NoError(t, h.BookTrip(c))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
	assert.Empty(t, *events)
}

func TestGetClientHandler(t *testing.T) {
	h, _ := newBookingHandler()
	e := echo.New()

	body := `{
		"route_ids": ["PAR-LYO-0800"],
		"travel_date": "2100-01-01",
		"travelers": [{"full_name": "Maria Garcia", "age": 34, "document_id": "X1234567"}],
		"ticket_class": "SECOND"
	}`
	c, rec := doPOST(e, "/v1/trips", body)
	require.NoError(t, h.BookTrip(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = doGET(e, "/v1/clients/garcia/X1234567")
	c.SetParamNames("lastName", "id")
	c.SetParamValues("garcia", "X1234567")
	require.NoError(t, h.GetClient(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		LastName     string     `json:"last_name"`
		DocumentID   string     `json:"document_id"`
		Trips        []tripView `json:"trips"`
		CurrentTrips int        `json:"current_trips"`
		PastTrips    int        `json:"past_trips"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "Garcia", resp.LastName)
	assert.Equal(t, "X1234567", resp.DocumentID)
	require.Len(t, resp.Trips, 1)
	assert.Equal(t, "2100-01-01", resp.Trips[0].TravelDate)
	assert.Equal(t, 1, resp.CurrentTrips)
	assert.Equal(t, 0, resp.PastTrips)
}

func TestGetClientHandlerNotFound(t *testing.T) {
	h, _ := newBookingHandler()
	e := echo.New()

	c, rec := doGET(e, "/v1/clients/nobody/Z0000000")
	c.SetParamNames("lastName", "id")
	c.SetParamValues("nobody", "Z0000000")
	require.NoError(t, h.GetClient(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
