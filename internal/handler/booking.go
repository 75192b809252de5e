package handler

import (
	"errors"   // errors.Is comparisons against booking sentinels
	"log"      // best-effort failure logging
	"net/http" // HTTP status codes
	"time"     // travel date parsing and event timestamps

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/railbook/railbook/internal/booking"
	"github.com/railbook/railbook/internal/model"
	"github.com/railbook/railbook/internal/queue"
	"github.com/railbook/railbook/internal/repository"
	"github.com/railbook/railbook/internal/search"
	queue_publisher "github.com/railbook/railbook/internal/service"
)

// BookingHandler serves trip booking and client lookup.  The booking
// service is the source of truth; MySQL persistence and the trip.booked
// event are best-effort side channels that never un-book a trip.  Trips
// and Publish may be nil, in which case persistence and publishing are
// skipped; the engine and service must be non-nil.
type BookingHandler struct {
	Engine  *search.Engine
	Service *booking.Service
	Trips   *repository.TripRepo
	Publish func(ctx echo.Context, event queue.TripBookedEvent)
}

// NewBookingHandler constructs a BookingHandler with the default event
// publisher.  Pass a nil trips repository to run without persistence.
func NewBookingHandler(engine *search.Engine, service *booking.Service, trips *repository.TripRepo) *BookingHandler {
	if engine == nil || service == nil {
		panic("nil engine or booking service passed to NewBookingHandler")
	}
	return &BookingHandler{
		Engine:  engine,
		Service: service,
		Trips:   trips,
		Publish: func(c echo.Context, event queue.TripBookedEvent) {
			_ = queue_publisher.PublishTripBooked(c.Request().Context(), event)
		},
	}
}

// bookTripRequest is the JSON body of POST /v1/trips.  The connection is
// referenced by its ordered route leg ids, the same ids search results
// carry.
type bookTripRequest struct {
	RouteIDs    []string         `json:"route_ids"`
	TravelDate  string           `json:"travel_date"`
	Travelers   []model.Traveler `json:"travelers"`
	TicketClass string           `json:"ticket_class"`
}

// reservationView is the JSON shape of one reservation in a booked trip.
type reservationView struct {
	TicketID     int64  `json:"ticket_id"`
	TravelerName string `json:"traveler_name"`
	LastName     string `json:"last_name"`
	Class        string `json:"class"`
}

// tripView is the JSON shape of a booked trip.
type tripView struct {
	ID           int64             `json:"id"`
	TravelDate   string            `json:"travel_date"`
	Connection   connectionView    `json:"connection"`
	Reservations []reservationView `json:"reservations"`
	Persisted    bool              `json:"persisted"`
}

// BookTrip handles POST /v1/trips.  It resolves the requested legs from
// the timetable, rebuilds the connection, books it for the whole traveler
// group, then persists the trip and publishes a trip.booked event.  Both
// side effects are best-effort; failures are logged and reflected in the
// response but do not undo the booking.
func (h *BookingHandler) BookTrip(c echo.Context) error {
	var req bookTripRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(req.RouteIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "route_ids is required"})
	}

	travelDate, err := time.Parse(travelDateLayout, req.TravelDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid travel_date, want YYYY-MM-DD"})
	}

	class, err := model.ParseTicketClass(req.TicketClass)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown ticket class"})
	}

	legs := make([]model.Route, 0, len(req.RouteIDs))
	for _, id := range req.RouteIDs {
		leg, ok := h.Engine.RouteByID(id)
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown route id", "route_id": id})
		}
		legs = append(legs, leg)
	}

	conn, err := model.NewConnection(legs)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	trip, err := h.Service.BookGroupTrip(conn, travelDate, req.Travelers, class)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrPolicyViolation):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
		case errors.Is(err, booking.ErrInvalidBooking):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}

	persisted := h.persistTrip(c, trip)
	if h.Publish != nil {
		h.Publish(c, tripBookedEvent(trip, class))
	}

	return c.JSON(http.StatusCreated, viewTrip(trip, persisted))
}

// GetClient handles GET /v1/clients/:lastName/:id.  Last-name matching is
// case-insensitive; a miss is a 404, not a server error.
func (h *BookingHandler) GetClient(c echo.Context) error {
	lastName := c.Param("lastName")
	documentID := c.Param("id")

	client, err := h.Service.GetClient(lastName, documentID)
	if err != nil {
		if errors.Is(err, booking.ErrClientNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}

	now := time.Now()
	trips := client.Trips()
	tripViews := make([]tripView, 0, len(trips))
	for _, t := range trips {
		tripViews = append(tripViews, viewTrip(t, false))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"last_name":     client.LastName,
		"document_id":   client.DocumentID,
		"trips":         tripViews,
		"current_trips": len(client.CurrentTrips(now)),
		"past_trips":    len(client.PastTrips(now)),
	})
}

// persistTrip writes the trip to MySQL when a repository is configured.
// It reports whether the write happened; failures are logged only.
func (h *BookingHandler) persistTrip(c echo.Context, trip *model.Trip) bool {
	if h.Trips == nil {
		return false
	}

	conn := trip.Connection
	saved := repository.SavedTrip{
		ID:                    trip.ID,
		TravelDate:            trip.TravelDate,
		OriginCode:            conn.Legs[0].From.Code,
		DestinationCode:       conn.Legs[len(conn.Legs)-1].To.Code,
		LegsCount:             len(conn.Legs),
		TotalDurationMinutes:  conn.TotalDurationMinutes,
		TotalPriceFirstCents:  conn.TotalPriceFirst.AmountCents,
		TotalPriceSecondCents: conn.TotalPriceSecond.AmountCents,
		Currency:              conn.TotalPriceFirst.Currency,
	}

	reservations := make([]repository.SavedReservation, 0, len(trip.Reservations))
	for _, res := range trip.Reservations {
		reservations = append(reservations, repository.SavedReservation{
			LastName:           res.Client.LastName,
			TicketID:           res.Ticket.ID,
			TravelerName:       res.Ticket.TravelerName,
			TravelerAge:        res.Ticket.TravelerAge,
			TravelerDocumentID: res.Ticket.TravelerDocumentID,
			TicketClass:        string(res.Class),
			PriceCents:         conn.TotalPriceFor(res.Class).AmountCents,
		})
	}

	if err := h.Trips.SaveTrip(c.Request().Context(), saved, reservations); err != nil {
		log.Printf("booking: persist trip %d failed: %v", trip.ID, err)
		return false
	}
	return true
}

// tripBookedEvent flattens a booked trip into its broker event.
func tripBookedEvent(trip *model.Trip, class model.TicketClass) queue.TripBookedEvent {
	conn := trip.Connection
	first := conn.Legs[0]
	last := conn.Legs[len(conn.Legs)-1]

	ticketIDs := make([]int64, 0, len(trip.Reservations))
	travelers := make([]string, 0, len(trip.Reservations))
	for _, res := range trip.Reservations {
		ticketIDs = append(ticketIDs, res.Ticket.ID)
		travelers = append(travelers, res.Ticket.TravelerName)
	}

	return queue.TripBookedEvent{
		TripID:          trip.ID,
		TravelDate:      trip.TravelDate.Format(travelDateLayout),
		OriginCode:      first.From.Code,
		OriginName:      first.From.Name,
		DestinationCode: last.To.Code,
		DestinationName: last.To.Name,
		Departure:       conn.TotalDeparture.String(),
		Arrival:         conn.TotalArrival.String(),
		Transfers:       conn.Transfers(),
		DurationMinutes: conn.TotalDurationMinutes,
		TicketClass:     string(class),
		TicketIDs:       ticketIDs,
		Travelers:       travelers,
		TotalPriceCents: conn.TotalPriceFor(class).AmountCents,
		Currency:        conn.TotalPriceFor(class).Currency,
		BookedAt:        time.Now().UTC().Format(time.RFC3339),
	}
}

// viewTrip flattens a trip for JSON responses.
func viewTrip(trip *model.Trip, persisted bool) tripView {
	reservations := make([]reservationView, 0, len(trip.Reservations))
	for _, res := range trip.Reservations {
		reservations = append(reservations, reservationView{
			TicketID:     res.Ticket.ID,
			TravelerName: res.Ticket.TravelerName,
			LastName:     res.Client.LastName,
			Class:        string(res.Class),
		})
	}
	return tripView{
		ID:           trip.ID,
		TravelDate:   trip.TravelDate.Format(travelDateLayout),
		Connection:   viewConnection(trip.Connection),
		Reservations: reservations,
		Persisted:    persisted,
	}
}
