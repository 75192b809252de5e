// Package booking turns a chosen connection into a trip with one
// reservation and ticket per traveler, and maintains the client registry.
package booking

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/railbook/railbook/internal/model"
)

// Sentinel errors returned by the booking service.  Handlers translate
// them into HTTP statuses with errors.Is.
var (
	// ErrInvalidBooking is the root of every input validation failure;
	// specific failures wrap it with detail.
	ErrInvalidBooking = errors.New("invalid booking request")

	// ErrPolicyViolation means the connection's layovers do not satisfy
	// the layover policy.  Nothing is created when this is returned.
	ErrPolicyViolation = errors.New("connection violates layover policy")

	// ErrClientNotFound is the normal absent result of a client lookup.
	ErrClientNotFound = errors.New("client not found")
)

// firstTicketID is where ticket numbering starts.  Trip ids start at 1.
const firstTicketID = 1000

// Service owns the only mutable state in the core: the client registry
// and the trip/ticket id counters.  A single mutex guards all of it, so
// concurrent bookings can neither duplicate a client record nor issue the
// same ticket id twice.
type Service struct {
	mu           sync.Mutex
	clients      map[string]*model.Client
	nextTripID   int64
	nextTicketID int64
}

// NewService creates a booking service with an empty client registry.
func NewService() *Service {
	return &Service{
		clients:      make(map[string]*model.Client),
		nextTripID:   1,
		nextTicketID: firstTicketID,
	}
}

// clientKey builds the registry key for a (lastName, documentID) pair.
// Last names compare case-insensitively.
func clientKey(lastName, documentID string) string {
	return strings.ToLower(lastName) + "|" + documentID
}

// BookTrip books a connection for a single traveler.  It is shorthand for
// BookGroupTrip with a one-element traveler list.
func (s *Service) BookTrip(conn *model.Connection, travelDate time.Time, traveler model.Traveler, class model.TicketClass) (*model.Trip, error) {
	return s.BookGroupTrip(conn, travelDate, []model.Traveler{traveler}, class)
}

// BookGroupTrip books a connection for a group of travelers on the given
// date.  All validation and the layover policy re-check happen before any
// state changes, so a failed booking leaves the registry and counters
// untouched.  On success it returns a trip holding one reservation per
// traveler, in traveler order; each distinct (lastName, documentID) pair
// maps to exactly one client record, created on first sight and reused
// afterwards.  A traveler listed twice yields two reservations against the
// same client.
func (s *Service) BookGroupTrip(conn *model.Connection, travelDate time.Time, travelers []model.Traveler, class model.TicketClass) (*model.Trip, error) {
	if err := validate(conn, travelDate, travelers, class); err != nil {
		return nil, err
	}
	if !conn.RespectsLayoverPolicy() {
		return nil, ErrPolicyViolation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	trip := &model.Trip{
		ID:         s.nextTripID,
		Connection: conn,
		TravelDate: travelDate,
	}
	s.nextTripID++

	for _, traveler := range travelers {
		lastName := traveler.LastName()
		key := clientKey(lastName, traveler.DocumentID)
		client, ok := s.clients[key]
		if !ok {
			client = model.NewClient(lastName, traveler.DocumentID)
			s.clients[key] = client
		}

		ticket := model.Ticket{
			ID:                 s.nextTicketID,
			TravelerName:       traveler.FullName,
			TravelerAge:        traveler.Age,
			TravelerDocumentID: traveler.DocumentID,
			Connection:         conn,
			Class:              class,
		}
		s.nextTicketID++

		trip.AddReservation(model.Reservation{
			Client:     client,
			Connection: conn,
			Ticket:     ticket,
			Class:      class,
		})
		client.AddTrip(trip)
	}

	return trip, nil
}

// GetClient looks up a client by last name (case-insensitive) and document
// id.  It never mutates the registry; a miss returns ErrClientNotFound.
func (s *Service) GetClient(lastName, documentID string) (*model.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, ok := s.clients[clientKey(lastName, documentID)]
	if !ok {
		return nil, ErrClientNotFound
	}
	return client, nil
}

// validate checks the booking inputs without touching any state.
func validate(conn *model.Connection, travelDate time.Time, travelers []model.Traveler, class model.TicketClass) error {
	if conn == nil {
		return fmt.Errorf("connection is required: %w", ErrInvalidBooking)
	}
	if travelDate.IsZero() {
		return fmt.Errorf("travel date is required: %w", ErrInvalidBooking)
	}
	if len(travelers) == 0 {
		return fmt.Errorf("at least one traveler is required: %w", ErrInvalidBooking)
	}
	if class != model.FirstClass && class != model.SecondClass {
		return fmt.Errorf("unknown ticket class %q: %w", class, ErrInvalidBooking)
	}
	for i, t := range travelers {
		if t.Age < 0 {
			return fmt.Errorf("traveler %d: age cannot be negative: %w", i, ErrInvalidBooking)
		}
		if strings.TrimSpace(t.DocumentID) == "" {
			return fmt.Errorf("traveler %d: document id is required: %w", i, ErrInvalidBooking)
		}
	}
	return nil
}
