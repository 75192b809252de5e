package model

import "time"

// Ticket is an issued travel document.  The traveler details are a
// snapshot taken at booking time; later changes to the client record do
// not alter tickets that were already issued.
//
// Fields:
//  ID                 – globally unique, monotonically increasing id.
//  TravelerName       – the traveler's full name at booking time.
//  TravelerAge        – the traveler's age at booking time.
//  TravelerDocumentID – the traveler's document number at booking time.
//  Connection         – the itinerary the ticket was issued for.
//  Class              – the fare tier the ticket is valid in.
type Ticket struct {
	ID                 int64       `json:"id"`
	TravelerName       string      `json:"traveler_name"`
	TravelerAge        int         `json:"traveler_age"`
	TravelerDocumentID string      `json:"traveler_document_id"`
	Connection         *Connection `json:"-"`
	Class              TicketClass `json:"class"`
}

// Reservation ties a client, a connection and an issued ticket together
// for one seat on a trip.  Reservations are immutable.
type Reservation struct {
	Client     *Client     `json:"-"`
	Connection *Connection `json:"-"`
	Ticket     Ticket      `json:"ticket"`
	Class      TicketClass `json:"class"`
}

// Trip is a booked instance of a connection for a specific travel date.
// Its reservation list grows as the group booking issues tickets and is
// otherwise immutable.
//
// Fields:
//  ID           – globally unique trip id.
//  Connection   – the itinerary that was booked.
//  TravelDate   – the calendar day the trip starts.
//  Reservations – one reservation per traveler, in booking order.
type Trip struct {
	ID           int64         `json:"id"`
	Connection   *Connection   `json:"connection"`
	TravelDate   time.Time     `json:"travel_date"`
	Reservations []Reservation `json:"reservations"`
}

// AddReservation appends a reservation to the trip.
func (t *Trip) AddReservation(r Reservation) {
	t.Reservations = append(t.Reservations, r)
}

// IsFuture reports whether the trip departs today or later, relative to
// the supplied clock reading.  Derived on demand, never stored.
func (t *Trip) IsFuture(now time.Time) bool {
	return !t.IsPast(now)
}

// IsPast reports whether the trip's travel date is before today.
func (t *Trip) IsPast(now time.Time) bool {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return t.TravelDate.Before(today)
}
