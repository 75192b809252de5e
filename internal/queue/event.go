// Package queue defines message payloads exchanged over the message broker.
package queue

// TripBookedEvent is published when a group booking completes.  It carries
// enough information for downstream consumers to log, notify, or feed
// analytics without querying the booking service.
type TripBookedEvent struct {
	TripID          int64    `json:"trip_id"`
	TravelDate      string   `json:"travel_date"`
	OriginCode      string   `json:"origin_code"`
	OriginName      string   `json:"origin_name"`
	DestinationCode string   `json:"destination_code"`
	DestinationName string   `json:"destination_name"`
	Departure       string   `json:"departure"`
	Arrival         string   `json:"arrival"`
	Transfers       int      `json:"transfers"`
	DurationMinutes int      `json:"duration_minutes"`
	TicketClass     string   `json:"ticket_class"`
	TicketIDs       []int64  `json:"ticket_ids"`
	Travelers       []string `json:"travelers"`
	TotalPriceCents int64    `json:"total_price_cents"`
	Currency        string   `json:"currency"`
	BookedAt        string   `json:"booked_at"`
}
