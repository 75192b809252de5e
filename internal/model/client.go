package model

import (
	"sync"
	"time"
)

// Client is a person known to the booking service.  Identity is the
// (last name, document id) pair; last-name lookup is case-insensitive.
// A client record is created the first time the pair is seen and then
// accumulates trips for its lifetime; the history is append-only.
// The record outlives the request that created it and is read while
// other requests book, so the history carries its own lock.
//
// Fields:
//  LastName   – the client's last name as first recorded.
//  DocumentID – identity document number.
type Client struct {
	LastName   string `json:"last_name"`
	DocumentID string `json:"document_id"`

	mu    sync.Mutex
	trips []*Trip
}

// NewClient creates a client record with an empty trip history.
func NewClient(lastName, documentID string) *Client {
	return &Client{LastName: lastName, DocumentID: documentID}
}

// AddTrip appends a trip to the client's history.
func (c *Client) AddTrip(t *Trip) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trips = append(c.trips, t)
}

// Trips returns the client's full trip history in booking order.  The
// returned slice is a copy; mutating it does not affect the client.
func (c *Client) Trips() []*Trip {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Trip, len(c.trips))
	copy(out, c.trips)
	return out
}

// CurrentTrips returns the trips departing today or later.
func (c *Client) CurrentTrips(now time.Time) []*Trip {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*Trip
	for _, t := range c.trips {
		if t.IsFuture(now) {
			out = append(out, t)
		}
	}
	return out
}

// PastTrips returns the trips whose travel date has passed.
func (c *Client) PastTrips(now time.Time) []*Trip {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*Trip
	for _, t := range c.trips {
		if t.IsPast(now) {
			out = append(out, t)
		}
	}
	return out
}
