package model

import (
	"errors"
	"fmt"
)

// ErrEmptyLegs is returned when a connection is built from no legs.
var ErrEmptyLegs = errors.New("connection needs at least one leg")

// Connection is an ordered sequence of one or more route legs sold as a
// single itinerary.  Leg continuity (each leg departing from the station
// the previous one arrived at) is the search algorithm's responsibility;
// the builder only computes aggregates.  A connection is never modified
// after construction.
//
// Fields:
//  Legs                 – the route legs, in travel order.  Read-only.
//  TotalDeparture       – departure time of the first leg.
//  TotalArrival         – arrival time of the last leg.
//  TotalPriceFirst      – sum of the first-class fares of all legs.
//  TotalPriceSecond     – sum of the second-class fares of all legs.
//  TotalDurationMinutes – leg durations plus all inter-leg gaps.
type Connection struct {
	Legs                 []Route   `json:"legs"`
	TotalDeparture       TimeOfDay `json:"total_departure"`
	TotalArrival         TimeOfDay `json:"total_arrival"`
	TotalPriceFirst      Money     `json:"total_price_first_class"`
	TotalPriceSecond     Money     `json:"total_price_second_class"`
	TotalDurationMinutes int       `json:"total_duration_minutes"`
}

// NewConnection assembles legs into a Connection and computes its
// aggregate timing and pricing.  It returns ErrEmptyLegs when legs is
// empty and ErrCurrencyMismatch (wrapped) when the legs are not all priced
// in the same currency.  The input slice is copied; the caller keeps
// ownership of its own slice.
func NewConnection(legs []Route) (*Connection, error) {
	if len(legs) == 0 {
		return nil, ErrEmptyLegs
	}

	own := make([]Route, len(legs))
	copy(own, legs)

	first := own[0].PriceFirstClass
	second := own[0].PriceSecondClass
	duration := own[0].DurationMinutes()
	for i := 1; i < len(own); i++ {
		var err error
		if first, err = first.Add(own[i].PriceFirstClass); err != nil {
			return nil, fmt.Errorf("leg %d: %w", i, err)
		}
		if second, err = second.Add(own[i].PriceSecondClass); err != nil {
			return nil, fmt.Errorf("leg %d: %w", i, err)
		}
		duration += own[i].DurationMinutes()
		duration += own[i-1].Arrival.MinutesUntil(own[i].Departure)
	}

	return &Connection{
		Legs:                 own,
		TotalDeparture:       own[0].Departure,
		TotalArrival:         own[len(own)-1].Arrival,
		TotalPriceFirst:      first,
		TotalPriceSecond:     second,
		TotalDurationMinutes: duration,
	}, nil
}

// Transfers is the number of changes the traveler makes: one less than the
// number of legs.
func (c *Connection) Transfers() int {
	return len(c.Legs) - 1
}

// TotalPriceFor returns the aggregate fare for the requested class.
func (c *Connection) TotalPriceFor(class TicketClass) Money {
	if class == FirstClass {
		return c.TotalPriceFirst
	}
	return c.TotalPriceSecond
}

// LayoverMinutes returns the gap before each transfer, in leg order.  A
// gap that is zero or negative in raw time-of-day terms is an overnight
// wait and rolls forward by one day, the same rule the total duration uses.
func (c *Connection) LayoverMinutes() []int {
	if len(c.Legs) <= 1 {
		return nil
	}
	gaps := make([]int, 0, len(c.Legs)-1)
	for i := 0; i < len(c.Legs)-1; i++ {
		gaps = append(gaps, c.Legs[i].Arrival.MinutesUntil(c.Legs[i+1].Departure))
	}
	return gaps
}

// RespectsLayoverPolicy reports whether every layover in the connection is
// acceptable.  A direct connection has no layovers and always passes.  The
// arrival time of the preceding leg is the context for each gap.
func (c *Connection) RespectsLayoverPolicy() bool {
	if len(c.Legs) <= 1 {
		return true
	}
	for i, gap := range c.LayoverMinutes() {
		if !IsAcceptableLayover(gap, c.Legs[i].Arrival) {
			return false
		}
	}
	return true
}

// FormattedTotalDuration renders the total duration as "Xh YYm".
func (c *Connection) FormattedTotalDuration() string {
	return FormatDuration(c.TotalDurationMinutes)
}
