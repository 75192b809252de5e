package model

import (
	"fmt"
	"strings"
)

// TrainType classifies the service operating a route.
type TrainType string

// Known train types, as they appear in the route CSV file.
const (
	TrainHighSpeed TrainType = "HIGH_SPEED"
	TrainIntercity TrainType = "INTERCITY"
	TrainRegional  TrainType = "REGIONAL"
	TrainNight     TrainType = "NIGHT"
)

// ParseTrainType normalizes a train type string ("high speed" ->
// "HIGH_SPEED") and rejects values outside the known set.
func ParseTrainType(s string) (TrainType, error) {
	t := TrainType(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), " ", "_"))
	switch t {
	case TrainHighSpeed, TrainIntercity, TrainRegional, TrainNight:
		return t, nil
	}
	return "", fmt.Errorf("unknown train type %q", s)
}

// TicketClass is the fare tier a ticket is issued for.
type TicketClass string

// The two fare tiers every route is priced in.
const (
	FirstClass  TicketClass = "FIRST"
	SecondClass TicketClass = "SECOND"
)

// ParseTicketClass normalizes and validates a ticket class string.
func ParseTicketClass(s string) (TicketClass, error) {
	switch TicketClass(strings.ToUpper(strings.TrimSpace(s))) {
	case FirstClass:
		return FirstClass, nil
	case SecondClass:
		return SecondClass, nil
	}
	return "", fmt.Errorf("unknown ticket class %q", s)
}

// Route is one scheduled leg between two stations.  Routes are created by
// the loader and treated as immutable from then on; a route embedded in a
// connection must never change underneath it.
//
// Fields:
//  ID               – stable identifier derived from stations and departure time.
//  From, To         – departure and arrival stations.
//  Departure        – scheduled departure time of day.
//  Arrival          – scheduled arrival time of day.
//  Type             – service type operating the leg.
//  PriceFirstClass  – first-class fare for the whole leg.
//  PriceSecondClass – second-class fare for the whole leg.
//  Days             – weekdays the leg operates on.
type Route struct {
	ID               string     `json:"id"`
	From             Station    `json:"from"`
	To               Station    `json:"to"`
	Departure        TimeOfDay  `json:"departure"`
	Arrival          TimeOfDay  `json:"arrival"`
	Type             TrainType  `json:"train_type"`
	PriceFirstClass  Money      `json:"price_first_class"`
	PriceSecondClass Money      `json:"price_second_class"`
	Days             DayPattern `json:"-"`
}

// DurationMinutes is the scheduled travel time of the leg.  A leg whose
// arrival is not later in the day than its departure runs overnight and is
// rolled forward by one day.
func (r Route) DurationMinutes() int {
	return r.Departure.MinutesUntil(r.Arrival)
}

// PriceFor returns the fare for the requested ticket class.
func (r Route) PriceFor(class TicketClass) Money {
	if class == FirstClass {
		return r.PriceFirstClass
	}
	return r.PriceSecondClass
}

// RouteID derives the stable route identifier used across search results,
// bookings and persistence: "<fromCode>-<toCode>-<HHMM>".
func RouteID(from, to Station, departure TimeOfDay) string {
	return fmt.Sprintf("%s-%s-%02d%02d", from.Code, to.Code, departure.Hour(), departure.Minute())
}
