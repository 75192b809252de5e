package search

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/railbook/railbook/internal/model"
)

// preferredTimeWindow is how far a route's departure may sit from the
// requested preferred time and still match.
const preferredTimeWindow = 120 // minutes

// RouteCriteria narrows a single-leg route query.  Origin, Destination and
// Date are optional filters like the rest: a zero field does not filter.
// Station names are matched case-insensitively.
type RouteCriteria struct {
	Origin        string           // station name or code
	Destination   string           // station name or code
	Date          time.Time        // filters by operating weekday when set
	PreferredTime *model.TimeOfDay // keep departures within ±2h when set
	TrainType     model.TrainType  // keep only this service type when set
	MaxPrice      *model.Money     // fare ceiling for Class when set
	Class         model.TicketClass
}

// SortKey selects the ordering of a route listing.
type SortKey string

// Supported sort keys for route listings.
const (
	SortByDeparture        SortKey = "departure"
	SortByArrival          SortKey = "arrival"
	SortByDuration         SortKey = "duration"
	SortByPriceFirstClass  SortKey = "price_first"
	SortByPriceSecondClass SortKey = "price_second"
	SortByOriginName       SortKey = "origin"
	SortByDestinationName  SortKey = "destination"
	SortByTrainType        SortKey = "train_type"
)

// ParseSortKey validates a sort key string; empty means no sorting.
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	switch key {
	case "", SortByDeparture, SortByArrival, SortByDuration, SortByPriceFirstClass,
		SortByPriceSecondClass, SortByOriginName, SortByDestinationName, SortByTrainType:
		return key, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// SearchRoutes returns the individual route legs matching the criteria, in
// timetable order.  Use SortRoutes to order the result.
func (e *Engine) SearchRoutes(c RouteCriteria) []model.Route {
	matchStation := func(s model.Station, q string) bool {
		return strings.EqualFold(s.Code, q) || strings.EqualFold(s.Name, q)
	}

	out := []model.Route{}
	for _, r := range e.routes {
		if c.Origin != "" && !matchStation(r.From, c.Origin) {
			continue
		}
		if c.Destination != "" && !matchStation(r.To, c.Destination) {
			continue
		}
		if !c.Date.IsZero() && !r.Days.OperatesOn(c.Date.Weekday()) {
			continue
		}
		if c.PreferredTime != nil {
			diff := int(r.Departure) - int(*c.PreferredTime)
			if diff < 0 {
				diff = -diff
			}
			if diff > preferredTimeWindow {
				continue
			}
		}
		if c.TrainType != "" && r.Type != c.TrainType {
			continue
		}
		if c.MaxPrice != nil && r.PriceFor(c.Class).AmountCents > c.MaxPrice.AmountCents {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SortRoutes returns a copy of routes ordered by the given key.  An empty
// key returns the copy unsorted.
func SortRoutes(routes []model.Route, key SortKey) []model.Route {
	out := make([]model.Route, len(routes))
	copy(out, routes)

	var less func(a, b model.Route) bool
	switch key {
	case SortByDeparture:
		less = func(a, b model.Route) bool { return a.Departure < b.Departure }
	case SortByArrival:
		less = func(a, b model.Route) bool { return a.Arrival < b.Arrival }
	case SortByDuration:
		less = func(a, b model.Route) bool { return a.DurationMinutes() < b.DurationMinutes() }
	case SortByPriceFirstClass:
		less = func(a, b model.Route) bool { return a.PriceFirstClass.AmountCents < b.PriceFirstClass.AmountCents }
	case SortByPriceSecondClass:
		less = func(a, b model.Route) bool { return a.PriceSecondClass.AmountCents < b.PriceSecondClass.AmountCents }
	case SortByOriginName:
		less = func(a, b model.Route) bool { return a.From.Name < b.From.Name }
	case SortByDestinationName:
		less = func(a, b model.Route) bool { return a.To.Name < b.To.Name }
	case SortByTrainType:
		less = func(a, b model.Route) bool { return a.Type < b.Type }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
