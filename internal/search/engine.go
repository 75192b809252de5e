// Package search enumerates multi-leg connections over an immutable
// snapshot of the route timetable.  An Engine is built once from the
// loaded routes and is safe for concurrent use: searches only read.
package search

import (
	"sort"
	"strings"
	"time"

	"github.com/railbook/railbook/internal/model"
)

// defaultMaxCandidates caps how many candidate itineraries one search may
// build.  Dense networks can produce a combinatorial number of three-leg
// paths; past this point additional candidates are almost never better
// than what has already been found.
const defaultMaxCandidates = 512

// maxLegs bounds the search depth.  Itineraries with more than two
// transfers are not offered.
const maxLegs = 3

// Engine answers connection and route queries against a fixed route set.
type Engine struct {
	routes   []model.Route
	byOrigin map[string][]model.Route
	stations map[string]model.Station
	maxCands int
}

// NewEngine indexes the given routes by departure station.  The route
// slice is copied; the engine never observes later changes to it.
func NewEngine(routes []model.Route) *Engine {
	e := &Engine{
		routes:   make([]model.Route, len(routes)),
		byOrigin: make(map[string][]model.Route),
		stations: make(map[string]model.Station),
		maxCands: defaultMaxCandidates,
	}
	copy(e.routes, routes)
	for _, r := range e.routes {
		e.byOrigin[r.From.Code] = append(e.byOrigin[r.From.Code], r)
		e.stations[r.From.Code] = r.From
		e.stations[r.To.Code] = r.To
	}
	return e
}

// Stations lists every station that appears in the route set, sorted by
// code.
func (e *Engine) Stations() []model.Station {
	out := make([]model.Station, 0, len(e.stations))
	for _, s := range e.stations {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// FindStation resolves a station by code or by name, case-insensitively.
// The second return value is false when no station matches.
func (e *Engine) FindStation(q string) (model.Station, bool) {
	q = strings.TrimSpace(q)
	if s, ok := e.stations[strings.ToUpper(q)]; ok {
		return s, true
	}
	for _, s := range e.stations {
		if strings.EqualFold(s.Name, q) {
			return s, true
		}
	}
	return model.Station{}, false
}

// RouteByID finds a route by its stable identifier.
func (e *Engine) RouteByID(id string) (model.Route, bool) {
	for _, r := range e.routes {
		if r.ID == id {
			return r, true
		}
	}
	return model.Route{}, false
}

// FindConnections enumerates every itinerary of up to three legs from
// origin to destination on the given travel date, keeps the ones whose
// layovers satisfy the layover policy, and returns them sorted by total
// duration.  Ties keep discovery order: direct connections first, then by
// increasing transfer count, then timetable order.  The result is empty,
// never nil-unsafe, when nothing matches.
//
// Legs are chained on time of day only: a leg departing at or before the
// previous arrival time is rejected even if it could be caught the next
// day.  A leg that lands after midnight therefore chains exactly like one
// landing earlier the same day, which can both hide and offer itineraries
// around midnight.  Known limitation inherited from the timetable model.
func (e *Engine) FindConnections(origin, destination model.Station, date time.Time) []*model.Connection {
	day := date.Weekday()
	operating := func(r model.Route) bool { return r.Days.OperatesOn(day) }

	var results []*model.Connection
	built := 0

	// keep builds the candidate and retains it when the policy holds.
	// Candidates that fail to build are dropped, not surfaced: a bad leg
	// combination is not the caller's problem.
	keep := func(legs ...model.Route) {
		built++
		conn, err := model.NewConnection(legs)
		if err != nil {
			return
		}
		if conn.RespectsLayoverPolicy() {
			results = append(results, conn)
		}
	}

	for _, leg1 := range e.byOrigin[origin.Code] {
		if built >= e.maxCands {
			break
		}
		if !operating(leg1) {
			continue
		}
		if leg1.To.Equal(destination) {
			keep(leg1)
		}
	}

	for _, leg1 := range e.byOrigin[origin.Code] {
		if built >= e.maxCands {
			break
		}
		if !operating(leg1) || leg1.To.Equal(destination) {
			continue
		}
		for _, leg2 := range e.byOrigin[leg1.To.Code] {
			if built >= e.maxCands {
				break
			}
			if !operating(leg2) || !chainsAfter(leg1, leg2) {
				continue
			}
			if leg2.To.Equal(destination) {
				keep(leg1, leg2)
			}
		}
	}

	for _, leg1 := range e.byOrigin[origin.Code] {
		if built >= e.maxCands {
			break
		}
		if !operating(leg1) || leg1.To.Equal(destination) {
			continue
		}
		for _, leg2 := range e.byOrigin[leg1.To.Code] {
			if built >= e.maxCands {
				break
			}
			if !operating(leg2) || !chainsAfter(leg1, leg2) {
				continue
			}
			if leg2.To.Equal(destination) || leg2.To.Equal(origin) {
				continue
			}
			for _, leg3 := range e.byOrigin[leg2.To.Code] {
				if built >= e.maxCands {
					break
				}
				if !operating(leg3) || !chainsAfter(leg2, leg3) {
					continue
				}
				if leg3.To.Equal(destination) {
					keep(leg1, leg2, leg3)
				}
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalDurationMinutes < results[j].TotalDurationMinutes
	})
	return results
}

// chainsAfter reports whether next can follow prev in an itinerary: next
// must depart at or after prev's arrival, comparing time of day only.
func chainsAfter(prev, next model.Route) bool {
	return !next.Departure.Before(prev.Arrival)
}
