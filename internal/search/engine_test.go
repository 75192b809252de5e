package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railbook/railbook/internal/model"
)

var (
	paris   = model.Station{Name: "Paris Gare de Lyon", City: "Paris", Country: "France", Code: "PAR"}
	lyon    = model.Station{Name: "Lyon Part-Dieu", City: "Lyon", Country: "France", Code: "LYO"}
	dijon   = model.Station{Name: "Dijon Ville", City: "Dijon", Country: "France", Code: "DIJ"}
	avignon = model.Station{Name: "Avignon TGV", City: "Avignon", Country: "France", Code: "AVI"}

	// 2026-09-14 is a Monday, 2026-09-13 a Sunday.
	monday = time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC)
	sunday = time.Date(2026, time.September, 13, 0, 0, 0, 0, time.UTC)
)

func mkRoute(from, to model.Station, dep, arr string, typ model.TrainType, firstCents, secondCents int64, days model.DayPattern) model.Route {
	d := model.MustTimeOfDay(dep)
	return model.Route{
		ID:               model.RouteID(from, to, d),
		From:             from,
		To:               to,
		Departure:        d,
		Arrival:          model.MustTimeOfDay(arr),
		Type:             typ,
		PriceFirstClass:  model.NewMoney(firstCents, "EUR"),
		PriceSecondClass: model.NewMoney(secondCents, "EUR"),
		Days:             days,
	}
}

// testNetwork is a small timetable exercising direct, two-leg and
// three-leg itineraries plus a weekend-only service.
func testNetwork() []model.Route {
	return []model.Route{
		// Direct Paris-Lyon services.
		mkRoute(paris, lyon, "08:00", "10:00", model.TrainHighSpeed, 8000, 4500, model.Daily),
		mkRoute(paris, lyon, "09:00", "17:00", model.TrainRegional, 3000, 1800, model.Daily),
		mkRoute(paris, lyon, "07:00", "09:00", model.TrainHighSpeed, 8500, 5000, model.Weekend),
		// Two-leg path via Dijon with a one hour transfer.
		mkRoute(paris, dijon, "08:00", "09:30", model.TrainIntercity, 4000, 2500, model.Daily),
		mkRoute(dijon, lyon, "10:30", "12:00", model.TrainIntercity, 3500, 2000, model.Daily),
		// Too tight a transfer after the 09:30 arrival.
		mkRoute(dijon, lyon, "10:00", "11:00", model.TrainHighSpeed, 5000, 3000, model.Daily),
		// Departs before the inbound leg arrives, never chains.
		mkRoute(dijon, lyon, "07:00", "08:30", model.TrainRegional, 2000, 1200, model.Daily),
		// Three-leg path Paris-Dijon-Avignon-Lyon with hour long transfers.
		mkRoute(paris, dijon, "06:00", "07:00", model.TrainRegional, 2500, 1500, model.Daily),
		mkRoute(dijon, avignon, "08:00", "09:00", model.TrainRegional, 2500, 1500, model.Daily),
		mkRoute(avignon, lyon, "10:00", "11:00", model.TrainRegional, 2500, 1500, model.Daily),
	}
}

func TestFindConnections(t *testing.T) {
	e := NewEngine(testNetwork())

	conns := e.FindConnections(paris, lyon, monday)
	require.Len(t, conns, 4)

	// Sorted by total duration, shortest first.
	durations := make([]int, 0, len(conns))
	for _, c := range conns {
		durations = append(durations, c.TotalDurationMinutes)
		assert.True(t, c.RespectsLayoverPolicy())
		assert.True(t, c.Legs[0].From.Equal(paris))
		assert.True(t, c.Legs[len(c.Legs)-1].To.Equal(lyon))
	}
	assert.Equal(t, []int{120, 240, 300, 480}, durations)

	// The fast direct service comes first.
	assert.Equal(t, 0, conns[0].Transfers())
	assert.Equal(t, model.MustTimeOfDay("08:00"), conns[0].TotalDeparture)

	// The two-leg itinerary goes via Dijon with a one hour layover.
	assert.Equal(t, 1, conns[1].Transfers())
	assert.Equal(t, []int{60}, conns[1].LayoverMinutes())
	assert.True(t, conns[1].Legs[0].To.Equal(dijon))

	// The three-leg itinerary chains Dijon and Avignon.
	assert.Equal(t, 2, conns[2].Transfers())
	assert.Equal(t, []int{60, 60}, conns[2].LayoverMinutes())
}

func TestFindConnectionsWeekendService(t *testing.T) {
	e := NewEngine(testNetwork())

	for _, c := range e.FindConnections(paris, lyon, monday) {
		assert.NotEqual(t, model.MustTimeOfDay("07:00"), c.TotalDeparture,
			"weekend-only service offered on a Monday")
	}

	var found bool
	for _, c := range e.FindConnections(paris, lyon, sunday) {
		if c.Transfers() == 0 && c.TotalDeparture == model.MustTimeOfDay("07:00") {
			found = true
		}
	}
	assert.True(t, found, "weekend-only service missing on a Sunday")
}

func TestFindConnectionsRejectsTightTransfers(t *testing.T) {
	e := NewEngine(testNetwork())

	for _, c := range e.FindConnections(paris, lyon, monday) {
		for i, gap := range c.LayoverMinutes() {
			assert.True(t, model.IsAcceptableLayover(gap, c.Legs[i].Arrival))
		}
		for i := 0; i < len(c.Legs)-1; i++ {
			assert.False(t, c.Legs[i+1].Departure.Before(c.Legs[i].Arrival),
				"leg departs before the previous one arrives")
		}
	}
}

func TestFindConnectionsNoRoute(t *testing.T) {
	e := NewEngine(testNetwork())
	assert.Empty(t, e.FindConnections(avignon, paris, monday))
}

func TestFindConnectionsCandidateCap(t *testing.T) {
	e := NewEngine(testNetwork())
	e.maxCands = 1

	conns := e.FindConnections(paris, lyon, monday)
	assert.Len(t, conns, 1)
}

func TestStations(t *testing.T) {
	e := NewEngine(testNetwork())

	stations := e.Stations()
	require.Len(t, stations, 4)

	codes := make([]string, 0, len(stations))
	for _, s := range stations {
		codes = append(codes, s.Code)
	}
	assert.Equal(t, []string{"AVI", "DIJ", "LYO", "PAR"}, codes)
}

func TestFindStation(t *testing.T) {
	e := NewEngine(testNetwork())

	tests := []struct {
		name  string
		query string
		want  string
		ok    bool
	}{
		{name: "by code", query: "LYO", want: "LYO", ok: true},
		{name: "by lower case code", query: "lyo", want: "LYO", ok: true},
		{name: "by name", query: "Lyon Part-Dieu", want: "LYO", ok: true},
		{name: "by name ignoring case", query: "lyon part-dieu", want: "LYO", ok: true},
		{name: "with whitespace", query: "  PAR  ", want: "PAR", ok: true},
		{name: "unknown", query: "Atlantis Central", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := e.FindStation(tt.query)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, s.Code)
			}
		})
	}
}

func TestRouteByID(t *testing.T) {
	e := NewEngine(testNetwork())

	r, ok := e.RouteByID("PAR-LYO-0800")
	require.True(t, ok)
	assert.True(t, r.From.Equal(paris))
	assert.True(t, r.To.Equal(lyon))

	_, ok = e.RouteByID("PAR-LYO-0000")
	assert.False(t, ok)
}
