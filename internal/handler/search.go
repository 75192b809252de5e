package handler

import (
	"net/http" // HTTP status codes
	"time"     // travel date parsing

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/railbook/railbook/internal/model"
	"github.com/railbook/railbook/internal/search"
)

// travelDateLayout is the wire format for travel dates.
const travelDateLayout = "2006-01-02"

// SearchHandler serves the read-only timetable queries: multi-leg
// connection search, single-leg route listings and the station directory.
// It only reads from the immutable search engine, so every method is safe
// under concurrent requests.
type SearchHandler struct {
	Engine *search.Engine
}

// NewSearchHandler constructs a SearchHandler.  The engine must be non-nil.
func NewSearchHandler(engine *search.Engine) *SearchHandler {
	if engine == nil {
		panic("nil engine passed to NewSearchHandler")
	}
	return &SearchHandler{Engine: engine}
}

// connectionView is the JSON shape of one connection in a search result.
type connectionView struct {
	Legs             []model.Route   `json:"legs"`
	Departure        model.TimeOfDay `json:"departure"`
	Arrival          model.TimeOfDay `json:"arrival"`
	DurationMinutes  int             `json:"duration_minutes"`
	Duration         string          `json:"duration"`
	Transfers        int             `json:"transfers"`
	LayoverMinutes   []int           `json:"layover_minutes,omitempty"`
	PriceFirstClass  model.Money     `json:"price_first_class"`
	PriceSecondClass model.Money     `json:"price_second_class"`
}

func viewConnection(c *model.Connection) connectionView {
	return connectionView{
		Legs:             c.Legs,
		Departure:        c.TotalDeparture,
		Arrival:          c.TotalArrival,
		DurationMinutes:  c.TotalDurationMinutes,
		Duration:         c.FormattedTotalDuration(),
		Transfers:        c.Transfers(),
		LayoverMinutes:   c.LayoverMinutes(),
		PriceFirstClass:  c.TotalPriceFirst,
		PriceSecondClass: c.TotalPriceSecond,
	}
}

// FindConnections handles GET /v1/connections.  Query parameters "from",
// "to" (station code or name) and "date" (YYYY-MM-DD) are required.  The
// response is the list of valid connections sorted by total duration; an
// empty list is a normal result, not an error.
func (h *SearchHandler) FindConnections(c echo.Context) error {
	from := c.QueryParam("from")
	to := c.QueryParam("to")
	dateStr := c.QueryParam("date")
	if from == "" || to == "" || dateStr == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from, to and date are required"})
	}

	date, err := time.Parse(travelDateLayout, dateStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
	}

	origin, ok := h.Engine.FindStation(from)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown origin station"})
	}
	destination, ok := h.Engine.FindStation(to)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown destination station"})
	}

	connections := h.Engine.FindConnections(origin, destination, date)
	views := make([]connectionView, 0, len(connections))
	for _, conn := range connections {
		views = append(views, viewConnection(conn))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"from":        origin,
		"to":          destination,
		"date":        date.Format(travelDateLayout),
		"connections": views,
	})
}

// ListRoutes handles GET /v1/routes.  All query parameters are optional
// filters: "from", "to", "date", "time" (preferred departure, HH:MM),
// "train_type", "max_price" with "class", and "sort".
func (h *SearchHandler) ListRoutes(c echo.Context) error {
	criteria := search.RouteCriteria{
		Origin:      c.QueryParam("from"),
		Destination: c.QueryParam("to"),
		Class:       model.SecondClass,
	}

	if dateStr := c.QueryParam("date"); dateStr != "" {
		date, err := time.Parse(travelDateLayout, dateStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
		}
		criteria.Date = date
	}

	if timeStr := c.QueryParam("time"); timeStr != "" {
		preferred, err := model.ParseTimeOfDay(timeStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time, want HH:MM"})
		}
		criteria.PreferredTime = &preferred
	}

	if typeStr := c.QueryParam("train_type"); typeStr != "" {
		trainType, err := model.ParseTrainType(typeStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown train type"})
		}
		criteria.TrainType = trainType
	}

	if classStr := c.QueryParam("class"); classStr != "" {
		class, err := model.ParseTicketClass(classStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown ticket class"})
		}
		criteria.Class = class
	}

	if priceStr := c.QueryParam("max_price"); priceStr != "" {
		maxPrice, err := model.ParseMoney(priceStr, "EUR")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid max_price"})
		}
		criteria.MaxPrice = &maxPrice
	}

	sortKey, err := search.ParseSortKey(c.QueryParam("sort"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown sort key"})
	}

	routes := search.SortRoutes(h.Engine.SearchRoutes(criteria), sortKey)
	return c.JSON(http.StatusOK, echo.Map{"routes": routes})
}

// ListStations handles GET /v1/stations and returns the station
// directory derived from the loaded timetable.
func (h *SearchHandler) ListStations(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"stations": h.Engine.Stations()})
}
