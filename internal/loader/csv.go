// Package loader reads the route timetable from a CSV file into the
// immutable route set the rest of the application runs on.
package loader

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/railbook/railbook/internal/model"
)

// routeRow mirrors one line of the route CSV file.  Prices are decimal
// strings in the file's currency; days is the 7-bit Monday-first mask.
type routeRow struct {
	FromName    string `csv:"from_station"`
	FromCity    string `csv:"from_city"`
	FromCountry string `csv:"from_country"`
	ToName      string `csv:"to_station"`
	ToCity      string `csv:"to_city"`
	ToCountry   string `csv:"to_country"`
	Departure   string `csv:"departure"`
	Arrival     string `csv:"arrival"`
	TrainType   string `csv:"train_type"`
	PriceFirst  string `csv:"price_first"`
	PriceSecond string `csv:"price_second"`
	Days        string `csv:"days"`
}

// routeCurrency is the currency all fares in the route file are quoted in.
const routeCurrency = "EUR"

// LoadRoutes reads and parses the route CSV at path.  Rows that fail to
// parse are logged and skipped so one bad line cannot take down the whole
// timetable; an unreadable file is an error.
func LoadRoutes(path string) ([]model.Route, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open routes file: %w", err)
	}
	defer f.Close()

	var rows []*routeRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parse routes file: %w", err)
	}

	routes := make([]model.Route, 0, len(rows))
	for i, row := range rows {
		route, err := row.toRoute()
		if err != nil {
			log.Printf("loader: skipping row %d: %v", i+2, err)
			continue
		}
		routes = append(routes, route)
	}
	return routes, nil
}

func (row *routeRow) toRoute() (model.Route, error) {
	from := station(row.FromName, row.FromCity, row.FromCountry)
	to := station(row.ToName, row.ToCity, row.ToCountry)
	if from.Code == "" || to.Code == "" {
		return model.Route{}, fmt.Errorf("missing station name")
	}

	dep, err := model.ParseTimeOfDay(row.Departure)
	if err != nil {
		return model.Route{}, err
	}
	arr, err := model.ParseTimeOfDay(row.Arrival)
	if err != nil {
		return model.Route{}, err
	}

	trainType, err := model.ParseTrainType(row.TrainType)
	if err != nil {
		return model.Route{}, err
	}

	first, err := model.ParseMoney(row.PriceFirst, routeCurrency)
	if err != nil {
		return model.Route{}, fmt.Errorf("first-class price: %w", err)
	}
	second, err := model.ParseMoney(row.PriceSecond, routeCurrency)
	if err != nil {
		return model.Route{}, fmt.Errorf("second-class price: %w", err)
	}

	mask, err := strconv.ParseUint(row.Days, 10, 8)
	if err != nil || mask == 0 || mask > 0b1111111 {
		return model.Route{}, fmt.Errorf("invalid day mask %q", row.Days)
	}

	return model.Route{
		ID:               model.RouteID(from, to, dep),
		From:             from,
		To:               to,
		Departure:        dep,
		Arrival:          arr,
		Type:             trainType,
		PriceFirstClass:  first,
		PriceSecondClass: second,
		Days:             model.DayPattern(mask),
	}, nil
}

func station(name, city, country string) model.Station {
	return model.Station{
		Name:    strings.TrimSpace(name),
		City:    strings.TrimSpace(city),
		Country: strings.TrimSpace(country),
		Code:    model.StationCode(name),
	}
}
