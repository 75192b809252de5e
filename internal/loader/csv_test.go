package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railbook/railbook/internal/model"
)

const routesCSV = `from_station,from_city,from_country,to_station,to_city,to_country,departure,arrival,train_type,price_first,price_second,days
Paris Gare de Lyon,Paris,France,Lyon Part-Dieu,Lyon,France,08:00,10:00,HIGH_SPEED,80.00,45.50,127
Lyon Part-Dieu,Lyon,France,Marseille St Charles,Marseille,France,11:00,13:00,INTERCITY,35.00,20.00,31
Paris Gare de Lyon,Paris,France,Nice Ville,Nice,France,21:00,07:30,NIGHT,120.00,75.00,96
Paris Gare de Lyon,Paris,France,Lyon Part-Dieu,Lyon,France,nine,10:00,HIGH_SPEED,80.00,45.50,127
Paris Gare de Lyon,Paris,France,Lyon Part-Dieu,Lyon,France,09:00,11:00,TELEPORT,80.00,45.50,127
Paris Gare de Lyon,Paris,France,Lyon Part-Dieu,Lyon,France,10:00,12:00,HIGH_SPEED,80.00,45.50,200
`

func writeRoutesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "routes.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRoutes(t *testing.T) {
	routes, err := LoadRoutes(writeRoutesFile(t, routesCSV))
	require.NoError(t, err)

	// Three valid rows; the rows with a bad time, unknown train type and
	// out-of-range day mask are skipped.
	require.Len(t, routes, 3)

	first := routes[0]
	assert.Equal(t, "PAR-LYO-0800", first.ID)
	assert.Equal(t, "Paris Gare de Lyon", first.From.Name)
	assert.Equal(t, "PAR", first.From.Code)
	assert.Equal(t, "Lyon", first.To.City)
	assert.Equal(t, "LYO", first.To.Code)
	assert.Equal(t, model.MustTimeOfDay("08:00"), first.Departure)
	assert.Equal(t, model.MustTimeOfDay("10:00"), first.Arrival)
	assert.Equal(t, model.TrainHighSpeed, first.Type)
	assert.Equal(t, model.NewMoney(8000, "EUR"), first.PriceFirstClass)
	assert.Equal(t, model.NewMoney(4550, "EUR"), first.PriceSecondClass)
	assert.Equal(t, model.Daily, first.Days)

	assert.Equal(t, model.Weekdays, routes[1].Days)

	night := routes[2]
	assert.Equal(t, model.TrainNight, night.Type)
	assert.Equal(t, 630, night.DurationMinutes())
	assert.Equal(t, model.DayPattern(96), night.Days)
}

func TestLoadRoutesMissingFile(t *testing.T) {
	_, err := LoadRoutes(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestLoadRoutesBadHeader(t *testing.T) {
	routes, err := LoadRoutes(writeRoutesFile(t, "just,some,columns\n1,2,3\n"))
	require.NoError(t, err)
	assert.Empty(t, routes)
}
