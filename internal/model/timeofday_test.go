package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{name: "morning", input: "08:00", want: 480},
		{name: "midnight", input: "00:00", want: 0},
		{name: "last minute of day", input: "23:59", want: 1439},
		{name: "surrounding whitespace", input: " 10:30 ", want: 630},
		{name: "missing minutes", input: "08", wantErr: true},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "not a time", input: "soon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOfDayMinutesUntil(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want int
	}{
		{name: "same morning", from: "08:00", to: "10:00", want: 120},
		{name: "one minute", from: "10:00", to: "10:01", want: 1},
		{name: "across midnight", from: "23:30", to: "00:15", want: 45},
		{name: "equal times roll a full day", from: "12:00", to: "12:00", want: 1440},
		{name: "earlier time rolls forward", from: "14:00", to: "09:00", want: 1140},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from := MustTimeOfDay(tt.from)
			to := MustTimeOfDay(tt.to)
			assert.Equal(t, tt.want, from.MinutesUntil(to))
		})
	}
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "08:05", MustTimeOfDay("08:05").String())
	assert.Equal(t, "00:00", TimeOfDay(0).String())
	assert.Equal(t, "23:59", TimeOfDay(1439).String())
}

func TestTimeOfDayJSON(t *testing.T) {
	b, err := MustTimeOfDay("09:45").MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"09:45"`, string(b))

	var parsed TimeOfDay
	require.NoError(t, parsed.UnmarshalJSON([]byte(`"09:45"`)))
	assert.Equal(t, MustTimeOfDay("09:45"), parsed)

	assert.Error(t, parsed.UnmarshalJSON([]byte(`"25:00"`)))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "5h 00m", FormatDuration(300))
	assert.Equal(t, "0h 45m", FormatDuration(45))
	assert.Equal(t, "26h 05m", FormatDuration(1565))
}
