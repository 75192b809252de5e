package model

import (
	"fmt"
	"strconv"
	"strings"
)

// minutesPerDay is the length of a scheduling day.  All schedule times are
// times of day; crossing midnight is handled by rolling forward one day.
const minutesPerDay = 24 * 60

// TimeOfDay is a clock time expressed as minutes since midnight (0..1439).
// Routes are scheduled in time of day only; the travel date is carried
// separately.  The zero value is midnight.
type TimeOfDay int

// ParseTimeOfDay parses a "HH:MM" string into a TimeOfDay.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return TimeOfDay(h*60 + m), nil
}

// MustTimeOfDay is ParseTimeOfDay that panics on error.  Intended for
// constants and tests, never for data read at runtime.
func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Hour returns the hour component (0..23).
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component (0..59).
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// Before reports whether t is strictly earlier in the day than u.
func (t TimeOfDay) Before(u TimeOfDay) bool { return t < u }

// After reports whether t is strictly later in the day than u.
func (t TimeOfDay) After(u TimeOfDay) bool { return t > u }

// MinutesUntil returns the number of minutes from t until next, rolling
// forward by one day when the raw difference is zero or negative.  The same
// rule covers overnight legs (arrival before departure) and overnight
// layovers (next leg departing past midnight), so leg durations and
// inter-leg gaps always agree.
func (t TimeOfDay) MinutesUntil(next TimeOfDay) int {
	d := int(next) - int(t)
	if d <= 0 {
		d += minutesPerDay
	}
	return d
}

// String renders the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// MarshalJSON encodes the time as its "HH:MM" string form.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON decodes a "HH:MM" string.
func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// FormatDuration renders a minute count as "Xh YYm", e.g. 300 -> "5h 00m".
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}
