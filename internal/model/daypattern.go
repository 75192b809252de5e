package model

import (
	"strings"
	"time"
)

// DayPattern is a weekly operating-day bitmask for a route.  Bit 0 is
// Monday and bit 6 is Sunday, matching the day-mask column of the route
// CSV file.  A route with pattern 0 never operates.
type DayPattern uint8

// Named patterns for the common cases.
const (
	Weekdays DayPattern = 0b0011111
	Weekend  DayPattern = 0b1100000
	Daily    DayPattern = 0b1111111
)

var dayAbbrev = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// OperatesOn reports whether the pattern includes the given weekday.
// Go counts weekdays from Sunday, the mask counts from Monday.
func (p DayPattern) OperatesOn(day time.Weekday) bool {
	idx := (int(day) + 6) % 7
	return p&(1<<idx) != 0
}

// String lists the operating days, e.g. "Mon Tue Wed Thu Fri".
func (p DayPattern) String() string {
	var days []string
	for i := 0; i < 7; i++ {
		if p&(1<<i) != 0 {
			days = append(days, dayAbbrev[i])
		}
	}
	return strings.Join(days, " ")
}
