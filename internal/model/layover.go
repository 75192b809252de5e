package model

// Layover policy: how long a traveler may reasonably wait between two legs
// of a connection.  During the day a transfer needs enough slack to change
// platforms but should not strand the traveler for hours; late at night the
// station may be closing, so only short transfers are acceptable.
//
// There is a single canonical rule set.  Both the connection search and the
// booking service evaluate it through the same functions, so the two call
// sites can never disagree about the same connection.

// Policy thresholds.  Daytime runs from 06:00 to 22:00 inclusive on both
// ends; 06:00 and 22:00 themselves count as daytime.
const (
	MinDaytimeLayoverMinutes    = 60
	MaxDaytimeLayoverMinutes    = 120
	MaxAfterHoursLayoverMinutes = 30
)

var (
	daytimeStart = MustTimeOfDay("06:00")
	daytimeEnd   = MustTimeOfDay("22:00")
)

// IsAfterHours reports whether t falls outside the 06:00–22:00 daytime
// window.
func IsAfterHours(t TimeOfDay) bool {
	return t.Before(daytimeStart) || t.After(daytimeEnd)
}

// IsAcceptableLayover decides whether a single layover is acceptable.  The
// arrival time of the preceding leg provides the context: after hours the
// gap must be at most 30 minutes, during the day it must be between one and
// two hours.  Negative gaps are never acceptable.
func IsAcceptableLayover(gapMinutes int, arrival TimeOfDay) bool {
	if gapMinutes < 0 {
		return false
	}
	if IsAfterHours(arrival) {
		return gapMinutes <= MaxAfterHoursLayoverMinutes
	}
	return gapMinutes >= MinDaytimeLayoverMinutes && gapMinutes <= MaxDaytimeLayoverMinutes
}
