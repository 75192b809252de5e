package model

import "strings"

// Station identifies a place a route departs from or arrives at.  Identity
// is the station code alone: two stations with the same code are the same
// station regardless of how their name or city fields were spelled in the
// source file.  Stations are built once by the loader and never modified.
//
// Fields:
//  Name    – full station name, e.g. "Paris Gare de Lyon".
//  City    – city the station is in.
//  Country – country the station is in.
//  Code    – short unique station code, e.g. "PGL".
type Station struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
	Code    string `json:"code"`
}

// Equal reports whether both stations carry the same code.
func (s Station) Equal(other Station) bool {
	return s.Code == other.Code
}

// StationCode derives a short code from a station name: the first three
// upper-case letters of the name, upper-cased.  "Lyon Part-Dieu" -> "LYO".
func StationCode(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
			if b.Len() == 3 {
				break
			}
		}
	}
	return b.String()
}
