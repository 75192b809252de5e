package model

import "strings"

// Traveler carries the personal details a booking needs for one passenger.
// It is an input value: the booking service snapshots it into a Ticket and
// never holds on to the struct itself.
//
// Fields:
//  FullName   – the traveler's full name; the last whitespace-separated
//               token is used as the client last name.
//  Age        – the traveler's age in years.
//  DocumentID – identity document number; together with the last name it
//               identifies the client record.
type Traveler struct {
	FullName   string `json:"full_name"`
	Age        int    `json:"age"`
	DocumentID string `json:"document_id"`
}

// LastName extracts the client last name from the full name: the final
// whitespace-separated token, or "Unknown" when the name is blank.
func (t Traveler) LastName() string {
	fields := strings.Fields(t.FullName)
	if len(fields) == 0 {
		return "Unknown"
	}
	return fields[len(fields)-1]
}
