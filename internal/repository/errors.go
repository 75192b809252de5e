// Package repository persists booked trips, their reservations and the
// client records behind them.  These sentinel values let handlers
// distinguish failure scenarios without inspecting driver errors: for
// example ErrTripExists signals that a trip id was already saved, which a
// handler reports as a conflict rather than a server fault.
package repository

import "errors"

// ErrTripExists is returned when saving a trip whose id is already in the
// trips table.  Handlers should translate this into an HTTP 409 response.
var ErrTripExists = errors.New("trip already saved")

// ErrNotFound is returned when a lookup matches no rows.  Handlers should
// translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")
