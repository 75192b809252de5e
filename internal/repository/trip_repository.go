package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// TripRepo writes booked trips to MySQL.  The in-memory booking service
// remains the source of truth for the running process; this repository is
// the durable record consulted by reporting and by the next process start.
// All writes for one trip happen inside a single transaction.
type TripRepo struct {
	db *sql.DB
}

// NewTripRepo returns a TripRepo bound to the given database.
func NewTripRepo(db *sql.DB) *TripRepo { return &TripRepo{db: db} }

// DB exposes the underlying handle so callers can begin transactions that
// span repositories.
func (r *TripRepo) DB() *sql.DB { return r.db }

// SavedTrip is the flattened form of a trip written to the trips table.
type SavedTrip struct {
	ID                    int64
	TravelDate            time.Time
	OriginCode            string
	DestinationCode       string
	LegsCount             int
	TotalDurationMinutes  int
	TotalPriceFirstCents  int64
	TotalPriceSecondCents int64
	Currency              string
}

// SavedReservation is one reservations row: a ticket issued to a client
// on a trip.  LastName identifies the client record; the numeric client id
// is resolved or created while saving.
type SavedReservation struct {
	LastName           string
	TicketID           int64
	TravelerName       string
	TravelerAge        int
	TravelerDocumentID string
	TicketClass        string
	PriceCents         int64
}

// SaveTrip persists a trip and its reservations.  Clients are created on
// first sight of their (last name, document id) pair and reused afterwards;
// last names match case-insensitively, mirroring the in-memory registry.
// The whole write is transactional: a failure on any row rolls back
// everything.  Saving a trip id twice returns ErrTripExists.
func (r *TripRepo) SaveTrip(ctx context.Context, trip SavedTrip, reservations []SavedReservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var exists int
	const check = `SELECT COUNT(*) FROM trips WHERE id = ?`
	if err := tx.QueryRowContext(ctx, check, trip.ID).Scan(&exists); err != nil {
		return err
	}
	if exists > 0 {
		return ErrTripExists
	}

	const insertTrip = `INSERT INTO trips
		(id, travel_date, origin_code, destination_code, legs_count,
		 total_duration_min, total_price_first_cents, total_price_second_cents, currency)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, insertTrip,
		trip.ID, trip.TravelDate.Format("2006-01-02"), trip.OriginCode, trip.DestinationCode,
		trip.LegsCount, trip.TotalDurationMinutes, trip.TotalPriceFirstCents,
		trip.TotalPriceSecondCents, trip.Currency,
	); err != nil {
		return err
	}

	const insertReservation = `INSERT INTO reservations
		(trip_id, client_id, ticket_id, traveler_name, traveler_age,
		 traveler_document_id, ticket_class, price_cents)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for _, res := range reservations {
		clientID, err := getOrCreateClientTx(ctx, tx, res.LastName, res.TravelerDocumentID)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insertReservation,
			trip.ID, clientID, res.TicketID, res.TravelerName, res.TravelerAge,
			res.TravelerDocumentID, res.TicketClass, res.PriceCents,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// getOrCreateClientTx resolves the clients row for a (last name, document
// id) pair inside the given transaction, inserting it when missing.
func getOrCreateClientTx(ctx context.Context, tx *sql.Tx, lastName, documentID string) (int64, error) {
	const sel = `SELECT id FROM clients WHERE LOWER(last_name) = ? AND document_id = ?`
	var id int64
	err := tx.QueryRowContext(ctx, sel, strings.ToLower(lastName), documentID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	const ins = `INSERT INTO clients (last_name, document_id) VALUES (?, ?)`
	result, err := tx.ExecContext(ctx, ins, lastName, documentID)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ClientTripCount returns how many persisted trips reference the client
// with the given identity.  A client that was never persisted yields
// ErrNotFound.
func (r *TripRepo) ClientTripCount(ctx context.Context, lastName, documentID string) (int64, error) {
	const sel = `SELECT c.id FROM clients c WHERE LOWER(c.last_name) = ? AND c.document_id = ?`
	var clientID int64
	err := r.db.QueryRowContext(ctx, sel, strings.ToLower(lastName), documentID).Scan(&clientID)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	const count = `SELECT COUNT(DISTINCT trip_id) FROM reservations WHERE client_id = ?`
	var n int64
	if err := r.db.QueryRowContext(ctx, count, clientID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
