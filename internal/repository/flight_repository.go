package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
)

// FlightRepo exposes the flight inventory directory: existence, status and
// the available-seat counter.  The counter is only ever changed through
// AdjustAvailableTx, with SQL arithmetic under the same row lock the
// booking transaction already holds, never by a read-then-write in
// application memory.
type FlightRepo struct {
    db *sql.DB
}

// NewFlightRepo returns a FlightRepo bound to the provided database.
func NewFlightRepo(db *sql.DB) *FlightRepo { return &FlightRepo{db: db} }

const flightColumns = `id, flight_number, origin, destination, departure_time, arrival_time,
       aircraft, status, total_seats, available_seats, created_at, updated_at`

func scanFlight(row interface{ Scan(...any) error }) (*model.Flight, error) {
    var f model.Flight
    err := row.Scan(
        &f.ID, &f.FlightNumber, &f.Origin, &f.Destination, &f.DepartureTime, &f.ArrivalTime,
        &f.Aircraft, &f.Status, &f.TotalSeats, &f.AvailableSeats, &f.CreatedAt, &f.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    return &f, nil
}

// GetByID fetches a flight without locking.  Returns ErrFlightNotFound
// when no row matches.
func (r *FlightRepo) GetByID(ctx context.Context, flightID string) (*model.Flight, error) {
    const q = `SELECT ` + flightColumns + ` FROM flights WHERE id = ?`
    f, err := scanFlight(r.db.QueryRowContext(ctx, q, flightID))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrFlightNotFound
    }
    return f, err
}

// GetForUpdateTx fetches a flight under an exclusive row lock.  Booking
// and cancellation acquire this lock before touching any seat of the
// flight; the consistent flight-then-seat order prevents deadlock between
// transactions sharing the counter.
func (r *FlightRepo) GetForUpdateTx(ctx context.Context, tx Tx, flightID string) (*model.Flight, error) {
    stx, err := conn(tx)
    if err != nil {
        return nil, err
    }
    const q = `SELECT ` + flightColumns + ` FROM flights WHERE id = ? FOR UPDATE`
    f, err := scanFlight(stx.QueryRowContext(ctx, q, flightID))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrFlightNotFound
    }
    return f, err
}

// AdjustAvailableTx changes the available-seat counter by delta (negative
// on booking commit, positive on cancellation) as an atomic arithmetic
// update.
func (r *FlightRepo) AdjustAvailableTx(ctx context.Context, tx Tx, flightID string, delta int) error {
    stx, err := conn(tx)
    if err != nil {
        return err
    }
    const q = `UPDATE flights SET available_seats = available_seats + ? WHERE id = ?`
    res, err := stx.ExecContext(ctx, q, delta, flightID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrFlightNotFound
    }
    return nil
}
