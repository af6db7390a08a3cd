package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
)

// FareRepo resolves the active fare for a flight/seat-class pair.  Fare
// management (creation, deactivation, validity windows) happens outside
// this service; the engine only ever reads.
type FareRepo struct {
    db *sql.DB
}

// NewFareRepo returns a FareRepo bound to the provided database.
func NewFareRepo(db *sql.DB) *FareRepo { return &FareRepo{db: db} }

const fareColumns = `id, flight_id, seat_class_id, base_price, tax, service_fee, total_price,
       currency, is_active, valid_from, valid_to, created_at, updated_at`

func scanFare(row interface{ Scan(...any) error }) (*model.Fare, error) {
    var f model.Fare
    var from, to sql.NullTime
    err := row.Scan(
        &f.ID, &f.FlightID, &f.SeatClassID, &f.BasePrice, &f.Tax, &f.ServiceFee, &f.TotalPrice,
        &f.Currency, &f.IsActive, &from, &to, &f.CreatedAt, &f.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    if from.Valid {
        t := from.Time.UTC()
        f.ValidFrom = &t
    }
    if to.Valid {
        t := to.Time.UTC()
        f.ValidTo = &t
    }
    return &f, nil
}

// ActiveByFlightAndClass returns the active fare for the pair, or
// ErrFareNotFound when none exists.
func (r *FareRepo) ActiveByFlightAndClass(ctx context.Context, flightID, seatClassID string) (*model.Fare, error) {
    const q = `SELECT ` + fareColumns + ` FROM fares
               WHERE flight_id = ? AND seat_class_id = ? AND is_active = 1`
    f, err := scanFare(r.db.QueryRowContext(ctx, q, flightID, seatClassID))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrFareNotFound
    }
    return f, err
}

// ActiveByFlightAndClassTx is ActiveByFlightAndClass inside the booking
// transaction, so the price used for the committed booking is read in the
// same unit of work that writes it.
func (r *FareRepo) ActiveByFlightAndClassTx(ctx context.Context, tx Tx, flightID, seatClassID string) (*model.Fare, error) {
    stx, err := conn(tx)
    if err != nil {
        return nil, err
    }
    const q = `SELECT ` + fareColumns + ` FROM fares
               WHERE flight_id = ? AND seat_class_id = ? AND is_active = 1`
    f, err := scanFare(stx.QueryRowContext(ctx, q, flightID, seatClassID))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrFareNotFound
    }
    return f, err
}
