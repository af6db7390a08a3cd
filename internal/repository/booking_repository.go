package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
)

// BookingRepo persists bookings.  Creation and cancellation only happen
// inside the coordinator's transaction; lookups run outside it.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the provided database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingDetailColumns = `b.id, b.booking_reference, b.user_id, b.flight_id, b.seat_id,
       b.status, b.total_amount, b.passenger_name, b.passenger_email, b.passenger_phone,
       b.booking_date, b.payment_date, b.created_at, b.updated_at,
       f.flight_number, f.departure_time, s.seat_number, c.name`

const bookingDetailJoins = ` FROM bookings b
       JOIN flights f ON f.id = b.flight_id
       JOIN seats s ON s.id = b.seat_id
       JOIN seat_classes c ON c.id = s.seat_class_id`

func scanBookingDetail(row interface{ Scan(...any) error }) (*model.BookingDetail, error) {
    var d model.BookingDetail
    var name, email, phone sql.NullString
    var bookingDate, paymentDate sql.NullTime
    err := row.Scan(
        &d.ID, &d.Reference, &d.UserID, &d.FlightID, &d.SeatID,
        &d.Status, &d.TotalAmount, &name, &email, &phone,
        &bookingDate, &paymentDate, &d.CreatedAt, &d.UpdatedAt,
        &d.FlightNumber, &d.DepartureTime, &d.SeatNumber, &d.SeatClassName,
    )
    if err != nil {
        return nil, err
    }
    d.PassengerName = name.String
    d.PassengerEmail = email.String
    d.PassengerPhone = phone.String
    if bookingDate.Valid {
        t := bookingDate.Time.UTC()
        d.BookingDate = &t
    }
    if paymentDate.Valid {
        t := paymentDate.Time.UTC()
        d.PaymentDate = &t
    }
    return &d, nil
}

// CreateTx inserts one booking row within the transaction.
func (r *BookingRepo) CreateTx(ctx context.Context, tx Tx, b *model.Booking) error {
    stx, err := conn(tx)
    if err != nil {
        return err
    }
    const q = `INSERT INTO bookings
               (id, booking_reference, user_id, flight_id, seat_id, status, total_amount,
                passenger_name, passenger_email, passenger_phone, booking_date, payment_date)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    _, err = stx.ExecContext(ctx, q,
        b.ID, b.Reference, b.UserID, b.FlightID, b.SeatID, b.Status, b.TotalAmount,
        nullable(b.PassengerName), nullable(b.PassengerEmail), nullable(b.PassengerPhone),
        nullTime(b.BookingDate), nullTime(b.PaymentDate),
    )
    return err
}

// CreateBulkTx inserts multiple bookings in one statement; used by group
// booking so all passenger rows land in the same unit of work.
func (r *BookingRepo) CreateBulkTx(ctx context.Context, tx Tx, bookings []model.Booking) error {
    stx, err := conn(tx)
    if err != nil {
        return err
    }
    if len(bookings) == 0 {
        return nil
    }
    q := `INSERT INTO bookings
          (id, booking_reference, user_id, flight_id, seat_id, status, total_amount,
           passenger_name, passenger_email, passenger_phone, booking_date, payment_date)
          VALUES `
    params := make([]any, 0, len(bookings)*12)
    for i, b := range bookings {
        if i > 0 {
            q += ","
        }
        q += "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
        params = append(params,
            b.ID, b.Reference, b.UserID, b.FlightID, b.SeatID, b.Status, b.TotalAmount,
            nullable(b.PassengerName), nullable(b.PassengerEmail), nullable(b.PassengerPhone),
            nullTime(b.BookingDate), nullTime(b.PaymentDate),
        )
    }
    _, err = stx.ExecContext(ctx, q, params...)
    return err
}

// GetForUpdateTx locks and fetches a booking with its flight and seat for
// the cancellation path.  The joined rows are locked together, so the
// flight counter and seat cannot move under the transaction.
func (r *BookingRepo) GetForUpdateTx(ctx context.Context, tx Tx, bookingID string) (*model.BookingDetail, error) {
    stx, err := conn(tx)
    if err != nil {
        return nil, err
    }
    q := `SELECT ` + bookingDetailColumns + bookingDetailJoins + ` WHERE b.id = ? FOR UPDATE`
    d, err := scanBookingDetail(stx.QueryRowContext(ctx, q, bookingID))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrBookingNotFound
    }
    return d, err
}

// MarkCancelledTx sets a booking's status to cancelled inside the
// transaction.
func (r *BookingRepo) MarkCancelledTx(ctx context.Context, tx Tx, bookingID string) error {
    stx, err := conn(tx)
    if err != nil {
        return err
    }
    const q = `UPDATE bookings SET status = 'cancelled' WHERE id = ?`
    _, err = stx.ExecContext(ctx, q, bookingID)
    return err
}

// GetByID returns one booking with flight/seat/class details.
func (r *BookingRepo) GetByID(ctx context.Context, bookingID string) (*model.BookingDetail, error) {
    q := `SELECT ` + bookingDetailColumns + bookingDetailJoins + ` WHERE b.id = ?`
    d, err := scanBookingDetail(r.db.QueryRowContext(ctx, q, bookingID))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrBookingNotFound
    }
    return d, err
}

// GetByReference returns one booking looked up by its reference string.
func (r *BookingRepo) GetByReference(ctx context.Context, reference string) (*model.BookingDetail, error) {
    q := `SELECT ` + bookingDetailColumns + bookingDetailJoins + ` WHERE b.booking_reference = ?`
    d, err := scanBookingDetail(r.db.QueryRowContext(ctx, q, reference))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrBookingNotFound
    }
    return d, err
}

// ListByUser returns a user's bookings newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]model.BookingDetail, error) {
    q := `SELECT ` + bookingDetailColumns + bookingDetailJoins + ` WHERE b.user_id = ? ORDER BY b.created_at DESC`
    return r.list(ctx, q, userID)
}

// ListAll returns every booking newest first.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.BookingDetail, error) {
    q := `SELECT ` + bookingDetailColumns + bookingDetailJoins + ` ORDER BY b.created_at DESC`
    return r.list(ctx, q)
}

func (r *BookingRepo) list(ctx context.Context, q string, params ...any) ([]model.BookingDetail, error) {
    rows, err := r.db.QueryContext(ctx, q, params...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    details := make([]model.BookingDetail, 0)
    for rows.Next() {
        d, err := scanBookingDetail(rows)
        if err != nil {
            return nil, err
        }
        details = append(details, *d)
    }
    return details, rows.Err()
}

// Stats aggregates booking counts per status in a single scan.
func (r *BookingRepo) Stats(ctx context.Context) (*model.BookingStats, error) {
    const q = `SELECT
                 COUNT(CASE WHEN status = 'confirmed' THEN 1 END),
                 COUNT(CASE WHEN status = 'cancelled' THEN 1 END),
                 COUNT(CASE WHEN status = 'pending' THEN 1 END),
                 COUNT(*)
               FROM bookings`
    var s model.BookingStats
    err := r.db.QueryRowContext(ctx, q).Scan(&s.Confirmed, &s.Cancelled, &s.Pending, &s.Total)
    if err != nil {
        return nil, err
    }
    return &s, nil
}

func nullable(s string) any {
    if s == "" {
        return nil
    }
    return s
}

func nullTime(t *time.Time) any {
    if t == nil {
        return nil
    }
    return t.UTC()
}
