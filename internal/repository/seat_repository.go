package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"
    "time"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
)

// SeatRepo is the source of truth for seat state.  Every state transition
// it offers is a conditional UPDATE scoped to the rows matching a
// precondition; callers learn from the affected-row count whether the
// precondition held and reconstruct the precise failure reason from a
// plain read.  Hold fields are stored on the seat row itself, so no
// secondary table has to stay in sync.
type SeatRepo struct {
    db *sql.DB
}

// NewSeatRepo returns a SeatRepo bound to the provided database.
func NewSeatRepo(db *sql.DB) *SeatRepo { return &SeatRepo{db: db} }

const seatColumns = `id, flight_id, seat_class_id, seat_number, seat_row, seat_column,
       status, hold_user_id, hold_expires_at, created_at, updated_at`

func scanSeat(row interface{ Scan(...any) error }) (*model.Seat, error) {
    var s model.Seat
    var holdUser sql.NullString
    var holdExp sql.NullTime
    err := row.Scan(
        &s.ID, &s.FlightID, &s.SeatClassID, &s.SeatNumber, &s.Row, &s.Column,
        &s.Status, &holdUser, &holdExp, &s.CreatedAt, &s.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    if holdUser.Valid {
        u := holdUser.String
        s.HoldUserID = &u
    }
    if holdExp.Valid {
        t := holdExp.Time.UTC()
        s.HoldExpiresAt = &t
    }
    return &s, nil
}

// GetByID fetches a single seat.  Returns ErrSeatNotFound when no row
// matches.
func (r *SeatRepo) GetByID(ctx context.Context, seatID string) (*model.Seat, error) {
    const q = `SELECT ` + seatColumns + ` FROM seats WHERE id = ?`
    s, err := scanSeat(r.db.QueryRowContext(ctx, q, seatID))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrSeatNotFound
    }
    return s, err
}

// GetByIDs fetches the current state of every referenced seat in one
// query.  Missing IDs are simply absent from the result; callers compare
// lengths to detect them.
func (r *SeatRepo) GetByIDs(ctx context.Context, seatIDs []string) ([]model.Seat, error) {
    if len(seatIDs) == 0 {
        return []model.Seat{}, nil
    }
    q := `SELECT ` + seatColumns + ` FROM seats WHERE id IN (` + placeholders(len(seatIDs)) + `)`
    rows, err := r.db.QueryContext(ctx, q, args(seatIDs)...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    seats := make([]model.Seat, 0, len(seatIDs))
    for rows.Next() {
        s, err := scanSeat(rows)
        if err != nil {
            return nil, err
        }
        seats = append(seats, *s)
    }
    return seats, rows.Err()
}

// ListByFlight returns all seats of a flight ordered by row and column,
// for seat-map style listings.
func (r *SeatRepo) ListByFlight(ctx context.Context, flightID string) ([]model.Seat, error) {
    const q = `SELECT ` + seatColumns + ` FROM seats WHERE flight_id = ? ORDER BY seat_row, seat_column`
    rows, err := r.db.QueryContext(ctx, q, flightID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var seats []model.Seat
    for rows.Next() {
        s, err := scanSeat(rows)
        if err != nil {
            return nil, err
        }
        seats = append(seats, *s)
    }
    return seats, rows.Err()
}

// Block attempts the available→blocked transition, recording the hold
// owner and expiry.  It reports whether the transition happened; a false
// result means the seat was missing or not available, and the caller
// should read the seat to find out which.
func (r *SeatRepo) Block(ctx context.Context, seatID, userID string, expiresAt time.Time) (bool, error) {
    const q = `UPDATE seats
               SET status = 'blocked', hold_user_id = ?, hold_expires_at = ?
               WHERE id = ? AND status = 'available'`
    res, err := r.db.ExecContext(ctx, q, userID, expiresAt.UTC(), seatID)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    return n > 0, err
}

// ExtendHold pushes out the expiry of a hold the user already owns.  The
// owner condition makes the extension safe to attempt even when the hold
// has been reclaimed and re-acquired by someone else in the meantime.
func (r *SeatRepo) ExtendHold(ctx context.Context, seatID, userID string, expiresAt time.Time) (bool, error) {
    const q = `UPDATE seats
               SET hold_expires_at = ?
               WHERE id = ? AND status = 'blocked' AND hold_user_id = ?`
    res, err := r.db.ExecContext(ctx, q, expiresAt.UTC(), seatID, userID)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    return n > 0, err
}

// Release transitions blocked→available and clears the hold fields.  With
// a non-empty userID only that owner's hold is released; with an empty
// userID any hold on the seat is released (sweeper and rollback path).
func (r *SeatRepo) Release(ctx context.Context, seatID, userID string) (bool, error) {
    q := `UPDATE seats
          SET status = 'available', hold_user_id = NULL, hold_expires_at = NULL
          WHERE id = ? AND status = 'blocked'`
    params := []any{seatID}
    if userID != "" {
        q += ` AND hold_user_id = ?`
        params = append(params, userID)
    }
    res, err := r.db.ExecContext(ctx, q, params...)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    return n > 0, err
}

// BlockBulk applies the hold transition to every listed seat in one
// statement.  Seats currently available are blocked; seats already held
// by the same user get their expiry extended.  The affected-row count is
// returned so the caller can detect a seat lost to a race between its
// validation read and this update.
func (r *SeatRepo) BlockBulk(ctx context.Context, seatIDs []string, userID string, expiresAt time.Time) (int64, error) {
    if len(seatIDs) == 0 {
        return 0, nil
    }
    q := `UPDATE seats
          SET status = 'blocked', hold_user_id = ?, hold_expires_at = ?
          WHERE id IN (` + placeholders(len(seatIDs)) + `)
            AND (status = 'available' OR (status = 'blocked' AND hold_user_id = ?))`
    params := append([]any{userID, expiresAt.UTC()}, args(seatIDs)...)
    params = append(params, userID)
    res, err := r.db.ExecContext(ctx, q, params...)
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}

// ReleaseBulk releases holds on every listed seat.  A non-empty userID
// restricts the release to holds owned by that user.
func (r *SeatRepo) ReleaseBulk(ctx context.Context, seatIDs []string, userID string) (int64, error) {
    if len(seatIDs) == 0 {
        return 0, nil
    }
    q := `UPDATE seats
          SET status = 'available', hold_user_id = NULL, hold_expires_at = NULL
          WHERE id IN (` + placeholders(len(seatIDs)) + `) AND status = 'blocked'`
    params := args(seatIDs)
    if userID != "" {
        q += ` AND hold_user_id = ?`
        params = append(params, userID)
    }
    res, err := r.db.ExecContext(ctx, q, params...)
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}

// ReclaimExpired returns every blocked seat whose hold expired strictly
// before the cutoff to available, clearing the hold fields.  The
// precondition makes the sweep idempotent and safe to run concurrently.
func (r *SeatRepo) ReclaimExpired(ctx context.Context, cutoff time.Time) (int64, error) {
    const q = `UPDATE seats
               SET status = 'available', hold_user_id = NULL, hold_expires_at = NULL
               WHERE status = 'blocked' AND hold_expires_at < ?`
    res, err := r.db.ExecContext(ctx, q, cutoff.UTC())
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}

// GetForUpdateTx re-reads a seat (with its class name) under an exclusive
// row lock inside the booking transaction.  The flight ID is part of the
// predicate so a seat ID from another flight reads as missing.
func (r *SeatRepo) GetForUpdateTx(ctx context.Context, tx Tx, seatID, flightID string) (*model.Seat, string, error) {
    stx, err := conn(tx)
    if err != nil {
        return nil, "", err
    }
    const q = `SELECT s.id, s.flight_id, s.seat_class_id, s.seat_number, s.seat_row, s.seat_column,
                      s.status, s.hold_user_id, s.hold_expires_at, s.created_at, s.updated_at,
                      c.name
               FROM seats s
               JOIN seat_classes c ON c.id = s.seat_class_id
               WHERE s.id = ? AND s.flight_id = ?
               FOR UPDATE`
    var s model.Seat
    var holdUser sql.NullString
    var holdExp sql.NullTime
    var className string
    err = stx.QueryRowContext(ctx, q, seatID, flightID).Scan(
        &s.ID, &s.FlightID, &s.SeatClassID, &s.SeatNumber, &s.Row, &s.Column,
        &s.Status, &holdUser, &holdExp, &s.CreatedAt, &s.UpdatedAt, &className,
    )
    if errors.Is(err, sql.ErrNoRows) {
        return nil, "", ErrSeatNotFound
    }
    if err != nil {
        return nil, "", err
    }
    if holdUser.Valid {
        u := holdUser.String
        s.HoldUserID = &u
    }
    if holdExp.Valid {
        t := holdExp.Time.UTC()
        s.HoldExpiresAt = &t
    }
    return &s, className, nil
}

// MarkBookedTx transitions a single locked seat blocked→booked and clears
// the hold fields.  The caller has already verified the hold under the
// row lock.
func (r *SeatRepo) MarkBookedTx(ctx context.Context, tx Tx, seatID string) error {
    stx, err := conn(tx)
    if err != nil {
        return err
    }
    const q = `UPDATE seats
               SET status = 'booked', hold_user_id = NULL, hold_expires_at = NULL
               WHERE id = ?`
    _, err = stx.ExecContext(ctx, q, seatID)
    return err
}

// MarkBookedBulkTx transitions every listed seat to booked, but only
// where the seat is still blocked by the given user.  Group booking
// checks the returned count against the requested count and aborts the
// transaction on any shortfall.
func (r *SeatRepo) MarkBookedBulkTx(ctx context.Context, tx Tx, seatIDs []string, userID string) (int64, error) {
    stx, err := conn(tx)
    if err != nil {
        return 0, err
    }
    if len(seatIDs) == 0 {
        return 0, nil
    }
    q := `UPDATE seats
          SET status = 'booked', hold_user_id = NULL, hold_expires_at = NULL
          WHERE id IN (` + placeholders(len(seatIDs)) + `)
            AND status = 'blocked' AND hold_user_id = ?`
    params := append(args(seatIDs), userID)
    res, err := stx.ExecContext(ctx, q, params...)
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}

// MarkAvailableTx returns a seat to available inside a transaction,
// clearing any stale hold fields.  Used by the cancellation path.
func (r *SeatRepo) MarkAvailableTx(ctx context.Context, tx Tx, seatID string) error {
    stx, err := conn(tx)
    if err != nil {
        return err
    }
    const q = `UPDATE seats
               SET status = 'available', hold_user_id = NULL, hold_expires_at = NULL
               WHERE id = ?`
    _, err = stx.ExecContext(ctx, q, seatID)
    return err
}

// ClassNames resolves seat class IDs to display names.
func (r *SeatRepo) ClassNames(ctx context.Context, classIDs []string) (map[string]string, error) {
    if len(classIDs) == 0 {
        return map[string]string{}, nil
    }
    q := `SELECT id, name FROM seat_classes WHERE id IN (` + placeholders(len(classIDs)) + `)`
    rows, err := r.db.QueryContext(ctx, q, args(classIDs)...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    names := make(map[string]string, len(classIDs))
    for rows.Next() {
        var id, name string
        if err := rows.Scan(&id, &name); err != nil {
            return nil, err
        }
        names[id] = name
    }
    return names, rows.Err()
}

// placeholders builds a "?, ?, ..." list for IN clauses.
func placeholders(n int) string {
    return strings.Repeat("?, ", n-1) + "?"
}

// args converts a string slice into driver arguments.
func args(ids []string) []any {
    out := make([]any, 0, len(ids))
    for _, id := range ids {
        out = append(out, id)
    }
    return out
}
