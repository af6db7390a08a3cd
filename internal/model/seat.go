package model

import "time"

// SeatStatus enumerates the lifecycle states of a seat.  A seat moves
// available → blocked → booked; cancellation returns a booked seat to
// available, and hold expiry returns a blocked seat to available.
type SeatStatus string

const (
    SeatAvailable SeatStatus = "available" // free to be held or booked
    SeatBlocked   SeatStatus = "blocked"   // temporarily held by a user
    SeatBooked    SeatStatus = "booked"    // bound to a confirmed booking
)

// Seat describes a single seat on a flight.  Hold state is stored on the
// seat row itself: HoldUserID and HoldExpiresAt are set exactly while the
// status is blocked, so a conditional single-row update is enough to
// transition the seat safely under concurrency.
//
// Fields:
//  ID            – primary key (uuid).
//  FlightID      – flight this seat belongs to.
//  SeatClassID   – seat class (economy, business, first).
//  SeatNumber    – label such as "12A", unique per flight.
//  Row           – numeric row.
//  Column        – column letter (A–F).
//  Status        – availability status.
//  HoldUserID    – user currently holding the seat (nil unless blocked).
//  HoldExpiresAt – absolute hold expiry (nil unless blocked).
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Seat struct {
    ID            string     // seats.id
    FlightID      string     // seats.flight_id
    SeatClassID   string     // seats.seat_class_id
    SeatNumber    string     // seats.seat_number
    Row           int        // seats.seat_row
    Column        string     // seats.seat_column
    Status        SeatStatus // seats.status
    HoldUserID    *string    // seats.hold_user_id (nullable)
    HoldExpiresAt *time.Time // seats.hold_expires_at (nullable)
    CreatedAt     time.Time  // seats.created_at
    UpdatedAt     time.Time  // seats.updated_at
}

// HeldBy reports whether the seat is currently blocked and owned by the
// given user.  It does not consider expiry; an expired hold still belongs
// to its owner until the sweeper reclaims it.
func (s *Seat) HeldBy(userID string) bool {
    return s.Status == SeatBlocked && s.HoldUserID != nil && *s.HoldUserID == userID
}
