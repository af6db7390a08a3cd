package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// BookingStatus enumerates booking lifecycle states.  The commit path
// creates bookings directly in confirmed status; pending exists only for
// externally staged bookings and is never produced by the coordinator.
type BookingStatus string

const (
    BookingPending   BookingStatus = "pending"
    BookingConfirmed BookingStatus = "confirmed"
    BookingCancelled BookingStatus = "cancelled"
)

// Booking binds one user to one seat on one flight.  A seat has at most
// one non-cancelled booking at any time.  TotalAmount is the fare total
// frozen at commit.
//
// Fields:
//  ID             – primary key (uuid).
//  Reference      – unique human-readable reference (IMD-...).
//  UserID         – booking owner.
//  FlightID       – flight booked.
//  SeatID         – seat booked.
//  Status         – lifecycle status.
//  TotalAmount    – fare total at booking time.
//  PassengerName  – passenger contact name.
//  PassengerEmail – passenger contact email.
//  PassengerPhone – passenger contact phone.
//  BookingDate    – when the booking was committed.
//  PaymentDate    – stamped at commit; no gateway integration.
type Booking struct {
    ID             string          // bookings.id
    Reference      string          // bookings.booking_reference
    UserID         string          // bookings.user_id
    FlightID       string          // bookings.flight_id
    SeatID         string          // bookings.seat_id
    Status         BookingStatus   // bookings.status
    TotalAmount    decimal.Decimal // bookings.total_amount
    PassengerName  string          // bookings.passenger_name
    PassengerEmail string          // bookings.passenger_email
    PassengerPhone string          // bookings.passenger_phone
    BookingDate    *time.Time      // bookings.booking_date (nullable)
    PaymentDate    *time.Time      // bookings.payment_date (nullable)
    CreatedAt      time.Time       // bookings.created_at
    UpdatedAt      time.Time       // bookings.updated_at
}

// BookingDetail is a booking joined with the rows the cancellation and
// lookup paths need alongside it.
type BookingDetail struct {
    Booking
    FlightNumber  string    // flights.flight_number
    DepartureTime time.Time // flights.departure_time
    SeatNumber    string    // seats.seat_number
    SeatClassName string    // seat_classes.name
    Currency      string    // fare currency; set on the commit path only
}

// BookingStats aggregates booking counts by status.
type BookingStats struct {
    Confirmed int `json:"confirmed"`
    Cancelled int `json:"cancelled"`
    Pending   int `json:"pending"`
    Total     int `json:"total"`
}
