package model

import "time"

// FlightStatus enumerates operational flight states.  Cancelled flights
// reject new bookings; delayed flights do not.
type FlightStatus string

const (
    FlightOnTime    FlightStatus = "on_time"
    FlightDelayed   FlightStatus = "delayed"
    FlightCancelled FlightStatus = "cancelled"
)

// Flight is the inventory record consulted by the booking coordinator.
// AvailableSeats is an incrementally maintained counter, not derived by
// counting seat rows: the coordinator decrements it on commit and
// increments it on cancellation, always inside the same transaction that
// moves the seat.
//
// Fields:
//  ID             – primary key (uuid).
//  FlightNumber   – airline designator, unique.
//  Origin         – departure airport/city.
//  Destination    – arrival airport/city.
//  DepartureTime  – scheduled departure (UTC).
//  ArrivalTime    – scheduled arrival (UTC).
//  Aircraft       – equipment label.
//  Status         – operational status.
//  TotalSeats     – seat count at creation.
//  AvailableSeats – seats currently in available status.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Flight struct {
    ID             string       // flights.id
    FlightNumber   string       // flights.flight_number
    Origin         string       // flights.origin
    Destination    string       // flights.destination
    DepartureTime  time.Time    // flights.departure_time
    ArrivalTime    time.Time    // flights.arrival_time
    Aircraft       string       // flights.aircraft
    Status         FlightStatus // flights.status
    TotalSeats     int          // flights.total_seats
    AvailableSeats int          // flights.available_seats
    CreatedAt      time.Time    // flights.created_at
    UpdatedAt      time.Time    // flights.updated_at
}
