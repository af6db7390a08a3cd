// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published after a booking transaction commits.
// It carries enough information for downstream consumers to log, notify,
// or feed analytics without querying the primary database.  Group
// bookings publish one event with every seat of the group.
type BookingConfirmedEvent struct {
    BookingID   string   `json:"booking_id"`
    Reference   string   `json:"booking_reference"`
    UserID      string   `json:"user_id"`
    FlightID    string   `json:"flight_id"`
    FlightNo    string   `json:"flight_number"`
    SeatNumbers []string `json:"seats"`
    TotalAmount string   `json:"total_amount"`
    Currency    string   `json:"currency"`
    ConfirmedAt string   `json:"confirmed_at"`
}

// BookingCancelledEvent is published after a cancellation commits.
type BookingCancelledEvent struct {
    BookingID   string `json:"booking_id"`
    Reference   string `json:"booking_reference"`
    UserID      string `json:"user_id"`
    FlightID    string `json:"flight_id"`
    FlightNo    string `json:"flight_number"`
    SeatNumber  string `json:"seat_number"`
    CancelledAt string `json:"cancelled_at"`
}
