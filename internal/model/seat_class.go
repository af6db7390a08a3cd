package model

import "time"

// SeatClass identifies a cabin class.  Classes are global reference data
// shared by all flights; fares are priced per (flight, class) pair.
type SeatClass struct {
    ID        string    // seat_classes.id
    Name      string    // seat_classes.name (economy, business, first)
    Priority  int       // seat_classes.priority (lower sorts first)
    CreatedAt time.Time // seat_classes.created_at
}
