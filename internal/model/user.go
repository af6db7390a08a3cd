package model

import "time"

// User is the account on whose behalf holds and bookings are made.
// Account management lives outside this service; the core only reads
// users to validate that a booking's owner exists.
type User struct {
    ID        string    // users.id
    FirstName string    // users.first_name
    LastName  string    // users.last_name
    Email     string    // users.email
    Phone     *string   // users.phone (nullable)
    CreatedAt time.Time // users.created_at
    UpdatedAt time.Time // users.updated_at
}
