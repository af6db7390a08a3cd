// Package repository provides MySQL-backed data access for the seat
// reservation engine.  Sentinel errors defined here let the service layer
// distinguish failure scenarios without string matching; services translate
// them into the typed failures surfaced to callers.
package repository

import "errors"

// ErrSeatNotFound is returned when a referenced seat row does not exist.
var ErrSeatNotFound = errors.New("seat not found")

// ErrFlightNotFound is returned when a referenced flight row does not exist.
var ErrFlightNotFound = errors.New("flight not found")

// ErrFareNotFound is returned when no active fare exists for a
// flight/seat-class pair.
var ErrFareNotFound = errors.New("fare not found")

// ErrBookingNotFound is returned when a referenced booking row does not
// exist.
var ErrBookingNotFound = errors.New("booking not found")

// ErrUserNotFound is returned when a referenced user row does not exist.
var ErrUserNotFound = errors.New("user not found")
