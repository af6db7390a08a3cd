// Package service implements the seat reservation core: the hold manager,
// the expiry sweeper and the booking transaction coordinator.  Every
// caller-facing operation returns either a result or exactly one *Error
// classifying which precondition failed; nothing is panicked or swallowed.
package service

import (
    "errors"
    "fmt"
)

// Kind classifies a failure so the transport layer can map it to a status
// code and callers can branch without parsing messages.
type Kind int

const (
    // KindNotFound means a referenced entity (seat, flight, fare, user,
    // booking) does not exist.
    KindNotFound Kind = iota + 1
    // KindConflict means the resource is in the wrong state for the
    // requested transition (already booked, held by someone else, already
    // cancelled, lost race).
    KindConflict
    // KindUnauthorized means the caller does not own the hold or resource
    // they are acting on.
    KindUnauthorized
    // KindBadRequest means malformed input or a business-rule violation
    // (cancelled flight, departed flight, empty or oversized seat list).
    KindBadRequest
    // KindInternal means an infrastructure failure (database, broker).
    KindInternal
)

func (k Kind) String() string {
    switch k {
    case KindNotFound:
        return "not_found"
    case KindConflict:
        return "conflict"
    case KindUnauthorized:
        return "unauthorized"
    case KindBadRequest:
        return "bad_request"
    default:
        return "internal"
    }
}

// Error is the structured failure type returned by every core operation.
type Error struct {
    Kind    Kind
    Message string
    Err     error // wrapped cause, if any
}

func (e *Error) Error() string {
    if e.Err != nil {
        return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
    }
    return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NotFoundf builds a KindNotFound failure.
func NotFoundf(format string, a ...any) *Error {
    return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, a...)}
}

// Conflictf builds a KindConflict failure.
func Conflictf(format string, a ...any) *Error {
    return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, a...)}
}

// Unauthorizedf builds a KindUnauthorized failure.
func Unauthorizedf(format string, a ...any) *Error {
    return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, a...)}
}

// BadRequestf builds a KindBadRequest failure.
func BadRequestf(format string, a ...any) *Error {
    return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, a...)}
}

// Internalf wraps an infrastructure error with context.
func Internalf(err error, format string, a ...any) *Error {
    return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, a...), Err: err}
}

// KindOf extracts the failure kind from an error chain; unknown errors
// classify as internal.
func KindOf(err error) Kind {
    var e *Error
    if errors.As(err, &e) {
        return e.Kind
    }
    return KindInternal
}
