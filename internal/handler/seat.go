package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/airline-seat-reservation/internal/service"
)

// SeatHandler exposes the hold lifecycle over HTTP: blocking one or many
// seats, releasing them, and reading a flight's seat map.  All mutating
// methods assume JWT authentication has already run; they return 401
// only when the user ID cannot be extracted from the context.
type SeatHandler struct {
    holds    *service.HoldService
    bookings *service.BookingService
}

// NewSeatHandler constructs a SeatHandler.  Both services must be non-nil.
func NewSeatHandler(holds *service.HoldService, bookings *service.BookingService) *SeatHandler {
    if holds == nil || bookings == nil {
        panic("nil service passed to NewSeatHandler")
    }
    return &SeatHandler{holds: holds, bookings: bookings}
}

// Block handles POST /v1/seats/:id/block.  It places a time-boxed hold
// on one seat for the current user.  Re-blocking a seat the user already
// holds refreshes the expiry.  Returns 200 with the expiration timestamp,
// 409 when the seat is booked or held by someone else, 404 when the seat
// does not exist.
func (h *SeatHandler) Block(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    seatID := c.Param("id")
    if seatID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
    }
    expiresAt, err := h.holds.BlockSeat(c.Request().Context(), seatID, userID)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "seat_id":    seatID,
        "expires_at": expiresAt.UTC().Format(time.RFC3339),
    })
}

// Unblock handles DELETE /v1/seats/:id/block.  It releases the current
// user's hold on the seat.  Returns 200 on success, 403 when the hold
// belongs to another user, 409 when the seat is not blocked.
func (h *SeatHandler) Unblock(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    seatID := c.Param("id")
    if seatID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
    }
    if err := h.holds.UnblockSeat(c.Request().Context(), seatID, userID); err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"seat_id": seatID, "released": true})
}

// BlockMultiple handles POST /v1/flights/:id/seats/block.  The request
// body carries a "seat_ids" array; all seats are held atomically or none
// are.  Returns 200 with the shared expiration timestamp, 409 listing
// every unavailable seat when any is taken.
func (h *SeatHandler) BlockMultiple(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body struct {
        SeatIDs []string `json:"seat_ids"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    expiresAt, err := h.holds.BlockMultiple(c.Request().Context(), body.SeatIDs, userID)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "seat_ids":   body.SeatIDs,
        "expires_at": expiresAt.UTC().Format(time.RFC3339),
    })
}

// UnblockMultiple handles DELETE /v1/flights/:id/seats/block.  It
// releases the current user's holds on the listed seats.
func (h *SeatHandler) UnblockMultiple(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body struct {
        SeatIDs []string `json:"seat_ids"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := h.holds.UnblockMultiple(c.Request().Context(), body.SeatIDs, userID); err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"seat_ids": body.SeatIDs, "released": true})
}

// ListFlightSeats handles GET /v1/flights/:id/seats.  It returns the
// seat map of a flight with each seat's current status.  Hold ownership
// is not exposed; clients only see available / blocked / booked.
func (h *SeatHandler) ListFlightSeats(c echo.Context) error {
    flightID := c.Param("id")
    if flightID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
    }
    seats, err := h.bookings.ListFlightSeats(c.Request().Context(), flightID)
    if err != nil {
        return writeError(c, err)
    }
    items := make([]echo.Map, 0, len(seats))
    for _, seat := range seats {
        items = append(items, echo.Map{
            "id":          seat.ID,
            "seat_number": seat.SeatNumber,
            "class_id":    seat.SeatClassID,
            "status":      seat.Status,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"flight_id": flightID, "items": items})
}
