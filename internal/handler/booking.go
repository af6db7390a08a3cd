package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
    "github.com/iliyamo/airline-seat-reservation/internal/queue"
    "github.com/iliyamo/airline-seat-reservation/internal/service"
)

// BookingHandler exposes booking commit, group booking, fare quoting,
// cancellation and booking lookups.  After a successful commit it
// publishes a broker event on a best-effort basis; the HTTP response
// never fails because of the broker.
type BookingHandler struct {
    bookings  *service.BookingService
    rabbitURL string
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(bookings *service.BookingService, rabbitURL string) *BookingHandler {
    if bookings == nil {
        panic("nil service passed to NewBookingHandler")
    }
    return &BookingHandler{bookings: bookings, rabbitURL: rabbitURL}
}

type createBookingRequest struct {
    FlightID       string `json:"flight_id"`
    SeatID         string `json:"seat_id"`
    PassengerName  string `json:"passenger_name"`
    PassengerEmail string `json:"passenger_email"`
    PassengerPhone string `json:"passenger_phone"`
}

// Create handles POST /v1/bookings.  The seat must already be blocked by
// the caller; the service converts the hold into a confirmed booking
// atomically.  Returns 201 with the booking, 409 when the seat was taken,
// 403 when the hold belongs to someone else.
func (h *BookingHandler) Create(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body createBookingRequest
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.FlightID == "" || body.SeatID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "flight_id and seat_id are required"})
    }
    if body.PassengerName == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "passenger_name is required"})
    }
    detail, err := h.bookings.CreateBooking(c.Request().Context(), service.CreateBookingInput{
        UserID:         userID,
        FlightID:       body.FlightID,
        SeatID:         body.SeatID,
        PassengerName:  body.PassengerName,
        PassengerEmail: body.PassengerEmail,
        PassengerPhone: body.PassengerPhone,
    })
    if err != nil {
        return writeError(c, err)
    }

    go h.publishConfirmed(detail, []string{detail.SeatNumber}, detail.TotalAmount.StringFixed(2), detail.Currency, detail.Reference)

    return c.JSON(http.StatusCreated, bookingBody(detail))
}

type groupBookingRequest struct {
    FlightID     string `json:"flight_id"`
    ContactEmail string `json:"contact_email"`
    ContactPhone string `json:"contact_phone"`
    Passengers   []struct {
        SeatID         string `json:"seat_id"`
        PassengerName  string `json:"passenger_name"`
        PassengerEmail string `json:"passenger_email"`
        PassengerPhone string `json:"passenger_phone"`
    } `json:"passengers"`
}

// CreateGroup handles POST /v1/bookings/group.  It books one seat per
// passenger atomically; every seat must already be held by the caller.
func (h *BookingHandler) CreateGroup(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body groupBookingRequest
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.FlightID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "flight_id is required"})
    }
    in := service.GroupBookingInput{
        UserID:       userID,
        FlightID:     body.FlightID,
        ContactEmail: body.ContactEmail,
        ContactPhone: body.ContactPhone,
    }
    for _, p := range body.Passengers {
        in.Passengers = append(in.Passengers, service.PassengerSeat{
            SeatID:         p.SeatID,
            PassengerName:  p.PassengerName,
            PassengerEmail: p.PassengerEmail,
            PassengerPhone: p.PassengerPhone,
        })
    }
    result, err := h.bookings.CreateGroupBooking(c.Request().Context(), in)
    if err != nil {
        return writeError(c, err)
    }

    if len(result.Bookings) > 0 {
        seatNumbers := make([]string, 0, len(result.Bookings))
        for _, b := range result.Bookings {
            seatNumbers = append(seatNumbers, b.SeatNumber)
        }
        go h.publishConfirmed(&result.Bookings[0], seatNumbers, result.Total.StringFixed(2), result.Currency, result.Reference)
    }

    items := make([]echo.Map, 0, len(result.Bookings))
    for i := range result.Bookings {
        items = append(items, bookingBody(&result.Bookings[i]))
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "reference": result.Reference,
        "bookings":  items,
        "total":     result.Total,
        "currency":  result.Currency,
        "by_class":  result.ByClass,
    })
}

type fareRequest struct {
    FlightID string `json:"flight_id"`
    Seats    []struct {
        SeatID        string `json:"seat_id"`
        PassengerName string `json:"passenger_name"`
    } `json:"seats"`
}

// CalculateFare handles POST /v1/fares/calculate.  It prices a seat
// selection without holding or booking anything.
func (h *BookingHandler) CalculateFare(c echo.Context) error {
    var body fareRequest
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.FlightID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "flight_id is required"})
    }
    selections := make([]service.SeatSelection, 0, len(body.Seats))
    for _, s := range body.Seats {
        selections = append(selections, service.SeatSelection{SeatID: s.SeatID, PassengerName: s.PassengerName})
    }
    quote, err := h.bookings.CalculateFare(c.Request().Context(), body.FlightID, selections)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, quote)
}

// Cancel handles DELETE /v1/bookings/:id.  It cancels a confirmed
// booking, returning its seat to the pool.  Returns 200 with the
// cancelled booking, 400 when already cancelled or the flight departed.
func (h *BookingHandler) Cancel(c echo.Context) error {
    if _, err := getUserID(c); err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    bookingID := c.Param("id")
    if bookingID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    detail, err := h.bookings.CancelBooking(c.Request().Context(), bookingID)
    if err != nil {
        return writeError(c, err)
    }

    go func() {
        _ = queue.PublishBookingCancelled(context.Background(), h.rabbitURL, queue.BookingCancelledEvent{
            BookingID:   detail.ID,
            Reference:   detail.Reference,
            UserID:      detail.UserID,
            FlightID:    detail.FlightID,
            FlightNo:    detail.FlightNumber,
            SeatNumber:  detail.SeatNumber,
            CancelledAt: time.Now().UTC().Format(time.RFC3339),
        })
    }()

    return c.JSON(http.StatusOK, bookingBody(detail))
}

// Get handles GET /v1/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
    bookingID := c.Param("id")
    if bookingID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    detail, err := h.bookings.FindBooking(c.Request().Context(), bookingID)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, bookingBody(detail))
}

// GetByReference handles GET /v1/bookings/reference/:reference.
func (h *BookingHandler) GetByReference(c echo.Context) error {
    reference := c.Param("reference")
    if reference == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking reference"})
    }
    detail, err := h.bookings.FindBookingByReference(c.Request().Context(), reference)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, bookingBody(detail))
}

// ListMine handles GET /v1/my-bookings.  It returns the authenticated
// user's bookings, newest first.  An empty list is a 200, not a 404.
func (h *BookingHandler) ListMine(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    list, err := h.bookings.ListBookingsByUser(c.Request().Context(), userID)
    if err != nil {
        return writeError(c, err)
    }
    items := make([]echo.Map, 0, len(list))
    for i := range list {
        items = append(items, bookingBody(&list[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// List handles GET /v1/bookings.
func (h *BookingHandler) List(c echo.Context) error {
    list, err := h.bookings.ListBookings(c.Request().Context())
    if err != nil {
        return writeError(c, err)
    }
    items := make([]echo.Map, 0, len(list))
    for i := range list {
        items = append(items, bookingBody(&list[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Stats handles GET /v1/bookings/stats.
func (h *BookingHandler) Stats(c echo.Context) error {
    stats, err := h.bookings.BookingStats(c.Request().Context())
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, stats)
}

// publishConfirmed runs on its own goroutine with a background context
// so publishing survives the response being written.
func (h *BookingHandler) publishConfirmed(detail *model.BookingDetail, seatNumbers []string, total, currency, reference string) {
    _ = queue.PublishBookingConfirmed(context.Background(), h.rabbitURL, queue.BookingConfirmedEvent{
        BookingID:   detail.ID,
        Reference:   reference,
        UserID:      detail.UserID,
        FlightID:    detail.FlightID,
        FlightNo:    detail.FlightNumber,
        SeatNumbers: seatNumbers,
        TotalAmount: total,
        Currency:    currency,
        ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
    })
}

func bookingBody(d *model.BookingDetail) echo.Map {
    body := echo.Map{
        "id":              d.ID,
        "reference":       d.Reference,
        "user_id":         d.UserID,
        "flight_id":       d.FlightID,
        "flight_number":   d.FlightNumber,
        "departure_time":  d.DepartureTime.UTC().Format(time.RFC3339),
        "seat_id":         d.SeatID,
        "seat_number":     d.SeatNumber,
        "seat_class":      d.SeatClassName,
        "status":          d.Status,
        "total_amount":    d.TotalAmount,
        "passenger_name":  d.PassengerName,
        "passenger_email": d.PassengerEmail,
        "passenger_phone": d.PassengerPhone,
    }
    if d.BookingDate != nil {
        body["booking_date"] = d.BookingDate.UTC().Format(time.RFC3339)
    }
    if d.PaymentDate != nil {
        body["payment_date"] = d.PaymentDate.UTC().Format(time.RFC3339)
    }
    return body
}
