package service

import (
    "context"
    "errors"
    "fmt"
    "log"
    "strings"
    "time"

    "github.com/google/uuid"
    "github.com/shopspring/decimal"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
    "github.com/iliyamo/airline-seat-reservation/internal/monitoring"
    "github.com/iliyamo/airline-seat-reservation/internal/repository"
)

// SeatStore extends the hold manager's registry view with the
// transactional transitions the booking coordinator performs.
type SeatStore interface {
    SeatRegistry
    ListByFlight(ctx context.Context, flightID string) ([]model.Seat, error)
    ClassNames(ctx context.Context, classIDs []string) (map[string]string, error)
    GetForUpdateTx(ctx context.Context, tx repository.Tx, seatID, flightID string) (*model.Seat, string, error)
    MarkBookedTx(ctx context.Context, tx repository.Tx, seatID string) error
    MarkBookedBulkTx(ctx context.Context, tx repository.Tx, seatIDs []string, userID string) (int64, error)
    MarkAvailableTx(ctx context.Context, tx repository.Tx, seatID string) error
}

// FlightDirectory is the flight inventory view: existence, status and the
// available-seat counter.
type FlightDirectory interface {
    GetByID(ctx context.Context, flightID string) (*model.Flight, error)
    GetForUpdateTx(ctx context.Context, tx repository.Tx, flightID string) (*model.Flight, error)
    AdjustAvailableTx(ctx context.Context, tx repository.Tx, flightID string, delta int) error
}

// FareLookup resolves the active fare for a flight/seat-class pair.
type FareLookup interface {
    ActiveByFlightAndClass(ctx context.Context, flightID, seatClassID string) (*model.Fare, error)
    ActiveByFlightAndClassTx(ctx context.Context, tx repository.Tx, flightID, seatClassID string) (*model.Fare, error)
}

// BookingStore persists and reads bookings.
type BookingStore interface {
    CreateTx(ctx context.Context, tx repository.Tx, b *model.Booking) error
    CreateBulkTx(ctx context.Context, tx repository.Tx, bookings []model.Booking) error
    GetForUpdateTx(ctx context.Context, tx repository.Tx, bookingID string) (*model.BookingDetail, error)
    MarkCancelledTx(ctx context.Context, tx repository.Tx, bookingID string) error
    GetByID(ctx context.Context, bookingID string) (*model.BookingDetail, error)
    GetByReference(ctx context.Context, reference string) (*model.BookingDetail, error)
    ListByUser(ctx context.Context, userID string) ([]model.BookingDetail, error)
    ListAll(ctx context.Context) ([]model.BookingDetail, error)
    Stats(ctx context.Context) (*model.BookingStats, error)
}

// UserDirectory reads user accounts.
type UserDirectory interface {
    GetByID(ctx context.Context, userID string) (*model.User, error)
    GetByIDTx(ctx context.Context, tx repository.Tx, userID string) (*model.User, error)
}

// BookingService is the booking transaction coordinator.  It converts
// valid holds into confirmed bookings inside a single unit of work that
// locks the flight row before the seat row, and reverses bookings on
// cancellation.  If anything fails after the hold pre-check, the caller's
// hold is released by a compensating unblock that never masks the
// original failure.
type BookingService struct {
    db       repository.DB
    seats    SeatStore
    flights  FlightDirectory
    fares    FareLookup
    bookings BookingStore
    users    UserDirectory
    now      func() time.Time
}

// NewBookingService wires the coordinator to its collaborators.
func NewBookingService(db repository.DB, seats SeatStore, flights FlightDirectory, fares FareLookup, bookings BookingStore, users UserDirectory) *BookingService {
    return &BookingService{
        db:       db,
        seats:    seats,
        flights:  flights,
        fares:    fares,
        bookings: bookings,
        users:    users,
        now:      time.Now,
    }
}

// CreateBookingInput carries everything needed to commit one booking.
type CreateBookingInput struct {
    UserID         string
    FlightID       string
    SeatID         string
    PassengerName  string
    PassengerEmail string
    PassengerPhone string
}

// CreateBooking converts the caller's hold on a seat into a confirmed
// booking.  The seat must already be blocked by the requesting user; the
// transaction re-validates everything under row locks before writing.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*model.BookingDetail, error) {
    if err := s.precheckHold(ctx, in.SeatID, in.FlightID, in.UserID); err != nil {
        monitoring.BookingOp("create", KindOf(err).String())
        return nil, err
    }

    detail, err := s.createBookingTx(ctx, in)
    if err != nil {
        // The transaction rollback undoes its own writes but not the
        // pre-existing hold; release it so the seat is not stranded
        // until sweeper reclamation.  Conditional on our ownership so a
        // competitor's subsequent hold is never freed.
        s.releaseHold(ctx, in.SeatID, in.UserID)
        monitoring.BookingOp("create", KindOf(err).String())
        return nil, err
    }
    monitoring.BookingOp("create", "success")
    return detail, nil
}

// precheckHold verifies, before the atomic section opens, that the seat
// exists on the flight and is blocked by the requesting user.
func (s *BookingService) precheckHold(ctx context.Context, seatID, flightID, userID string) error {
    seat, err := s.seats.GetByID(ctx, seatID)
    if err != nil {
        if errors.Is(err, repository.ErrSeatNotFound) {
            return NotFoundf("seat %s not found", seatID)
        }
        return Internalf(err, "reading seat %s", seatID)
    }
    if seat.FlightID != flightID {
        return NotFoundf("seat %s does not belong to flight %s", seat.SeatNumber, flightID)
    }
    switch {
    case seat.Status == model.SeatBooked:
        return Conflictf("seat %s is already booked", seat.SeatNumber)
    case seat.Status != model.SeatBlocked:
        return BadRequestf("seat %s must be blocked before booking", seat.SeatNumber)
    case !seat.HeldBy(userID):
        return Unauthorizedf("seat %s is held by another user", seat.SeatNumber)
    }
    return nil
}

func (s *BookingService) createBookingTx(ctx context.Context, in CreateBookingInput) (*model.BookingDetail, error) {
    tx, err := s.db.Begin(ctx)
    if err != nil {
        return nil, Internalf(err, "starting booking transaction")
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    if _, err := s.users.GetByIDTx(ctx, tx, in.UserID); err != nil {
        if errors.Is(err, repository.ErrUserNotFound) {
            return nil, NotFoundf("user %s not found", in.UserID)
        }
        return nil, Internalf(err, "reading user %s", in.UserID)
    }

    // Flight lock first, seat lock second; all transactional paths
    // acquire in this order.
    flight, err := s.flights.GetForUpdateTx(ctx, tx, in.FlightID)
    if err != nil {
        if errors.Is(err, repository.ErrFlightNotFound) {
            return nil, NotFoundf("flight %s not found", in.FlightID)
        }
        return nil, Internalf(err, "locking flight %s", in.FlightID)
    }
    if flight.Status == model.FlightCancelled {
        return nil, BadRequestf("cannot book a cancelled flight")
    }
    if flight.AvailableSeats <= 0 {
        // Secondary oversell guard beyond the seat-level check.
        return nil, Conflictf("flight %s has no available seats", flight.FlightNumber)
    }

    // Re-check the seat under its row lock: time has passed since the
    // pre-check and another actor may have intervened.
    seat, className, err := s.seats.GetForUpdateTx(ctx, tx, in.SeatID, in.FlightID)
    if err != nil {
        if errors.Is(err, repository.ErrSeatNotFound) {
            return nil, NotFoundf("seat %s not found", in.SeatID)
        }
        return nil, Internalf(err, "locking seat %s", in.SeatID)
    }
    if seat.Status == model.SeatBooked {
        return nil, Conflictf("seat %s is already booked", seat.SeatNumber)
    }
    if !seat.HeldBy(in.UserID) {
        return nil, Conflictf("seat %s is no longer held by this user", seat.SeatNumber)
    }

    fare, err := s.fares.ActiveByFlightAndClassTx(ctx, tx, in.FlightID, seat.SeatClassID)
    if err != nil {
        if errors.Is(err, repository.ErrFareNotFound) {
            return nil, NotFoundf("no active fare for seat class %s", className)
        }
        return nil, Internalf(err, "resolving fare for seat %s", seat.SeatNumber)
    }

    now := s.now().UTC()
    reference, err := NewReference(now)
    if err != nil {
        return nil, Internalf(err, "generating booking reference")
    }
    booking := model.Booking{
        ID:             uuid.NewString(),
        Reference:      reference,
        UserID:         in.UserID,
        FlightID:       in.FlightID,
        SeatID:         in.SeatID,
        Status:         model.BookingConfirmed,
        TotalAmount:    fare.TotalPrice,
        PassengerName:  in.PassengerName,
        PassengerEmail: in.PassengerEmail,
        PassengerPhone: in.PassengerPhone,
        BookingDate:    &now,
        PaymentDate:    &now, // stamped at commit; payment processing is external
    }
    if err := s.bookings.CreateTx(ctx, tx, &booking); err != nil {
        return nil, Internalf(err, "persisting booking")
    }
    if err := s.seats.MarkBookedTx(ctx, tx, in.SeatID); err != nil {
        return nil, Internalf(err, "marking seat %s booked", seat.SeatNumber)
    }
    if err := s.flights.AdjustAvailableTx(ctx, tx, in.FlightID, -1); err != nil {
        return nil, Internalf(err, "decrementing available seats")
    }
    if err := tx.Commit(); err != nil {
        return nil, Internalf(err, "committing booking transaction")
    }
    committed = true

    return &model.BookingDetail{
        Booking:       booking,
        FlightNumber:  flight.FlightNumber,
        DepartureTime: flight.DepartureTime,
        SeatNumber:    seat.SeatNumber,
        SeatClassName: className,
        Currency:      fare.Currency,
    }, nil
}

// releaseHold is the compensating unblock after a failed booking.  Its
// own failure is logged, never raised, so the primary cause propagates.
func (s *BookingService) releaseHold(ctx context.Context, seatID, userID string) {
    if _, err := s.seats.Release(ctx, seatID, userID); err != nil {
        log.Printf("booking: compensating release of seat %s failed: %v", seatID, err)
    }
}

// SeatSelection names one seat and its passenger for fare calculation.
type SeatSelection struct {
    SeatID        string
    PassengerName string
}

// FareLine is the per-seat price breakdown in a quote.
type FareLine struct {
    SeatID        string          `json:"seat_id"`
    SeatNumber    string          `json:"seat_number"`
    SeatClass     string          `json:"seat_class"`
    PassengerName string          `json:"passenger_name"`
    BasePrice     decimal.Decimal `json:"base_price"`
    Tax           decimal.Decimal `json:"tax"`
    ServiceFee    decimal.Decimal `json:"service_fee"`
    Total         decimal.Decimal `json:"total"`
    Currency      string          `json:"currency"`
}

// ClassSubtotal aggregates a quote per seat class.
type ClassSubtotal struct {
    Seats  int             `json:"seats"`
    Amount decimal.Decimal `json:"amount"`
}

// FareQuote is the result of a fare calculation: per-seat lines plus a
// summed total rounded to two decimals.
type FareQuote struct {
    FlightID string                   `json:"flight_id"`
    Lines    []FareLine               `json:"lines"`
    Total    decimal.Decimal          `json:"total"`
    Currency string                   `json:"currency"`
    ByClass  map[string]ClassSubtotal `json:"by_class"`
}

// CalculateFare prices a set of seats on a flight without mutating
// anything.  Seats must exist, belong to the flight, and be available or
// blocked; each seat's class must have an active fare.  Reused as the
// validation pre-pass of group booking.
func (s *BookingService) CalculateFare(ctx context.Context, flightID string, selections []SeatSelection) (*FareQuote, error) {
    if len(selections) == 0 {
        return nil, BadRequestf("at least one seat is required")
    }
    if len(selections) > MaxBulkSeats {
        return nil, BadRequestf("at most %d seats per request", MaxBulkSeats)
    }
    ids := make([]string, 0, len(selections))
    byID := make(map[string]SeatSelection, len(selections))
    for _, sel := range selections {
        if sel.SeatID == "" {
            return nil, BadRequestf("seat id is required")
        }
        if _, dup := byID[sel.SeatID]; dup {
            return nil, BadRequestf("seat %s selected more than once", sel.SeatID)
        }
        byID[sel.SeatID] = sel
        ids = append(ids, sel.SeatID)
    }

    if _, err := s.flights.GetByID(ctx, flightID); err != nil {
        if errors.Is(err, repository.ErrFlightNotFound) {
            return nil, NotFoundf("flight %s not found", flightID)
        }
        return nil, Internalf(err, "reading flight %s", flightID)
    }
    seats, err := s.seats.GetByIDs(ctx, ids)
    if err != nil {
        return nil, Internalf(err, "reading %d seats", len(ids))
    }
    if len(seats) != len(ids) {
        found := make(map[string]struct{}, len(seats))
        for _, seat := range seats {
            found[seat.ID] = struct{}{}
        }
        var missing []string
        for _, id := range ids {
            if _, ok := found[id]; !ok {
                missing = append(missing, id)
            }
        }
        return nil, NotFoundf("seats not found: %s", strings.Join(missing, ", "))
    }

    var violations []string
    classIDs := make([]string, 0, 3)
    seenClass := make(map[string]struct{}, 3)
    for _, seat := range seats {
        if seat.FlightID != flightID {
            violations = append(violations, fmt.Sprintf("seat %s does not belong to flight %s", seat.SeatNumber, flightID))
            continue
        }
        if seat.Status == model.SeatBooked {
            violations = append(violations, fmt.Sprintf("seat %s is already booked", seat.SeatNumber))
        }
        if _, ok := seenClass[seat.SeatClassID]; !ok {
            seenClass[seat.SeatClassID] = struct{}{}
            classIDs = append(classIDs, seat.SeatClassID)
        }
    }
    if len(violations) > 0 {
        return nil, Conflictf("%s", strings.Join(violations, "; "))
    }

    classNames, err := s.seats.ClassNames(ctx, classIDs)
    if err != nil {
        return nil, Internalf(err, "resolving seat classes")
    }
    fares := make(map[string]*model.Fare, len(classIDs))
    for _, classID := range classIDs {
        fare, err := s.fares.ActiveByFlightAndClass(ctx, flightID, classID)
        if err != nil {
            if errors.Is(err, repository.ErrFareNotFound) {
                return nil, NotFoundf("no active fare for seat class %s", classNames[classID])
            }
            return nil, Internalf(err, "resolving fare for class %s", classID)
        }
        fares[classID] = fare
    }

    quote := &FareQuote{
        FlightID: flightID,
        Lines:    make([]FareLine, 0, len(seats)),
        Total:    decimal.Zero,
        ByClass:  make(map[string]ClassSubtotal),
    }
    for _, seat := range seats {
        fare := fares[seat.SeatClassID]
        className := classNames[seat.SeatClassID]
        quote.Lines = append(quote.Lines, FareLine{
            SeatID:        seat.ID,
            SeatNumber:    seat.SeatNumber,
            SeatClass:     className,
            PassengerName: byID[seat.ID].PassengerName,
            BasePrice:     fare.BasePrice,
            Tax:           fare.Tax,
            ServiceFee:    fare.ServiceFee,
            Total:         fare.TotalPrice,
            Currency:      fare.Currency,
        })
        quote.Total = quote.Total.Add(fare.TotalPrice)
        sub := quote.ByClass[className]
        sub.Seats++
        sub.Amount = sub.Amount.Add(fare.TotalPrice)
        quote.ByClass[className] = sub
        if quote.Currency == "" {
            quote.Currency = fare.Currency
        }
    }
    quote.Total = quote.Total.Round(2)
    return quote, nil
}

// PassengerSeat pairs one passenger with one seat in a group booking.
type PassengerSeat struct {
    SeatID         string
    PassengerName  string
    PassengerEmail string
    PassengerPhone string
}

// GroupBookingInput carries a multi-passenger booking request.
type GroupBookingInput struct {
    UserID       string
    FlightID     string
    Passengers   []PassengerSeat
    ContactEmail string
    ContactPhone string
}

// GroupBookingResult is the committed group: one booking per passenger
// sharing a reference prefix, plus the aggregated totals.
type GroupBookingResult struct {
    Reference string                   `json:"reference"`
    Bookings  []model.BookingDetail    `json:"bookings"`
    Total     decimal.Decimal          `json:"total"`
    Currency  string                   `json:"currency"`
    ByClass   map[string]ClassSubtotal `json:"by_class"`
}

// CreateGroupBooking books N seats for N passengers atomically.  The fare
// calculation pass validates every seat before any mutation; the caller
// must hold every seat.  Inside the transaction the bulk booked
// transition is conditional on the caller's holds, and any shortfall in
// the affected count aborts the whole group.
func (s *BookingService) CreateGroupBooking(ctx context.Context, in GroupBookingInput) (*GroupBookingResult, error) {
    if len(in.Passengers) == 0 {
        return nil, BadRequestf("at least one passenger is required")
    }
    if len(in.Passengers) > MaxBulkSeats {
        return nil, BadRequestf("at most %d passengers per group booking", MaxBulkSeats)
    }
    selections := make([]SeatSelection, 0, len(in.Passengers))
    for _, p := range in.Passengers {
        if p.PassengerName == "" {
            return nil, BadRequestf("passenger name is required for seat %s", p.SeatID)
        }
        selections = append(selections, SeatSelection{SeatID: p.SeatID, PassengerName: p.PassengerName})
    }

    quote, err := s.CalculateFare(ctx, in.FlightID, selections)
    if err != nil {
        monitoring.BookingOp("group", KindOf(err).String())
        return nil, err
    }

    // Every seat must already be held by the requesting user.
    ids := make([]string, 0, len(in.Passengers))
    for _, p := range in.Passengers {
        ids = append(ids, p.SeatID)
    }
    seats, err := s.seats.GetByIDs(ctx, ids)
    if err != nil {
        return nil, Internalf(err, "reading %d seats", len(ids))
    }
    var violations []string
    unauthorized := false
    for _, seat := range seats {
        switch {
        case seat.HeldBy(in.UserID):
        case seat.Status == model.SeatBlocked:
            unauthorized = true
            violations = append(violations, fmt.Sprintf("seat %s is held by another user", seat.SeatNumber))
        default:
            violations = append(violations, fmt.Sprintf("seat %s is not blocked", seat.SeatNumber))
        }
    }
    if len(violations) > 0 {
        monitoring.BookingOp("group", "conflict")
        msg := strings.Join(violations, "; ")
        if unauthorized {
            return nil, Unauthorizedf("%s", msg)
        }
        return nil, Conflictf("%s", msg)
    }

    result, err := s.createGroupTx(ctx, in, quote)
    if err != nil {
        monitoring.BookingOp("group", KindOf(err).String())
        return nil, err
    }
    monitoring.BookingOp("group", "success")
    return result, nil
}

func (s *BookingService) createGroupTx(ctx context.Context, in GroupBookingInput, quote *FareQuote) (*GroupBookingResult, error) {
    lineBySeat := make(map[string]FareLine, len(quote.Lines))
    for _, line := range quote.Lines {
        lineBySeat[line.SeatID] = line
    }

    tx, err := s.db.Begin(ctx)
    if err != nil {
        return nil, Internalf(err, "starting group booking transaction")
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    if _, err := s.users.GetByIDTx(ctx, tx, in.UserID); err != nil {
        if errors.Is(err, repository.ErrUserNotFound) {
            return nil, NotFoundf("user %s not found", in.UserID)
        }
        return nil, Internalf(err, "reading user %s", in.UserID)
    }
    flight, err := s.flights.GetForUpdateTx(ctx, tx, in.FlightID)
    if err != nil {
        if errors.Is(err, repository.ErrFlightNotFound) {
            return nil, NotFoundf("flight %s not found", in.FlightID)
        }
        return nil, Internalf(err, "locking flight %s", in.FlightID)
    }
    if flight.Status == model.FlightCancelled {
        return nil, BadRequestf("cannot book a cancelled flight")
    }
    n := len(in.Passengers)
    if flight.AvailableSeats < n {
        return nil, Conflictf("flight %s has only %d available seats", flight.FlightNumber, flight.AvailableSeats)
    }

    now := s.now().UTC()
    reference, err := NewReference(now)
    if err != nil {
        return nil, Internalf(err, "generating booking reference")
    }
    bookings := make([]model.Booking, 0, n)
    ids := make([]string, 0, n)
    for i, p := range in.Passengers {
        email := p.PassengerEmail
        if email == "" {
            email = in.ContactEmail
        }
        phone := p.PassengerPhone
        if phone == "" {
            phone = in.ContactPhone
        }
        bookings = append(bookings, model.Booking{
            ID:             uuid.NewString(),
            Reference:      fmt.Sprintf("%s-%d", reference, i+1),
            UserID:         in.UserID,
            FlightID:       in.FlightID,
            SeatID:         p.SeatID,
            Status:         model.BookingConfirmed,
            TotalAmount:    lineBySeat[p.SeatID].Total,
            PassengerName:  p.PassengerName,
            PassengerEmail: email,
            PassengerPhone: phone,
            BookingDate:    &now,
            PaymentDate:    &now,
        })
        ids = append(ids, p.SeatID)
    }
    if err := s.bookings.CreateBulkTx(ctx, tx, bookings); err != nil {
        return nil, Internalf(err, "persisting %d bookings", n)
    }
    affected, err := s.seats.MarkBookedBulkTx(ctx, tx, ids, in.UserID)
    if err != nil {
        return nil, Internalf(err, "marking %d seats booked", n)
    }
    if affected != int64(n) {
        // A hold was lost between validation and commit; abort the whole
        // group.  The caller's surviving holds stay in place for retry.
        return nil, Conflictf("seat states changed while booking; no seats were booked")
    }
    if err := s.flights.AdjustAvailableTx(ctx, tx, in.FlightID, -n); err != nil {
        return nil, Internalf(err, "decrementing available seats")
    }
    if err := tx.Commit(); err != nil {
        return nil, Internalf(err, "committing group booking transaction")
    }
    committed = true

    details := make([]model.BookingDetail, 0, n)
    for _, b := range bookings {
        line := lineBySeat[b.SeatID]
        details = append(details, model.BookingDetail{
            Booking:       b,
            FlightNumber:  flight.FlightNumber,
            DepartureTime: flight.DepartureTime,
            SeatNumber:    line.SeatNumber,
            SeatClassName: line.SeatClass,
            Currency:      quote.Currency,
        })
    }
    return &GroupBookingResult{
        Reference: reference,
        Bookings:  details,
        Total:     quote.Total,
        Currency:  quote.Currency,
        ByClass:   quote.ByClass,
    }, nil
}

// CancelBooking reverses a confirmed booking: the booking becomes
// cancelled, its seat returns to available with hold fields cleared, and
// the flight counter is incremented, all in one unit of work.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID string) (*model.BookingDetail, error) {
    tx, err := s.db.Begin(ctx)
    if err != nil {
        return nil, Internalf(err, "starting cancellation transaction")
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    detail, err := s.bookings.GetForUpdateTx(ctx, tx, bookingID)
    if err != nil {
        if errors.Is(err, repository.ErrBookingNotFound) {
            monitoring.BookingOp("cancel", "not_found")
            return nil, NotFoundf("booking %s not found", bookingID)
        }
        return nil, Internalf(err, "locking booking %s", bookingID)
    }
    if detail.Status == model.BookingCancelled {
        monitoring.BookingOp("cancel", "bad_request")
        return nil, BadRequestf("booking %s is already cancelled", detail.Reference)
    }
    if detail.DepartureTime.Before(s.now().UTC()) {
        monitoring.BookingOp("cancel", "bad_request")
        return nil, BadRequestf("cannot cancel booking %s for a departed flight", detail.Reference)
    }

    if err := s.bookings.MarkCancelledTx(ctx, tx, bookingID); err != nil {
        return nil, Internalf(err, "cancelling booking %s", detail.Reference)
    }
    if err := s.seats.MarkAvailableTx(ctx, tx, detail.SeatID); err != nil {
        return nil, Internalf(err, "releasing seat %s", detail.SeatNumber)
    }
    if err := s.flights.AdjustAvailableTx(ctx, tx, detail.FlightID, 1); err != nil {
        return nil, Internalf(err, "incrementing available seats")
    }
    if err := tx.Commit(); err != nil {
        return nil, Internalf(err, "committing cancellation")
    }
    committed = true
    monitoring.BookingOp("cancel", "success")

    detail.Status = model.BookingCancelled
    return detail, nil
}

// FindBooking returns one booking by ID.
func (s *BookingService) FindBooking(ctx context.Context, bookingID string) (*model.BookingDetail, error) {
    d, err := s.bookings.GetByID(ctx, bookingID)
    if err != nil {
        if errors.Is(err, repository.ErrBookingNotFound) {
            return nil, NotFoundf("booking %s not found", bookingID)
        }
        return nil, Internalf(err, "reading booking %s", bookingID)
    }
    return d, nil
}

// FindBookingByReference returns one booking by its reference string.
func (s *BookingService) FindBookingByReference(ctx context.Context, reference string) (*model.BookingDetail, error) {
    d, err := s.bookings.GetByReference(ctx, reference)
    if err != nil {
        if errors.Is(err, repository.ErrBookingNotFound) {
            return nil, NotFoundf("booking %s not found", reference)
        }
        return nil, Internalf(err, "reading booking %s", reference)
    }
    return d, nil
}

// ListBookingsByUser returns a user's bookings newest first, verifying
// the user exists.
func (s *BookingService) ListBookingsByUser(ctx context.Context, userID string) ([]model.BookingDetail, error) {
    if _, err := s.users.GetByID(ctx, userID); err != nil {
        if errors.Is(err, repository.ErrUserNotFound) {
            return nil, NotFoundf("user %s not found", userID)
        }
        return nil, Internalf(err, "reading user %s", userID)
    }
    list, err := s.bookings.ListByUser(ctx, userID)
    if err != nil {
        return nil, Internalf(err, "listing bookings for user %s", userID)
    }
    return list, nil
}

// ListBookings returns every booking newest first.
func (s *BookingService) ListBookings(ctx context.Context) ([]model.BookingDetail, error) {
    list, err := s.bookings.ListAll(ctx)
    if err != nil {
        return nil, Internalf(err, "listing bookings")
    }
    return list, nil
}

// BookingStats returns aggregate booking counts by status.
func (s *BookingService) BookingStats(ctx context.Context) (*model.BookingStats, error) {
    stats, err := s.bookings.Stats(ctx)
    if err != nil {
        return nil, Internalf(err, "reading booking stats")
    }
    return stats, nil
}

// ListFlightSeats returns the seat map of a flight for display.
func (s *BookingService) ListFlightSeats(ctx context.Context, flightID string) ([]model.Seat, error) {
    if _, err := s.flights.GetByID(ctx, flightID); err != nil {
        if errors.Is(err, repository.ErrFlightNotFound) {
            return nil, NotFoundf("flight %s not found", flightID)
        }
        return nil, Internalf(err, "reading flight %s", flightID)
    }
    seats, err := s.seats.ListByFlight(ctx, flightID)
    if err != nil {
        return nil, Internalf(err, "listing seats for flight %s", flightID)
    }
    return seats, nil
}
