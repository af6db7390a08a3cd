package service

import (
    "context"
    "fmt"
    "sync"
    "time"

    "github.com/shopspring/decimal"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
    "github.com/iliyamo/airline-seat-reservation/internal/repository"
)

// fakeStore is an in-memory stand-in for the MySQL repositories.  Its
// transactions hold the store mutex from Begin until Commit or Rollback,
// which serialises concurrent transactions the same way row locks do in
// the real database, so the concurrency tests exercise real interleaving.
// Rollback restores a snapshot taken at Begin.
type fakeStore struct {
    mu         sync.Mutex
    seats      map[string]*model.Seat
    flights    map[string]*model.Flight
    fares      map[string]*model.Fare // keyed flightID "/" classID
    classNames map[string]string
    bookings   map[string]*model.Booking
    users      map[string]*model.User
}

func newFakeStore() *fakeStore {
    return &fakeStore{
        seats:      make(map[string]*model.Seat),
        flights:    make(map[string]*model.Flight),
        fares:      make(map[string]*model.Fare),
        classNames: make(map[string]string),
        bookings:   make(map[string]*model.Booking),
        users:      make(map[string]*model.User),
    }
}

func fareKey(flightID, classID string) string { return flightID + "/" + classID }

func (f *fakeStore) addFlight(id, number string, status model.FlightStatus, available int, departure time.Time) {
    f.flights[id] = &model.Flight{
        ID:             id,
        FlightNumber:   number,
        Status:         status,
        TotalSeats:     available,
        AvailableSeats: available,
        DepartureTime:  departure,
    }
}

func (f *fakeStore) addSeat(id, flightID, classID, number string, status model.SeatStatus) {
    f.seats[id] = &model.Seat{ID: id, FlightID: flightID, SeatClassID: classID, SeatNumber: number, Status: status}
}

func (f *fakeStore) addFare(flightID, classID string, base, tax, fee float64) {
    b := decimal.NewFromFloat(base)
    t := decimal.NewFromFloat(tax)
    s := decimal.NewFromFloat(fee)
    f.fares[fareKey(flightID, classID)] = &model.Fare{
        ID:          fareKey(flightID, classID),
        FlightID:    flightID,
        SeatClassID: classID,
        BasePrice:   b,
        Tax:         t,
        ServiceFee:  s,
        TotalPrice:  b.Add(t).Add(s),
        Currency:    "USD",
        IsActive:    true,
    }
}

func (f *fakeStore) holdSeat(id, userID string, expiresAt time.Time) {
    seat := f.seats[id]
    seat.Status = model.SeatBlocked
    seat.HoldUserID = &userID
    seat.HoldExpiresAt = &expiresAt
}

// fakeTx implements repository.Tx.  The store mutex is held for the
// transaction's whole lifetime.
type fakeTx struct {
    store    *fakeStore
    snapshot *fakeStore
    done     bool
}

func (f *fakeStore) Begin(ctx context.Context) (repository.Tx, error) {
    f.mu.Lock()
    return &fakeTx{store: f, snapshot: f.copyLocked()}, nil
}

func (t *fakeTx) Commit() error {
    if t.done {
        return fmt.Errorf("transaction already finished")
    }
    t.done = true
    t.store.mu.Unlock()
    return nil
}

func (t *fakeTx) Rollback() error {
    if t.done {
        return fmt.Errorf("transaction already finished")
    }
    t.done = true
    t.store.restoreLocked(t.snapshot)
    t.store.mu.Unlock()
    return nil
}

// copyLocked deep-copies the mutable tables.  Caller holds mu.
func (f *fakeStore) copyLocked() *fakeStore {
    c := newFakeStore()
    for id, s := range f.seats {
        cp := *s
        c.seats[id] = &cp
    }
    for id, fl := range f.flights {
        cp := *fl
        c.flights[id] = &cp
    }
    for id, b := range f.bookings {
        cp := *b
        c.bookings[id] = &cp
    }
    return c
}

func (f *fakeStore) restoreLocked(snap *fakeStore) {
    f.seats = snap.seats
    f.flights = snap.flights
    f.bookings = snap.bookings
}

// Seat registry and store methods.  Non-transactional methods take the
// mutex briefly; *Tx methods run with the mutex already held by Begin.

func (f *fakeStore) GetByID(ctx context.Context, seatID string) (*model.Seat, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    seat, ok := f.seats[seatID]
    if !ok {
        return nil, repository.ErrSeatNotFound
    }
    cp := *seat
    return &cp, nil
}

func (f *fakeStore) GetByIDs(ctx context.Context, seatIDs []string) ([]model.Seat, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    out := make([]model.Seat, 0, len(seatIDs))
    for _, id := range seatIDs {
        if seat, ok := f.seats[id]; ok {
            out = append(out, *seat)
        }
    }
    return out, nil
}

func (f *fakeStore) ListByFlight(ctx context.Context, flightID string) ([]model.Seat, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    var out []model.Seat
    for _, seat := range f.seats {
        if seat.FlightID == flightID {
            out = append(out, *seat)
        }
    }
    return out, nil
}

func (f *fakeStore) Block(ctx context.Context, seatID, userID string, expiresAt time.Time) (bool, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    seat, ok := f.seats[seatID]
    if !ok || seat.Status != model.SeatAvailable {
        return false, nil
    }
    seat.Status = model.SeatBlocked
    seat.HoldUserID = &userID
    seat.HoldExpiresAt = &expiresAt
    return true, nil
}

func (f *fakeStore) ExtendHold(ctx context.Context, seatID, userID string, expiresAt time.Time) (bool, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    seat, ok := f.seats[seatID]
    if !ok || !seat.HeldBy(userID) {
        return false, nil
    }
    seat.HoldExpiresAt = &expiresAt
    return true, nil
}

func (f *fakeStore) Release(ctx context.Context, seatID, userID string) (bool, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    return f.releaseLocked(seatID, userID), nil
}

func (f *fakeStore) releaseLocked(seatID, userID string) bool {
    seat, ok := f.seats[seatID]
    if !ok || seat.Status != model.SeatBlocked {
        return false
    }
    if userID != "" && !seat.HeldBy(userID) {
        return false
    }
    seat.Status = model.SeatAvailable
    seat.HoldUserID = nil
    seat.HoldExpiresAt = nil
    return true
}

func (f *fakeStore) BlockBulk(ctx context.Context, seatIDs []string, userID string, expiresAt time.Time) (int64, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    var affected int64
    for _, id := range seatIDs {
        seat, ok := f.seats[id]
        if !ok {
            continue
        }
        if seat.Status == model.SeatAvailable || seat.HeldBy(userID) {
            seat.Status = model.SeatBlocked
            seat.HoldUserID = &userID
            seat.HoldExpiresAt = &expiresAt
            affected++
        }
    }
    return affected, nil
}

func (f *fakeStore) ReleaseBulk(ctx context.Context, seatIDs []string, userID string) (int64, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    var affected int64
    for _, id := range seatIDs {
        if f.releaseLocked(id, userID) {
            affected++
        }
    }
    return affected, nil
}

func (f *fakeStore) ReclaimExpired(ctx context.Context, cutoff time.Time) (int64, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    var reclaimed int64
    for _, seat := range f.seats {
        if seat.Status == model.SeatBlocked && seat.HoldExpiresAt != nil && seat.HoldExpiresAt.Before(cutoff) {
            seat.Status = model.SeatAvailable
            seat.HoldUserID = nil
            seat.HoldExpiresAt = nil
            reclaimed++
        }
    }
    return reclaimed, nil
}

func (f *fakeStore) ClassNames(ctx context.Context, classIDs []string) (map[string]string, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    out := make(map[string]string, len(classIDs))
    for _, id := range classIDs {
        if name, ok := f.classNames[id]; ok {
            out[id] = name
        }
    }
    return out, nil
}

func (f *fakeStore) GetForUpdateTx(ctx context.Context, tx repository.Tx, seatID, flightID string) (*model.Seat, string, error) {
    seat, ok := f.seats[seatID]
    if !ok || seat.FlightID != flightID {
        return nil, "", repository.ErrSeatNotFound
    }
    cp := *seat
    return &cp, f.classNames[seat.SeatClassID], nil
}

func (f *fakeStore) MarkBookedTx(ctx context.Context, tx repository.Tx, seatID string) error {
    seat, ok := f.seats[seatID]
    if !ok {
        return repository.ErrSeatNotFound
    }
    seat.Status = model.SeatBooked
    seat.HoldUserID = nil
    seat.HoldExpiresAt = nil
    return nil
}

func (f *fakeStore) MarkBookedBulkTx(ctx context.Context, tx repository.Tx, seatIDs []string, userID string) (int64, error) {
    var affected int64
    for _, id := range seatIDs {
        seat, ok := f.seats[id]
        if !ok || !seat.HeldBy(userID) {
            continue
        }
        seat.Status = model.SeatBooked
        seat.HoldUserID = nil
        seat.HoldExpiresAt = nil
        affected++
    }
    return affected, nil
}

func (f *fakeStore) MarkAvailableTx(ctx context.Context, tx repository.Tx, seatID string) error {
    seat, ok := f.seats[seatID]
    if !ok {
        return repository.ErrSeatNotFound
    }
    seat.Status = model.SeatAvailable
    seat.HoldUserID = nil
    seat.HoldExpiresAt = nil
    return nil
}

// Flight directory methods.

func (f *fakeStore) GetFlight(ctx context.Context, flightID string) (*model.Flight, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    return f.flightLocked(flightID)
}

func (f *fakeStore) flightLocked(flightID string) (*model.Flight, error) {
    fl, ok := f.flights[flightID]
    if !ok {
        return nil, repository.ErrFlightNotFound
    }
    cp := *fl
    return &cp, nil
}

// fakeFlights adapts fakeStore to the FlightDirectory interface; the
// method set collides with the seat registry's GetByID otherwise.
type fakeFlights struct{ store *fakeStore }

func (f fakeFlights) GetByID(ctx context.Context, flightID string) (*model.Flight, error) {
    return f.store.GetFlight(ctx, flightID)
}

func (f fakeFlights) GetForUpdateTx(ctx context.Context, tx repository.Tx, flightID string) (*model.Flight, error) {
    return f.store.flightLocked(flightID)
}

func (f fakeFlights) AdjustAvailableTx(ctx context.Context, tx repository.Tx, flightID string, delta int) error {
    fl, ok := f.store.flights[flightID]
    if !ok {
        return repository.ErrFlightNotFound
    }
    fl.AvailableSeats += delta
    return nil
}

// fakeFares adapts fakeStore to FareLookup.
type fakeFares struct{ store *fakeStore }

func (f fakeFares) ActiveByFlightAndClass(ctx context.Context, flightID, seatClassID string) (*model.Fare, error) {
    f.store.mu.Lock()
    defer f.store.mu.Unlock()
    return f.fareLocked(flightID, seatClassID)
}

func (f fakeFares) ActiveByFlightAndClassTx(ctx context.Context, tx repository.Tx, flightID, seatClassID string) (*model.Fare, error) {
    return f.fareLocked(flightID, seatClassID)
}

func (f fakeFares) fareLocked(flightID, seatClassID string) (*model.Fare, error) {
    fare, ok := f.store.fares[fareKey(flightID, seatClassID)]
    if !ok || !fare.IsActive {
        return nil, repository.ErrFareNotFound
    }
    cp := *fare
    return &cp, nil
}

// fakeBookings adapts fakeStore to BookingStore.
type fakeBookings struct{ store *fakeStore }

func (f fakeBookings) CreateTx(ctx context.Context, tx repository.Tx, b *model.Booking) error {
    cp := *b
    f.store.bookings[b.ID] = &cp
    return nil
}

func (f fakeBookings) CreateBulkTx(ctx context.Context, tx repository.Tx, bookings []model.Booking) error {
    for i := range bookings {
        cp := bookings[i]
        f.store.bookings[cp.ID] = &cp
    }
    return nil
}

func (f fakeBookings) detailLocked(b *model.Booking) *model.BookingDetail {
    d := &model.BookingDetail{Booking: *b}
    if fl, ok := f.store.flights[b.FlightID]; ok {
        d.FlightNumber = fl.FlightNumber
        d.DepartureTime = fl.DepartureTime
    }
    if seat, ok := f.store.seats[b.SeatID]; ok {
        d.SeatNumber = seat.SeatNumber
        d.SeatClassName = f.store.classNames[seat.SeatClassID]
    }
    return d
}

func (f fakeBookings) GetForUpdateTx(ctx context.Context, tx repository.Tx, bookingID string) (*model.BookingDetail, error) {
    b, ok := f.store.bookings[bookingID]
    if !ok {
        return nil, repository.ErrBookingNotFound
    }
    return f.detailLocked(b), nil
}

func (f fakeBookings) MarkCancelledTx(ctx context.Context, tx repository.Tx, bookingID string) error {
    b, ok := f.store.bookings[bookingID]
    if !ok {
        return repository.ErrBookingNotFound
    }
    b.Status = model.BookingCancelled
    return nil
}

func (f fakeBookings) GetByID(ctx context.Context, bookingID string) (*model.BookingDetail, error) {
    f.store.mu.Lock()
    defer f.store.mu.Unlock()
    b, ok := f.store.bookings[bookingID]
    if !ok {
        return nil, repository.ErrBookingNotFound
    }
    return f.detailLocked(b), nil
}

func (f fakeBookings) GetByReference(ctx context.Context, reference string) (*model.BookingDetail, error) {
    f.store.mu.Lock()
    defer f.store.mu.Unlock()
    for _, b := range f.store.bookings {
        if b.Reference == reference {
            return f.detailLocked(b), nil
        }
    }
    return nil, repository.ErrBookingNotFound
}

func (f fakeBookings) ListByUser(ctx context.Context, userID string) ([]model.BookingDetail, error) {
    f.store.mu.Lock()
    defer f.store.mu.Unlock()
    var out []model.BookingDetail
    for _, b := range f.store.bookings {
        if b.UserID == userID {
            out = append(out, *f.detailLocked(b))
        }
    }
    return out, nil
}

func (f fakeBookings) ListAll(ctx context.Context) ([]model.BookingDetail, error) {
    f.store.mu.Lock()
    defer f.store.mu.Unlock()
    var out []model.BookingDetail
    for _, b := range f.store.bookings {
        out = append(out, *f.detailLocked(b))
    }
    return out, nil
}

func (f fakeBookings) Stats(ctx context.Context) (*model.BookingStats, error) {
    f.store.mu.Lock()
    defer f.store.mu.Unlock()
    stats := &model.BookingStats{}
    for _, b := range f.store.bookings {
        switch b.Status {
        case model.BookingConfirmed:
            stats.Confirmed++
        case model.BookingCancelled:
            stats.Cancelled++
        case model.BookingPending:
            stats.Pending++
        }
        stats.Total++
    }
    return stats, nil
}

// fakeUsers adapts fakeStore to UserDirectory.
type fakeUsers struct{ store *fakeStore }

func (f fakeUsers) GetByID(ctx context.Context, userID string) (*model.User, error) {
    f.store.mu.Lock()
    defer f.store.mu.Unlock()
    return f.userLocked(userID)
}

func (f fakeUsers) GetByIDTx(ctx context.Context, tx repository.Tx, userID string) (*model.User, error) {
    return f.userLocked(userID)
}

func (f fakeUsers) userLocked(userID string) (*model.User, error) {
    u, ok := f.store.users[userID]
    if !ok {
        return nil, repository.ErrUserNotFound
    }
    cp := *u
    return &cp, nil
}
