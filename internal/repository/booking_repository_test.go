package repository

import (
    "context"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/shopspring/decimal"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
)

func bookingDetailRow() *sqlmock.Rows {
    now := time.Now()
    return sqlmock.NewRows([]string{
        "id", "booking_reference", "user_id", "flight_id", "seat_id",
        "status", "total_amount", "passenger_name", "passenger_email", "passenger_phone",
        "booking_date", "payment_date", "created_at", "updated_at",
        "flight_number", "departure_time", "seat_number", "name",
    }).AddRow("bk1", "IMD-ABC1234", "alice", "fl1", "s1",
        "confirmed", "120.00", "Alice Doe", "alice@example.com", nil,
        now, now, now, now,
        "AA100", now.Add(48*time.Hour), "1A", "Economy")
}

func TestBookingRepoCreateTx(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewBookingRepo(db)

    now := time.Now().UTC()
    mock.ExpectBegin()
    mock.ExpectExec(`INSERT INTO bookings`).
        WithArgs("bk1", "IMD-ABC1234", "alice", "fl1", "s1", model.BookingConfirmed,
            decimal.NewFromInt(120), "Alice Doe", "alice@example.com", nil, now, now).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectCommit()

    ctx := context.Background()
    tx, err := NewDB(db).Begin(ctx)
    require.NoError(t, err)

    err = repo.CreateTx(ctx, tx, &model.Booking{
        ID:             "bk1",
        Reference:      "IMD-ABC1234",
        UserID:         "alice",
        FlightID:       "fl1",
        SeatID:         "s1",
        Status:         model.BookingConfirmed,
        TotalAmount:    decimal.NewFromInt(120),
        PassengerName:  "Alice Doe",
        PassengerEmail: "alice@example.com",
        BookingDate:    &now,
        PaymentDate:    &now,
    })
    require.NoError(t, err)
    require.NoError(t, tx.Commit())
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepoCreateBulkTx(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewBookingRepo(db)

    mock.ExpectBegin()
    // One multi-VALUES statement, not one insert per passenger.
    mock.ExpectExec(`INSERT INTO bookings.+VALUES \(\?, \?, \?, \?, \?, \?, \?, \?, \?, \?, \?, \?\),\(\?, \?, \?, \?, \?, \?, \?, \?, \?, \?, \?, \?\)`).
        WillReturnResult(sqlmock.NewResult(0, 2))
    mock.ExpectCommit()

    ctx := context.Background()
    tx, err := NewDB(db).Begin(ctx)
    require.NoError(t, err)

    err = repo.CreateBulkTx(ctx, tx, []model.Booking{
        {ID: "bk1", Reference: "IMD-X-1", UserID: "alice", FlightID: "fl1", SeatID: "s1", Status: model.BookingConfirmed},
        {ID: "bk2", Reference: "IMD-X-2", UserID: "alice", FlightID: "fl1", SeatID: "s2", Status: model.BookingConfirmed},
    })
    require.NoError(t, err)
    require.NoError(t, tx.Commit())
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepoGetByReference(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewBookingRepo(db)

    mock.ExpectQuery(`WHERE b\.booking_reference = \?`).
        WithArgs("IMD-ABC1234").
        WillReturnRows(bookingDetailRow())

    d, err := repo.GetByReference(context.Background(), "IMD-ABC1234")
    require.NoError(t, err)
    assert.Equal(t, "bk1", d.ID)
    assert.Equal(t, "AA100", d.FlightNumber)
    assert.Equal(t, "Economy", d.SeatClassName)
    assert.True(t, d.TotalAmount.Equal(decimal.NewFromInt(120)))
    require.NotNil(t, d.BookingDate)
    assert.Empty(t, d.PassengerPhone, "NULL phone scans to empty string")
}

func TestBookingRepoGetByIDNotFound(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewBookingRepo(db)

    mock.ExpectQuery(`WHERE b\.id = \?`).
        WithArgs("ghost").
        WillReturnRows(sqlmock.NewRows([]string{"id"}))

    _, err = repo.GetByID(context.Background(), "ghost")
    assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestBookingRepoStats(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewBookingRepo(db)

    mock.ExpectQuery(`FROM bookings`).
        WillReturnRows(sqlmock.NewRows([]string{"confirmed", "cancelled", "pending", "total"}).
            AddRow(7, 2, 1, 10))

    stats, err := repo.Stats(context.Background())
    require.NoError(t, err)
    assert.Equal(t, 7, stats.Confirmed)
    assert.Equal(t, 2, stats.Cancelled)
    assert.Equal(t, 1, stats.Pending)
    assert.Equal(t, 10, stats.Total)
}
