package repository

import (
    "context"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
)

func flightRows(available int) *sqlmock.Rows {
    now := time.Now()
    return sqlmock.NewRows([]string{
        "id", "flight_number", "origin", "destination", "departure_time", "arrival_time",
        "aircraft", "status", "total_seats", "available_seats", "created_at", "updated_at",
    }).AddRow("fl1", "AA100", "JFK", "LAX", now.Add(48*time.Hour), now.Add(54*time.Hour),
        "A320", "on_time", 180, available, now, now)
}

func TestFlightRepoGetByID(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewFlightRepo(db)

    mock.ExpectQuery(`SELECT .+ FROM flights WHERE id = \?`).
        WithArgs("fl1").
        WillReturnRows(flightRows(42))

    f, err := repo.GetByID(context.Background(), "fl1")
    require.NoError(t, err)
    assert.Equal(t, "AA100", f.FlightNumber)
    assert.Equal(t, model.FlightOnTime, f.Status)
    assert.Equal(t, 42, f.AvailableSeats)
}

func TestFlightRepoGetForUpdateTx(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewFlightRepo(db)

    mock.ExpectBegin()
    mock.ExpectQuery(`SELECT .+ FROM flights WHERE id = \? FOR UPDATE`).
        WithArgs("fl1").
        WillReturnRows(flightRows(1))
    mock.ExpectRollback()

    ctx := context.Background()
    tx, err := NewDB(db).Begin(ctx)
    require.NoError(t, err)
    defer tx.Rollback()

    f, err := repo.GetForUpdateTx(ctx, tx, "fl1")
    require.NoError(t, err)
    assert.Equal(t, 1, f.AvailableSeats)
}

func TestFlightRepoAdjustAvailableTx(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewFlightRepo(db)

    mock.ExpectBegin()
    mock.ExpectExec(`UPDATE flights SET available_seats = available_seats \+ \? WHERE id = \?`).
        WithArgs(-1, "fl1").
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectCommit()

    ctx := context.Background()
    tx, err := NewDB(db).Begin(ctx)
    require.NoError(t, err)

    require.NoError(t, repo.AdjustAvailableTx(ctx, tx, "fl1", -1))
    require.NoError(t, tx.Commit())
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlightRepoAdjustAvailableTxMissingFlight(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewFlightRepo(db)

    mock.ExpectBegin()
    mock.ExpectExec(`UPDATE flights SET available_seats`).
        WithArgs(1, "ghost").
        WillReturnResult(sqlmock.NewResult(0, 0))
    mock.ExpectRollback()

    ctx := context.Background()
    tx, err := NewDB(db).Begin(ctx)
    require.NoError(t, err)
    defer tx.Rollback()

    err = repo.AdjustAvailableTx(ctx, tx, "ghost", 1)
    assert.ErrorIs(t, err, ErrFlightNotFound)
}
