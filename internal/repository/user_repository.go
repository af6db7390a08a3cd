package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
)

// UserRepo reads user accounts.  Account management is an external
// concern; the engine only verifies existence of booking owners.
type UserRepo struct {
    db *sql.DB
}

// NewUserRepo returns a UserRepo bound to the provided database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = `id, first_name, last_name, email, phone, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
    var u model.User
    var phone sql.NullString
    err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &phone, &u.CreatedAt, &u.UpdatedAt)
    if err != nil {
        return nil, err
    }
    if phone.Valid {
        p := phone.String
        u.Phone = &p
    }
    return &u, nil
}

// GetByID fetches a user.  Returns ErrUserNotFound when no row matches.
func (r *UserRepo) GetByID(ctx context.Context, userID string) (*model.User, error) {
    const q = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
    u, err := scanUser(r.db.QueryRowContext(ctx, q, userID))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrUserNotFound
    }
    return u, err
}

// GetByIDTx fetches a user inside the booking transaction.
func (r *UserRepo) GetByIDTx(ctx context.Context, tx Tx, userID string) (*model.User, error) {
    stx, err := conn(tx)
    if err != nil {
        return nil, err
    }
    const q = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
    u, err := scanUser(stx.QueryRowContext(ctx, q, userID))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrUserNotFound
    }
    return u, err
}
