package repository

import (
    "context"
    "database/sql"
    "fmt"
)

// Tx is the opaque unit-of-work handle threaded through transactional
// repository methods.  Callers obtain one from DB.Begin, pass it to the
// *Tx methods of the repositories, and finish with Commit or Rollback.
// Service-level tests substitute their own implementations behind the
// same interfaces, which is why repositories do not expose *sql.Tx
// directly.
type Tx interface {
    Commit() error
    Rollback() error
}

// DB begins units of work.  The production implementation wraps *sql.DB;
// transactions run at the connection's default isolation level and rely on
// explicit FOR UPDATE locks for the rows that matter.
type DB interface {
    Begin(ctx context.Context) (Tx, error)
}

type sqlDB struct {
    db *sql.DB
}

type sqlTx struct {
    *sql.Tx
}

// NewDB wraps a *sql.DB so services can open transactions without
// depending on database/sql.
func NewDB(db *sql.DB) DB { return &sqlDB{db: db} }

func (d *sqlDB) Begin(ctx context.Context) (Tx, error) {
    tx, err := d.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    return &sqlTx{Tx: tx}, nil
}

// conn unwraps the handle created by NewDB.  Repositories only ever see
// handles from their own DB, so a foreign handle is a wiring bug.
func conn(tx Tx) (*sql.Tx, error) {
    s, ok := tx.(*sqlTx)
    if !ok {
        return nil, fmt.Errorf("repository: unsupported transaction handle %T", tx)
    }
    return s.Tx, nil
}
