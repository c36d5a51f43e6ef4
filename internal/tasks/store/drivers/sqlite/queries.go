package sqlite

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so the same queries run
// inside or outside a transaction.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries binds the repositories to a connection or transaction.
type Queries struct {
	db DBTX
}

func newQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

const userColumns = `id, username, email, password, created_at`

const taskColumns = `id, title, description, status, priority, user_id, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}
