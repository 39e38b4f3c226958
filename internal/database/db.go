package database

import (
	"context"
	"database/sql"
)

// DB is the narrow handle repositories and health checks depend on. SQLDB
// exposes the same pool through database/sql for the migration runner.
type DB interface {
	Ping(ctx context.Context) error
	Close() error

	Exec(ctx context.Context, query string, args ...any) (int64, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

	SQLDB() *sql.DB
}

type Row interface {
	Scan(dest ...any) error
}
