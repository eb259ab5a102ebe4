package db

import (
	"context"
	"database/sql"
)

// DBTX is what the plan, budget and state repositories query through. Reads
// such as listing plans run on the *sql.DB; the workspace hands the same
// repositories a *sql.Tx inside SQLiteUnitOfWork.WithinTx so a plan snapshot
// and the active plan/day selection are written together.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
