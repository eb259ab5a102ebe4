package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/itinera/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func stateValue(t *testing.T, database *sql.DB, key string) (string, bool) {
	t.Helper()
	var val string
	err := database.QueryRow(`SELECT value FROM app_state WHERE key = ?`, key).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	require.NoError(t, err)
	return val, true
}

func putState(ctx context.Context, tx db.DBTX, key, value string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO app_state (key, value) VALUES (?, ?)`, key, value)
	return err
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := putState(ctx, tx, "active_plan", "p1"); err != nil {
			return err
		}
		return putState(ctx, tx, "active_day", "2")
	})
	require.NoError(t, err)

	plan, ok := stateValue(t, database, "active_plan")
	assert.True(t, ok)
	assert.Equal(t, "p1", plan)
	day, ok := stateValue(t, database, "active_day")
	assert.True(t, ok)
	assert.Equal(t, "2", day)
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := openUoW(t)
	boom := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := putState(ctx, tx, "active_plan", "p2"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, ok := stateValue(t, database, "active_plan")
	assert.False(t, ok, "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = putState(ctx, tx, "active_plan", "p3")
			panic("boom")
		})
	})

	_, ok := stateValue(t, database, "active_plan")
	assert.False(t, ok, "row should not exist after panic rollback")
}

func TestWithinTx_ConstraintViolationRollsBackEarlierWrites(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := putState(ctx, tx, "active_day", "1"); err != nil {
			return err
		}
		return putState(ctx, tx, "active_day", "2")
	})
	require.Error(t, err)

	_, ok := stateValue(t, database, "active_day")
	assert.False(t, ok)
}
