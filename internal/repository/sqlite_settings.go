package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/alexanderramin/itinera/internal/db"
	"github.com/alexanderramin/itinera/internal/domain"
)

// SQLiteBudgetRepo implements BudgetRepo on a single-row table.
type SQLiteBudgetRepo struct {
	db db.DBTX
}

func NewSQLiteBudgetRepo(db db.DBTX) *SQLiteBudgetRepo {
	return &SQLiteBudgetRepo{db: db}
}

func (r *SQLiteBudgetRepo) Get(ctx context.Context) (domain.BudgetSettings, bool, error) {
	var s domain.BudgetSettings
	err := r.db.QueryRowContext(ctx,
		`SELECT limit_amount, currency, exchange_rate FROM budget_settings WHERE id = 1`,
	).Scan(&s.Limit, &s.Currency, &s.ExchangeRate)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultBudgetSettings(), false, nil
	}
	if err != nil {
		return domain.BudgetSettings{}, false, fmt.Errorf("loading budget settings: %w", err)
	}
	return s, true, nil
}

func (r *SQLiteBudgetRepo) Upsert(ctx context.Context, s domain.BudgetSettings) error {
	query := `INSERT INTO budget_settings (id, limit_amount, currency, exchange_rate)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			limit_amount = excluded.limit_amount,
			currency = excluded.currency,
			exchange_rate = excluded.exchange_rate`
	if _, err := r.db.ExecContext(ctx, query, s.Limit, s.Currency, s.ExchangeRate); err != nil {
		return fmt.Errorf("saving budget settings: %w", err)
	}
	return nil
}

const (
	stateActivePlan = "active_plan"
	stateActiveDay  = "active_day"
)

// SQLiteStateRepo implements StateRepo on the app_state key/value table.
type SQLiteStateRepo struct {
	db db.DBTX
}

func NewSQLiteStateRepo(db db.DBTX) *SQLiteStateRepo {
	return &SQLiteStateRepo{db: db}
}

// GetSelection returns the stored selection. Missing or unparsable values
// come back as "" and 1; the store clamps them against the real plans.
func (r *SQLiteStateRepo) GetSelection(ctx context.Context) (string, int, error) {
	planID, err := r.get(ctx, stateActivePlan)
	if err != nil {
		return "", 0, err
	}
	dayStr, err := r.get(ctx, stateActiveDay)
	if err != nil {
		return "", 0, err
	}
	day, convErr := strconv.Atoi(dayStr)
	if convErr != nil || day < 1 {
		day = 1
	}
	return planID, day, nil
}

func (r *SQLiteStateRepo) SaveSelection(ctx context.Context, planID string, day int) error {
	if err := r.put(ctx, stateActivePlan, planID); err != nil {
		return err
	}
	return r.put(ctx, stateActiveDay, strconv.Itoa(day))
}

func (r *SQLiteStateRepo) get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteStateRepo) put(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
