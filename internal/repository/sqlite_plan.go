package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/itinera/internal/db"
	"github.com/alexanderramin/itinera/internal/domain"
)

// SQLitePlanRepo implements PlanRepo. The full plan is stored as a JSON
// document; the scalar columns duplicate it for listing and ordering.
type SQLitePlanRepo struct {
	db db.DBTX
}

func NewSQLitePlanRepo(db db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: db}
}

const planColumns = `id, name, region, start_date, end_date, total_days, document, created_at, updated_at`

func (r *SQLitePlanRepo) Save(ctx context.Context, p domain.Plan) error {
	if errs := p.Validate(); len(errs) > 0 {
		return fmt.Errorf("refusing to save invalid plan %s: %w", p.ID, errors.Join(errs...))
	}
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding plan document: %w", err)
	}

	query := `INSERT INTO plans (` + planColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			region = excluded.region,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			total_days = excluded.total_days,
			document = excluded.document,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Region,
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.EndDate, dateLayout),
		p.TotalDays,
		string(doc),
		p.CreatedAt.UTC().Format(timestampLayout),
		p.UpdatedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (domain.Plan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM plans WHERE id = ?`, id)
	p, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Plan{}, fmt.Errorf("%w: %q", domain.ErrPlanNotFound, id)
	}
	return p, err
}

func (r *SQLitePlanRepo) List(ctx context.Context) ([]domain.Plan, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+planColumns+` FROM plans ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var plans []domain.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return plans, nil
}

func (r *SQLitePlanRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %q", domain.ErrPlanNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanPlan decodes the document column; the duplicated columns only serve
// as a consistency check on total_days.
func scanPlan(row rowScanner) (domain.Plan, error) {
	var (
		id, name, region, doc, createdAt, updatedAt string
		startDate, endDate                          sql.NullString
		totalDays                                   int
	)
	if err := row.Scan(&id, &name, &region, &startDate, &endDate, &totalDays, &doc, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Plan{}, err
		}
		return domain.Plan{}, fmt.Errorf("scanning plan: %w", err)
	}

	var p domain.Plan
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return domain.Plan{}, fmt.Errorf("decoding plan %s document: %w", id, err)
	}
	if p.ID != id || p.TotalDays != totalDays {
		return domain.Plan{}, fmt.Errorf("plan %s document does not match its row", id)
	}
	if p.Schedule == nil {
		p.Schedule = domain.Schedule{}
	}
	if p.Checklist == nil {
		p.Checklist = []domain.ChecklistItem{}
	}

	var parseErr error
	if p.CreatedAt, parseErr = time.Parse(timestampLayout, createdAt); parseErr != nil {
		return domain.Plan{}, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	if p.UpdatedAt, parseErr = time.Parse(timestampLayout, updatedAt); parseErr != nil {
		return domain.Plan{}, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	p.StartDate = parseNullableTime(startDate, dateLayout)
	p.EndDate = parseNullableTime(endDate, dateLayout)
	return p, nil
}
