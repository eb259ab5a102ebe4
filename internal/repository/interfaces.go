package repository

import (
	"context"

	"github.com/alexanderramin/itinera/internal/domain"
)

// PlanRepo persists whole plan snapshots. A plan is always written as one
// document so day keys, instance ids and slot contents stay consistent.
type PlanRepo interface {
	Save(ctx context.Context, p domain.Plan) error
	GetByID(ctx context.Context, id string) (domain.Plan, error)
	List(ctx context.Context) ([]domain.Plan, error)
	Delete(ctx context.Context, id string) error
}

// BudgetRepo stores the single budget settings row. Get reports found=false
// and the zero defaults until something has been saved.
type BudgetRepo interface {
	Get(ctx context.Context) (settings domain.BudgetSettings, found bool, err error)
	Upsert(ctx context.Context, s domain.BudgetSettings) error
}

// StateRepo stores the advisory active plan/day selection.
type StateRepo interface {
	GetSelection(ctx context.Context) (planID string, day int, err error)
	SaveSelection(ctx context.Context, planID string, day int) error
}
