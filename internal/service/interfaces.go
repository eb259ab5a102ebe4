package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/itinera/internal/budget"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/gate"
	"github.com/alexanderramin/itinera/internal/merge"
	"github.com/alexanderramin/itinera/internal/template"
)

var (
	ErrCatalogItemNotFound = errors.New("catalog item not found")
	ErrUnknownCurrency     = errors.New("unknown currency")
	// ErrConfirmationRequired reports a gated action that nobody could confirm.
	ErrConfirmationRequired = errors.New("confirmation required")
)

// Change is the result of a plan mutation. Applied is false when the engine
// treated the request as a no-op (stale address, invalid day, ...).
type Change struct {
	Applied bool
	Plan    domain.Plan
}

// GatedChange is the result of an action that may wait behind the unlock
// gate. Pending is set when the action was deferred.
type GatedChange struct {
	Change
	Pending *gate.Pending
}

// PlanUpdate carries plan header edits. Nil fields are left untouched;
// ClearStartDate removes the dates.
type PlanUpdate struct {
	Name           *string
	Region         *string
	StartDate      *time.Time
	ClearStartDate bool
}

type PlanService interface {
	Create(ctx context.Context, req domain.CreatePlanRequest) (domain.Plan, error)
	List(ctx context.Context) ([]domain.Plan, error)
	Get(ctx context.Context, ref string) (domain.Plan, error)
	Active(ctx context.Context) (domain.Plan, int, error)
	Select(ctx context.Context, ref string) (domain.Plan, error)
	Update(ctx context.Context, ref string, upd PlanUpdate) (domain.Plan, error)
	Delete(ctx context.Context, ref string) error
}

type ScheduleService interface {
	SelectDay(ctx context.Context, day int) (int, error)
	AddDay(ctx context.Context) (domain.Plan, error)
	DeleteDay(ctx context.Context, day int, skipConfirm bool) (GatedChange, error)
	AddItem(ctx context.Context, day int, slot domain.Slot, item domain.TravelItem) (Change, domain.ScheduleItem, error)
	AddCatalogItem(ctx context.Context, day int, slot domain.Slot, ref string) (Change, domain.ScheduleItem, error)
	RemoveItem(ctx context.Context, addr domain.Address) (Change, error)
	UpdateItem(ctx context.Context, addr domain.Address, patch domain.ItemPatch) (Change, error)
	MoveItem(ctx context.Context, src domain.Address, dstDay int, dstSlot domain.Slot) (Change, error)
}

// GateService resolves the action waiting behind the unlock gate.
type GateService interface {
	Pending() *gate.Pending
	Confirm(ctx context.Context) (domain.Plan, error)
	Cancel(ctx context.Context)
}

// TemplateApplied reports a template merge into the active plan.
type TemplateApplied struct {
	GatedChange
	Template domain.Template
	Stats    merge.Stats
}

type TemplateService interface {
	List(ctx context.Context) ([]template.Summary, error)
	Get(ctx context.Context, ref string) (domain.Template, error)
	Apply(ctx context.Context, ref string, skipConfirm bool) (TemplateApplied, error)
	CreatePlan(ctx context.Context, ref, name string, start *time.Time) (domain.Plan, error)
}

// BudgetReport is the budget view of the active plan.
type BudgetReport struct {
	Plan     domain.Plan
	Settings domain.BudgetSettings
	Summary  budget.Summary
	PerDay   []budget.DayTotal
}

type BudgetService interface {
	Settings(ctx context.Context) (domain.BudgetSettings, error)
	Report(ctx context.Context) (BudgetReport, error)
	SetLimit(ctx context.Context, displayInput string) (domain.BudgetSettings, error)
	SetCurrency(ctx context.Context, code string) (domain.BudgetSettings, error)
	Rates() budget.Rates
}

type ChecklistService interface {
	List(ctx context.Context) ([]domain.ChecklistItem, error)
	Add(ctx context.Context, text string) (Change, error)
	Toggle(ctx context.Context, id string) (Change, error)
	Remove(ctx context.Context, id string) (Change, error)
}
