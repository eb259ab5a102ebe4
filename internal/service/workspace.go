package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/itinera/internal/db"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/gate"
	"github.com/alexanderramin/itinera/internal/merge"
	"github.com/alexanderramin/itinera/internal/notify"
	"github.com/alexanderramin/itinera/internal/repository"
	"github.com/alexanderramin/itinera/internal/schedule"
	"github.com/alexanderramin/itinera/internal/store"
)

// Workspace ties the in-memory plan store to SQLite. The store always holds
// what was last persisted: every change is committed to the store and then
// written (plan document plus selection) in one transaction; if the write
// fails the store is reloaded from the database.
type Workspace struct {
	store    *store.Store
	mutator  *schedule.Mutator
	merger   *merge.Engine
	gate     *gate.Controller
	plans    repository.PlanRepo
	state    repository.StateRepo
	uow      db.UnitOfWork
	notifier notify.Sink
	observer UseCaseObserver
}

func NewWorkspace(
	plans repository.PlanRepo,
	state repository.StateRepo,
	uow db.UnitOfWork,
	st *store.Store,
	mutator *schedule.Mutator,
	notifier notify.Sink,
	observers ...UseCaseObserver,
) *Workspace {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Workspace{
		store:    st,
		mutator:  mutator,
		merger:   merge.NewEngine(mutator),
		gate:     gate.NewController(),
		plans:    plans,
		state:    state,
		uow:      uow,
		notifier: notifier,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Load replaces the store contents with the persisted plans and selection.
func (w *Workspace) Load(ctx context.Context) error {
	plans, err := w.plans.List(ctx)
	if err != nil {
		return fmt.Errorf("loading plans: %w", err)
	}
	planID, day, err := w.state.GetSelection(ctx)
	if err != nil {
		return fmt.Errorf("loading selection: %w", err)
	}
	w.store.Load(plans, store.Selection{PlanID: planID, Day: day})
	return nil
}

func (w *Workspace) Store() *store.Store { return w.store }

func (w *Workspace) notify(ctx context.Context, severity notify.Severity, format string, args ...any) {
	w.notifier.Notify(ctx, fmt.Sprintf(format, args...), severity)
}

// persist writes the given plan (if any), deletes deleteID (if set) and
// stores the current selection in one transaction.
func (w *Workspace) persist(ctx context.Context, plan *domain.Plan, deleteID string) error {
	sel := w.store.Selection()
	err := w.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)
		txState := repository.NewSQLiteStateRepo(tx)

		if plan != nil {
			if err := txPlans.Save(ctx, *plan); err != nil {
				return err
			}
		}
		if deleteID != "" {
			if err := txPlans.Delete(ctx, deleteID); err != nil {
				return err
			}
		}
		return txState.SaveSelection(ctx, sel.PlanID, sel.Day)
	})
	if err != nil {
		if loadErr := w.Load(ctx); loadErr != nil {
			return fmt.Errorf("%w (reload also failed: %v)", err, loadErr)
		}
		return err
	}
	return nil
}

// apply runs fn on the active plan and persists the result when fn reports
// a change.
func (w *Workspace) apply(ctx context.Context, fn func(domain.Plan) (domain.Plan, bool)) (Change, error) {
	active, err := w.store.Active()
	if err != nil {
		return Change{}, err
	}
	return w.applyTo(ctx, active.ID, fn)
}

func (w *Workspace) applyTo(ctx context.Context, planID string, fn func(domain.Plan) (domain.Plan, bool)) (Change, error) {
	next, changed, err := w.store.Update(planID, fn)
	if err != nil {
		return Change{}, err
	}
	if !changed {
		return Change{Plan: next}, nil
	}
	if err := w.persist(ctx, &next, ""); err != nil {
		return Change{}, err
	}
	return Change{Applied: true, Plan: next}, nil
}

// gated runs action on the active plan through the unlock gate unless
// skipConfirm is set or scope reports no locked items in the blast radius.
func (w *Workspace) gated(ctx context.Context, plan domain.Plan, action gate.Action, skipConfirm bool, scope func(domain.Plan) bool) (GatedChange, error) {
	if skipConfirm || !scope(plan) {
		change, err := w.applyTo(ctx, plan.ID, func(p domain.Plan) (domain.Plan, bool) {
			return action.Apply(p), true
		})
		return GatedChange{Change: change}, err
	}
	out := w.gate.Check(plan, action)
	if out.Ran {
		change, err := w.applyTo(ctx, plan.ID, func(domain.Plan) (domain.Plan, bool) {
			return out.Plan, true
		})
		return GatedChange{Change: change}, err
	}
	w.notifyPending(ctx, out.Pending)
	return GatedChange{Change: Change{Plan: plan}, Pending: out.Pending}, nil
}

func (w *Workspace) notifyPending(ctx context.Context, p *gate.Pending) {
	w.notify(ctx, notify.SeverityWarning, "%s touches %d locked item(s), first %q at %s; confirm to unlock",
		p.Action.Name, p.LockedCount, p.FirstItem.Title, p.FirstLocked)
}

// Pending returns the action waiting behind the gate, if any.
func (w *Workspace) Pending() *gate.Pending {
	return w.gate.Pending()
}

// Confirm unlocks every item of the pending plan, runs the deferred action
// and persists the result.
func (w *Workspace) Confirm(ctx context.Context) (plan domain.Plan, err error) {
	pending := w.gate.Pending()
	if pending == nil {
		return domain.Plan{}, gate.ErrNoPendingAction
	}
	fields := map[string]any{"action": pending.Action.Name, "locked": pending.LockedCount}
	defer w.track(ctx, "confirm-unlock", fields)(&err)

	var confirmErr error
	change, err := w.applyTo(ctx, pending.PlanID, func(p domain.Plan) (domain.Plan, bool) {
		next, err := w.gate.ConfirmUnlock(p)
		if err != nil {
			confirmErr = err
			return p, false
		}
		return next, true
	})
	if errors.Is(err, domain.ErrPlanNotFound) {
		w.gate.Cancel()
	}
	if err != nil {
		return domain.Plan{}, err
	}
	if confirmErr != nil {
		return domain.Plan{}, confirmErr
	}
	w.notify(ctx, notify.SeveritySuccess, "Unlocked %d item(s) and ran %s", fields["locked"], fields["action"])
	return change.Plan, nil
}

// Cancel drops the pending action.
func (w *Workspace) Cancel(ctx context.Context) {
	pending := w.gate.Pending()
	w.gate.Cancel()
	if pending != nil {
		w.notify(ctx, notify.SeverityInfo, "Cancelled %s; nothing was changed", pending.Action.Name)
	}
}

var _ GateService = (*Workspace)(nil)
