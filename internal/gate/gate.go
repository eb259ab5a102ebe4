// Package gate protects bulk actions from silently touching locked (premium)
// items. A Controller is a two-state machine: Open runs actions immediately;
// PendingUnlock holds one deferred action until the host confirms a batch
// unlock or cancels.
package gate

import (
	"errors"

	"github.com/alexanderramin/itinera/internal/domain"
)

// ErrNoPendingAction is returned by ConfirmUnlock when nothing is waiting.
var ErrNoPendingAction = errors.New("no action is waiting for unlock confirmation")

type State string

const (
	StateOpen          State = "open"
	StatePendingUnlock State = "pending_unlock"
)

// Action is a named plan transformation that may be deferred by the gate.
type Action struct {
	Name  string
	Apply func(domain.Plan) domain.Plan
}

// Pending describes the action waiting behind the gate.
type Pending struct {
	Action      Action
	PlanID      string
	LockedCount int
	FirstLocked domain.Address
	FirstItem   domain.ScheduleItem
}

// Outcome is the result of Check. When Ran is true Plan holds the action's
// result; otherwise Pending describes why the action was deferred.
type Outcome struct {
	Ran     bool
	Plan    domain.Plan
	Pending *Pending
}

type Controller struct {
	state   State
	pending *Pending
}

func NewController() *Controller {
	return &Controller{state: StateOpen}
}

func (c *Controller) State() State {
	return c.state
}

// Pending returns the deferred action, or nil in the Open state.
func (c *Controller) Pending() *Pending {
	return c.pending
}

// Check runs action against plan unless the plan holds locked items, in
// which case the controller moves to PendingUnlock and the action is kept
// for ConfirmUnlock. A Check while already pending replaces the earlier
// deferred action.
func (c *Controller) Check(plan domain.Plan, action Action) Outcome {
	scan := Scan(plan)
	if scan.Count == 0 {
		c.state = StateOpen
		c.pending = nil
		return Outcome{Ran: true, Plan: action.Apply(plan)}
	}

	c.state = StatePendingUnlock
	c.pending = &Pending{
		Action:      action,
		PlanID:      plan.ID,
		LockedCount: scan.Count,
		FirstLocked: scan.First,
		FirstItem:   scan.FirstItem,
	}
	return Outcome{Plan: plan, Pending: c.pending}
}

// ConfirmUnlock clears every lock in plan, runs the deferred action on the
// unlocked plan and returns to Open.
func (c *Controller) ConfirmUnlock(plan domain.Plan) (domain.Plan, error) {
	if c.state != StatePendingUnlock || c.pending == nil {
		return plan, ErrNoPendingAction
	}
	action := c.pending.Action
	c.state = StateOpen
	c.pending = nil
	return action.Apply(UnlockAll(plan)), nil
}

// Cancel drops the deferred action without touching any plan.
func (c *Controller) Cancel() {
	c.state = StateOpen
	c.pending = nil
}

// ScanResult summarizes the locked items of a plan.
type ScanResult struct {
	Count     int
	First     domain.Address
	FirstItem domain.ScheduleItem
}

// Scan counts locked items and records the first one in canonical order
// (day ascending, slot order, index ascending).
func Scan(plan domain.Plan) ScanResult {
	var res ScanResult
	plan.Walk(func(addr domain.Address, item domain.ScheduleItem) bool {
		if !item.IsLocked {
			return true
		}
		if res.Count == 0 {
			res.First = addr
			res.FirstItem = item
		}
		res.Count++
		return true
	})
	return res
}

// DaysLocked reports whether any of the given days holds a locked item.
func DaysLocked(plan domain.Plan, days ...int) bool {
	want := make(map[int]bool, len(days))
	for _, d := range days {
		want[d] = true
	}
	locked := false
	plan.Walk(func(addr domain.Address, item domain.ScheduleItem) bool {
		if item.IsLocked && want[addr.Day] {
			locked = true
			return false
		}
		return true
	})
	return locked
}

// UnlockAll returns a copy of plan with IsLocked cleared on every item.
func UnlockAll(plan domain.Plan) domain.Plan {
	next := plan.Clone()
	for key, ds := range next.Schedule {
		for _, slot := range domain.Slots {
			items := ds.Items(slot)
			for i := range items {
				items[i].IsLocked = false
			}
		}
		next.Schedule[key] = ds
	}
	return next
}
