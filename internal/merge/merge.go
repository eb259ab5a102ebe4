// Package merge seeds or extends a plan from a curated template. The merge is
// additive: template items are appended after whatever the plan already holds.
package merge

import (
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/gate"
	"github.com/alexanderramin/itinera/internal/schedule"
)

// ActionName identifies template merges in gate pending state and logs.
const ActionName = "apply-template"

// Stats reports what a merge added.
type Stats struct {
	ItemsAdded int
	DaysAdded  int
}

// Result is the outcome of Apply. Exactly one of Plan (with Applied=true) or
// Pending is meaningful. Stats are filled either way; while Pending they
// describe what the merge will add once the unlock is confirmed.
type Result struct {
	Applied bool
	Plan    domain.Plan
	Stats   Stats
	Pending *gate.Pending
}

// Engine merges templates using the mutator's id source for fresh instances.
type Engine struct {
	mutator *schedule.Mutator
}

func NewEngine(m *schedule.Mutator) *Engine {
	return &Engine{mutator: m}
}

// DayCount returns the number of template days to merge. A zero DayCount
// falls back to the highest well-formed day key.
func DayCount(t domain.Template) int {
	if t.DayCount > 0 {
		return t.DayCount
	}
	n := 0
	for key := range t.Schedule {
		if d, ok := domain.ParseDayKey(key); ok && d > n {
			n = d
		}
	}
	return n
}

// Merge appends the template's items day by day, growing the plan when the
// template is longer. Every merged item gets a new instance id and keeps the
// template item's lock flag.
func (e *Engine) Merge(plan domain.Plan, t domain.Template) (domain.Plan, Stats) {
	var stats Stats
	days := DayCount(t)
	next := plan.Clone()

	for day := 1; day <= days; day++ {
		for next.TotalDays < day {
			next = schedule.AddDay(next)
			stats.DaysAdded++
		}
		src, ok := t.Schedule.Day(day)
		if !ok {
			continue
		}
		dst := next.Schedule[domain.DayKey(day)]
		for _, slot := range domain.Slots {
			for _, item := range src.Items(slot) {
				placed := e.mutator.Instantiate(item.TravelItem, day, item.IsLocked)
				placed.StartTime = item.StartTime
				placed.Note = item.Note
				dst.SetItems(slot, append(dst.Items(slot), placed))
				stats.ItemsAdded++
			}
		}
		next.Schedule[domain.DayKey(day)] = dst
	}
	return next, stats
}

// Preview reports what Merge would add to plan without building the merged
// plan or drawing instance ids. Unlocking does not change either count, so a
// preview taken before the gate matches the merge run after it.
func Preview(plan domain.Plan, t domain.Template) Stats {
	days := DayCount(t)
	stats := Stats{DaysAdded: max(0, days-plan.TotalDays)}
	for day := 1; day <= days; day++ {
		if src, ok := t.Schedule.Day(day); ok {
			stats.ItemsAdded += src.Count()
		}
	}
	return stats
}

// Apply merges t into plan. Unless skipConfirm is set, a merge whose
// destination days already hold locked items is handed to g and deferred
// until the host confirms the batch unlock.
func (e *Engine) Apply(plan domain.Plan, t domain.Template, skipConfirm bool, g *gate.Controller) Result {
	if !skipConfirm && g != nil && gate.DaysLocked(plan, destinationDays(plan, t)...) {
		stats := Preview(plan, t)
		out := g.Check(plan, e.Action(t))
		if !out.Ran {
			return Result{Plan: plan, Stats: stats, Pending: out.Pending}
		}
		return Result{Applied: true, Plan: out.Plan, Stats: stats}
	}
	next, stats := e.Merge(plan, t)
	return Result{Applied: true, Plan: next, Stats: stats}
}

// Action wraps the merge of t as a gate action.
func (e *Engine) Action(t domain.Template) gate.Action {
	return gate.Action{
		Name: ActionName,
		Apply: func(p domain.Plan) domain.Plan {
			next, _ := e.Merge(p, t)
			return next
		},
	}
}

func destinationDays(plan domain.Plan, t domain.Template) []int {
	n := min(DayCount(t), plan.TotalDays)
	days := make([]int, 0, n)
	for d := 1; d <= n; d++ {
		days = append(days, d)
	}
	return days
}
