package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrPlanNotFound     = errors.New("plan not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrNoActivePlan     = errors.New("no active plan (create one or run `itinera plan select`)")
)

const dateLayout = "2006-01-02"

type ChecklistItem struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// Plan is a multi-day itinerary. Values are treated as immutable snapshots:
// engine operations return new plans instead of modifying their input.
type Plan struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Region    string          `json:"region"`
	StartDate *time.Time      `json:"startDate,omitempty"`
	EndDate   *time.Time      `json:"endDate,omitempty"`
	TotalDays int             `json:"totalDays"`
	Checklist []ChecklistItem `json:"checklist"`
	Schedule  Schedule        `json:"schedule"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Clone deep-copies the plan so the copy can be modified freely.
func (p Plan) Clone() Plan {
	out := p
	out.Schedule = p.Schedule.Clone()
	out.Checklist = make([]ChecklistItem, len(p.Checklist))
	copy(out.Checklist, p.Checklist)
	if p.StartDate != nil {
		d := *p.StartDate
		out.StartDate = &d
	}
	if p.EndDate != nil {
		d := *p.EndDate
		out.EndDate = &d
	}
	return out
}

// HasDay reports whether n addresses an existing day.
func (p Plan) HasDay(n int) bool {
	return n >= 1 && n <= p.TotalDays
}

// SyncEndDate recomputes EndDate from StartDate and TotalDays.
func (p *Plan) SyncEndDate() {
	if p.StartDate == nil {
		p.EndDate = nil
		return
	}
	end := p.StartDate.AddDate(0, 0, p.TotalDays-1)
	p.EndDate = &end
}

// DateOf returns the calendar date of day n, if the plan has a start date.
func (p Plan) DateOf(n int) (time.Time, bool) {
	if p.StartDate == nil || !p.HasDay(n) {
		return time.Time{}, false
	}
	return p.StartDate.AddDate(0, 0, n-1), true
}

// DateRange formats the plan's dates for display, or "" without a start date.
func (p Plan) DateRange() string {
	if p.StartDate == nil {
		return ""
	}
	if p.EndDate == nil {
		return p.StartDate.Format(dateLayout)
	}
	return p.StartDate.Format(dateLayout) + " → " + p.EndDate.Format(dateLayout)
}

// Walk visits every scheduled item in canonical order: day ascending, then
// slot in Slots order, then index ascending. Returning false stops the walk.
func (p Plan) Walk(fn func(addr Address, item ScheduleItem) bool) {
	for day := 1; day <= p.TotalDays; day++ {
		ds, ok := p.Schedule.Day(day)
		if !ok {
			continue
		}
		for _, slot := range Slots {
			for i, item := range ds.Items(slot) {
				if !fn(Address{Day: day, Slot: slot, Index: i}, item) {
					return
				}
			}
		}
	}
}

// Validate checks the structural invariants of the plan.
func (p Plan) Validate() []error {
	var errs []error
	if p.TotalDays < 1 {
		errs = append(errs, fmt.Errorf("totalDays must be >= 1, got %d", p.TotalDays))
	}
	if len(p.Schedule) != p.TotalDays {
		errs = append(errs, fmt.Errorf("schedule has %d days, totalDays is %d", len(p.Schedule), p.TotalDays))
	}
	for key := range p.Schedule {
		n, ok := ParseDayKey(key)
		if !ok {
			errs = append(errs, fmt.Errorf("malformed day key %q", key))
			continue
		}
		if !p.HasDay(n) {
			errs = append(errs, fmt.Errorf("day key %q outside 1..%d", key, p.TotalDays))
		}
	}

	seen := make(map[string]Address)
	p.Walk(func(addr Address, item ScheduleItem) bool {
		if item.InstanceID == "" {
			errs = append(errs, fmt.Errorf("%s: empty instance id", addr))
		} else if prev, dup := seen[item.InstanceID]; dup {
			errs = append(errs, fmt.Errorf("%s: instance id %q duplicates %s", addr, item.InstanceID, prev))
		} else {
			seen[item.InstanceID] = addr
		}
		if item.Day != addr.Day {
			errs = append(errs, fmt.Errorf("%s: item reports day %d", addr, item.Day))
		}
		return true
	})
	return errs
}
