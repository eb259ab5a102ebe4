// Package schedule implements the pure mutations of a plan's day/slot
// structure. Every function takes a plan snapshot and returns a new one; the
// input is never modified. Stale addresses are reported through the applied
// flag instead of an error so callers can treat UI races as no-ops.
package schedule

import (
	"errors"
	"slices"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/google/uuid"
)

// ErrItemNotFound is returned by Lookup when an address is stale.
var ErrItemNotFound = errors.New("schedule item not found")

// IDFunc mints instance and checklist ids.
type IDFunc func() string

// Mutator holds the id source used by operations that create new entries.
type Mutator struct {
	newID IDFunc
}

type Option func(*Mutator)

// WithIDFunc overrides the uuid-based id generator.
func WithIDFunc(fn IDFunc) Option {
	return func(m *Mutator) {
		if fn != nil {
			m.newID = fn
		}
	}
}

func New(opts ...Option) *Mutator {
	m := &Mutator{newID: uuid.NewString}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewID mints a fresh identifier.
func (m *Mutator) NewID() string {
	return m.newID()
}

// Instantiate creates a placement of item on day with a fresh instance id.
func (m *Mutator) Instantiate(item domain.TravelItem, day int, locked bool) domain.ScheduleItem {
	item.Type = item.Type.Normalize()
	if item.Coordinates != nil {
		c := *item.Coordinates
		item.Coordinates = &c
	}
	return domain.ScheduleItem{
		TravelItem: item,
		InstanceID: m.newID(),
		Day:        day,
		IsLocked:   locked,
	}
}

// AddItem appends item to the end of day/slot. Catalog premium items start
// out locked.
func (m *Mutator) AddItem(p domain.Plan, day int, slot domain.Slot, item domain.TravelItem) (domain.Plan, domain.ScheduleItem, bool) {
	if !p.HasDay(day) || !validSlot(slot) {
		return p, domain.ScheduleItem{}, false
	}
	placed := m.Instantiate(item, day, item.IsPremium)

	next := p.Clone()
	ds := next.Schedule[domain.DayKey(day)]
	ds.SetItems(slot, append(ds.Items(slot), placed))
	next.Schedule[domain.DayKey(day)] = ds
	return next, placed, true
}

// RemoveItem deletes the entry at day/slot/index.
func RemoveItem(p domain.Plan, day int, slot domain.Slot, index int) (domain.Plan, bool) {
	if _, err := Lookup(p, domain.Address{Day: day, Slot: slot, Index: index}); err != nil {
		return p, false
	}
	next := p.Clone()
	ds := next.Schedule[domain.DayKey(day)]
	ds.SetItems(slot, slices.Delete(ds.Items(slot), index, index+1))
	next.Schedule[domain.DayKey(day)] = ds
	return next, true
}

// UpdateItem shallow-merges patch into the entry at day/slot/index.
func UpdateItem(p domain.Plan, day int, slot domain.Slot, index int, patch domain.ItemPatch) (domain.Plan, bool) {
	item, err := Lookup(p, domain.Address{Day: day, Slot: slot, Index: index})
	if err != nil {
		return p, false
	}
	next := p.Clone()
	ds := next.Schedule[domain.DayKey(day)]
	ds.Items(slot)[index] = patch.Apply(item)
	next.Schedule[domain.DayKey(day)] = ds
	return next, true
}

// MoveItem relocates the entry at the source address to the end of the
// target slot. A slot change clears StartTime; a same-slot move keeps it. The
// item is removed and re-added on one clone, so the returned snapshot never
// holds the item in both places or in neither.
func MoveItem(p domain.Plan, srcDay int, srcSlot domain.Slot, srcIndex int, dstDay int, dstSlot domain.Slot) (domain.Plan, bool) {
	item, err := Lookup(p, domain.Address{Day: srcDay, Slot: srcSlot, Index: srcIndex})
	if err != nil {
		return p, false
	}
	if !p.HasDay(dstDay) || !validSlot(dstSlot) {
		return p, false
	}

	next := p.Clone()

	src := next.Schedule[domain.DayKey(srcDay)]
	src.SetItems(srcSlot, slices.Delete(src.Items(srcSlot), srcIndex, srcIndex+1))
	next.Schedule[domain.DayKey(srcDay)] = src

	if srcSlot != dstSlot {
		item.StartTime = ""
	}
	item.Day = dstDay

	dst := next.Schedule[domain.DayKey(dstDay)]
	dst.SetItems(dstSlot, append(dst.Items(dstSlot), item))
	next.Schedule[domain.DayKey(dstDay)] = dst

	return next, true
}

// AddDay appends an empty day after the last one.
func AddDay(p domain.Plan) domain.Plan {
	next := p.Clone()
	next.TotalDays++
	next.Schedule[domain.DayKey(next.TotalDays)] = domain.DaySchedule{}.Clone()
	next.SyncEndDate()
	return next
}

// DeleteDay removes day n and renumbers every later day (its key and each
// contained item's Day) down by one. The last remaining day cannot be deleted.
func DeleteDay(p domain.Plan, n int) (domain.Plan, bool) {
	if p.TotalDays <= 1 || !p.HasDay(n) {
		return p, false
	}

	next := p.Clone()
	schedule := make(domain.Schedule, p.TotalDays-1)
	for day := 1; day <= p.TotalDays; day++ {
		if day == n {
			continue
		}
		ds := next.Schedule[domain.DayKey(day)]
		target := day
		if day > n {
			target = day - 1
			ds = renumber(ds, target)
		}
		schedule[domain.DayKey(target)] = ds
	}
	next.Schedule = schedule
	next.TotalDays--
	next.SyncEndDate()
	return next, true
}

// Lookup returns the item at addr or ErrItemNotFound.
func Lookup(p domain.Plan, addr domain.Address) (domain.ScheduleItem, error) {
	ds, ok := p.Schedule.Day(addr.Day)
	if !ok || !p.HasDay(addr.Day) {
		return domain.ScheduleItem{}, ErrItemNotFound
	}
	items := ds.Items(addr.Slot)
	if addr.Index < 0 || addr.Index >= len(items) {
		return domain.ScheduleItem{}, ErrItemNotFound
	}
	return items[addr.Index], nil
}

// CountItems returns the number of scheduled items in the plan.
func CountItems(p domain.Plan) int {
	n := 0
	p.Walk(func(domain.Address, domain.ScheduleItem) bool {
		n++
		return true
	})
	return n
}

// FindInstance returns the current address of the placement with the given
// instance id.
func FindInstance(p domain.Plan, instanceID string) (domain.Address, bool) {
	var found domain.Address
	ok := false
	p.Walk(func(addr domain.Address, item domain.ScheduleItem) bool {
		if item.InstanceID == instanceID {
			found, ok = addr, true
			return false
		}
		return true
	})
	return found, ok
}

// ClampDay forces day into [1, total].
func ClampDay(day, total int) int {
	if total < 1 {
		return 1
	}
	return min(max(day, 1), total)
}

func renumber(ds domain.DaySchedule, day int) domain.DaySchedule {
	for _, slot := range domain.Slots {
		items := ds.Items(slot)
		for i := range items {
			items[i].Day = day
		}
	}
	return ds
}

func validSlot(slot domain.Slot) bool {
	return slices.Contains(domain.Slots, slot)
}
