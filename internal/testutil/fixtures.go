package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/google/uuid"
)

// SeqIDs returns an id generator producing prefix-1, prefix-2, ... so tests
// can assert on exact instance ids.
func SeqIDs(prefix string) func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}

// Plan options
type PlanOption func(*domain.Plan)

func WithDays(n int) PlanOption {
	return func(p *domain.Plan) {
		p.TotalDays = n
		p.Schedule = domain.NewSchedule(n)
		p.SyncEndDate()
	}
}

func WithRegion(region string) PlanOption {
	return func(p *domain.Plan) {
		p.Region = region
	}
}

func WithStartDate(d time.Time) PlanOption {
	return func(p *domain.Plan) {
		p.StartDate = &d
		p.SyncEndDate()
	}
}

// WithItem places item directly at day/slot, bypassing the mutator. Day is
// overwritten to keep the plan consistent; the instance id is kept if set.
func WithItem(day int, slot domain.Slot, item domain.ScheduleItem) PlanOption {
	return func(p *domain.Plan) {
		if item.InstanceID == "" {
			item.InstanceID = uuid.NewString()
		}
		item.Day = day
		ds := p.Schedule[domain.DayKey(day)]
		ds.SetItems(slot, append(ds.Items(slot), item))
		p.Schedule[domain.DayKey(day)] = ds
	}
}

func WithChecklist(texts ...string) PlanOption {
	return func(p *domain.Plan) {
		for _, text := range texts {
			p.Checklist = append(p.Checklist, domain.ChecklistItem{ID: uuid.NewString(), Text: text})
		}
	}
}

// NewTestPlan builds a one-day plan unless WithDays is given first.
func NewTestPlan(name string, opts ...PlanOption) domain.Plan {
	now := time.Now().UTC().Truncate(time.Second)
	p := domain.Plan{
		ID:        uuid.NewString(),
		Name:      name,
		Region:    "Kyoto",
		TotalDays: 1,
		Schedule:  domain.NewSchedule(1),
		Checklist: []domain.ChecklistItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// ScheduleItem options
type ItemOption func(*domain.ScheduleItem)

func WithPrice(price int) ItemOption {
	return func(i *domain.ScheduleItem) {
		i.Price = price
	}
}

func WithType(t domain.ItemType) ItemOption {
	return func(i *domain.ScheduleItem) {
		i.Type = t
	}
}

func WithStartTime(s string) ItemOption {
	return func(i *domain.ScheduleItem) {
		i.StartTime = s
	}
}

func WithInstanceID(id string) ItemOption {
	return func(i *domain.ScheduleItem) {
		i.InstanceID = id
	}
}

func Locked() ItemOption {
	return func(i *domain.ScheduleItem) {
		i.IsLocked = true
	}
}

func NewTestItem(title string, opts ...ItemOption) domain.ScheduleItem {
	item := domain.ScheduleItem{
		TravelItem: domain.TravelItem{
			ID:    "cat-" + title,
			Title: title,
			Type:  domain.ItemAttraction,
			Price: 1000,
		},
		InstanceID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(&item)
	}
	return item
}

// NewTestTemplate builds a template with the given day count and placements.
func NewTestTemplate(id string, days int, items ...TemplatePlacement) domain.Template {
	t := domain.Template{
		ID:       id,
		Name:     "Template " + id,
		Region:   "Kyoto",
		DayCount: days,
		Schedule: domain.NewSchedule(days),
	}
	for _, pl := range items {
		ds := t.Schedule[domain.DayKey(pl.Day)]
		pl.Item.Day = pl.Day
		ds.SetItems(pl.Slot, append(ds.Items(pl.Slot), pl.Item))
		t.Schedule[domain.DayKey(pl.Day)] = ds
	}
	return t
}

// TemplatePlacement positions an item inside a test template.
type TemplatePlacement struct {
	Day  int
	Slot domain.Slot
	Item domain.ScheduleItem
}

// Date returns midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
