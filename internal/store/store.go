// Package store holds the current snapshot of every plan plus the active
// plan/day selection. Engine operations produce new snapshots; the store
// swaps them in whole under a lock so readers never observe a half-applied
// mutation.
package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/merge"
	"github.com/alexanderramin/itinera/internal/schedule"
)

const defaultPlanName = "Untitled trip"

// Selection is the advisory active plan and day.
type Selection struct {
	PlanID string
	Day    int
}

type Store struct {
	mu        sync.RWMutex
	plans     map[string]domain.Plan
	order     []string
	selection Selection

	mutator *schedule.Mutator
	merger  *merge.Engine
	now     func() time.Time
}

type Option func(*Store)

// WithClock overrides time.Now for CreatedAt/UpdatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func New(m *schedule.Mutator, opts ...Option) *Store {
	s := &Store{
		plans:   make(map[string]domain.Plan),
		mutator: m,
		merger:  merge.NewEngine(m),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the store contents with persisted snapshots, ordered by
// creation time as given. The selection is repaired if it no longer points
// at an existing plan or day.
func (s *Store) Load(plans []domain.Plan, sel Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.plans = make(map[string]domain.Plan, len(plans))
	s.order = s.order[:0]
	for _, p := range plans {
		s.plans[p.ID] = p
		s.order = append(s.order, p.ID)
	}
	s.selection = sel
	s.repairSelectionLocked()
}

// Create builds a new plan from req, stores it and makes it active.
func (s *Store) Create(req domain.CreatePlanRequest) (domain.Plan, error) {
	var plan domain.Plan
	switch r := req.(type) {
	case domain.BlankPlanRequest:
		plan = s.blankPlan(r.Name, r.Region, r.StartDate, r.TotalDays)
	case domain.TemplatePlanRequest:
		days := merge.DayCount(r.Template)
		plan = s.blankPlan(r.Name, r.Template.Region, r.StartDate, days)
		plan, _ = s.merger.Merge(plan, r.Template)
	default:
		return domain.Plan{}, fmt.Errorf("unsupported create request %T", req)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[plan.ID] = plan
	s.order = append(s.order, plan.ID)
	s.selection = Selection{PlanID: plan.ID, Day: 1}
	return plan, nil
}

func (s *Store) blankPlan(name, region string, start *time.Time, days int) domain.Plan {
	now := s.now()
	if strings.TrimSpace(name) == "" {
		name = defaultPlanName
	}
	if days < 1 {
		days = 1
	}
	p := domain.Plan{
		ID:        s.mutator.NewID(),
		Name:      strings.TrimSpace(name),
		Region:    region,
		TotalDays: days,
		Schedule:  domain.NewSchedule(days),
		Checklist: s.mutator.SeedChecklist(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if start != nil {
		d := *start
		p.StartDate = &d
	}
	p.SyncEndDate()
	return p
}

// List returns all plans in creation order.
func (s *Store) List() []domain.Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Plan, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.plans[id])
	}
	return out
}

func (s *Store) Get(id string) (domain.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.plans[id]
	if !ok {
		return domain.Plan{}, fmt.Errorf("%w: %q", domain.ErrPlanNotFound, id)
	}
	return p, nil
}

// Resolve finds a plan by exact id, unique id prefix, or case-insensitive name.
func (s *Store) Resolve(input string) (domain.Plan, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return domain.Plan{}, fmt.Errorf("%w: empty plan reference", domain.ErrPlanNotFound)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.plans[input]; ok {
		return p, nil
	}
	var matches []string
	for _, id := range s.order {
		if strings.HasPrefix(id, input) || strings.EqualFold(s.plans[id].Name, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Plan{}, fmt.Errorf("%w: %q", domain.ErrPlanNotFound, input)
	case 1:
		return s.plans[matches[0]], nil
	default:
		return domain.Plan{}, fmt.Errorf("plan reference %q is ambiguous (%d matches)", input, len(matches))
	}
}

// Active returns the active plan snapshot.
func (s *Store) Active() (domain.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.plans[s.selection.PlanID]
	if !ok {
		return domain.Plan{}, domain.ErrNoActivePlan
	}
	return p, nil
}

func (s *Store) Selection() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

// Select makes id the active plan and resets the active day to 1.
func (s *Store) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plans[id]; !ok {
		return fmt.Errorf("%w: %q", domain.ErrPlanNotFound, id)
	}
	s.selection = Selection{PlanID: id, Day: 1}
	return nil
}

// SelectDay sets the active day, clamped into the active plan's range, and
// returns the day actually selected.
func (s *Store) SelectDay(day int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plans[s.selection.PlanID]
	if !ok {
		return 0, domain.ErrNoActivePlan
	}
	s.selection.Day = schedule.ClampDay(day, p.TotalDays)
	return s.selection.Day, nil
}

// Delete removes a plan. Deleting the active plan activates the first
// remaining plan, if any.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plans[id]; !ok {
		return fmt.Errorf("%w: %q", domain.ErrPlanNotFound, id)
	}
	delete(s.plans, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.selection.PlanID == id {
		s.selection = Selection{}
	}
	s.repairSelectionLocked()
	return nil
}

// Commit replaces the stored snapshot of plan.ID with plan.
func (s *Store) Commit(plan domain.Plan) (domain.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plans[plan.ID]; !ok {
		return domain.Plan{}, fmt.Errorf("%w: %q", domain.ErrPlanNotFound, plan.ID)
	}
	plan.UpdatedAt = s.now()
	s.plans[plan.ID] = plan
	if s.selection.PlanID == plan.ID {
		s.selection.Day = schedule.ClampDay(s.selection.Day, plan.TotalDays)
	}
	return plan, nil
}

// Update applies fn to the current snapshot of id and commits the result when
// fn reports a change. The read and the swap happen under one lock.
func (s *Store) Update(id string, fn func(domain.Plan) (domain.Plan, bool)) (domain.Plan, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.plans[id]
	if !ok {
		return domain.Plan{}, false, fmt.Errorf("%w: %q", domain.ErrPlanNotFound, id)
	}
	next, changed := fn(current)
	if !changed {
		return current, false, nil
	}
	next.ID = id
	next.UpdatedAt = s.now()
	s.plans[id] = next
	if s.selection.PlanID == id {
		s.selection.Day = schedule.ClampDay(s.selection.Day, next.TotalDays)
	}
	return next, true, nil
}

func (s *Store) repairSelectionLocked() {
	p, ok := s.plans[s.selection.PlanID]
	if !ok {
		if len(s.order) == 0 {
			s.selection = Selection{}
			return
		}
		s.selection = Selection{PlanID: s.order[0], Day: 1}
		p = s.plans[s.order[0]]
	}
	s.selection.Day = schedule.ClampDay(s.selection.Day, p.TotalDays)
}
