package store

import (
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/schedule"
	"github.com/alexanderramin/itinera/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newStore() *Store {
	return New(schedule.New(schedule.WithIDFunc(testutil.SeqIDs("id"))), WithClock(func() time.Time { return fixedNow }))
}

func TestCreate_BlankPlan(t *testing.T) {
	s := newStore()
	start := testutil.Date(2026, 5, 3)

	p, err := s.Create(domain.BlankPlanRequest{Name: "  Golden Week ", Region: "Tokyo", StartDate: &start, TotalDays: 4})
	require.NoError(t, err)
	assert.Equal(t, "Golden Week", p.Name)
	assert.Equal(t, 4, p.TotalDays)
	assert.Len(t, p.Schedule, 4)
	assert.Len(t, p.Checklist, len(schedule.DefaultChecklist))
	require.NotNil(t, p.EndDate)
	assert.Equal(t, "2026-05-06", p.EndDate.Format("2006-01-02"))
	assert.Equal(t, fixedNow, p.CreatedAt)
	assert.Empty(t, p.Validate())

	active, err := s.Active()
	require.NoError(t, err)
	assert.Equal(t, p.ID, active.ID)
	assert.Equal(t, Selection{PlanID: p.ID, Day: 1}, s.Selection())
}

func TestCreate_DefaultsNameAndDays(t *testing.T) {
	s := newStore()
	p, err := s.Create(domain.BlankPlanRequest{TotalDays: 0})
	require.NoError(t, err)
	assert.Equal(t, defaultPlanName, p.Name)
	assert.Equal(t, 1, p.TotalDays)
	assert.Nil(t, p.EndDate)
}

func TestCreate_FromTemplate(t *testing.T) {
	s := newStore()
	tpl := testutil.NewTestTemplate("hokkaido", 3,
		testutil.TemplatePlacement{Day: 1, Slot: domain.SlotMorning, Item: testutil.NewTestItem("Otaru canal")},
		testutil.TemplatePlacement{Day: 3, Slot: domain.SlotNight, Item: testutil.NewTestItem("Susukino", testutil.Locked())},
	)
	tpl.Region = "Hokkaido"

	p, err := s.Create(domain.TemplatePlanRequest{Name: "Snow trip", Template: tpl})
	require.NoError(t, err)
	assert.Equal(t, "Hokkaido", p.Region)
	assert.Equal(t, 3, p.TotalDays)
	assert.Equal(t, 2, schedule.CountItems(p))
	assert.True(t, p.Schedule[domain.DayKey(3)].Night[0].IsLocked)
	assert.Empty(t, p.Validate())
}

type bogusRequest struct{ domain.BlankPlanRequest }

func TestCreate_UnknownRequest(t *testing.T) {
	s := newStore()
	_, err := s.Create(bogusRequest{})
	assert.Error(t, err)
	assert.Empty(t, s.List())
}

func TestSelectAndResolve(t *testing.T) {
	s := newStore()
	a, _ := s.Create(domain.BlankPlanRequest{Name: "Alpha"})
	b, _ := s.Create(domain.BlankPlanRequest{Name: "Beta", TotalDays: 2})
	assert.Equal(t, b.ID, s.Selection().PlanID)

	require.NoError(t, s.Select(a.ID))
	assert.Equal(t, a.ID, s.Selection().PlanID)

	got, err := s.Resolve("beta")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	got, err = s.Resolve(a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = s.Resolve("id-")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = s.Resolve("gamma")
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)

	assert.ErrorIs(t, s.Select("nope"), domain.ErrPlanNotFound)
}

func TestSelectDay_Clamps(t *testing.T) {
	s := newStore()
	_, _ = s.Create(domain.BlankPlanRequest{Name: "Three", TotalDays: 3})

	day, err := s.SelectDay(2)
	require.NoError(t, err)
	assert.Equal(t, 2, day)

	day, _ = s.SelectDay(10)
	assert.Equal(t, 3, day)
	day, _ = s.SelectDay(-1)
	assert.Equal(t, 1, day)
}

func TestSelectDay_NoActivePlan(t *testing.T) {
	s := newStore()
	_, err := s.SelectDay(1)
	assert.ErrorIs(t, err, domain.ErrNoActivePlan)
	_, err = s.Active()
	assert.ErrorIs(t, err, domain.ErrNoActivePlan)
}

func TestUpdate_ClampsSelectedDayAfterDelete(t *testing.T) {
	s := newStore()
	p, _ := s.Create(domain.BlankPlanRequest{Name: "Three", TotalDays: 3})
	_, _ = s.SelectDay(3)

	next, changed, err := s.Update(p.ID, func(cur domain.Plan) (domain.Plan, bool) {
		return schedule.DeleteDay(cur, 3)
	})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 2, next.TotalDays)
	assert.Equal(t, 2, s.Selection().Day)
}

func TestUpdate_NoChangeKeepsSnapshot(t *testing.T) {
	s := newStore()
	p, _ := s.Create(domain.BlankPlanRequest{Name: "One"})

	got, changed, err := s.Update(p.ID, func(cur domain.Plan) (domain.Plan, bool) {
		return schedule.DeleteDay(cur, 1)
	})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, p, got)
}

func TestUpdate_UnknownPlan(t *testing.T) {
	s := newStore()
	_, _, err := s.Update("missing", func(p domain.Plan) (domain.Plan, bool) { return p, true })
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)
}

func TestCommit(t *testing.T) {
	s := newStore()
	p, _ := s.Create(domain.BlankPlanRequest{Name: "One", TotalDays: 2})
	_, _ = s.SelectDay(2)

	shrunk, ok := schedule.DeleteDay(p, 1)
	require.True(t, ok)
	committed, err := s.Commit(shrunk)
	require.NoError(t, err)
	assert.Equal(t, 1, committed.TotalDays)
	assert.Equal(t, 1, s.Selection().Day)

	_, err = s.Commit(testutil.NewTestPlan("stranger"))
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)
}

func TestDelete_ActivePlanFallsBackToFirst(t *testing.T) {
	s := newStore()
	a, _ := s.Create(domain.BlankPlanRequest{Name: "A"})
	b, _ := s.Create(domain.BlankPlanRequest{Name: "B"})

	require.NoError(t, s.Delete(b.ID))
	assert.Equal(t, a.ID, s.Selection().PlanID)
	assert.Len(t, s.List(), 1)

	require.NoError(t, s.Delete(a.ID))
	assert.Equal(t, Selection{}, s.Selection())
	assert.ErrorIs(t, s.Delete(a.ID), domain.ErrPlanNotFound)
}

func TestLoad_RepairsSelection(t *testing.T) {
	s := newStore()
	p1 := testutil.NewTestPlan("Loaded", testutil.WithDays(2))
	p2 := testutil.NewTestPlan("Other")

	s.Load([]domain.Plan{p1, p2}, Selection{PlanID: "gone", Day: 9})
	assert.Equal(t, Selection{PlanID: p1.ID, Day: 1}, s.Selection())

	s.Load([]domain.Plan{p1, p2}, Selection{PlanID: p1.ID, Day: 9})
	assert.Equal(t, Selection{PlanID: p1.ID, Day: 2}, s.Selection())

	names := []string{}
	for _, p := range s.List() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Loaded", "Other"}, names)
}

func TestUpdate_ConcurrentMovesKeepItemCount(t *testing.T) {
	s := newStore()
	p, _ := s.Create(domain.BlankPlanRequest{Name: "Busy", TotalDays: 2})
	m := schedule.New()
	for i := 0; i < 10; i++ {
		_, _, err := s.Update(p.ID, func(cur domain.Plan) (domain.Plan, bool) {
			next, _, ok := m.AddItem(cur, 1, domain.SlotMorning, domain.TravelItem{Title: "stop"})
			return next, ok
		})
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _, _ = s.Update(p.ID, func(cur domain.Plan) (domain.Plan, bool) {
				return schedule.MoveItem(cur, 1, domain.SlotMorning, 0, 2, domain.SlotEvening)
			})
		}()
		go func() {
			defer wg.Done()
			cur, err := s.Get(p.ID)
			if assert.NoError(t, err) {
				assert.Equal(t, 10, schedule.CountItems(cur))
			}
		}()
	}
	wg.Wait()

	final, err := s.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, schedule.CountItems(final))
	assert.Empty(t, final.Validate())
}
