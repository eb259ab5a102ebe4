package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRepo_SaveAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)
	ctx := context.Background()

	p := testutil.NewTestPlan("Kansai loop",
		testutil.WithStartDate(testutil.Date(2026, 4, 1)),
		testutil.WithDays(3),
		testutil.WithChecklist("Passport"),
		testutil.WithItem(2, domain.SlotEvening, testutil.NewTestItem("Dotonbori", testutil.WithType(domain.ItemFood), testutil.Locked())),
	)
	require.NoError(t, repo.Save(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, 3, got.TotalDays)
	require.NotNil(t, got.StartDate)
	require.NotNil(t, got.EndDate)
	assert.Equal(t, "2026-04-03", got.EndDate.Format("2006-01-02"))
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt))
	require.Len(t, got.Checklist, 1)
	assert.Equal(t, "Passport", got.Checklist[0].Text)

	evening := got.Schedule[domain.DayKey(2)].Evening
	require.Len(t, evening, 1)
	assert.Equal(t, "Dotonbori", evening[0].Title)
	assert.True(t, evening[0].IsLocked)
	assert.Equal(t, 2, evening[0].Day)
	assert.Empty(t, got.Validate())
}

func TestPlanRepo_SaveUpserts(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)
	ctx := context.Background()

	p := testutil.NewTestPlan("Draft")
	require.NoError(t, repo.Save(ctx, p))

	p.Name = "Final"
	p.TotalDays = 2
	p.Schedule = domain.NewSchedule(2)
	require.NoError(t, repo.Save(ctx, p))

	plans, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Final", plans[0].Name)
	assert.Equal(t, 2, plans[0].TotalDays)
}

func TestPlanRepo_RejectsInvalidPlan(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)

	p := testutil.NewTestPlan("Broken", testutil.WithDays(2))
	p.TotalDays = 5
	assert.Error(t, repo.Save(context.Background(), p))

	plans, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestPlanRepo_ListOrdersByCreation(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)
	ctx := context.Background()

	older := testutil.NewTestPlan("Older")
	newer := testutil.NewTestPlan("Newer")
	newer.CreatedAt = older.CreatedAt.Add(time.Hour)
	require.NoError(t, repo.Save(ctx, newer))
	require.NoError(t, repo.Save(ctx, older))

	plans, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "Older", plans[0].Name)
	assert.Equal(t, "Newer", plans[1].Name)
}

func TestPlanRepo_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), domain.ErrPlanNotFound)
}

func TestPlanRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLitePlanRepo(database)
	ctx := context.Background()

	p := testutil.NewTestPlan("Gone soon")
	require.NoError(t, repo.Save(ctx, p))
	require.NoError(t, repo.Delete(ctx, p.ID))

	_, err := repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)
}
