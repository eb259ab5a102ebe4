package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/itinera/internal/budget"
	"github.com/alexanderramin/itinera/internal/catalog"
	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/alexanderramin/itinera/internal/config"
	"github.com/alexanderramin/itinera/internal/db"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/repository"
	"github.com/alexanderramin/itinera/internal/schedule"
	"github.com/alexanderramin/itinera/internal/service"
	"github.com/alexanderramin/itinera/internal/store"
	"github.com/alexanderramin/itinera/internal/template"
	"github.com/alexanderramin/itinera/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	m := schedule.New(schedule.WithIDFunc(testutil.SeqIDs("id")))
	ws := service.NewWorkspace(
		repository.NewSQLitePlanRepo(database),
		repository.NewSQLiteStateRepo(database),
		db.NewSQLiteUnitOfWork(database),
		store.New(m), m, nil,
	)
	require.NoError(t, ws.Load(context.Background()))

	cat := catalog.Builtin()
	cfg := config.DefaultConfig()
	return &App{
		Plans:     service.NewPlanService(ws),
		Schedule:  service.NewScheduleService(ws, cat),
		Gate:      ws,
		Templates: service.NewTemplateService(ws, template.NewDirSource(filepath.Join("..", "..", "templates"), cat, nil)),
		Budget: service.NewBudgetService(ws, repository.NewSQLiteBudgetRepo(database),
			domain.DefaultBudgetSettings(), budget.DefaultRates),
		Checklist:  service.NewChecklistService(ws),
		Catalog:    cat,
		Config:     &cfg,
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
		// Confirm left nil and not interactive: gated actions need --yes.
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func mustExec(t *testing.T, app *App, args ...string) string {
	t.Helper()
	out, err := executeCmd(t, app, args...)
	require.NoError(t, err, "itinera %v\n%s", args, out)
	return out
}

func activePlan(t *testing.T, app *App) (domain.Plan, int) {
	t.Helper()
	p, day, err := app.Plans.Active(context.Background())
	require.NoError(t, err)
	return p, day
}

// seedPremiumDay creates a two-day plan whose second day holds a locked
// premium dinner.
func seedPremiumDay(t *testing.T, app *App) {
	t.Helper()
	mustExec(t, app, "plan", "create", "--name", "Kyoto", "--days", "2")
	mustExec(t, app, "item", "add", "1", "fushimi-inari")
	mustExec(t, app, "item", "add", "2", "kaiseki-gion", "--slot", "evening")
}

// --- Root ---

func TestRootCmd_NoPlans(t *testing.T) {
	app := testApp(t)

	out := mustExec(t, app)
	assert.Contains(t, out, "No plans yet")
}

func TestRootCmd_ShowsActivePlan(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "plan", "create", "--name", "Autumn", "--days", "2")

	out := mustExec(t, app)
	assert.Contains(t, out, "Autumn")
	assert.Contains(t, out, "DAY 1")
}

// --- plan ---

func TestPlanCreate_Flags(t *testing.T) {
	app := testApp(t)

	mustExec(t, app, "plan", "create", "--name", "Autumn in Kyoto", "--region", "Kyoto", "--days", "3", "--start", "2026-11-14")

	p, day := activePlan(t, app)
	assert.Equal(t, "Autumn in Kyoto", p.Name)
	assert.Equal(t, "Kyoto", p.Region)
	assert.Equal(t, 3, p.TotalDays)
	assert.Equal(t, 1, day)
	require.NotNil(t, p.EndDate)
	assert.Equal(t, "2026-11-16", p.EndDate.Format(dateLayout))
}

func TestPlanCreate_BadStartDate(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "plan", "create", "--name", "X", "--start", "14/11/2026")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestPlanCreate_FromTemplate(t *testing.T) {
	app := testApp(t)

	mustExec(t, app, "plan", "create", "--template", "kyoto-classic")

	p, _ := activePlan(t, app)
	assert.Equal(t, 3, p.TotalDays)
	assert.Equal(t, "Kyoto", p.Region)
	assert.NotZero(t, schedule.CountItems(p))
}

func TestPlanListSelectDelete(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "plan", "create", "--name", "Alpha")
	mustExec(t, app, "plan", "create", "--name", "Beta")

	out := mustExec(t, app, "plan", "list")
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "Beta")

	out = mustExec(t, app, "plan", "select", "alpha")
	assert.Contains(t, out, "Alpha")
	p, _ := activePlan(t, app)
	assert.Equal(t, "Alpha", p.Name)

	mustExec(t, app, "plan", "delete", "Alpha", "--yes")
	p, _ = activePlan(t, app)
	assert.Equal(t, "Beta", p.Name)

	_, err := executeCmd(t, app, "plan", "select", "Alpha")
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)
}

func TestPlanRenameAndUpdate(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "plan", "create", "--name", "Draft", "--days", "2", "--start", "2026-05-01")

	out := mustExec(t, app, "plan", "rename", "Golden Week")
	assert.Contains(t, out, "Golden Week")

	mustExec(t, app, "plan", "update", "--region", "Tokyo", "--clear-start")
	p, _ := activePlan(t, app)
	assert.Equal(t, "Golden Week", p.Name)
	assert.Equal(t, "Tokyo", p.Region)
	assert.Nil(t, p.StartDate)
	assert.Nil(t, p.EndDate)
}

// --- item ---

func TestItemAdd_CatalogAndCustom(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "plan", "create", "--name", "Trip", "--days", "2")

	out := mustExec(t, app, "item", "add", "1", "fushimi-inari", "--at", "07:30", "--note", "early")
	assert.Contains(t, out, "Fushimi")
	assert.Contains(t, out, "1/morning/0")

	mustExec(t, app, "item", "add", "day2", "--title", "Ramen", "--type", "food", "--price", "1200", "--slot", "night")

	p, _ := activePlan(t, app)
	morning := p.Schedule[domain.DayKey(1)].Morning
	require.Len(t, morning, 1)
	assert.Equal(t, "07:30", morning[0].StartTime)
	assert.Equal(t, "early", morning[0].Note)

	night := p.Schedule[domain.DayKey(2)].Night
	require.Len(t, night, 1)
	assert.Equal(t, "Ramen", night[0].Title)
	assert.Equal(t, domain.ItemFood, night[0].Type)
	assert.Equal(t, 1200, night[0].Price)
}

func TestItemAdd_Validation(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "plan", "create", "--name", "Trip")

	_, err := executeCmd(t, app, "item", "add", "1", "fushimi-inari", "--at", "25:99")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "item", "add", "1", "fushimi-inari", "--slot", "brunch")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "item", "add", "1", "no-such-place")
	assert.ErrorIs(t, err, service.ErrCatalogItemNotFound)

	p, _ := activePlan(t, app)
	assert.Zero(t, schedule.CountItems(p))
}

func TestItemMoveUpdateRemove(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "plan", "create", "--name", "Trip", "--days", "2")
	mustExec(t, app, "item", "add", "1", "kinkakuji")

	mustExec(t, app, "item", "move", "1/morning/0", "2", "afternoon")
	p, _ := activePlan(t, app)
	assert.Empty(t, p.Schedule[domain.DayKey(1)].Morning)
	require.Len(t, p.Schedule[domain.DayKey(2)].Afternoon, 1)

	mustExec(t, app, "item", "update", "2/afternoon/0", "--title", "Golden Pavilion", "--price", "500")
	p, _ = activePlan(t, app)
	assert.Equal(t, "Golden Pavilion", p.Schedule[domain.DayKey(2)].Afternoon[0].Title)
	assert.Equal(t, 500, p.Schedule[domain.DayKey(2)].Afternoon[0].Price)

	_, err := executeCmd(t, app, "item", "update", "2/afternoon/0")
	assert.Error(t, err, "an empty patch is rejected")

	mustExec(t, app, "item", "remove", "2/afternoon")
	p, _ = activePlan(t, app)
	assert.Zero(t, schedule.CountItems(p))
}

func TestItemUpdate_KeepsLockAndGate(t *testing.T) {
	app := testApp(t)
	seedPremiumDay(t, app)

	mustExec(t, app, "item", "update", "2/evening/0", "--note", "window seat")
	p, _ := activePlan(t, app)
	require.Len(t, p.Schedule[domain.DayKey(2)].Evening, 1)
	assert.Equal(t, "window seat", p.Schedule[domain.DayKey(2)].Evening[0].Note)
	assert.True(t, p.Schedule[domain.DayKey(2)].Evening[0].IsLocked)

	_, err := executeCmd(t, app, "day", "delete", "2")
	require.ErrorIs(t, err, service.ErrConfirmationRequired)
	p, _ = activePlan(t, app)
	assert.Equal(t, 2, p.TotalDays)
}

// --- day ---

func TestDayAddSelectShow(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "plan", "create", "--name", "Trip")

	out := mustExec(t, app, "day", "add")
	assert.Contains(t, out, "2 days")

	out = mustExec(t, app, "day", "select", "9")
	assert.Contains(t, out, "Active day: 2")

	out = mustExec(t, app, "day", "show")
	assert.Contains(t, out, "DAY 2")
	assert.Contains(t, out, "nothing planned")
}

func TestDayDelete_LockedDayNeedsYes(t *testing.T) {
	app := testApp(t)
	seedPremiumDay(t, app)

	out, err := executeCmd(t, app, "day", "delete", "2")
	require.ErrorIs(t, err, service.ErrConfirmationRequired)
	assert.Contains(t, err.Error(), "--yes")
	assert.Contains(t, out, "Kaiseki")
	assert.Nil(t, app.Gate.Pending(), "non-interactive runs drop the pending action")

	p, _ := activePlan(t, app)
	assert.Equal(t, 2, p.TotalDays)

	mustExec(t, app, "day", "delete", "2", "--yes")
	p, _ = activePlan(t, app)
	assert.Equal(t, 1, p.TotalDays)
}

func TestDayDelete_ConfirmUnlocksAndDeletes(t *testing.T) {
	app := testApp(t)
	seedPremiumDay(t, app)
	var asked string
	app.Confirm = func(title, description string) (bool, error) {
		asked = title
		return true, nil
	}

	out := mustExec(t, app, "day", "delete", "2")
	assert.NotEmpty(t, asked)
	assert.Contains(t, out, "Deleted day 2")

	p, _ := activePlan(t, app)
	assert.Equal(t, 1, p.TotalDays)
	assert.Nil(t, app.Gate.Pending())
}

func TestDayDelete_DeclineKeepsPlan(t *testing.T) {
	app := testApp(t)
	seedPremiumDay(t, app)
	app.Confirm = func(string, string) (bool, error) { return false, nil }

	out := mustExec(t, app, "day", "delete", "2")
	assert.Contains(t, out, "Cancelled")

	p, _ := activePlan(t, app)
	assert.Equal(t, 2, p.TotalDays)
	assert.True(t, p.Schedule[domain.DayKey(2)].Evening[0].IsLocked)
}

func TestDayDelete_InvalidDay(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "plan", "create", "--name", "Trip")

	_, err := executeCmd(t, app, "day", "delete", "zero")
	assert.Error(t, err)
}

// --- template ---

func TestTemplateListShow(t *testing.T) {
	app := testApp(t)

	out := mustExec(t, app, "template", "list")
	assert.Contains(t, out, "Kyoto Classic")

	out = mustExec(t, app, "template", "show", "kyoto-classic")
	assert.Contains(t, out, "Kyoto Classic")
	assert.Contains(t, out, "DAY 3")

	_, err := executeCmd(t, app, "template", "show", "atlantis")
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

func TestTemplateApply_ExtendsPlan(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "plan", "create", "--name", "Trip")

	out := mustExec(t, app, "template", "apply", "kyoto-classic")
	assert.Contains(t, out, "2 days added")

	p, _ := activePlan(t, app)
	assert.Equal(t, 3, p.TotalDays)
}

func TestTemplateApply_GatedByLockedItems(t *testing.T) {
	app := testApp(t)
	seedPremiumDay(t, app)
	before, _ := activePlan(t, app)

	_, err := executeCmd(t, app, "template", "apply", "kyoto-classic")
	require.ErrorIs(t, err, service.ErrConfirmationRequired)
	after, _ := activePlan(t, app)
	assert.Equal(t, schedule.CountItems(before), schedule.CountItems(after))

	app.Confirm = func(string, string) (bool, error) { return true, nil }
	out := mustExec(t, app, "template", "apply", "kyoto-classic")
	assert.Contains(t, out, "Applied")

	after, _ = activePlan(t, app)
	added := schedule.CountItems(after) - schedule.CountItems(before)
	assert.Positive(t, added)
	assert.Contains(t, out, formatter.Plural(added, "item")+" added")
	assert.False(t, after.Schedule[domain.DayKey(2)].Evening[0].IsLocked, "confirming unlocks the plan")
}

// --- budget ---

func TestBudget_LimitAndCurrency(t *testing.T) {
	app := testApp(t)
	seedPremiumDay(t, app)

	out := mustExec(t, app, "budget")
	assert.Contains(t, out, "no limit set")

	mustExec(t, app, "budget", "set-limit", "100000")
	out = mustExec(t, app, "budget", "show")
	assert.Contains(t, out, "REMAINING")

	out = mustExec(t, app, "budget", "set-currency", "usd")
	assert.Contains(t, out, "USD")
	settings, err := app.Budget.Settings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "USD", settings.Currency)
	assert.Equal(t, 100000, settings.Limit, "limit stays in base currency")

	_, err = executeCmd(t, app, "budget", "set-currency", "XYZ")
	assert.ErrorIs(t, err, service.ErrUnknownCurrency)

	out = mustExec(t, app, "budget", "rates")
	assert.Contains(t, out, "TWD")
}

// --- checklist ---

func TestChecklist_AddToggleRemove(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "plan", "create", "--name", "Trip")

	out := mustExec(t, app, "checklist", "add", "Rail", "pass")
	assert.Contains(t, out, "Rail pass")

	mustExec(t, app, "pack", "toggle", "rail pass")
	items, err := app.Checklist.List(context.Background())
	require.NoError(t, err)
	var found bool
	for _, it := range items {
		if it.Text == "Rail pass" {
			found = true
			assert.True(t, it.Checked)
		}
	}
	assert.True(t, found)

	mustExec(t, app, "checklist", "remove", "Rail pass")
	after, err := app.Checklist.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, after, len(items)-1)

	_, err = executeCmd(t, app, "checklist", "toggle", "umbrella stand")
	assert.ErrorContains(t, err, "not found")
}

// --- catalog ---

func TestCatalogListAndFind(t *testing.T) {
	app := testApp(t)

	out := mustExec(t, app, "catalog", "list", "--type", "hotel")
	assert.Contains(t, out, "Ryokan")
	assert.NotContains(t, out, "Fushimi")

	out = mustExec(t, app, "catalog", "find", "fushimi")
	assert.Contains(t, out, "Fushimi")

	out = mustExec(t, app, "catalog", "find", "zzzz")
	assert.Contains(t, out, "No matching items")
}

// --- config ---

func TestConfigInitShowSetCurrency(t *testing.T) {
	app := testApp(t)

	out := mustExec(t, app, "config", "path")
	assert.Contains(t, out, "config.toml")

	mustExec(t, app, "config", "init")
	_, err := executeCmd(t, app, "config", "init")
	assert.ErrorContains(t, err, "--force")
	mustExec(t, app, "config", "init", "--force")

	mustExec(t, app, "config", "set-currency", "eur")
	loaded, err := config.LoadFrom(app.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, "EUR", loaded.Budget.Currency)

	out = mustExec(t, app, "config", "show")
	assert.Contains(t, out, "EUR")

	_, err = executeCmd(t, app, "config", "set-currency", "doubloon")
	assert.Error(t, err)
}

// --- argument parsing ---

func TestParseDay(t *testing.T) {
	for in, want := range map[string]int{
		"1": 1, "day3": 3, " Day12 ": 12, "Day 2": 2, "DAY 7": 7,
		domain.DayKey(4): 4,
	} {
		got, err := parseDay(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"0", "-1", "day", "Day ", "Day -2", "two", "days2", ""} {
		_, err := parseDay(in)
		assert.Error(t, err, in)
	}
}

func TestParseAddress(t *testing.T) {
	addr, err := parseAddress("day2/evening/3")
	require.NoError(t, err)
	assert.Equal(t, domain.Address{Day: 2, Slot: domain.SlotEvening, Index: 3}, addr)

	addr, err = parseAddress("Day 2/night/1")
	require.NoError(t, err)
	assert.Equal(t, domain.Address{Day: 2, Slot: domain.SlotNight, Index: 1}, addr)

	addr, err = parseAddress("1/accommodation")
	require.NoError(t, err)
	assert.Equal(t, domain.Address{Day: 1, Slot: domain.SlotAccommodation}, addr)

	for _, in := range []string{"1", "1/brunch/0", "1/morning/-1", "x/morning/0", "1/morning/0/2"} {
		_, err := parseAddress(in)
		assert.Error(t, err, in)
	}
}

func TestResolveChecklistID(t *testing.T) {
	items := []domain.ChecklistItem{
		{ID: "abc-1", Text: "Passport"},
		{ID: "abc-2", Text: "Charger"},
		{ID: "xyz-1", Text: "Yen"},
	}

	id, err := resolveChecklistID(items, "xyz")
	require.NoError(t, err)
	assert.Equal(t, "xyz-1", id)

	id, err = resolveChecklistID(items, "charger")
	require.NoError(t, err)
	assert.Equal(t, "abc-2", id)

	_, err = resolveChecklistID(items, "abc")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = resolveChecklistID(items, " ")
	assert.Error(t, err)
}

func TestFlagValues(t *testing.T) {
	var slot slotValue
	require.NoError(t, slot.Set("Night"))
	assert.Equal(t, "night", slot.String())
	assert.Error(t, slot.Set("lunch"))

	var typ itemTypeValue
	require.NoError(t, typ.Set("restaurant"))
	assert.True(t, typ.set)
	assert.Equal(t, domain.ItemFood, typ.t)
	require.NoError(t, typ.Set("souvenir"))
	assert.Equal(t, domain.ItemOther, typ.t)

	var date dateValue
	assert.Equal(t, "", date.String())
	require.NoError(t, date.Set("2026-11-14"))
	assert.Equal(t, "2026-11-14", date.String())
	assert.Error(t, date.Set("next week"))
}
