package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/itinera/internal/budget"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/gate"
	"github.com/alexanderramin/itinera/internal/testutil"
	"github.com/stretchr/testify/assert"
)

var yen = domain.DefaultBudgetSettings()

func TestMoney(t *testing.T) {
	tests := []struct {
		amount   float64
		currency string
		want     string
	}{
		{12000, "JPY", "¥12,000"},
		{1234.6, "jpy", "¥1,235"},
		{80.4, "USD", "$80.40"},
		{1234567.891, "EUR", "€1,234,567.89"},
		{-2500, "JPY", "-¥2,500"},
		{9.5, "CHF", "9.50 CHF"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Money(tt.amount, tt.currency))
		})
	}
}

func TestBaseMoney_Converts(t *testing.T) {
	assert.Equal(t, "$67.00", BaseMoney(10000, "USD", 0.0067))
	assert.Equal(t, "¥500", BaseMoney(500, "", 0))
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0m", FormatMinutes(0))
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "2h", FormatMinutes(120))
	assert.Equal(t, "2h 30m", FormatMinutes(150))
}

func TestRenderTree_Connectors(t *testing.T) {
	out := RenderTree([]TreeItem{
		{Title: "root"},
		{Title: "a", Level: 1},
		{Title: "a1", Level: 2, IsLast: true},
		{Title: "b", Level: 1, IsLast: true},
		{Title: "b1", Level: 2, IsLast: true, Detail: "x"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "root", lines[0])
	assert.Equal(t, "├─ a", lines[1])
	assert.Equal(t, "│  └─ a1", lines[2])
	assert.Equal(t, "└─ b", lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "   └─ b1"))
	assert.True(t, strings.HasSuffix(lines[4], "x"))
	assert.Empty(t, RenderTree(nil))
}

func TestFormatDay(t *testing.T) {
	p := testutil.NewTestPlan("Kyoto",
		testutil.WithDays(2),
		testutil.WithStartDate(testutil.Date(2026, 10, 3)),
		testutil.WithItem(1, domain.SlotMorning, testutil.NewTestItem("Fushimi Inari", testutil.WithStartTime("08:30"), testutil.WithPrice(0))),
		testutil.WithItem(1, domain.SlotEvening, testutil.NewTestItem("Kaiseki", testutil.Locked(), testutil.WithType(domain.ItemFood), testutil.WithPrice(18000))),
	)

	out := FormatDay(p, 1, true, yen)
	assert.Contains(t, out, "DAY 1")
	assert.Contains(t, out, "Sat, Oct 3")
	assert.Contains(t, out, "active")
	assert.Contains(t, out, "[0] 08:30 Fushimi Inari")
	assert.Contains(t, out, "Kaiseki 🔒")
	assert.Contains(t, out, "Food & Drink")
	assert.Contains(t, out, "¥18,000")
	assert.NotContains(t, out, "Afternoon", "empty slots are skipped")

	assert.Contains(t, FormatDay(p, 2, false, yen), "nothing planned")
	assert.Contains(t, FormatDay(p, 9, false, yen), "does not exist")
}

func TestFormatPlanList_MarksActive(t *testing.T) {
	a := testutil.NewTestPlan("Alpha", testutil.WithItem(1, domain.SlotMorning, testutil.NewTestItem("Temple", testutil.WithPrice(1500))))
	b := testutil.NewTestPlan("Beta", testutil.WithRegion(""))

	out := FormatPlanList([]domain.Plan{a, b}, a.ID, yen)
	assert.Contains(t, out, "PLANS")
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "¥1,500")
	assert.Contains(t, out, "--")
}

func TestFormatPlan_ShowsEveryDay(t *testing.T) {
	p := testutil.NewTestPlan("Trip", testutil.WithDays(3))
	out := FormatPlan(p, 2, yen)
	for _, want := range []string{"Trip", "DAY 1", "DAY 2", "DAY 3", "● active"} {
		assert.Contains(t, out, want)
	}
}

func TestFormatBudget(t *testing.T) {
	p := testutil.NewTestPlan("Spend",
		testutil.WithItem(1, domain.SlotMorning, testutil.NewTestItem("Castle", testutil.WithPrice(600))),
		testutil.WithItem(1, domain.SlotEvening, testutil.NewTestItem("Dinner", testutil.WithType(domain.ItemFood), testutil.WithPrice(1400))),
	)

	noLimit := FormatBudget(p.Name, budget.Summarize(p, yen), budget.PerDay(p))
	assert.Contains(t, noLimit, "no limit set")
	assert.Contains(t, noLimit, "¥2,000")
	assert.Contains(t, noLimit, "Food & Drink")
	assert.Contains(t, noLimit, "70%")

	over := FormatBudget(p.Name, budget.Summarize(p, domain.BudgetSettings{Limit: 1500, Currency: "JPY", ExchangeRate: 1}), nil)
	assert.Contains(t, over, "¥500 over")
	assert.Contains(t, over, "100% over")

	under := FormatBudget(p.Name, budget.Summarize(p, domain.BudgetSettings{Limit: 4000, Currency: "JPY", ExchangeRate: 1}), nil)
	assert.Contains(t, under, "¥2,000")
	assert.Contains(t, under, " 50%")
}

func TestRenderBudgetBar_Clamps(t *testing.T) {
	assert.Contains(t, RenderBudgetBar(150, false, 10), "100%")
	assert.Contains(t, RenderBudgetBar(-5, false, 10), "  0%")
	assert.Equal(t, string(ColorRed), BarColor(10, true))
	assert.Equal(t, string(ColorYellow), BarColor(80, false))
	assert.Equal(t, string(ColorGreen), BarColor(20, false))
}

func TestFormatChecklist(t *testing.T) {
	items := []domain.ChecklistItem{
		{ID: "c1", Text: "Passport", Checked: true},
		{ID: "c2", Text: "Adapter"},
	}
	out := FormatChecklist(items)
	assert.Contains(t, out, "✔ Passport")
	assert.Contains(t, out, "○ Adapter")
	assert.Contains(t, out, "1/2 packed")
	assert.Contains(t, FormatChecklist(nil), "empty")
}

func TestFormatPending(t *testing.T) {
	assert.Empty(t, FormatPending(nil))
	out := FormatPending(&gate.Pending{
		Action:      gate.Action{Name: "delete-day"},
		LockedCount: 2,
		FirstLocked: domain.Address{Day: 2, Slot: domain.SlotNight},
		FirstItem:   testutil.NewTestItem("Ryokan"),
	})
	assert.Contains(t, out, "delete-day")
	assert.Contains(t, out, "2 locked items")
	assert.Contains(t, out, "Ryokan")
	assert.Contains(t, out, "Day 2/night[0]")
}

func TestFormatRates(t *testing.T) {
	out := FormatRates(budget.DefaultRates, "usd")
	assert.Contains(t, out, "USD")
	assert.Contains(t, out, "$6.70")
	assert.Contains(t, out, "₩9,200")
}
