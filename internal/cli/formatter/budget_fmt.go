package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/itinera/internal/budget"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const budgetBarWidth = 30

// FormatBudget renders spend against the limit, the category breakdown and
// per-day totals of a plan.
func FormatBudget(planName string, s budget.Summary, perDay []budget.DayTotal) string {
	money := func(base int) string { return BaseMoney(base, s.Currency, s.Rate) }

	var b strings.Builder
	b.WriteString(StyleBold.Render(planName) + "  " + Dim(s.Currency) + "\n\n")

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("SPENT    "), Bold(money(s.Spent))))
	if s.Limit == 0 {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("LIMIT    "), Dim("no limit set")))
	} else {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("LIMIT    "), money(s.Limit)))
		remaining := money(s.Remaining)
		if s.IsOverBudget {
			remaining = StyleRed.Render(money(-s.Remaining) + " over")
		} else {
			remaining = StyleGreen.Render(remaining)
		}
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("REMAINING"), remaining))
		b.WriteString("\n" + RenderBudgetBar(s.Percentage, s.IsOverBudget, budgetBarWidth) + "\n")
	}

	if len(s.Breakdown) > 0 {
		b.WriteString("\n" + Header("By category") + "\n")
		b.WriteString(FormatBreakdown(s.Breakdown, s.Spent, s.Currency, s.Rate))
	}

	if len(perDay) > 0 {
		b.WriteString("\n" + Header("By day") + "\n")
		rows := make([][]string, 0, len(perDay))
		for _, d := range perDay {
			rows = append(rows, []string{domain.DayKey(d.Day), Plural(d.Items, "item"), money(d.Amount)})
		}
		b.WriteString(RenderTable([]string{"DAY", "ITEMS", "SPENT"}, rows))
	}

	return RenderBox("Budget", strings.TrimRight(b.String(), "\n"))
}

// FormatBreakdown renders one line per category with a share-of-total bar.
func FormatBreakdown(breakdown []domain.CategoryTotal, total int, currency string, rate float64) string {
	var b strings.Builder
	for _, c := range breakdown {
		share := 0.0
		if total > 0 {
			share = float64(c.Amount) / float64(total)
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color))
		filled := int(share*20 + 0.5)
		bar := style.Render(strings.Repeat("■", filled)) + StyleDim.Render(strings.Repeat("·", 20-filled))
		b.WriteString(fmt.Sprintf("%s %s %s %s\n",
			lipgloss.NewStyle().Width(14).Render(style.Render(c.Label)),
			bar,
			lipgloss.NewStyle().Width(5).Align(lipgloss.Right).Render(fmt.Sprintf("%.0f%%", share*100)),
			BaseMoney(c.Amount, currency, rate),
		))
	}
	return b.String()
}

// FormatRates lists the known display currencies, marking the current one.
func FormatRates(rates budget.Rates, current string) string {
	rows := make([][]string, 0, len(rates))
	for _, code := range rates.Codes() {
		marker := " "
		if strings.EqualFold(code, current) {
			marker = StyleGreen.Render("●")
		}
		rate, _ := rates.RateFor(code)
		rows = append(rows, []string{marker, code, fmt.Sprintf("%g", rate), Money(rate*1000, code)})
	}
	return RenderTable([]string{"", "CODE", "RATE", "¥1,000 ="}, rows)
}
