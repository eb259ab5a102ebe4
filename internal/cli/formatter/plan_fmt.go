package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/itinera/internal/budget"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/schedule"
	"github.com/charmbracelet/lipgloss"
)

// FormatPlanList renders all plans in a bordered table. The active plan is
// marked with a dot.
func FormatPlanList(plans []domain.Plan, activeID string, settings domain.BudgetSettings) string {
	headers := []string{"", "ID", "NAME", "REGION", "DATES", "DAYS", "ITEMS", "SPENT"}
	rows := make([][]string, 0, len(plans))

	for _, p := range plans {
		marker := " "
		if p.ID == activeID {
			marker = StyleGreen.Render("●")
		}
		dates := p.DateRange()
		if dates == "" {
			dates = Dim("--")
		}
		region := p.Region
		if region == "" {
			region = Dim("--")
		}
		rows = append(rows, []string{
			marker,
			TruncID(p.ID),
			Bold(p.Name),
			StylePurple.Render(region),
			dates,
			strconv.Itoa(p.TotalDays),
			strconv.Itoa(schedule.CountItems(p)),
			BaseMoney(budget.CalculateTotal(p), settings.Currency, settings.ExchangeRate),
		})
	}

	return RenderBox("Plans", RenderTable(headers, rows))
}

// FormatPlan renders the plan header and every day. activeDay is
// highlighted; pass 0 to highlight nothing.
func FormatPlan(p domain.Plan, activeDay int, settings domain.BudgetSettings) string {
	var b strings.Builder
	b.WriteString(planHeader(p, settings))
	for day := 1; day <= p.TotalDays; day++ {
		b.WriteString("\n")
		b.WriteString(FormatDay(p, day, day == activeDay, settings))
	}
	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}

func planHeader(p domain.Plan, settings domain.BudgetSettings) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(p.Name))
	if p.Region != "" {
		b.WriteString("  " + StylePurple.Render(p.Region))
	}
	b.WriteString("\n")

	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-6s", label)), value))
	}
	field("ID", TruncID(p.ID))
	if dates := p.DateRange(); dates != "" {
		field("DATES", dates)
	}
	field("DAYS", strconv.Itoa(p.TotalDays))
	field("ITEMS", strconv.Itoa(schedule.CountItems(p)))
	field("SPENT", BaseMoney(budget.CalculateTotal(p), settings.Currency, settings.ExchangeRate))
	return b.String()
}

// FormatDay renders one day as a slot tree. Each item shows its index within
// the slot, which is what item commands address it by.
func FormatDay(p domain.Plan, day int, active bool, settings domain.BudgetSettings) string {
	ds, ok := p.Schedule.Day(day)
	if !ok {
		return Dim(fmt.Sprintf("%s does not exist\n", domain.DayKey(day)))
	}

	title := StyleHeader.Render(fmt.Sprintf("DAY %d", day))
	if date, ok := p.DateOf(day); ok {
		title += "  " + StyleFg.Render(HumanDate(date))
	}
	if active {
		title += "  " + StyleGreen.Render("● active")
	}
	spent := 0
	for _, slot := range domain.Slots {
		for _, item := range ds.Items(slot) {
			spent += item.Price
		}
	}

	items := []TreeItem{{Title: title, Detail: Dim(BaseMoney(spent, settings.Currency, settings.ExchangeRate))}}
	var filled []domain.Slot
	for _, slot := range domain.Slots {
		if len(ds.Items(slot)) > 0 {
			filled = append(filled, slot)
		}
	}
	if len(filled) == 0 {
		items = append(items, TreeItem{Title: Dim("nothing planned"), Level: 1, IsLast: true})
		return RenderTree(items)
	}

	for si, slot := range filled {
		slotItems := ds.Items(slot)
		items = append(items, TreeItem{Title: SlotLabel(slot), Level: 1, IsLast: si == len(filled)-1})
		for i, item := range slotItems {
			items = append(items, TreeItem{
				Title:  itemLine(i, item),
				Level:  2,
				IsLast: i == len(slotItems)-1,
				Detail: itemDetail(item, settings),
			})
		}
	}
	return RenderTree(items)
}

func itemLine(index int, item domain.ScheduleItem) string {
	parts := []string{Dim(fmt.Sprintf("[%d]", index))}
	if item.StartTime != "" {
		parts = append(parts, StyleBlue.Render(item.StartTime))
	}
	parts = append(parts, item.Title)
	if item.IsLocked {
		parts = append(parts, LockBadge(true))
	}
	if item.Note != "" {
		parts = append(parts, Dim("· "+item.Note))
	}
	return strings.Join(parts, " ")
}

func itemDetail(item domain.ScheduleItem, settings domain.BudgetSettings) string {
	price := BaseMoney(item.Price, settings.Currency, settings.ExchangeRate)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(14).Render(TypeBadge(item.Type)),
		price,
	)
}
