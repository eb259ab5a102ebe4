package formatter

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/merge"
	"github.com/alexanderramin/itinera/internal/template"
)

// FormatTemplateList renders a styled template list inside a bordered box.
func FormatTemplateList(templates []template.Summary) string {
	headers := []string{"#", "ID", "NAME", "REGION", "DAYS", "ITEMS"}
	rows := make([][]string, 0, len(templates))

	for _, t := range templates {
		num := Dim("--")
		if t.NumericID > 0 {
			num = strconv.Itoa(t.NumericID)
		}
		rows = append(rows, []string{
			num,
			Dim(t.ID),
			Bold(t.Name),
			StylePurple.Render(t.Region),
			strconv.Itoa(t.DayCount),
			strconv.Itoa(t.ItemCount),
		})
	}

	return RenderBox("Templates", RenderTable(headers, rows))
}

// FormatTemplate renders a template's description and its days in the same
// tree layout as a plan.
func FormatTemplate(t domain.Template, settings domain.BudgetSettings) string {
	preview := domain.Plan{
		ID:        t.ID,
		Name:      t.Name,
		Region:    t.Region,
		TotalDays: merge.DayCount(t),
		Schedule:  t.Schedule,
	}

	var b strings.Builder
	b.WriteString(StyleBold.Render(t.Name))
	if t.Region != "" {
		b.WriteString("  " + StylePurple.Render(t.Region))
	}
	b.WriteString("\n")
	if t.Description != "" {
		b.WriteString(Dim(t.Description) + "\n")
	}
	for day := 1; day <= preview.TotalDays; day++ {
		b.WriteString("\n")
		b.WriteString(FormatDay(preview, day, false, settings))
	}
	return RenderBox("Template", strings.TrimRight(b.String(), "\n"))
}
