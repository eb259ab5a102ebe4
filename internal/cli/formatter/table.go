package formatter

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const colGap = 2

// RenderTable renders rows under a styled header with a separator line and
// no outer border. Cell widths are measured on visible text so styled cells
// stay aligned.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	cellStyle := lipgloss.NewStyle().PaddingRight(colGap)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderRow(false).
		BorderHeader(true).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleHeader.PaddingRight(colGap)
			}
			return cellStyle
		})

	for _, row := range rows {
		cells := make([]string, len(headers))
		copy(cells, row)
		t.Row(cells...)
	}
	return t.Render() + "\n"
}
