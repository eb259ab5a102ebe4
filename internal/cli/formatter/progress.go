package formatter

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
)

// BarColor picks the budget bar color: green under 75%, yellow up to the
// limit, red when over.
func BarColor(pct float64, over bool) string {
	switch {
	case over:
		return string(ColorRed)
	case pct >= 75:
		return string(ColorYellow)
	default:
		return string(ColorGreen)
	}
}

// RenderBudgetBar renders a spend bar like ███████░░░  70%. pct is in
// [0, 100].
func RenderBudgetBar(pct float64, over bool, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if width < 4 {
		width = 4
	}

	bar := progress.New(
		progress.WithSolidFill(BarColor(pct, over)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(ColorDim)

	label := fmt.Sprintf("%3.0f%%", pct)
	if over {
		label = StyleRed.Bold(true).Render(label + " over")
	}
	return bar.ViewAs(pct/100) + " " + label
}
