package formatter

import (
	"github.com/alexanderramin/itinera/internal/domain"
)

// FormatCatalog renders catalog entries with their price in the display
// currency.
func FormatCatalog(items []domain.TravelItem, settings domain.BudgetSettings) string {
	headers := []string{"ID", "TITLE", "TYPE", "PRICE", "TIME", ""}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		duration := Dim("--")
		if it.DurationMin > 0 {
			duration = FormatMinutes(it.DurationMin)
		}
		premium := ""
		if it.IsPremium {
			premium = StylePurple.Render("premium")
		}
		rows = append(rows, []string{
			Dim(it.ID),
			Bold(it.Title),
			TypeBadge(it.Type),
			BaseMoney(it.Price, settings.Currency, settings.ExchangeRate),
			duration,
			premium,
		})
	}
	return RenderTable(headers, rows)
}
