package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/itinera/internal/budget"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

var currencySymbols = map[string]string{
	"JPY": "¥",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"KRW": "₩",
	"TWD": "NT$",
}

// Currencies shown without minor units.
var wholeUnitCurrencies = map[string]bool{
	"JPY": true,
	"KRW": true,
}

// Money formats a display-currency amount with grouping and symbol, e.g.
// "¥12,000" or "$80.40". Unknown codes are suffixed instead.
func Money(amount float64, currency string) string {
	currency = strings.ToUpper(currency)
	var num string
	if wholeUnitCurrencies[currency] {
		num = humanize.Comma(int64(math.Round(amount)))
	} else {
		num = humanize.FormatFloat("#,###.##", amount)
	}
	if sym, ok := currencySymbols[currency]; ok {
		if strings.HasPrefix(num, "-") {
			return "-" + sym + num[1:]
		}
		return sym + num
	}
	return num + " " + currency
}

// BaseMoney converts a base-currency amount for display and formats it.
func BaseMoney(base int, currency string, rate float64) string {
	if currency == "" {
		currency = "JPY"
	}
	return Money(budget.ToDisplay(base, rate), currency)
}

// HumanDate returns a short weekday date like "Sat, Oct 3".
func HumanDate(t time.Time) string {
	return t.Format("Mon, Jan 2")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// Plural returns "1 day" / "3 days".
func Plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
