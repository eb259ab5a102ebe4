// Package budget derives spend totals from a plan's schedule. All amounts are
// kept in the base currency; conversion happens only for display.
package budget

import (
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/itinera/internal/domain"
)

// CalculateTotal sums Price over every scheduled item. Checklist entries
// carry no price and are not counted.
func CalculateTotal(plan domain.Plan) int {
	total := 0
	plan.Walk(func(_ domain.Address, item domain.ScheduleItem) bool {
		total += item.Price
		return true
	})
	return total
}

// CalculateBreakdown groups the total by item type in domain.ItemTypes order.
// Categories with no spend are omitted. Unknown types are counted as
// ItemOther so the amounts always add up to CalculateTotal.
func CalculateBreakdown(plan domain.Plan) []domain.CategoryTotal {
	sums := make(map[domain.ItemType]int, len(domain.ItemTypes))
	present := make(map[domain.ItemType]bool, len(domain.ItemTypes))
	plan.Walk(func(_ domain.Address, item domain.ScheduleItem) bool {
		t := item.Type.Normalize()
		sums[t] += item.Price
		present[t] = true
		return true
	})

	var out []domain.CategoryTotal
	for _, t := range domain.ItemTypes {
		if !present[t] || sums[t] == 0 {
			continue
		}
		out = append(out, domain.CategoryTotal{
			Type:   t,
			Label:  t.Label(),
			Amount: sums[t],
			Color:  t.Color(),
		})
	}
	return out
}

// DayTotal is the spend of one day.
type DayTotal struct {
	Day    int
	Amount int
	Items  int
}

// PerDay returns the spend of each day in order, including empty days.
func PerDay(plan domain.Plan) []DayTotal {
	out := make([]DayTotal, plan.TotalDays)
	for i := range out {
		out[i].Day = i + 1
	}
	plan.Walk(func(addr domain.Address, item domain.ScheduleItem) bool {
		out[addr.Day-1].Amount += item.Price
		out[addr.Day-1].Items++
		return true
	})
	return out
}

// ToDisplay converts a base-currency amount into the display currency.
func ToDisplay(base int, rate float64) float64 {
	return float64(base) * sanitizeRate(rate)
}

// ToBase converts a display amount back to the base currency, rounding to the
// nearest whole base unit. Repeated round trips may drift by one unit.
// Amounts that do not fit in an int yield 0.
func ToBase(display float64, rate float64) int {
	return wholeUnits(display / sanitizeRate(rate))
}

// ParseLimit reads a base-currency limit from user input. Anything that is
// not a finite, non-negative number that fits in an int yields 0 (no limit).
func ParseLimit(s string) int {
	v, ok := parseNumber(s)
	if !ok || v < 0 {
		return 0
	}
	return wholeUnits(v)
}

// wholeUnits rounds v to an int, or returns 0 when v is not finite or out of
// int range. float64(math.MaxInt) rounds up to 2^63 on 64-bit platforms, so
// the upper bound is exclusive.
func wholeUnits(v float64) int {
	r := math.Round(v)
	if math.IsNaN(r) || r >= float64(math.MaxInt) || r <= float64(math.MinInt) {
		return 0
	}
	return int(r)
}

// ParseRate reads an exchange rate from user input. Anything that is not a
// finite, positive number yields 1.
func ParseRate(s string) float64 {
	v, ok := parseNumber(s)
	if !ok {
		return 1
	}
	return sanitizeRate(v)
}

// SetLimitFromDisplay updates settings.Limit from an amount typed in the
// display currency.
func SetLimitFromDisplay(settings domain.BudgetSettings, input string) domain.BudgetSettings {
	v, ok := parseNumber(input)
	if !ok || v < 0 {
		settings.Limit = 0
		return settings
	}
	settings.Limit = ToBase(v, settings.ExchangeRate)
	return settings
}

// Summary is the budget view of a plan under the given settings.
type Summary struct {
	Spent        int
	Limit        int
	Remaining    int
	Percentage   float64
	IsOverBudget bool
	Breakdown    []domain.CategoryTotal
	Currency     string
	Rate         float64
}

// Summarize computes the full budget view. A zero limit means no limit: it
// never reports over budget and its percentage is 0.
func Summarize(plan domain.Plan, settings domain.BudgetSettings) Summary {
	spent := CalculateTotal(plan)
	limit := max(settings.Limit, 0)
	s := Summary{
		Spent:        spent,
		Limit:        limit,
		Remaining:    limit - spent,
		Percentage:   Percentage(spent, limit),
		IsOverBudget: IsOverBudget(spent, limit),
		Breakdown:    CalculateBreakdown(plan),
		Currency:     settings.Currency,
		Rate:         sanitizeRate(settings.ExchangeRate),
	}
	if s.Currency == "" {
		s.Currency = domain.DefaultBaseCurrency
	}
	return s
}

// IsOverBudget reports spent > limit for a set (positive) limit.
func IsOverBudget(spent, limit int) bool {
	return limit > 0 && spent > limit
}

// Percentage returns spent as a share of limit in [0, 100], or 0 without a limit.
func Percentage(spent, limit int) float64 {
	if limit <= 0 {
		return 0
	}
	return math.Max(0, math.Min(float64(spent)/float64(limit), 1)) * 100
}

func sanitizeRate(rate float64) float64 {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 1
	}
	return rate
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
