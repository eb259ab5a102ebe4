package budget

import (
	"sort"
	"strings"

	"github.com/alexanderramin/itinera/internal/domain"
)

// Rates maps a display currency code to display units per base unit.
type Rates map[string]float64

// DefaultRates are fallback rates against JPY used when the config file does
// not list any.
var DefaultRates = Rates{
	"JPY": 1,
	"USD": 0.0067,
	"EUR": 0.0062,
	"GBP": 0.0053,
	"TWD": 0.21,
	"KRW": 9.2,
}

// RateFor looks up code case-insensitively.
func (r Rates) RateFor(code string) (float64, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	rate, ok := r[code]
	if !ok {
		return 1, false
	}
	return sanitizeRate(rate), true
}

// Codes returns the known currency codes sorted alphabetically.
func (r Rates) Codes() []string {
	codes := make([]string, 0, len(r))
	for c := range r {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// WithCurrency switches the display currency, taking the rate from r. Unknown
// codes fall back to the base currency at rate 1. The limit is untouched since
// it is stored in the base currency.
func (r Rates) WithCurrency(settings domain.BudgetSettings, code string) (domain.BudgetSettings, bool) {
	rate, ok := r.RateFor(code)
	if !ok {
		settings.Currency = domain.DefaultBaseCurrency
		settings.ExchangeRate = 1
		return settings, false
	}
	settings.Currency = strings.ToUpper(strings.TrimSpace(code))
	settings.ExchangeRate = rate
	return settings, true
}
