package domain

// DefaultBaseCurrency is the unit every price and limit is stored in.
const DefaultBaseCurrency = "JPY"

// BudgetSettings holds the spending limit (base currency) and the display
// currency with its rate. ExchangeRate is display units per base unit.
type BudgetSettings struct {
	Limit        int
	Currency     string
	ExchangeRate float64
}

// DefaultBudgetSettings returns settings with no limit, displayed in the base
// currency.
func DefaultBudgetSettings() BudgetSettings {
	return BudgetSettings{
		Currency:     DefaultBaseCurrency,
		ExchangeRate: 1,
	}
}

// CategoryTotal is one line of a budget breakdown.
type CategoryTotal struct {
	Type   ItemType
	Label  string
	Amount int
	Color  string
}
