// Package insights derives spending and risk insights from the raw card
// datasets. The analysis is a pure, synchronous computation: the same input
// and reference time always produce the same output.
package insights

// Config carries the business rules for an analysis run. Zero values are
// replaced with the documented defaults by NewAnalyzer, so a partially
// populated Config is safe to use in tests.
type Config struct {
	// HighUtilizationThreshold is the utilization ratio at or above which a
	// card is high risk and appears in the utilization output.
	HighUtilizationThreshold float64
	// CriticalUtilizationThreshold grades presentation severity only; it
	// never affects which cards are included.
	CriticalUtilizationThreshold float64
	// DebtIndicators are the DebtOrCredit values that mark a transaction as
	// spending. Matching is exact and case-sensitive.
	DebtIndicators []string
	// CreditIndicators are the DebtOrCredit values that mark a payment or
	// refund. Not consulted by the aggregations, which only test for debt.
	CreditIndicators []string
	// GracePeriodDays is how many days past due a statement may be before an
	// alert escalates from warning to critical.
	GracePeriodDays int
	// TrendMonths is the fixed period length, in months, used as the divisor
	// for average monthly spend.
	TrendMonths int
	// SignificantChangeThreshold is the minimum month-over-month fractional
	// change (0.15 = 15%) for a trend to leave "stable".
	SignificantChangeThreshold float64
	// MaxUsersDisplay caps the user spending output, ranked by total spend.
	MaxUsersDisplay int
	// MaxCategoryDisplay caps the category breakdown, ranked by amount.
	MaxCategoryDisplay int
}

// DefaultConfig returns the standard analysis rules.
func DefaultConfig() Config {
	return Config{
		HighUtilizationThreshold:     0.80,
		CriticalUtilizationThreshold: 0.95,
		DebtIndicators:               []string{"B", "Debt"},
		CreditIndicators:             []string{"A", "Credit"},
		GracePeriodDays:              7,
		TrendMonths:                  6,
		SignificantChangeThreshold:   0.15,
		MaxUsersDisplay:              50,
		MaxCategoryDisplay:           10,
	}
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.HighUtilizationThreshold <= 0 {
		c.HighUtilizationThreshold = defaults.HighUtilizationThreshold
	}
	if c.CriticalUtilizationThreshold <= 0 {
		c.CriticalUtilizationThreshold = defaults.CriticalUtilizationThreshold
	}
	if len(c.DebtIndicators) == 0 {
		c.DebtIndicators = defaults.DebtIndicators
	}
	if len(c.CreditIndicators) == 0 {
		c.CreditIndicators = defaults.CreditIndicators
	}
	if c.GracePeriodDays <= 0 {
		c.GracePeriodDays = defaults.GracePeriodDays
	}
	if c.TrendMonths <= 0 {
		c.TrendMonths = defaults.TrendMonths
	}
	if c.SignificantChangeThreshold <= 0 {
		c.SignificantChangeThreshold = defaults.SignificantChangeThreshold
	}
	if c.MaxUsersDisplay <= 0 {
		c.MaxUsersDisplay = defaults.MaxUsersDisplay
	}
	if c.MaxCategoryDisplay <= 0 {
		c.MaxCategoryDisplay = defaults.MaxCategoryDisplay
	}
}
