package model

// TrendDirection classifies a month-over-month spending change.
type TrendDirection string

const (
	// TrendIncreasing means spending rose by at least the significance threshold.
	TrendIncreasing TrendDirection = "increasing"
	// TrendDecreasing means spending fell by at least the significance threshold.
	TrendDecreasing TrendDirection = "decreasing"
	// TrendStable means the change was below the threshold or not computable.
	TrendStable TrendDirection = "stable"
)

// AlertSeverity grades a delinquency alert.
type AlertSeverity string

const (
	// SeverityWarning marks a card overdue within the grace period.
	SeverityWarning AlertSeverity = "warning"
	// SeverityCritical marks a card overdue past the grace period.
	SeverityCritical AlertSeverity = "critical"
)

// UserSpendingSummary is one user's aggregated debt spending across all of
// their cards.
type UserSpendingSummary struct {
	UserID              string  `json:"userId"`
	UserName            string  `json:"userName"`
	TotalSpend          float64 `json:"totalSpend"`
	CardCount           int     `json:"cardCount"`
	AverageMonthlySpend float64 `json:"averageMonthlySpend"`
}

// CategorySpending is the aggregated debt spending for one high-level
// merchant category.
type CategorySpending struct {
	CategoryCode     string  `json:"categoryCode"`
	CategoryName     string  `json:"categoryName"`
	TotalAmount      float64 `json:"totalAmount"`
	TransactionCount int     `json:"transactionCount"`
	Percentage       float64 `json:"percentage"`
}

// CreditUtilization describes a card whose drawn balance meets the high-risk
// threshold. Cards below the threshold never appear in output.
type CreditUtilization struct {
	UserID      string  `json:"userId"`
	UserName    string  `json:"userName"`
	AssignNo    string  `json:"assignNo"`
	CardName    string  `json:"cardName"`
	Limit       float64 `json:"limit"`
	Utilization float64 `json:"utilization"`
	IsHighRisk  bool    `json:"isHighRisk"`
}

// DelinquencyAlert describes a card with an unpaid statement past its due
// date.
type DelinquencyAlert struct {
	UserID           string        `json:"userId"`
	UserName         string        `json:"userName"`
	AssignNo         string        `json:"assignNo"`
	StatementAmount  float64       `json:"statementAmount"`
	StatementDueDate string        `json:"statementDueDate"`
	RemainingAmount  float64       `json:"remainingAmount"`
	DaysOverdue      int           `json:"daysOverdue"`
	Severity         AlertSeverity `json:"severity"`
}

// MonthlyTrend is one user's debt spending for one calendar month, with the
// change relative to that user's immediately preceding month of activity.
type MonthlyTrend struct {
	UserID           string         `json:"userId"`
	UserName         string         `json:"userName"`
	Month            string         `json:"month"`
	Spending         float64        `json:"spending"`
	TrendDirection   TrendDirection `json:"trendDirection"`
	PercentageChange float64        `json:"percentageChange"`
}

// Summary holds the headline counters for a run. HighRiskUsers and
// DelinquentUsers count cards, not distinct users; the names are kept for
// compatibility with the consumers of the insights feed.
type Summary struct {
	TotalUsers        int     `json:"totalUsers"`
	TotalCards        int     `json:"totalCards"`
	TotalTransactions int     `json:"totalTransactions"`
	TotalSpending     float64 `json:"totalSpending"`
	HighRiskUsers     int     `json:"highRiskUsers"`
	DelinquentUsers   int     `json:"delinquentUsers"`
}

// Insights is the composed result of one analysis run.
type Insights struct {
	UserSpending      []UserSpendingSummary `json:"userSpending"`
	CategoryBreakdown []CategorySpending    `json:"categoryBreakdown"`
	CreditUtilization []CreditUtilization   `json:"creditUtilization"`
	DelinquencyAlerts []DelinquencyAlert    `json:"delinquencyAlerts"`
	MonthlyTrends     []MonthlyTrend        `json:"monthlyTrends"`
	Summary           Summary               `json:"summary"`
}
