package insights

import (
	"sort"
	"time"

	"github.com/Veraticus/cardlens/internal/model"
)

// Analyzer runs the full insight derivation against a raw dataset.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates an analyzer, filling any unset Config fields with the
// documented defaults.
func NewAnalyzer(cfg Config) *Analyzer {
	cfg.applyDefaults()
	return &Analyzer{cfg: cfg}
}

// Config returns the effective configuration after defaults were applied.
func (a *Analyzer) Config() Config {
	return a.cfg
}

// Analyze derives the five insight collections and the summary. The
// reference time `now` anchors the delinquency check; everything else is
// independent of the clock. A malformed statement due date aborts the whole
// run — the caller decides how to surface that.
func (a *Analyzer) Analyze(data *model.RawData, now time.Time) (*model.Insights, error) {
	userSpending := a.userSpending(data)
	categoryBreakdown := a.categoryBreakdown(data.Transactions)
	creditUtilization := a.creditUtilization(data.Users, data.CreditCards)

	delinquencyAlerts, err := a.delinquencyAlerts(data.Users, data.CreditCards, now)
	if err != nil {
		return nil, err
	}

	monthlyTrends := a.monthlyTrends(data)

	totalSpending := 0.0
	for _, summary := range userSpending {
		totalSpending += summary.TotalSpend
	}

	return &model.Insights{
		UserSpending:      userSpending,
		CategoryBreakdown: categoryBreakdown,
		CreditUtilization: creditUtilization,
		DelinquencyAlerts: delinquencyAlerts,
		MonthlyTrends:     monthlyTrends,
		Summary: model.Summary{
			TotalUsers:        len(data.Users),
			TotalCards:        len(data.CreditCards),
			TotalTransactions: data.TransactionCount(),
			TotalSpending:     totalSpending,
			HighRiskUsers:     len(creditUtilization),
			DelinquentUsers:   len(delinquencyAlerts),
		},
	}, nil
}

// isDebt reports whether a DebtOrCredit value marks spending. Exact match
// only: anything outside the indicator set is simply omitted from the spend
// aggregations, debt or not.
func (a *Analyzer) isDebt(debtOrCredit string) bool {
	for _, indicator := range a.cfg.DebtIndicators {
		if debtOrCredit == indicator {
			return true
		}
	}
	return false
}

// cardsByAssignNo indexes cards by their group key.
func cardsByAssignNo(cards []model.CreditCard) map[string]*model.CreditCard {
	index := make(map[string]*model.CreditCard, len(cards))
	for i := range cards {
		index[cards[i].AssignNo] = &cards[i]
	}
	return index
}

// usersByID indexes users by their join key.
func usersByID(users []model.User) map[string]*model.User {
	index := make(map[string]*model.User, len(users))
	for i := range users {
		index[users[i].ID] = &users[i]
	}
	return index
}

// sortedGroupKeys returns the transaction group keys in a fixed order so
// that floating-point accumulation is identical between runs.
func sortedGroupKeys(groups map[string][]model.Transaction) []string {
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
