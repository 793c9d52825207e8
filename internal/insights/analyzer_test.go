package insights

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Veraticus/cardlens/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Shared fixture helpers for the engine tests.

func testUser(id, name, surname string) model.User {
	return model.User{ID: id, Name: name, Surname: surname}
}

func testCard(userID, assignNo string, limit, available float64) model.CreditCard {
	return model.CreditCard{
		UserID:         userID,
		AssignNo:       assignNo,
		CardName:       "Card " + assignNo,
		Limit:          limit,
		AvailableLimit: available,
	}
}

func debtTxn(amount float64, date, mcc string) model.Transaction {
	return model.Transaction{
		Amount:               amount,
		Date:                 date,
		DebtOrCredit:         "B",
		MerchantCategoryCode: mcc,
	}
}

func creditTxn(amount float64, date string) model.Transaction {
	return model.Transaction{
		Amount:       amount,
		Date:         date,
		DebtOrCredit: "A",
	}
}

func testNow(t *testing.T) time.Time {
	t.Helper()
	now, err := time.Parse("2006-01-02", "2024-06-15")
	require.NoError(t, err)
	return now
}

func TestAnalyzeSummary(t *testing.T) {
	data := &model.RawData{
		Users: []model.User{
			testUser("u1", "Ayşe", "Yılmaz"),
			testUser("u2", "Mehmet", "Demir"),
		},
		CreditCards: []model.CreditCard{
			testCard("u1", "c1", 1000, 100), // 90% utilization, high risk
			testCard("u2", "c2", 1000, 900),
		},
		Transactions: map[string][]model.Transaction{
			"c1": {debtTxn(100, "2024-01-10", "5411"), creditTxn(200, "2024-01-12")},
			"c2": {debtTxn(50, "2024-02-01", "5812")},
		},
	}

	analyzer := NewAnalyzer(Config{})
	result, err := analyzer.Analyze(data, testNow(t))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Summary.TotalUsers)
	assert.Equal(t, 2, result.Summary.TotalCards)
	// Every transaction counts once, debt or credit.
	assert.Equal(t, 3, result.Summary.TotalTransactions)
	assert.InDelta(t, 150.0, result.Summary.TotalSpending, 1e-9)
	assert.Equal(t, 1, result.Summary.HighRiskUsers)
	assert.Equal(t, 0, result.Summary.DelinquentUsers)
}

func TestAnalyzeIdempotent(t *testing.T) {
	data := &model.RawData{
		Users: []model.User{
			testUser("u1", "Ayşe", "Yılmaz"),
			testUser("u2", "Mehmet", "Demir"),
			testUser("u3", "Zeynep", "Kaya"),
		},
		CreditCards: []model.CreditCard{
			testCard("u1", "c1", 1000, 50),
			testCard("u2", "c2", 2000, 1500),
			testCard("u3", "c3", 500, 0),
		},
		Transactions: map[string][]model.Transaction{
			"c1": {debtTxn(100, "2024-01-10", "5411"), debtTxn(-30, "2024-02-05", "5812")},
			"c2": {debtTxn(75, "2024-01-20", "4121"), creditTxn(75, "2024-01-25")},
			"c3": {debtTxn(12.5, "2024-03-01", "9311")},
		},
	}
	now := testNow(t)

	analyzer := NewAnalyzer(Config{})
	first, err := analyzer.Analyze(data, now)
	require.NoError(t, err)
	second, err := analyzer.Analyze(data, now)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
}

func TestAnalyzeUnknownReferencesContributeNothing(t *testing.T) {
	data := &model.RawData{
		Users: []model.User{testUser("u1", "Ayşe", "Yılmaz")},
		CreditCards: []model.CreditCard{
			testCard("u1", "c1", 1000, 1000),
			testCard("ghost", "c2", 1000, 1000), // user does not exist
		},
		Transactions: map[string][]model.Transaction{
			"c1":     {debtTxn(40, "2024-01-10", "5411")},
			"c2":     {debtTxn(999, "2024-01-10", "5411")}, // dropped from user aggregations
			"orphan": {debtTxn(500, "2024-01-10", "5411")}, // no such card
		},
	}

	analyzer := NewAnalyzer(Config{})
	result, err := analyzer.Analyze(data, testNow(t))
	require.NoError(t, err)

	require.Len(t, result.UserSpending, 1)
	assert.InDelta(t, 40.0, result.UserSpending[0].TotalSpend, 1e-9)

	for _, trend := range result.MonthlyTrends {
		assert.Equal(t, "u1", trend.UserID)
	}

	// The category breakdown has no user context and keeps all debt
	// transactions, resolvable or not.
	total := 0.0
	for _, entry := range result.CategoryBreakdown {
		total += entry.TotalAmount
	}
	assert.InDelta(t, 40+999+500, total, 1e-9)
}

func TestAnalyzeEmptyData(t *testing.T) {
	data := &model.RawData{Transactions: map[string][]model.Transaction{}}

	analyzer := NewAnalyzer(Config{})
	result, err := analyzer.Analyze(data, testNow(t))
	require.NoError(t, err)

	assert.Empty(t, result.UserSpending)
	assert.Empty(t, result.CategoryBreakdown)
	assert.Empty(t, result.CreditUtilization)
	assert.Empty(t, result.DelinquencyAlerts)
	assert.Empty(t, result.MonthlyTrends)
	assert.Equal(t, model.Summary{}, result.Summary)
}

func TestNewAnalyzerAppliesDefaults(t *testing.T) {
	analyzer := NewAnalyzer(Config{MaxUsersDisplay: 5})
	cfg := analyzer.Config()

	assert.Equal(t, 5, cfg.MaxUsersDisplay)
	assert.InDelta(t, 0.80, cfg.HighUtilizationThreshold, 1e-9)
	assert.InDelta(t, 0.95, cfg.CriticalUtilizationThreshold, 1e-9)
	assert.Equal(t, []string{"B", "Debt"}, cfg.DebtIndicators)
	assert.Equal(t, 7, cfg.GracePeriodDays)
	assert.Equal(t, 6, cfg.TrendMonths)
	assert.Equal(t, 10, cfg.MaxCategoryDisplay)
}
