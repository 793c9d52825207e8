package insights

import (
	"testing"

	"github.com/Veraticus/cardlens/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trendData(transactions map[string][]model.Transaction) *model.RawData {
	return &model.RawData{
		Users:        []model.User{testUser("u1", "Ayşe", "Yılmaz")},
		CreditCards:  []model.CreditCard{testCard("u1", "c1", 1000, 1000)},
		Transactions: transactions,
	}
}

func TestMonthlyTrends(t *testing.T) {
	t.Run("thirty percent rise is increasing", func(t *testing.T) {
		data := trendData(map[string][]model.Transaction{
			"c1": {
				debtTxn(100, "2024-01-10", "5411"),
				debtTxn(130, "2024-02-10", "5411"),
			},
		})

		analyzer := NewAnalyzer(Config{})
		got := analyzer.monthlyTrends(data)

		require.Len(t, got, 2)
		first, second := got[0], got[1]
		assert.Equal(t, "Feb 2024", first.Month) // lexical label sort: Feb < Jan
		assert.Equal(t, "Jan 2024", second.Month)

		assert.Equal(t, model.TrendStable, second.TrendDirection)
		assert.InDelta(t, 0, second.PercentageChange, 1e-9)
		assert.Equal(t, model.TrendIncreasing, first.TrendDirection)
		assert.InDelta(t, 30, first.PercentageChange, 1e-9)
	})

	t.Run("change below the threshold stays stable", func(t *testing.T) {
		data := trendData(map[string][]model.Transaction{
			"c1": {
				debtTxn(100, "2024-01-10", "5411"),
				debtTxn(110, "2024-02-10", "5411"),
			},
		})

		analyzer := NewAnalyzer(Config{})
		got := analyzer.monthlyTrends(data)

		require.Len(t, got, 2)
		for _, trend := range got {
			if trend.Month == "Feb 2024" {
				assert.Equal(t, model.TrendStable, trend.TrendDirection)
				assert.InDelta(t, 10, trend.PercentageChange, 1e-9)
			}
		}
	})

	t.Run("zero previous month is not computable and stays stable", func(t *testing.T) {
		data := trendData(map[string][]model.Transaction{
			"c1": {
				debtTxn(0, "2024-01-10", "5411"),
				debtTxn(130, "2024-02-10", "5411"),
			},
		})

		analyzer := NewAnalyzer(Config{})
		got := analyzer.monthlyTrends(data)

		require.Len(t, got, 2)
		for _, trend := range got {
			assert.Equal(t, model.TrendStable, trend.TrendDirection)
			assert.InDelta(t, 0, trend.PercentageChange, 1e-9)
		}
	})

	t.Run("sharp drop is decreasing", func(t *testing.T) {
		data := trendData(map[string][]model.Transaction{
			"c1": {
				debtTxn(200, "2024-01-10", "5411"),
				debtTxn(100, "2024-02-10", "5411"),
			},
		})

		analyzer := NewAnalyzer(Config{})
		got := analyzer.monthlyTrends(data)

		require.Len(t, got, 2)
		for _, trend := range got {
			if trend.Month == "Feb 2024" {
				assert.Equal(t, model.TrendDecreasing, trend.TrendDirection)
				assert.InDelta(t, -50, trend.PercentageChange, 1e-9)
			}
		}
	})

	t.Run("invalid transaction date is skipped without failing", func(t *testing.T) {
		data := trendData(map[string][]model.Transaction{
			"c1": {
				debtTxn(100, "garbage", "5411"),
				debtTxn(50, "2024-02-10", "5411"),
			},
		})

		analyzer := NewAnalyzer(Config{})
		got := analyzer.monthlyTrends(data)

		require.Len(t, got, 1)
		assert.Equal(t, "Feb 2024", got[0].Month)
		assert.InDelta(t, 50, got[0].Spending, 1e-9)
	})

	t.Run("credits never reach the buckets", func(t *testing.T) {
		data := trendData(map[string][]model.Transaction{
			"c1": {
				debtTxn(100, "2024-01-10", "5411"),
				creditTxn(400, "2024-01-12"),
			},
		})

		analyzer := NewAnalyzer(Config{})
		got := analyzer.monthlyTrends(data)

		require.Len(t, got, 1)
		assert.InDelta(t, 100, got[0].Spending, 1e-9)
	})
}

func TestMonthlyTrendsLexicalLabelOrdering(t *testing.T) {
	// The combined output is sorted by the formatted label, which puts
	// "Apr 2025" ahead of "Dec 2024". This ordering is part of the output
	// contract even though it is not chronological.
	data := trendData(map[string][]model.Transaction{
		"c1": {
			debtTxn(100, "2024-12-10", "5411"),
			debtTxn(100, "2025-04-10", "5411"),
		},
	})

	analyzer := NewAnalyzer(Config{})
	got := analyzer.monthlyTrends(data)

	require.Len(t, got, 2)
	assert.Equal(t, "Apr 2025", got[0].Month)
	assert.Equal(t, "Dec 2024", got[1].Month)
}

func TestMonthlyTrendsPerUserComparison(t *testing.T) {
	// Each user's change is computed against their own previous month, not
	// the combined stream.
	data := &model.RawData{
		Users: []model.User{
			testUser("u1", "Ayşe", "Yılmaz"),
			testUser("u2", "Mehmet", "Demir"),
		},
		CreditCards: []model.CreditCard{
			testCard("u1", "c1", 1000, 1000),
			testCard("u2", "c2", 1000, 1000),
		},
		Transactions: map[string][]model.Transaction{
			"c1": {debtTxn(100, "2024-01-10", "5411"), debtTxn(200, "2024-02-10", "5411")},
			"c2": {debtTxn(1000, "2024-01-10", "5411"), debtTxn(1000, "2024-02-10", "5411")},
		},
	}

	analyzer := NewAnalyzer(Config{})
	got := analyzer.monthlyTrends(data)
	require.Len(t, got, 4)

	for _, trend := range got {
		if trend.UserID == "u1" && trend.Month == "Feb 2024" {
			assert.Equal(t, model.TrendIncreasing, trend.TrendDirection)
			assert.InDelta(t, 100, trend.PercentageChange, 1e-9)
		}
		if trend.UserID == "u2" && trend.Month == "Feb 2024" {
			assert.Equal(t, model.TrendStable, trend.TrendDirection)
		}
	}
}
