package insights

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/Veraticus/cardlens/internal/model"
)

const (
	monthKeyLayout   = "2006-01"
	monthLabelLayout = "Jan 2006"
)

// monthlyTrends buckets each user's debt spending by calendar month and
// grades the month-over-month change against the significance threshold.
// A transaction with an unparseable date is logged and skipped; unlike the
// delinquency due date it never fails the run.
func (a *Analyzer) monthlyTrends(data *model.RawData) []model.MonthlyTrend {
	cards := cardsByAssignNo(data.CreditCards)

	// userID -> month key -> accumulated debt spend.
	monthly := make(map[string]map[string]float64, len(data.Users))
	for i := range data.Users {
		monthly[data.Users[i].ID] = make(map[string]float64)
	}

	for _, assignNo := range sortedGroupKeys(data.Transactions) {
		card, ok := cards[assignNo]
		if !ok {
			continue
		}
		buckets, ok := monthly[card.UserID]
		if !ok {
			continue
		}
		for _, txn := range data.Transactions[assignNo] {
			if !a.isDebt(txn.DebtOrCredit) {
				continue
			}
			when, err := parseISODate(txn.Date)
			if err != nil {
				slog.Warn("skipping transaction with invalid date",
					"assign_no", assignNo,
					"transaction_id", txn.TransactionID,
					"date", txn.Date)
				continue
			}
			buckets[when.Format(monthKeyLayout)] += math.Abs(txn.Amount)
		}
	}

	trends := make([]model.MonthlyTrend, 0)
	for i := range data.Users {
		user := &data.Users[i]
		buckets := monthly[user.ID]

		months := make([]string, 0, len(buckets))
		for month := range buckets {
			months = append(months, month)
		}
		sort.Strings(months)

		for idx, month := range months {
			spending := buckets[month]
			direction := model.TrendStable
			change := 0.0

			// A first month, or a previous month with zero spend, has no
			// computable change and stays stable at 0%.
			if idx > 0 {
				previous := buckets[months[idx-1]]
				if previous > 0 {
					change = (spending - previous) / previous * 100
					if math.Abs(change) >= a.cfg.SignificantChangeThreshold*100 {
						if change > 0 {
							direction = model.TrendIncreasing
						} else {
							direction = model.TrendDecreasing
						}
					}
				}
			}

			monthStart, _ := time.Parse(monthKeyLayout, month)
			trends = append(trends, model.MonthlyTrend{
				UserID:           user.ID,
				UserName:         user.FullName(),
				Month:            monthStart.Format(monthLabelLayout),
				Spending:         spending,
				TrendDirection:   direction,
				PercentageChange: change,
			})
		}
	}

	// The combined output sorts by the formatted label, which is lexical,
	// not chronological, across years ("Apr 2025" before "Feb 2024"). The
	// downstream consumers were built against this ordering, so it stays.
	sort.SliceStable(trends, func(i, j int) bool {
		return trends[i].Month < trends[j].Month
	})
	return trends
}
