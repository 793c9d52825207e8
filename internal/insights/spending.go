package insights

import (
	"math"
	"sort"

	"github.com/Veraticus/cardlens/internal/model"
)

// userSpending sums debt transactions per user across all of a user's cards.
// A group whose card or owning user cannot be resolved contributes nothing.
// Users with zero cards or zero debt spending still appear with total 0 and
// are only ever removed by the display cap.
func (a *Analyzer) userSpending(data *model.RawData) []model.UserSpendingSummary {
	cards := cardsByAssignNo(data.CreditCards)

	cardCounts := make(map[string]int)
	for i := range data.CreditCards {
		cardCounts[data.CreditCards[i].UserID]++
	}

	order := make([]string, 0, len(data.Users))
	byUser := make(map[string]*model.UserSpendingSummary, len(data.Users))
	for i := range data.Users {
		user := &data.Users[i]
		byUser[user.ID] = &model.UserSpendingSummary{
			UserID:    user.ID,
			UserName:  user.FullName(),
			CardCount: cardCounts[user.ID],
		}
		order = append(order, user.ID)
	}

	for _, assignNo := range sortedGroupKeys(data.Transactions) {
		card, ok := cards[assignNo]
		if !ok {
			continue
		}
		summary, ok := byUser[card.UserID]
		if !ok {
			continue
		}
		for _, txn := range data.Transactions[assignNo] {
			if !a.isDebt(txn.DebtOrCredit) {
				continue
			}
			summary.TotalSpend += math.Abs(txn.Amount)
		}
	}

	out := make([]model.UserSpendingSummary, 0, len(order))
	for _, userID := range order {
		summary := byUser[userID]
		summary.AverageMonthlySpend = summary.TotalSpend / float64(a.cfg.TrendMonths)
		out = append(out, *summary)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalSpend > out[j].TotalSpend
	})
	if len(out) > a.cfg.MaxUsersDisplay {
		out = out[:a.cfg.MaxUsersDisplay]
	}
	return out
}
