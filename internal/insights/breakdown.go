package insights

import (
	"math"
	"sort"

	"github.com/Veraticus/cardlens/internal/category"
	"github.com/Veraticus/cardlens/internal/model"
)

// categoryBreakdown sums debt transactions by high-level merchant category
// across every card, with each category's share of the grand total. No
// user or card context is needed; unresolvable groups still count here.
func (a *Analyzer) categoryBreakdown(groups map[string][]model.Transaction) []model.CategorySpending {
	type bucket struct {
		amount float64
		count  int
	}

	order := make([]string, 0, 16)
	buckets := make(map[string]*bucket, 16)
	grandTotal := 0.0

	for _, assignNo := range sortedGroupKeys(groups) {
		for _, txn := range groups[assignNo] {
			if !a.isDebt(txn.DebtOrCredit) {
				continue
			}
			label := category.HighLevel(txn.MerchantCategoryCode)
			b, ok := buckets[label]
			if !ok {
				b = &bucket{}
				buckets[label] = b
				order = append(order, label)
			}
			amount := math.Abs(txn.Amount)
			b.amount += amount
			b.count++
			grandTotal += amount
		}
	}

	out := make([]model.CategorySpending, 0, len(order))
	for _, label := range order {
		b := buckets[label]
		percentage := 0.0
		if grandTotal > 0 {
			percentage = b.amount / grandTotal * 100
		}
		out = append(out, model.CategorySpending{
			CategoryCode:     label,
			CategoryName:     label,
			TotalAmount:      b.amount,
			TransactionCount: b.count,
			Percentage:       percentage,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalAmount > out[j].TotalAmount
	})
	if len(out) > a.cfg.MaxCategoryDisplay {
		out = out[:a.cfg.MaxCategoryDisplay]
	}
	return out
}
