package insights

import (
	"sort"

	"github.com/Veraticus/cardlens/internal/model"
)

// creditUtilization flags cards whose drawn balance meets the high-risk
// threshold. Cards below the threshold are excluded from the result
// entirely, not merely left unflagged. A zero credit limit yields zero
// utilization rather than an error.
func (a *Analyzer) creditUtilization(users []model.User, cards []model.CreditCard) []model.CreditUtilization {
	owners := usersByID(users)

	out := make([]model.CreditUtilization, 0)
	for i := range cards {
		card := &cards[i]
		utilization := 0.0
		if card.Limit > 0 {
			utilization = card.CurrentBalance() / card.Limit
		}
		if utilization < a.cfg.HighUtilizationThreshold {
			continue
		}

		userName := card.CardName
		if owner, ok := owners[card.UserID]; ok {
			userName = owner.FullName()
		}

		out = append(out, model.CreditUtilization{
			UserID:      card.UserID,
			UserName:    userName,
			AssignNo:    card.AssignNo,
			CardName:    card.CardName,
			Limit:       card.Limit,
			Utilization: utilization,
			IsHighRisk:  true,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Utilization > out[j].Utilization
	})
	return out
}

// IsCritical reports whether a utilization entry crosses the critical
// presentation threshold. Severity grading only; inclusion is decided by the
// high threshold alone.
func (a *Analyzer) IsCritical(utilization float64) bool {
	return utilization >= a.cfg.CriticalUtilizationThreshold
}
