package insights

import (
	"fmt"
	"sort"
	"time"

	"github.com/Veraticus/cardlens/internal/model"
)

// delinquencyAlerts flags cards with an unpaid statement past its due date.
// Fully paid cards and cards not yet due are skipped. Unlike the trend
// bucketing, a malformed due date here is a hard failure: an alert with a
// bogus day count is worse than no report at all.
func (a *Analyzer) delinquencyAlerts(users []model.User, cards []model.CreditCard, now time.Time) ([]model.DelinquencyAlert, error) {
	owners := usersByID(users)

	alerts := make([]model.DelinquencyAlert, 0)
	for i := range cards {
		card := &cards[i]
		if card.RemainingStatementAmount <= 0 {
			continue
		}

		dueDate, err := parseISODate(card.StatementDueDate)
		if err != nil {
			return nil, fmt.Errorf("card %s: invalid statement due date: %w", card.AssignNo, err)
		}

		daysOverdue := int(now.Sub(dueDate).Hours() / 24)
		if daysOverdue <= 0 {
			continue
		}

		severity := model.SeverityWarning
		if daysOverdue > a.cfg.GracePeriodDays {
			severity = model.SeverityCritical
		}

		userName := card.CardName
		if owner, ok := owners[card.UserID]; ok {
			userName = owner.FullName()
		}

		alerts = append(alerts, model.DelinquencyAlert{
			UserID:           card.UserID,
			UserName:         userName,
			AssignNo:         card.AssignNo,
			StatementAmount:  card.StatementAmount,
			StatementDueDate: card.StatementDueDate,
			RemainingAmount:  card.RemainingStatementAmount,
			DaysOverdue:      daysOverdue,
			Severity:         severity,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].DaysOverdue > alerts[j].DaysOverdue
	})
	return alerts, nil
}
