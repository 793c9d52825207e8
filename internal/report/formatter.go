// Package report renders an insights run for terminal display.
package report

import (
	"fmt"
	"strings"

	"github.com/Veraticus/cardlens/internal/cli"
	"github.com/Veraticus/cardlens/internal/insights"
	"github.com/Veraticus/cardlens/internal/model"
)

// maxTableRows caps how many rows each section prints; the data itself is
// already capped by the analysis config.
const maxTableRows = 10

// Formatter renders insight collections with the shared CLI styles.
type Formatter struct {
	cfg      insights.Config
	currency string
}

// NewFormatter creates a formatter. The analysis config supplies the
// critical-utilization threshold used for severity styling.
func NewFormatter(cfg insights.Config, currency string) *Formatter {
	return &Formatter{cfg: cfg, currency: currency}
}

// Render produces the full multi-section report.
func (f *Formatter) Render(result *model.Insights) string {
	if result == nil {
		return cli.FormatError("No insights available")
	}

	sections := []string{
		f.formatSummary(result.Summary),
		f.formatUserSpending(result.UserSpending),
		f.formatCategoryBreakdown(result.CategoryBreakdown),
		f.formatCreditUtilization(result.CreditUtilization),
		f.formatDelinquencyAlerts(result.DelinquencyAlerts),
		f.formatMonthlyTrends(result.MonthlyTrends),
	}

	return strings.Join(sections, "\n\n")
}

func (f *Formatter) formatSummary(summary model.Summary) string {
	content := strings.Join([]string{
		fmt.Sprintf("Users: %d    Cards: %d    Transactions: %d",
			summary.TotalUsers, summary.TotalCards, summary.TotalTransactions),
		fmt.Sprintf("Total spending: %s", f.money(summary.TotalSpending)),
		fmt.Sprintf("High-risk cards: %s    Delinquent cards: %s",
			f.count(summary.HighRiskUsers), f.count(summary.DelinquentUsers)),
	}, "\n")

	return cli.RenderBox(cli.ChartIcon+" Financial Insights", content)
}

func (f *Formatter) formatUserSpending(spending []model.UserSpendingSummary) string {
	title := cli.TitleStyle.Render("Top Spenders")
	if len(spending) == 0 {
		return title + "\n" + cli.SubtleStyle.Render("No spending data")
	}

	var rows []string
	rows = append(rows, cli.TableHeaderStyle.Render(
		fmt.Sprintf("%-28s %6s %14s %14s", "User", "Cards", "Total", "Avg/Month")))
	for i, entry := range spending {
		if i == maxTableRows {
			rows = append(rows, cli.SubtleStyle.Render(
				fmt.Sprintf("… and %d more", len(spending)-maxTableRows)))
			break
		}
		rows = append(rows, fmt.Sprintf("%-28s %6d %14s %14s",
			truncate(entry.UserName, 28), entry.CardCount,
			f.money(entry.TotalSpend), f.money(entry.AverageMonthlySpend)))
	}

	return title + "\n" + strings.Join(rows, "\n")
}

func (f *Formatter) formatCategoryBreakdown(breakdown []model.CategorySpending) string {
	title := cli.TitleStyle.Render("Spending by Category")
	if len(breakdown) == 0 {
		return title + "\n" + cli.SubtleStyle.Render("No categorized spending")
	}

	var rows []string
	rows = append(rows, cli.TableHeaderStyle.Render(
		fmt.Sprintf("%-24s %14s %8s %8s", "Category", "Amount", "Txns", "Share")))
	for _, entry := range breakdown {
		rows = append(rows, fmt.Sprintf("%-24s %14s %8d %7.1f%%",
			truncate(entry.CategoryName, 24), f.money(entry.TotalAmount),
			entry.TransactionCount, entry.Percentage))
	}

	return title + "\n" + strings.Join(rows, "\n")
}

func (f *Formatter) formatCreditUtilization(utilization []model.CreditUtilization) string {
	title := cli.TitleStyle.Render("High Credit Utilization")
	if len(utilization) == 0 {
		return title + "\n" + cli.FormatSuccess("No cards above the high-utilization threshold")
	}

	var rows []string
	for _, entry := range utilization {
		line := fmt.Sprintf("%s (%s): %.0f%% of %s limit",
			entry.UserName, entry.CardName, entry.Utilization*100, f.money(entry.Limit))
		if entry.Utilization >= f.cfg.CriticalUtilizationThreshold {
			rows = append(rows, cli.CriticalStyle.Render(cli.AlertIcon+" "+line))
		} else {
			rows = append(rows, cli.FormatWarning(line))
		}
	}

	return title + "\n" + strings.Join(rows, "\n")
}

func (f *Formatter) formatDelinquencyAlerts(alerts []model.DelinquencyAlert) string {
	title := cli.TitleStyle.Render("Delinquency Alerts")
	if len(alerts) == 0 {
		return title + "\n" + cli.FormatSuccess("No overdue statements")
	}

	var rows []string
	for _, alert := range alerts {
		line := fmt.Sprintf("%s: %s outstanding, %d days overdue (due %s)",
			alert.UserName, f.money(alert.RemainingAmount),
			alert.DaysOverdue, alert.StatementDueDate)
		if alert.Severity == model.SeverityCritical {
			rows = append(rows, cli.CriticalStyle.Render(cli.AlertIcon+" "+line))
		} else {
			rows = append(rows, cli.FormatWarning(line))
		}
	}

	return title + "\n" + strings.Join(rows, "\n")
}

func (f *Formatter) formatMonthlyTrends(trends []model.MonthlyTrend) string {
	title := cli.TitleStyle.Render("Monthly Trends")
	if len(trends) == 0 {
		return title + "\n" + cli.SubtleStyle.Render("No monthly activity")
	}

	var rows []string
	for i, trend := range trends {
		if i == maxTableRows {
			rows = append(rows, cli.SubtleStyle.Render(
				fmt.Sprintf("… and %d more", len(trends)-maxTableRows)))
			break
		}
		rows = append(rows, fmt.Sprintf("%s  %-24s %14s  %s",
			trend.Month, truncate(trend.UserName, 24),
			f.money(trend.Spending), f.direction(trend)))
	}

	return title + "\n" + strings.Join(rows, "\n")
}

func (f *Formatter) direction(trend model.MonthlyTrend) string {
	switch trend.TrendDirection {
	case model.TrendIncreasing:
		return cli.ErrorStyle.Render(fmt.Sprintf("↑ %+.1f%%", trend.PercentageChange))
	case model.TrendDecreasing:
		return cli.SuccessStyle.Render(fmt.Sprintf("↓ %+.1f%%", trend.PercentageChange))
	default:
		return cli.SubtleStyle.Render("→ stable")
	}
}

func (f *Formatter) money(amount float64) string {
	return fmt.Sprintf("%s%.2f", f.currency, amount)
}

func (f *Formatter) count(n int) string {
	s := fmt.Sprintf("%d", n)
	if n > 0 {
		return cli.WarningStyle.Render(s)
	}
	return cli.SuccessStyle.Render(s)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return s[:maxLen]
	}
	return s[:maxLen-1] + "…"
}
