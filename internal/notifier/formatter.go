package notifier

import (
	"fmt"
	"strings"

	"PortfolioAdvisor/internal/model"
	"PortfolioAdvisor/internal/report"
)

// FormatRunDigest formats one run's action tables into a Telegram message.
func FormatRunDigest(run *report.RunReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>Portfolio Advisor</b> | %s\n\n", run.GeneratedAt.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Portfolio value: $%.2f\n", run.Portfolio.TotalValue))
	b.WriteString(fmt.Sprintf("Positions: %d | Errors: %d\n\n", len(run.Portfolio.Rows), countErrors(run.Analysis)))

	if len(run.Buys) == 0 && len(run.Sells) == 0 {
		b.WriteString("No actionable adjustments today.\n")
		return b.String()
	}

	if len(run.Buys) > 0 {
		b.WriteString("🟢 <b>Buys:</b>\n")
		for _, a := range run.Buys {
			b.WriteString(fmt.Sprintf("  %s: %+.0f sh @ %s (buy ≤ %s)\n",
				a.Ticker, a.Adjustment, money(a.MarketPrice), money(a.BuyThreshold)))
		}
		b.WriteString("\n")
	}
	if len(run.Sells) > 0 {
		b.WriteString("🔴 <b>Sells:</b>\n")
		for _, a := range run.Sells {
			b.WriteString(fmt.Sprintf("  %s: %+.0f sh @ %s (exit ≥ %s, target %s)\n",
				a.Ticker, a.Adjustment, money(a.MarketPrice), money(a.ExitPrice), money(a.TargetPrice)))
		}
	}

	return b.String()
}

func countErrors(rows []model.AnalysisRow) int {
	n := 0
	for _, r := range rows {
		if r.Decision == model.DecisionError {
			n++
		}
	}
	return n
}

func money(v float64) string {
	if model.IsNA(v) {
		return "n/a"
	}
	return fmt.Sprintf("$%.2f", v)
}
