package allocator

import (
	"math"

	"PortfolioAdvisor/internal/model"
)

// ActionThreshold is the materiality gate: an adjustment smaller than 20% of
// the current position is churn, not an action.
const ActionThreshold = 0.2

// SplitActions filters the sized portfolio into buy and sell tables. A
// position is actionable iff |adjustment/quantity| > ActionThreshold; a
// brand-new position (zero current shares) is always actionable. Rows with
// an NA adjustment (failed analysis) are never actionable, and no ticker
// can appear in both tables.
func SplitActions(rows []model.PortfolioRow) (buys, sells []model.ActionRow) {
	for _, r := range rows {
		if !actionable(r) {
			continue
		}
		action := model.ActionRow{
			Ticker:             r.Ticker,
			CurrentQuantity:    r.TotalQuantity,
			Adjustment:         r.Adjustment,
			MarketPrice:        r.MarketPrice,
			BuyThreshold:       r.BuyThreshold,
			GrahamBuyThreshold: r.GrahamBuyThreshold,
			ExitPrice:          r.ExitPrice,
			TargetPrice:        r.TargetPrice,
			Decision:           r.Decision,
		}
		switch {
		case r.Adjustment > 0:
			buys = append(buys, action)
		case r.Adjustment < 0:
			sells = append(sells, action)
		}
	}
	return buys, sells
}

func actionable(r model.PortfolioRow) bool {
	if model.IsNA(r.Adjustment) {
		return false
	}
	if r.TotalQuantity == 0 {
		return true
	}
	return math.Abs(r.Adjustment/r.TotalQuantity) > ActionThreshold
}
