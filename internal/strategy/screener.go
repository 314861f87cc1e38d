package strategy

import (
	"math"

	"PortfolioAdvisor/internal/calculator"
	"PortfolioAdvisor/internal/model"
)

// GrahamOK applies the value screen to a non-ETF ticker's fundamentals:
// a cheap-by-both-ratios pass (P/E < 19 and P/B < 2.0) or a blended pass
// (P/E x P/B < 38 with P/E < 100 and P/B < 10), plus a non-negative
// dividend yield and debt/equity under 2. Defaulted +Inf ratios fail the
// screen, so "unknown" reads as "unattractive".
func GrahamOK(f *model.Fundamentals) bool {
	valuation := (f.PERatio < 19 && f.PBRatio < 2.0) ||
		(f.PERatio*f.PBRatio < 38 && f.PERatio < 100 && f.PBRatio < 10)
	return valuation && f.DividendYield >= 0 && f.DebtToEquity < 2
}

// GrahamBuyThreshold returns the price at which P/E x P/B would equal 38,
// shaded by grahamMargin. When EPS or book value is unusable it falls back
// to the VWAP-derived buy threshold.
func GrahamBuyThreshold(f *model.Fundamentals, vwapBuyThreshold, grahamMargin float64) float64 {
	if f.EPS > 0 && f.BookValue > 0 {
		return calculator.Round2(math.Sqrt(38*f.EPS*f.BookValue) * grahamMargin)
	}
	return vwapBuyThreshold
}
