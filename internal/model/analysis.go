package model

import "math"

// Decision classifies a ticker for the current run.
type Decision string

const (
	DecisionBuy   Decision = "Buy"
	DecisionSell  Decision = "Sell"
	DecisionHold  Decision = "Hold"
	DecisionError Decision = "Error"
)

// NA marks a numeric field with no value (failed fetch, or a fundamentals
// column that does not apply to ETFs).
func NA() float64 { return math.NaN() }

// IsNA reports whether a numeric field carries no value.
func IsNA(v float64) bool { return math.IsNaN(v) }

// AnalysisRow is the per-ticker output of the decision engine.
// Numeric fields are NA when Decision is Error; the three fundamentals
// columns are also NA for ETFs.
type AnalysisRow struct {
	Ticker             string
	MarketPrice        float64
	BuyThreshold       float64
	GrahamBuyThreshold float64
	ExitPrice          float64
	PERatio            float64
	PBRatio            float64
	DividendYield      float64
	Decision           Decision
}

// ErrorRow returns an AnalysisRow with all numeric fields NA.
func ErrorRow(ticker string) AnalysisRow {
	return AnalysisRow{
		Ticker:             ticker,
		MarketPrice:        NA(),
		BuyThreshold:       NA(),
		GrahamBuyThreshold: NA(),
		ExitPrice:          NA(),
		PERatio:            NA(),
		PBRatio:            NA(),
		DividendYield:      NA(),
		Decision:           DecisionError,
	}
}
