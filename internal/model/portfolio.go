package model

import "time"

// PortfolioRow joins a TickerSummary with its AnalysisRow and the sizing
// figures computed by the allocator. Monetary fields are NA when the
// ticker's analysis failed.
type PortfolioRow struct {
	Ticker                  string
	AlphaPicked             bool
	QuantRating             float64
	AssetClass              string
	Sector                  string
	WeightedAvgPurchaseDate time.Time
	TotalCost               float64
	TotalQuantity           float64
	AvgPurchasePrice        float64

	MarketPrice        float64
	BuyThreshold       float64
	GrahamBuyThreshold float64
	ExitPrice          float64
	PERatio            float64
	PBRatio            float64
	DividendYield      float64
	Decision           Decision

	Value        float64
	WeightPct    float64
	TotalReturn  float64
	ROI          float64
	YearsHeld    float64
	TargetPrice  float64
	CAGR         float64
	DesiredValue float64
	Adjustment   float64 // desired share delta, rounded to whole shares
}

// ActionRow is one entry of the buys or sells table.
type ActionRow struct {
	Ticker             string
	CurrentQuantity    float64
	Adjustment         float64
	MarketPrice        float64
	BuyThreshold       float64
	GrahamBuyThreshold float64
	ExitPrice          float64
	TargetPrice        float64
	Decision           Decision
}
