package allocator

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"PortfolioAdvisor/internal/model"
)

func testOptions() Options {
	return Options{
		HistoricalReturn: 0.35,
		InceptionDate:    time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC),
		DesiredExposure:  0.9,
		RunDate:          time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func sizerSummary(ticker string, rating, qty, cost float64) model.TickerSummary {
	return model.TickerSummary{
		Ticker:                  ticker,
		AssetClass:              "Equity",
		Sector:                  "Tech",
		QuantRating:             rating,
		TotalQuantity:           decimal.NewFromFloat(qty),
		TotalCost:               decimal.NewFromFloat(cost),
		AvgPurchasePrice:        decimal.NewFromFloat(cost / qty),
		WeightedAvgPurchaseDate: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		FirstAcquired:           time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func analysisRow(ticker string, price float64) model.AnalysisRow {
	return model.AnalysisRow{
		Ticker:             ticker,
		MarketPrice:        price,
		BuyThreshold:       price * 0.9,
		GrahamBuyThreshold: price * 0.95,
		ExitPrice:          price * 1.2,
		PERatio:            15,
		PBRatio:            1.5,
		DividendYield:      0.02,
		Decision:           model.DecisionHold,
	}
}

func TestBuildPortfolio_SizesByRating(t *testing.T) {
	summaries := []model.TickerSummary{
		sizerSummary("AAA", 5, 10, 800),
		sizerSummary("BBB", 2.5, 10, 800),
	}
	analysis := []model.AnalysisRow{
		analysisRow("AAA", 100),
		analysisRow("BBB", 100),
	}

	p := BuildPortfolio(summaries, analysis, testOptions())
	if len(p.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(p.Rows))
	}
	if p.TotalValue != 2000 {
		t.Fatalf("total value: expected 2000, got %v", p.TotalValue)
	}

	// Slot value = 2000 * 0.9 / 20 = 90, scaled by rating/5.
	byTicker := map[string]model.PortfolioRow{}
	for _, r := range p.Rows {
		byTicker[r.Ticker] = r
	}
	if got := byTicker["AAA"].DesiredValue; got != 90 {
		t.Errorf("AAA desired value: expected 90, got %v", got)
	}
	if got := byTicker["BBB"].DesiredValue; got != 45 {
		t.Errorf("BBB desired value: expected 45, got %v", got)
	}
	// Adjustment = round((desired - value) / price).
	if got := byTicker["AAA"].Adjustment; got != -9 {
		t.Errorf("AAA adjustment: expected -9, got %v", got)
	}
	if got := byTicker["AAA"].WeightPct; got != 50 {
		t.Errorf("AAA weight: expected 50, got %v", got)
	}
	if got := byTicker["AAA"].TotalReturn; got != 200 {
		t.Errorf("AAA total return: expected 200, got %v", got)
	}
	if got := byTicker["AAA"].ROI; got != 25 {
		t.Errorf("AAA ROI: expected 25, got %v", got)
	}
}

func TestBuildPortfolio_CashPositionInTotal(t *testing.T) {
	summaries := []model.TickerSummary{sizerSummary("AAA", 5, 10, 800)}
	analysis := []model.AnalysisRow{analysisRow("AAA", 100)}

	opts := testOptions()
	opts.CashPosition = 1000
	p := BuildPortfolio(summaries, analysis, opts)
	if p.TotalValue != 2000 {
		t.Errorf("total value: expected 2000 with cash, got %v", p.TotalValue)
	}
	if got := p.Rows[0].WeightPct; got != 50 {
		t.Errorf("weight: expected 50, got %v", got)
	}
}

func TestBuildPortfolio_RatingCutoffZeroesAllocation(t *testing.T) {
	// 21 tickers, ratings 5.0 down to 0 in steps of 0.25. The 20th-highest
	// rating is 0.25, so only the bottom ticker gets no allocation.
	var summaries []model.TickerSummary
	var analysis []model.AnalysisRow
	for i := 0; i <= 20; i++ {
		ticker := fmt.Sprintf("T%02d", i)
		summaries = append(summaries, sizerSummary(ticker, 5-float64(i)*0.25, 10, 800))
		analysis = append(analysis, analysisRow(ticker, 100))
	}

	p := BuildPortfolio(summaries, analysis, testOptions())
	if p.RatingCutoff != 0.25 {
		t.Fatalf("rating cutoff: expected 0.25, got %v", p.RatingCutoff)
	}
	for _, r := range p.Rows {
		if r.Ticker == "T20" {
			if r.DesiredValue != 0 {
				t.Errorf("below cutoff: expected zero desired value, got %v", r.DesiredValue)
			}
			if r.Adjustment != -10 {
				t.Errorf("below cutoff: expected full unwind of 10 shares, got %v", r.Adjustment)
			}
		} else if r.DesiredValue == 0 {
			t.Errorf("%s: unexpected zero desired value at rating %v", r.Ticker, r.QuantRating)
		}
	}
}

func TestBuildPortfolio_RetentionFilter(t *testing.T) {
	// ZRO holds nothing and is rated at (not above) the retain cutoff, so it
	// drops out; NEW holds nothing but outranks the cutoff and stays in.
	summaries := []model.TickerSummary{
		sizerSummary("AAA", 4, 10, 800),
		sizerSummary("NEW", 5, 10, 800),
		sizerSummary("ZRO", 3, 10, 800),
	}
	summaries[1].TotalQuantity = decimal.Zero
	summaries[2].TotalQuantity = decimal.Zero
	analysis := []model.AnalysisRow{
		analysisRow("AAA", 100),
		analysisRow("NEW", 100),
		analysisRow("ZRO", 100),
	}

	p := BuildPortfolio(summaries, analysis, testOptions())
	if p.RetainCutoff != 3 {
		t.Fatalf("retain cutoff: expected 3, got %v", p.RetainCutoff)
	}
	tickers := map[string]bool{}
	for _, r := range p.Rows {
		tickers[r.Ticker] = true
	}
	if !tickers["AAA"] || !tickers["NEW"] {
		t.Errorf("expected AAA and NEW retained, got %v", tickers)
	}
	if tickers["ZRO"] {
		t.Error("expected ZRO dropped: zero position at the retain cutoff")
	}
}

func TestBuildPortfolio_ErrorRowExcludedFromTotal(t *testing.T) {
	summaries := []model.TickerSummary{
		sizerSummary("AAA", 5, 10, 800),
		sizerSummary("ERR", 4, 10, 800),
	}
	// No analysis row for ERR: the join fills in an Error row.
	analysis := []model.AnalysisRow{analysisRow("AAA", 100)}

	p := BuildPortfolio(summaries, analysis, testOptions())
	if p.TotalValue != 1000 {
		t.Fatalf("total value: expected 1000 excluding the failed ticker, got %v", p.TotalValue)
	}
	last := p.Rows[len(p.Rows)-1]
	if last.Ticker != "ERR" {
		t.Fatalf("expected the failed ticker sorted last, got %s", last.Ticker)
	}
	if last.Decision != model.DecisionError {
		t.Errorf("expected Error decision, got %s", last.Decision)
	}
	if !model.IsNA(last.Value) || !model.IsNA(last.WeightPct) || !model.IsNA(last.Adjustment) {
		t.Error("expected NA value, weight and adjustment for the failed ticker")
	}
}

func TestBuildPortfolio_SortedByWeightDesc(t *testing.T) {
	summaries := []model.TickerSummary{
		sizerSummary("SML", 4, 1, 80),
		sizerSummary("BIG", 3, 100, 8000),
	}
	analysis := []model.AnalysisRow{
		analysisRow("SML", 100),
		analysisRow("BIG", 100),
	}
	p := BuildPortfolio(summaries, analysis, testOptions())
	if p.Rows[0].Ticker != "BIG" {
		t.Errorf("expected BIG first by weight, got %s", p.Rows[0].Ticker)
	}
}

func TestBuildPortfolio_NegativeCostBasisClamped(t *testing.T) {
	s := sizerSummary("AAA", 5, 10, 800)
	s.TotalCost = decimal.NewFromInt(-500)
	p := BuildPortfolio([]model.TickerSummary{s}, []model.AnalysisRow{analysisRow("AAA", 100)}, testOptions())
	r := p.Rows[0]
	if r.AvgPurchasePrice != 0.01 {
		t.Errorf("expected avg price clamped to 0.01, got %v", r.AvgPurchasePrice)
	}
	if math.IsNaN(r.TargetPrice) || math.IsInf(r.TargetPrice, 0) {
		t.Errorf("expected a finite target price, got %v", r.TargetPrice)
	}
}

func TestBuildPortfolio_TargetGrowthCapped(t *testing.T) {
	opts := testOptions()
	opts.HistoricalReturn = 0 // realized CAGR of zero undercuts the benchmark
	p := BuildPortfolio([]model.TickerSummary{sizerSummary("AAA", 5, 10, 800)},
		[]model.AnalysisRow{analysisRow("AAA", 100)}, opts)
	if p.TargetGrowth != 0 {
		t.Errorf("expected target growth capped at 0, got %v", p.TargetGrowth)
	}
}

func TestYearsBetween(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 360)
	if got := yearsBetween(from, to); got != 1 {
		t.Errorf("expected exactly 1 on the 360-day calendar, got %v", got)
	}
}
