package strategy

import (
	"log"
	"time"

	"PortfolioAdvisor/internal/calculator"
	"PortfolioAdvisor/internal/collector"
	"PortfolioAdvisor/internal/model"
)

// Options tunes the decision engine.
type Options struct {
	MarginOfSafety float64 // shade applied to the VWAP entry price
	GrahamMargin   float64 // shade applied to the Graham threshold
	VolumeFloor    float64 // fraction of 21-day average volume required today
}

// DefaultOptions returns the standard margins.
func DefaultOptions() Options {
	return Options{MarginOfSafety: 0.9, GrahamMargin: 0.95, VolumeFloor: 0.2}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MarginOfSafety == 0 {
		o.MarginOfSafety = d.MarginOfSafety
	}
	if o.GrahamMargin == 0 {
		o.GrahamMargin = d.GrahamMargin
	}
	if o.VolumeFloor == 0 {
		o.VolumeFloor = d.VolumeFloor
	}
	return o
}

// Evaluate classifies one ticker from its collected metrics.
//
// Buy requires the market price at or under both the VWAP buy threshold and
// the Graham threshold, today's volume above the staleness floor, and a
// passing Graham screen (ETFs bypass the screen and have no Graham
// threshold). Sell requires the price at or above the VWAP exit with the
// same volume confirmation. Everything else holds.
func Evaluate(m *model.TickerMetrics, opts Options) model.AnalysisRow {
	opts = opts.withDefaults()

	buyThreshold := calculator.Round2(m.Entry * opts.MarginOfSafety)

	grahamThreshold := model.NA()
	peRatio, pbRatio, dividendYield := model.NA(), model.NA(), model.NA()
	grahamOK := true
	if !m.IsETF && m.Fundamentals != nil {
		f := m.Fundamentals
		peRatio, pbRatio, dividendYield = f.PERatio, f.PBRatio, f.DividendYield
		grahamOK = GrahamOK(f)
		grahamThreshold = GrahamBuyThreshold(f, buyThreshold, opts.GrahamMargin)
	}

	volumeOK := m.TodayVolume >= m.AvgVolume21d*opts.VolumeFloor

	effectiveBuy := buyThreshold
	if !model.IsNA(grahamThreshold) && grahamThreshold < effectiveBuy {
		effectiveBuy = grahamThreshold
	}

	decision := model.DecisionHold
	switch {
	case m.MarketPrice <= effectiveBuy && volumeOK && grahamOK:
		decision = model.DecisionBuy
	case m.MarketPrice >= m.Exit && volumeOK:
		decision = model.DecisionSell
	}

	return model.AnalysisRow{
		Ticker:             m.Symbol,
		MarketPrice:        m.MarketPrice,
		BuyThreshold:       buyThreshold,
		GrahamBuyThreshold: grahamThreshold,
		ExitPrice:          m.Exit,
		PERatio:            peRatio,
		PBRatio:            pbRatio,
		DividendYield:      dividendYield,
		Decision:           decision,
	}
}

// BuildTable runs the decision engine over every summarized ticker, one at a
// time with a fixed delay between provider requests. A fetch failure for one
// ticker produces an Error row and the batch continues.
func BuildTable(col *collector.Collector, summaries []model.TickerSummary, opts Options, delay time.Duration) []model.AnalysisRow {
	rows := make([]model.AnalysisRow, 0, len(summaries))
	for i, s := range summaries {
		if i > 0 && delay > 0 {
			time.Sleep(delay)
		}
		metrics, err := col.Collect(s.Ticker)
		if err != nil {
			log.Printf("[WARN] analysis for %s failed: %v", s.Ticker, err)
			rows = append(rows, model.ErrorRow(s.Ticker))
			continue
		}
		rows = append(rows, Evaluate(metrics, opts))
	}
	return rows
}
