package allocator

import (
	"math"
	"sort"
	"time"

	"PortfolioAdvisor/internal/calculator"
	"PortfolioAdvisor/internal/model"
)

// Options tunes position sizing.
type Options struct {
	// HistoricalReturn is the portfolio's realized total return since
	// InceptionDate, as a fraction (0.35 = +35%).
	HistoricalReturn float64
	InceptionDate    time.Time
	// DesiredExposure is the fraction of the portfolio kept invested.
	DesiredExposure float64
	CashPosition    float64
	// ReferenceReturn/ReferenceInception pin the fixed benchmark CAGR that
	// caps the blended target growth rate.
	ReferenceReturn    float64
	ReferenceInception time.Time
	RunDate            time.Time
}

// DefaultOptions returns the standard sizing parameters.
func DefaultOptions() Options {
	return Options{
		DesiredExposure:    0.9,
		ReferenceReturn:    2.0451,
		ReferenceInception: time.Date(2022, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.DesiredExposure == 0 {
		o.DesiredExposure = d.DesiredExposure
	}
	if o.ReferenceReturn == 0 {
		o.ReferenceReturn = d.ReferenceReturn
	}
	if o.ReferenceInception.IsZero() {
		o.ReferenceInception = d.ReferenceInception
	}
	if o.RunDate.IsZero() {
		o.RunDate = time.Now().Truncate(24 * time.Hour)
	}
	return o
}

// Portfolio is the sized result of one run.
type Portfolio struct {
	Rows          []model.PortfolioRow
	TotalValue    float64
	TargetGrowth  float64 // blended annual growth rate used for target prices
	RatingCutoff  float64 // 20th-highest quant rating; below it no allocation
	RetainCutoff  float64 // 10th-highest quant rating; above it zero positions are kept
}

// maxPositions caps the target allocation grid: the portfolio is sized as
// twenty equal slots scaled by quant rating.
const maxPositions = 20

// BuildPortfolio joins ticker summaries with their analysis rows and sizes
// every retained position.
//
// Retention keeps tickers that are currently held (quantity > 0) or rated
// above the 10th-highest rating; the allocation cutoff is the 20th-highest
// rating. Both constants are deliberate literals from the sizing rules.
// Error analysis rows keep NA monetary fields and are excluded from the
// portfolio total.
func BuildPortfolio(summaries []model.TickerSummary, analysis []model.AnalysisRow, opts Options) *Portfolio {
	opts = opts.withDefaults()

	ratingCutoff := nthHighestRating(summaries, 20)
	retainCutoff := nthHighestRating(summaries, 10)

	rowsByTicker := make(map[string]model.AnalysisRow, len(analysis))
	for _, a := range analysis {
		rowsByTicker[a.Ticker] = a
	}

	var retained []model.TickerSummary
	for _, s := range summaries {
		if s.TotalQuantity.IsPositive() || s.QuantRating > retainCutoff {
			retained = append(retained, s)
		}
	}
	sort.SliceStable(retained, func(i, j int) bool {
		return retained[i].QuantRating > retained[j].QuantRating
	})

	rows := make([]model.PortfolioRow, 0, len(retained))
	totalValue := opts.CashPosition
	for _, s := range retained {
		a, ok := rowsByTicker[s.Ticker]
		if !ok {
			a = model.ErrorRow(s.Ticker)
		}
		qty := s.TotalQuantity.InexactFloat64()
		value := calculator.Round2(qty * a.MarketPrice)
		if !model.IsNA(value) {
			totalValue += value
		}
		rows = append(rows, model.PortfolioRow{
			Ticker:                  s.Ticker,
			AlphaPicked:             s.AlphaPicked,
			QuantRating:             s.QuantRating,
			AssetClass:              s.AssetClass,
			Sector:                  s.Sector,
			WeightedAvgPurchaseDate: s.WeightedAvgPurchaseDate,
			TotalCost:               s.TotalCost.InexactFloat64(),
			TotalQuantity:           qty,
			AvgPurchasePrice:        s.AvgPurchasePrice.InexactFloat64(),
			MarketPrice:             a.MarketPrice,
			BuyThreshold:            a.BuyThreshold,
			GrahamBuyThreshold:      a.GrahamBuyThreshold,
			ExitPrice:               a.ExitPrice,
			PERatio:                 a.PERatio,
			PBRatio:                 a.PBRatio,
			DividendYield:           a.DividendYield,
			Decision:                a.Decision,
			Value:                   value,
		})
	}

	targetGrowth := blendedTargetGrowth(opts)
	slotValue := totalValue * opts.DesiredExposure / maxPositions

	for i := range rows {
		r := &rows[i]
		r.WeightPct = calculator.Round2(r.Value / totalValue * 100)
		if r.TotalCost < 0 {
			// Positions already cashed out beyond cost basis: keep return
			// math defined with a token basis price.
			r.AvgPurchasePrice = 0.01
		}
		r.TotalReturn = r.Value - r.TotalCost
		r.ROI = round4(r.TotalReturn / r.TotalCost * 100)
		r.YearsHeld = yearsBetween(r.WeightedAvgPurchaseDate, opts.RunDate)
		r.TargetPrice = calculator.Round2(r.AvgPurchasePrice * math.Pow(1+targetGrowth, r.YearsHeld))
		r.CAGR = calculator.Round2((math.Pow(1+r.ROI/100, 1/r.YearsHeld) - 1) * 100)

		r.DesiredValue = slotValue * r.QuantRating / 5
		if r.QuantRating < ratingCutoff {
			r.DesiredValue = 0
		}
		r.Adjustment = math.Round((r.DesiredValue - r.Value) / r.MarketPrice)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		wi, wj := rows[i].WeightPct, rows[j].WeightPct
		if model.IsNA(wj) {
			return !model.IsNA(wi)
		}
		if model.IsNA(wi) {
			return false
		}
		return wi > wj
	})

	return &Portfolio{
		Rows:         rows,
		TotalValue:   totalValue,
		TargetGrowth: targetGrowth,
		RatingCutoff: ratingCutoff,
		RetainCutoff: retainCutoff,
	}
}

// blendedTargetGrowth caps the realized portfolio CAGR at the fixed
// reference CAGR so target prices never assume growth the benchmark has not
// delivered.
func blendedTargetGrowth(opts Options) float64 {
	portfolioYears := yearsBetween(opts.InceptionDate, opts.RunDate)
	portfolioCAGR := math.Pow(1+opts.HistoricalReturn, 1/portfolioYears) - 1

	referenceYears := yearsBetween(opts.ReferenceInception, opts.RunDate)
	referenceCAGR := math.Pow(1+opts.ReferenceReturn, 1/referenceYears) - 1

	return math.Min(portfolioCAGR, referenceCAGR)
}

// yearsBetween measures elapsed years on a 360-day banker's calendar.
func yearsBetween(from, to time.Time) float64 {
	return float64(int(to.Sub(from).Hours()/24)) / 360
}

// nthHighestRating returns the nth-highest quant rating across all
// summarized tickers, clamped to the lowest rating when fewer than n exist.
func nthHighestRating(summaries []model.TickerSummary, n int) float64 {
	if len(summaries) == 0 {
		return 0
	}
	ratings := make([]float64, len(summaries))
	for i, s := range summaries {
		ratings[i] = s.QuantRating
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(ratings)))
	if n > len(ratings) {
		n = len(ratings)
	}
	return ratings[n-1]
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
