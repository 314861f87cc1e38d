package ledger

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"PortfolioAdvisor/internal/model"
)

// AggregationError indicates a ticker whose transactions cannot be
// meaningfully averaged.
type AggregationError struct {
	Ticker string
	Reason string
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregate %s: %s", e.Ticker, e.Reason)
}

// Summarize aggregates transactions into one TickerSummary per distinct
// ticker, preserving first-seen ticker order. Asset class, sector, quant
// rating and alpha-picked are taken from the first transaction of each group
// (assumed constant per ticker). The weighted average purchase date is
//
//	referenceDate + weightedMean(daysSinceReference, weight = cost)
//
// rounded to the nearest whole day. A ticker with zero total quantity or
// zero total cost yields an AggregationError.
func Summarize(txs []model.Transaction, referenceDate time.Time) ([]model.TickerSummary, error) {
	if referenceDate.IsZero() {
		referenceDate = time.Now().Truncate(24 * time.Hour)
	}

	type group struct {
		first        model.Transaction
		firstAcq     time.Time
		totalQty     decimal.Decimal
		totalCost    decimal.Decimal
		weightedDays decimal.Decimal
	}

	var order []string
	groups := make(map[string]*group)

	for _, tx := range txs {
		g, ok := groups[tx.Ticker]
		if !ok {
			g = &group{first: tx, firstAcq: tx.Acquired}
			groups[tx.Ticker] = g
			order = append(order, tx.Ticker)
		}
		if tx.Acquired.Before(g.firstAcq) {
			g.firstAcq = tx.Acquired
		}
		cost := tx.Cost()
		days := daysBetween(referenceDate, tx.Acquired)
		g.totalQty = g.totalQty.Add(tx.Quantity)
		g.totalCost = g.totalCost.Add(cost)
		g.weightedDays = g.weightedDays.Add(cost.Mul(decimal.NewFromInt(int64(days))))
	}

	summaries := make([]model.TickerSummary, 0, len(order))
	for _, ticker := range order {
		g := groups[ticker]
		if g.totalQty.IsZero() {
			return nil, &AggregationError{Ticker: ticker, Reason: "zero total quantity"}
		}
		if g.totalCost.IsZero() {
			return nil, &AggregationError{Ticker: ticker, Reason: "zero total cost"}
		}

		avgDays := g.weightedDays.InexactFloat64() / g.totalCost.InexactFloat64()
		avgDate := referenceDate.AddDate(0, 0, int(math.Round(avgDays)))

		summaries = append(summaries, model.TickerSummary{
			Ticker:                  ticker,
			AssetClass:              g.first.AssetClass,
			Sector:                  g.first.Sector,
			QuantRating:             g.first.QuantRating,
			AlphaPicked:             g.first.AlphaPicked,
			FirstAcquired:           g.firstAcq,
			WeightedAvgPurchaseDate: avgDate,
			TotalCost:               g.totalCost,
			TotalQuantity:           g.totalQty,
			AvgPurchasePrice:        g.totalCost.Div(g.totalQty).Round(3),
		})
	}
	return summaries, nil
}

// daysBetween returns the whole-day difference to - from.
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
