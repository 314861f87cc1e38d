package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single immutable ledger record. Many per ticker.
type Transaction struct {
	ID            int64
	Ticker        string
	AssetClass    string
	Sector        string
	Acquired      time.Time
	PurchasePrice decimal.Decimal
	Quantity      decimal.Decimal
	QuantRating   float64
	AlphaPicked   bool
}

// Cost returns the total cost of the transaction (price * quantity).
func (t Transaction) Cost() decimal.Decimal {
	return t.PurchasePrice.Mul(t.Quantity)
}

// TickerSummary aggregates all transactions for one ticker.
// AvgPurchasePrice == TotalCost / TotalQuantity; WeightedAvgPurchaseDate is
// the cost-weighted mean of acquisition dates, rounded to the nearest day.
type TickerSummary struct {
	Ticker                  string
	AssetClass              string
	Sector                  string
	QuantRating             float64
	AlphaPicked             bool
	FirstAcquired           time.Time
	WeightedAvgPurchaseDate time.Time
	TotalCost               decimal.Decimal
	TotalQuantity           decimal.Decimal
	AvgPurchasePrice        decimal.Decimal
}
