package model

import "time"

// OHLCV represents a single daily price bar.
type OHLCV struct {
	Time     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   float64
	AdjClose float64 // 0 when the entitlement level omits it
	Dividend float64
}

// PriceHistory holds daily bars for one ticker, ascending by date and
// truncated to the most recent N trading days. Fetched fresh per run.
type PriceHistory struct {
	Symbol    string
	Bars      []OHLCV
	FetchedAt time.Time
}

// LastClose returns the close of the most recent bar, or 0 when empty.
func (h *PriceHistory) LastClose() float64 {
	if len(h.Bars) == 0 {
		return 0
	}
	return h.Bars[len(h.Bars)-1].Close
}

// Fundamentals holds point-in-time valuation ratios for one ticker.
// Absent or non-numeric ratios carry documented defaults so downstream
// comparisons stay well-defined: PE, PB and DebtToEquity default to +Inf
// (unattractive, not unknown), DividendYield to 0, EPS and BookValue to 0.
type Fundamentals struct {
	PERatio       float64
	PBRatio       float64
	DividendYield float64
	DebtToEquity  float64
	EPS           float64
	BookValue     float64
}

// TickerMetrics is everything the decision engine needs for one ticker.
type TickerMetrics struct {
	Symbol       string
	IsETF        bool
	MarketPrice  float64
	Entry        float64 // cumulative volume-weighted low over the VWAP window
	Exit         float64 // cumulative volume-weighted high over the VWAP window
	TodayVolume  float64
	AvgVolume21d float64
	Fundamentals *Fundamentals // nil for ETFs
}
