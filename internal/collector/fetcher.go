package collector

import (
	"errors"

	"PortfolioAdvisor/internal/model"
)

// ErrNoData indicates the provider returned no usable data for a ticker
// (throttling, unknown symbol, or a malformed payload). It degrades that
// ticker to an Error decision row; it never aborts the batch.
var ErrNoData = errors.New("no data from provider")

// Fetcher defines the interface for fetching market data for one ticker.
type Fetcher interface {
	// FetchDailyHistory returns daily bars ascending by date, truncated to
	// the most recent `days` trading days.
	FetchDailyHistory(symbol string, days int) (*model.PriceHistory, error)
	// FetchFundamentals returns valuation ratios, substituting documented
	// defaults for absent or non-numeric fields.
	FetchFundamentals(symbol string, currentPrice float64) (*model.Fundamentals, error)
	Name() string
}
