package collector

import (
	"fmt"
	"time"

	"PortfolioAdvisor/internal/calculator"
	"PortfolioAdvisor/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price        float64
	History      *model.PriceHistory
	Fundamentals *model.Fundamentals
	HistoryErr   error
	FundErr      error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyHistory(symbol string, days int) (*model.PriceHistory, error) {
	if m.HistoryErr != nil {
		return nil, m.HistoryErr
	}
	if m.History != nil {
		return m.History, nil
	}
	return &model.PriceHistory{
		Symbol:    symbol,
		Bars:      GenerateMockBars(m.Price, days),
		FetchedAt: time.Now(),
	}, nil
}

func (m *MockFetcher) FetchFundamentals(_ string, currentPrice float64) (*model.Fundamentals, error) {
	if m.FundErr != nil {
		return nil, m.FundErr
	}
	if m.Fundamentals != nil {
		return m.Fundamentals, nil
	}
	return &model.Fundamentals{
		PERatio:       15,
		PBRatio:       1.5,
		DividendYield: 0.02,
		DebtToEquity:  0.5,
		EPS:           currentPrice / 15,
		BookValue:     currentPrice / 1.5,
	}, nil
}

// GenerateMockBars produces a mildly trending series around basePrice.
func GenerateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector fetches market data for one ticker and derives the metrics the
// decision engine consumes. ETFs skip the fundamentals fetch entirely.
type Collector struct {
	Fetcher     Fetcher
	HistoryDays int
	VWAPWindow  int
	etfs        map[string]bool
}

// NewCollector creates a Collector. etfs lists the symbols treated as ETFs.
func NewCollector(fetcher Fetcher, historyDays, vwapWindow int, etfs []string) *Collector {
	set := make(map[string]bool, len(etfs))
	for _, s := range etfs {
		set[s] = true
	}
	if historyDays <= 0 {
		historyDays = 252
	}
	if vwapWindow <= 0 {
		vwapWindow = calculator.DefaultVWAPWindow
	}
	return &Collector{Fetcher: fetcher, HistoryDays: historyDays, VWAPWindow: vwapWindow, etfs: set}
}

// IsETF reports whether a symbol is on the configured ETF list.
func (c *Collector) IsETF(symbol string) bool { return c.etfs[symbol] }

// Collect gathers price history (and fundamentals for non-ETFs) for one
// ticker and computes its VWAP entry/exit prices and volume statistics.
// Any failure is returned to the caller; the batch layer maps it to an
// Error decision row.
func (c *Collector) Collect(symbol string) (*model.TickerMetrics, error) {
	history, err := c.Fetcher.FetchDailyHistory(symbol, c.HistoryDays)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}

	marketPrice := calculator.Round2(history.LastClose())
	isETF := c.IsETF(symbol)

	var fundamentals *model.Fundamentals
	if !isETF {
		fundamentals, err = c.Fetcher.FetchFundamentals(symbol, history.LastClose())
		if err != nil {
			return nil, fmt.Errorf("fetch fundamentals: %w", err)
		}
	}

	entry, exit, err := calculator.CalculateVWAP(history.Bars, c.VWAPWindow)
	if err != nil {
		return nil, fmt.Errorf("calculate vwap: %w", err)
	}

	avgVolume, err := calculator.CalculateAverageVolume(history.Bars, 21)
	if err != nil {
		return nil, fmt.Errorf("average volume: %w", err)
	}
	todayVolume, err := calculator.LatestVolume(history.Bars)
	if err != nil {
		return nil, fmt.Errorf("latest volume: %w", err)
	}

	return &model.TickerMetrics{
		Symbol:       symbol,
		IsETF:        isETF,
		MarketPrice:  marketPrice,
		Entry:        entry,
		Exit:         exit,
		TodayVolume:  todayVolume,
		AvgVolume21d: avgVolume,
		Fundamentals: fundamentals,
	}, nil
}
