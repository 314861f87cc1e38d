package collector

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"PortfolioAdvisor/internal/model"
)

// DefaultBaseURL is the public Alpha Vantage endpoint.
const DefaultBaseURL = "https://www.alphavantage.co"

// AlphaVantageFetcher implements Fetcher against the Alpha Vantage REST API.
type AlphaVantageFetcher struct {
	client *resty.Client
	apiKey string
}

// NewAlphaVantageFetcher creates a fetcher for the given endpoint and key.
func NewAlphaVantageFetcher(baseURL, apiKey string, timeout time.Duration) *AlphaVantageFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)
	return &AlphaVantageFetcher{client: client, apiKey: apiKey}
}

func (f *AlphaVantageFetcher) Name() string { return "alphavantage" }

// Column presence varies by entitlement level: the adjusted series carries
// volume under "6. volume", the plain series under "5. volume".
var (
	volumeKeys   = []string{"5. volume", "6. volume"}
	adjCloseKeys = []string{"7. adjusted close", "5. adjusted close"}
	dividendKeys = []string{"8. dividend amount", "7. dividend amount"}
)

func (f *AlphaVantageFetcher) FetchDailyHistory(symbol string, days int) (*model.PriceHistory, error) {
	resp, err := f.client.R().
		SetQueryParams(map[string]string{
			"function":    "TIME_SERIES_DAILY_ADJUSTED",
			"symbol":      symbol,
			"apikey":      f.apiKey,
			"outputsize":  "full",
			"entitlement": "delayed",
		}).
		Get("/query")
	if err != nil {
		return nil, fmt.Errorf("%w: fetch history for %s: %v", ErrNoData, symbol, err)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("%w: decode history for %s: %v", ErrNoData, symbol, err)
	}

	raw, ok := payload["Time Series (Daily)"]
	if !ok {
		return nil, fmt.Errorf("%w: history for %s: %s", ErrNoData, symbol, providerMessage(payload))
	}

	var series map[string]map[string]string
	if err := json.Unmarshal(raw, &series); err != nil {
		return nil, fmt.Errorf("%w: decode series for %s: %v", ErrNoData, symbol, err)
	}

	bars := make([]model.OHLCV, 0, len(series))
	hasVolume := false
	for date, fields := range series {
		t, err := time.Parse("2006-01-02", date)
		if err != nil {
			continue
		}
		volume, ok := firstField(fields, volumeKeys...)
		if ok {
			hasVolume = true
		}
		adjClose, _ := firstField(fields, adjCloseKeys...)
		dividend, _ := firstField(fields, dividendKeys...)
		bars = append(bars, model.OHLCV{
			Time:     t,
			Open:     fieldFloat(fields, "1. open"),
			High:     fieldFloat(fields, "2. high"),
			Low:      fieldFloat(fields, "3. low"),
			Close:    fieldFloat(fields, "4. close"),
			Volume:   volume,
			AdjClose: adjClose,
			Dividend: dividend,
		})
	}
	if !hasVolume {
		return nil, fmt.Errorf("%w: no volume data for %s", ErrNoData, symbol)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return &model.PriceHistory{Symbol: symbol, Bars: bars, FetchedAt: time.Now()}, nil
}

func (f *AlphaVantageFetcher) FetchFundamentals(symbol string, currentPrice float64) (*model.Fundamentals, error) {
	resp, err := f.client.R().
		SetQueryParams(map[string]string{
			"function":    "OVERVIEW",
			"symbol":      symbol,
			"apikey":      f.apiKey,
			"entitlement": "delayed",
		}).
		Get("/query")
	if err != nil {
		return nil, fmt.Errorf("%w: fetch fundamentals for %s: %v", ErrNoData, symbol, err)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("%w: decode fundamentals for %s: %v", ErrNoData, symbol, err)
	}
	if _, ok := payload["Symbol"]; !ok {
		return nil, fmt.Errorf("%w: fundamentals for %s: %s", ErrNoData, symbol, providerMessage(payload))
	}

	pe := safeFloat(payload["PERatio"], math.Inf(1))
	pb := safeFloat(payload["PriceToBookRatio"], math.Inf(1))

	// EPS and book value derived from the current price; zero when the
	// ratio is absent or zero so the Graham threshold falls back cleanly.
	eps, book := 0.0, 0.0
	if !math.IsInf(pe, 1) && pe != 0 {
		eps = currentPrice / pe
	}
	if !math.IsInf(pb, 1) && pb != 0 {
		book = currentPrice / pb
	}

	return &model.Fundamentals{
		PERatio:       pe,
		PBRatio:       pb,
		DividendYield: safeFloat(payload["DividendYield"], 0),
		DebtToEquity:  safeFloat(payload["DebtToEquityRatio"], math.Inf(1)),
		EPS:           eps,
		BookValue:     book,
	}, nil
}

// providerMessage extracts the throttling/error note from a failed payload.
func providerMessage(payload map[string]json.RawMessage) string {
	for _, key := range []string{"Note", "Information", "Error Message"} {
		if raw, ok := payload[key]; ok {
			var msg string
			if err := json.Unmarshal(raw, &msg); err == nil {
				return msg
			}
		}
	}
	return "unknown error"
}

// safeFloat parses an optional JSON field that may be absent, null, "None",
// empty, a quoted number, or a bare number. Anything unparsable yields the
// default.
func safeFloat(raw json.RawMessage, def float64) float64 {
	if raw == nil {
		return def
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" || s == "None" {
			return def
		}
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
		return def
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err == nil {
		return v
	}
	return def
}

func firstField(fields map[string]string, keys ...string) (float64, bool) {
	for _, key := range keys {
		if s, ok := fields[key]; ok {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0, true
			}
			return v, true
		}
	}
	return 0, false
}

func fieldFloat(fields map[string]string, key string) float64 {
	v, _ := strconv.ParseFloat(fields[key], 64)
	return v
}
