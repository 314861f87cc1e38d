package calculator

import (
	"errors"
	"math"

	"PortfolioAdvisor/internal/model"
)

// ErrNoVolume indicates the price history carries no usable volume data,
// which makes any volume-weighted figure meaningless.
var ErrNoVolume = errors.New("no volume data")

// DefaultVWAPWindow is the trailing window for entry/exit prices (~2 quarters).
const DefaultVWAPWindow = 126

// CalculateVWAP computes the cumulative volume-weighted low (entry) and high
// (exit) prices over the most recent `window` bars:
//
//	entry = sum(low*volume) / sum(volume)
//	exit  = sum(high*volume) / sum(volume)
//
// Both use the full-window cumulative sums evaluated at the final day, not a
// per-day rolling recomputation, and are rounded to cents.
func CalculateVWAP(bars []model.OHLCV, window int) (entry, exit float64, err error) {
	if window <= 0 {
		return 0, 0, errors.New("window must be positive")
	}
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	start := len(bars) - window
	if start < 0 {
		start = 0
	}

	var lowPV, highPV, totalVolume float64
	for _, b := range bars[start:] {
		lowPV += b.Low * b.Volume
		highPV += b.High * b.Volume
		totalVolume += b.Volume
	}
	if totalVolume == 0 {
		return 0, 0, ErrNoVolume
	}
	return Round2(lowPV / totalVolume), Round2(highPV / totalVolume), nil
}

// Round2 rounds a price to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
