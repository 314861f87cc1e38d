package calculator

import (
	"errors"

	"PortfolioAdvisor/internal/model"
)

// CalculateAverageVolume returns the mean volume over the most recent
// `period` bars (fewer when the history is shorter).
func CalculateAverageVolume(bars []model.OHLCV, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(bars) == 0 {
		return 0, errors.New("no bars provided")
	}
	start := len(bars) - period
	if start < 0 {
		start = 0
	}
	sum := 0.0
	for _, b := range bars[start:] {
		sum += b.Volume
	}
	return sum / float64(len(bars)-start), nil
}

// LatestVolume returns the volume of the most recent bar.
func LatestVolume(bars []model.OHLCV) (float64, error) {
	if len(bars) == 0 {
		return 0, errors.New("no bars provided")
	}
	return bars[len(bars)-1].Volume, nil
}
