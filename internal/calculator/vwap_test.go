package calculator

import (
	"errors"
	"testing"
	"time"

	"PortfolioAdvisor/internal/model"
)

func bar(low, high, volume float64) model.OHLCV {
	return model.OHLCV{
		Time:   time.Now(),
		Open:   (low + high) / 2,
		High:   high,
		Low:    low,
		Close:  (low + high) / 2,
		Volume: volume,
	}
}

func TestCalculateVWAP_HandComputed(t *testing.T) {
	bars := []model.OHLCV{
		bar(10, 12, 100),
		bar(20, 22, 300),
	}
	entry, exit, err := CalculateVWAP(bars, 126)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// entry = (10*100 + 20*300) / 400 = 17.5
	if entry != 17.5 {
		t.Errorf("entry: expected 17.5, got %v", entry)
	}
	// exit = (12*100 + 22*300) / 400 = 19.5
	if exit != 19.5 {
		t.Errorf("exit: expected 19.5, got %v", exit)
	}
}

func TestCalculateVWAP_EntryNotAboveExit(t *testing.T) {
	bars := []model.OHLCV{
		bar(95, 105, 1200),
		bar(90, 99, 800),
		bar(101, 110, 2500),
		bar(88, 92, 400),
	}
	entry, exit, err := CalculateVWAP(bars, 126)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry > exit {
		t.Errorf("entry %v > exit %v despite low <= high on every bar", entry, exit)
	}
}

func TestCalculateVWAP_WindowTruncation(t *testing.T) {
	bars := []model.OHLCV{
		bar(1, 2, 1000000), // outside the window, would drag entry down
		bar(50, 52, 100),
		bar(50, 52, 100),
	}
	entry, _, err := CalculateVWAP(bars, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry != 50 {
		t.Errorf("entry: expected 50 from the trailing window only, got %v", entry)
	}
}

func TestCalculateVWAP_NoVolume(t *testing.T) {
	bars := []model.OHLCV{bar(10, 12, 0), bar(11, 13, 0)}
	_, _, err := CalculateVWAP(bars, 126)
	if !errors.Is(err, ErrNoVolume) {
		t.Fatalf("expected ErrNoVolume, got %v", err)
	}
}

func TestCalculateVWAP_NoBars(t *testing.T) {
	if _, _, err := CalculateVWAP(nil, 126); err == nil {
		t.Fatal("expected error for empty history")
	}
}
