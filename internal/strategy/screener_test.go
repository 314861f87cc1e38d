package strategy

import (
	"math"
	"testing"

	"PortfolioAdvisor/internal/model"
)

func fundamentals() *model.Fundamentals {
	return &model.Fundamentals{
		PERatio:       15,
		PBRatio:       1.5,
		DividendYield: 0.02,
		DebtToEquity:  0.5,
		EPS:           20,
		BookValue:     12,
	}
}

func TestGrahamOK(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Fundamentals)
		want   bool
	}{
		{"cheap by both ratios", func(f *model.Fundamentals) {}, true},
		{"blended pass", func(f *model.Fundamentals) { f.PERatio = 25; f.PBRatio = 1.2 }, true},
		{"blended fail on product", func(f *model.Fundamentals) { f.PERatio = 25; f.PBRatio = 2.0 }, false},
		{"pe at cheap boundary", func(f *model.Fundamentals) { f.PERatio = 19; f.PBRatio = 2.5 }, false},
		{"high debt", func(f *model.Fundamentals) { f.DebtToEquity = 2 }, false},
		{"defaulted pe", func(f *model.Fundamentals) { f.PERatio = math.Inf(1) }, false},
		{"negative yield", func(f *model.Fundamentals) { f.DividendYield = -0.01 }, false},
		{"zero yield", func(f *model.Fundamentals) { f.DividendYield = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fundamentals()
			tt.mutate(f)
			if got := GrahamOK(f); got != tt.want {
				t.Errorf("GrahamOK(%+v) = %v, want %v", *f, got, tt.want)
			}
		})
	}
}

func TestGrahamBuyThreshold(t *testing.T) {
	// sqrt(38 * 20 * 12) * 0.95 = 90.72
	got := GrahamBuyThreshold(fundamentals(), 85, 0.95)
	if got != 90.72 {
		t.Errorf("expected 90.72, got %v", got)
	}
}

func TestGrahamBuyThreshold_Fallback(t *testing.T) {
	f := fundamentals()
	f.EPS = 0
	if got := GrahamBuyThreshold(f, 85, 0.95); got != 85 {
		t.Errorf("expected VWAP fallback 85, got %v", got)
	}
	f = fundamentals()
	f.BookValue = -3
	if got := GrahamBuyThreshold(f, 85, 0.95); got != 85 {
		t.Errorf("expected VWAP fallback 85 for negative book value, got %v", got)
	}
}
