package report

import (
	"time"

	"PortfolioAdvisor/internal/allocator"
	"PortfolioAdvisor/internal/model"
)

// RunReport bundles everything one pipeline run produced.
type RunReport struct {
	GeneratedAt time.Time
	Summaries   []model.TickerSummary
	Analysis    []model.AnalysisRow
	Portfolio   *allocator.Portfolio
	Buys        []model.ActionRow
	Sells       []model.ActionRow
}

// Writer emits a run report as some artifact. Reports are run artifacts,
// not a history store: each run overwrites nothing and depends on nothing.
type Writer interface {
	WriteRun(run *RunReport) (string, error)
}

// NoopWriter discards reports (used when reporting is disabled).
type NoopWriter struct{}

// NewNoopWriter creates a writer that does nothing.
func NewNoopWriter() *NoopWriter { return &NoopWriter{} }

func (w *NoopWriter) WriteRun(_ *RunReport) (string, error) { return "", nil }
