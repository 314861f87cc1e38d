package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"PortfolioAdvisor/internal/allocator"
	"PortfolioAdvisor/internal/collector"
	"PortfolioAdvisor/internal/ledger"
	"PortfolioAdvisor/internal/notifier"
	"PortfolioAdvisor/internal/report"
	"PortfolioAdvisor/internal/strategy"
)

// Scheduler owns the analysis pipeline and its cron trigger.
type Scheduler struct {
	Cron      *cron.Cron
	Ledger    ledger.Source
	Collector *collector.Collector
	Reporter  report.Writer
	Notifier  *notifier.TelegramNotifier // nil disables the digest
	Ctx       context.Context

	Engine        strategy.Options
	Sizing        allocator.Options
	RequestDelay  time.Duration
	ReferenceDate time.Time // zero means "today" at run time
}

// NewScheduler creates a Scheduler.
func NewScheduler(ctx context.Context, src ledger.Source, col *collector.Collector, rep report.Writer, tn *notifier.TelegramNotifier) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Ledger:    src,
		Collector: col,
		Reporter:  rep,
		Notifier:  tn,
		Ctx:       ctx,
	}
}

// RegisterDaily registers the daily analysis run.
func (s *Scheduler) RegisterDaily(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

func (s *Scheduler) dailyTask() {
	log.Println("[INFO] running daily analysis")
	if _, err := s.RunNow(); err != nil {
		log.Printf("[ERROR] daily analysis: %v", err)
	}
}

// RunNow executes the full pipeline once: ledger -> summaries -> per-ticker
// analysis -> sized portfolio -> action tables -> report and digest.
// Per-ticker fetch failures degrade to Error rows inside the table builder;
// an unreadable ledger or a degenerate aggregation aborts the run.
func (s *Scheduler) RunNow() (*report.RunReport, error) {
	start := time.Now()

	txs, err := s.Ledger.Load()
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	log.Printf("[INFO] loaded %d transactions from %s ledger", len(txs), s.Ledger.Name())

	summaries, err := ledger.Summarize(txs, s.ReferenceDate)
	if err != nil {
		return nil, fmt.Errorf("summarize ledger: %w", err)
	}
	log.Printf("[INFO] summarized %d tickers", len(summaries))

	analysis := strategy.BuildTable(s.Collector, summaries, s.Engine, s.RequestDelay)

	portfolio := allocator.BuildPortfolio(summaries, analysis, s.Sizing)
	buys, sells := allocator.SplitActions(portfolio.Rows)
	log.Printf("[INFO] portfolio value %.2f, %d buys, %d sells", portfolio.TotalValue, len(buys), len(sells))

	run := &report.RunReport{
		GeneratedAt: time.Now(),
		Summaries:   summaries,
		Analysis:    analysis,
		Portfolio:   portfolio,
		Buys:        buys,
		Sells:       sells,
	}

	if path, err := s.Reporter.WriteRun(run); err != nil {
		log.Printf("[ERROR] write report: %v", err)
	} else if path != "" {
		log.Printf("[INFO] report written: %s", path)
	}

	if s.Notifier != nil {
		if err := s.Notifier.SendWithRetry(s.Ctx, notifier.FormatRunDigest(run), 3); err != nil {
			log.Printf("[ERROR] send digest: %v", err)
		}
	}

	log.Printf("[INFO] analysis finished in %s", time.Since(start).Round(time.Millisecond))
	return run, nil
}
