package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"PortfolioAdvisor/internal/allocator"
	"PortfolioAdvisor/internal/collector"
	"PortfolioAdvisor/internal/config"
	"PortfolioAdvisor/internal/ledger"
	"PortfolioAdvisor/internal/notifier"
	"PortfolioAdvisor/internal/report"
	"PortfolioAdvisor/internal/scheduler"
	"PortfolioAdvisor/internal/strategy"
	"PortfolioAdvisor/internal/web"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] Portfolio Advisor starting...")

	_ = godotenv.Load(".env")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init ledger source
	var src ledger.Source
	switch cfg.Ledger.Source {
	case "xlsx":
		src = ledger.NewXLSXSource(cfg.Ledger.Path, cfg.Ledger.Sheet)
	case "sqlite":
		src = ledger.NewSQLiteSource(cfg.Ledger.Path, cfg.Ledger.Table)
	default:
		src = ledger.NewCSVSource(cfg.Ledger.Path)
	}
	log.Printf("[INFO] ledger source: %s (%s)", src.Name(), cfg.Ledger.Path)

	// Init fetcher and collector
	fetcher := collector.NewAlphaVantageFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Timeout())
	log.Printf("[INFO] data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher, cfg.Analysis.HistoryDays, cfg.Analysis.VWAPWindow, cfg.Analysis.ETFs)

	// Init report writer
	var rep report.Writer
	if cfg.Report.Dir != "" {
		rep = report.NewXLSXWriter(cfg.Report.Dir)
	} else {
		rep = report.NewNoopWriter()
	}

	// Init Telegram notifier (optional)
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		log.Println("[INFO] Telegram digest enabled")
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, src, col, rep, tn)
	sched.Engine = strategy.Options{
		MarginOfSafety: cfg.Analysis.MarginOfSafety,
		GrahamMargin:   cfg.Analysis.GrahamMargin,
	}
	sched.Sizing = allocator.Options{
		HistoricalReturn: cfg.Portfolio.HistoricalReturn,
		InceptionDate:    cfg.InceptionDate(),
		DesiredExposure:  cfg.Portfolio.DesiredExposure,
		CashPosition:     cfg.Portfolio.CashPosition,
	}
	sched.RequestDelay = cfg.RequestDelay()
	sched.ReferenceDate = cfg.ReferenceDate()
	if err := sched.RegisterDaily(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Init web front end
	srv, err := web.NewServer(cfg.Web.Addr, cfg.Web.TemplatesDir)
	if err != nil {
		log.Fatalf("[FATAL] init web server: %v", err)
	}
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("[FATAL] %v", err)
		}
	}()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing analysis now")
		go func() {
			if _, err := sched.RunNow(); err != nil {
				log.Printf("[ERROR] startup analysis: %v", err)
			}
		}()
	}

	log.Println("[INFO] Portfolio Advisor is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] web server shutdown: %v", err)
	}
	log.Println("[INFO] Portfolio Advisor stopped")
}
