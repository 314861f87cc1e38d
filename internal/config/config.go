package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		BaseURL        string `yaml:"base_url"`
		APIKey         string `yaml:"api_key"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		RequestDelayMS int    `yaml:"request_delay_ms"`
	} `yaml:"data_source"`
	Ledger struct {
		Source        string `yaml:"source"` // csv, xlsx or sqlite
		Path          string `yaml:"path"`
		Sheet         string `yaml:"sheet"` // xlsx only
		Table         string `yaml:"table"` // sqlite only
		ReferenceDate string `yaml:"reference_date"` // YYYY-MM-DD, empty means today
	} `yaml:"ledger"`
	Analysis struct {
		HistoryDays    int      `yaml:"history_days"`
		VWAPWindow     int      `yaml:"vwap_window"`
		MarginOfSafety float64  `yaml:"margin_of_safety"`
		GrahamMargin   float64  `yaml:"graham_margin"`
		ETFs           []string `yaml:"etfs"`
	} `yaml:"analysis"`
	Portfolio struct {
		HistoricalReturn float64 `yaml:"historical_return"`
		InceptionDate    string  `yaml:"inception_date"`
		DesiredExposure  float64 `yaml:"desired_exposure"`
		CashPosition     float64 `yaml:"cash_position"`
	} `yaml:"portfolio"`
	Report struct {
		Dir string `yaml:"dir"` // empty disables report files
	} `yaml:"report"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Web struct {
		Addr         string `yaml:"addr"`
		TemplatesDir string `yaml:"templates_dir"`
	} `yaml:"web"`
}

// defaultETFs are the symbols screened as funds rather than single stocks.
var defaultETFs = []string{
	"FBTC", "ITA", "SCHF", "SCHE", "SCHX", "AOA", "AOK", "AOM",
	"AOR", "BLV", "SCHA", "SCHD", "SCHH", "SCHM", "SCHP", "SCHR", "SCHZ",
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("ALPHAVANTAGE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("LEDGER_SOURCE"); v != "" {
		cfg.Ledger.Source = v
	}
	if v := os.Getenv("LEDGER_PATH"); v != "" {
		cfg.Ledger.Path = v
	}
	if v := os.Getenv("REPORT_DIR"); v != "" {
		cfg.Report.Dir = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("WEB_ADDR"); v != "" {
		cfg.Web.Addr = v
	}
	if v := os.Getenv("HISTORICAL_RETURN"); v != "" {
		if ret, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Portfolio.HistoricalReturn = ret
		}
	}

	// Defaults
	if cfg.DataSource.TimeoutSeconds == 0 {
		cfg.DataSource.TimeoutSeconds = 30
	}
	if cfg.DataSource.RequestDelayMS == 0 {
		cfg.DataSource.RequestDelayMS = 100
	}
	if cfg.Ledger.Source == "" {
		cfg.Ledger.Source = "csv"
	}
	if cfg.Ledger.Path == "" {
		cfg.Ledger.Path = "data/ledger.csv"
	}
	if cfg.Analysis.HistoryDays == 0 {
		cfg.Analysis.HistoryDays = 252
	}
	if cfg.Analysis.VWAPWindow == 0 {
		cfg.Analysis.VWAPWindow = 126
	}
	if cfg.Analysis.MarginOfSafety == 0 {
		cfg.Analysis.MarginOfSafety = 0.9
	}
	if cfg.Analysis.GrahamMargin == 0 {
		cfg.Analysis.GrahamMargin = 0.95
	}
	if cfg.Analysis.ETFs == nil {
		cfg.Analysis.ETFs = defaultETFs
	}
	if cfg.Portfolio.DesiredExposure == 0 {
		cfg.Portfolio.DesiredExposure = 0.9
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 30 8 * * 1-5"
	}
	if cfg.Web.Addr == "" {
		cfg.Web.Addr = ":8080"
	}
	if cfg.Web.TemplatesDir == "" {
		cfg.Web.TemplatesDir = "web/templates"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and parseable.
func (c *Config) Validate() error {
	if c.DataSource.APIKey == "" {
		return fmt.Errorf("data_source.api_key is required")
	}
	switch c.Ledger.Source {
	case "csv", "xlsx", "sqlite":
	default:
		return fmt.Errorf("ledger.source must be csv, xlsx or sqlite, got %q", c.Ledger.Source)
	}
	if c.Ledger.Path == "" {
		return fmt.Errorf("ledger.path is required")
	}
	if c.Portfolio.InceptionDate == "" {
		return fmt.Errorf("portfolio.inception_date is required")
	}
	if _, err := time.Parse("2006-01-02", c.Portfolio.InceptionDate); err != nil {
		return fmt.Errorf("portfolio.inception_date: %w", err)
	}
	if c.Ledger.ReferenceDate != "" {
		if _, err := time.Parse("2006-01-02", c.Ledger.ReferenceDate); err != nil {
			return fmt.Errorf("ledger.reference_date: %w", err)
		}
	}
	if c.Analysis.MarginOfSafety <= 0 || c.Analysis.MarginOfSafety > 1 {
		return fmt.Errorf("analysis.margin_of_safety must be in (0, 1]")
	}
	if c.Portfolio.DesiredExposure <= 0 || c.Portfolio.DesiredExposure > 1 {
		return fmt.Errorf("portfolio.desired_exposure must be in (0, 1]")
	}
	return nil
}

// InceptionDate returns the parsed portfolio inception date. Validate must
// have passed.
func (c *Config) InceptionDate() time.Time {
	t, _ := time.Parse("2006-01-02", c.Portfolio.InceptionDate)
	return t
}

// ReferenceDate returns the parsed ledger reference date, or zero when the
// run date should be used.
func (c *Config) ReferenceDate() time.Time {
	if c.Ledger.ReferenceDate == "" {
		return time.Time{}
	}
	t, _ := time.Parse("2006-01-02", c.Ledger.ReferenceDate)
	return t
}

// Timeout returns the provider HTTP timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.DataSource.TimeoutSeconds) * time.Second
}

// RequestDelay returns the fixed delay between provider requests.
func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.DataSource.RequestDelayMS) * time.Millisecond
}
