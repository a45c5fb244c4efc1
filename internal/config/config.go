package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/salvarez/backtrade/internal/feed"
)

// Config holds all backtest configuration.
type Config struct {
	Ticker    string `yaml:"ticker"`
	StartDate string `yaml:"start_date"`
	EndDate   string `yaml:"end_date"`

	InitialCapital    float64 `yaml:"initial_capital"`
	StopLossPct       float64 `yaml:"stop_loss_pct"`
	MaxPositionPct    float64 `yaml:"max_position_pct"`
	DailyLossLimitPct float64 `yaml:"daily_loss_limit_pct"`

	Data struct {
		BarsCSV string `yaml:"bars_csv"`
	} `yaml:"data"`

	Indicators struct {
		ShortMA int `yaml:"short_ma"`
		LongMA  int `yaml:"long_ma"`
		RSI     int `yaml:"rsi"`
		Volume  int `yaml:"volume"`
	} `yaml:"indicators"`

	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`

	Export struct {
		TradesCSV string `yaml:"trades_csv"`
		EquityCSV string `yaml:"equity_csv"`
	} `yaml:"export"`
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
	if v := os.Getenv("BACKTRADE_TICKER"); v != "" {
		cfg.Ticker = v
	}
	if v := os.Getenv("BACKTRADE_BARS_CSV"); v != "" {
		cfg.Data.BarsCSV = v
	}
	if v := os.Getenv("BACKTRADE_SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("BACKTRADE_CAPITAL"); v != "" {
		var capital float64
		if _, err := fmt.Sscanf(v, "%f", &capital); err == nil {
			cfg.InitialCapital = capital
		}
	}

	// Defaults
	if cfg.Ticker == "" {
		cfg.Ticker = "WMT"
	}
	if cfg.InitialCapital == 0 {
		cfg.InitialCapital = 10000
	}
	if cfg.StopLossPct == 0 {
		cfg.StopLossPct = 0.07
	}
	if cfg.MaxPositionPct == 0 {
		cfg.MaxPositionPct = 1.0
	}
	if cfg.DailyLossLimitPct == 0 {
		cfg.DailyLossLimitPct = 0.10
	}
	defaults := feed.DefaultPeriods()
	if cfg.Indicators.ShortMA == 0 {
		cfg.Indicators.ShortMA = defaults.ShortMA
	}
	if cfg.Indicators.LongMA == 0 {
		cfg.Indicators.LongMA = defaults.LongMA
	}
	if cfg.Indicators.RSI == 0 {
		cfg.Indicators.RSI = defaults.RSI
	}
	if cfg.Indicators.Volume == 0 {
		cfg.Indicators.Volume = defaults.Volume
	}

	return cfg, nil
}

// Validate checks that all required fields are set and coherent.
func (c *Config) Validate() error {
	if c.Ticker == "" {
		return fmt.Errorf("ticker is required")
	}
	if c.Data.BarsCSV == "" {
		return fmt.Errorf("data.bars_csv is required")
	}
	if c.InitialCapital <= 0 {
		return fmt.Errorf("initial_capital must be positive")
	}
	if c.StopLossPct <= 0 || c.StopLossPct >= 1 {
		return fmt.Errorf("stop_loss_pct must be in (0, 1)")
	}
	if c.MaxPositionPct <= 0 || c.MaxPositionPct > 1 {
		return fmt.Errorf("max_position_pct must be in (0, 1]")
	}
	if c.DailyLossLimitPct <= 0 || c.DailyLossLimitPct >= 1 {
		return fmt.Errorf("daily_loss_limit_pct must be in (0, 1)")
	}
	if c.StartDate != "" || c.EndDate != "" {
		start, end, err := c.DateRange()
		if err != nil {
			return err
		}
		if !end.After(start) {
			return fmt.Errorf("end_date must be after start_date")
		}
	}
	return nil
}

// DateRange parses the configured backtest window.
func (c *Config) DateRange() (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", c.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse start_date: %w", err)
	}
	end, err := time.Parse("2006-01-02", c.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse end_date: %w", err)
	}
	return start, end, nil
}

// Periods returns the configured indicator lookback windows.
func (c *Config) Periods() feed.Periods {
	return feed.Periods{
		ShortMA: c.Indicators.ShortMA,
		LongMA:  c.Indicators.LongMA,
		RSI:     c.Indicators.RSI,
		Volume:  c.Indicators.Volume,
	}
}
