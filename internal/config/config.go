package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		AdminID  int64  `yaml:"admin_id"`
	} `yaml:"telegram"`
	Bybit struct {
		APIKey    string `yaml:"api_key"`
		APISecret string `yaml:"api_secret"`
		BaseURL   string `yaml:"base_url"`
		Testnet   bool   `yaml:"testnet"`
	} `yaml:"bybit"`
	Trading struct {
		Contracts            []string `yaml:"contracts"`
		TimeframeMinutes     int      `yaml:"timeframe_minutes"`
		MAPeriod             int      `yaml:"ma_period"`
		PriceChangeThreshold float64  `yaml:"price_change_threshold"`
		VolumeThreshold      float64  `yaml:"volume_threshold"`
		RiskFraction         float64  `yaml:"risk_fraction"`
		StopLossPercent      float64  `yaml:"stop_loss_percent"`
		TakeProfitPercent    float64  `yaml:"take_profit_percent"`
	} `yaml:"trading"`
	Schedule struct {
		CycleCron string `yaml:"cycle_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy      string `yaml:"proxy"`
	RunOnStart bool   `yaml:"run_on_start"`
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
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_ADMIN_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Telegram.AdminID = id
		}
	}
	if v := os.Getenv("BYBIT_API_KEY"); v != "" {
		cfg.Bybit.APIKey = v
	}
	if v := os.Getenv("BYBIT_API_SECRET"); v != "" {
		cfg.Bybit.APISecret = v
	}
	if v := os.Getenv("BYBIT_BASE_URL"); v != "" {
		cfg.Bybit.BaseURL = v
	}
	if v := os.Getenv("CONTRACTS"); v != "" {
		cfg.Trading.Contracts = splitList(v)
	}
	if v := os.Getenv("CYCLE_CRON"); v != "" {
		cfg.Schedule.CycleCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("RUN_ON_START"); v == "true" {
		cfg.RunOnStart = true
	}

	// Defaults
	if cfg.Bybit.BaseURL == "" {
		if cfg.Bybit.Testnet {
			cfg.Bybit.BaseURL = "https://api-testnet.bybit.com"
		} else {
			cfg.Bybit.BaseURL = "https://api.bybit.com"
		}
	}
	if len(cfg.Trading.Contracts) == 0 {
		cfg.Trading.Contracts = []string{
			"WIFUSDT", "ARKUSDT", "SLERFUSDT", "ATAUSDT", "ADAUSDT",
			"DEGENUSDT", "ARUSDT", "MOVRUSDT", "SSVUSDT", "AUCTIONUSDT",
			"ZETAUSDT", "RAREUSDT", "SKLUSDT", "AXLUSDT", "SANDUSDT",
			"AXSUSDT", "SNXUSDT",
		}
	}
	if cfg.Trading.TimeframeMinutes == 0 {
		cfg.Trading.TimeframeMinutes = 15
	}
	if cfg.Trading.MAPeriod == 0 {
		cfg.Trading.MAPeriod = 200
	}
	if cfg.Trading.PriceChangeThreshold == 0 {
		cfg.Trading.PriceChangeThreshold = 0.1
	}
	if cfg.Trading.VolumeThreshold == 0 {
		cfg.Trading.VolumeThreshold = 1.01
	}
	if cfg.Trading.RiskFraction == 0 {
		cfg.Trading.RiskFraction = 0.1
	}
	if cfg.Trading.StopLossPercent == 0 {
		cfg.Trading.StopLossPercent = 0.5
	}
	if cfg.Trading.TakeProfitPercent == 0 {
		cfg.Trading.TakeProfitPercent = 10.0
	}
	if cfg.Schedule.CycleCron == "" {
		// Every 15 minutes, matching the default timeframe.
		cfg.Schedule.CycleCron = "0 */15 * * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/trades.db"
	}

	return cfg, nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.AdminID == 0 {
		return fmt.Errorf("telegram.admin_id is required")
	}
	if c.Bybit.APIKey == "" || c.Bybit.APISecret == "" {
		return fmt.Errorf("bybit.api_key and bybit.api_secret are required")
	}
	if len(c.Trading.Contracts) == 0 {
		return fmt.Errorf("trading.contracts must not be empty")
	}
	if c.Trading.MAPeriod < 2 {
		return fmt.Errorf("trading.ma_period must be at least 2")
	}
	if c.Trading.RiskFraction <= 0 || c.Trading.RiskFraction > 1 {
		return fmt.Errorf("trading.risk_fraction must be in (0, 1]")
	}
	if c.Trading.StopLossPercent <= 0 || c.Trading.TakeProfitPercent <= 0 {
		return fmt.Errorf("stop-loss and take-profit percentages must be positive")
	}
	return nil
}
