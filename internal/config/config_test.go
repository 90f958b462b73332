package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NoError(t, err)

	assert.Equal(t, "https://api.bybit.com", cfg.Bybit.BaseURL)
	assert.Equal(t, 15, cfg.Trading.TimeframeMinutes)
	assert.Equal(t, 200, cfg.Trading.MAPeriod)
	assert.InDelta(t, 0.1, cfg.Trading.PriceChangeThreshold, 1e-9)
	assert.InDelta(t, 1.01, cfg.Trading.VolumeThreshold, 1e-9)
	assert.InDelta(t, 0.1, cfg.Trading.RiskFraction, 1e-9)
	assert.InDelta(t, 0.5, cfg.Trading.StopLossPercent, 1e-9)
	assert.InDelta(t, 10.0, cfg.Trading.TakeProfitPercent, 1e-9)
	assert.NotEmpty(t, cfg.Trading.Contracts)
	assert.Equal(t, "data/trades.db", cfg.Database.SQLitePath)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
telegram:
  bot_token: tok
  admin_id: 42
bybit:
  api_key: k
  api_secret: s
  testnet: true
trading:
  contracts: [AUSDT, BUSDT]
  ma_period: 50
`)
	cfg, err := Load(path)
	assert.NoError(t, err)

	assert.Equal(t, "tok", cfg.Telegram.BotToken)
	assert.Equal(t, int64(42), cfg.Telegram.AdminID)
	assert.Equal(t, "https://api-testnet.bybit.com", cfg.Bybit.BaseURL)
	assert.Equal(t, []string{"AUSDT", "BUSDT"}, cfg.Trading.Contracts)
	assert.Equal(t, 50, cfg.Trading.MAPeriod)
	assert.NoError(t, cfg.Validate())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("TELEGRAM_ADMIN_ID", "7")
	t.Setenv("CONTRACTS", "XUSDT, YUSDT")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Telegram.BotToken)
	assert.Equal(t, int64(7), cfg.Telegram.AdminID)
	assert.Equal(t, []string{"XUSDT", "YUSDT"}, cfg.Trading.Contracts)
}

func TestValidate(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NoError(t, err)

	// Required fields missing from defaults alone.
	assert.ErrorContains(t, cfg.Validate(), "telegram.bot_token")

	cfg.Telegram.BotToken = "tok"
	assert.ErrorContains(t, cfg.Validate(), "telegram.admin_id")

	cfg.Telegram.AdminID = 1
	assert.ErrorContains(t, cfg.Validate(), "bybit.api_key")

	cfg.Bybit.APIKey = "k"
	cfg.Bybit.APISecret = "s"
	assert.NoError(t, cfg.Validate())

	cfg.Trading.RiskFraction = 1.5
	assert.ErrorContains(t, cfg.Validate(), "risk_fraction")
}
