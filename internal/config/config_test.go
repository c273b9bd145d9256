package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_Load(t *testing.T) {
	t.Run("missing file keeps the defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)

		require.Equal(t, 0.05, cfg.Rates.RiskFree)
		require.Equal(t, 0.06, cfg.Rates.MarketRiskPremium)
		require.Equal(t, 0.05, cfg.Rates.TerminalGrowth)
		require.Equal(t, 100000.0, cfg.Sizing.PortfolioValue)
		require.Equal(t, 1.0, cfg.Sizing.RiskPct)
		require.Equal(t, 10, cfg.Batch.Size)
		require.Equal(t, time.Second, cfg.WaveDelay())
		require.Equal(t, "SPY", cfg.Market.Benchmark)
		require.Equal(t, "^VIX", cfg.Market.VolatilityIndex)
		require.Equal(t, 8080, cfg.API.Port)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stocklab.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
rates:
  risk_free: 0.042
sizing:
  portfolio_value: 250000
  risk_pct: 0.5
batch:
  size: 4
  wave_delay_seconds: 2.5
market:
  benchmark: VOO
`), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, 0.042, cfg.Rates.RiskFree)
		require.Equal(t, 0.06, cfg.Rates.MarketRiskPremium)
		require.Equal(t, 250000.0, cfg.Sizing.PortfolioValue)
		require.Equal(t, 0.5, cfg.Sizing.RiskPct)
		require.Equal(t, 4, cfg.Batch.Size)
		require.Equal(t, 2500*time.Millisecond, cfg.WaveDelay())
		require.Equal(t, "VOO", cfg.Market.Benchmark)
		require.Equal(t, "^VIX", cfg.Market.VolatilityIndex)
	})

	t.Run("rejects a bad risk percent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stocklab.yaml")
		require.NoError(t, os.WriteFile(path, []byte("sizing:\n  risk_pct: 150\n"), 0o644))

		_, err := Load(path)
		require.ErrorContains(t, err, "risk_pct")
	})

	t.Run("rejects a garbled file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stocklab.yaml")
		require.NoError(t, os.WriteFile(path, []byte("{not yaml:::"), 0o644))

		_, err := Load(path)
		require.ErrorContains(t, err, "parse config")
	})
}

func Test_DefaultPath(t *testing.T) {
	t.Setenv("STOCKLAB_CONFIG", "")
	require.Equal(t, "stocklab.yaml", DefaultPath())

	t.Setenv("STOCKLAB_CONFIG", "/etc/stocklab/conf.yaml")
	require.Equal(t, "/etc/stocklab/conf.yaml", DefaultPath())
}
