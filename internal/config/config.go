package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable the toolkit reads. Constructors take the
// struct (or a slice of it) explicitly; nothing reads it globally.
type Config struct {
	Rates struct {
		// Annualized fractions: 0.05 means 5%.
		RiskFree          float64 `yaml:"risk_free"`
		MarketRiskPremium float64 `yaml:"market_risk_premium"`
		TerminalGrowth    float64 `yaml:"terminal_growth"`
	} `yaml:"rates"`

	Sizing struct {
		PortfolioValue float64 `yaml:"portfolio_value"`
		RiskPct        float64 `yaml:"risk_pct"`
	} `yaml:"sizing"`

	Batch struct {
		Size             int     `yaml:"size"`
		WaveDelaySeconds float64 `yaml:"wave_delay_seconds"`
	} `yaml:"batch"`

	Market struct {
		Benchmark       string `yaml:"benchmark"`
		VolatilityIndex string `yaml:"volatility_index"`
	} `yaml:"market"`

	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`

	API struct {
		Port int `yaml:"port"`
	} `yaml:"api"`

	OpenAIKey string `yaml:"openai_key"`
}

// DefaultPath is where Load looks unless STOCKLAB_CONFIG points
// somewhere else.
func DefaultPath() string {
	if v := os.Getenv("STOCKLAB_CONFIG"); v != "" {
		return v
	}
	return "stocklab.yaml"
}

// Default returns a config with every default applied and no file read.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML config file, fills in defaults for anything the
// file left unset, and validates the result. A missing file is fine:
// the defaults stand on their own.
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

	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAIKey = v
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Rates.RiskFree == 0 {
		c.Rates.RiskFree = 0.05
	}
	if c.Rates.MarketRiskPremium == 0 {
		c.Rates.MarketRiskPremium = 0.06
	}
	if c.Rates.TerminalGrowth == 0 {
		c.Rates.TerminalGrowth = 0.05
	}
	if c.Sizing.PortfolioValue == 0 {
		c.Sizing.PortfolioValue = 100000
	}
	if c.Sizing.RiskPct == 0 {
		c.Sizing.RiskPct = 1.0
	}
	if c.Batch.Size == 0 {
		c.Batch.Size = 10
	}
	if c.Batch.WaveDelaySeconds == 0 {
		c.Batch.WaveDelaySeconds = 1
	}
	if c.Market.Benchmark == "" {
		c.Market.Benchmark = "SPY"
	}
	if c.Market.VolatilityIndex == "" {
		c.Market.VolatilityIndex = "^VIX"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "."
	}
	if c.API.Port == 0 {
		c.API.Port = 8080
	}
}

func (c *Config) Validate() error {
	if c.Sizing.PortfolioValue <= 0 {
		return fmt.Errorf("sizing.portfolio_value must be positive")
	}
	if c.Sizing.RiskPct <= 0 || c.Sizing.RiskPct > 100 {
		return fmt.Errorf("sizing.risk_pct must be in (0, 100]")
	}
	if c.Batch.Size < 1 {
		return fmt.Errorf("batch.size must be at least 1")
	}
	return nil
}

func (c *Config) WaveDelay() time.Duration {
	return time.Duration(c.Batch.WaveDelaySeconds * float64(time.Second))
}
