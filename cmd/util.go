package cmd

import (
	"fmt"

	"stocklab/api"
	"stocklab/internal/app"
	"stocklab/internal/config"
	"stocklab/internal/logger"
	"stocklab/internal/repository"
	treasury_client "stocklab/pkg/treasury"
	"stocklab/pkg/yahoo"
)

// InitializeDependencies wires the toolkit from one config file. Both
// binaries come through here so the CLI and the API agree on provider,
// rates and narrative setup.
func InitializeDependencies(configPath string) (*api.ApiHandler, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New()

	// The configured risk-free rate is a fallback; the live 10 year
	// treasury yield wins whenever the fetch succeeds.
	if rate, rateErr := treasury_client.CurrentRiskFreeRate(); rateErr != nil {
		log.Warnf("treasury yield unavailable, keeping risk-free rate at %.2f%%: %v", cfg.Rates.RiskFree*100, rateErr)
	} else {
		cfg.Rates.RiskFree = rate
	}

	var narrativeRepository repository.NarrativeRepository
	if cfg.OpenAIKey != "" {
		narrativeRepository, err = repository.NewNarrativeRepository(cfg.OpenAIKey)
		if err != nil {
			return nil, err
		}
	}

	analysisService := app.NewAnalysisService(yahoo.NewClient(), cfg)

	return &api.ApiHandler{
		AnalysisService: analysisService,
		Narrative:       narrativeRepository,
		Config:          cfg,
	}, nil
}
