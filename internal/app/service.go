package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"stocklab/internal/config"
	"stocklab/internal/domain"
	"stocklab/internal/fundamentals"
	"stocklab/internal/logger"
	"stocklab/internal/scoring"
	"stocklab/internal/technicals"
	"stocklab/internal/valuation"
	"stocklab/pkg/yahoo"
)

// AnalysisService orchestrates the full pipeline: fetch market data,
// run the fundamental/technical/valuation engines, blend the scores.
type AnalysisService interface {
	AnalyzeTicker(ctx context.Context, symbol string) *TickerResult
	AnalyzeBatch(ctx context.Context, symbols []string, opts BatchOptions) (*BatchResult, error)
	Screen(ctx context.Context, symbols []string, expression string) (*ScreenResult, error)
}

type analysisServiceHandler struct {
	Provider yahoo.Client
	Config   *config.Config

	Fundamentals fundamentals.Engine
	Technicals   technicals.Engine
	Valuation    valuation.Engine
	Scoring      scoring.Engine
}

func NewAnalysisService(provider yahoo.Client, cfg *config.Config) AnalysisService {
	return &analysisServiceHandler{
		Provider:     provider,
		Config:       cfg,
		Fundamentals: fundamentals.NewEngine(),
		Technicals:   technicals.NewEngine(),
		Valuation:    valuation.NewEngine(),
		Scoring:      scoring.NewEngine(),
	}
}

// marketData is the shared per-run context: the benchmark trend frame
// condensed into a MarketContext plus the year of benchmark closes the
// relative strength comparison needs.
type marketData struct {
	Context   *technicals.MarketContext
	Benchmark domain.History
}

// loadMarketData fetches the benchmark and volatility frames once per
// run. Everything here is best-effort: a missing frame logs a warning
// and the dependent section simply stays nil downstream.
func (h *analysisServiceHandler) loadMarketData(ctx context.Context) *marketData {
	log := logger.FromContext(ctx)
	now := time.Now()
	out := &marketData{}

	// Six months of closes drive the trend checks; the VIX frame only
	// matters for its latest close.
	trend, err := h.Provider.DailyHistory(ctx, h.Config.Market.Benchmark, now.AddDate(0, -6, 0), now)
	if err != nil {
		log.Warnf("market context unavailable: %v", err)
	} else {
		vix, vixErr := h.Provider.DailyHistory(ctx, h.Config.Market.VolatilityIndex, now.AddDate(0, 0, -7), now)
		if vixErr != nil {
			log.Warnf("volatility index unavailable: %v", vixErr)
			vix = nil
		}
		market, mErr := technicals.AnalyzeMarket(h.Config.Market.Benchmark, trend, vix)
		if mErr != nil {
			log.Warnf("market context unavailable: %v", mErr)
		} else {
			out.Context = market
		}
	}

	benchmark, err := h.Provider.DailyHistory(ctx, h.Config.Market.Benchmark, now.AddDate(-1, 0, 0), now)
	if err != nil {
		log.Warnf("benchmark history unavailable, relative strength disabled: %v", err)
	} else {
		out.Benchmark = benchmark
	}
	return out
}

func (h *analysisServiceHandler) AnalyzeTicker(ctx context.Context, symbol string) *TickerResult {
	return h.analyzeOne(ctx, symbol, h.loadMarketData(ctx))
}

// analyzeOne runs the whole pipeline for one symbol against
// already-loaded market data. A missing quote is the only hard
// failure; every other gap degrades to a nil section.
func (h *analysisServiceHandler) analyzeOne(ctx context.Context, symbol string, market *marketData) *TickerResult {
	log := logger.FromContext(ctx)
	out := &TickerResult{
		Symbol:     symbol,
		AnalyzedAt: time.Now(),
		Market:     market.Context,
	}

	quote, err := h.Provider.Quote(ctx, symbol)
	if err != nil {
		out.Err = fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
		return out
	}
	out.Quote = quote

	now := time.Now()
	history, err := h.Provider.DailyHistory(ctx, symbol, now.AddDate(-1, 0, 0), now)
	if err != nil {
		log.Warnf("no price history for %s, skipping technicals: %v", symbol, err)
	}

	statements, err := h.Provider.Statements(ctx, symbol, domain.PeriodAnnual)
	if err != nil {
		log.Warnf("no statements for %s, skipping fundamentals: %v", symbol, err)
	} else {
		out.Statements = statements
	}

	profile, err := h.Provider.Profile(ctx, symbol)
	if err != nil {
		log.Warnf("no profile for %s: %v", symbol, err)
	} else {
		out.Profile = profile
	}

	// The two analysis legs are independent; run them side by side and
	// let either one fail on its own.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if out.Statements == nil {
			return
		}
		report, err := h.Fundamentals.Compute(fundamentals.Input{
			Quote:      quote,
			Statements: out.Statements,
			Profile:    out.Profile,
			History:    history,
		})
		if err != nil {
			log.Warnf("fundamental analysis failed for %s: %v", symbol, err)
			return
		}
		out.Fundamentals = report
	}()
	go func() {
		defer wg.Done()
		if len(history) == 0 {
			return
		}
		report, err := h.Technicals.Analyze(technicals.Input{
			Symbol:       symbol,
			History:      history,
			Benchmark:    market.Benchmark,
			Market:       market.Context,
			RiskFreeRate: h.Config.Rates.RiskFree,
		})
		if err != nil {
			log.Warnf("technical analysis failed for %s: %v", symbol, err)
			return
		}
		out.Technicals = report
	}()
	wg.Wait()

	if out.Statements != nil {
		composite, err := h.Valuation.Compute(valuation.Input{
			Quote:      quote,
			Profile:    out.Profile,
			Statements: out.Statements,
			Rates: valuation.Rates{
				RiskFree:          h.Config.Rates.RiskFree,
				MarketRiskPremium: h.Config.Rates.MarketRiskPremium,
				TerminalGrowth:    h.Config.Rates.TerminalGrowth,
			},
		})
		if err != nil {
			log.Warnf("valuation failed for %s: %v", symbol, err)
		} else {
			out.Valuation = composite
		}
	}

	if out.Fundamentals != nil && out.Technicals != nil {
		scorecard, err := h.Scoring.Score(scoring.Input{
			Fundamentals:   out.Fundamentals,
			Technicals:     out.Technicals,
			PortfolioValue: h.Config.Sizing.PortfolioValue,
			RiskPct:        h.Config.Sizing.RiskPct,
		})
		if err != nil {
			log.Warnf("scoring failed for %s: %v", symbol, err)
		} else {
			out.Scorecard = scorecard
		}
	}

	return out
}
