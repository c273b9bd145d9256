package api

import (
	"fmt"
	"math"
	"testing"

	"stocklab/internal/app"
	"stocklab/internal/domain"
	"stocklab/internal/fundamentals"
	"stocklab/internal/scoring"
	"stocklab/internal/technicals"
	"stocklab/internal/valuation"

	"github.com/stretchr/testify/require"
)

func Test_toTickerResponse(t *testing.T) {
	t.Run("drops NaN metrics so the response stays encodable", func(t *testing.T) {
		result := &app.TickerResult{
			Symbol: "ACME",
			Quote: &domain.Quote{
				Symbol:    "ACME",
				LongName:  "Acme Industries Inc.",
				Price:     math.NaN(),
				MarketCap: 5500,
			},
			Fundamentals: &fundamentals.Report{
				Symbol: "ACME",
				Profitability: fundamentals.Profitability{
					ROE: 13.9,
					ROA: math.NaN(),
				},
				Leverage: fundamentals.Leverage{
					InterestCoverage: math.Inf(1),
				},
			},
			Valuation: &valuation.Composite{Score: math.NaN()},
		}

		got := toTickerResponse(result)

		require.Nil(t, got.CurrentPrice)
		require.Nil(t, got.ValuationScore)
		require.Equal(t, 13.9, got.Metrics["roe"])
		require.NotContains(t, got.Metrics, "roa")
		require.NotContains(t, got.Metrics, "interest_coverage")
	})

	t.Run("maps every section", func(t *testing.T) {
		result := &app.TickerResult{
			Symbol: "ACME",
			Quote: &domain.Quote{
				Symbol:    "ACME",
				LongName:  "Acme Industries Inc.",
				Price:     100,
				MarketCap: 5500,
			},
			Market: &technicals.MarketContext{State: technicals.MarketBull},
			Technicals: &technicals.Report{
				Signal: technicals.SignalStrongBuy,
				MovingAverages: technicals.MovingAverageSection{
					Score:    3,
					MaxScore: 3,
					Signal:   "BULLISH - Strong uptrend",
				},
				RSI: technicals.RSISection{Score: 2, MaxScore: 3},
			},
			Valuation: &valuation.Composite{
				Score:          0.445,
				Recommendation: valuation.RatingHold,
			},
			Scorecard: &scoring.Scorecard{
				FundamentalScore: 70,
				TechnicalScore:   73.3,
				CombinedScore:    71.65,
				Recommendation:   scoring.RecStrongBuy,
				Action:           "Enter position - Strong fundamentals & technicals",
				Position: &technicals.PositionPlan{
					EntryPrice: 100,
					StopLoss:   92.15,
					Shares:     127,
					ActualRisk: 996.95,
				},
			},
		}

		got := toTickerResponse(result)

		require.Equal(t, "ACME", got.Symbol)
		require.Equal(t, "Acme Industries Inc.", got.CompanyName)
		require.Equal(t, 100.0, *got.CurrentPrice)
		require.Equal(t, technicals.MarketBull, got.MarketState)
		require.Equal(t, technicals.SignalStrongBuy, got.TechnicalSignal)
		require.Equal(t, sectionResponse{Score: 3, Max: 3, Signal: "BULLISH - Strong uptrend"}, got.TechnicalSections["movingAverages"])
		require.Equal(t, sectionResponse{Score: 2, Max: 3}, got.TechnicalSections["rsi"])
		require.Equal(t, 0.445, *got.ValuationScore)
		require.Equal(t, valuation.RatingHold, got.ValuationRating)
		require.Equal(t, 70.0, *got.FundamentalScore)
		require.Equal(t, scoring.RecStrongBuy, got.Recommendation)
		require.NotNil(t, got.Position)
		require.Equal(t, 127, got.Position.Shares)
		require.Equal(t, 92.15, got.Position.StopLoss)
	})

	t.Run("carries the failure", func(t *testing.T) {
		got := toTickerResponse(&app.TickerResult{
			Symbol: "ACME",
			Err:    fmt.Errorf("failed to fetch quote for ACME: rate limited"),
		})

		require.Equal(t, "failed to fetch quote for ACME: rate limited", got.Error)
		require.Nil(t, got.CurrentPrice)
		require.Empty(t, got.Metrics)
	})
}
