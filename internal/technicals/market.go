package technicals

import (
	"fmt"
	"math"

	"stocklab/internal/domain"
)

// AnalyzeMarket grades the broad market from the benchmark's trend
// checks plus, when a VIX history is supplied, a low-volatility check.
// A missing VIX shrinks the denominator rather than failing the run.
func AnalyzeMarket(benchmark string, bars domain.History, vix domain.History) (*MarketContext, error) {
	if len(bars) == 0 {
		return nil, domain.MissingDataError{
			Err: fmt.Errorf("no history for market benchmark %s", benchmark),
		}
	}

	closes := bars.Closes()
	price := closes[len(closes)-1]
	sma50 := last(Sma(closes, 50))
	sma200 := last(Sma(closes, 200))

	out := &MarketContext{
		Benchmark: benchmark,
		Price:     price,
		SMA50:     sma50,
		SMA200:    sma200,

		AboveSMA50:  price > sma50,
		AboveSMA200: price > sma200,
		GoldenCross: sma50 > sma200,

		VIX: math.NaN(),
	}

	checks := []bool{out.AboveSMA50, out.AboveSMA200, out.GoldenCross}

	vixLevel := vix.LastClose()
	if !math.IsNaN(vixLevel) && vixLevel != 0 {
		low := vixLevel < 20
		out.VIX = vixLevel
		out.LowVIX = &low
		checks = append(checks, low)
	}

	out.Score = boolCount(checks...)
	out.TotalChecks = len(checks)

	switch {
	case float64(out.Score) >= 0.75*float64(out.TotalChecks):
		out.State = MarketBull
		out.Recommendation = "Aggressive - Take 5-7 positions"
	case float64(out.Score) >= 0.5*float64(out.TotalChecks):
		out.State = MarketNeutral
		out.Recommendation = "Selective - Take 3-5 positions"
	default:
		out.State = MarketBear
		out.Recommendation = "Defensive - Maximum 2 positions, mostly cash"
	}
	return out, nil
}

// CompareRelativeStrength measures the stock's total return against
// the benchmark's over each history. Nil when either side is empty.
func CompareRelativeStrength(stock, benchmark domain.History) *RelativeStrength {
	if len(stock) == 0 || len(benchmark) == 0 {
		return nil
	}

	out := &RelativeStrength{
		StockReturnPct:     totalReturnPct(stock),
		BenchmarkReturnPct: totalReturnPct(benchmark),
	}
	out.OutperformancePct = out.StockReturnPct - out.BenchmarkReturnPct
	out.Outperforming = out.OutperformancePct > 0

	switch {
	case out.OutperformancePct > 10:
		out.Signal = "STRONG - Significant outperformance"
	case out.OutperformancePct > 0:
		out.Signal = "GOOD - Outperforming market"
	case out.OutperformancePct > -10:
		out.Signal = "WEAK - Slight underperformance"
	default:
		out.Signal = "AVOID - Significant underperformance"
	}
	return out
}

func totalReturnPct(bars domain.History) float64 {
	closes := bars.Closes()
	return (closes[len(closes)-1]/closes[0] - 1) * 100
}
