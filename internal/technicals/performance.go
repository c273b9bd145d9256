package technicals

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"stocklab/internal/domain"
)

const tradingDaysPerYear = 252

// HistoricalPerformance computes realized return and risk statistics
// from daily closes. riskFree is an annual rate as a fraction (0.05
// for 5%) and feeds the Sharpe ratio.
func HistoricalPerformance(bars domain.History, riskFree float64) (*Performance, error) {
	if len(bars) < 2 {
		return nil, fmt.Errorf("performance stats need at least 2 bars, got %d", len(bars))
	}

	closes := bars.Closes()
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		returns = append(returns, closes[i]/closes[i-1]-1)
	}

	meanReturn, err := stats.Mean(returns)
	if err != nil {
		return nil, fmt.Errorf("mean of daily returns: %w", err)
	}
	stdev, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return nil, fmt.Errorf("stdev of daily returns: %w", err)
	}

	out := &Performance{
		AnnualizedReturnPct:     meanReturn * tradingDaysPerYear * 100,
		AnnualizedVolatilityPct: stdev * math.Sqrt(tradingDaysPerYear) * 100,
	}
	if out.AnnualizedVolatilityPct > 0 {
		out.SharpeRatio = (out.AnnualizedReturnPct - riskFree*100) / out.AnnualizedVolatilityPct
	}

	peak := closes[0]
	maxDrawdown := 0.0
	for _, price := range closes {
		if price > peak {
			peak = price
		}
		if dd := (price - peak) / peak; dd < maxDrawdown {
			maxDrawdown = dd
		}
	}
	out.MaxDrawdownPct = maxDrawdown * 100

	window := lastN(closes, tradingDaysPerYear)
	high, low := window[0], window[0]
	for _, v := range window[1:] {
		if v > high {
			high = v
		}
		if v < low {
			low = v
		}
	}
	out.High52Week = high
	out.Low52Week = low
	if high != low {
		out.RangePosition52WeekPct = (closes[len(closes)-1] - low) / (high - low) * 100
	}

	return out, nil
}
