package scoring

import (
	"fmt"
	"math"

	"stocklab/internal/domain"
	"stocklab/internal/fundamentals"
	"stocklab/internal/technicals"
)

// A technical score at or above this percentage is a tradeable setup:
// the matrix can go green and a position plan gets sized.
const entryThresholdPct = 67

type Input struct {
	Fundamentals *fundamentals.Report
	Technicals   *technicals.Report

	// Sizing inputs for the position plan.
	PortfolioValue float64
	RiskPct        float64
}

type Engine interface {
	// Score blends the fundamental sheet and the technical report into
	// one scorecard. Both sections must be present.
	Score(in Input) (*Scorecard, error)
}

type engineHandler struct{}

func NewEngine() Engine {
	return engineHandler{}
}

func (h engineHandler) Score(in Input) (*Scorecard, error) {
	if in.Fundamentals == nil || in.Technicals == nil {
		return nil, domain.MissingDataError{Err: fmt.Errorf("scoring needs both the fundamental and technical sections")}
	}

	fund, breakdown := fundamentalScore(in.Fundamentals)
	tech := in.Technicals.ScorePct

	out := &Scorecard{
		Symbol:           in.Fundamentals.Symbol,
		FundamentalScore: fund,
		TechnicalScore:   tech,
		CombinedScore:    (fund + tech) / 2,
		Breakdown:        breakdown,
	}

	switch {
	case fund >= 70 && tech >= entryThresholdPct:
		out.Recommendation = RecStrongBuy
		out.Action = "Enter position - Strong fundamentals & technicals"
	case fund >= 70 && tech >= 50:
		out.Recommendation = RecBuyWithCaution
		out.Action = "Good company, wait for better technical entry"
	case fund >= 50 && tech >= entryThresholdPct:
		out.Recommendation = RecWait
		out.Action = "Decent setup, monitor fundamentals"
	default:
		out.Recommendation = RecAvoid
		out.Action = "Weak fundamentals or technicals"
	}

	if tech >= entryThresholdPct {
		out.Position = positionPlan(in.Technicals, in.PortfolioValue, in.RiskPct)
	}
	return out, nil
}

// fundamentalScore grades the ratio sheet 0-100 across five buckets.
// NaN metrics simply fail their checks and contribute nothing.
func fundamentalScore(report *fundamentals.Report) (float64, Breakdown) {
	breakdown := Breakdown{
		Profitability: Bucket{Max: 30},
		Growth:        Bucket{Max: 20},
		Health:        Bucket{Max: 25},
		Valuation:     Bucket{Max: 15},
		CashQuality:   Bucket{Max: 10},
	}

	breakdown.Profitability.Score += stepAbove(report.Profitability.ROE, 15, 10)
	breakdown.Profitability.Score += stepAbove(report.Profitability.ROCE, 15, 10)
	breakdown.Profitability.Score += stepAbove(report.Profitability.NPM3yrAvg, 10, 5)

	breakdown.Growth.Score += stepAbove(report.Growth.EarningsCagr5yr, 15, 5)
	breakdown.Growth.Score += stepAbove(report.Growth.SalesCagr5yr, 15, 5)

	breakdown.Health.Score += stepBelow(report.Leverage.DebtToEquityMarket, 0.5, 1.0)
	breakdown.Health.Score += stepAbove(report.Leverage.InterestCoverage, 3, 2)
	if report.CashFlow.CFO > 0 {
		breakdown.Health.Score += 5
	}

	pe := report.Valuation.PE
	switch {
	case pe > 0 && pe < 15:
		breakdown.Valuation.Score += 10
	case pe > 0 && pe < 25:
		breakdown.Valuation.Score += 5
	}
	if report.Valuation.EarningsYield > 7 {
		breakdown.Valuation.Score += 5
	}

	breakdown.CashQuality.Score += stepAbove(report.CashFlow.CCfoOverCPat, 1, 0.8)

	total := breakdown.Profitability.Score + breakdown.Growth.Score +
		breakdown.Health.Score + breakdown.Valuation.Score + breakdown.CashQuality.Score
	max := breakdown.Profitability.Max + breakdown.Growth.Max +
		breakdown.Health.Max + breakdown.Valuation.Max + breakdown.CashQuality.Max

	score := 0.0
	if max > 0 {
		score = total / max * 100
	}
	return score, breakdown
}

func stepAbove(v, full, half float64) float64 {
	switch {
	case v > full:
		return 10
	case v > half:
		return 5
	default:
		return 0
	}
}

func stepBelow(v, full, half float64) float64 {
	switch {
	case v < full:
		return 10
	case v < half:
		return 5
	default:
		return 0
	}
}

// positionPlan sizes an entry off the nearest support with a 3% buffer
// under it for the stop. Nil when no support level resolved or the
// stop would not sit below the entry.
func positionPlan(report *technicals.Report, portfolioValue, riskPct float64) *technicals.PositionPlan {
	entry := report.Price
	support := report.SupportResistance.NearestSupport
	if entry <= 0 || math.IsNaN(support) || support <= 0 {
		return nil
	}

	stop := support * 0.97
	plan, err := technicals.SizePosition(portfolioValue, riskPct, entry, stop)
	if err != nil {
		return nil
	}
	plan.Targets = technicals.ProfitTargets(entry, stop)
	return &plan
}
