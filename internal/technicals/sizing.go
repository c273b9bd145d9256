package technicals

import "errors"

// DefaultTargetGains are the standard profit target levels in percent.
var DefaultTargetGains = []float64{15, 30}

// SizePosition converts a portfolio risk budget into a share count for
// an entry/stop pair: risk riskPct of the portfolio, spread over the
// per-share distance between entry and stop.
func SizePosition(portfolioValue, riskPct, entry, stop float64) (PositionPlan, error) {
	plan := PositionPlan{EntryPrice: entry, StopLoss: stop}

	riskPerShare := entry - stop
	if riskPerShare <= 0 {
		return plan, errors.New("stop loss must be below entry price")
	}

	riskAmount := portfolioValue * riskPct / 100
	plan.Shares = int(riskAmount / riskPerShare)
	plan.PositionValue = float64(plan.Shares) * entry
	plan.ActualRisk = float64(plan.Shares) * riskPerShare
	if portfolioValue > 0 {
		plan.PositionPct = plan.PositionValue / portfolioValue * 100
		plan.ActualRiskPct = plan.ActualRisk / portfolioValue * 100
	}
	return plan, nil
}

// ProfitTargets builds take-profit levels above the entry. With no
// explicit gains the standard 15% and 30% levels are used. The
// reward/risk multiple is zero when the stop is not below the entry.
func ProfitTargets(entry, stop float64, gainsPct ...float64) []ProfitTarget {
	if len(gainsPct) == 0 {
		gainsPct = DefaultTargetGains
	}
	riskPerShare := entry - stop

	out := make([]ProfitTarget, 0, len(gainsPct))
	for _, gain := range gainsPct {
		target := ProfitTarget{
			GainPct: gain,
			Price:   entry * (1 + gain/100),
		}
		target.Reward = target.Price - entry
		if riskPerShare > 0 {
			target.RewardRisk = target.Reward / riskPerShare
		}
		out = append(out, target)
	}
	return out
}
