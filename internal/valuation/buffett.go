package valuation

import (
	"math"

	"stocklab/internal/domain"
)

// buffettMetrics grades the business on returns, leverage, liquidity
// and whether earnings have stayed positive in recent years.
func buffettMetrics(quote *domain.Quote, profile *domain.Profile, stmts *domain.Statements) *BuffettMetrics {
	if stmts.Income.Empty() || stmts.Balance.Empty() {
		return nil
	}

	netIncome := latestOrZero(stmts.Income, domain.ItemNetIncome)
	totalAssets := latestOrZero(stmts.Balance, domain.ItemTotalAssets)
	totalEquity := latestOrZero(stmts.Balance, domain.ItemStockholdersEquity)

	out := &BuffettMetrics{}
	if totalEquity > 0 {
		out.ROE = netIncome / totalEquity
	}
	if totalAssets > 0 {
		out.ROA = netIncome / totalAssets
	}
	// Without an invested-capital breakdown ROE stands in for ROIC.
	out.ROIC = out.ROE

	if de, ok := debtToEquity(stmts); ok {
		out.DebtToEquity = de
	}
	if cr, ok := currentRatio(profile, stmts); ok {
		out.CurrentRatio = cr
	}

	out.Criteria = BuffettCriteria{
		ROEAbove15Pct:            out.ROE > 0.15,
		ROAAbove10Pct:            out.ROA > 0.10,
		DebtToEquityBelowHalf:    out.DebtToEquity < 0.5,
		CurrentRatioAbove1Point5: out.CurrentRatio > 1.5,
		PositiveEarnings:         netIncome > 0,
		ConsistentEarnings:       consistentEarnings(stmts),
	}
	out.Score = criteriaScore(
		out.Criteria.ROEAbove15Pct,
		out.Criteria.ROAAbove10Pct,
		out.Criteria.DebtToEquityBelowHalf,
		out.Criteria.CurrentRatioAbove1Point5,
		out.Criteria.PositiveEarnings,
		out.Criteria.ConsistentEarnings,
	)
	return out
}

// consistentEarnings checks that every reported net income over the
// last five years is positive. With fewer than two usable values there
// is no trend to judge, so the check passes.
func consistentEarnings(stmts *domain.Statements) bool {
	series, ok := stmts.Income.Series(domain.ItemNetIncome)
	if !ok {
		return true
	}
	valid := make([]float64, 0, 5)
	for _, v := range series.Last(5) {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}
	if len(valid) < 2 {
		return true
	}
	for _, v := range valid {
		if v <= 0 {
			return false
		}
	}
	return true
}
