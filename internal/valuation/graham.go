package valuation

import (
	"math"

	"stocklab/internal/domain"
)

// grahamValuation computes sqrt(22.5 * EPS * BVPS) with the five
// screening criteria Graham attached to it. EPS and book value per
// share come from the quote when present and are rebuilt from the
// statements over the implied share count otherwise.
func grahamValuation(quote *domain.Quote, profile *domain.Profile, stmts *domain.Statements) *GrahamValuation {
	if stmts.Income.Empty() || stmts.Balance.Empty() {
		return nil
	}

	eps := quote.EpsTrailing
	bvps := quote.BookValue
	if shares := impliedShares(quote); shares > 0 {
		if eps == 0 {
			if ni := latestOrZero(stmts.Income, domain.ItemNetIncome); ni != 0 {
				eps = ni / shares
			}
		}
		if bvps == 0 {
			if equity := latestOrZero(stmts.Balance, domain.ItemStockholdersEquity); equity != 0 {
				bvps = equity / shares
			}
		}
	}

	out := &GrahamValuation{
		Number:         math.NaN(),
		CurrentPrice:   quote.Price,
		MarginOfSafety: math.NaN(),
	}
	if eps > 0 && bvps > 0 {
		out.Number = math.Sqrt(22.5 * eps * bvps)
		if quote.Price > 0 {
			out.MarginOfSafety = (out.Number - quote.Price) / out.Number
		}
	}

	out.Criteria = GrahamCriteria{
		PEBelow15:             quote.TrailingPE > 0 && quote.TrailingPE < 15,
		PBBelow1Point5:        quote.PriceToBook > 0 && quote.PriceToBook < 1.5,
		DebtToEquityBelowHalf: true,
		CurrentRatioAbove2:    true,
		PositiveEarnings:      eps > 0,
	}
	if de, ok := debtToEquity(stmts); ok {
		out.Criteria.DebtToEquityBelowHalf = de < 0.5
	}
	if cr, ok := currentRatio(profile, stmts); ok {
		out.Criteria.CurrentRatioAbove2 = cr > 2
	}

	out.Score = criteriaScore(
		out.Criteria.PEBelow15,
		out.Criteria.PBBelow1Point5,
		out.Criteria.DebtToEquityBelowHalf,
		out.Criteria.CurrentRatioAbove2,
		out.Criteria.PositiveEarnings,
	)
	return out
}
