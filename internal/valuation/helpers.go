package valuation

import (
	"math"

	"stocklab/internal/domain"
)

// latestOrZero reads the most recent value of the first matching line
// item, treating a missing row or a NaN cell as zero.
func latestOrZero(stmt domain.Statement, names ...string) float64 {
	if series, ok := stmt.Series(names...); ok {
		if v := series.Latest(); !math.IsNaN(v) {
			return v
		}
	}
	return 0
}

// impliedShares derives the share count from market cap and price, the
// same way the quote feed reports them. Zero when either is missing.
func impliedShares(quote *domain.Quote) float64 {
	if quote.Price <= 0 || quote.MarketCap <= 0 {
		return 0
	}
	return float64(quote.MarketCap) / quote.Price
}

// totalDebt prefers the reported total and falls back to summing the
// long-term and current portions.
func totalDebt(stmts *domain.Statements) (float64, bool) {
	if series, ok := stmts.Balance.Series(domain.ItemTotalDebt); ok {
		if v := series.Latest(); !math.IsNaN(v) {
			return v, true
		}
	}
	long, okLong := stmts.Balance.Series(domain.ItemLongTermDebt)
	current, okCurrent := stmts.Balance.Series(domain.ItemCurrentDebt)
	if okLong && okCurrent {
		l, c := long.Latest(), current.Latest()
		if !math.IsNaN(l) && !math.IsNaN(c) {
			return l + c, true
		}
	}
	return 0, false
}

// debtToEquity needs positive book equity to be meaningful.
func debtToEquity(stmts *domain.Statements) (float64, bool) {
	equity := latestOrZero(stmts.Balance, domain.ItemStockholdersEquity)
	if equity <= 0 {
		return 0, false
	}
	debt, ok := totalDebt(stmts)
	if !ok {
		return 0, false
	}
	return debt / equity, true
}

// currentRatio takes the profile figure when the feed supplies one and
// recomputes it from the balance sheet otherwise.
func currentRatio(profile *domain.Profile, stmts *domain.Statements) (float64, bool) {
	if profile != nil && !math.IsNaN(profile.CurrentRatio) && profile.CurrentRatio != 0 {
		return profile.CurrentRatio, true
	}
	assets, okAssets := stmts.Balance.Series(domain.ItemCurrentAssets)
	liabilities, okLiabilities := stmts.Balance.Series(domain.ItemCurrentLiabilities)
	if okAssets && okLiabilities {
		a, l := assets.Latest(), liabilities.Latest()
		if l > 0 && !math.IsNaN(a) {
			return a / l, true
		}
	}
	return 0, false
}

// netDebtOrZero prefers the reported net debt line, then total debt
// less cash, then zero so the DCF equity bridge still resolves.
func netDebtOrZero(stmts *domain.Statements) float64 {
	if series, ok := stmts.Balance.Series(domain.ItemNetDebt); ok {
		if v := series.Latest(); !math.IsNaN(v) {
			return v
		}
	}
	cash := latestOrZero(stmts.Balance, domain.ItemCashAndCashEquivalents, domain.ItemCashAndShortTermInvest)
	if debt, ok := totalDebt(stmts); ok && cash != 0 {
		return debt - cash
	}
	return 0
}

// criteriaScore is the fraction of checks that passed.
func criteriaScore(criteria ...bool) float64 {
	hits := 0
	for _, c := range criteria {
		if c {
			hits++
		}
	}
	return float64(hits) / float64(len(criteria))
}
