package valuation

import (
	"math"

	"stocklab/internal/domain"
)

const (
	projectionYears = 5

	// Capital structure assumption when the market does not price the
	// debt directly: 30% debt at the risk-free rate plus a spread,
	// shielded at the statutory tax rate.
	debtWeight = 0.3
	debtSpread = 0.02
	taxRate    = 0.25

	// Operating cash flow haircut that approximates free cash flow
	// when the reported line is unavailable.
	fcfConversion = 0.8
)

// dcfValuation discounts five years of projected free cash flow plus a
// Gordon terminal value at a CAPM-based WACC, bridges to equity over
// net debt, and divides by the implied share count.
func dcfValuation(quote *domain.Quote, profile *domain.Profile, stmts *domain.Statements, rates Rates) *DCFValuation {
	if stmts.Income.Empty() || stmts.Balance.Empty() || stmts.CashFlow.Empty() {
		return nil
	}

	beta := 1.0
	if profile != nil && !math.IsNaN(profile.Beta) && profile.Beta != 0 {
		beta = profile.Beta
	}
	costOfEquity := rates.RiskFree + beta*rates.MarketRiskPremium
	costOfDebt := rates.RiskFree + debtSpread
	wacc := costOfEquity*(1-debtWeight) + costOfDebt*debtWeight*(1-taxRate)

	baseFCF := 0.0
	if cfo := latestOrZero(stmts.CashFlow, domain.ItemOperatingCashFlow); cfo != 0 {
		baseFCF = cfo * fcfConversion
	} else {
		baseFCF = latestOrZero(stmts.CashFlow, domain.ItemFreeCashFlow)
	}

	projected := make([]float64, projectionYears)
	enterpriseValue := 0.0
	discount := 1.0
	for i := range projected {
		projected[i] = baseFCF * math.Pow(1+rates.TerminalGrowth, float64(i+1))
		discount *= 1 + wacc
		enterpriseValue += projected[i] / discount
	}

	terminal := 0.0
	if wacc > rates.TerminalGrowth {
		terminal = projected[projectionYears-1] * (1 + rates.TerminalGrowth) / (wacc - rates.TerminalGrowth)
	}
	enterpriseValue += terminal / discount

	netDebt := netDebtOrZero(stmts)
	equityValue := enterpriseValue - netDebt

	perShare := 0.0
	if shares := impliedShares(quote); shares > 0 {
		perShare = equityValue / shares
	}

	out := &DCFValuation{
		EnterpriseValue: enterpriseValue,
		EquityValue:     equityValue,
		PerShareValue:   perShare,
		MarginOfSafety:  math.NaN(),
		WACC:            wacc,
		CostOfEquity:    costOfEquity,
		CostOfDebt:      costOfDebt,
		Beta:            beta,
		BaseFCF:         baseFCF,
		ProjectedFCF:    projected,
		TerminalValue:   terminal,
		NetDebt:         netDebt,
	}
	if perShare > 0 && quote.Price > 0 {
		out.MarginOfSafety = (perShare - quote.Price) / perShare
	}
	return out
}
