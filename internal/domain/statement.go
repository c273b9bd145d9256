package domain

import (
	"math"
	"time"
)

type StatementPeriod string

const (
	PeriodAnnual    StatementPeriod = "annual"
	PeriodQuarterly StatementPeriod = "quarterly"
)

// Canonical line item names shared by the provider and the ratio engines.
// They mirror the provider's timeseries type names stripped of the period
// prefix.
const (
	ItemTotalRevenue             = "TotalRevenue"
	ItemCostOfRevenue            = "CostOfRevenue"
	ItemGrossProfit              = "GrossProfit"
	ItemOperatingExpense         = "OperatingExpense"
	ItemOperatingIncome          = "OperatingIncome"
	ItemEBIT                     = "EBIT"
	ItemEBITDA                   = "EBITDA"
	ItemInterestExpense          = "InterestExpense"
	ItemPretaxIncome             = "PretaxIncome"
	ItemTaxProvision             = "TaxProvision"
	ItemNetIncome                = "NetIncome"
	ItemBasicEPS                 = "BasicEPS"
	ItemDilutedEPS               = "DilutedEPS"
	ItemResearchAndDevelopment   = "ResearchAndDevelopment"
	ItemSellingGeneralAndAdmin   = "SellingGeneralAndAdministration"
	ItemTotalAssets              = "TotalAssets"
	ItemCurrentAssets            = "CurrentAssets"
	ItemCurrentLiabilities       = "CurrentLiabilities"
	ItemTotalLiabilities         = "TotalLiabilitiesNetMinorityInterest"
	ItemStockholdersEquity       = "StockholdersEquity"
	ItemTotalDebt                = "TotalDebt"
	ItemLongTermDebt             = "LongTermDebt"
	ItemCurrentDebt              = "CurrentDebt"
	ItemNetPPE                   = "NetPPE"
	ItemConstructionInProgress   = "ConstructionInProgress"
	ItemCashAndCashEquivalents   = "CashAndCashEquivalents"
	ItemCashAndShortTermInvest   = "CashCashEquivalentsAndShortTermInvestments"
	ItemWorkingCapital           = "WorkingCapital"
	ItemInventory                = "Inventory"
	ItemNetDebt                  = "NetDebt"
	ItemOrdinarySharesNumber     = "OrdinarySharesNumber"
	ItemRetainedEarnings         = "RetainedEarnings"
	ItemInvestedCapital          = "InvestedCapital"
	ItemOperatingCashFlow        = "OperatingCashFlow"
	ItemCapitalExpenditure       = "CapitalExpenditure"
	ItemFreeCashFlow             = "FreeCashFlow"
	ItemCashDividendsPaid        = "CashDividendsPaid"
	ItemDepreciationAmort        = "DepreciationAndAmortization"
	ItemDepreciationAmortTotal   = "DepreciationAmortizationDepletion"
	ItemRepurchaseOfCapitalStock = "RepurchaseOfCapitalStock"
)

// Statement is a date-indexed table of reported line items. Dates ascend
// and every item row aligns to Dates, with NaN marking cells the provider
// did not report.
type Statement struct {
	Dates []time.Time
	Items map[string][]float64
}

// Series returns the first named line item present. Callers pass fallback
// chains, e.g. Series(ItemCashAndCashEquivalents, ItemCashAndShortTermInvest).
func (s Statement) Series(names ...string) (Series, bool) {
	for _, name := range names {
		if vals, ok := s.Items[name]; ok {
			return Series{Dates: s.Dates, Values: vals}, true
		}
	}
	return Series{}, false
}

func (s Statement) Empty() bool {
	return len(s.Dates) == 0
}

// Series is one line item over the statement's dates, oldest first.
type Series struct {
	Dates  []time.Time
	Values []float64
}

func (r Series) Len() int {
	return len(r.Values)
}

// At returns the i-th value from the oldest; NaN when out of range.
func (r Series) At(i int) float64 {
	if i < 0 || i >= len(r.Values) {
		return math.NaN()
	}
	return r.Values[i]
}

// FromLatest returns the value i periods before the latest; FromLatest(0)
// is the most recent figure.
func (r Series) FromLatest(i int) float64 {
	return r.At(len(r.Values) - 1 - i)
}

func (r Series) Latest() float64 {
	return r.FromLatest(0)
}

func (r Series) Prior() float64 {
	return r.FromLatest(1)
}

// Last returns up to n trailing values, oldest first.
func (r Series) Last(n int) []float64 {
	if n >= len(r.Values) {
		n = len(r.Values)
	}
	out := make([]float64, n)
	copy(out, r.Values[len(r.Values)-n:])
	return out
}

// Valid drops NaN and infinite entries, keeping order.
func (r Series) Valid() []float64 {
	out := make([]float64, 0, len(r.Values))
	for _, v := range r.Values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// SumLast adds the non-NaN entries among the trailing n values.
func (r Series) SumLast(n int) float64 {
	sum := 0.0
	for _, v := range r.Last(n) {
		if !math.IsNaN(v) {
			sum += v
		}
	}
	return sum
}

// Statements bundles the three reported statements for one symbol and
// period.
type Statements struct {
	Symbol   string
	Period   StatementPeriod
	Income   Statement
	Balance  Statement
	CashFlow Statement
}

func (s *Statements) Empty() bool {
	return s == nil || (s.Income.Empty() && s.Balance.Empty() && s.CashFlow.Empty())
}
