package fundamentals

import (
	"fmt"
	"math"

	"stocklab/internal/domain"
)

// Input carries one symbol's snapshot. The engine never fetches;
// callers supply the quote, the reported statements, and optionally the
// company profile and price history.
type Input struct {
	Quote      *domain.Quote
	Statements *domain.Statements
	Profile    *domain.Profile
	History    domain.History
}

type Engine interface {
	Compute(in Input) (*Report, error)
}

type engineHandler struct{}

func NewEngine() Engine {
	return engineHandler{}
}

// Compute derives the full ratio sheet from reported statements plus the
// live quote. A ratio whose denominator was never reported comes back 0;
// multi year averages over too few valid years come back -1.
func (h engineHandler) Compute(in Input) (*Report, error) {
	if in.Quote == nil {
		return nil, domain.MissingDataError{Err: fmt.Errorf("no quote supplied")}
	}
	if in.Statements == nil || in.Statements.Income.Empty() || in.Statements.Balance.Empty() || in.Statements.CashFlow.Empty() {
		return nil, domain.MissingDataError{Err: fmt.Errorf("incomplete statements for %s", in.Quote.Symbol)}
	}

	income := in.Statements.Income
	balance := in.Statements.Balance
	cashflow := in.Statements.CashFlow
	numYears := len(income.Dates)
	window := min(3, numYears)

	netIncome := itemOr(income, numYears, domain.ItemNetIncome)
	revenue := itemOr(income, numYears, domain.ItemTotalRevenue)
	ebit := itemOr(income, numYears, domain.ItemEBIT)
	totalAssets := itemOr(balance, numYears, domain.ItemTotalAssets)
	currentLiabilities := itemOr(balance, numYears, domain.ItemCurrentLiabilities)
	netFixedAssets := itemOr(balance, numYears, domain.ItemNetPPE)
	equity := itemOr(balance, numYears, domain.ItemStockholdersEquity)
	totalDebtSeries := itemOr(balance, numYears, domain.ItemTotalDebt)
	cwip := itemOr(balance, numYears, domain.ItemConstructionInProgress)
	dividendsPaid := absValues(itemOr(cashflow, numYears, domain.ItemCashDividendsPaid))
	depreciation := itemOr(cashflow, numYears, domain.ItemDepreciationAmort, domain.ItemDepreciationAmortTotal)
	operatingCashFlow := itemOr(cashflow, numYears, domain.ItemOperatingCashFlow)

	price := in.Quote.Price
	if price == 0 {
		if last := in.History.LastClose(); !math.IsNaN(last) {
			price = last
		}
	}
	shares := float64(in.Quote.SharesOutstanding)

	prof := Profitability{}

	// ROCE on capital employed (total assets less current liabilities).
	capitalEmployed := func(k int) float64 {
		return totalAssets.FromLatest(k) - currentLiabilities.FromLatest(k)
	}
	if ce := capitalEmployed(0); ce != 0 {
		prof.ROCE = ebit.Latest() / ce * 100
	}
	roceWindow := make([]float64, 0, window)
	for k := window - 1; k >= 0; k-- {
		if ce := capitalEmployed(k); ce != 0 {
			roceWindow = append(roceWindow, ebit.FromLatest(k)/ce*100)
		}
	}
	prof.ROCE3yrAvg = MeanOfValid(roceWindow, 2)

	// Fixed asset turnover per year, measured against the average of
	// opening and closing net PPE.
	nfatValues := make([]float64, 0, numYears)
	for k := numYears - 2; k >= 0; k-- {
		avgNfa := (netFixedAssets.FromLatest(k) + netFixedAssets.FromLatest(k+1)) / 2
		year := 0.0
		if avgNfa != 0 {
			year = revenue.FromLatest(k) / avgNfa
		}
		nfatValues = append(nfatValues, year)
	}
	if numYears == 1 {
		year := 0.0
		if nfa := netFixedAssets.Latest(); nfa != 0 {
			year = revenue.Latest() / nfa
		}
		nfatValues = append(nfatValues, year)
	}
	if len(nfatValues) > 0 {
		prof.NFAT = nfatValues[len(nfatValues)-1]
	}
	prof.NFAT3yrAvg = MeanOfValid(tail(nfatValues, 3), 2)

	npmWindow := make([]float64, 0, window)
	dprWindow := make([]float64, 0, window)
	retentionWindow := make([]float64, 0, window)
	for k := window - 1; k >= 0; k-- {
		if rev := revenue.FromLatest(k); rev != 0 {
			npmWindow = append(npmWindow, netIncome.FromLatest(k)/rev*100)
		}
		if ni := netIncome.FromLatest(k); ni != 0 {
			dprWindow = append(dprWindow, dividendsPaid.FromLatest(k)/ni*100)
			retentionWindow = append(retentionWindow, (1-dividendsPaid.FromLatest(k)/ni)*100)
		}
	}
	prof.NPM3yrAvg = MeanOfValid(npmWindow, 2)
	prof.DPR3yrAvg = MeanOfValid(dprWindow, 2)
	prof.RetentionRatio = (1 - prof.DPR3yrAvg/100) * 100
	prof.Retention3yrAvg = MeanOfValid(retentionWindow, 2)

	// Depreciation as a share of net PPE, capped at 100%. The oldest
	// years of the window have no opening balance to average against.
	depWindow := make([]float64, 0, window)
	for k := window - 1; k >= 0; k-- {
		avgNfa := netFixedAssets.FromLatest(k)
		if numYears > 1 && k < numYears-2 {
			avgNfa = (netFixedAssets.FromLatest(k) + netFixedAssets.FromLatest(k+1)) / 2
		}
		year := 0.0
		if avgNfa != 0 {
			year = math.Abs(depreciation.FromLatest(k)) / avgNfa * 100
		}
		depWindow = append(depWindow, math.Min(year, 100))
	}
	prof.DepRate3yrAvg = MeanOfValid(depWindow, 2)

	// Self sustainable growth rate from the averaged building blocks.
	prof.SSGR = (prof.NFAT3yrAvg*(prof.NPM3yrAvg/100)*(1-prof.DPR3yrAvg/100) - prof.DepRate3yrAvg/100) * 100

	lev := Leverage{}
	totalDebt := totalDebtSeries.Latest()
	// Equity is lagged one year so returns measure against opening capital.
	equityPrior := equity.Prior()
	if equityPrior != 0 {
		lev.DebtToEquity = totalDebt / equityPrior
	}
	interestExpense := math.Abs(itemOr(income, numYears, domain.ItemInterestExpense).Latest())
	lev.InterestCoverage = math.Inf(1)
	if interestExpense != 0 {
		lev.InterestCoverage = itemOr(income, numYears, domain.ItemOperatingIncome).Latest() / interestExpense
	}
	taxExpense := 0.0
	if s, ok := income.Series(domain.ItemTaxProvision); ok {
		taxExpense = s.Latest()
	}
	if pretax := itemOr(income, numYears, domain.ItemPretaxIncome).Latest(); pretax != 0 {
		lev.TaxPct = taxExpense / pretax * 100
	}

	equityOrOnes, hasEquity := balance.Series(domain.ItemStockholdersEquity)
	if !hasEquity {
		equityOrOnes = onesSeries(numYears)
	}
	deWindow := min(5, numYears)
	deRatios := make([]float64, 0, deWindow)
	for k := deWindow - 1; k >= 0; k-- {
		deRatios = append(deRatios, totalDebtSeries.FromLatest(k)/equityOrOnes.FromLatest(k))
	}
	if len(deRatios) > 1 {
		lev.DeDecreasingTrend = true
		for j := 0; j+1 < len(deRatios); j++ {
			if !(deRatios[j] > deRatios[j+1]) {
				lev.DeDecreasingTrend = false
				break
			}
		}
	}

	cf := CashFlowQuality{}
	cf.CFO = operatingCashFlow.Latest()
	cf.CPat = netIncome.SumLast(5)
	cf.CCfo = operatingCashFlow.SumLast(5)
	if cf.CPat != 0 {
		cf.CCfoOverCPat = cf.CCfo / cf.CPat
	}

	// Capex from the balance sheet movement in fixed assets, with the
	// reported cash flow figure kept alongside for comparison.
	capexReported := math.Abs(itemOr(cashflow, numYears, domain.ItemCapitalExpenditure).Latest())
	cf.CapexFromCashflow = capexReported
	if numYears >= 2 {
		closing := netFixedAssets.Latest() + cwip.Latest()
		opening := netFixedAssets.Prior() + cwip.Prior()
		cf.Capex = closing - opening + depreciation.Latest()
	} else {
		cf.Capex = capexReported
	}
	cf.FCF = cf.CFO - cf.Capex
	cf.FCFFromCashflow = cf.CFO - capexReported
	if ni := netIncome.Latest(); ni != 0 {
		cf.FCFMarginBalancePct = cf.FCF / ni * 100
		cf.FCFMarginPct = cf.FCFFromCashflow / ni * 100
	}
	if cf.CFO != 0 {
		cf.FCFOverCFO = cf.FCF / cf.CFO
	}

	gr := Growth{}
	eps := itemOr(income, numYears, domain.ItemBasicEPS)
	epsWindow := eps.Last(5)
	if len(epsWindow) > 0 && math.IsNaN(epsWindow[0]) {
		epsWindow = eps.Last(4)
	}
	if periods := len(epsWindow) - 1; periods > 0 {
		gr.EarningsCagr5yr = Cagr(epsWindow[0], epsWindow[len(epsWindow)-1], periods)
	}
	salesWindow := revenue.Last(5)
	if len(salesWindow) > 0 && math.IsNaN(salesWindow[0]) {
		salesWindow = revenue.Last(4)
	}
	if periods := len(salesWindow) - 1; periods > 0 {
		gr.SalesCagr5yr = Cagr(salesWindow[0], salesWindow[len(salesWindow)-1], periods)
	}

	val := ValuationRatios{}
	val.PE = in.Quote.TrailingPE
	if val.PE == 0 {
		val.PE = math.Inf(1)
	}
	sharesForYield := shares
	if sharesForYield == 0 {
		sharesForYield = 1
	}
	if price != 0 {
		val.EarningsYield = netIncome.Latest() / (sharesForYield * price) * 100
	}
	val.PEG = math.Inf(1)
	if gr.EarningsCagr5yr != 0 {
		val.PEG = val.PE / gr.EarningsCagr5yr
	}
	val.SharesCr = shares / 1e7
	val.MarketCap = price * shares
	lev.DebtToEquityMarket = totalDebt / val.MarketCap
	if rev := revenue.Latest(); rev != 0 {
		val.PriceToSales = float64(in.Quote.MarketCap) / rev
	}
	val.PriceToBook = in.Quote.PriceToBook
	val.NfaPlusCwip = netFixedAssets.Latest() + cwip.Latest()
	perShareDividend := 0.0
	if shares != 0 {
		perShareDividend = dividendsPaid.Latest() / shares
	}
	if price != 0 {
		val.DividendYield = perShareDividend / price * 100
	}
	val.MarketCapCr = float64(in.Quote.MarketCap) / 1e7
	if assetsPrior := totalAssets.Prior(); assetsPrior != 0 {
		val.ProfitOnAssets = netIncome.Latest() / assetsPrior * 100
	}

	// Yearly ROA/ROE over a five year window, on average opening and
	// closing balances. The loop stops short of the newest year when a
	// full five years are reported, so these trail the headline ratios.
	niWindow := domain.Series{Values: netIncome.Last(5)}
	assetsWindow := domain.Series{Values: totalAssets.Last(5)}
	equityWindow := domain.Series{Values: equity.Last(5)}
	years := min(4, numYears)
	roaValues := make([]float64, 0, years)
	roeValues := make([]float64, 0, years)
	for i := 0; i < years; i++ {
		ni := niWindow.At(i)
		if math.IsNaN(ni) {
			ni = 0
		}
		avgAssets := assetsWindow.At(i)
		if i > 0 {
			avgAssets = (assetsWindow.At(i) + assetsWindow.At(i-1)) / 2
		}
		if avgAssets != 0 {
			roaValues = append(roaValues, ni/avgAssets*100)
		}
		avgEquity := equityWindow.At(i)
		if i > 0 {
			avgEquity = (equityWindow.At(i) + equityWindow.At(i-1)) / 2
		}
		if avgEquity != 0 {
			roeValues = append(roeValues, ni/avgEquity*100)
		}
	}
	roaValues = dropNaN(roaValues)
	roeValues = dropNaN(roeValues)
	prof.ROAAvg3to5yr = MeanOfValid(roaValues, 2)
	prof.ROEAvg3to5yr = MeanOfValid(roeValues, 2)
	prof.ROA = math.NaN()
	if len(roaValues) > 0 {
		prof.ROA = roaValues[len(roaValues)-1]
	}
	prof.ROE = math.NaN()
	if len(roeValues) > 0 {
		prof.ROE = roeValues[len(roeValues)-1]
	}

	// Three year averages as a crude normalization of the cycle.
	prof.NormalizedEBIT = MeanOfValid(ebit.Last(3), 2)
	prof.NormalizedNetIncome = MeanOfValid(netIncome.Last(3), 2)

	raw := RawData{
		MarketCap:         float64(in.Quote.MarketCap),
		SharesOutstanding: shares,
		OperatingCashFlow: cf.CFO,
	}
	if _, ok := income.Series(domain.ItemNetIncome); ok {
		raw.NetIncome = netIncome.Latest()
	}
	if _, ok := income.Series(domain.ItemTotalRevenue); ok {
		raw.TotalRevenue = revenue.Latest()
	}
	if s, ok := balance.Series(domain.ItemTotalAssets); ok {
		raw.TotalAssets = s.Latest()
	}
	if s, ok := balance.Series(domain.ItemTotalLiabilities); ok {
		raw.TotalLiabilities = s.Latest()
	}
	if hasEquity {
		raw.StockholdersEquity = equityPrior
	}
	if s, ok := balance.Series(domain.ItemTotalDebt); ok {
		raw.TotalDebt = s.Latest()
	} else if lt, ok := balance.Series(domain.ItemLongTermDebt); ok {
		if cd, ok := balance.Series(domain.ItemCurrentDebt); ok {
			raw.TotalDebt = lt.Latest() + cd.Latest()
		}
	}
	if s, ok := balance.Series(domain.ItemCashAndCashEquivalents, domain.ItemCashAndShortTermInvest); ok {
		raw.Cash = s.Latest()
	}
	if s, ok := balance.Series(domain.ItemCurrentAssets); ok {
		raw.CurrentAssets = s.Latest()
	}
	if s, ok := balance.Series(domain.ItemCurrentLiabilities); ok {
		raw.CurrentLiabilities = s.Latest()
	}
	if s, ok := balance.Series(domain.ItemWorkingCapital); ok {
		raw.WorkingCapital = s.Latest()
	}
	if raw.WorkingCapital == 0 && raw.CurrentAssets != 0 && raw.CurrentLiabilities != 0 {
		raw.WorkingCapital = raw.CurrentAssets - raw.CurrentLiabilities
	}
	if s, ok := cashflow.Series(domain.ItemCapitalExpenditure); ok {
		raw.CapitalExpenditure = math.Abs(s.Latest())
	}
	if _, ok := cashflow.Series(domain.ItemCashDividendsPaid); ok {
		raw.DividendsPaid = dividendsPaid.Latest()
	}
	if _, ok := cashflow.Series(domain.ItemDepreciationAmort, domain.ItemDepreciationAmortTotal); ok {
		raw.DepreciationAmort = depreciation.Latest()
	}
	if _, ok := income.Series(domain.ItemInterestExpense); ok {
		raw.InterestExpense = interestExpense
	}
	if s, ok := income.Series(domain.ItemTaxProvision); ok {
		raw.IncomeTaxExpense = s.Latest()
	}
	if _, ok := balance.Series(domain.ItemNetPPE); ok {
		raw.NetFixedAssets = netFixedAssets.Latest()
	}
	if s, ok := balance.Series(domain.ItemConstructionInProgress); ok {
		raw.ConstructionInProgress = s.Latest()
	}
	if raw.TotalDebt != 0 && raw.Cash != 0 {
		raw.NetDebt = raw.TotalDebt - raw.Cash
	}

	screens := Screens{
		SalesCagrAbove15:       gr.SalesCagr5yr > 15,
		NpmAbove8:              prof.NPM3yrAvg > 8,
		TaxPayoutAbove25:       lev.TaxPct > 25,
		InterestCoverageAbove3: lev.InterestCoverage > 3,
		DeBelowHalf:            lev.DebtToEquity < 0.5,
		CfoPositive:            cf.CFO > 0,
		CCfoExceedsCPat:        cf.CCfoOverCPat > 1,
		PeBelow10:              val.PE < 10,
		PegBelow1:              val.PEG < 1,
		EarningsYieldAbove7:    val.EarningsYield > 7,
		DivYieldAbove3:         val.DividendYield > 3,
		SsgrExceedsSalesGrowth: prof.SSGR > gr.SalesCagr5yr,
	}
	pb := in.Quote.PriceToBook
	if pb == 0 {
		pb = math.Inf(1)
	}
	screens.PbBelow3 = pb < 3

	name := in.Quote.LongName
	if name == "" {
		name = in.Quote.ShortName
	}
	if name == "" {
		name = in.Quote.Symbol
	}

	report := &Report{
		Symbol:        in.Quote.Symbol,
		Name:          name,
		Price:         price,
		Profitability: prof,
		Growth:        gr,
		Leverage:      lev,
		CashFlow:      cf,
		Valuation:     val,
		Raw:           raw,
		Screens:       screens,
	}

	if rd, ok := income.Series(domain.ItemResearchAndDevelopment); ok {
		// Capitalize research spend over a five year straight line, per
		// Damodaran's treatment of R&D as a capital investment.
		const life = 5
		researchAsset, amortization := 0.0, 0.0
		for age := 0; age < life; age++ {
			idx := numYears - 1 - age
			if idx < 0 {
				continue
			}
			rdValue := rd.At(idx)
			if math.IsNaN(rdValue) {
				rdValue = 0
			}
			researchAsset += rdValue * float64(life-age) / float64(life)
			amortization += rdValue / float64(life)
		}
		adjustedEBIT := ebit.Latest()
		if rdLatest := rd.Latest(); !math.IsNaN(rdLatest) {
			adjustedEBIT = ebit.Latest() + rdLatest - amortization
		}
		adjustedBookEquity := equityPrior + researchAsset
		adj := &RnDAdjustments{
			ResearchAsset:      researchAsset,
			Amortization:       amortization,
			AdjustedEBIT:       adjustedEBIT,
			AdjustedBookEquity: adjustedBookEquity,
		}
		if adjustedBookEquity != 0 {
			adj.AdjustedDebtToEquity = totalDebt / adjustedBookEquity
		}
		taxRate := 0.25
		if lev.TaxPct != 0 {
			taxRate = lev.TaxPct / 100
		}
		nopat := adjustedEBIT * (1 - taxRate)
		adj.AdjustedInvestedCapital = adjustedBookEquity + totalDebt - raw.Cash
		if adj.AdjustedInvestedCapital != 0 {
			adj.AdjustedROC = nopat / adj.AdjustedInvestedCapital * 100
		}
		if adjustedBookEquity != 0 {
			adj.AdjustedROE = netIncome.Latest() / adjustedBookEquity * 100
		}
		report.Adjusted = adj
	}

	if in.Profile != nil {
		report.Analyst = &AnalystView{
			TargetMeanPrice:         in.Profile.TargetMeanPrice,
			TargetHighPrice:         in.Profile.TargetHighPrice,
			TargetLowPrice:          in.Profile.TargetLowPrice,
			RecommendationKey:       in.Profile.RecommendationKey,
			NumberOfAnalysts:        in.Profile.NumberOfAnalysts,
			InsidersPercentHeld:     in.Profile.InsidersPercentHeld,
			InstitutionsPercentHeld: in.Profile.InstitutionsPercentHeld,
		}
	}

	return report, nil
}

func itemOr(stmt domain.Statement, n int, names ...string) domain.Series {
	if s, ok := stmt.Series(names...); ok {
		return s
	}
	return domain.Series{Values: make([]float64, n)}
}

func onesSeries(n int) domain.Series {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = 1
	}
	return domain.Series{Values: vals}
}

func absValues(s domain.Series) domain.Series {
	vals := make([]float64, len(s.Values))
	for i, v := range s.Values {
		vals[i] = math.Abs(v)
	}
	return domain.Series{Dates: s.Dates, Values: vals}
}

func tail(values []float64, n int) []float64 {
	if len(values) > n {
		return values[len(values)-n:]
	}
	return values
}

func dropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
