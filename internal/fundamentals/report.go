package fundamentals

// Report is the full ratio sheet for one symbol. NaN marks metrics the
// statements could not support; +Inf shows up where a zero denominator
// has a defined meaning (interest coverage, PEG); -1 is the sparse-data
// sentinel from MeanOfValid.
type Report struct {
	Symbol string
	Name   string
	Price  float64

	Profitability Profitability
	Growth        Growth
	Leverage      Leverage
	CashFlow      CashFlowQuality
	Valuation     ValuationRatios
	Raw           RawData
	Adjusted      *RnDAdjustments
	Analyst       *AnalystView
	Screens       Screens
}

type Profitability struct {
	ROCE                float64
	ROCE3yrAvg          float64
	NFAT                float64
	NFAT3yrAvg          float64
	NPM3yrAvg           float64
	DPR3yrAvg           float64
	RetentionRatio      float64
	Retention3yrAvg     float64
	DepRate3yrAvg       float64
	SSGR                float64
	ROE                 float64
	ROA                 float64
	ROEAvg3to5yr        float64
	ROAAvg3to5yr        float64
	NormalizedEBIT      float64
	NormalizedNetIncome float64
}

type Growth struct {
	EarningsCagr5yr float64
	SalesCagr5yr    float64
}

type Leverage struct {
	DebtToEquity       float64
	DebtToEquityMarket float64
	InterestCoverage   float64
	TaxPct             float64
	DeDecreasingTrend  bool
}

type CashFlowQuality struct {
	CFO                 float64
	CPat                float64
	CCfo                float64
	CCfoOverCPat        float64
	Capex               float64
	CapexFromCashflow   float64
	FCF                 float64
	FCFFromCashflow     float64
	FCFMarginBalancePct float64
	FCFMarginPct        float64
	FCFOverCFO          float64
}

type ValuationRatios struct {
	PE             float64
	EarningsYield  float64
	PEG            float64
	PriceToSales   float64
	PriceToBook    float64
	DividendYield  float64
	MarketCap      float64
	MarketCapCr    float64
	SharesCr       float64
	NfaPlusCwip    float64
	ProfitOnAssets float64
}

type RawData struct {
	MarketCap              float64
	NetIncome              float64
	TotalRevenue           float64
	TotalAssets            float64
	TotalLiabilities       float64
	StockholdersEquity     float64
	TotalDebt              float64
	Cash                   float64
	CurrentAssets          float64
	CurrentLiabilities     float64
	WorkingCapital         float64
	NetDebt                float64
	OperatingCashFlow      float64
	CapitalExpenditure     float64
	DividendsPaid          float64
	DepreciationAmort      float64
	InterestExpense        float64
	IncomeTaxExpense       float64
	SharesOutstanding      float64
	NetFixedAssets         float64
	ConstructionInProgress float64
}

// RnDAdjustments capitalizes research spend over a five year life and
// restates the capital ratios. Nil when the income statement reports no
// research line.
type RnDAdjustments struct {
	ResearchAsset           float64
	Amortization            float64
	AdjustedEBIT            float64
	AdjustedBookEquity      float64
	AdjustedDebtToEquity    float64
	AdjustedInvestedCapital float64
	AdjustedROC             float64
	AdjustedROE             float64
}

type AnalystView struct {
	TargetMeanPrice         float64
	TargetHighPrice         float64
	TargetLowPrice          float64
	RecommendationKey       string
	NumberOfAnalysts        int
	InsidersPercentHeld     float64
	InstitutionsPercentHeld float64
}

type Screens struct {
	SalesCagrAbove15       bool
	NpmAbove8              bool
	TaxPayoutAbove25       bool
	InterestCoverageAbove3 bool
	DeBelowHalf            bool
	CfoPositive            bool
	CCfoExceedsCPat        bool
	PeBelow10              bool
	PegBelow1              bool
	EarningsYieldAbove7    bool
	PbBelow3               bool
	DivYieldAbove3         bool
	SsgrExceedsSalesGrowth bool
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Flatten exposes the sheet as plain variables for screening
// expressions and tabular export. Booleans become 0/1.
func (r *Report) Flatten() map[string]float64 {
	out := map[string]float64{
		"current_price": r.Price,

		"roce":         r.Profitability.ROCE,
		"roce_3yr_avg": r.Profitability.ROCE3yrAvg,
		"nfat":         r.Profitability.NFAT,
		"nfat_3yr_avg": r.Profitability.NFAT3yrAvg,
		"npm":          r.Profitability.NPM3yrAvg,
		"dpr":          r.Profitability.DPR3yrAvg,
		"retention":    r.Profitability.RetentionRatio,
		"dep_rate":     r.Profitability.DepRate3yrAvg,
		"ssgr":         r.Profitability.SSGR,
		"roe":          r.Profitability.ROE,
		"roa":          r.Profitability.ROA,
		"roe_3to5yr":   r.Profitability.ROEAvg3to5yr,
		"roa_3to5yr":   r.Profitability.ROAAvg3to5yr,

		"earnings_cagr_5yr": r.Growth.EarningsCagr5yr,
		"sales_cagr_5yr":    r.Growth.SalesCagr5yr,

		"de":                r.Leverage.DebtToEquity,
		"de_market":         r.Leverage.DebtToEquityMarket,
		"interest_coverage": r.Leverage.InterestCoverage,
		"tax_pct":           r.Leverage.TaxPct,
		"de_decreasing":     boolToFloat(r.Leverage.DeDecreasingTrend),

		"cfo":            r.CashFlow.CFO,
		"cpat":           r.CashFlow.CPat,
		"ccfo":           r.CashFlow.CCfo,
		"ccfo_over_cpat": r.CashFlow.CCfoOverCPat,
		"capex":          r.CashFlow.Capex,
		"fcf":            r.CashFlow.FCF,
		"fcf_margin":     r.CashFlow.FCFMarginPct,
		"fcf_over_cfo":   r.CashFlow.FCFOverCFO,

		"pe":             r.Valuation.PE,
		"ey":             r.Valuation.EarningsYield,
		"peg":            r.Valuation.PEG,
		"ps":             r.Valuation.PriceToSales,
		"pb":             r.Valuation.PriceToBook,
		"dividend_yield": r.Valuation.DividendYield,
		"market_cap":     r.Valuation.MarketCap,
		"pa":             r.Valuation.ProfitOnAssets,

		"total_assets":       r.Raw.TotalAssets,
		"total_debt":         r.Raw.TotalDebt,
		"net_debt":           r.Raw.NetDebt,
		"working_capital":    r.Raw.WorkingCapital,
		"net_income":         r.Raw.NetIncome,
		"total_revenue":      r.Raw.TotalRevenue,
		"shares_outstanding": r.Raw.SharesOutstanding,
	}

	out["screen_sales_cagr_above_15"] = boolToFloat(r.Screens.SalesCagrAbove15)
	out["screen_npm_above_8"] = boolToFloat(r.Screens.NpmAbove8)
	out["screen_tax_payout_above_25"] = boolToFloat(r.Screens.TaxPayoutAbove25)
	out["screen_interest_coverage_above_3"] = boolToFloat(r.Screens.InterestCoverageAbove3)
	out["screen_de_below_half"] = boolToFloat(r.Screens.DeBelowHalf)
	out["screen_cfo_positive"] = boolToFloat(r.Screens.CfoPositive)
	out["screen_ccfo_exceeds_cpat"] = boolToFloat(r.Screens.CCfoExceedsCPat)
	out["screen_pe_below_10"] = boolToFloat(r.Screens.PeBelow10)
	out["screen_peg_below_1"] = boolToFloat(r.Screens.PegBelow1)
	out["screen_ey_above_7"] = boolToFloat(r.Screens.EarningsYieldAbove7)
	out["screen_pb_below_3"] = boolToFloat(r.Screens.PbBelow3)
	out["screen_dv_above_3"] = boolToFloat(r.Screens.DivYieldAbove3)
	out["screen_ssgr_exceeds_sales_growth"] = boolToFloat(r.Screens.SsgrExceedsSalesGrowth)

	if r.Adjusted != nil {
		out["research_asset"] = r.Adjusted.ResearchAsset
		out["adjusted_ebit"] = r.Adjusted.AdjustedEBIT
		out["adjusted_de"] = r.Adjusted.AdjustedDebtToEquity
		out["adjusted_roc"] = r.Adjusted.AdjustedROC
		out["adjusted_roe"] = r.Adjusted.AdjustedROE
	}

	return out
}
