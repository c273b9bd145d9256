package valuation

// Rating labels for the composite verdict.
const (
	RatingStrongBuy  = "Strong Buy"
	RatingBuy        = "Buy"
	RatingHold       = "Hold"
	RatingSell       = "Sell"
	RatingStrongSell = "Strong Sell"
)

// Composite blends the three valuation lenses into one 0-1 score.
// Components that could not be computed are nil and drop out of the
// weighting; Score is NaN and Recommendation empty when nothing
// contributed.
type Composite struct {
	Score          float64
	Recommendation string

	Graham  *GrahamValuation
	DCF     *DCFValuation
	Buffett *BuffettMetrics
}

// GrahamValuation is the classic intrinsic-value check: the Graham
// number over trailing EPS and book value, plus the screening criteria.
// Number and MarginOfSafety are NaN when earnings or book value do not
// support the formula.
type GrahamValuation struct {
	Number         float64
	CurrentPrice   float64
	MarginOfSafety float64
	Criteria       GrahamCriteria
	Score          float64
}

type GrahamCriteria struct {
	PEBelow15             bool
	PBBelow1Point5        bool
	DebtToEquityBelowHalf bool
	CurrentRatioAbove2    bool
	PositiveEarnings      bool
}

// DCFValuation is a five-year discounted cash flow with a Gordon
// terminal value. The terminal term is zero when the discount rate
// does not exceed the growth rate.
type DCFValuation struct {
	EnterpriseValue float64
	EquityValue     float64
	PerShareValue   float64
	MarginOfSafety  float64

	WACC         float64
	CostOfEquity float64
	CostOfDebt   float64
	Beta         float64

	BaseFCF       float64
	ProjectedFCF  []float64
	TerminalValue float64
	NetDebt       float64
}

// BuffettMetrics collects the quality-of-business checks: returns on
// equity and assets, leverage, liquidity and earnings consistency.
type BuffettMetrics struct {
	ROE          float64
	ROA          float64
	ROIC         float64
	DebtToEquity float64
	CurrentRatio float64
	Criteria     BuffettCriteria
	Score        float64
}

type BuffettCriteria struct {
	ROEAbove15Pct            bool
	ROAAbove10Pct            bool
	DebtToEquityBelowHalf    bool
	CurrentRatioAbove1Point5 bool
	PositiveEarnings         bool
	ConsistentEarnings       bool
}
