package scoring

import "stocklab/internal/technicals"

// Recommendation labels from the fundamental/technical matrix.
const (
	RecStrongBuy      = "STRONG BUY"
	RecBuyWithCaution = "BUY WITH CAUTION"
	RecWait           = "WAIT"
	RecAvoid          = "AVOID"
)

// Scorecard is the blended verdict over one symbol: the 0-100
// fundamental score, the technical score percentage, their average,
// the matrix recommendation and, on a strong technical setup, a sized
// position plan.
type Scorecard struct {
	Symbol           string
	FundamentalScore float64
	TechnicalScore   float64
	CombinedScore    float64

	Breakdown      Breakdown
	Recommendation string
	Action         string

	Position *technicals.PositionPlan
}

// Breakdown shows where the fundamental points came from. Bucket
// maxima always count toward the total, so a sheet full of NaN still
// scores out of 100.
type Breakdown struct {
	Profitability Bucket
	Growth        Bucket
	Health        Bucket
	Valuation     Bucket
	CashQuality   Bucket
}

type Bucket struct {
	Score float64
	Max   float64
}
