package app

import (
	"math"
	"time"

	"stocklab/internal/domain"
	"stocklab/internal/fundamentals"
	"stocklab/internal/scoring"
	"stocklab/internal/technicals"
	"stocklab/internal/valuation"
)

// TickerResult is everything one analysis run produced for one symbol.
// Err is set only on a hard failure (no quote); section fields are nil
// individually when their inputs could not be fetched or computed.
type TickerResult struct {
	Symbol     string
	AnalyzedAt time.Time
	Err        error

	Quote      *domain.Quote
	Profile    *domain.Profile
	Statements *domain.Statements

	Fundamentals *fundamentals.Report
	Technicals   *technicals.Report
	Valuation    *valuation.Composite
	Scorecard    *scoring.Scorecard

	Market *technicals.MarketContext
}

// CombinedScore is the scorecard's blended score, NaN when scoring
// never ran.
func (r *TickerResult) CombinedScore() float64 {
	if r == nil || r.Scorecard == nil {
		return math.NaN()
	}
	return r.Scorecard.CombinedScore
}

// Recommendation is the matrix verdict, empty when scoring never ran.
func (r *TickerResult) Recommendation() string {
	if r == nil || r.Scorecard == nil {
		return ""
	}
	return r.Scorecard.Recommendation
}
