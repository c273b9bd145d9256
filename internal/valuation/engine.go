package valuation

import (
	"fmt"
	"math"

	"stocklab/internal/domain"
)

// Component weights in the blended score. The DCF only participates
// when it produced a positive per-share value against a known price;
// absent components renormalize over whatever remains.
const (
	grahamWeight  = 0.4
	dcfWeight     = 0.35
	buffettWeight = 0.25
)

// Rates carries the market assumptions the discounting model needs.
type Rates struct {
	RiskFree          float64
	MarketRiskPremium float64
	TerminalGrowth    float64
}

type Input struct {
	Quote      *domain.Quote
	Profile    *domain.Profile
	Statements *domain.Statements
	Rates      Rates
}

type Engine interface {
	// Compute runs the Graham, DCF and Buffett models over the inputs
	// and blends whichever of them resolved into a composite verdict.
	Compute(in Input) (*Composite, error)
}

type engineHandler struct{}

func NewEngine() Engine {
	return engineHandler{}
}

func (h engineHandler) Compute(in Input) (*Composite, error) {
	if in.Quote == nil {
		return nil, domain.MissingDataError{Err: fmt.Errorf("no quote supplied")}
	}
	if in.Statements == nil || in.Statements.Empty() {
		return nil, domain.MissingDataError{Err: fmt.Errorf("no financial statements for %s", in.Quote.Symbol)}
	}

	out := &Composite{
		Score:   math.NaN(),
		Graham:  grahamValuation(in.Quote, in.Profile, in.Statements),
		DCF:     dcfValuation(in.Quote, in.Profile, in.Statements, in.Rates),
		Buffett: buffettMetrics(in.Quote, in.Profile, in.Statements),
	}

	score, weight := 0.0, 0.0
	if out.Graham != nil {
		score += out.Graham.Score * grahamWeight
		weight += grahamWeight
	}
	if out.DCF != nil && out.DCF.PerShareValue > 0 && in.Quote.Price > 0 {
		dcfScore := math.Min(1, math.Max(0, out.DCF.MarginOfSafety+0.5))
		score += dcfScore * dcfWeight
		weight += dcfWeight
	}
	if out.Buffett != nil {
		score += out.Buffett.Score * buffettWeight
		weight += buffettWeight
	}
	if weight > 0 {
		out.Score = score / weight
		out.Recommendation = rating(out.Score)
	}
	return out, nil
}

func rating(score float64) string {
	switch {
	case score >= 0.8:
		return RatingStrongBuy
	case score >= 0.6:
		return RatingBuy
	case score >= 0.4:
		return RatingHold
	case score >= 0.2:
		return RatingSell
	default:
		return RatingStrongSell
	}
}
