package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Bar is one day of OHLCV data for a symbol. Close is the raw close,
// AdjClose the split/dividend adjusted close.
type Bar struct {
	Symbol   string
	Date     time.Time
	Open     decimal.Decimal
	High     decimal.Decimal
	Low      decimal.Decimal
	Close    decimal.Decimal
	AdjClose decimal.Decimal
	Volume   int64
}

// History is a date-ascending series of daily bars.
type History []Bar

func (h History) Closes() []float64 {
	out := make([]float64, len(h))
	for i, b := range h {
		out[i] = b.AdjClose.InexactFloat64()
	}
	return out
}

func (h History) Highs() []float64 {
	out := make([]float64, len(h))
	for i, b := range h {
		out[i] = b.High.InexactFloat64()
	}
	return out
}

func (h History) Lows() []float64 {
	out := make([]float64, len(h))
	for i, b := range h {
		out[i] = b.Low.InexactFloat64()
	}
	return out
}

func (h History) Volumes() []float64 {
	out := make([]float64, len(h))
	for i, b := range h {
		out[i] = float64(b.Volume)
	}
	return out
}

// LastClose returns the most recent adjusted close, or NaN when the
// history is empty.
func (h History) LastClose() float64 {
	if len(h) == 0 {
		return math.NaN()
	}
	return h[len(h)-1].AdjClose.InexactFloat64()
}

func (h History) Start() time.Time {
	if len(h) == 0 {
		return time.Time{}
	}
	return h[0].Date
}

func (h History) End() time.Time {
	if len(h) == 0 {
		return time.Time{}
	}
	return h[len(h)-1].Date
}
