package technicals

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"stocklab/internal/domain"
)

// Input carries everything Analyze needs for one symbol. Market and
// Benchmark are shared across a run: the caller computes the market
// context once and hands every ticker the same benchmark history.
type Input struct {
	Symbol       string
	History      domain.History
	Benchmark    domain.History
	Market       *MarketContext
	RiskFreeRate float64
}

type Engine interface {
	Analyze(in Input) (*Report, error)
}

type engineHandler struct{}

func NewEngine() Engine {
	return engineHandler{}
}

// Analyze runs the five section analyses over the price history and
// aggregates them into a 0-15 score with a verdict. At least two bars
// are required; anything less cannot support the momentum checks.
func (h engineHandler) Analyze(in Input) (*Report, error) {
	if len(in.History) < 2 {
		return nil, domain.MissingDataError{
			Err: fmt.Errorf("technical analysis needs at least 2 bars for %s, got %d", in.Symbol, len(in.History)),
		}
	}

	closes := in.History.Closes()
	highs := in.History.Highs()
	lows := in.History.Lows()
	volumes := in.History.Volumes()
	price := closes[len(closes)-1]

	sma20 := Sma(closes, 20)
	sma50 := Sma(closes, 50)
	sma200 := Sma(closes, 200)
	ema20 := Ema(closes, 20)
	ema50 := Ema(closes, 50)
	macdLine, signalLine, histogram := Macd(closes, 12, 26, 9)
	rsi := Rsi(closes, 14)
	vwma := Vwma(closes, volumes, 20)
	avgVolume := Sma(volumes, 20)

	report := &Report{
		Symbol: in.Symbol,
		Price:  price,

		MovingAverages:    analyzeMovingAverages(price, last(sma20), last(sma50), last(sma200), last(ema20), last(ema50)),
		MACD:              analyzeMACD(macdLine, signalLine, histogram),
		RSI:               analyzeRSI(last(rsi)),
		Volume:            analyzeVolume(price, closes, volumes, vwma, last(avgVolume)),
		SupportResistance: analyzeSupportResistance(price, highs, lows),

		Market:   in.Market,
		MaxScore: 15,
	}

	report.TotalScore = report.MovingAverages.Score +
		report.MACD.Score +
		report.RSI.Score +
		report.Volume.Score +
		report.SupportResistance.Score
	report.ScorePct = float64(report.TotalScore) / float64(report.MaxScore) * 100

	switch {
	case report.ScorePct >= 67:
		report.Signal, report.Action = SignalStrongBuy, "Enter position"
	case report.ScorePct >= 50:
		report.Signal, report.Action = SignalWait, "Need more confirmation"
	default:
		report.Signal, report.Action = SignalAvoid, "Poor setup"
	}

	report.RelativeStrength = CompareRelativeStrength(in.History, in.Benchmark)
	if perf, err := HistoricalPerformance(in.History, in.RiskFreeRate); err == nil {
		report.Performance = perf
	}

	return report, nil
}

func analyzeMovingAverages(price, sma20, sma50, sma200, ema20, ema50 float64) MovingAverageSection {
	out := MovingAverageSection{
		SMA20:  sma20,
		SMA50:  sma50,
		SMA200: sma200,
		EMA20:  ema20,
		EMA50:  ema50,

		AboveSMA50:  price > sma50,
		AboveSMA200: price > sma200,
		GoldenCross: sma50 > sma200,

		DistFromSMA20Pct:  (price - sma20) / sma20 * 100,
		DistFromSMA50Pct:  (price - sma50) / sma50 * 100,
		DistFromSMA200Pct: (price - sma200) / sma200 * 100,

		MaxScore: 3,
	}
	out.Score = boolCount(out.AboveSMA50, out.AboveSMA200, out.GoldenCross)

	switch {
	case out.Score == 3 && out.DistFromSMA20Pct >= -2 && out.DistFromSMA20Pct <= 5:
		out.Signal = "BUY - Ideal pullback entry"
	case out.Score == 3 && out.DistFromSMA20Pct > 5:
		out.Signal = "WAIT - Extended above MA"
	case out.Score == 3:
		out.Signal = "STRONG BUY - At MA support"
	case out.Score == 2:
		out.Signal = "WAIT - Partial trend"
	default:
		out.Signal = "AVOID - No trend alignment"
	}
	return out
}

func analyzeMACD(line, signalLine, histogram []float64) MACDSection {
	n := len(line)
	out := MACDSection{
		Line:       line[n-1],
		SignalLine: signalLine[n-1],
		Histogram:  histogram[n-1],

		BullishCrossover:  line[n-1] > signalLine[n-1],
		AboveZero:         line[n-1] > 0,
		HistogramPositive: histogram[n-1] > 0,
		HistogramGrowing:  histogram[n-1] > histogram[n-2],

		MaxScore: 3,
	}

	// Walk back up to ten bars for the most recent bullish cross.
	for i := 1; i <= 10 && i <= n-1; i++ {
		cur := n - i
		prev := cur - 1
		if line[cur] > signalLine[cur] && line[prev] <= signalLine[prev] {
			out.RecentCrossover = true
			out.CrossoverDaysAgo = i
			break
		}
	}

	out.Score = boolCount(out.BullishCrossover, out.AboveZero, out.HistogramPositive)

	switch {
	case out.BullishCrossover && out.RecentCrossover && out.CrossoverDaysAgo <= 5:
		out.Signal = "STRONG BUY - Fresh bullish crossover"
	case out.BullishCrossover && out.HistogramGrowing:
		out.Signal = "BUY - Momentum building"
	case out.BullishCrossover:
		out.Signal = "HOLD - Momentum fading"
	default:
		out.Signal = "AVOID - Bearish momentum"
	}
	return out
}

func analyzeRSI(value float64) RSISection {
	out := RSISection{
		Value: value,

		NotOverbought: value < 70,
		BullishZone:   value > 50,
		Healthy:       value > 40 && value < 70,

		MaxScore: 3,
	}
	out.Score = boolCount(out.NotOverbought, out.BullishZone, out.Healthy)

	switch {
	case value >= 45 && value <= 60:
		out.Signal = "BUY - Ideal entry zone"
	case value >= 40 && value <= 70:
		out.Signal = "BUY - Acceptable zone"
	case value > 70:
		out.Signal = "WAIT - Overbought"
	case value < 40:
		out.Signal = "CAUTION - Oversold/weak"
	default:
		out.Signal = "NEUTRAL"
	}

	switch {
	case value > 70:
		out.Zone = "Overbought"
	case value < 30:
		out.Zone = "Oversold"
	case value > 50:
		out.Zone = "Bullish"
	default:
		out.Zone = "Bearish"
	}
	return out
}

func analyzeVolume(price float64, closes, volumes, vwma []float64, averageVolume float64) VolumeSection {
	n := len(closes)
	out := VolumeSection{
		VWMA:          last(vwma),
		CurrentVolume: volumes[n-1],
		AverageVolume: averageVolume,
		MaxScore:      3,
	}
	out.AboveVWMA = price > out.VWMA

	// Rising means the last five VWMA values never step down. NaN in
	// the tail fails the comparison and reads as not rising.
	if len(vwma) >= 5 {
		out.VWMARising = true
		tail := vwma[len(vwma)-5:]
		for i := 0; i+1 < len(tail); i++ {
			if !(tail[i] <= tail[i+1]) {
				out.VWMARising = false
				break
			}
		}
	}

	// Compare average volume on up days vs down days across the last
	// ten bars. Changes are close-to-close within that tail, so the
	// tail's first bar contributes no change.
	var upVolumes, downVolumes []float64
	begin := n - 9
	if begin < 1 {
		begin = 1
	}
	for i := begin; i < n; i++ {
		change := closes[i]/closes[i-1] - 1
		if change > 0 {
			upVolumes = append(upVolumes, volumes[i])
		} else if change < 0 {
			downVolumes = append(downVolumes, volumes[i])
		}
	}
	if len(upVolumes) > 0 {
		out.UpDayVolume, _ = stats.Mean(upVolumes)
	}
	if len(downVolumes) > 0 {
		out.DownDayVolume, _ = stats.Mean(downVolumes)
	}
	out.BullishVolume = out.UpDayVolume > out.DownDayVolume

	if out.AverageVolume > 0 {
		out.VolumeRatio = out.CurrentVolume / out.AverageVolume
	}

	out.Score = boolCount(out.AboveVWMA, out.VWMARising, out.BullishVolume)

	switch {
	case out.Score == 3:
		out.Signal = "STRONG BUY - Institutional accumulation"
	case out.AboveVWMA && out.BullishVolume:
		out.Signal = "BUY - Good volume support"
	case out.AboveVWMA:
		out.Signal = "HOLD - Watch volume"
	default:
		out.Signal = "AVOID - Weak volume support"
	}
	return out
}

func analyzeSupportResistance(price float64, highs, lows []float64) SupportResistanceSection {
	resistanceLevels, supportLevels := PivotLevels(highs, lows, 5)

	var above, below []float64
	for _, level := range resistanceLevels {
		if level > price {
			above = append(above, level)
		}
	}
	for _, level := range supportLevels {
		if level < price {
			below = append(below, level)
		}
	}

	nearestResistance := last(RollingMax(highs, 60))
	if len(above) > 0 {
		nearestResistance = above[0]
		for _, level := range above[1:] {
			if level < nearestResistance {
				nearestResistance = level
			}
		}
	}
	nearestSupport := last(RollingMin(lows, 60))
	if len(below) > 0 {
		nearestSupport = below[0]
		for _, level := range below[1:] {
			if level > nearestSupport {
				nearestSupport = level
			}
		}
	}

	out := SupportResistanceSection{
		NearestSupport:    nearestSupport,
		NearestResistance: nearestResistance,

		DistToSupportPct:    (price - nearestSupport) / price * 100,
		DistToResistancePct: (nearestResistance - price) / price * 100,

		SupportLevels:    lastN(supportLevels, 3),
		ResistanceLevels: lastN(resistanceLevels, 3),

		MaxScore: 3,
	}
	out.AtSupport = out.DistToSupportPct < 2
	out.NearResistance = out.DistToResistancePct < 2

	switch {
	case out.AtSupport && out.DistToResistancePct > 5:
		out.Signal = "STRONG BUY - At support with room to resistance"
	case out.AtSupport:
		out.Signal = "BUY - At support but near resistance"
	case out.NearResistance:
		out.Signal = "WAIT - Near resistance, likely pullback"
	case out.DistToSupportPct > 3 && out.DistToSupportPct < 8 && out.DistToResistancePct > 5:
		out.Signal = "BUY - Good risk/reward setup"
	default:
		out.Signal = "NEUTRAL - No clear level nearby"
	}

	if out.AtSupport {
		out.Score += 2
	} else if out.DistToSupportPct < 5 {
		out.Score++
	}
	if out.DistToResistancePct > 5 {
		out.Score++
	}
	return out
}

func boolCount(conditions ...bool) int {
	n := 0
	for _, c := range conditions {
		if c {
			n++
		}
	}
	return n
}
