package technicals

import "math"

// Indicator series are aligned to the input bars. Positions where a
// rolling window has not filled yet hold NaN, matching how the values
// would come off a dataframe.

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// Sma is a simple rolling mean. A NaN inside the window keeps the
// output NaN for that position.
func Sma(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		for _, v := range values[i-window+1 : i+1] {
			sum += v
		}
		out[i] = sum / float64(window)
	}
	return out
}

// Ema is an exponential moving average seeded with the first value,
// multiplier 2/(span+1).
func Ema(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2 / (float64(span) + 1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// Macd returns the MACD line (fast EMA minus slow EMA), the signal
// line (EMA of the MACD line) and the histogram (line minus signal).
func Macd(closes []float64, fast, slow, signal int) (line, signalLine, histogram []float64) {
	emaFast := Ema(closes, fast)
	emaSlow := Ema(closes, slow)
	line = make([]float64, len(closes))
	for i := range line {
		line[i] = emaFast[i] - emaSlow[i]
	}
	signalLine = Ema(line, signal)
	histogram = make([]float64, len(closes))
	for i := range histogram {
		histogram[i] = line[i] - signalLine[i]
	}
	return line, signalLine, histogram
}

// Rsi computes the relative strength index from simple rolling means
// of gains and losses. The first delta is treated as zero gain and
// zero loss, so the first defined value sits at index period-1.
// A windowed loss of zero with positive gains yields 100.
func Rsi(closes []float64, period int) []float64 {
	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else if delta < 0 {
			losses[i] = -delta
		}
	}
	avgGain := Sma(gains, period)
	avgLoss := Sma(losses, period)
	out := make([]float64, len(closes))
	for i := range out {
		rs := avgGain[i] / avgLoss[i]
		out[i] = 100 - 100/(1+rs)
	}
	return out
}

// Vwma is the volume weighted moving average over the window.
func Vwma(closes, volumes []float64, window int) []float64 {
	out := nanSlice(len(closes))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(closes); i++ {
		priceVolume, totalVolume := 0.0, 0.0
		for j := i - window + 1; j <= i; j++ {
			priceVolume += closes[j] * volumes[j]
			totalVolume += volumes[j]
		}
		out[i] = priceVolume / totalVolume
	}
	return out
}

// RollingMax returns the rolling maximum over the window, NaN until
// the window fills.
func RollingMax(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		best := values[i-window+1]
		for _, v := range values[i-window+2 : i+1] {
			if v > best {
				best = v
			}
		}
		out[i] = best
	}
	return out
}

// RollingMin returns the rolling minimum over the window, NaN until
// the window fills.
func RollingMin(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		best := values[i-window+1]
		for _, v := range values[i-window+2 : i+1] {
			if v < best {
				best = v
			}
		}
		out[i] = best
	}
	return out
}

// last returns the final element of a series, NaN when empty.
func last(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return values[len(values)-1]
}
