package technicals

import "sort"

// PivotLevels scans for local extrema: bar i is a pivot high when its
// high is the maximum of the window-wide neighborhood i-window..i+window,
// and a pivot low symmetrically. Histories shorter than 2*window yield
// no levels. Levels are clustered so that near-duplicates (within 1% of
// each other) collapse to one, and only the five highest survive.
func PivotLevels(highs, lows []float64, window int) (resistance, support []float64) {
	if len(highs) < window*2 || len(highs) != len(lows) {
		return nil, nil
	}
	for i := window; i <= len(highs)-window-1; i++ {
		if isWindowMax(highs, i, window) {
			resistance = append(resistance, highs[i])
		}
		if isWindowMin(lows, i, window) {
			support = append(support, lows[i])
		}
	}
	return clusterLevels(resistance), clusterLevels(support)
}

func isWindowMax(values []float64, i, window int) bool {
	v := values[i]
	for j := i - window; j <= i+window; j++ {
		if values[j] > v {
			return false
		}
	}
	return true
}

func isWindowMin(values []float64, i, window int) bool {
	v := values[i]
	for j := i - window; j <= i+window; j++ {
		if values[j] < v {
			return false
		}
	}
	return true
}

// clusterLevels sorts ascending and drops any level within 1% of the
// previously kept one, then keeps the last five.
func clusterLevels(levels []float64) []float64 {
	if len(levels) == 0 {
		return nil
	}
	sorted := append([]float64(nil), levels...)
	sort.Float64s(sorted)
	clustered := []float64{sorted[0]}
	for _, level := range sorted[1:] {
		if level/clustered[len(clustered)-1] > 1.01 {
			clustered = append(clustered, level)
		}
	}
	if len(clustered) > 5 {
		clustered = clustered[len(clustered)-5:]
	}
	return clustered
}

// lastN returns up to the final n elements of a series.
func lastN(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}
