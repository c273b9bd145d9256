package fundamentals

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Cagr(t *testing.T) {
	t.Run("doubles over five periods", func(t *testing.T) {
		require.InDelta(t, 14.869835499703503, Cagr(100, 200, 5), 1e-9)
	})

	t.Run("non positive endpoints", func(t *testing.T) {
		require.True(t, math.IsNaN(Cagr(0, 100, 5)))
		require.True(t, math.IsNaN(Cagr(100, -5, 2)))
		require.True(t, math.IsNaN(Cagr(-100, 200, 2)))
	})

	t.Run("no periods", func(t *testing.T) {
		require.True(t, math.IsNaN(Cagr(100, 200, 0)))
	})
}

func Test_MeanOfValid(t *testing.T) {
	t.Run("plain mean", func(t *testing.T) {
		require.InDelta(t, 2, MeanOfValid([]float64{1, 2, 3}, 2), 1e-9)
	})

	t.Run("drops NaN entries", func(t *testing.T) {
		require.InDelta(t, 4, MeanOfValid([]float64{3, math.NaN(), 5}, 2), 1e-9)
	})

	t.Run("sentinel below the minimum count", func(t *testing.T) {
		require.InDelta(t, -1, MeanOfValid([]float64{5, math.NaN()}, 2), 1e-9)
		require.InDelta(t, -1, MeanOfValid(nil, 2), 1e-9)
		require.InDelta(t, -1, MeanOfValid([]float64{math.NaN(), math.NaN()}, 1), 1e-9)
	})

	t.Run("single value when one suffices", func(t *testing.T) {
		require.InDelta(t, 4, MeanOfValid([]float64{4}, 1), 1e-9)
	})

	t.Run("infinities pass through", func(t *testing.T) {
		require.True(t, math.IsInf(MeanOfValid([]float64{math.Inf(1), 5}, 2), 1))
	})
}
