package technicals

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var approx = []cmp.Option{
	cmpopts.EquateApprox(1e-12, 1e-9),
	cmpopts.EquateNaNs(),
}

func Test_Sma(t *testing.T) {
	t.Run("fills after the window", func(t *testing.T) {
		got := Sma([]float64{1, 2, 3, 4, 5}, 3)
		want := []float64{math.NaN(), math.NaN(), 2, 3, 4}
		require.Equal(t, "", cmp.Diff(want, got, approx...))
	})

	t.Run("window longer than series stays NaN", func(t *testing.T) {
		got := Sma([]float64{1, 2}, 3)
		want := []float64{math.NaN(), math.NaN()}
		require.Equal(t, "", cmp.Diff(want, got, approx...))
	})

	t.Run("NaN poisons its window", func(t *testing.T) {
		got := Sma([]float64{1, math.NaN(), 3, 4, 5}, 2)
		want := []float64{math.NaN(), math.NaN(), math.NaN(), 3.5, 4.5}
		require.Equal(t, "", cmp.Diff(want, got, approx...))
	})
}

func Test_Ema(t *testing.T) {
	t.Run("seeds with the first value", func(t *testing.T) {
		got := Ema([]float64{2, 4, 8}, 3)
		want := []float64{2, 3, 5.5}
		require.Equal(t, "", cmp.Diff(want, got, approx...))
	})

	t.Run("empty input", func(t *testing.T) {
		require.Empty(t, Ema(nil, 3))
	})
}

func Test_Macd(t *testing.T) {
	t.Run("line is fast minus slow", func(t *testing.T) {
		line, signal, hist := Macd([]float64{2, 4, 8}, 1, 3, 1)
		require.Equal(t, "", cmp.Diff([]float64{0, 1, 2.5}, line, approx...))
		require.Equal(t, "", cmp.Diff(line, signal, approx...))
		require.Equal(t, "", cmp.Diff([]float64{0, 0, 0}, hist, approx...))
	})

	t.Run("flat series carries no momentum", func(t *testing.T) {
		closes := make([]float64, 40)
		for i := range closes {
			closes[i] = 50
		}
		line, signal, hist := Macd(closes, 12, 26, 9)
		zeros := make([]float64, 40)
		require.Equal(t, "", cmp.Diff(zeros, line, approx...))
		require.Equal(t, "", cmp.Diff(zeros, signal, approx...))
		require.Equal(t, "", cmp.Diff(zeros, hist, approx...))
	})
}

func Test_Rsi(t *testing.T) {
	t.Run("pure gains pin to 100", func(t *testing.T) {
		got := Rsi([]float64{1, 2, 3}, 2)
		want := []float64{math.NaN(), 100, 100}
		require.Equal(t, "", cmp.Diff(want, got, approx...))
	})

	t.Run("pure losses pin to 0", func(t *testing.T) {
		got := Rsi([]float64{3, 2, 1}, 2)
		want := []float64{math.NaN(), 0, 0}
		require.Equal(t, "", cmp.Diff(want, got, approx...))
	})

	t.Run("flat series is undefined", func(t *testing.T) {
		got := Rsi([]float64{5, 5, 5}, 2)
		want := []float64{math.NaN(), math.NaN(), math.NaN()}
		require.Equal(t, "", cmp.Diff(want, got, approx...))
	})

	t.Run("mixed moves", func(t *testing.T) {
		got := Rsi([]float64{10, 11, 10.5, 11.5}, 3)
		want := []float64{math.NaN(), math.NaN(), 66.66666666666667, 80}
		require.Equal(t, "", cmp.Diff(want, got, approx...))
	})
}

func Test_Vwma(t *testing.T) {
	got := Vwma([]float64{10, 20, 30}, []float64{1, 1, 3}, 2)
	want := []float64{math.NaN(), 15, 27.5}
	require.Equal(t, "", cmp.Diff(want, got, approx...))
}

func Test_RollingMax(t *testing.T) {
	got := RollingMax([]float64{3, 1, 4, 1, 5}, 2)
	want := []float64{math.NaN(), 3, 4, 4, 5}
	require.Equal(t, "", cmp.Diff(want, got, approx...))
}

func Test_RollingMin(t *testing.T) {
	got := RollingMin([]float64{3, 1, 4, 1, 5}, 2)
	want := []float64{math.NaN(), 1, 1, 1, 1}
	require.Equal(t, "", cmp.Diff(want, got, approx...))
}

func Test_last(t *testing.T) {
	require.Equal(t, 3.0, last([]float64{1, 2, 3}))
	require.True(t, math.IsNaN(last(nil)))
}
