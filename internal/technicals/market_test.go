package technicals

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"stocklab/internal/domain"
)

func linearCloses(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

func Test_AnalyzeMarket(t *testing.T) {
	t.Run("bull on all checks", func(t *testing.T) {
		spy := testHistory(linearCloses(260, 100, 1)...)
		lowVIX := true

		got, err := AnalyzeMarket("SPY", spy, testHistory(15))
		require.NoError(t, err)

		want := &MarketContext{
			Benchmark: "SPY",
			Price:     359,
			SMA50:     334.5,
			SMA200:    259.5,

			AboveSMA50:  true,
			AboveSMA200: true,
			GoldenCross: true,

			VIX:    15,
			LowVIX: &lowVIX,

			Score:          4,
			TotalChecks:    4,
			State:          MarketBull,
			Recommendation: "Aggressive - Take 5-7 positions",
		}
		require.Equal(t, "", cmp.Diff(want, got, approx...))
	})

	t.Run("bear without vix", func(t *testing.T) {
		spy := testHistory(linearCloses(260, 359, -1)...)

		got, err := AnalyzeMarket("SPY", spy, nil)
		require.NoError(t, err)

		want := &MarketContext{
			Benchmark: "SPY",
			Price:     100,
			SMA50:     124.5,
			SMA200:    199.5,

			VIX: math.NaN(),

			Score:          0,
			TotalChecks:    3,
			State:          MarketBear,
			Recommendation: "Defensive - Maximum 2 positions, mostly cash",
		}
		require.Equal(t, "", cmp.Diff(want, got, approx...))
	})

	t.Run("short frame with calm vix lands neutral", func(t *testing.T) {
		spy := testHistory(linearCloses(60, 100, 1)...)

		got, err := AnalyzeMarket("SPY", spy, testHistory(15))
		require.NoError(t, err)

		require.Equal(t, 2, got.Score)
		require.Equal(t, 4, got.TotalChecks)
		require.Equal(t, MarketNeutral, got.State)
		require.Equal(t, "Selective - Take 3-5 positions", got.Recommendation)
	})

	t.Run("elevated vix drags the same frame to bear", func(t *testing.T) {
		spy := testHistory(linearCloses(60, 100, 1)...)

		got, err := AnalyzeMarket("SPY", spy, testHistory(35))
		require.NoError(t, err)

		require.Equal(t, 1, got.Score)
		require.Equal(t, 4, got.TotalChecks)
		require.Equal(t, MarketBear, got.State)
		require.NotNil(t, got.LowVIX)
		require.False(t, *got.LowVIX)
	})

	t.Run("zero vix reading is dropped", func(t *testing.T) {
		spy := testHistory(linearCloses(260, 100, 1)...)

		got, err := AnalyzeMarket("SPY", spy, testHistory(0))
		require.NoError(t, err)

		require.True(t, math.IsNaN(got.VIX))
		require.Nil(t, got.LowVIX)
		require.Equal(t, 3, got.Score)
		require.Equal(t, 3, got.TotalChecks)
		require.Equal(t, MarketBull, got.State)
	})

	t.Run("empty benchmark errors", func(t *testing.T) {
		_, err := AnalyzeMarket("SPY", nil, nil)
		require.Error(t, err)
		var missing domain.MissingDataError
		require.ErrorAs(t, err, &missing)
	})
}

func Test_CompareRelativeStrength(t *testing.T) {
	tests := []struct {
		name         string
		stock, bench domain.History
		want         *RelativeStrength
	}{
		{
			name:  "strong outperformance",
			stock: testHistory(100, 125),
			bench: testHistory(100, 110),
			want: &RelativeStrength{
				StockReturnPct:     25,
				BenchmarkReturnPct: 10,
				OutperformancePct:  15,
				Outperforming:      true,
				Signal:             "STRONG - Significant outperformance",
			},
		},
		{
			name:  "modest outperformance",
			stock: testHistory(100, 118),
			bench: testHistory(100, 110),
			want: &RelativeStrength{
				StockReturnPct:     18,
				BenchmarkReturnPct: 10,
				OutperformancePct:  8,
				Outperforming:      true,
				Signal:             "GOOD - Outperforming market",
			},
		},
		{
			name:  "slight lag",
			stock: testHistory(100, 105),
			bench: testHistory(100, 110),
			want: &RelativeStrength{
				StockReturnPct:     5,
				BenchmarkReturnPct: 10,
				OutperformancePct:  -5,
				Signal:             "WEAK - Slight underperformance",
			},
		},
		{
			name:  "deep underperformance",
			stock: testHistory(100, 80),
			bench: testHistory(100, 110),
			want: &RelativeStrength{
				StockReturnPct:     -20,
				BenchmarkReturnPct: 10,
				OutperformancePct:  -30,
				Signal:             "AVOID - Significant underperformance",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CompareRelativeStrength(tc.stock, tc.bench)
			require.Equal(t, "", cmp.Diff(tc.want, got, approx...))
		})
	}

	t.Run("nil without data", func(t *testing.T) {
		require.Nil(t, CompareRelativeStrength(nil, testHistory(100)))
		require.Nil(t, CompareRelativeStrength(testHistory(100), nil))
	})
}
