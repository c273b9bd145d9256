package technicals

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func Test_HistoricalPerformance(t *testing.T) {
	t.Run("computes risk and return stats", func(t *testing.T) {
		// Daily returns +100%, -50%, +100%: mean 0.5, sample stdev
		// sqrt(0.75), so the annualized figures fall out exactly.
		got, err := HistoricalPerformance(testHistory(100, 200, 100, 200), 0.05)
		require.NoError(t, err)

		want := &Performance{
			AnnualizedReturnPct:     12600,
			AnnualizedVolatilityPct: 1374.772708486752,
			SharpeRatio:             (12600 - 5) / 1374.772708486752,
			MaxDrawdownPct:          -50,
			High52Week:              200,
			Low52Week:               100,
			RangePosition52WeekPct:  100,
		}
		require.Equal(t, "", cmp.Diff(want, got, approx...))
	})

	t.Run("flat series has no volatility", func(t *testing.T) {
		got, err := HistoricalPerformance(testHistory(100, 100, 100), 0.05)
		require.NoError(t, err)

		want := &Performance{
			High52Week: 100,
			Low52Week:  100,
		}
		require.Equal(t, "", cmp.Diff(want, got, approx...))
	})

	t.Run("needs two bars", func(t *testing.T) {
		_, err := HistoricalPerformance(testHistory(100), 0.05)
		require.Error(t, err)

		_, err = HistoricalPerformance(nil, 0.05)
		require.Error(t, err)
	})
}
