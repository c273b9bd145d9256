package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stocklab/internal/app"

	"github.com/stretchr/testify/require"
)

func Test_SummaryRows(t *testing.T) {
	full := fullResult()
	partial := &app.TickerResult{Symbol: "PART"}
	failed := &app.TickerResult{Symbol: "FAIL", Err: fmt.Errorf("no quote")}

	rows := SummaryRows([]*app.TickerResult{full, partial, failed})
	require.Len(t, rows, 2)

	require.Equal(t, "ACME", rows[0].Ticker)
	require.Equal(t, "Acme Industries Inc.", rows[0].CompanyName)
	require.Equal(t, Float(100), rows[0].CurrentPrice)
	require.Equal(t, int64(5500000), rows[0].MarketCap)
	require.Equal(t, Float(40), rows[0].PERatio)
	require.Equal(t, Float(70), rows[0].FundamentalScore)
	require.Equal(t, "STRONG BUY", rows[0].Recommendation)

	require.Equal(t, "PART", rows[1].Ticker)
	require.Empty(t, rows[1].CompanyName)
	require.True(t, math.IsNaN(float64(rows[1].PERatio)))
	require.True(t, math.IsNaN(float64(rows[1].FundamentalScore)))
}

func Test_WriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.csv")
	partial := &app.TickerResult{Symbol: "PART"}

	err := WriteCSV(path, []*app.TickerResult{fullResult(), partial})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)

	require.Equal(t,
		"ticker,company_name,current_price,market_cap,pe_ratio,roe,roce,npm,"+
			"de_ratio,interest_coverage,earnings_growth_5yr,sales_growth_5yr,"+
			"fundamental_score,technical_score,combined_score,recommendation,action",
		lines[0])

	require.True(t, strings.HasPrefix(lines[1], "ACME,Acme Industries Inc.,100,5500000,40,"))
	require.Contains(t, lines[1], "STRONG BUY")

	// A result with no sections keeps its ticker and leaves the metric
	// cells empty rather than writing NaN.
	require.True(t, strings.HasPrefix(lines[2], "PART,,,0,,"))
	require.NotContains(t, lines[2], "NaN")
}

func Test_Float_MarshalCSV(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		got, err := Float(v).MarshalCSV()
		require.NoError(t, err)
		require.Equal(t, "", got)
	}

	got, err := Float(12.5).MarshalCSV()
	require.NoError(t, err)
	require.Equal(t, "12.5", got)
}
