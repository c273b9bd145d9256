package yahoo

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stocklab/internal/domain"
	"stocklab/internal/util"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

const statementsFixture = `{
	"timeseries": {
		"result": [
			{
				"meta": {"symbol": ["ACME"], "type": ["annualTotalRevenue"]},
				"timestamp": [1569801600, 1601424000],
				"annualTotalRevenue": [
					{"asOfDate": "2019-09-30", "periodType": "12M", "currencyCode": "USD", "reportedValue": {"raw": 260174000000, "fmt": "260.17B"}},
					{"asOfDate": "2020-09-30", "periodType": "12M", "currencyCode": "USD", "reportedValue": {"raw": 274515000000, "fmt": "274.52B"}}
				]
			},
			{
				"meta": {"symbol": ["ACME"], "type": ["annualNetIncome"]},
				"timestamp": [1601424000],
				"annualNetIncome": [
					null,
					{"asOfDate": "2020-09-30", "periodType": "12M", "currencyCode": "USD", "reportedValue": {"raw": 57411000000, "fmt": "57.41B"}}
				]
			},
			{
				"meta": {"symbol": ["ACME"], "type": ["annualTotalAssets"]},
				"timestamp": [1569801600],
				"annualTotalAssets": [
					{"asOfDate": "2019-09-30", "periodType": "12M", "currencyCode": "USD", "reportedValue": {"raw": 338516000000, "fmt": "338.52B"}}
				]
			},
			{
				"meta": {"symbol": ["ACME"], "type": ["annualOperatingCashFlow"]},
				"timestamp": [1601424000],
				"annualOperatingCashFlow": [
					{"asOfDate": "2020-09-30", "periodType": "12M", "currencyCode": "USD", "reportedValue": {"raw": 80674000000, "fmt": "80.67B"}}
				]
			}
		],
		"error": null
	}
}`

func Test_Statements(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.URL.Path, "/ws/fundamentals-timeseries/v1/finance/timeseries/ACME")
		require.Contains(t, r.URL.RawQuery, "type=annual")
		w.Write([]byte(statementsFixture))
	}))
	defer server.Close()

	client := NewClientWithBaseUrl(server.Client(), server.URL)

	statements, err := client.Statements(context.Background(), "ACME", domain.PeriodAnnual)
	require.NoError(t, err)

	t.Run("income table aligns items on the date union", func(t *testing.T) {
		require.Equal(t, "", cmp.Diff(
			[]time.Time{util.NewDate(2019, 9, 30), util.NewDate(2020, 9, 30)},
			statements.Income.Dates,
		))

		revenue, ok := statements.Income.Series(domain.ItemTotalRevenue)
		require.True(t, ok)
		require.Equal(t, "", cmp.Diff(
			[]float64{260174000000, 274515000000},
			revenue.Values,
			cmpopts.EquateNaNs(),
		))

		netIncome, ok := statements.Income.Series(domain.ItemNetIncome)
		require.True(t, ok)
		require.Equal(t, "", cmp.Diff(
			[]float64{math.NaN(), 57411000000},
			netIncome.Values,
			cmpopts.EquateNaNs(),
		))
	})

	t.Run("unreported item stays out of the table", func(t *testing.T) {
		_, ok := statements.Income.Series(domain.ItemEBIT)
		require.False(t, ok)

		// fallback chain lands on the reported name
		series, ok := statements.Income.Series(domain.ItemEBIT, domain.ItemTotalRevenue)
		require.True(t, ok)
		require.Equal(t, 274515000000.0, series.Latest())
	})

	t.Run("balance and cash flow tables built from their own items", func(t *testing.T) {
		assets, ok := statements.Balance.Series(domain.ItemTotalAssets)
		require.True(t, ok)
		require.Equal(t, 338516000000.0, assets.Latest())

		cfo, ok := statements.CashFlow.Series(domain.ItemOperatingCashFlow)
		require.True(t, ok)
		require.Equal(t, 80674000000.0, cfo.Latest())
	})
}

func Test_Statements_empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"timeseries": {"result": [], "error": null}}`))
	}))
	defer server.Close()

	client := NewClientWithBaseUrl(server.Client(), server.URL)

	_, err := client.Statements(context.Background(), "NOPE", domain.PeriodAnnual)
	require.Error(t, err)
	require.ErrorAs(t, err, &domain.MissingDataError{})
}

const profileFixture = `{
	"quoteSummary": {
		"result": [
			{
				"assetProfile": {
					"sector": "Technology",
					"industry": "Consumer Electronics",
					"website": "https://www.acme.example",
					"longBusinessSummary": "Acme designs widgets."
				},
				"defaultKeyStatistics": {
					"beta": {"raw": 1.28, "fmt": "1.28"}
				},
				"financialData": {
					"currentRatio": {"raw": 0.94, "fmt": "0.94"},
					"targetMeanPrice": {"raw": 210.5, "fmt": "210.50"},
					"targetHighPrice": {"raw": 250, "fmt": "250.00"},
					"recommendationKey": "buy",
					"numberOfAnalystOpinions": {"raw": 39, "fmt": "39"}
				},
				"majorHoldersBreakdown": {
					"insidersPercentHeld": {"raw": 0.00073, "fmt": "0.07%"},
					"institutionsPercentHeld": {"raw": 0.615, "fmt": "61.50%"}
				}
			}
		],
		"error": null
	}
}`

func Test_Profile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.URL.Path, "/v10/finance/quoteSummary/ACME")
		w.Write([]byte(profileFixture))
	}))
	defer server.Close()

	client := NewClientWithBaseUrl(server.Client(), server.URL)

	profile, err := client.Profile(context.Background(), "ACME")
	require.NoError(t, err)

	expected := &domain.Profile{
		Symbol:                  "ACME",
		Sector:                  "Technology",
		Industry:                "Consumer Electronics",
		Website:                 "https://www.acme.example",
		Summary:                 "Acme designs widgets.",
		Beta:                    1.28,
		CurrentRatio:            0.94,
		TargetMeanPrice:         210.5,
		TargetHighPrice:         250,
		TargetLowPrice:          math.NaN(),
		RecommendationKey:       "buy",
		NumberOfAnalysts:        39,
		InsidersPercentHeld:     0.00073,
		InstitutionsPercentHeld: 0.615,
	}
	require.Equal(t, "", cmp.Diff(expected, profile, cmpopts.EquateNaNs()))
}

func Test_buildStatement(t *testing.T) {
	byItem := map[string]map[string]float64{
		domain.ItemTotalAssets: {
			"2021-12-31": 100,
			"2022-12-31": 110,
		},
		domain.ItemTotalDebt: {
			"2022-12-31": 40,
		},
	}

	statement, err := buildStatement([]string{domain.ItemTotalAssets, domain.ItemTotalDebt, domain.ItemNetPPE}, byItem)
	require.NoError(t, err)

	require.Equal(t, "", cmp.Diff(domain.Statement{
		Dates: []time.Time{util.NewDate(2021, 12, 31), util.NewDate(2022, 12, 31)},
		Items: map[string][]float64{
			domain.ItemTotalAssets: {100, 110},
			domain.ItemTotalDebt:   {math.NaN(), 40},
		},
	}, statement, cmpopts.EquateNaNs()))
}
