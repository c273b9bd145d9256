package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"stocklab/internal/config"
	"stocklab/internal/domain"
	"stocklab/internal/scoring"
	"stocklab/internal/technicals"
	"stocklab/internal/util"
	mock_yahoo "stocklab/pkg/yahoo/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testHistory(closes ...float64) domain.History {
	out := make(domain.History, len(closes))
	day := util.NewDate(2025, 1, 2)
	for i, c := range closes {
		price := decimal.NewFromFloat(c)
		out[i] = domain.Bar{
			Date:     day,
			Open:     price,
			High:     price,
			Low:      price,
			Close:    price,
			AdjClose: price,
			Volume:   1000,
		}
		day = day.AddDate(0, 0, 1)
	}
	return out
}

// upTrend is a 70 day climb that lands on a known technical score.
func upTrend() domain.History {
	closes := make([]float64, 70)
	for i := range closes {
		closes[i] = float64(100 + i)
	}
	return testHistory(closes...)
}

// bullMarket is a year of steadily rising benchmark closes.
func bullMarket() domain.History {
	closes := make([]float64, 260)
	for i := range closes {
		closes[i] = float64(100 + i)
	}
	return testHistory(closes...)
}

func testStatements() *domain.Statements {
	dates := []time.Time{
		util.NewDate(2021, 9, 30),
		util.NewDate(2022, 9, 30),
		util.NewDate(2023, 9, 30),
	}
	return &domain.Statements{
		Symbol: "ACME",
		Period: domain.PeriodAnnual,
		Income: domain.Statement{
			Dates: dates,
			Items: map[string][]float64{
				domain.ItemTotalRevenue:    {800, 1000, 1250},
				domain.ItemEBIT:            {160, 200, 250},
				domain.ItemOperatingIncome: {150, 180, 240},
				domain.ItemInterestExpense: {10, 20, 30},
				domain.ItemPretaxIncome:    {140, 170, 200},
				domain.ItemTaxProvision:    {35, 42, 50},
				domain.ItemNetIncome:       {80, 100, 125},
				domain.ItemBasicEPS:        {0.8, 1.0, 1.25},
			},
		},
		Balance: domain.Statement{
			Dates: dates,
			Items: map[string][]float64{
				domain.ItemTotalAssets:            {1600, 2000, 2500},
				domain.ItemCurrentAssets:          {500, 600, 700},
				domain.ItemCurrentLiabilities:     {400, 400, 500},
				domain.ItemTotalLiabilities:       {1100, 1200, 1500},
				domain.ItemStockholdersEquity:     {500, 800, 1000},
				domain.ItemTotalDebt:              {600, 480, 400},
				domain.ItemNetPPE:                 {400, 500, 600},
				domain.ItemConstructionInProgress: {50, 50, 100},
				domain.ItemCashAndCashEquivalents: {100, 150, 200},
				domain.ItemWorkingCapital:         {100, 200, 200},
			},
		},
		CashFlow: domain.Statement{
			Dates: dates,
			Items: map[string][]float64{
				domain.ItemOperatingCashFlow:  {150, 200, 250},
				domain.ItemCapitalExpenditure: {-90, -110, -130},
				domain.ItemCashDividendsPaid:  {-20, -25, -25},
				domain.ItemDepreciationAmort:  {40, 50, 60},
			},
		},
	}
}

func testQuote() *domain.Quote {
	return &domain.Quote{
		Symbol:            "ACME",
		LongName:          "Acme Industries Inc.",
		Price:             50,
		MarketCap:         5500,
		SharesOutstanding: 100,
		TrailingPE:        40,
		PriceToBook:       2.5,
		EpsTrailing:       1.25,
		BookValue:         10,
	}
}

func testProfile() *domain.Profile {
	return &domain.Profile{
		Symbol: "ACME",
		Sector: "Industrials",
		Beta:   1.2,
	}
}

func newService(t *testing.T) (*mock_yahoo.MockClient, AnalysisService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	provider := mock_yahoo.NewMockClient(ctrl)
	return provider, NewAnalysisService(provider, config.Default())
}

func Test_AnalyzeTicker(t *testing.T) {
	ctx := context.Background()

	t.Run("full pipeline", func(t *testing.T) {
		provider, service := newService(t)

		provider.EXPECT().
			DailyHistory(gomock.Any(), "SPY", gomock.Any(), gomock.Any()).
			Return(bullMarket(), nil)
		provider.EXPECT().
			DailyHistory(gomock.Any(), "^VIX", gomock.Any(), gomock.Any()).
			Return(testHistory(16, 15), nil)
		provider.EXPECT().
			DailyHistory(gomock.Any(), "SPY", gomock.Any(), gomock.Any()).
			Return(testHistory(100, 110), nil)

		provider.EXPECT().Quote(gomock.Any(), "ACME").Return(testQuote(), nil)
		provider.EXPECT().
			DailyHistory(gomock.Any(), "ACME", gomock.Any(), gomock.Any()).
			Return(upTrend(), nil)
		provider.EXPECT().
			Statements(gomock.Any(), "ACME", domain.PeriodAnnual).
			Return(testStatements(), nil)
		provider.EXPECT().Profile(gomock.Any(), "ACME").Return(testProfile(), nil)

		got := service.AnalyzeTicker(ctx, "ACME")

		require.NoError(t, got.Err)
		require.NotNil(t, got.Quote)
		require.NotNil(t, got.Statements)
		require.NotNil(t, got.Profile)
		require.NotNil(t, got.Fundamentals)
		require.NotNil(t, got.Technicals)
		require.NotNil(t, got.Valuation)
		require.NotNil(t, got.Scorecard)

		require.NotNil(t, got.Market)
		require.Equal(t, technicals.MarketBull, got.Market.State)
		require.Same(t, got.Market, got.Technicals.Market)

		require.InDelta(t, 8.0/15*100, got.Technicals.ScorePct, 1e-12)
		require.Equal(t, 70.0, got.Scorecard.FundamentalScore)
		require.Equal(t, scoring.RecBuyWithCaution, got.Scorecard.Recommendation)
		require.InDelta(t, (70+8.0/15*100)/2, got.CombinedScore(), 1e-12)

		require.NotNil(t, got.Technicals.RelativeStrength)
		require.InDelta(t, 59, got.Technicals.RelativeStrength.OutperformancePct, 1e-9)
	})

	t.Run("quote failure is the hard failure", func(t *testing.T) {
		provider, service := newService(t)

		provider.EXPECT().
			DailyHistory(gomock.Any(), "SPY", gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("rate limited")).
			Times(2)
		provider.EXPECT().
			Quote(gomock.Any(), "ACME").
			Return(nil, fmt.Errorf("rate limited"))

		got := service.AnalyzeTicker(ctx, "ACME")

		require.Error(t, got.Err)
		require.ErrorContains(t, got.Err, "ACME")
		require.Nil(t, got.Quote)
		require.Nil(t, got.Fundamentals)
		require.Nil(t, got.Technicals)
		require.Nil(t, got.Scorecard)
	})

	t.Run("missing statements leave technicals standing", func(t *testing.T) {
		provider, service := newService(t)

		provider.EXPECT().
			DailyHistory(gomock.Any(), "SPY", gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("rate limited")).
			Times(2)
		provider.EXPECT().Quote(gomock.Any(), "ACME").Return(testQuote(), nil)
		provider.EXPECT().
			DailyHistory(gomock.Any(), "ACME", gomock.Any(), gomock.Any()).
			Return(upTrend(), nil)
		provider.EXPECT().
			Statements(gomock.Any(), "ACME", domain.PeriodAnnual).
			Return(nil, fmt.Errorf("not found"))
		provider.EXPECT().Profile(gomock.Any(), "ACME").Return(testProfile(), nil)

		got := service.AnalyzeTicker(ctx, "ACME")

		require.NoError(t, got.Err)
		require.Nil(t, got.Fundamentals)
		require.Nil(t, got.Valuation)
		require.Nil(t, got.Scorecard)
		require.NotNil(t, got.Technicals)
		require.Nil(t, got.Technicals.Market)
		require.Nil(t, got.Technicals.RelativeStrength)
	})

	t.Run("missing history leaves fundamentals standing", func(t *testing.T) {
		provider, service := newService(t)

		provider.EXPECT().
			DailyHistory(gomock.Any(), "SPY", gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("rate limited")).
			Times(2)
		provider.EXPECT().Quote(gomock.Any(), "ACME").Return(testQuote(), nil)
		provider.EXPECT().
			DailyHistory(gomock.Any(), "ACME", gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("not found"))
		provider.EXPECT().
			Statements(gomock.Any(), "ACME", domain.PeriodAnnual).
			Return(testStatements(), nil)
		provider.EXPECT().Profile(gomock.Any(), "ACME").Return(testProfile(), nil)

		got := service.AnalyzeTicker(ctx, "ACME")

		require.NoError(t, got.Err)
		require.NotNil(t, got.Fundamentals)
		require.NotNil(t, got.Valuation)
		require.Nil(t, got.Technicals)
		require.Nil(t, got.Scorecard)
	})
}
