package app

import (
	"context"
	"fmt"
	"testing"

	"stocklab/internal/domain"
	mock_yahoo "stocklab/pkg/yahoo/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_Screen(t *testing.T) {
	ctx := context.Background()

	expectScreenTicker := func(provider *mock_yahoo.MockClient, symbol string, quote *domain.Quote) {
		quote.Symbol = symbol
		provider.EXPECT().Quote(gomock.Any(), symbol).Return(quote, nil)
		provider.EXPECT().
			DailyHistory(gomock.Any(), symbol, gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("not found"))
		statements := testStatements()
		statements.Symbol = symbol
		provider.EXPECT().
			Statements(gomock.Any(), symbol, domain.PeriodAnnual).
			Return(statements, nil)
		provider.EXPECT().
			Profile(gomock.Any(), symbol).
			Return(nil, fmt.Errorf("not found"))
	}

	t.Run("default expression picks the cheap ticker", func(t *testing.T) {
		provider, service := newService(t)

		provider.EXPECT().
			DailyHistory(gomock.Any(), "SPY", gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("rate limited")).
			Times(2)

		cheap := testQuote()
		cheap.Price = 12.5
		cheap.MarketCap = 1250
		cheap.TrailingPE = 10
		cheap.PriceToBook = 1.25
		expectScreenTicker(provider, "CHEAP", cheap)

		expectScreenTicker(provider, "RICH", testQuote())

		got, err := service.Screen(ctx, []string{"CHEAP", "RICH"}, "")
		require.NoError(t, err)

		require.Equal(t, DefaultScreenExpression, got.Expression)
		require.Equal(t, 2, got.Evaluated)
		require.Len(t, got.Matches, 1)
		require.Equal(t, "CHEAP", got.Matches[0].Symbol)
	})

	t.Run("skips tickers without fundamentals", func(t *testing.T) {
		provider, service := newService(t)

		provider.EXPECT().
			DailyHistory(gomock.Any(), "SPY", gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("rate limited")).
			Times(2)
		provider.EXPECT().
			Quote(gomock.Any(), "FAIL").
			Return(nil, fmt.Errorf("rate limited"))

		got, err := service.Screen(ctx, []string{"FAIL"}, "pe < 100")
		require.NoError(t, err)

		require.Equal(t, 0, got.Evaluated)
		require.Empty(t, got.Matches)
	})

	t.Run("rejects a non-boolean expression", func(t *testing.T) {
		provider, service := newService(t)

		provider.EXPECT().
			DailyHistory(gomock.Any(), "SPY", gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("rate limited")).
			Times(2)
		expectScreenTicker(provider, "CHEAP", testQuote())

		got, err := service.Screen(ctx, []string{"CHEAP"}, "pe + 1")
		require.Nil(t, got)
		require.ErrorContains(t, err, "must evaluate to a boolean")
	})

	t.Run("rejects a malformed expression", func(t *testing.T) {
		provider, service := newService(t)

		provider.EXPECT().
			DailyHistory(gomock.Any(), "SPY", gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("rate limited")).
			Times(2)
		expectScreenTicker(provider, "CHEAP", testQuote())

		got, err := service.Screen(ctx, []string{"CHEAP"}, "pe <")
		require.Nil(t, got)
		require.ErrorContains(t, err, "failed to evaluate screen expression")
	})
}
