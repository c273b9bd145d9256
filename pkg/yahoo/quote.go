package yahoo

import (
	"context"
	"fmt"

	"stocklab/internal/domain"

	"github.com/piquette/finance-go/equity"
)

// Quote fetches the latest market snapshot. Fields the provider omits
// come back as their zero value; the ratio engines treat non-positive
// valuation figures as unreported.
func (c *clientHandler) Quote(ctx context.Context, symbol string) (*domain.Quote, error) {
	q, err := equity.Get(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to get quote for %s: %w", symbol, err)
	}
	if q == nil {
		return nil, domain.MissingDataError{Err: fmt.Errorf("no quote returned for %s", symbol)}
	}

	return &domain.Quote{
		Symbol:    q.Symbol,
		ShortName: q.ShortName,
		LongName:  q.LongName,

		Price:         q.RegularMarketPrice,
		PreviousClose: q.RegularMarketPreviousClose,

		MarketCap:         q.MarketCap,
		SharesOutstanding: int64(q.SharesOutstanding),

		TrailingPE:  q.TrailingPE,
		ForwardPE:   q.ForwardPE,
		EpsTrailing: q.EpsTrailingTwelveMonths,
		BookValue:   q.BookValue,
		PriceToBook: q.PriceToBook,

		FiftyTwoWeekHigh:     q.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:      q.FiftyTwoWeekLow,
		FiftyDayAverage:      q.FiftyDayAverage,
		TwoHundredDayAverage: q.TwoHundredDayAverage,

		DividendRate:  q.TrailingAnnualDividendRate,
		DividendYield: q.TrailingAnnualDividendYield,

		AvgVolume3Month: int64(q.AverageDailyVolume3Month),
	}, nil
}
