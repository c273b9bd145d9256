package yahoo

import (
	"context"
	"fmt"
	"time"

	"stocklab/internal/domain"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

// DailyHistory returns day-ascending bars for [start, end]. An empty
// window is a MissingDataError so batch runs can skip the symbol.
func (c *clientHandler) DailyHistory(ctx context.Context, symbol string, start, end time.Time) (domain.History, error) {
	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	bars := domain.History{}
	for iter.Next() {
		bar := iter.Bar()
		bars = append(bars, domain.Bar{
			Symbol:   symbol,
			Date:     time.Unix(int64(bar.Timestamp), 0).UTC(),
			Open:     bar.Open,
			High:     bar.High,
			Low:      bar.Low,
			Close:    bar.Close,
			AdjClose: bar.AdjClose,
			Volume:   int64(bar.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get chart for %s: %w", symbol, err)
	}

	if len(bars) == 0 {
		return nil, domain.MissingDataError{Err: fmt.Errorf("no price history for %s between %s and %s",
			symbol, start.Format(time.DateOnly), end.Format(time.DateOnly))}
	}

	return bars, nil
}
