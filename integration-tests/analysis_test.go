package integration_tests

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"stocklab/internal/app"
	"stocklab/internal/config"
	"stocklab/internal/report"
	"stocklab/pkg/yahoo"
)

// These flows hit the real Yahoo endpoints, so they only run when
// STOCKLAB_LIVE_TEST is set. They assert shape rather than values:
// live data changes every day.

func liveService(t *testing.T) app.AnalysisService {
	t.Helper()
	if os.Getenv("STOCKLAB_LIVE_TEST") == "" {
		t.Skip("set STOCKLAB_LIVE_TEST to run live provider flows")
	}
	return app.NewAnalysisService(yahoo.NewClient(), config.Default())
}

func Test_analyzeFlow(t *testing.T) {
	service := liveService(t)

	result := service.AnalyzeTicker(context.Background(), "AAPL")
	require.NoError(t, result.Err)
	require.NotNil(t, result.Quote)
	require.Greater(t, result.Quote.Price, 0.0)
	require.NotNil(t, result.Fundamentals)
	require.NotNil(t, result.Technicals)
	require.NotNil(t, result.Scorecard)
	require.NotEmpty(t, result.Scorecard.Recommendation)

	// Whatever came back, the writers have to cope with it.
	report.NewConsoleWriter(io.Discard).WriteTicker(result)
}

func Test_batchFlow(t *testing.T) {
	service := liveService(t)

	batch, err := service.AnalyzeBatch(context.Background(), []string{"MSFT", "GOOGL"}, app.BatchOptions{})
	require.NoError(t, err)
	require.Len(t, batch.Results, 2)
	for _, result := range batch.Results {
		require.NoError(t, result.Err)
	}
	require.NotEmpty(t, batch.Summary)

	report.NewConsoleWriter(io.Discard).WriteBatch(batch)
}
