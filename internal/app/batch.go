package app

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"stocklab/internal/logger"
	"stocklab/internal/technicals"
)

// BatchOptions tune one batch run. Zero values fall back to the
// configured defaults.
type BatchOptions struct {
	BatchSize int
	WaveDelay time.Duration
}

// BatchResult is one ranked run over a symbol list. Results holds one
// entry per requested symbol, best combined score first and hard
// failures at the bottom.
type BatchResult struct {
	RunID     uuid.UUID
	StartedAt time.Time
	Market    *technicals.MarketContext
	Results   []*TickerResult
	Summary   map[string]int
}

// AnalyzeBatch runs the pipeline over the symbols in waves, pausing
// between waves so the provider is not hammered. One symbol's failure
// never takes down the run; cancellation is honored between waves.
func (h *analysisServiceHandler) AnalyzeBatch(ctx context.Context, symbols []string, opts BatchOptions) (*BatchResult, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("cannot analyze an empty symbol list")
	}

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = h.Config.Batch.Size
	}
	waveDelay := opts.WaveDelay
	if waveDelay == 0 {
		waveDelay = h.Config.WaveDelay()
	}

	log := logger.FromContext(ctx)
	out := &BatchResult{
		RunID:     uuid.New(),
		StartedAt: time.Now(),
	}

	market := h.loadMarketData(ctx)
	out.Market = market.Context

	resultCh := make(chan *TickerResult, len(symbols))
	for start := 0; start < len(symbols); start += batchSize {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("batch run aborted: %w", ctx.Err())
		default:
		}

		end := min(start+batchSize, len(symbols))
		log.Infof("analyzing wave %d-%d of %d symbols", start+1, end, len(symbols))

		var wg sync.WaitGroup
		for _, symbol := range symbols[start:end] {
			wg.Add(1)
			go func(symbol string) {
				defer wg.Done()
				resultCh <- h.analyzeOne(ctx, symbol, market)
			}(symbol)
		}
		wg.Wait()

		if end < len(symbols) && waveDelay > 0 {
			time.Sleep(waveDelay)
		}
	}
	close(resultCh)

	for res := range resultCh {
		out.Results = append(out.Results, res)
	}

	// The channel scrambles wave order; restore input order first so the
	// ranking below breaks ties deterministically.
	order := make(map[string]int, len(symbols))
	for i, symbol := range symbols {
		order[symbol] = i
	}
	sort.SliceStable(out.Results, func(i, j int) bool {
		return order[out.Results[i].Symbol] < order[out.Results[j].Symbol]
	})

	sortResults(out.Results)
	out.Summary = summarize(out.Results)
	return out, nil
}

// sortResults ranks by combined score descending; entries that never
// scored sink below scored ones, and hard failures sit at the bottom.
func sortResults(results []*TickerResult) {
	key := func(r *TickerResult) float64 {
		if r.Scorecard == nil {
			return math.Inf(-1)
		}
		return r.Scorecard.CombinedScore
	}
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if (a.Err == nil) != (b.Err == nil) {
			return a.Err == nil
		}
		return key(a) > key(b)
	})
}

func summarize(results []*TickerResult) map[string]int {
	out := map[string]int{}
	for _, res := range results {
		if rec := res.Recommendation(); rec != "" {
			out[rec]++
		}
	}
	return out
}
