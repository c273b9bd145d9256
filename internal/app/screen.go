package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/maja42/goval"
)

// DefaultScreenExpression is the classic value filter applied when the
// caller supplies no expression.
const DefaultScreenExpression = "pe > 0 && pe < 20 && pb > 0 && pb < 2"

// ScreenResult keeps the matches in batch rank order alongside how
// many tickers the expression was evaluated against.
type ScreenResult struct {
	RunID      uuid.UUID
	Expression string
	Evaluated  int
	Matches    []*TickerResult
}

// Screen analyzes the symbols through the batch path and keeps the
// ones whose metrics satisfy the boolean expression. Variables are the
// flattened fundamental sheet plus fund_score, tech_score and combined
// (zero when the section never resolved).
func (h *analysisServiceHandler) Screen(ctx context.Context, symbols []string, expression string) (*ScreenResult, error) {
	if expression == "" {
		expression = DefaultScreenExpression
	}

	batch, err := h.AnalyzeBatch(ctx, symbols, BatchOptions{})
	if err != nil {
		return nil, err
	}

	out := &ScreenResult{
		RunID:      batch.RunID,
		Expression: expression,
	}

	eval := goval.NewEvaluator()
	for _, res := range batch.Results {
		if res.Err != nil || res.Fundamentals == nil {
			continue
		}
		out.Evaluated++

		variables := map[string]interface{}{
			"fund_score": 0.0,
			"tech_score": 0.0,
			"combined":   0.0,
		}
		for name, value := range res.Fundamentals.Flatten() {
			variables[name] = value
		}
		if res.Technicals != nil {
			variables["tech_score"] = res.Technicals.ScorePct
		}
		if res.Scorecard != nil {
			variables["fund_score"] = res.Scorecard.FundamentalScore
			variables["combined"] = res.Scorecard.CombinedScore
		}

		result, err := eval.Evaluate(expression, variables, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate screen expression: %w", err)
		}
		keep, ok := result.(bool)
		if !ok {
			return nil, fmt.Errorf("screen expression must evaluate to a boolean, got %T", result)
		}
		if keep {
			out.Matches = append(out.Matches, res)
		}
	}

	return out, nil
}
