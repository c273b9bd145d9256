package repository

import (
	"context"
	"fmt"
	"math"
	"strings"

	"stocklab/internal/app"

	"github.com/ayush6624/go-chatgpt"
)

type NarrativeRepository interface {
	ExplainResult(ctx context.Context, result *app.TickerResult) (string, error)
}

type narrativeRepositoryHandler struct {
	ChatClient *chatgpt.Client
}

func NewNarrativeRepository(apiKey string) (NarrativeRepository, error) {
	client, err := chatgpt.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to construct chatgpt client: %w", err)
	}

	return narrativeRepositoryHandler{
		ChatClient: client,
	}, nil
}

const narrativePrompt = `
You are an experienced equity analyst. You will receive a metric sheet for one stock: company fundamentals, technical chart signals, intrinsic-value estimates, and a final scored verdict.

Write a concise narrative for an individual investor in three short paragraphs:
1. What the business numbers say (profitability, growth, balance sheet, cash generation).
2. What the chart and market context say (trend, momentum, relative strength).
3. The verdict: restate the final recommendation, what price levels matter, and the main risk.

Rules:
- Use only the figures on the sheet. Never invent numbers or outside facts.
- If a section is missing from the sheet, say the data was unavailable rather than guessing.
- Plain language, no hype, no emoji.
`

func (h narrativeRepositoryHandler) ExplainResult(ctx context.Context, result *app.TickerResult) (string, error) {
	if result == nil {
		return "", fmt.Errorf("cannot explain a nil result")
	}

	response, err := h.ChatClient.Send(ctx, &chatgpt.ChatCompletionRequest{
		Model: chatgpt.GPT4,
		Messages: []chatgpt.ChatMessage{
			{Role: chatgpt.ChatGPTModelRoleSystem, Content: narrativePrompt},
			{Role: chatgpt.ChatGPTModelRoleUser, Content: resultSheet(result)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate narrative for %s: %w", result.Symbol, err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no narrative returned for %s", result.Symbol)
	}

	return response.Choices[0].Message.Content, nil
}

// resultSheet flattens an analysis result into the plain-text metric
// sheet the model reads. Sections the run could not produce are left
// out entirely, NaN metrics are skipped line by line.
func resultSheet(result *app.TickerResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Ticker: %s\n", result.Symbol)
	if result.Quote != nil {
		if result.Quote.LongName != "" {
			fmt.Fprintf(&b, "Company: %s\n", result.Quote.LongName)
		}
		fmt.Fprintf(&b, "Price: %.2f\n", result.Quote.Price)
		fmt.Fprintf(&b, "Market cap: %d\n", result.Quote.MarketCap)
	}

	if m := result.Market; m != nil {
		fmt.Fprintf(&b, "\nMarket regime: %s (%d of %d checks bullish)\n", m.State, m.Score, m.TotalChecks)
	}

	if f := result.Fundamentals; f != nil {
		b.WriteString("\nFundamentals:\n")
		writeMetric(&b, "ROE", f.Profitability.ROE, "%")
		writeMetric(&b, "ROCE", f.Profitability.ROCE, "%")
		writeMetric(&b, "Net profit margin (3y avg)", f.Profitability.NPM3yrAvg, "%")
		writeMetric(&b, "Earnings CAGR (5y)", f.Growth.EarningsCagr5yr, "%")
		writeMetric(&b, "Sales CAGR (5y)", f.Growth.SalesCagr5yr, "%")
		writeMetric(&b, "Debt to equity", f.Leverage.DebtToEquity, "")
		writeMetric(&b, "Interest coverage", f.Leverage.InterestCoverage, "x")
		writeMetric(&b, "Operating cash flow", f.CashFlow.CFO, "")
		writeMetric(&b, "P/E", f.Valuation.PE, "")
		writeMetric(&b, "Earnings yield", f.Valuation.EarningsYield, "%")
	}

	if tech := result.Technicals; tech != nil {
		b.WriteString("\nTechnicals:\n")
		fmt.Fprintf(&b, "  Score: %d of %d (%.0f%%)\n", tech.TotalScore, tech.MaxScore, tech.ScorePct)
		fmt.Fprintf(&b, "  Trend: %s\n", tech.MovingAverages.Signal)
		fmt.Fprintf(&b, "  Momentum: %s\n", tech.MACD.Signal)
		writeMetric(&b, "RSI", tech.RSI.Value, "")
		writeMetric(&b, "Nearest support", tech.SupportResistance.NearestSupport, "")
		writeMetric(&b, "Nearest resistance", tech.SupportResistance.NearestResistance, "")
		if rs := tech.RelativeStrength; rs != nil {
			writeMetric(&b, "Outperformance vs benchmark", rs.OutperformancePct, "%")
		}
	}

	if v := result.Valuation; v != nil {
		b.WriteString("\nIntrinsic value:\n")
		if v.Graham != nil {
			writeMetric(&b, "Graham number", v.Graham.Number, "")
		}
		if v.DCF != nil {
			writeMetric(&b, "DCF value per share", v.DCF.PerShareValue, "")
			writeMetric(&b, "DCF margin of safety", v.DCF.MarginOfSafety*100, "%")
		}
		writeMetric(&b, "Composite value score (0-1)", v.Score, "")
		if v.Recommendation != "" {
			fmt.Fprintf(&b, "  Value rating: %s\n", v.Recommendation)
		}
	}

	if s := result.Scorecard; s != nil {
		b.WriteString("\nVerdict:\n")
		fmt.Fprintf(&b, "  Fundamental score: %.0f of 100\n", s.FundamentalScore)
		fmt.Fprintf(&b, "  Technical score: %.0f of 100\n", s.TechnicalScore)
		fmt.Fprintf(&b, "  Combined score: %.0f of 100\n", s.CombinedScore)
		fmt.Fprintf(&b, "  Recommendation: %s (%s)\n", s.Recommendation, s.Action)
		if p := s.Position; p != nil {
			fmt.Fprintf(&b, "  Suggested position: %d shares, entry %.2f, stop %.2f\n", p.Shares, p.EntryPrice, p.StopLoss)
		}
	}

	return b.String()
}

func writeMetric(b *strings.Builder, label string, value float64, unit string) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return
	}
	fmt.Fprintf(b, "  %s: %.2f%s\n", label, value, unit)
}
