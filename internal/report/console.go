package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"text/tabwriter"

	"stocklab/internal/app"
)

const rule = "================================================================================"

// ConsoleWriter renders analysis results as sectioned plain text, one
// section per engine. Sections a run could not produce are skipped.
type ConsoleWriter struct {
	Out io.Writer
}

func NewConsoleWriter(out io.Writer) *ConsoleWriter {
	return &ConsoleWriter{Out: out}
}

func (w *ConsoleWriter) WriteTicker(result *app.TickerResult) {
	fmt.Fprintln(w.Out, rule)
	fmt.Fprintf(w.Out, "COMPREHENSIVE ANALYSIS: %s\n", result.Symbol)
	fmt.Fprintf(w.Out, "Date: %s\n", result.AnalyzedAt.Format("2006-01-02 15:04"))
	fmt.Fprintln(w.Out, rule)

	if result.Err != nil {
		fmt.Fprintf(w.Out, "\nAnalysis failed: %v\n", result.Err)
		return
	}

	if q := result.Quote; q != nil {
		fmt.Fprintln(w.Out)
		if q.LongName != "" {
			fmt.Fprintf(w.Out, "Company: %s\n", q.LongName)
		}
		fmt.Fprintf(w.Out, "Current Price: %s\n", money(q.Price))
		fmt.Fprintf(w.Out, "Market Cap: $%s\n", commas(q.MarketCap))
	}

	w.writeMarket(result)
	w.writeTechnicals(result)
	w.writeFundamentals(result)
	w.writeValuation(result)
	w.writeVerdict(result)
}

func (w *ConsoleWriter) writeMarket(result *app.TickerResult) {
	m := result.Market
	if m == nil {
		return
	}
	fmt.Fprintf(w.Out, "\nMARKET CONTEXT (%s):\n", m.Benchmark)
	fmt.Fprintf(w.Out, "  State: %s (%d/%d checks)\n", m.State, m.Score, m.TotalChecks)
	fmt.Fprintf(w.Out, "  Benchmark Price: %s\n", money(m.Price))
	fmt.Fprintf(w.Out, "  Above 50-day MA: %s\n", yn(m.AboveSMA50))
	fmt.Fprintf(w.Out, "  Above 200-day MA: %s\n", yn(m.AboveSMA200))
	fmt.Fprintf(w.Out, "  Golden Cross: %s\n", yn(m.GoldenCross))
	if !math.IsNaN(m.VIX) {
		fmt.Fprintf(w.Out, "  VIX: %.1f\n", m.VIX)
	}
	fmt.Fprintf(w.Out, "  Recommendation: %s\n", m.Recommendation)
}

func (w *ConsoleWriter) writeTechnicals(result *app.TickerResult) {
	tech := result.Technicals
	if tech == nil {
		return
	}

	if rs := tech.RelativeStrength; rs != nil {
		fmt.Fprintln(w.Out, "\nRELATIVE STRENGTH:")
		fmt.Fprintf(w.Out, "  Stock Return: %s\n", pct(rs.StockReturnPct))
		fmt.Fprintf(w.Out, "  Benchmark Return: %s\n", pct(rs.BenchmarkReturnPct))
		fmt.Fprintf(w.Out, "  Outperformance: %s\n", pct(rs.OutperformancePct))
		fmt.Fprintf(w.Out, "  Signal: %s\n", rs.Signal)
	}

	ma := tech.MovingAverages
	fmt.Fprintln(w.Out, "\n1. MOVING AVERAGES:")
	fmt.Fprintf(w.Out, "  20-day MA: %s (%s from price)\n", money(ma.SMA20), pct(ma.DistFromSMA20Pct))
	fmt.Fprintf(w.Out, "  50-day MA: %s (%s from price)\n", money(ma.SMA50), pct(ma.DistFromSMA50Pct))
	fmt.Fprintf(w.Out, "  200-day MA: %s (%s from price)\n", money(ma.SMA200), pct(ma.DistFromSMA200Pct))
	fmt.Fprintf(w.Out, "  Above 50-day: %s\n", yn(ma.AboveSMA50))
	fmt.Fprintf(w.Out, "  Above 200-day: %s\n", yn(ma.AboveSMA200))
	fmt.Fprintf(w.Out, "  Golden Cross: %s\n", yn(ma.GoldenCross))
	fmt.Fprintf(w.Out, "  Score: %d/%d\n", ma.Score, ma.MaxScore)
	fmt.Fprintf(w.Out, "  Signal: %s\n", ma.Signal)

	macd := tech.MACD
	fmt.Fprintln(w.Out, "\n2. MACD:")
	fmt.Fprintf(w.Out, "  MACD: %s\n", num(macd.Line))
	fmt.Fprintf(w.Out, "  Signal Line: %s\n", num(macd.SignalLine))
	fmt.Fprintf(w.Out, "  Histogram: %s\n", num(macd.Histogram))
	fmt.Fprintf(w.Out, "  Bullish Crossover: %s\n", yn(macd.BullishCrossover))
	fmt.Fprintf(w.Out, "  Above Zero: %s\n", yn(macd.AboveZero))
	if macd.RecentCrossover {
		fmt.Fprintf(w.Out, "  Recent Crossover: %d days ago\n", macd.CrossoverDaysAgo)
	}
	fmt.Fprintf(w.Out, "  Score: %d/%d\n", macd.Score, macd.MaxScore)
	fmt.Fprintf(w.Out, "  Signal: %s\n", macd.Signal)

	rsi := tech.RSI
	fmt.Fprintln(w.Out, "\n3. RSI:")
	fmt.Fprintf(w.Out, "  RSI: %s\n", num(rsi.Value))
	fmt.Fprintf(w.Out, "  Zone: %s\n", rsi.Zone)
	fmt.Fprintf(w.Out, "  Not Overbought (<70): %s\n", yn(rsi.NotOverbought))
	fmt.Fprintf(w.Out, "  Above 50: %s\n", yn(rsi.BullishZone))
	fmt.Fprintf(w.Out, "  In Sweet Spot (40-70): %s\n", yn(rsi.Healthy))
	fmt.Fprintf(w.Out, "  Score: %d/%d\n", rsi.Score, rsi.MaxScore)
	fmt.Fprintf(w.Out, "  Signal: %s\n", rsi.Signal)

	vol := tech.Volume
	fmt.Fprintln(w.Out, "\n4. VWMA & VOLUME:")
	fmt.Fprintf(w.Out, "  VWMA: %s\n", money(vol.VWMA))
	fmt.Fprintf(w.Out, "  Above VWMA: %s\n", yn(vol.AboveVWMA))
	fmt.Fprintf(w.Out, "  VWMA Rising: %s\n", yn(vol.VWMARising))
	fmt.Fprintf(w.Out, "  Volume Pattern Bullish: %s\n", yn(vol.BullishVolume))
	fmt.Fprintf(w.Out, "  Current Volume: %s\n", volume(vol.CurrentVolume))
	fmt.Fprintf(w.Out, "  Avg Volume: %s\n", volume(vol.AverageVolume))
	fmt.Fprintf(w.Out, "  Volume Ratio: %sx\n", num(vol.VolumeRatio))
	fmt.Fprintf(w.Out, "  Score: %d/%d\n", vol.Score, vol.MaxScore)
	fmt.Fprintf(w.Out, "  Signal: %s\n", vol.Signal)

	sr := tech.SupportResistance
	fmt.Fprintln(w.Out, "\n5. SUPPORT & RESISTANCE:")
	fmt.Fprintf(w.Out, "  Nearest Support: %s (%s)\n", money(sr.NearestSupport), pct(-sr.DistToSupportPct))
	fmt.Fprintf(w.Out, "  Nearest Resistance: %s (+%s)\n", money(sr.NearestResistance), pct(sr.DistToResistancePct))
	fmt.Fprintf(w.Out, "  At Support: %s\n", yn(sr.AtSupport))
	fmt.Fprintf(w.Out, "  Near Resistance: %s\n", yn(sr.NearResistance))
	fmt.Fprintf(w.Out, "  Score: %d/%d\n", sr.Score, sr.MaxScore)
	fmt.Fprintf(w.Out, "  Signal: %s\n", sr.Signal)
}

func (w *ConsoleWriter) writeFundamentals(result *app.TickerResult) {
	f := result.Fundamentals
	if f == nil {
		return
	}
	fmt.Fprintln(w.Out, "\nFUNDAMENTALS:")
	fmt.Fprintf(w.Out, "  P/E Ratio: %s\n", num(f.Valuation.PE))
	fmt.Fprintf(w.Out, "  Earnings Yield: %s\n", pct(f.Valuation.EarningsYield))
	fmt.Fprintf(w.Out, "  ROE: %s\n", pct(f.Profitability.ROE))
	fmt.Fprintf(w.Out, "  ROCE: %s\n", pct(f.Profitability.ROCE))
	fmt.Fprintf(w.Out, "  NPM (3yr avg): %s\n", pct(f.Profitability.NPM3yrAvg))
	fmt.Fprintf(w.Out, "  D/E Ratio: %s\n", num(f.Leverage.DebtToEquityMarket))
	fmt.Fprintf(w.Out, "  Interest Coverage: %s\n", num(f.Leverage.InterestCoverage))
	fmt.Fprintf(w.Out, "  Earnings CAGR (5yr): %s\n", pct(f.Growth.EarningsCagr5yr))
	fmt.Fprintf(w.Out, "  Sales CAGR (5yr): %s\n", pct(f.Growth.SalesCagr5yr))
	fmt.Fprintf(w.Out, "  CFO: %s\n", num(f.CashFlow.CFO))
}

func (w *ConsoleWriter) writeValuation(result *app.TickerResult) {
	v := result.Valuation
	if v == nil {
		return
	}
	fmt.Fprintln(w.Out, "\nINTRINSIC VALUE:")
	if g := v.Graham; g != nil {
		fmt.Fprintf(w.Out, "  Graham Number: %s (margin %s)\n", money(g.Number), pct(g.MarginOfSafety*100))
		fmt.Fprintf(w.Out, "  Graham Criteria Score: %.2f\n", g.Score)
	}
	if d := v.DCF; d != nil {
		fmt.Fprintf(w.Out, "  DCF Value/Share: %s (margin %s)\n", money(d.PerShareValue), pct(d.MarginOfSafety*100))
		fmt.Fprintf(w.Out, "  WACC: %s\n", pct(d.WACC*100))
	}
	if b := v.Buffett; b != nil {
		fmt.Fprintf(w.Out, "  Buffett Criteria Score: %.2f\n", b.Score)
	}
	if !math.IsNaN(v.Score) {
		fmt.Fprintf(w.Out, "  Composite Score: %.2f\n", v.Score)
		fmt.Fprintf(w.Out, "  Rating: %s\n", v.Recommendation)
	}
}

func (w *ConsoleWriter) writeVerdict(result *app.TickerResult) {
	s := result.Scorecard
	if s == nil {
		return
	}
	fmt.Fprintln(w.Out)
	fmt.Fprintln(w.Out, rule)
	if tech := result.Technicals; tech != nil {
		fmt.Fprintf(w.Out, "OVERALL TECHNICAL SCORE: %d/%d (%.0f%%)\n", tech.TotalScore, tech.MaxScore, tech.ScorePct)
	}
	fmt.Fprintf(w.Out, "SCORES: Fundamental %.1f | Technical %.1f | Combined %.1f\n",
		s.FundamentalScore, s.TechnicalScore, s.CombinedScore)
	fmt.Fprintf(w.Out, "RECOMMENDATION: %s\n", s.Recommendation)
	fmt.Fprintf(w.Out, "ACTION: %s\n", s.Action)

	if p := s.Position; p != nil {
		fmt.Fprintln(w.Out, "\nPOSITION SIZING:")
		fmt.Fprintf(w.Out, "  Entry Price: %s\n", money(p.EntryPrice))
		fmt.Fprintf(w.Out, "  Stop Loss: %s\n", money(p.StopLoss))
		fmt.Fprintf(w.Out, "  Shares: %d\n", p.Shares)
		fmt.Fprintf(w.Out, "  Position Value: %s\n", money(p.PositionValue))
		fmt.Fprintf(w.Out, "  Risk Amount: %s (%.2f%% of portfolio)\n", money(p.ActualRisk), p.ActualRiskPct)
		for _, target := range p.Targets {
			fmt.Fprintf(w.Out, "  Target +%.0f%%: %s (R/R %.1f)\n", target.GainPct, money(target.Price), target.RewardRisk)
		}
	}
	fmt.Fprintln(w.Out, rule)
}

func (w *ConsoleWriter) WriteBatch(batch *app.BatchResult) {
	fmt.Fprintln(w.Out, rule)
	fmt.Fprintf(w.Out, "PORTFOLIO SUMMARY: %d STOCKS\n", len(batch.Results))
	fmt.Fprintf(w.Out, "Run ID: %s\n", batch.RunID)
	fmt.Fprintf(w.Out, "Date: %s\n", batch.StartedAt.Format("2006-01-02 15:04"))
	fmt.Fprintln(w.Out, rule)

	if m := batch.Market; m != nil {
		fmt.Fprintf(w.Out, "Market: %s (%d/%d checks) - %s\n", m.State, m.Score, m.TotalChecks, m.Recommendation)
	}

	w.writeTable(batch.Results)

	if len(batch.Summary) > 0 {
		fmt.Fprintln(w.Out, "\nRECOMMENDATION BREAKDOWN:")
		recommendations := make([]string, 0, len(batch.Summary))
		for recommendation := range batch.Summary {
			recommendations = append(recommendations, recommendation)
		}
		sort.Strings(recommendations)
		for _, recommendation := range recommendations {
			fmt.Fprintf(w.Out, "  %s: %d\n", recommendation, batch.Summary[recommendation])
		}
	}
}

func (w *ConsoleWriter) WriteScreen(screen *app.ScreenResult) {
	fmt.Fprintln(w.Out, rule)
	fmt.Fprintln(w.Out, "SCREEN RESULTS")
	fmt.Fprintf(w.Out, "Expression: %s\n", screen.Expression)
	fmt.Fprintf(w.Out, "Evaluated: %d, matched: %d\n", screen.Evaluated, len(screen.Matches))
	fmt.Fprintln(w.Out, rule)

	if len(screen.Matches) == 0 {
		fmt.Fprintln(w.Out, "No tickers matched the screen.")
		return
	}
	w.writeTable(screen.Matches)
}

func (w *ConsoleWriter) writeTable(results []*app.TickerResult) {
	tw := tabwriter.NewWriter(w.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tTICKER\tPRICE\tFUND\tTECH\tCOMBINED\tRECOMMENDATION")
	for i, result := range results {
		if result.Err != nil {
			fmt.Fprintf(tw, "%d\t%s\tfailed: %v\t\t\t\t\n", i+1, result.Symbol, result.Err)
			continue
		}
		price := "-"
		if result.Quote != nil {
			price = money(result.Quote.Price)
		}
		fund, tech, combined, recommendation := "-", "-", "-", "-"
		if s := result.Scorecard; s != nil {
			fund = fmt.Sprintf("%.1f", s.FundamentalScore)
			tech = fmt.Sprintf("%.1f", s.TechnicalScore)
			combined = fmt.Sprintf("%.1f", s.CombinedScore)
			recommendation = s.Recommendation
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", i+1, result.Symbol, price, fund, tech, combined, recommendation)
	}
	tw.Flush()
}

func yn(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", v)
}

func money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", v)
}

func pct(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", v)
}

// volume renders a share count that may still be NaN when the rolling
// average never filled its window.
func volume(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	return commas(int64(v))
}

// commas inserts thousands separators into an integer. Negative
// values keep their sign.
func commas(v int64) string {
	s := strconv.FormatInt(v, 10)
	sign := ""
	if v < 0 {
		sign, s = "-", s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return sign + s
}
