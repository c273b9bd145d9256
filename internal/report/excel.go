package report

import (
	"fmt"
	"math"
	"sort"

	"stocklab/internal/app"
	"stocklab/internal/domain"

	"github.com/xuri/excelize/v2"
)

const (
	sheetValuation = "Valuation_Summary"
	sheetIncome    = "Income_Statement"
	sheetBalance   = "Balance_Sheet"
	sheetCashFlow  = "Cash_Flow"
	sheetBatch     = "Batch_Results"
)

// WriteWorkbook exports one ticker's analysis to an xlsx workbook:
// a metric/value valuation sheet plus one sheet per financial
// statement, dates as columns in ascending order.
func WriteWorkbook(path string, result *app.TickerResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetValuation); err != nil {
		return fmt.Errorf("failed to prepare workbook: %w", err)
	}
	if err := writeValuationSheet(f, result); err != nil {
		return err
	}

	if s := result.Statements; s != nil {
		if err := writeStatementSheet(f, sheetIncome, s.Income); err != nil {
			return err
		}
		if err := writeStatementSheet(f, sheetBalance, s.Balance); err != nil {
			return err
		}
		if err := writeStatementSheet(f, sheetCashFlow, s.CashFlow); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// WriteBatchWorkbook exports a batch run's summary table to an xlsx
// workbook with the same columns as the CSV export.
func WriteBatchWorkbook(path string, batch *app.BatchResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetBatch); err != nil {
		return fmt.Errorf("failed to prepare workbook: %w", err)
	}
	if err := writeBatchSheet(f, batch.Results); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// sheetWriter sets cells on one sheet and keeps the first error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (s *sheetWriter) set(col, row int, value interface{}) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.f.SetCellValue(s.sheet, cell, value)
}

func writeValuationSheet(f *excelize.File, result *app.TickerResult) error {
	w := &sheetWriter{f: f, sheet: sheetValuation}
	w.set(1, 1, "Metric")
	w.set(2, 1, "Value")

	row := 2
	addRow := func(metric string, value interface{}) {
		if v, ok := value.(float64); ok && (math.IsNaN(v) || math.IsInf(v, 0)) {
			return
		}
		w.set(1, row, metric)
		w.set(2, row, value)
		row++
	}

	addRow("Ticker", result.Symbol)
	if q := result.Quote; q != nil {
		addRow("Company", q.LongName)
		addRow("Current Price", q.Price)
		addRow("Market Cap", q.MarketCap)
	}
	if fu := result.Fundamentals; fu != nil {
		addRow("P/E Ratio", fu.Valuation.PE)
		addRow("Price to Book", fu.Valuation.PriceToBook)
		addRow("ROE %", fu.Profitability.ROE)
	}
	if v := result.Valuation; v != nil {
		if g := v.Graham; g != nil {
			addRow("Graham Number", g.Number)
			addRow("Graham Margin of Safety", g.MarginOfSafety)
			addRow("Graham Score", g.Score)
		}
		if d := v.DCF; d != nil {
			addRow("DCF Value per Share", d.PerShareValue)
			addRow("DCF Margin of Safety", d.MarginOfSafety)
			addRow("WACC", d.WACC)
		}
		if b := v.Buffett; b != nil {
			addRow("Buffett Score", b.Score)
		}
		addRow("Composite Score", v.Score)
		if v.Recommendation != "" {
			addRow("Recommendation", v.Recommendation)
		}
	}
	if s := result.Scorecard; s != nil {
		addRow("Fundamental Score", s.FundamentalScore)
		addRow("Technical Score", s.TechnicalScore)
		addRow("Combined Score", s.CombinedScore)
		addRow("Verdict", s.Recommendation)
	}

	if w.err != nil {
		return fmt.Errorf("failed to write %s: %w", sheetValuation, w.err)
	}
	return nil
}

func writeStatementSheet(f *excelize.File, sheet string, stmt domain.Statement) error {
	if len(stmt.Items) == 0 {
		return nil
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to add sheet %s: %w", sheet, err)
	}

	w := &sheetWriter{f: f, sheet: sheet}
	w.set(1, 1, "Item")
	for i, date := range stmt.Dates {
		w.set(i+2, 1, date.Format("2006-01-02"))
	}

	names := make([]string, 0, len(stmt.Items))
	for name := range stmt.Items {
		names = append(names, name)
	}
	sort.Strings(names)

	for r, name := range names {
		w.set(1, r+2, name)
		for c, value := range stmt.Items[name] {
			if math.IsNaN(value) || math.IsInf(value, 0) {
				continue
			}
			w.set(c+2, r+2, value)
		}
	}

	if w.err != nil {
		return fmt.Errorf("failed to write %s: %w", sheet, w.err)
	}
	return nil
}

var batchHeaders = []string{
	"ticker", "company_name", "current_price", "market_cap", "pe_ratio",
	"roe", "roce", "npm", "de_ratio", "interest_coverage",
	"earnings_growth_5yr", "sales_growth_5yr", "fundamental_score",
	"technical_score", "combined_score", "recommendation", "action",
}

func writeBatchSheet(f *excelize.File, results []*app.TickerResult) error {
	w := &sheetWriter{f: f, sheet: sheetBatch}
	for c, header := range batchHeaders {
		w.set(c+1, 1, header)
	}

	for i, row := range SummaryRows(results) {
		r := i + 2
		w.set(1, r, row.Ticker)
		w.set(2, r, row.CompanyName)
		w.set(3, r, floatCell(row.CurrentPrice))
		w.set(4, r, row.MarketCap)
		w.set(5, r, floatCell(row.PERatio))
		w.set(6, r, floatCell(row.ROE))
		w.set(7, r, floatCell(row.ROCE))
		w.set(8, r, floatCell(row.NPM))
		w.set(9, r, floatCell(row.DERatio))
		w.set(10, r, floatCell(row.InterestCoverage))
		w.set(11, r, floatCell(row.EarningsGrowth5yr))
		w.set(12, r, floatCell(row.SalesGrowth5yr))
		w.set(13, r, floatCell(row.FundamentalScore))
		w.set(14, r, floatCell(row.TechnicalScore))
		w.set(15, r, floatCell(row.CombinedScore))
		w.set(16, r, row.Recommendation)
		w.set(17, r, row.Action)
	}

	if w.err != nil {
		return fmt.Errorf("failed to write %s: %w", sheetBatch, w.err)
	}
	return nil
}

func floatCell(f Float) interface{} {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
