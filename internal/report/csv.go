package report

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"stocklab/internal/app"

	"github.com/gocarina/gocsv"
)

// Float renders like a plain float64 but leaves the cell empty for
// NaN and infinities, which is how a spreadsheet reader expects
// missing ratios to look.
type Float float64

func (f Float) MarshalCSV() (string, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", nil
	}
	return strconv.FormatFloat(v, 'f', -1, 64), nil
}

func (f *Float) UnmarshalCSV(field string) error {
	if field == "" {
		*f = Float(math.NaN())
		return nil
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// SummaryRow is one ticker's line in the portfolio summary export.
type SummaryRow struct {
	Ticker            string `csv:"ticker"`
	CompanyName       string `csv:"company_name"`
	CurrentPrice      Float  `csv:"current_price"`
	MarketCap         int64  `csv:"market_cap"`
	PERatio           Float  `csv:"pe_ratio"`
	ROE               Float  `csv:"roe"`
	ROCE              Float  `csv:"roce"`
	NPM               Float  `csv:"npm"`
	DERatio           Float  `csv:"de_ratio"`
	InterestCoverage  Float  `csv:"interest_coverage"`
	EarningsGrowth5yr Float  `csv:"earnings_growth_5yr"`
	SalesGrowth5yr    Float  `csv:"sales_growth_5yr"`
	FundamentalScore  Float  `csv:"fundamental_score"`
	TechnicalScore    Float  `csv:"technical_score"`
	CombinedScore     Float  `csv:"combined_score"`
	Recommendation    string `csv:"recommendation"`
	Action            string `csv:"action"`
}

// SummaryRows flattens results into export rows. Errored tickers are
// dropped, partial ones keep whatever sections they have.
func SummaryRows(results []*app.TickerResult) []SummaryRow {
	rows := make([]SummaryRow, 0, len(results))
	for _, result := range results {
		if result.Err != nil {
			continue
		}

		row := SummaryRow{
			Ticker:            result.Symbol,
			CurrentPrice:      Float(math.NaN()),
			PERatio:           Float(math.NaN()),
			ROE:               Float(math.NaN()),
			ROCE:              Float(math.NaN()),
			NPM:               Float(math.NaN()),
			DERatio:           Float(math.NaN()),
			InterestCoverage:  Float(math.NaN()),
			EarningsGrowth5yr: Float(math.NaN()),
			SalesGrowth5yr:    Float(math.NaN()),
			FundamentalScore:  Float(math.NaN()),
			TechnicalScore:    Float(math.NaN()),
			CombinedScore:     Float(math.NaN()),
		}
		if q := result.Quote; q != nil {
			row.CompanyName = q.LongName
			row.CurrentPrice = Float(q.Price)
			row.MarketCap = q.MarketCap
		}
		if f := result.Fundamentals; f != nil {
			row.PERatio = Float(f.Valuation.PE)
			row.ROE = Float(f.Profitability.ROE)
			row.ROCE = Float(f.Profitability.ROCE)
			row.NPM = Float(f.Profitability.NPM3yrAvg)
			row.DERatio = Float(f.Leverage.DebtToEquityMarket)
			row.InterestCoverage = Float(f.Leverage.InterestCoverage)
			row.EarningsGrowth5yr = Float(f.Growth.EarningsCagr5yr)
			row.SalesGrowth5yr = Float(f.Growth.SalesCagr5yr)
		}
		if s := result.Scorecard; s != nil {
			row.FundamentalScore = Float(s.FundamentalScore)
			row.TechnicalScore = Float(s.TechnicalScore)
			row.CombinedScore = Float(s.CombinedScore)
			row.Recommendation = s.Recommendation
			row.Action = s.Action
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteCSV writes the portfolio summary for results to path.
func WriteCSV(path string, results []*app.TickerResult) error {
	rows := SummaryRows(results)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
