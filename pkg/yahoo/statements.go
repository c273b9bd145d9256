package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"sort"
	"strings"
	"time"

	"stocklab/internal/domain"
	"stocklab/internal/logger"
)

// Line items requested per statement. The timeseries type name is the
// period prefix plus the item name, e.g. annualTotalAssets.
var (
	incomeItems = []string{
		domain.ItemTotalRevenue,
		domain.ItemCostOfRevenue,
		domain.ItemGrossProfit,
		domain.ItemOperatingExpense,
		domain.ItemOperatingIncome,
		domain.ItemEBIT,
		domain.ItemEBITDA,
		domain.ItemInterestExpense,
		domain.ItemPretaxIncome,
		domain.ItemTaxProvision,
		domain.ItemNetIncome,
		domain.ItemBasicEPS,
		domain.ItemDilutedEPS,
		domain.ItemResearchAndDevelopment,
		domain.ItemSellingGeneralAndAdmin,
	}
	balanceItems = []string{
		domain.ItemTotalAssets,
		domain.ItemCurrentAssets,
		domain.ItemCurrentLiabilities,
		domain.ItemTotalLiabilities,
		domain.ItemStockholdersEquity,
		domain.ItemTotalDebt,
		domain.ItemLongTermDebt,
		domain.ItemCurrentDebt,
		domain.ItemNetPPE,
		domain.ItemConstructionInProgress,
		domain.ItemCashAndCashEquivalents,
		domain.ItemCashAndShortTermInvest,
		domain.ItemWorkingCapital,
		domain.ItemInventory,
		domain.ItemNetDebt,
		domain.ItemOrdinarySharesNumber,
		domain.ItemRetainedEarnings,
		domain.ItemInvestedCapital,
	}
	cashFlowItems = []string{
		domain.ItemOperatingCashFlow,
		domain.ItemCapitalExpenditure,
		domain.ItemFreeCashFlow,
		domain.ItemCashDividendsPaid,
		domain.ItemDepreciationAmort,
		domain.ItemDepreciationAmortTotal,
		domain.ItemRepurchaseOfCapitalStock,
	}
)

type timeseriesEnvelope struct {
	Timeseries struct {
		Result []json.RawMessage `json:"result"`
		Error  *apiError         `json:"error"`
	} `json:"timeseries"`
}

type timeseriesMeta struct {
	Symbol []string `json:"symbol"`
	Type   []string `json:"type"`
}

type reportedValue struct {
	Raw float64 `json:"raw"`
	Fmt string  `json:"fmt"`
}

type timeseriesPoint struct {
	AsOfDate      string         `json:"asOfDate"`
	PeriodType    string         `json:"periodType"`
	CurrencyCode  string         `json:"currencyCode"`
	ReportedValue *reportedValue `json:"reportedValue"`
}

// Statements pulls up to seven years of reported statements in one
// timeseries request and reshapes the per-type blocks into the three
// date-aligned tables.
func (c *clientHandler) Statements(ctx context.Context, symbol string, period domain.StatementPeriod) (*domain.Statements, error) {
	types := make([]string, 0, len(incomeItems)+len(balanceItems)+len(cashFlowItems))
	for _, items := range [][]string{incomeItems, balanceItems, cashFlowItems} {
		for _, item := range items {
			types = append(types, string(period)+item)
		}
	}

	end := time.Now()
	start := end.AddDate(-7, 0, 0)
	url := fmt.Sprintf("%s/ws/fundamentals-timeseries/v1/finance/timeseries/%s?symbol=%s&type=%s&period1=%d&period2=%d&merge=false",
		c.BaseUrl, symbol, symbol, strings.Join(types, ","), start.Unix(), end.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}

	if response.StatusCode == 429 {
		logger.FromContext(ctx).Debug("hit rate limit. sleeping...")
		time.Sleep(60 * time.Second)
		return c.Statements(ctx, symbol, period)
	} else if response.StatusCode != 200 {
		return nil, fmt.Errorf("statements request for %s failed with status code %d: %s", symbol, response.StatusCode, string(responseBytes))
	}

	var envelope timeseriesEnvelope
	if err := json.Unmarshal(responseBytes, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode statements for %s: %w", symbol, err)
	}
	if envelope.Timeseries.Error != nil {
		return nil, fmt.Errorf("statements request for %s failed: %s", symbol, envelope.Timeseries.Error.Description)
	}

	byItem := map[string]map[string]float64{}
	for _, raw := range envelope.Timeseries.Result {
		var metaWrap struct {
			Meta timeseriesMeta `json:"meta"`
		}
		if err := json.Unmarshal(raw, &metaWrap); err != nil {
			return nil, fmt.Errorf("failed to decode timeseries meta: %w", err)
		}
		if len(metaWrap.Meta.Type) == 0 {
			continue
		}
		typeName := metaWrap.Meta.Type[0]

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("failed to decode timeseries block: %w", err)
		}
		pointsRaw, ok := fields[typeName]
		if !ok {
			continue
		}
		var points []*timeseriesPoint
		if err := json.Unmarshal(pointsRaw, &points); err != nil {
			return nil, fmt.Errorf("failed to decode %s points: %w", typeName, err)
		}

		item := strings.TrimPrefix(typeName, string(period))
		for _, p := range points {
			if p == nil || p.ReportedValue == nil || p.AsOfDate == "" {
				continue
			}
			if _, ok := byItem[item]; !ok {
				byItem[item] = map[string]float64{}
			}
			byItem[item][p.AsOfDate] = p.ReportedValue.Raw
		}
	}

	out := &domain.Statements{
		Symbol: symbol,
		Period: period,
	}
	if out.Income, err = buildStatement(incomeItems, byItem); err != nil {
		return nil, err
	}
	if out.Balance, err = buildStatement(balanceItems, byItem); err != nil {
		return nil, err
	}
	if out.CashFlow, err = buildStatement(cashFlowItems, byItem); err != nil {
		return nil, err
	}

	if out.Empty() {
		return nil, domain.MissingDataError{Err: fmt.Errorf("no %s statements reported for %s", period, symbol)}
	}

	return out, nil
}

// buildStatement aligns the reported items of one statement onto the
// union of their dates, NaN-filling cells a given item did not report.
// Items the provider never reported are left out entirely so fallback
// chains can move on.
func buildStatement(names []string, byItem map[string]map[string]float64) (domain.Statement, error) {
	dateSet := map[string]struct{}{}
	for _, name := range names {
		for d := range byItem[name] {
			dateSet[d] = struct{}{}
		}
	}

	dateStrs := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dateStrs = append(dateStrs, d)
	}
	sort.Strings(dateStrs)

	dates := make([]time.Time, len(dateStrs))
	for i, d := range dateStrs {
		parsed, err := time.Parse(time.DateOnly, d)
		if err != nil {
			return domain.Statement{}, fmt.Errorf("failed to parse statement date %q: %w", d, err)
		}
		dates[i] = parsed
	}

	items := map[string][]float64{}
	for _, name := range names {
		cells, ok := byItem[name]
		if !ok || len(cells) == 0 {
			continue
		}
		row := make([]float64, len(dateStrs))
		for i, d := range dateStrs {
			if v, ok := cells[d]; ok {
				row[i] = v
			} else {
				row[i] = math.NaN()
			}
		}
		items[name] = row
	}

	return domain.Statement{
		Dates: dates,
		Items: items,
	}, nil
}
