package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"stocklab/internal/domain"
	"stocklab/internal/logger"
)

type summaryEnvelope struct {
	QuoteSummary struct {
		Result []summaryResult `json:"result"`
		Error  *apiError       `json:"error"`
	} `json:"quoteSummary"`
}

type summaryResult struct {
	AssetProfile          *assetProfile     `json:"assetProfile"`
	DefaultKeyStatistics  *keyStatistics    `json:"defaultKeyStatistics"`
	FinancialData         *financialData    `json:"financialData"`
	MajorHoldersBreakdown *holdersBreakdown `json:"majorHoldersBreakdown"`
}

type assetProfile struct {
	Sector              string `json:"sector"`
	Industry            string `json:"industry"`
	Website             string `json:"website"`
	LongBusinessSummary string `json:"longBusinessSummary"`
}

type keyStatistics struct {
	Beta *rawValue `json:"beta"`
}

type financialData struct {
	CurrentRatio            *rawValue `json:"currentRatio"`
	TargetMeanPrice         *rawValue `json:"targetMeanPrice"`
	TargetHighPrice         *rawValue `json:"targetHighPrice"`
	TargetLowPrice          *rawValue `json:"targetLowPrice"`
	RecommendationKey       string    `json:"recommendationKey"`
	NumberOfAnalystOpinions *rawValue `json:"numberOfAnalystOpinions"`
}

type holdersBreakdown struct {
	InsidersPercentHeld     *rawValue `json:"insidersPercentHeld"`
	InstitutionsPercentHeld *rawValue `json:"institutionsPercentHeld"`
}

// rawValue is the provider's numeric wrapper; absent fields decode to a
// nil Raw.
type rawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

func (v *rawValue) float() float64 {
	if v == nil || v.Raw == nil {
		return math.NaN()
	}
	return *v.Raw
}

// Profile fetches the descriptive company record plus the analyst view
// and holder breakdown from the quote summary endpoint.
func (c *clientHandler) Profile(ctx context.Context, symbol string) (*domain.Profile, error) {
	url := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=assetProfile,defaultKeyStatistics,financialData,majorHoldersBreakdown",
		c.BaseUrl, symbol)

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
		return c.Profile(ctx, symbol)
	} else if response.StatusCode != 200 {
		return nil, fmt.Errorf("profile request for %s failed with status code %d: %s", symbol, response.StatusCode, string(responseBytes))
	}

	var envelope summaryEnvelope
	if err := json.Unmarshal(responseBytes, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode profile for %s: %w", symbol, err)
	}
	if envelope.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("profile request for %s failed: %s", symbol, envelope.QuoteSummary.Error.Description)
	}
	if len(envelope.QuoteSummary.Result) == 0 {
		return nil, domain.MissingDataError{Err: fmt.Errorf("no profile returned for %s", symbol)}
	}

	result := envelope.QuoteSummary.Result[0]
	out := &domain.Profile{
		Symbol:                  symbol,
		Beta:                    math.NaN(),
		CurrentRatio:            math.NaN(),
		TargetMeanPrice:         math.NaN(),
		TargetHighPrice:         math.NaN(),
		TargetLowPrice:          math.NaN(),
		InsidersPercentHeld:     math.NaN(),
		InstitutionsPercentHeld: math.NaN(),
	}

	if p := result.AssetProfile; p != nil {
		out.Sector = p.Sector
		out.Industry = p.Industry
		out.Website = p.Website
		out.Summary = p.LongBusinessSummary
	}
	if k := result.DefaultKeyStatistics; k != nil {
		out.Beta = k.Beta.float()
	}
	if f := result.FinancialData; f != nil {
		out.CurrentRatio = f.CurrentRatio.float()
		out.TargetMeanPrice = f.TargetMeanPrice.float()
		out.TargetHighPrice = f.TargetHighPrice.float()
		out.TargetLowPrice = f.TargetLowPrice.float()
		out.RecommendationKey = f.RecommendationKey
		if n := f.NumberOfAnalystOpinions; n != nil && n.Raw != nil {
			out.NumberOfAnalysts = int(*n.Raw)
		}
	}
	if h := result.MajorHoldersBreakdown; h != nil {
		out.InsidersPercentHeld = h.InsidersPercentHeld.float()
		out.InstitutionsPercentHeld = h.InstitutionsPercentHeld.float()
	}

	return out, nil
}
