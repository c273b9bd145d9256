package api

import (
	"fmt"
	"math"
	"time"

	"stocklab/internal/app"

	"github.com/gin-gonic/gin"
)

type analyzeRequest struct {
	Symbol string `json:"symbol"`
}

// tickerResponse is the JSON shape of one analyzed ticker. Engine
// sections carry NaN for metrics they could not compute and
// encoding/json cannot represent NaN, so the response keeps sanitized
// scalars plus a filtered metric map instead of the raw sections.
type tickerResponse struct {
	Symbol     string    `json:"symbol"`
	AnalyzedAt time.Time `json:"analyzedAt"`
	Error      string    `json:"error,omitempty"`

	CompanyName  string   `json:"companyName,omitempty"`
	CurrentPrice *float64 `json:"currentPrice,omitempty"`
	MarketCap    int64    `json:"marketCap,omitempty"`

	MarketState string `json:"marketState,omitempty"`

	FundamentalScore *float64 `json:"fundamentalScore,omitempty"`
	TechnicalScore   *float64 `json:"technicalScore,omitempty"`
	CombinedScore    *float64 `json:"combinedScore,omitempty"`
	Recommendation   string   `json:"recommendation,omitempty"`
	Action           string   `json:"action,omitempty"`

	ValuationScore  *float64 `json:"valuationScore,omitempty"`
	ValuationRating string   `json:"valuationRating,omitempty"`

	TechnicalSignal   string                     `json:"technicalSignal,omitempty"`
	TechnicalSections map[string]sectionResponse `json:"technicalSections,omitempty"`

	Metrics map[string]float64 `json:"metrics,omitempty"`

	Position *positionResponse `json:"position,omitempty"`
}

type sectionResponse struct {
	Score  int    `json:"score"`
	Max    int    `json:"max"`
	Signal string `json:"signal"`
}

type positionResponse struct {
	EntryPrice    float64 `json:"entryPrice"`
	StopLoss      float64 `json:"stopLoss"`
	Shares        int     `json:"shares"`
	PositionValue float64 `json:"positionValue"`
	RiskAmount    float64 `json:"riskAmount"`
}

func (m ApiHandler) analyze(c *gin.Context) {
	var requestBody analyzeRequest

	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(fmt.Errorf("failed to read request body: %w", err), c)
		return
	}
	if requestBody.Symbol == "" {
		returnErrorJsonCode(fmt.Errorf("symbol is required"), c, 400)
		return
	}

	result := m.AnalysisService.AnalyzeTicker(c.Request.Context(), requestBody.Symbol)
	c.JSON(200, toTickerResponse(result))
}

func toTickerResponse(result *app.TickerResult) tickerResponse {
	out := tickerResponse{
		Symbol:     result.Symbol,
		AnalyzedAt: result.AnalyzedAt,
	}
	if result.Err != nil {
		out.Error = result.Err.Error()
	}
	if q := result.Quote; q != nil {
		out.CompanyName = q.LongName
		out.CurrentPrice = floatPtr(q.Price)
		out.MarketCap = q.MarketCap
	}
	if result.Market != nil {
		out.MarketState = result.Market.State
	}

	if f := result.Fundamentals; f != nil {
		out.Metrics = map[string]float64{}
		for name, value := range f.Flatten() {
			if math.IsNaN(value) || math.IsInf(value, 0) {
				continue
			}
			out.Metrics[name] = value
		}
	}

	if tech := result.Technicals; tech != nil {
		out.TechnicalSignal = tech.Signal
		out.TechnicalSections = map[string]sectionResponse{
			"movingAverages": {
				Score:  tech.MovingAverages.Score,
				Max:    tech.MovingAverages.MaxScore,
				Signal: tech.MovingAverages.Signal,
			},
			"macd": {
				Score:  tech.MACD.Score,
				Max:    tech.MACD.MaxScore,
				Signal: tech.MACD.Signal,
			},
			"rsi": {
				Score:  tech.RSI.Score,
				Max:    tech.RSI.MaxScore,
				Signal: tech.RSI.Signal,
			},
			"volume": {
				Score:  tech.Volume.Score,
				Max:    tech.Volume.MaxScore,
				Signal: tech.Volume.Signal,
			},
			"supportResistance": {
				Score:  tech.SupportResistance.Score,
				Max:    tech.SupportResistance.MaxScore,
				Signal: tech.SupportResistance.Signal,
			},
		}
	}

	if v := result.Valuation; v != nil {
		out.ValuationScore = floatPtr(v.Score)
		out.ValuationRating = v.Recommendation
	}

	if s := result.Scorecard; s != nil {
		out.FundamentalScore = floatPtr(s.FundamentalScore)
		out.TechnicalScore = floatPtr(s.TechnicalScore)
		out.CombinedScore = floatPtr(s.CombinedScore)
		out.Recommendation = s.Recommendation
		out.Action = s.Action
		if p := s.Position; p != nil {
			out.Position = &positionResponse{
				EntryPrice:    p.EntryPrice,
				StopLoss:      p.StopLoss,
				Shares:        p.Shares,
				PositionValue: p.PositionValue,
				RiskAmount:    p.ActualRisk,
			}
		}
	}

	return out
}

func floatPtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
