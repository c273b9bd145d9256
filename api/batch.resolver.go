package api

import (
	"fmt"
	"time"

	"stocklab/internal/app"

	"github.com/gin-gonic/gin"
)

type batchRequest struct {
	Symbols   []string `json:"symbols"`
	BatchSize int      `json:"batchSize"`
}

type batchResponse struct {
	RunID       string           `json:"runId"`
	StartedAt   time.Time        `json:"startedAt"`
	MarketState string           `json:"marketState,omitempty"`
	Summary     map[string]int   `json:"summary"`
	Results     []tickerResponse `json:"results"`
}

func (m ApiHandler) batch(c *gin.Context) {
	var requestBody batchRequest

	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(fmt.Errorf("failed to read request body: %w", err), c)
		return
	}
	if len(requestBody.Symbols) == 0 {
		returnErrorJsonCode(fmt.Errorf("symbols are required"), c, 400)
		return
	}

	result, err := m.AnalysisService.AnalyzeBatch(c.Request.Context(), requestBody.Symbols, app.BatchOptions{
		BatchSize: requestBody.BatchSize,
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := batchResponse{
		RunID:     result.RunID.String(),
		StartedAt: result.StartedAt,
		Summary:   result.Summary,
		Results:   make([]tickerResponse, 0, len(result.Results)),
	}
	if result.Market != nil {
		out.MarketState = result.Market.State
	}
	for _, ticker := range result.Results {
		out.Results = append(out.Results, toTickerResponse(ticker))
	}

	c.JSON(200, out)
}
