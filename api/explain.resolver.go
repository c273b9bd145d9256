package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

type explainRequest struct {
	Symbol string `json:"symbol"`
}

type explainResponse struct {
	Symbol    string `json:"symbol"`
	Narrative string `json:"narrative"`
}

func (m ApiHandler) explain(c *gin.Context) {
	if m.Narrative == nil {
		returnErrorJsonCode(fmt.Errorf("narrative generation is not configured"), c, 503)
		return
	}

	var requestBody explainRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(fmt.Errorf("failed to read request body: %w", err), c)
		return
	}
	if requestBody.Symbol == "" {
		returnErrorJsonCode(fmt.Errorf("symbol is required"), c, 400)
		return
	}

	result := m.AnalysisService.AnalyzeTicker(c.Request.Context(), requestBody.Symbol)
	if result.Err != nil {
		returnErrorJson(result.Err, c)
		return
	}

	narrative, err := m.Narrative.ExplainResult(c.Request.Context(), result)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, explainResponse{
		Symbol:    result.Symbol,
		Narrative: narrative,
	})
}
