package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

type screenRequest struct {
	Symbols    []string `json:"symbols"`
	Expression string   `json:"expression"`
}

type screenResponse struct {
	RunID      string           `json:"runId"`
	Expression string           `json:"expression"`
	Evaluated  int              `json:"evaluated"`
	Matches    []tickerResponse `json:"matches"`
}

func (m ApiHandler) screen(c *gin.Context) {
	var requestBody screenRequest

	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(fmt.Errorf("failed to read request body: %w", err), c)
		return
	}
	if len(requestBody.Symbols) == 0 {
		returnErrorJsonCode(fmt.Errorf("symbols are required"), c, 400)
		return
	}

	result, err := m.AnalysisService.Screen(c.Request.Context(), requestBody.Symbols, requestBody.Expression)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := screenResponse{
		RunID:      result.RunID.String(),
		Expression: result.Expression,
		Evaluated:  result.Evaluated,
		Matches:    make([]tickerResponse, 0, len(result.Matches)),
	}
	for _, ticker := range result.Matches {
		out.Matches = append(out.Matches, toTickerResponse(ticker))
	}

	c.JSON(200, out)
}
