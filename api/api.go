package api

import (
	"fmt"
	"time"

	"stocklab/internal/app"
	"stocklab/internal/config"
	"stocklab/internal/logger"
	"stocklab/internal/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ApiHandler struct {
	AnalysisService app.AnalysisService
	// Narrative is nil when no OpenAI key is configured; /explain then
	// answers 503.
	Narrative repository.NarrativeRepository
	Config    *config.Config
}

func (m ApiHandler) StartApi(port int) error {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to stocklab"})
	})
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"status": "ok"})
	})
	router.POST("/analyze", m.analyze)
	router.POST("/batch", m.batch)
	router.POST("/screen", m.screen)
	router.POST("/explain", m.explain)

	return router.Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, 500)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.FromContext(c.Request.Context()).Warnf("request failed: %v", err)
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	requestID := uuid.New()
	ctx.Header("X-Request-ID", requestID.String())
	start := time.Now().UTC()

	ctx.Next()

	logger.FromContext(ctx.Request.Context()).Infow("handled request",
		"requestId", requestID.String(),
		"method", ctx.Request.Method,
		"route", ctx.FullPath(),
		"status", ctx.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
	)
}
