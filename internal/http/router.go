package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/feedbackhq/scoring-service/internal/config"
	"github.com/feedbackhq/scoring-service/internal/db"
	"github.com/feedbackhq/scoring-service/internal/http/handlers"
	"github.com/feedbackhq/scoring-service/internal/http/middleware"
	"github.com/feedbackhq/scoring-service/internal/insight"
	"github.com/feedbackhq/scoring-service/internal/sentiment"
	"github.com/feedbackhq/scoring-service/internal/service"

	_ "github.com/feedbackhq/scoring-service/docs"
)

func Router(cfg config.Config, store *db.Store, analyzer *service.AnalyzerService, processor *service.BatchProcessor, gw *sentiment.Gateway, ex *insight.Extractor, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store:      store,
		Analyzer:   analyzer,
		Processor:  processor,
		Sentiments: gw,
		Insight:    ex,
		Validator:  validator.New(),
		Logger:     logger,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.POST("/score", h.Score)
		api.POST("/analyze/text", h.AnalyzeText)
		api.GET("/analyses", h.ListAnalyses)
		api.GET("/analysis/feedback/:id", h.GetAnalysis)
		api.GET("/analysis/satisfaction/:id", h.Satisfaction)
		api.GET("/analysis/insights/:id", h.Insights)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.POST("/process", h.Process)
		admin.POST("/process/:id", h.ProcessOne)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
