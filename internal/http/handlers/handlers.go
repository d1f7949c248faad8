package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/feedbackhq/scoring-service/internal/db"
	"github.com/feedbackhq/scoring-service/internal/feedback"
	"github.com/feedbackhq/scoring-service/internal/insight"
	"github.com/feedbackhq/scoring-service/internal/models"
	"github.com/feedbackhq/scoring-service/internal/sentiment"
	"github.com/feedbackhq/scoring-service/internal/service"
)

type Handler struct {
	Store      *db.Store
	Analyzer   *service.AnalyzerService
	Processor  *service.BatchProcessor
	Sentiments *sentiment.Gateway
	Insight    *insight.Extractor
	Validator  *validator.Validate
	Logger     zerolog.Logger
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Score a feedback submission
// @Description Run the scoring pipeline on a submission body and persist the analysis
// @Tags scoring
// @Accept json
// @Produce json
// @Param submission body models.Submission true "submission"
// @Success 200 {object} models.FeedbackAnalysis
// @Failure 400 {object} map[string]any
// @Failure 422 {object} map[string]any
// @Router /api/score [post]
func (h *Handler) Score(c *gin.Context) {
	var sub models.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid submission body", err.Error())
		return
	}
	if sub.ID == "" {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "submission id is required", nil)
		return
	}

	analysis, err := h.Analyzer.AnalyzeSubmission(c.Request.Context(), sub)
	if err != nil {
		writeSubmissionError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

type analyzeTextRequest struct {
	Text     string `json:"text" validate:"required"`
	Category string `json:"category" validate:"omitempty,max=64"`
}

type analyzeTextResponse struct {
	Score       float64          `json:"score"`
	Sentiment   models.Sentiment `json:"sentiment"`
	Keywords    []string         `json:"keywords"`
	Suggestions []string         `json:"suggestions"`
}

// @Summary Analyze a piece of free text
// @Description Sentiment, keywords and suggestions for ad-hoc text
// @Tags scoring
// @Accept json
// @Produce json
// @Param request body analyzeTextRequest true "text to analyze"
// @Success 200 {object} analyzeTextResponse
// @Failure 400 {object} map[string]any
// @Router /api/analyze/text [post]
func (h *Handler) AnalyzeText(c *gin.Context) {
	var req analyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "text is required", err.Error())
		return
	}

	res := h.Sentiments.Analyze(c.Request.Context(), req.Text)
	c.JSON(http.StatusOK, analyzeTextResponse{
		Score:       res.Score,
		Sentiment:   res.Sentiment,
		Keywords:    h.Insight.Keywords(req.Text),
		Suggestions: h.Insight.Suggestions(req.Text, req.Category),
	})
}

// @Summary Fetch a stored analysis
// @Tags analysis
// @Produce json
// @Param id path string true "feedback id"
// @Success 200 {object} models.FeedbackAnalysis
// @Failure 404 {object} map[string]any
// @Router /api/analysis/feedback/{id} [get]
func (h *Handler) GetAnalysis(c *gin.Context) {
	analysis, ok := h.loadAnalysis(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// @Summary Satisfaction view of a stored analysis
// @Tags analysis
// @Produce json
// @Param id path string true "feedback id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/analysis/satisfaction/{id} [get]
func (h *Handler) Satisfaction(c *gin.Context) {
	analysis, ok := h.loadAnalysis(c)
	if !ok {
		return
	}

	categories := gin.H{}
	for name, ca := range analysis.Categories {
		categories[name] = gin.H{
			"score":              ca.Score,
			"satisfaction_level": satisfactionLevel(ca.Score),
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"feedback_id":            analysis.FeedbackID,
		"satisfaction_score":     analysis.SatisfactionScore,
		"satisfaction_level":     satisfactionLevel(analysis.SatisfactionScore),
		"sentiment_distribution": analysis.KeyMetrics.SentimentDistribution,
		"categories":             categories,
	})
}

// @Summary Insight view of a stored analysis
// @Tags analysis
// @Produce json
// @Param id path string true "feedback id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/analysis/insights/{id} [get]
func (h *Handler) Insights(c *gin.Context) {
	analysis, ok := h.loadAnalysis(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"feedback_id":       analysis.FeedbackID,
		"overall_rating":    analysis.ExecutiveSummary.OverallRating,
		"key_insights":      analysis.ExecutiveSummary.KeyInsights,
		"action_items":      analysis.ExecutiveSummary.ActionItems,
		"improvement_areas": analysis.ImprovementAreas,
		"priorities":        analysis.OverallPriorities,
	})
}

// @Summary List recent analyses
// @Tags analysis
// @Produce json
// @Param limit query int false "max rows (default 50)"
// @Success 200 {array} db.AnalysisSummary
// @Router /api/analyses [get]
func (h *Handler) ListAnalyses(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := h.Store.ListAnalyses(c.Request.Context(), limit)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "failed to list analyses", err.Error())
		return
	}
	if items == nil {
		items = []db.AnalysisSummary{}
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Score all upstream submissions
// @Description Fetch every submission from the feedback service and score them on a worker pool
// @Tags admin
// @Produce json
// @Success 200 {object} service.RunResult
// @Failure 502 {object} map[string]any
// @Router /api/process [post]
func (h *Handler) Process(c *gin.Context) {
	result, err := h.Processor.ProcessAll(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusBadGateway, "UPSTREAM_ERROR", "failed to fetch submissions", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Re-score one upstream submission
// @Tags admin
// @Produce json
// @Param id path string true "feedback id"
// @Success 200 {object} models.FeedbackAnalysis
// @Failure 404 {object} map[string]any
// @Router /api/process/{id} [post]
func (h *Handler) ProcessOne(c *gin.Context) {
	analysis, err := h.Processor.ProcessOne(c.Request.Context(), c.Param("id"))
	if errors.Is(err, feedback.ErrNotFound) {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "submission not found", nil)
		return
	}
	if err != nil {
		writeSubmissionError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (h *Handler) loadAnalysis(c *gin.Context) (*models.FeedbackAnalysis, bool) {
	analysis, err := h.Store.GetAnalysis(c.Request.Context(), c.Param("id"))
	if errors.Is(err, db.ErrNotFound) {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "analysis not found", nil)
		return nil, false
	}
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "failed to load analysis", err.Error())
		return nil, false
	}
	return analysis, true
}

func writeSubmissionError(c *gin.Context, err error) {
	var subErr *service.SubmissionError
	if errors.As(err, &subErr) {
		status := http.StatusUnprocessableEntity
		code := "SCORING_FAILED"
		switch subErr.Stage {
		case service.StageValidate:
			status = http.StatusBadRequest
			code = "INVALID_SUBMISSION"
		case service.StageAggregate:
			code = "EMPTY_ANALYSIS"
		}
		writeError(c, status, code, subErr.Err.Error(), gin.H{
			"submission_id": subErr.SubmissionID,
			"stage":         subErr.Stage,
		})
		return
	}
	writeError(c, http.StatusInternalServerError, "INTERNAL", "scoring failed", err.Error())
}

func satisfactionLevel(score float64) string {
	switch {
	case score >= 75:
		return "High"
	case score >= 50:
		return "Moderate"
	default:
		return "Low"
	}
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
