package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/feedbackhq/scoring-service/internal/insight"
	"github.com/feedbackhq/scoring-service/internal/models"
	"github.com/feedbackhq/scoring-service/internal/scoring"
	"github.com/feedbackhq/scoring-service/internal/sentiment"
	"github.com/feedbackhq/scoring-service/internal/service"
)

func newTestHandler() *Handler {
	gin.SetMode(gin.TestMode)
	gw := sentiment.NewGateway(sentiment.MockClassifier{ModelVersion: "test"}, sentiment.NewMemoryCache(), zerolog.Nop())
	ex := insight.NewExtractor(nil)
	analyzer := service.NewAnalyzerService(scoring.NewQuestionScorer(gw), gw, ex, nil, zerolog.Nop())
	return &Handler{
		Analyzer:   analyzer,
		Sentiments: gw,
		Insight:    ex,
		Validator:  validator.New(),
		Logger:     zerolog.Nop(),
	}
}

func performJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestScoreEndpoint(t *testing.T) {
	h := newTestHandler()
	r := gin.New()
	r.POST("/api/score", h.Score)

	sub := models.Submission{
		ID: "fb-1",
		Responses: map[string]models.ResponseValue{
			"q1": models.SingleResponse("Very Satisfied"),
		},
		QuestionDetails: []models.Question{
			{ID: "q1", Text: "Overall?", Type: models.QuestionSingleChoice, Category: "SATISFACTION"},
		},
	}
	w := performJSON(t, r, http.MethodPost, "/api/score", sub)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var analysis models.FeedbackAnalysis
	if err := json.Unmarshal(w.Body.Bytes(), &analysis); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if analysis.FeedbackID != "fb-1" {
		t.Fatalf("feedback_id = %q", analysis.FeedbackID)
	}
	if analysis.OverallScore != 100.0 {
		t.Fatalf("overall score = %v, want 100.0", analysis.OverallScore)
	}
}

func TestScoreEndpointMissingID(t *testing.T) {
	h := newTestHandler()
	r := gin.New()
	r.POST("/api/score", h.Score)

	w := performJSON(t, r, http.MethodPost, "/api/score", gin.H{"responses": gin.H{}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestScoreEndpointEmptyResponses(t *testing.T) {
	h := newTestHandler()
	r := gin.New()
	r.POST("/api/score", h.Score)

	sub := models.Submission{
		ID:              "fb-2",
		Responses:       map[string]models.ResponseValue{},
		QuestionDetails: []models.Question{{ID: "q1", Type: models.QuestionSingleChoice}},
	}
	w := performJSON(t, r, http.MethodPost, "/api/score", sub)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body = %s", w.Code, w.Body.String())
	}

	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				Stage string `json:"stage"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if payload.Error.Code != "INVALID_SUBMISSION" {
		t.Fatalf("error code = %q", payload.Error.Code)
	}
	if payload.Error.Details.Stage != service.StageValidate {
		t.Fatalf("stage = %q", payload.Error.Details.Stage)
	}
}

func TestAnalyzeTextEndpoint(t *testing.T) {
	h := newTestHandler()
	r := gin.New()
	r.POST("/api/analyze/text", h.AnalyzeText)

	w := performJSON(t, r, http.MethodPost, "/api/analyze/text", gin.H{
		"text":     "The documentation is unclear and we should improve the examples.",
		"category": "DOCUMENTATION",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp analyzeTextResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Sentiment == "" {
		t.Fatalf("missing sentiment")
	}
	if resp.Score < 0 || resp.Score > 100 {
		t.Fatalf("score out of range: %v", resp.Score)
	}
	if len(resp.Keywords) == 0 {
		t.Fatalf("expected keywords")
	}
	if len(resp.Suggestions) == 0 {
		t.Fatalf("expected suggestions")
	}
}

func TestAnalyzeTextEndpointRequiresText(t *testing.T) {
	h := newTestHandler()
	r := gin.New()
	r.POST("/api/analyze/text", h.AnalyzeText)

	w := performJSON(t, r, http.MethodPost, "/api/analyze/text", gin.H{"category": "DOCUMENTATION"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
