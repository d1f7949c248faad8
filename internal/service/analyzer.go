package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/feedbackhq/scoring-service/internal/insight"
	"github.com/feedbackhq/scoring-service/internal/models"
	"github.com/feedbackhq/scoring-service/internal/scoring"
	"github.com/feedbackhq/scoring-service/internal/sentiment"
	"github.com/feedbackhq/scoring-service/internal/utils"
)

const (
	improvementAreaThreshold = 70.0
	maxImprovementAreas      = 5
	maxOverallPriorities     = 5
	responseQualityBaseline  = 500.0
)

var defaultSuggestions = []string{
	"Implement regular team meetings to improve information sharing",
	"Create a centralized documentation system for project updates",
	"Establish clear communication channels for feedback and updates",
}

var defaultOverallPriorities = []models.Priority{
	{Text: "Improve team communication", Priority: models.PriorityHigh, Category: "TEAM_COLLABORATION"},
	{Text: "Enhance documentation processes", Priority: models.PriorityMedium, Category: "DOCUMENTATION"},
}

// AnalysisStore persists finished analyses. Persistence is fire-and-forget:
// a store failure never fails the scoring call.
type AnalysisStore interface {
	UpsertAnalysis(ctx context.Context, a *models.FeedbackAnalysis) error
}

// AnalyzerService runs the scoring pipeline for one submission: score each
// answered question, fold category aggregates, then derive overall metrics
// and the executive summary. Safe for concurrent use across submissions; the
// sentiment cache is the only shared state.
type AnalyzerService struct {
	Scorer     *scoring.QuestionScorer
	Sentiments *sentiment.Gateway
	Insight    *insight.Extractor
	Summary    *SummaryBuilder
	Store      AnalysisStore
	Logger     zerolog.Logger
}

func NewAnalyzerService(scorer *scoring.QuestionScorer, gw *sentiment.Gateway, ex *insight.Extractor, store AnalysisStore, logger zerolog.Logger) *AnalyzerService {
	return &AnalyzerService{
		Scorer:     scorer,
		Sentiments: gw,
		Insight:    ex,
		Summary:    NewSummaryBuilder(ex),
		Store:      store,
		Logger:     logger,
	}
}

// AnalyzeSubmission scores a submission end to end. It returns either a
// complete FeedbackAnalysis or a SubmissionError naming the failed stage.
func (s *AnalyzerService) AnalyzeSubmission(ctx context.Context, sub models.Submission) (*models.FeedbackAnalysis, error) {
	if len(sub.Responses) == 0 {
		return nil, submissionErr(sub.ID, StageValidate, ErrMissingResponses)
	}
	if len(sub.QuestionDetails) == 0 {
		return nil, submissionErr(sub.ID, StageValidate, ErrMissingQuestions)
	}

	s.primeCache(ctx, sub)

	aggregator := NewCategoryAggregator()
	var analyses []models.QuestionAnalysis
	for _, q := range sub.QuestionDetails {
		resp, ok := sub.Responses[q.ID]
		if !ok {
			continue
		}
		qa := s.analyzeQuestion(ctx, q, resp)
		analyses = append(analyses, qa)
		if qa.Category != "" {
			aggregator.Fold(qa.Category, qa)
		}
	}
	if len(analyses) == 0 {
		return nil, submissionErr(sub.ID, StageAggregate, ErrNoQuestionsAnalyzed)
	}

	overallScore := utils.NormalizeScore(meanScore(analyses))
	overallSentiment := scoring.SentimentFromScore(overallScore)
	satisfaction := satisfactionScore(analyses)

	comments := s.analyzeComments(ctx, sub.OverallComments)
	overallSuggestions := comments.Suggestions
	if len(overallSuggestions) == 0 {
		overallSuggestions = append([]string(nil), defaultSuggestions...)
	}

	overallPriorities := append([]models.Priority(nil), defaultOverallPriorities...)
	for _, qa := range analyses {
		overallPriorities = append(overallPriorities, qa.ImprovementPriorities...)
	}
	if len(overallPriorities) > maxOverallPriorities {
		overallPriorities = overallPriorities[:maxOverallPriorities]
	}

	submittedAt := sub.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now().UTC()
	}

	analysis := &models.FeedbackAnalysis{
		FeedbackID:         sub.ID,
		ProjectID:          sub.ProjectID,
		ProjectName:        sub.ProjectName,
		SubmittedBy:        sub.SubmittedBy,
		SubmittedAt:        submittedAt,
		ExecutiveSummary:   s.Summary.Build(analyses, comments.commentAnalysis),
		QuestionAnalyses:   analyses,
		OverallScore:       overallScore,
		OverallSentiment:   overallSentiment,
		OverallSuggestions: overallSuggestions,
		OverallPriorities:  overallPriorities,
		Categories:         aggregator.Categories(),
		SatisfactionScore:  satisfaction,
		ImprovementAreas:   improvementAreas(s.Insight, analyses),
		KeyMetrics:         keyMetrics(analyses, satisfaction, len(sub.QuestionDetails)),
		CreatedAt:          time.Now().UTC(),
	}

	if s.Store != nil {
		if err := s.Store.UpsertAnalysis(ctx, analysis); err != nil {
			s.Logger.Error().Err(err).Str("feedback_id", sub.ID).Msg("failed to persist analysis")
		}
	}
	return analysis, nil
}

// primeCache batch-classifies every text answer plus the overall comments in
// one pass so per-question scoring hits the cache.
func (s *AnalyzerService) primeCache(ctx context.Context, sub models.Submission) {
	var texts []string
	for _, q := range sub.QuestionDetails {
		if q.Type != models.QuestionTextBased {
			continue
		}
		resp, ok := sub.Responses[q.ID]
		if !ok {
			continue
		}
		if text := strings.TrimSpace(resp.AsString()); text != "" {
			texts = append(texts, text)
		}
	}
	if c := strings.TrimSpace(sub.OverallComments); c != "" {
		texts = append(texts, c)
	}
	if len(texts) > 0 {
		s.Sentiments.Prime(ctx, texts)
	}
}

func (s *AnalyzerService) analyzeQuestion(ctx context.Context, q models.Question, resp models.ResponseValue) models.QuestionAnalysis {
	score, sent := s.Scorer.Score(ctx, q, resp)

	qa := models.QuestionAnalysis{
		QuestionID:            q.ID,
		QuestionText:          q.Text,
		Type:                  q.Type,
		Response:              resp,
		Category:              q.Category,
		Score:                 score,
		Sentiment:             sent,
		Suggestions:           []string{},
		ImprovementPriorities: []models.Priority{},
	}

	text := strings.TrimSpace(resp.AsString())
	if q.Type == models.QuestionTextBased && text == "" {
		// empty text answers carry no suggestions
		return qa
	}

	// mine insights from the answer itself for text questions, and from the
	// question/answer pair when a rated question came back non-positive
	switch {
	case q.Type == models.QuestionTextBased:
		qa.Suggestions = s.Insight.Suggestions(text, q.Category)
		qa.ImprovementPriorities = s.Insight.Priorities(text, q.Category)
	case sent != models.SentimentPositive:
		contextText := q.Text + ": " + resp.AsString()
		qa.Suggestions = s.Insight.Suggestions(contextText, q.Category)
		qa.ImprovementPriorities = s.Insight.Priorities(contextText, q.Category)
	}

	if len(qa.Suggestions) == 0 {
		qa.Suggestions = fallbackSuggestions(s.Insight, q)
	}
	if len(qa.ImprovementPriorities) == 0 && sent != models.SentimentPositive {
		target := "team communication"
		if q.Category != "" {
			target = strings.ReplaceAll(strings.ToLower(q.Category), "_", " ")
		}
		qa.ImprovementPriorities = []models.Priority{
			{Text: "Improve " + target, Priority: models.PriorityHigh, Source: "analysis"},
		}
	}
	return qa
}

func fallbackSuggestions(ex *insight.Extractor, q models.Question) []string {
	if q.Category == "" {
		return append([]string(nil), defaultSuggestions...)
	}
	pool := ex.DefaultRecommendations(q.Category)
	if len(pool) > 2 {
		pool = pool[:2]
	}
	return append(pool, "Gather more detailed feedback about "+strings.ToLower(q.Text))
}

// commentInsight is the analyzed overall-comments block: the summary-facing
// fields plus suggestions feeding overall_suggestions.
type commentInsight struct {
	commentAnalysis
	Suggestions []string
}

func (s *AnalyzerService) analyzeComments(ctx context.Context, comments string) commentInsight {
	trimmed := strings.TrimSpace(comments)
	if trimmed == "" {
		return commentInsight{}
	}
	res := s.Sentiments.Analyze(ctx, trimmed)
	return commentInsight{
		commentAnalysis: commentAnalysis{
			Present:   true,
			Sentiment: res.Sentiment,
			Keywords:  s.Insight.Keywords(trimmed),
		},
		Suggestions: s.Insight.Suggestions(trimmed, ""),
	}
}

// satisfactionScore derives satisfaction from the sentiment distribution:
// full credit for positive answers, half credit for neutral.
func satisfactionScore(analyses []models.QuestionAnalysis) float64 {
	pos, neu, _ := sentimentCounts(analyses)
	total := len(analyses)
	if total == 0 {
		return 50
	}
	posPct := float64(pos) / float64(total) * 100
	neuPct := float64(neu) / float64(total) * 100
	return utils.NormalizeScore(posPct + 0.5*neuPct)
}

// improvementAreas lists categories averaging below 70, worst first, with up
// to 3 suggestions each, capped at 5 areas. Category averages here are true
// means over contributing questions, unlike the aggregator's pairwise fold.
func improvementAreas(ex *insight.Extractor, analyses []models.QuestionAnalysis) []models.ImprovementArea {
	areas := []models.ImprovementArea{}
	for _, cat := range categoryOrder(analyses) {
		avg := mean(categoryScores(analyses, cat))
		if avg >= improvementAreaThreshold {
			continue
		}
		var suggestions []string
		for _, qa := range analyses {
			if qa.Category == cat {
				suggestions = append(suggestions, qa.Suggestions...)
			}
		}
		if len(suggestions) == 0 {
			name := strings.ReplaceAll(strings.ToLower(cat), "_", " ")
			suggestions = []string{
				"Improve " + name + " processes",
				"Establish clear guidelines for " + name,
			}
		}
		areas = append(areas, models.ImprovementArea{
			Category:    cat,
			Score:       utils.NormalizeScore(avg),
			Suggestions: dedupCap(suggestions, 3),
		})
	}
	sort.SliceStable(areas, func(i, j int) bool { return areas[i].Score < areas[j].Score })
	if len(areas) > maxImprovementAreas {
		areas = areas[:maxImprovementAreas]
	}
	return areas
}

func keyMetrics(analyses []models.QuestionAnalysis, satisfaction float64, totalQuestions int) models.KeyMetrics {
	pos, neu, neg := sentimentCounts(analyses)
	total := len(analyses)

	distribution := map[string]float64{
		string(models.SentimentPositive): 0,
		string(models.SentimentNeutral):  0,
		string(models.SentimentNegative): 0,
	}
	if total > 0 {
		distribution[string(models.SentimentPositive)] = utils.RoundPct(float64(pos) / float64(total) * 100)
		distribution[string(models.SentimentNeutral)] = utils.RoundPct(float64(neu) / float64(total) * 100)
		distribution[string(models.SentimentNegative)] = utils.RoundPct(float64(neg) / float64(total) * 100)
	}

	completion := 0.0
	if totalQuestions > 0 {
		completion = utils.RoundPct(float64(total) / float64(totalQuestions) * 100)
	}

	return models.KeyMetrics{
		SatisfactionScore:     satisfaction,
		ResponseQuality:       responseQuality(analyses),
		SentimentDistribution: distribution,
		CompletionRate:        completion,
	}
}

// responseQuality scores the depth of text answers: mean length against a
// 500-char baseline. Submissions with no text questions sit at a neutral 50.
func responseQuality(analyses []models.QuestionAnalysis) float64 {
	var lengths []float64
	for _, qa := range analyses {
		if qa.Type == models.QuestionTextBased {
			lengths = append(lengths, float64(len(qa.Response.AsString())))
		}
	}
	if len(lengths) == 0 {
		return 50
	}
	return utils.NormalizeScore(mean(lengths) / responseQualityBaseline * 100)
}
