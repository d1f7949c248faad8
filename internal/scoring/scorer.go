package scoring

import (
	"context"
	"strings"

	"github.com/feedbackhq/scoring-service/internal/models"
	"github.com/feedbackhq/scoring-service/internal/sentiment"
	"github.com/feedbackhq/scoring-service/internal/utils"
)

// singleChoiceScores maps ordinal satisfaction answers to scores. Lookup is
// case-insensitive; unmapped answers score a neutral 50.
var singleChoiceScores = map[string]float64{
	"very satisfied":    100,
	"satisfied":         80,
	"neutral":           60,
	"dissatisfied":      40,
	"very dissatisfied": 20,
	"5":                 100,
	"4":                 80,
	"3":                 60,
	"2":                 40,
	"1":                 20,
}

// sentimentScores maps explicit sentiment answers to scores.
var sentimentScores = map[models.Sentiment]float64{
	models.SentimentPositive: 100,
	models.SentimentNeutral:  50,
	models.SentimentNegative: 0,
}

type strategy func(ctx context.Context, s *QuestionScorer, q models.Question, r models.ResponseValue) (float64, models.Sentiment)

var strategies = map[models.QuestionType]strategy{
	models.QuestionSingleChoice:   scoreSingleChoice,
	models.QuestionMultipleChoice: scoreMultipleChoice,
	models.QuestionTextBased:      scoreText,
	models.QuestionSentiment:      scoreSentimentChoice,
}

// QuestionScorer scores one answered question by its declared type. Free-text
// answers go through the sentiment gateway.
type QuestionScorer struct {
	Sentiments *sentiment.Gateway
}

func NewQuestionScorer(gw *sentiment.Gateway) *QuestionScorer {
	return &QuestionScorer{Sentiments: gw}
}

// Score returns a normalized score in [0,100] (one decimal) and a sentiment
// label. Unknown question types score a neutral 50.
func (s *QuestionScorer) Score(ctx context.Context, q models.Question, r models.ResponseValue) (float64, models.Sentiment) {
	fn, ok := strategies[q.Type]
	if !ok {
		return 50, models.SentimentNeutral
	}
	score, sent := fn(ctx, s, q, r)
	return utils.NormalizeScore(score), sent
}

func scoreSingleChoice(_ context.Context, _ *QuestionScorer, _ models.Question, r models.ResponseValue) (float64, models.Sentiment) {
	answer := strings.ToLower(strings.TrimSpace(r.AsString()))
	score, ok := singleChoiceScores[answer]
	if !ok {
		score = 50
	}
	return score, SentimentFromScore(score)
}

func scoreMultipleChoice(_ context.Context, _ *QuestionScorer, q models.Question, r models.ResponseValue) (float64, models.Sentiment) {
	if len(q.Choices) == 0 {
		return 50, models.SentimentNeutral
	}
	ratio := float64(len(r.AsList())) / float64(len(q.Choices))
	var score float64
	if q.SelectionPolarity == models.PolarityPositive {
		score = ratio * 100
	} else {
		// default polarity: selections mark unmet needs, more means worse
		score = 100 - ratio*100
	}
	return score, SentimentFromScore(utils.NormalizeScore(score))
}

func scoreSentimentChoice(ctx context.Context, s *QuestionScorer, _ models.Question, r models.ResponseValue) (float64, models.Sentiment) {
	answer := models.Sentiment(strings.ToUpper(strings.TrimSpace(r.AsString())))
	if score, ok := sentimentScores[answer]; ok {
		return score, answer
	}
	// free-form answer, treat it as text
	res := s.Sentiments.Analyze(ctx, r.AsString())
	return res.Score, res.Sentiment
}

func scoreText(ctx context.Context, s *QuestionScorer, _ models.Question, r models.ResponseValue) (float64, models.Sentiment) {
	text := strings.TrimSpace(r.AsString())
	if text == "" {
		return 0, models.SentimentNeutral
	}
	res := s.Sentiments.Analyze(ctx, text)
	return res.Score, res.Sentiment
}

// SentimentFromScore maps a normalized score to a sentiment label using the
// engine-wide thresholds: >=70 positive, <=40 negative, neutral between.
func SentimentFromScore(score float64) models.Sentiment {
	switch {
	case score >= 70:
		return models.SentimentPositive
	case score <= 40:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}
