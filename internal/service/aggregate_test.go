package service

import (
	"testing"

	"github.com/feedbackhq/scoring-service/internal/models"
)

func TestFoldSeedsFirstObservation(t *testing.T) {
	agg := NewCategoryAggregator()
	ca := agg.Fold("COMMUNICATION", models.QuestionAnalysis{
		Score:       80,
		Sentiment:   models.SentimentPositive,
		Suggestions: []string{"a", "b"},
	})
	if ca.Score != 80 {
		t.Fatalf("score = %v, want 80", ca.Score)
	}
	if ca.Sentiment != models.SentimentPositive {
		t.Fatalf("sentiment = %s", ca.Sentiment)
	}
	if len(ca.Recommendations) != 2 {
		t.Fatalf("recommendations = %v", ca.Recommendations)
	}
}

func TestFoldPairwiseAverageBiasesTowardRecent(t *testing.T) {
	agg := NewCategoryAggregator()
	qa := func(score float64) models.QuestionAnalysis {
		return models.QuestionAnalysis{Score: score, Sentiment: models.SentimentNeutral}
	}
	agg.Fold("PM", qa(100))
	agg.Fold("PM", qa(100))
	ca := agg.Fold("PM", qa(40))

	// pairwise fold: ((100+100)/2 + 40)/2 = 70, not the true mean 80
	if ca.Score != 70 {
		t.Fatalf("score = %v, want 70", ca.Score)
	}
}

func TestFoldOverwritesSentimentWithMostRecent(t *testing.T) {
	agg := NewCategoryAggregator()
	agg.Fold("PM", models.QuestionAnalysis{Score: 90, Sentiment: models.SentimentPositive})
	ca := agg.Fold("PM", models.QuestionAnalysis{Score: 20, Sentiment: models.SentimentNegative})
	if ca.Sentiment != models.SentimentNegative {
		t.Fatalf("sentiment = %s, want NEGATIVE", ca.Sentiment)
	}
}

func TestFoldDeduplicatesAndCapsRecommendations(t *testing.T) {
	agg := NewCategoryAggregator()
	agg.Fold("PM", models.QuestionAnalysis{Score: 50, Suggestions: []string{"a", "b"}})
	ca := agg.Fold("PM", models.QuestionAnalysis{Score: 50, Suggestions: []string{"b", "c", "d"}})
	if len(ca.Recommendations) != 3 {
		t.Fatalf("recommendations = %v, want 3", ca.Recommendations)
	}
	if ca.Recommendations[0] != "a" || ca.Recommendations[1] != "b" || ca.Recommendations[2] != "c" {
		t.Fatalf("unexpected order: %v", ca.Recommendations)
	}
}

func TestAggregatorTracksFirstSeenOrder(t *testing.T) {
	agg := NewCategoryAggregator()
	agg.Fold("B", models.QuestionAnalysis{Score: 50})
	agg.Fold("A", models.QuestionAnalysis{Score: 50})
	agg.Fold("B", models.QuestionAnalysis{Score: 50})
	order := agg.Order()
	if len(order) != 2 || order[0] != "B" || order[1] != "A" {
		t.Fatalf("order = %v", order)
	}
}
