package scoring

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/feedbackhq/scoring-service/internal/models"
	"github.com/feedbackhq/scoring-service/internal/sentiment"
)

func newScorer() *QuestionScorer {
	gw := sentiment.NewGateway(nil, nil, zerolog.Nop())
	return NewQuestionScorer(gw)
}

func TestScoreSingleChoice(t *testing.T) {
	cases := []struct {
		answer    string
		wantScore float64
		wantSent  models.Sentiment
	}{
		{"Very Satisfied", 100, models.SentimentPositive},
		{"Satisfied", 80, models.SentimentPositive},
		{"Neutral", 60, models.SentimentNeutral},
		{"Dissatisfied", 40, models.SentimentNegative},
		{"Very Dissatisfied", 20, models.SentimentNegative},
		{"5", 100, models.SentimentPositive},
		{"1", 20, models.SentimentNegative},
		{"Banana", 50, models.SentimentNeutral},
		{"  satisfied  ", 80, models.SentimentPositive},
	}
	s := newScorer()
	q := models.Question{ID: "q1", Type: models.QuestionSingleChoice}
	for _, tc := range cases {
		score, sent := s.Score(context.Background(), q, models.SingleResponse(tc.answer))
		if score != tc.wantScore {
			t.Fatalf("%q: score = %v, want %v", tc.answer, score, tc.wantScore)
		}
		if sent != tc.wantSent {
			t.Fatalf("%q: sentiment = %s, want %s", tc.answer, sent, tc.wantSent)
		}
	}
}

func TestScoreMultipleChoiceImprovementPolarity(t *testing.T) {
	s := newScorer()
	q := models.Question{
		ID:      "q2",
		Type:    models.QuestionMultipleChoice,
		Choices: []string{"a", "b", "c", "d"},
	}
	score, sent := s.Score(context.Background(), q, models.MultiResponse("a", "b"))
	if score != 50.0 {
		t.Fatalf("score = %v, want 50.0", score)
	}
	if sent != models.SentimentNeutral {
		t.Fatalf("sentiment = %s, want NEUTRAL", sent)
	}

	score, _ = s.Score(context.Background(), q, models.MultiResponse("a", "b", "c", "d"))
	if score != 0.0 {
		t.Fatalf("all selected: score = %v, want 0.0", score)
	}
}

func TestScoreMultipleChoicePositivePolarity(t *testing.T) {
	s := newScorer()
	q := models.Question{
		ID:                "q2",
		Type:              models.QuestionMultipleChoice,
		Choices:           []string{"a", "b", "c", "d"},
		SelectionPolarity: models.PolarityPositive,
	}
	score, sent := s.Score(context.Background(), q, models.MultiResponse("a", "b"))
	if score != 50.0 {
		t.Fatalf("score = %v, want 50.0", score)
	}
	if sent != models.SentimentNeutral {
		t.Fatalf("sentiment = %s, want NEUTRAL", sent)
	}

	score, sent = s.Score(context.Background(), q, models.MultiResponse("a", "b", "c", "d"))
	if score != 100.0 || sent != models.SentimentPositive {
		t.Fatalf("all selected: got %v %s, want 100.0 POSITIVE", score, sent)
	}
}

func TestScoreMultipleChoiceNoDeclaredChoices(t *testing.T) {
	s := newScorer()
	q := models.Question{ID: "q2", Type: models.QuestionMultipleChoice}
	score, sent := s.Score(context.Background(), q, models.MultiResponse("a"))
	if score != 50.0 || sent != models.SentimentNeutral {
		t.Fatalf("got %v %s, want 50.0 NEUTRAL", score, sent)
	}
}

func TestScoreMultipleChoiceCoercesCommaSeparatedString(t *testing.T) {
	s := newScorer()
	q := models.Question{
		ID:      "q2",
		Type:    models.QuestionMultipleChoice,
		Choices: []string{"a", "b", "c", "d"},
	}
	score, _ := s.Score(context.Background(), q, models.SingleResponse("a, b"))
	if score != 50.0 {
		t.Fatalf("score = %v, want 50.0", score)
	}
}

func TestScoreSentimentChoice(t *testing.T) {
	s := newScorer()
	q := models.Question{ID: "q3", Type: models.QuestionSentiment}
	cases := []struct {
		answer    string
		wantScore float64
		wantSent  models.Sentiment
	}{
		{"POSITIVE", 100, models.SentimentPositive},
		{"positive", 100, models.SentimentPositive},
		{"NEUTRAL", 50, models.SentimentNeutral},
		{"NEGATIVE", 0, models.SentimentNegative},
	}
	for _, tc := range cases {
		score, sent := s.Score(context.Background(), q, models.SingleResponse(tc.answer))
		if score != tc.wantScore || sent != tc.wantSent {
			t.Fatalf("%q: got %v %s, want %v %s", tc.answer, score, sent, tc.wantScore, tc.wantSent)
		}
	}
}

func TestScoreSentimentChoiceFreeFormFallsBackToText(t *testing.T) {
	s := newScorer()
	q := models.Question{ID: "q3", Type: models.QuestionSentiment}
	score, sent := s.Score(context.Background(), q, models.SingleResponse("mostly great and helpful"))
	if sent != models.SentimentPositive {
		t.Fatalf("sentiment = %s, want POSITIVE", sent)
	}
	if score <= 50 {
		t.Fatalf("score = %v, want > 50", score)
	}
}

func TestScoreTextEmpty(t *testing.T) {
	s := newScorer()
	q := models.Question{ID: "q4", Type: models.QuestionTextBased}
	score, sent := s.Score(context.Background(), q, models.SingleResponse("   "))
	if score != 0.0 || sent != models.SentimentNeutral {
		t.Fatalf("got %v %s, want 0.0 NEUTRAL", score, sent)
	}
}

func TestScoreUnknownQuestionType(t *testing.T) {
	s := newScorer()
	q := models.Question{ID: "q5", Type: models.QuestionType("RANKING")}
	score, sent := s.Score(context.Background(), q, models.SingleResponse("whatever"))
	if score != 50.0 || sent != models.SentimentNeutral {
		t.Fatalf("got %v %s, want 50.0 NEUTRAL", score, sent)
	}
}

func TestSentimentFromScore(t *testing.T) {
	cases := []struct {
		score float64
		want  models.Sentiment
	}{
		{100, models.SentimentPositive},
		{70, models.SentimentPositive},
		{69.9, models.SentimentNeutral},
		{40.1, models.SentimentNeutral},
		{40, models.SentimentNegative},
		{0, models.SentimentNegative},
	}
	for _, tc := range cases {
		if got := SentimentFromScore(tc.score); got != tc.want {
			t.Fatalf("SentimentFromScore(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}
