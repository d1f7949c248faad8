package sentiment

import (
	"context"
	"math"

	"github.com/feedbackhq/scoring-service/internal/models"
	"github.com/feedbackhq/scoring-service/internal/utils"
)

// MockClassifier is a deterministic stand-in for the model service used when
// CLASSIFIER_URL is unset. The label comes from the opinion lexicon; the
// confidence is jittered from a hash of the text so repeated runs agree.
type MockClassifier struct {
	ModelVersion string
}

func (m MockClassifier) Classify(_ context.Context, text string) (Prediction, error) {
	p := Polarity(text)
	label := models.SentimentNeutral
	switch {
	case p > 0.1:
		label = models.SentimentPositive
	case p < -0.1:
		label = models.SentimentNegative
	}

	h := utils.HashStringToUint64(text)
	jitter := float64(h%16) / 100 // 0.00..0.15
	conf := 0.6 + math.Abs(p)*0.25 + jitter
	if conf > 0.99 {
		conf = 0.99
	}
	return Prediction{Label: label, Confidence: conf}, nil
}

func (m MockClassifier) ClassifyBatch(ctx context.Context, texts []string) ([]Prediction, error) {
	preds := make([]Prediction, len(texts))
	for i, t := range texts {
		preds[i], _ = m.Classify(ctx, t)
	}
	return preds, nil
}
