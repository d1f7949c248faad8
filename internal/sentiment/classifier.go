package sentiment

import (
	"context"

	"github.com/feedbackhq/scoring-service/internal/models"
)

// Prediction is a classifier verdict for one text: a sentiment label and the
// model's confidence in [0,1].
type Prediction struct {
	Label      models.Sentiment `json:"label"`
	Confidence float64          `json:"score"`
}

// Classifier labels free text. ClassifyBatch must return one prediction per
// input text, in input order.
type Classifier interface {
	Classify(ctx context.Context, text string) (Prediction, error)
	ClassifyBatch(ctx context.Context, texts []string) ([]Prediction, error)
}
