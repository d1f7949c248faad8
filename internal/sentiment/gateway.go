package sentiment

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/feedbackhq/scoring-service/internal/models"
	"github.com/feedbackhq/scoring-service/internal/utils"
)

// maxClassifierChars is the truncation limit applied before any classifier
// call. Memoization keys use the full text.
const maxClassifierChars = 512

// neutralConfidenceFloor: a NEUTRAL verdict below this confidence is treated
// as "model unsure" and re-scored by the lexical fallback.
const neutralConfidenceFloor = 0.7

// Result is a scored sentiment outcome for one text. Score follows
// confidence-adjusted polarity: POSITIVE -> confidence*100, NEGATIVE ->
// (1-confidence)*100, NEUTRAL -> 50.
type Result struct {
	Score      float64          `json:"score"`
	Sentiment  models.Sentiment `json:"sentiment"`
	Confidence float64          `json:"confidence"`
	Fallback   bool             `json:"fallback,omitempty"`
}

// Gateway fronts the external classifier with memoization and a lexical
// fallback. A nil Cache disables memoization; a nil Classifier routes
// everything through the fallback.
type Gateway struct {
	Classifier Classifier
	Cache      Cache
	Logger     zerolog.Logger
}

func NewGateway(classifier Classifier, cache Cache, logger zerolog.Logger) *Gateway {
	return &Gateway{Classifier: classifier, Cache: cache, Logger: logger}
}

// Analyze scores one text. Identical inputs return identical results; repeat
// calls are served from the cache without touching the classifier.
func (g *Gateway) Analyze(ctx context.Context, text string) Result {
	if g.Cache != nil {
		if res, ok := g.Cache.Get(ctx, text); ok {
			return res
		}
	}
	res := g.evaluate(ctx, text)
	if g.Cache != nil {
		g.Cache.Put(ctx, text, res)
	}
	return res
}

// Prime classifies a batch of texts ahead of scoring, filling the cache in as
// few classifier round-trips as possible. Failures are absorbed: texts that
// could not be classified fall back lexically when analyzed.
func (g *Gateway) Prime(ctx context.Context, texts []string) {
	if g.Classifier == nil || g.Cache == nil {
		return
	}
	pending := make([]string, 0, len(texts))
	seen := map[string]struct{}{}
	for _, t := range texts {
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := g.Cache.Get(ctx, t); !ok {
			pending = append(pending, t)
		}
	}
	if len(pending) == 0 {
		return
	}
	truncated := make([]string, len(pending))
	for i, t := range pending {
		truncated[i] = utils.Truncate(t, maxClassifierChars)
	}
	preds, err := g.Classifier.ClassifyBatch(ctx, truncated)
	if err != nil || len(preds) != len(pending) {
		g.Logger.Warn().Err(err).Int("texts", len(pending)).Msg("batch classification failed")
		return
	}
	for i, t := range pending {
		g.Cache.Put(ctx, t, g.resolve(t, preds[i]))
	}
}

func (g *Gateway) evaluate(ctx context.Context, text string) Result {
	if g.Classifier == nil {
		return lexicalResult(text)
	}
	pred, err := g.Classifier.Classify(ctx, utils.Truncate(text, maxClassifierChars))
	if err != nil {
		g.Logger.Warn().Err(err).Msg("classifier unavailable, using lexical fallback")
		return lexicalResult(text)
	}
	return g.resolve(text, pred)
}

// resolve turns a classifier prediction into a scored result, deferring to
// the lexical fallback on low-confidence NEUTRAL verdicts.
func (g *Gateway) resolve(text string, pred Prediction) Result {
	switch pred.Label {
	case models.SentimentPositive:
		return Result{
			Score:      utils.NormalizeScore(pred.Confidence * 100),
			Sentiment:  models.SentimentPositive,
			Confidence: pred.Confidence,
		}
	case models.SentimentNegative:
		return Result{
			Score:      utils.NormalizeScore((1 - pred.Confidence) * 100),
			Sentiment:  models.SentimentNegative,
			Confidence: pred.Confidence,
		}
	default:
		if pred.Confidence < neutralConfidenceFloor {
			return lexicalResult(text)
		}
		return Result{Score: 50, Sentiment: models.SentimentNeutral, Confidence: pred.Confidence}
	}
}

func lexicalResult(text string) Result {
	p := Polarity(text)
	res := Result{Confidence: math.Abs(p), Fallback: true}
	switch {
	case p > 0.1:
		res.Sentiment = models.SentimentPositive
		res.Score = utils.NormalizeScore(50 + p*50)
	case p < -0.1:
		res.Sentiment = models.SentimentNegative
		res.Score = utils.NormalizeScore(50 + p*50)
	default:
		res.Sentiment = models.SentimentNeutral
		res.Score = 50
	}
	return res
}
