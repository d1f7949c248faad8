package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/feedbackhq/scoring-service/internal/models"
)

// maxBatchSize caps how many texts go into one /classify/batch round-trip.
const maxBatchSize = 8

// HTTPClassifier calls the external sentiment model service. Transient
// failures (network errors, 5xx) are retried with exponential backoff; 4xx
// responses are not.
type HTTPClassifier struct {
	BaseURL string
	Client  *http.Client
}

type classifyRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type batchRequest struct {
	Texts []string `json:"texts"`
}

type batchResponse struct {
	Results []classifyResponse `json:"results"`
}

func (c *HTTPClassifier) Classify(ctx context.Context, text string) (Prediction, error) {
	var out classifyResponse
	err := c.post(ctx, "/classify", classifyRequest{Text: text}, &out)
	if err != nil {
		return Prediction{}, err
	}
	return toPrediction(out), nil
}

func (c *HTTPClassifier) ClassifyBatch(ctx context.Context, texts []string) ([]Prediction, error) {
	preds := make([]Prediction, 0, len(texts))
	for start := 0; start < len(texts); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		chunk := texts[start:end]

		var out batchResponse
		if err := c.post(ctx, "/classify/batch", batchRequest{Texts: chunk}, &out); err != nil {
			return nil, err
		}
		if len(out.Results) != len(chunk) {
			return nil, fmt.Errorf("classifier returned %d results for %d texts", len(out.Results), len(chunk))
		}
		for _, r := range out.Results {
			preds = append(preds, toPrediction(r))
		}
	}
	return preds, nil
}

var defaultClient = &http.Client{Timeout: 10 * time.Second}

// httpClient never writes c.Client: one classifier serves all workers.
func (c *HTTPClassifier) httpClient() *http.Client {
	if c.Client != nil {
		return c.Client
	}
	return defaultClient
}

func (c *HTTPClassifier) post(ctx context.Context, path string, payload, out any) error {
	b, _ := json.Marshal(payload)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxElapsedTime = 8 * time.Second

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(b))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient().Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("classifier http error: %s", resp.Status)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return backoff.Permanent(fmt.Errorf("classifier http error: %s", resp.Status))
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}
	return backoff.Retry(operation, backoff.WithContext(bo, ctx))
}

func toPrediction(r classifyResponse) Prediction {
	label := models.Sentiment(strings.ToUpper(strings.TrimSpace(r.Label)))
	switch label {
	case models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral:
	default:
		label = models.SentimentNeutral
	}
	conf := r.Score
	if conf < 0 {
		conf = 0
	}
	if conf > 1 {
		conf = 1
	}
	return Prediction{Label: label, Confidence: conf}
}
