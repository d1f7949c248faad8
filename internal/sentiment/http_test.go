package sentiment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/feedbackhq/scoring-service/internal/models"
)

func TestHTTPClassifierClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/classify" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"label": "positive", "score": 1.4})
	}))
	defer srv.Close()

	c := &HTTPClassifier{BaseURL: srv.URL}
	pred, err := c.Classify(context.Background(), "great work")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pred.Label != models.SentimentPositive {
		t.Fatalf("label = %q", pred.Label)
	}
	if pred.Confidence != 1 {
		t.Fatalf("confidence = %v, want clamped to 1", pred.Confidence)
	}
}

func TestHTTPClassifierConcurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"label": "NEUTRAL", "score": 0.5})
	}))
	defer srv.Close()

	// zero-value Client: the classifier must stay read-only under parallel use
	c := &HTTPClassifier{BaseURL: srv.URL}
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Classify(context.Background(), "fine"); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestHTTPClassifierBatchChunks(t *testing.T) {
	var mu sync.Mutex
	var batches [][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Texts []string `json:"texts"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		mu.Lock()
		batches = append(batches, req.Texts)
		mu.Unlock()
		results := make([]map[string]any, len(req.Texts))
		for i := range req.Texts {
			results[i] = map[string]any{"label": "NEUTRAL", "score": 0.5}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"results": results})
	}))
	defer srv.Close()

	texts := make([]string, 11)
	for i := range texts {
		texts[i] = "text"
	}
	c := &HTTPClassifier{BaseURL: srv.URL}
	preds, err := c.ClassifyBatch(context.Background(), texts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(preds) != 11 {
		t.Fatalf("got %d predictions, want 11", len(preds))
	}
	mu.Lock()
	defer mu.Unlock()
	if len(batches) != 2 || len(batches[0]) != 8 || len(batches[1]) != 3 {
		t.Fatalf("unexpected chunking: %v", batches)
	}
}
