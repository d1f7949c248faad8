package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/feedbackhq/scoring-service/internal/models"
)

// HTTPSource fetches submissions from the feedback service's admin API.
type HTTPSource struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func (s *HTTPSource) FetchAll(ctx context.Context) ([]models.Submission, error) {
	var subs []models.Submission
	if err := s.get(ctx, "/api/admin/submissions/all", &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *HTTPSource) FetchByFeedbackID(ctx context.Context, id string) (models.Submission, error) {
	var subs []models.Submission
	path := "/api/admin/submissions?feedbackId=" + url.QueryEscape(id)
	if err := s.get(ctx, path, &subs); err != nil {
		return models.Submission{}, err
	}
	if len(subs) == 0 {
		return models.Submission{}, ErrNotFound
	}
	return subs[0], nil
}

var defaultClient = &http.Client{Timeout: 15 * time.Second}

// httpClient never writes s.Client: sources are shared across the batch
// processor's workers.
func (s *HTTPSource) httpClient() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return defaultClient
}

func (s *HTTPSource) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+path, nil)
	if err != nil {
		return err
	}
	if s.APIKey != "" {
		req.Header.Set("X-Admin-Key", s.APIKey)
	}

	resp, err := s.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("feedback service http error: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
