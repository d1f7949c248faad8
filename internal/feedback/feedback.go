package feedback

import (
	"context"
	"errors"

	"github.com/feedbackhq/scoring-service/internal/models"
)

var ErrNotFound = errors.New("submission not found")

// Source provides submissions from the upstream feedback service. Retry
// policy lives behind the implementation; callers do not retry.
type Source interface {
	FetchAll(ctx context.Context) ([]models.Submission, error)
	FetchByFeedbackID(ctx context.Context, id string) (models.Submission, error)
}

// StaticSource serves a fixed submission list. Used in tests and when no
// upstream service is configured.
type StaticSource struct {
	Submissions []models.Submission
}

func (s StaticSource) FetchAll(_ context.Context) ([]models.Submission, error) {
	return s.Submissions, nil
}

func (s StaticSource) FetchByFeedbackID(_ context.Context, id string) (models.Submission, error) {
	for _, sub := range s.Submissions {
		if sub.ID == id {
			return sub, nil
		}
	}
	return models.Submission{}, ErrNotFound
}
