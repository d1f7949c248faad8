package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/feedbackhq/scoring-service/internal/feedback"
	"github.com/feedbackhq/scoring-service/internal/models"
)

// RunFailure records one submission that could not be scored during a batch
// run.
type RunFailure struct {
	FeedbackID string `json:"feedback_id"`
	Error      string `json:"error"`
}

// RunResult summarizes one batch run over the upstream submission set.
type RunResult struct {
	RunID      string       `json:"run_id"`
	Processed  int          `json:"processed"`
	Failed     int          `json:"failed"`
	Failures   []RunFailure `json:"failures,omitempty"`
	DurationMS int64        `json:"duration_ms"`
}

// BatchProcessor fetches every submission from the upstream source and
// scores them on a bounded worker pool. Submissions are independent; the
// sentiment cache is the only state shared between workers.
type BatchProcessor struct {
	Analyzer *AnalyzerService
	Source   feedback.Source
	Workers  int
	Logger   zerolog.Logger
}

func NewBatchProcessor(analyzer *AnalyzerService, source feedback.Source, workers int, logger zerolog.Logger) *BatchProcessor {
	if workers <= 0 {
		workers = 4
	}
	return &BatchProcessor{Analyzer: analyzer, Source: source, Workers: workers, Logger: logger}
}

func (p *BatchProcessor) ProcessAll(ctx context.Context) (RunResult, error) {
	start := time.Now()
	result := RunResult{RunID: uuid.NewString()}

	subs, err := p.Source.FetchAll(ctx)
	if err != nil {
		return result, err
	}

	jobs := make(chan models.Submission)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < p.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sub := range jobs {
				_, err := p.Analyzer.AnalyzeSubmission(ctx, sub)
				mu.Lock()
				if err != nil {
					result.Failed++
					result.Failures = append(result.Failures, RunFailure{FeedbackID: sub.ID, Error: err.Error()})
				} else {
					result.Processed++
				}
				mu.Unlock()
				if err != nil {
					p.Logger.Warn().Err(err).Str("feedback_id", sub.ID).Str("run_id", result.RunID).Msg("submission failed in batch run")
				}
			}
		}()
	}

	for _, sub := range subs {
		select {
		case jobs <- sub:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			result.DurationMS = time.Since(start).Milliseconds()
			return result, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	result.DurationMS = time.Since(start).Milliseconds()
	p.Logger.Info().
		Str("run_id", result.RunID).
		Int("processed", result.Processed).
		Int("failed", result.Failed).
		Int64("duration_ms", result.DurationMS).
		Msg("batch scoring run finished")
	return result, nil
}

// ProcessOne fetches and scores a single submission by feedback id.
func (p *BatchProcessor) ProcessOne(ctx context.Context, feedbackID string) (*models.FeedbackAnalysis, error) {
	sub, err := p.Source.FetchByFeedbackID(ctx, feedbackID)
	if err != nil {
		return nil, err
	}
	return p.Analyzer.AnalyzeSubmission(ctx, sub)
}
