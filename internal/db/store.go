package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feedbackhq/scoring-service/internal/models"
)

var ErrNotFound = errors.New("analysis not found")

// Store persists feedback analyses in Postgres. The full analysis document
// lives in a jsonb column keyed by feedback id; a few columns are lifted out
// for listing and filtering.
type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

// EnsureSchema creates the analyses table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS feedback_analyses (
			feedback_id       text PRIMARY KEY,
			project_id        text NOT NULL DEFAULT '',
			overall_score     double precision NOT NULL,
			overall_sentiment text NOT NULL,
			submitted_at      timestamptz NOT NULL,
			analysis          jsonb NOT NULL,
			created_at        timestamptz NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// AnalysisSummary is one row of the recent-analyses listing.
type AnalysisSummary struct {
	FeedbackID       string    `json:"feedback_id"`
	ProjectID        string    `json:"project_id,omitempty"`
	OverallScore     float64   `json:"overall_score"`
	OverallSentiment string    `json:"overall_sentiment"`
	SubmittedAt      time.Time `json:"submitted_at"`
	CreatedAt        time.Time `json:"created_at"`
}

func (s *Store) UpsertAnalysis(ctx context.Context, a *models.FeedbackAnalysis) error {
	doc, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	_, err = s.Pool.Exec(ctx, `
		INSERT INTO feedback_analyses (feedback_id, project_id, overall_score, overall_sentiment, submitted_at, analysis, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (feedback_id) DO UPDATE SET
			project_id = EXCLUDED.project_id,
			overall_score = EXCLUDED.overall_score,
			overall_sentiment = EXCLUDED.overall_sentiment,
			submitted_at = EXCLUDED.submitted_at,
			analysis = EXCLUDED.analysis,
			created_at = EXCLUDED.created_at
	`, a.FeedbackID, a.ProjectID, a.OverallScore, string(a.OverallSentiment), a.SubmittedAt, doc, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert analysis: %w", err)
	}
	return nil
}

func (s *Store) GetAnalysis(ctx context.Context, feedbackID string) (*models.FeedbackAnalysis, error) {
	var doc []byte
	err := s.Pool.QueryRow(ctx,
		`SELECT analysis FROM feedback_analyses WHERE feedback_id = $1`, feedbackID,
	).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get analysis: %w", err)
	}
	var a models.FeedbackAnalysis
	if err := json.Unmarshal(doc, &a); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}
	return &a, nil
}

func (s *Store) ListAnalyses(ctx context.Context, limit int) ([]AnalysisSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT feedback_id, project_id, overall_score, overall_sentiment, submitted_at, created_at
		FROM feedback_analyses
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var out []AnalysisSummary
	for rows.Next() {
		var item AnalysisSummary
		if err := rows.Scan(&item.FeedbackID, &item.ProjectID, &item.OverallScore, &item.OverallSentiment, &item.SubmittedAt, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan analysis row: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
