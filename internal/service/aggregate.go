package service

import (
	"github.com/feedbackhq/scoring-service/internal/models"
	"github.com/feedbackhq/scoring-service/internal/utils"
)

const maxCategoryRecommendations = 3

// CategoryAggregator folds question analyses into per-category aggregates.
// The fold keeps the original pairwise running average: the first analysis
// seeds the score, each later one averages against the accumulated value, so
// recent questions weigh more than a true mean would give them.
type CategoryAggregator struct {
	categories map[string]*models.CategoryAnalysis
	order      []string
}

func NewCategoryAggregator() *CategoryAggregator {
	return &CategoryAggregator{categories: map[string]*models.CategoryAnalysis{}}
}

// Fold merges one question analysis into its category. Sentiment is
// overwritten by the most recent fold; recommendations accumulate with
// dedup and a cap of 3.
func (a *CategoryAggregator) Fold(category string, qa models.QuestionAnalysis) *models.CategoryAnalysis {
	ca, ok := a.categories[category]
	if !ok {
		ca = &models.CategoryAnalysis{
			Score:           qa.Score,
			Sentiment:       qa.Sentiment,
			Recommendations: dedupCap(qa.Suggestions, maxCategoryRecommendations),
		}
		a.categories[category] = ca
		a.order = append(a.order, category)
		return ca
	}
	ca.Score = utils.NormalizeScore((ca.Score + qa.Score) / 2)
	ca.Sentiment = qa.Sentiment
	ca.Recommendations = dedupCap(append(ca.Recommendations, qa.Suggestions...), maxCategoryRecommendations)
	return ca
}

// Categories returns the aggregates keyed by category.
func (a *CategoryAggregator) Categories() map[string]*models.CategoryAnalysis {
	return a.categories
}

// Order returns category names in first-seen order.
func (a *CategoryAggregator) Order() []string {
	return a.order
}

func (a *CategoryAggregator) Len() int {
	return len(a.categories)
}

// dedupCap removes duplicates preserving first-seen order, then caps.
func dedupCap(in []string, limit int) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out
}
