package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/feedbackhq/scoring-service/internal/insight"
	"github.com/feedbackhq/scoring-service/internal/models"
)

const (
	strengthThreshold  = 80.0
	weaknessThreshold  = 40.0
	maxHighlights      = 3
	maxKeyInsights     = 5
	maxActionItems     = 5
	minActionItems     = 2
	diversityThreshold = 3
	previewLimit       = 50
)

// defaultActionItems pad the action item list when fewer than two valid
// candidates survive filtering.
var defaultActionItems = []models.ActionItem{
	{Text: "Implement regular team meetings to improve information sharing", Priority: models.PriorityHigh, Category: "TEAM_COLLABORATION"},
	{Text: "Create a centralized documentation system for project updates", Priority: models.PriorityMedium, Category: "DOCUMENTATION"},
}

// commentAnalysis carries the overall-comments analysis into the summary
// builder. Present is false when the submission had no comments.
type commentAnalysis struct {
	Present   bool
	Sentiment models.Sentiment
	Keywords  []string
}

// SummaryBuilder condenses question analyses into the executive summary.
type SummaryBuilder struct {
	Insight *insight.Extractor
}

func NewSummaryBuilder(ex *insight.Extractor) *SummaryBuilder {
	return &SummaryBuilder{Insight: ex}
}

func (b *SummaryBuilder) Build(analyses []models.QuestionAnalysis, comments commentAnalysis) models.ExecutiveSummary {
	return models.ExecutiveSummary{
		OverallRating: fmt.Sprintf("%.1f%%", meanScore(analyses)),
		Strengths:     b.highlights(analyses, true),
		Weaknesses:    b.highlights(analyses, false),
		KeyInsights:   b.keyInsights(analyses, comments),
		ActionItems:   b.actionItems(analyses),
	}
}

// highlights collects strengths (score >= 80) or weaknesses (score <= 40) in
// submission order, capped at 3.
func (b *SummaryBuilder) highlights(analyses []models.QuestionAnalysis, positive bool) []models.SummaryHighlight {
	out := []models.SummaryHighlight{}
	for _, qa := range analyses {
		if positive && qa.Score < strengthThreshold {
			continue
		}
		if !positive && qa.Score > weaknessThreshold {
			continue
		}
		tone := "Positive"
		if !positive {
			tone = "Negative"
		}
		kind := "rating"
		if qa.Type == models.QuestionTextBased {
			kind = "feedback"
		}
		desc := fmt.Sprintf("%s %s", tone, kind)
		if qa.Category != "" {
			desc += " regarding " + strings.ReplaceAll(strings.ToLower(qa.Category), "_", " ")
		}
		desc += ": " + qa.QuestionText

		h := models.SummaryHighlight{
			Category:    qa.Category,
			Score:       qa.Score,
			Description: desc,
		}
		if qa.Type == models.QuestionTextBased {
			h.Response = preview(qa.Response.AsString())
		}
		out = append(out, h)
		if len(out) == maxHighlights {
			break
		}
	}
	return out
}

// preview returns the first sentence of text, truncated to 50 runes so
// multi-byte answers never get cut mid-character.
func preview(text string) string {
	if i := strings.IndexByte(text, '.'); i >= 0 {
		text = text[:i]
	}
	if runes := []rune(text); len(runes) > previewLimit {
		text = string(runes[:previewLimit-3]) + "..."
	}
	return text
}

func (b *SummaryBuilder) keyInsights(analyses []models.QuestionAnalysis, comments commentAnalysis) []string {
	var insights []string

	if len(analyses) > 0 {
		pos, neu, neg := sentimentCounts(analyses)
		total := len(analyses)
		posPct := pos * 100 / total
		neuPct := neu * 100 / total
		negPct := neg * 100 / total
		switch {
		case posPct > 60:
			insights = append(insights, fmt.Sprintf("Overall positive feedback with %d%% positive responses", posPct))
		case negPct > 60:
			insights = append(insights, fmt.Sprintf("Significant concerns with %d%% negative responses", negPct))
		default:
			insights = append(insights, fmt.Sprintf("Mixed feedback with %d%% positive, %d%% neutral, and %d%% negative responses", posPct, neuPct, negPct))
		}
	}

	for _, cat := range categoryOrder(analyses) {
		scores := categoryScores(analyses, cat)
		avg := mean(scores)
		name := strings.ReplaceAll(strings.ToLower(cat), "_", " ")
		switch {
		case avg >= 75:
			insights = append(insights, fmt.Sprintf("Strong performance in %s with an average score of %d", name, int(avg)))
		case avg <= 40:
			insights = append(insights, fmt.Sprintf("Critical improvement needed in %s with a low score of %d", name, int(avg)))
		case len(scores) >= 3:
			insights = append(insights, fmt.Sprintf("%s received an average score of %d", capitalizeFirst(name), int(avg)))
		}
	}

	if comments.Present {
		if len(comments.Keywords) > 0 {
			top := comments.Keywords
			if len(top) > 3 {
				top = top[:3]
			}
			insights = append(insights, "Key themes mentioned: "+strings.Join(top, ", "))
		}
		switch comments.Sentiment {
		case models.SentimentPositive:
			insights = append(insights, "Overall comments express positive sentiment and satisfaction")
		case models.SentimentNegative:
			insights = append(insights, "Overall comments indicate areas of concern that need addressing")
		}
	}

	return dedupCap(insights, maxKeyInsights)
}

type actionCandidate struct {
	item  models.ActionItem
	score float64
}

// actionItems collects valid suggestions across questions, sorts high
// priority first then ascending score, and selects greedily with a category
// diversity rule: once 3 items are chosen, a category that already
// contributed is skipped. Pads from defaults when fewer than 2 survive.
func (b *SummaryBuilder) actionItems(analyses []models.QuestionAnalysis) []models.ActionItem {
	var candidates []actionCandidate
	for _, qa := range analyses {
		priority := models.PriorityMedium
		if qa.Sentiment == models.SentimentNegative {
			priority = models.PriorityHigh
		}
		category := qa.Category
		if category == "" {
			category = "GENERAL"
		}
		for _, s := range qa.Suggestions {
			if !b.Insight.IsValidRecommendation(s) {
				continue
			}
			candidates = append(candidates, actionCandidate{
				item:  models.ActionItem{Text: s, Priority: priority, Category: category},
				score: qa.Score,
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		hi := candidates[i].item.Priority == models.PriorityHigh
		hj := candidates[j].item.Priority == models.PriorityHigh
		if hi != hj {
			return hi
		}
		return candidates[i].score < candidates[j].score
	})

	items := []models.ActionItem{}
	usedCategories := map[string]struct{}{}
	usedText := map[string]struct{}{}
	for _, c := range candidates {
		if _, dup := usedText[c.item.Text]; dup {
			continue
		}
		if _, seen := usedCategories[c.item.Category]; seen && len(items) >= diversityThreshold {
			continue
		}
		items = append(items, c.item)
		usedCategories[c.item.Category] = struct{}{}
		usedText[c.item.Text] = struct{}{}
		if len(items) == maxActionItems {
			break
		}
	}

	if len(items) < minActionItems {
		for _, d := range defaultActionItems {
			if _, seen := usedCategories[d.Category]; seen {
				continue
			}
			items = append(items, d)
			usedCategories[d.Category] = struct{}{}
			if len(items) == maxActionItems {
				break
			}
		}
	}
	return items
}

func sentimentCounts(analyses []models.QuestionAnalysis) (pos, neu, neg int) {
	for _, qa := range analyses {
		switch qa.Sentiment {
		case models.SentimentPositive:
			pos++
		case models.SentimentNegative:
			neg++
		default:
			neu++
		}
	}
	return pos, neu, neg
}

func categoryOrder(analyses []models.QuestionAnalysis) []string {
	var order []string
	seen := map[string]struct{}{}
	for _, qa := range analyses {
		if qa.Category == "" {
			continue
		}
		if _, dup := seen[qa.Category]; dup {
			continue
		}
		seen[qa.Category] = struct{}{}
		order = append(order, qa.Category)
	}
	return order
}

func categoryScores(analyses []models.QuestionAnalysis, category string) []float64 {
	var scores []float64
	for _, qa := range analyses {
		if qa.Category == category {
			scores = append(scores, qa.Score)
		}
	}
	return scores
}

func meanScore(analyses []models.QuestionAnalysis) float64 {
	if len(analyses) == 0 {
		return 0
	}
	var sum float64
	for _, qa := range analyses {
		sum += qa.Score
	}
	return sum / float64(len(analyses))
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
