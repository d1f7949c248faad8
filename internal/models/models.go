package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

type QuestionType string

const (
	QuestionSingleChoice   QuestionType = "SINGLE_CHOICE"
	QuestionMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionTextBased      QuestionType = "TEXT_BASED"
	QuestionSentiment      QuestionType = "SENTIMENT"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
	SentimentNegative Sentiment = "NEGATIVE"
)

// SelectionPolarity controls how MULTIPLE_CHOICE selection ratios map to a
// score. "positive" means more selections raise the score (benefit-style
// questions); "improvement" means more selections lower it (unmet-needs
// questions). Schemas that omit it get "improvement".
type SelectionPolarity string

const (
	PolarityPositive    SelectionPolarity = "positive"
	PolarityImprovement SelectionPolarity = "improvement"
)

type Question struct {
	ID                string            `json:"id"`
	Text              string            `json:"text"`
	Type              QuestionType      `json:"questionType"`
	Category          string            `json:"category,omitempty"`
	Choices           []string          `json:"choices,omitempty"`
	SelectionPolarity SelectionPolarity `json:"selectionPolarity,omitempty"`
}

// ResponseValue is a submitted answer: either a single string (choice text,
// sentiment label, free text) or a list of strings for multi-select.
type ResponseValue struct {
	Single string
	Multi  []string
	IsList bool
}

func (v *ResponseValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v.Single = s
		v.IsList = false
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		v.Multi = list
		v.IsList = true
		return nil
	}
	return errors.New("response must be a string or a list of strings")
}

func (v ResponseValue) MarshalJSON() ([]byte, error) {
	if v.IsList {
		return json.Marshal(v.Multi)
	}
	return json.Marshal(v.Single)
}

// AsList coerces the value to a list, splitting a comma-separated single
// string into its items.
func (v ResponseValue) AsList() []string {
	if v.IsList {
		return v.Multi
	}
	if strings.TrimSpace(v.Single) == "" {
		return nil
	}
	parts := strings.Split(v.Single, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// AsString coerces the value to a single string.
func (v ResponseValue) AsString() string {
	if v.IsList {
		return strings.Join(v.Multi, ", ")
	}
	return v.Single
}

func SingleResponse(s string) ResponseValue {
	return ResponseValue{Single: s}
}

func MultiResponse(items ...string) ResponseValue {
	return ResponseValue{Multi: items, IsList: true}
}

type Submission struct {
	ID              string                   `json:"id"`
	Responses       map[string]ResponseValue `json:"responses"`
	QuestionDetails []Question               `json:"questionDetails"`
	OverallComments string                   `json:"overallComments,omitempty"`
	SubmittedBy     string                   `json:"submittedBy,omitempty"`
	SubmittedAt     time.Time                `json:"submittedAt,omitempty"`
	ProjectID       string                   `json:"projectId,omitempty"`
	ProjectName     string                   `json:"projectName,omitempty"`
}

// Priority is a single improvement priority. Question-level priorities carry
// the originating sentence in Source; submission-level defaults carry a
// Category instead.
type Priority struct {
	Text     string `json:"text"`
	Priority string `json:"priority"`
	Source   string `json:"source,omitempty"`
	Category string `json:"category,omitempty"`
}

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
)

type QuestionAnalysis struct {
	QuestionID            string        `json:"question_id"`
	QuestionText          string        `json:"question_text"`
	Type                  QuestionType  `json:"question_type"`
	Response              ResponseValue `json:"response"`
	Category              string        `json:"category,omitempty"`
	Score                 float64       `json:"score"`
	Sentiment             Sentiment     `json:"sentiment"`
	Suggestions           []string      `json:"suggestions"`
	ImprovementPriorities []Priority    `json:"improvement_priorities"`
}

type CategoryAnalysis struct {
	Score           float64   `json:"score"`
	Sentiment       Sentiment `json:"sentiment"`
	Recommendations []string  `json:"recommendations"`
}

// SummaryHighlight is one strength or weakness entry in the executive
// summary. Response holds a truncated preview for text answers.
type SummaryHighlight struct {
	Category    string  `json:"category,omitempty"`
	Score       float64 `json:"score"`
	Description string  `json:"description"`
	Response    string  `json:"response,omitempty"`
}

type ActionItem struct {
	Text     string `json:"text"`
	Priority string `json:"priority"`
	Category string `json:"category"`
}

type ExecutiveSummary struct {
	OverallRating string             `json:"overall_rating"`
	Strengths     []SummaryHighlight `json:"strengths"`
	Weaknesses    []SummaryHighlight `json:"weaknesses"`
	KeyInsights   []string           `json:"key_insights"`
	ActionItems   []ActionItem       `json:"action_items"`
}

type ImprovementArea struct {
	Category    string   `json:"category"`
	Score       float64  `json:"score"`
	Suggestions []string `json:"suggestions"`
}

type KeyMetrics struct {
	SatisfactionScore     float64            `json:"satisfaction_score"`
	ResponseQuality       float64            `json:"response_quality"`
	SentimentDistribution map[string]float64 `json:"sentiment_distribution"`
	CompletionRate        float64            `json:"completion_rate"`
}

type FeedbackAnalysis struct {
	FeedbackID         string                       `json:"feedback_id"`
	ProjectID          string                       `json:"project_id,omitempty"`
	ProjectName        string                       `json:"project_name,omitempty"`
	SubmittedBy        string                       `json:"submitted_by,omitempty"`
	SubmittedAt        time.Time                    `json:"submitted_at"`
	ExecutiveSummary   ExecutiveSummary             `json:"executive_summary"`
	QuestionAnalyses   []QuestionAnalysis           `json:"question_analyses"`
	OverallScore       float64                      `json:"overall_score"`
	OverallSentiment   Sentiment                    `json:"overall_sentiment"`
	OverallSuggestions []string                     `json:"overall_suggestions"`
	OverallPriorities  []Priority                   `json:"overall_priorities"`
	Categories         map[string]*CategoryAnalysis `json:"categories"`
	SatisfactionScore  float64                      `json:"satisfaction_score"`
	ImprovementAreas   []ImprovementArea            `json:"improvement_areas"`
	KeyMetrics         KeyMetrics                   `json:"key_metrics"`
	CreatedAt          time.Time                    `json:"created_at"`
}
