package insight

import (
	"sort"
	"strings"

	"github.com/feedbackhq/scoring-service/internal/models"
)

const (
	maxKeywords    = 5
	maxSuggestions = 3
	maxPriorities  = 3
)

// Extractor mines free-text answers for keywords, actionable suggestions and
// improvement priorities using the lexicon's rule data.
type Extractor struct {
	lex *Lexicon
}

func NewExtractor(lex *Lexicon) *Extractor {
	if lex == nil {
		lex = DefaultLexicon()
	}
	return &Extractor{lex: lex}
}

// Keywords returns up to 5 content words ranked by frequency; ties keep
// first-occurrence order.
func (e *Extractor) Keywords(text string) []string {
	words := tokenize(text)
	counts := map[string]int{}
	firstSeen := map[string]int{}
	for i, w := range words {
		if len(w) <= 2 {
			continue
		}
		if _, stop := e.lex.Stopwords[w]; stop {
			continue
		}
		if isNumeric(w) {
			continue
		}
		if _, seen := counts[w]; !seen {
			firstSeen[w] = i
		}
		counts[w]++
	}

	unique := make([]string, 0, len(counts))
	for w := range counts {
		unique = append(unique, w)
	}
	sort.Slice(unique, func(i, j int) bool {
		if counts[unique[i]] != counts[unique[j]] {
			return counts[unique[i]] > counts[unique[j]]
		}
		return firstSeen[unique[i]] < firstSeen[unique[j]]
	})
	if len(unique) > maxKeywords {
		unique = unique[:maxKeywords]
	}
	return unique
}

// Suggestions pulls sentences containing an action trigger, trimmed and
// capitalized, deduplicated, capped at 3. When nothing qualifies it falls
// back to the category's recommendation pool, then to the generic pool.
func (e *Extractor) Suggestions(text, category string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, sent := range splitSentences(text) {
		if !containsAny(sent, e.lex.ActionTriggers) {
			continue
		}
		s := capitalize(strings.TrimSpace(sent))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if len(out) == maxSuggestions {
			return out
		}
	}
	if len(out) > 0 {
		return out
	}
	return e.DefaultRecommendations(category)
}

// Priorities derives improvement priorities from text: problem-indicator
// sentences rank high, improvement-indicator sentences rank medium, each
// carrying its originating sentence. Capped at 3, high before medium.
func (e *Extractor) Priorities(text, category string) []models.Priority {
	sentences := splitSentences(text)
	var out []models.Priority
	used := map[string]struct{}{}

	for _, sent := range sentences {
		if !containsAny(sent, e.lex.ProblemIndicators) {
			continue
		}
		if _, dup := used[sent]; dup {
			continue
		}
		used[sent] = struct{}{}
		out = append(out, models.Priority{
			Text:     "Address " + e.topic(sent, category),
			Priority: models.PriorityHigh,
			Source:   strings.TrimSpace(sent),
		})
	}
	for _, sent := range sentences {
		if len(out) >= maxPriorities {
			break
		}
		if !containsAny(sent, e.lex.ImprovementIndicators) {
			continue
		}
		if _, dup := used[sent]; dup {
			continue
		}
		used[sent] = struct{}{}
		out = append(out, models.Priority{
			Text:     "Improve " + e.topic(sent, category),
			Priority: models.PriorityMedium,
			Source:   strings.TrimSpace(sent),
		})
	}

	if len(out) == 0 && strings.TrimSpace(text) != "" {
		out = append(out, models.Priority{
			Text:     "Improve " + humanize(category),
			Priority: models.PriorityMedium,
			Category: category,
		})
	}
	if len(out) > maxPriorities {
		out = out[:maxPriorities]
	}
	return out
}

// DefaultRecommendations returns up to 3 pool recommendations for the
// category, matched loosely on the category key, or the generic pool.
// Selection is deterministic: the pool's leading entries.
func (e *Extractor) DefaultRecommendations(category string) []string {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(category), " ", "_"))
	if key != "" {
		poolKeys := make([]string, 0, len(e.lex.Recommendations))
		for k := range e.lex.Recommendations {
			poolKeys = append(poolKeys, k)
		}
		sort.Strings(poolKeys)
		for _, poolKey := range poolKeys {
			if strings.Contains(key, poolKey) || strings.Contains(poolKey, key) {
				return clone(e.lex.Recommendations[poolKey][:maxSuggestions])
			}
		}
	}
	return clone(e.lex.GenericFallbacks)
}

// IsValidRecommendation filters recommendation candidates before they become
// action items: 6-50 words, starts with an action verb, not a question, and
// not a generic filler phrase.
func (e *Extractor) IsValidRecommendation(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.HasSuffix(trimmed, "?") {
		return false
	}
	words := strings.Fields(trimmed)
	if len(words) < 6 || len(words) > 50 {
		return false
	}
	first := strings.ToLower(strings.Trim(words[0], ".,!:;"))
	if _, weak := e.lex.WeakOpeners[first]; weak {
		return false
	}
	if _, ok := e.lex.ActionVerbs[first]; !ok {
		return false
	}
	lower := strings.ToLower(trimmed)
	for _, filler := range e.lex.GenericFillers {
		if strings.Contains(lower, filler) {
			return false
		}
	}
	return true
}

// topic picks up to two content words from a sentence to name what a
// priority is about, skipping the indicator words themselves.
func (e *Extractor) topic(sentence, category string) string {
	skip := map[string]struct{}{}
	for _, w := range e.lex.ProblemIndicators {
		skip[w] = struct{}{}
	}
	for _, w := range e.lex.ImprovementIndicators {
		skip[w] = struct{}{}
	}

	var picked []string
	for _, w := range tokenize(sentence) {
		if len(w) <= 2 {
			continue
		}
		if _, stop := e.lex.Stopwords[w]; stop {
			continue
		}
		if _, ind := skip[w]; ind {
			continue
		}
		picked = append(picked, w)
		if len(picked) == 2 {
			break
		}
	}
	if len(picked) == 0 {
		return humanize(category)
	}
	return strings.Join(picked, " ")
}

func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func containsAny(sentence string, triggers []string) bool {
	words := map[string]struct{}{}
	for _, w := range tokenize(sentence) {
		words[w] = struct{}{}
	}
	for _, t := range triggers {
		if _, ok := words[t]; ok {
			return true
		}
	}
	return false
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func humanize(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" {
		return "overall feedback"
	}
	return strings.ReplaceAll(c, "_", " ")
}

func clone(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
