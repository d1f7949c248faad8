package sentiment

import "strings"

var positiveWords = map[string]struct{}{
	"good": {}, "great": {}, "excellent": {}, "amazing": {}, "awesome": {},
	"fantastic": {}, "helpful": {}, "love": {}, "loved": {}, "like": {},
	"liked": {}, "best": {}, "better": {}, "nice": {}, "happy": {},
	"satisfied": {}, "wonderful": {}, "outstanding": {}, "perfect": {},
	"impressive": {}, "smooth": {}, "clear": {}, "easy": {}, "enjoyed": {},
	"effective": {}, "efficient": {}, "strong": {}, "positive": {},
	"valuable": {}, "useful": {}, "appreciate": {}, "appreciated": {},
	"well": {}, "thanks": {}, "thank": {}, "pleased": {}, "reliable": {},
}

var negativeWords = map[string]struct{}{
	"bad": {}, "poor": {}, "terrible": {}, "awful": {}, "horrible": {},
	"hate": {}, "hated": {}, "worst": {}, "worse": {}, "slow": {},
	"confusing": {}, "confused": {}, "difficult": {}, "hard": {},
	"frustrating": {}, "frustrated": {}, "annoying": {}, "broken": {},
	"useless": {}, "lacking": {}, "lack": {}, "missing": {}, "unclear": {},
	"unhappy": {}, "dissatisfied": {}, "disappointing": {}, "disappointed": {},
	"problem": {}, "problems": {}, "issue": {}, "issues": {}, "bug": {},
	"bugs": {}, "fail": {}, "failed": {}, "failing": {}, "negative": {},
	"weak": {}, "messy": {}, "chaotic": {}, "stressful": {}, "overwhelming": {},
}

var negations = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "hardly": {}, "barely": {},
	"isnt": {}, "wasnt": {}, "dont": {}, "doesnt": {}, "didnt": {},
	"cant": {}, "couldnt": {}, "wont": {}, "wouldnt": {},
}

// Polarity scores text in [-1,1] from opinion-word counts. A negation word
// directly before an opinion word flips its sign.
func Polarity(text string) float64 {
	words := tokenize(text)
	var pos, neg float64
	for i, w := range words {
		negated := false
		if i > 0 {
			_, negated = negations[words[i-1]]
		}
		if _, ok := positiveWords[w]; ok {
			if negated {
				neg++
			} else {
				pos++
			}
			continue
		}
		if _, ok := negativeWords[w]; ok {
			if negated {
				pos++
			} else {
				neg++
			}
		}
	}
	total := pos + neg
	if total <= 0 {
		return 0
	}
	return (pos - neg) / total
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
}
