package sentiment

import "testing"

func TestPolarity(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"positive", "the training was great and very helpful", "positive"},
		{"negative", "terrible documentation, full of bugs", "negative"},
		{"neutral", "the meeting happened on tuesday", "zero"},
		{"negated positive", "the onboarding was not good", "negative"},
		{"negated negative", "the rollout was not bad at all", "positive"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Polarity(tc.text)
			switch tc.want {
			case "positive":
				if p <= 0 {
					t.Fatalf("polarity = %v, want > 0", p)
				}
			case "negative":
				if p >= 0 {
					t.Fatalf("polarity = %v, want < 0", p)
				}
			default:
				if p != 0 {
					t.Fatalf("polarity = %v, want 0", p)
				}
			}
		})
	}
}

func TestPolarityBounds(t *testing.T) {
	if p := Polarity("excellent excellent excellent"); p != 1 {
		t.Fatalf("polarity = %v, want 1", p)
	}
	if p := Polarity("awful awful"); p != -1 {
		t.Fatalf("polarity = %v, want -1", p)
	}
	if p := Polarity(""); p != 0 {
		t.Fatalf("polarity = %v, want 0", p)
	}
}
