package utils

import "math"

// NormalizeScore clamps a score to [0,100] and rounds it to one decimal
// place. Every score leaving the engine passes through here.
func NormalizeScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return math.Round(v*10) / 10
}

// RoundPct rounds a percentage to one decimal place without clamping.
func RoundPct(v float64) float64 {
	return math.Round(v*10) / 10
}
