package utils

import (
	"math"
	"strings"
	"testing"
)

func TestNormalizeScore(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{-5, 0},
		{0, 0},
		{50.04, 50.0},
		{50.06, 50.1},
		{99.99, 100},
		{150, 100},
		{math.NaN(), 0},
	}
	for _, tc := range cases {
		if got := NormalizeScore(tc.in); got != tc.want {
			t.Fatalf("NormalizeScore(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	long := strings.Repeat("ab", 300)
	if got := Truncate(long, 512); len(got) != 512 {
		t.Fatalf("len = %d, want 512", len(got))
	}
}

func TestHashStringToUint64Deterministic(t *testing.T) {
	a := HashStringToUint64("feedback")
	b := HashStringToUint64("feedback")
	if a != b {
		t.Fatalf("hash not deterministic: %d vs %d", a, b)
	}
	if a == HashStringToUint64("different") {
		t.Fatalf("distinct inputs collided")
	}
}
