package utils

// Truncate cuts s to at most max bytes. Inputs are survey answers, so the
// byte/rune distinction does not matter for the classifier limit.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
