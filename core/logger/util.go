package logger

import (
	"strings"
	"time"
)

// Status reduces an error to the two-valued status attribute used by
// handler summary lines.
func Status(err error) string {
	if err == nil {
		return "ok"
	}
	return "error"
}

// Took is shorthand for RoundMS(time.Since(start)).
func Took(start time.Time) time.Duration {
	return RoundMS(time.Since(start))
}

// RoundMS clamps a duration to millisecond precision so durations log
// consistently. Negative durations log as zero.
func RoundMS(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return d.Round(time.Millisecond)
}

// SummarizeStrings renders a comma-separated preview of at most limit
// values. The second return reports whether anything was left out.
func SummarizeStrings(values []string, limit int) (string, bool) {
	if limit <= 0 {
		return "", len(values) > 0
	}
	shown := values
	if len(shown) > limit {
		shown = shown[:limit]
	}
	return strings.Join(shown, ", "), len(values) > limit
}
