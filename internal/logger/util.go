package logger

import (
	"strings"
	"time"
)

// Status reduces err to the status value used on log lines.
func Status(err error) string {
	if err == nil {
		return "ok"
	}
	return "fail"
}

// Took reports the time elapsed since start, rounded for logging.
func Took(start time.Time) time.Duration {
	return RoundMS(time.Since(start))
}

// RoundMS rounds d to whole milliseconds; negative durations collapse to 0.
func RoundMS(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return d.Round(time.Millisecond)
}

// SummarizeStrings joins at most limit values and reports whether any
// were cut off.
func SummarizeStrings(values []string, limit int) (string, bool) {
	switch {
	case limit <= 0:
		return "", len(values) > 0
	case len(values) > limit:
		return strings.Join(values[:limit], ", "), true
	}
	return strings.Join(values, ", "), false
}
