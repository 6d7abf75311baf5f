// Package timeutil formats durations for logs and reports.
package timeutil

import (
	"fmt"
	"time"
)

// FormatDuration renders d with a unit suited to its magnitude: "850µs",
// "12ms", "1.4s", "2m3s".
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return d.Round(time.Second).String()
	}
}

// ElapsedMillis returns the whole milliseconds between start and end, never
// less than 1. Reports use it so an instant rule still shows a duration.
func ElapsedMillis(start, end time.Time) int64 {
	ms := end.Sub(start).Milliseconds()
	if ms < 1 {
		return 1
	}
	return ms
}
