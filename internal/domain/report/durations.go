package report

import (
	"fmt"
	"math"
	"time"
)

// MinutesBetween returns the elapsed minutes from start to end, fractional.
// Either side being the zero time yields 0. A reversed pair yields a
// negative value; formatting clamps it, callers never see an error.
func MinutesBetween(start, end time.Time) float64 {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	return end.Sub(start).Minutes()
}

// FormatDuration renders minutes as "<H>h <M>m". Zero or negative input
// renders exactly "0h 0m".
func FormatDuration(minutes float64) string {
	if minutes <= 0 {
		return "0h 0m"
	}
	hrs := int(math.Floor(minutes / 60))
	mins := int(math.Floor(math.Mod(minutes, 60)))
	return fmt.Sprintf("%dh %dm", hrs, mins)
}
