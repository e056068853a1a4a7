// Package trend maps wall-clock time onto the qualitative intraday
// price wave observed on the German fuel market.
package trend

import "time"

const (
	Rising  = "RISING (Morning Peak)"
	Falling = "FALLING (Lunch Wave)"
	Low     = "LOW (Evening Minimum)"
	Stable  = "STABLE"
)

// Classify buckets an hour of day (0-23) into a trend label. The three
// named windows are inclusive on both ends and disjoint; everything
// else is STABLE.
func Classify(hour int) string {
	switch {
	case hour >= 6 && hour <= 10:
		return Rising
	case hour >= 12 && hour <= 15:
		return Falling
	case hour >= 18 && hour <= 21:
		return Low
	default:
		return Stable
	}
}

func Current(now time.Time) string {
	return Classify(now.Hour())
}
