package xmath

// PercentOf returns num as a percentage of den. A zero denominator yields 0
// rather than NaN or Inf.
func PercentOf(num int, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den) * 100
}

// GrowthRate returns the relative change from previous to current in percent.
// A previous of 0 yields 100 when current is positive and 0 when both are 0.
func GrowthRate(current int, previous int) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}

// ActivityLevel buckets a daily event count into a 1-4 heatmap level.
// Lower bounds are inclusive: 1 -> 1, 2-3 -> 2, 4-5 -> 3, 6+ -> 4.
func ActivityLevel(count int) int {
	switch {
	case count > 5:
		return 4
	case count > 3:
		return 3
	case count > 1:
		return 2
	default:
		return 1
	}
}
