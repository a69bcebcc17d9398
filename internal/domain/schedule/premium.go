package schedule

// FreeIntervalCount is how many review intervals a non-premium user gets:
// the first two of the configured list, {1, 3} days with the defaults.
const FreeIntervalCount = 2

// EffectiveIntervals applies the premium policy to the user's configured
// interval list. Premium users get the full list; free users get a fixed
// two-element prefix. The input slice is never mutated; the raw interval
// preference stays intact regardless of subscription state.
func EffectiveIntervals(isPremium bool, configured []int) []int {
	n := len(configured)
	if !isPremium && n > FreeIntervalCount {
		n = FreeIntervalCount
	}
	out := make([]int, n)
	copy(out, configured[:n])
	return out
}

// TruncateToCount caps the interval list at the effective review count,
// the task-level override resolved against the settings default. A count
// below 1 leaves the list unchanged.
func TruncateToCount(intervals []int, count int) []int {
	if count < 1 || count >= len(intervals) {
		return intervals
	}
	return intervals[:count]
}
