package clean

import "math"

// Mean returns the arithmetic mean of values, or 0 for no values.
func Mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// StdDev returns the population standard deviation of values around mean.
func StdDev(values []int, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	variance := 0.0
	for _, v := range values {
		d := float64(v) - mean
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(values)))
}

// Threshold is mean + factor*stddev of the durations. Episodes must last
// strictly longer than it to stay in a cleaned feed.
func Threshold(durations []int, factor float64) float64 {
	mean := Mean(durations)
	return mean + factor*StdDev(durations, mean)
}
