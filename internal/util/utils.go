package util

import "cmp"

// Clamp restricts a value to be between min and max
func Clamp[T cmp.Ordered](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Clamp01 restricts a value to [0, 1]; NaN maps to 0
func Clamp01(value float32) float32 {
	if value != value {
		return 0
	}
	return Clamp(value, 0, 1)
}

// Lerp performs linear interpolation between a and b with t in [0,1]
func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Within reports whether t lies in the half-open window [start, end)
func Within(t, start, end float64) bool {
	return t >= start && t < end
}

// Since returns the seconds elapsed since an armed timer, or -1 when the
// timer holds the "not started" sentinel
func Since(now, start float64) float64 {
	if start < 0 {
		return -1
	}
	return now - start
}
