package utils

import (
	"cmp"
	"math"
)

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Argmax returns the index of the first maximal element, so ties go to the lowest index.
// Returns -1 for an empty slice.
func Argmax[T cmp.Ordered](slice []T) int {
	if len(slice) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(slice); i++ {
		if slice[i] > slice[best] {
			best = i
		}
	}
	return best
}

// MaxAbsDiff returns max_i |a[i] - b[i]|, the max-norm distance between two vectors of equal length.
func MaxAbsDiff(a, b []float64) float64 {
	if len(a) != len(b) {
		panic("vectors have different lengths")
	}
	delta := 0.0
	for i := range a {
		delta = math.Max(delta, math.Abs(a[i]-b[i]))
	}
	return delta
}
