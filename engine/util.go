package engine

import "golang.org/x/exp/constraints"

// truncMean is the mean of xs rounded toward zero, or 0 for no values.
func truncMean[T constraints.Integer](xs []T) T {
	if len(xs) == 0 {
		return 0
	}
	var sum T
	for _, x := range xs {
		sum += x
	}
	return sum / T(len(xs))
}

// clamp restricts f to the inclusive range [low, high].
func clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}
