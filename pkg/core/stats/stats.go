package stats

import (
	"math"
	"sort"

	mstats "github.com/aclements/go-moremath/stats"
)

// Epsilon is the machine epsilon for float64.
const Epsilon = 2.220446049250313e-16

// Extent returns the minimum and maximum of xs.
func Extent(xs []float64) (lo, hi float64, ok bool) {
	if len(xs) == 0 {
		return 0, 0, false
	}
	lo, hi = mstats.Bounds(xs)
	return lo, hi, true
}

// Mean returns the arithmetic mean of xs.
func Mean(xs []float64) (float64, bool) {
	if len(xs) == 0 {
		return 0, false
	}
	return mstats.Mean(xs), true
}

// Sum returns the sum of xs, 0 for an empty slice.
func Sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

// Median returns the middle value of xs, averaging the two middle values
// for an even count. xs is sorted in place.
func Median(xs []float64) (float64, bool) {
	if len(xs) == 0 {
		return 0, false
	}
	sort.Float64s(xs)
	mid := len(xs) / 2
	if len(xs)%2 == 0 {
		return (xs[mid-1] + xs[mid]) / 2, true
	}
	return xs[mid], true
}

// StdDev returns the sample standard deviation of xs.
func StdDev(xs []float64) (float64, bool) {
	if len(xs) < 2 {
		return 0, false
	}
	return mstats.StdDev(xs), true
}

// Percentile returns the p-quantile (0 <= p <= 1) of an ascending slice by
// linear interpolation between closest ranks. It returns 0 for an empty
// slice.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	switch n {
	case 0:
		return 0
	case 1:
		return sorted[0]
	}
	h := p * float64(n-1)
	lo := int(math.Floor(h))
	if lo < 0 {
		return sorted[0]
	}
	if lo+1 >= n {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}

// finite returns xs without NaN and infinite values. xs itself is
// returned when every value is finite.
func finite(xs []float64) []float64 {
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			out := append(make([]float64, 0, len(xs)-1), xs[:i]...)
			for _, x := range xs[i+1:] {
				if !math.IsNaN(x) && !math.IsInf(x, 0) {
					out = append(out, x)
				}
			}
			return out
		}
	}
	return xs
}

func sortedCopy(xs []float64) []float64 {
	out := make([]float64, len(xs))
	copy(out, xs)
	sort.Float64s(out)
	return out
}
