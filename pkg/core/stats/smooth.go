package stats

// SMA returns the simple moving average over each full window of xs, so
// the result has len(xs)-window+1 values. A window of 0 or one longer than
// xs yields an empty slice.
func SMA(xs []float64, window int) []float64 {
	if window <= 0 || window > len(xs) {
		return []float64{}
	}
	out := make([]float64, 0, len(xs)-window+1)
	for i := 0; i+window <= len(xs); i++ {
		out = append(out, Sum(xs[i:i+window])/float64(window))
	}
	return out
}

// EMA returns the exponential moving average of xs seeded with xs[0].
// alpha is clamped to [0, 1].
func EMA(xs []float64, alpha float64) []float64 {
	if len(xs) == 0 {
		return []float64{}
	}
	alpha = min(max(alpha, 0), 1)
	out := make([]float64, len(xs))
	out[0] = xs[0]
	for i := 1; i < len(xs); i++ {
		out[i] = alpha*xs[i] + (1-alpha)*out[i-1]
	}
	return out
}
