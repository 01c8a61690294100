package stats

import (
	"math"

	mstats "github.com/aclements/go-moremath/stats"
)

// KDE is a density curve sampled on an evenly spaced grid.
type KDE struct {
	Xs []float64 `json:"xs"`
	Ys []float64 `json:"ys"`
}

// Bandwidth returns Silverman's rule-of-thumb bandwidth 1.06 σ n^(-1/5).
func Bandwidth(sd float64, n int) float64 {
	return 1.06 * sd * math.Pow(float64(n), -0.2)
}

// GaussianKDE estimates the density of xs with a Gaussian kernel. The
// curve is sampled at n points spanning three bandwidths beyond the data
// on each side. It fails for fewer than two values, n == 0, or zero
// spread.
func GaussianKDE(xs []float64, n int) (KDE, bool) {
	if len(xs) < 2 || n <= 0 {
		return KDE{}, false
	}
	sd, ok := StdDev(xs)
	if !ok || sd <= 0 {
		return KDE{}, false
	}
	lo, hi, _ := Extent(xs)

	h := Bandwidth(sd, len(xs))
	gridLo, gridHi := lo-3*h, hi+3*h
	kernel := mstats.NormalDist{Mu: 0, Sigma: 1}
	scale := 1 / (h * float64(len(xs)))
	steps := float64(max(n-1, 1))

	k := KDE{Xs: make([]float64, n), Ys: make([]float64, n)}
	for i := range k.Xs {
		x := gridLo + (gridHi-gridLo)*float64(i)/steps
		var y float64
		for _, xi := range xs {
			y += kernel.PDF((x - xi) / h)
		}
		k.Xs[i] = x
		k.Ys[i] = y * scale
	}
	return k, true
}
