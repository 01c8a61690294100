package downsample

import (
	"math"
	"sort"

	"github.com/matzehuels/lodviz/pkg/core/data"
)

// M4 downsamples points for a line drawn nPixels wide.
//
// The x-range [points[0].X, points[len-1].X] is split into nPixels
// equal-width buckets; the last bucket also includes its right edge. For
// each non-empty bucket the first, last, minimum-y and maximum-y points are
// emitted in x order, skipping any point equal to the previously emitted
// one. Points must be sorted by x.
//
// Empty input or nPixels == 0 yields an empty slice. Inputs that already
// fit (len <= 4*nPixels) or span no x-range are copied unchanged.
func M4(points []data.DataPoint, nPixels int) []data.DataPoint {
	if len(points) == 0 || nPixels <= 0 {
		return []data.DataPoint{}
	}
	if len(points) <= 4*nPixels {
		return clone(points)
	}

	xMin := points[0].X
	xMax := points[len(points)-1].X
	xRange := xMax - xMin
	if xRange <= 0 {
		return clone(points)
	}

	width := xRange / float64(nPixels)
	out := make([]data.DataPoint, 0, 4*nPixels)

	for b := 0; b < nPixels; b++ {
		start := xMin + float64(b)*width
		end := start + width
		last := b == nPixels-1

		var (
			first, final, lo, hi data.DataPoint
			seen                 bool
		)
		for _, p := range points {
			if p.X < start || (p.X >= end && !last) {
				continue
			}
			if !seen {
				first, lo, hi = p, p, p
				seen = true
			}
			final = p
			if p.Y < lo.Y {
				lo = p
			}
			// Ties move the maximum to the later point.
			if p.Y >= hi.Y {
				hi = p
			}
		}
		if !seen {
			continue
		}

		four := []data.DataPoint{first, final, lo, hi}
		sort.SliceStable(four, func(i, j int) bool { return four[i].X < four[j].X })
		for _, p := range four {
			if n := len(out); n > 0 && samePoint(out[n-1], p) {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

func samePoint(a, b data.DataPoint) bool {
	return math.Abs(a.X-b.X) < data.Epsilon && math.Abs(a.Y-b.Y) < data.Epsilon
}
