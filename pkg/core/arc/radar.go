package arc

import (
	"math"

	"github.com/matzehuels/lodviz/pkg/core/data"
)

// SpokeAngle returns the angle of spoke i out of n, starting at 12 o'clock
// and proceeding clockwise.
func SpokeAngle(i, n int) float64 {
	if n <= 0 {
		return Start
	}
	return Start + 2*math.Pi*float64(i)/float64(n)
}

// RadarVertices places one vertex per value on its spoke. The distance
// from the center is radius * value/maxValue, clamped to [0, radius]. A
// non-positive maxValue collapses every vertex onto the center.
func RadarVertices(cx, cy, radius float64, values []float64, maxValue float64) []data.DataPoint {
	out := make([]data.DataPoint, len(values))
	for i, v := range values {
		var frac float64
		if maxValue > 0 {
			frac = min(max(v/maxValue, 0), 1)
		}
		x, y := polar(cx, cy, frac*radius, SpokeAngle(i, len(values)))
		out[i] = data.Point(x, y)
	}
	return out
}

// RadarGrid returns the vertices of the concentric polygon at each of
// levels evenly spaced rings for n spokes, innermost first.
func RadarGrid(cx, cy, radius float64, n, levels int) [][]data.DataPoint {
	if n <= 0 || levels <= 0 {
		return [][]data.DataPoint{}
	}
	rings := make([][]data.DataPoint, levels)
	for l := range rings {
		r := radius * float64(l+1) / float64(levels)
		ring := make([]data.DataPoint, n)
		for i := range ring {
			x, y := polar(cx, cy, r, SpokeAngle(i, n))
			ring[i] = data.Point(x, y)
		}
		rings[l] = ring
	}
	return rings
}
