package downsample

import (
	"math"

	"github.com/matzehuels/lodviz/pkg/core/data"
)

// LTTB downsamples points to threshold points with the
// Largest-Triangle-Three-Buckets algorithm.
//
// A threshold of 0, or one at least len(points), returns a copy of the
// input. A threshold of 1 returns only the first point and 2 returns the
// first and last points.
func LTTB(points []data.DataPoint, threshold int) []data.DataPoint {
	n := len(points)
	if threshold >= n || threshold == 0 {
		return clone(points)
	}
	switch threshold {
	case 1:
		return []data.DataPoint{points[0]}
	case 2:
		return []data.DataPoint{points[0], points[n-1]}
	}

	out := make([]data.DataPoint, 0, threshold)
	out = append(out, points[0])

	// Interior points are split into threshold-2 buckets of fractional size.
	size := float64(n-2) / float64(threshold-2)
	a := 0

	for i := 0; i < threshold-2; i++ {
		avgStart := int(math.Floor(float64(i+1)*size)) + 1
		avgEnd := min(int(math.Floor(float64(i+2)*size))+1, n)

		var avgX, avgY float64
		if count := avgEnd - avgStart; count > 0 {
			for _, p := range points[avgStart:avgEnd] {
				avgX += p.X
				avgY += p.Y
			}
			avgX /= float64(count)
			avgY /= float64(count)
		}

		lo := int(math.Floor(float64(i)*size)) + 1
		hi := avgStart

		pa := points[a]
		maxArea := -1.0
		next := lo
		for j := lo; j < hi; j++ {
			pb := points[j]
			area := math.Abs((pa.X-avgX)*(pb.Y-pa.Y) - (pa.X-pb.X)*(avgY-pa.Y))
			if area > maxArea {
				maxArea = area
				next = j
			}
		}

		out = append(out, points[next])
		a = next
	}

	return append(out, points[n-1])
}

func clone(points []data.DataPoint) []data.DataPoint {
	out := make([]data.DataPoint, len(points))
	copy(out, points)
	return out
}
