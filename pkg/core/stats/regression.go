package stats

import (
	"math"

	"github.com/matzehuels/lodviz/pkg/core/data"
)

// LinearRegression fits y = intercept + slope*x by ordinary least squares.
// It fails for fewer than two points or when every x is the same.
func LinearRegression(points []data.DataPoint) (intercept, slope float64, ok bool) {
	n := float64(len(points))
	if len(points) < 2 {
		return 0, 0, false
	}
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	mx, my := sx/n, sy/n

	var num, den float64
	for _, p := range points {
		dx := p.X - mx
		num += dx * (p.Y - my)
		den += dx * dx
	}
	if math.Abs(den) < Epsilon {
		return 0, 0, false
	}
	slope = num / den
	return my - slope*mx, slope, true
}

// TrendLine evaluates the least-squares fit of points at the first and
// last x, giving the two endpoints of a straight overlay.
func TrendLine(points []data.DataPoint) ([2]data.DataPoint, bool) {
	b0, b1, ok := LinearRegression(points)
	if !ok {
		return [2]data.DataPoint{}, false
	}
	x0, x1 := points[0].X, points[len(points)-1].X
	return [2]data.DataPoint{
		data.Point(x0, b0+b1*x0),
		data.Point(x1, b0+b1*x1),
	}, true
}
