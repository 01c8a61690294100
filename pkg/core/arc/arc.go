// Package arc computes pie, donut and radar geometry.
//
// Angles are in radians, measured clockwise in screen space (y grows
// downward) with 0 pointing right. Slices and radar spokes start at
// 12 o'clock, which is -π/2.
package arc

import (
	"fmt"
	"math"
)

// Start is the angle of 12 o'clock.
const Start = -math.Pi / 2

// Slice is one pie or donut segment.
type Slice struct {
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// MidAngle returns the angle halfway through the slice.
func (s Slice) MidAngle() float64 {
	return (s.StartAngle + s.EndAngle) / 2
}

// Span returns the angular size of the slice.
func (s Slice) Span() float64 {
	return s.EndAngle - s.StartAngle
}

// Counted reports whether v gets a slice: it must be positive and finite.
func Counted(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Compute lays out one slice per counted value, proportional to its share
// of the counted total. Other values are skipped. If nothing is counted
// the result is empty.
func Compute(values []float64) []Slice {
	var total float64
	for _, v := range values {
		if Counted(v) {
			total += v
		}
	}
	if total <= 0 {
		return []Slice{}
	}

	out := make([]Slice, 0, len(values))
	angle := Start
	for _, v := range values {
		if !Counted(v) {
			continue
		}
		frac := v / total
		end := angle + frac*2*math.Pi
		out = append(out, Slice{
			StartAngle: angle,
			EndAngle:   end,
			Value:      v,
			Percentage: frac * 100,
		})
		angle = end
	}
	return out
}

// Path returns the outline of an annular sector as path commands with two
// decimals. An inner radius <= 0 draws a pie wedge from the center;
// otherwise the outer arc runs clockwise and the inner arc back.
func Path(cx, cy, outer, inner, start, end float64) string {
	large := 0
	if math.Abs(end-start) > math.Pi {
		large = 1
	}
	sx, sy := polar(cx, cy, outer, start)
	ex, ey := polar(cx, cy, outer, end)

	if inner <= 0 {
		return fmt.Sprintf("M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f Z",
			cx, cy, sx, sy, outer, outer, large, ex, ey)
	}

	ix0, iy0 := polar(cx, cy, inner, end)
	ix1, iy1 := polar(cx, cy, inner, start)
	return fmt.Sprintf("M %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 0 %.2f %.2f Z",
		sx, sy, outer, outer, large, ex, ey,
		ix0, iy0, inner, inner, large, ix1, iy1)
}

// Centroid returns the point at radius r on the bisector of [start, end],
// used to anchor slice labels.
func Centroid(cx, cy, r, start, end float64) (x, y float64) {
	return polar(cx, cy, r, (start+end)/2)
}

func polar(cx, cy, r, angle float64) (x, y float64) {
	return cx + r*math.Cos(angle), cy + r*math.Sin(angle)
}
