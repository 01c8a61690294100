package data

import "math"

// SelectionKind tags the variant held by a Selection.
type SelectionKind int

const (
	// SelectPoint selects explicit point indices.
	SelectPoint SelectionKind = iota
	// SelectInterval selects an x range and optionally a y range.
	SelectInterval
	// SelectMulti is the union of several selections.
	SelectMulti
)

// Selection describes a user selection on a chart. Only the fields that
// belong to Kind are meaningful.
type Selection struct {
	Kind SelectionKind

	// Indices is set for SelectPoint.
	Indices []int

	// X and Y are set for SelectInterval. Y is nil for x-only brushes.
	X [2]float64
	Y *[2]float64

	// Selections is set for SelectMulti.
	Selections []Selection
}

// PointSelection selects the points at the given indices.
func PointSelection(indices ...int) Selection {
	return Selection{Kind: SelectPoint, Indices: indices}
}

// IntervalX selects every point with x in [min(a,b), max(a,b)].
func IntervalX(a, b float64) Selection {
	return Selection{Kind: SelectInterval, X: ordered(a, b)}
}

// IntervalXY selects a rectangle. Both axes are normalized.
func IntervalXY(x0, x1, y0, y1 float64) Selection {
	y := ordered(y0, y1)
	return Selection{Kind: SelectInterval, X: ordered(x0, x1), Y: &y}
}

// MultiSelection combines selections; a point matches if any member does.
func MultiSelection(selections ...Selection) Selection {
	return Selection{Kind: SelectMulti, Selections: selections}
}

func ordered(a, b float64) [2]float64 {
	return [2]float64{math.Min(a, b), math.Max(a, b)}
}

// IsEmpty reports whether the selection can match nothing: a point
// selection without indices, an interval of zero x-width, or a multi
// selection without members.
func (s Selection) IsEmpty() bool {
	switch s.Kind {
	case SelectPoint:
		return len(s.Indices) == 0
	case SelectInterval:
		return math.Abs(s.X[1]-s.X[0]) < Epsilon
	case SelectMulti:
		return len(s.Selections) == 0
	}
	return true
}

// Contains reports whether point p, located at position index in its
// series, is selected. Interval bounds are inclusive.
func (s Selection) Contains(p DataPoint, index int) bool {
	switch s.Kind {
	case SelectPoint:
		for _, i := range s.Indices {
			if i == index {
				return true
			}
		}
		return false
	case SelectInterval:
		if p.X < s.X[0] || p.X > s.X[1] {
			return false
		}
		if s.Y != nil && (p.Y < s.Y[0] || p.Y > s.Y[1]) {
			return false
		}
		return true
	case SelectMulti:
		for _, sub := range s.Selections {
			if sub.Contains(p, index) {
				return true
			}
		}
	}
	return false
}

// FilterBySelection returns the points of data matched by sel, in order.
func FilterBySelection(points []DataPoint, sel Selection) []DataPoint {
	out := make([]DataPoint, 0, len(points))
	for i, p := range points {
		if sel.Contains(p, i) {
			out = append(out, p)
		}
	}
	return out
}
