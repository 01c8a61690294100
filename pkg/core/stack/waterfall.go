package stack

import "github.com/matzehuels/lodviz/pkg/core/data"

// Segment is the vertical extent of one waterfall bar.
type Segment struct {
	Label   string             `json:"label"`
	Kind    data.WaterfallKind `json:"kind"`
	Value   float64            `json:"value"`
	Y0      float64            `json:"y0"`
	Y1      float64            `json:"y1"`
	Running float64            `json:"running"`
	Up      bool               `json:"up"`
}

// Waterfall converts bars into floating segments over a running total
// that starts at zero.
//
//   - Start resets the total to its value and spans [0, value].
//   - Delta spans the old and new total, with Y0 <= Y1.
//   - Total spans [0, total] and leaves the total unchanged.
func Waterfall(bars []data.WaterfallBar) []Segment {
	out := make([]Segment, 0, len(bars))
	var running float64
	for _, b := range bars {
		s := Segment{Label: b.Label, Kind: b.Kind, Value: b.Value, Up: b.Value >= 0}
		switch b.Kind {
		case data.WaterfallStartKind:
			running = b.Value
			s.Y0, s.Y1 = min(0, running), max(0, running)
		case data.WaterfallTotalKind:
			s.Y0, s.Y1 = min(0, running), max(0, running)
			s.Up = running >= 0
		default:
			base := running
			running += b.Value
			s.Y0, s.Y1 = min(base, running), max(base, running)
		}
		s.Running = running
		out = append(out, s)
	}
	return out
}

// Extent returns the lowest and highest y reached by segs, always
// including zero.
func Extent(segs []Segment) (lo, hi float64) {
	for _, s := range segs {
		lo = min(lo, s.Y0)
		hi = max(hi, s.Y1)
	}
	return lo, hi
}
