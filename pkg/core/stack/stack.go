// Package stack lays out stacked bar and area series and waterfall charts.
//
// Stacking is cumulative per category: each series starts where the
// previous series ended. The category count is taken from the first
// series. Values beyond it are drawn from zero and never become a baseline
// for later series.
package stack

// Value is one stacked segment spanning [Y0, Y1].
type Value struct {
	Y0 float64 `json:"y0"`
	Y1 float64 `json:"y1"`
}

// Stacked holds the segments of one input series.
type Stacked struct {
	Index  int     `json:"index"`
	Values []Value `json:"values"`
}

// Series stacks each row of values on top of the rows before it.
func Series(values [][]float64) []Stacked {
	if len(values) == 0 {
		return []Stacked{}
	}

	baselines := make([]float64, len(values[0]))
	out := make([]Stacked, 0, len(values))
	for si, row := range values {
		s := Stacked{Index: si, Values: make([]Value, len(row))}
		for ci, v := range row {
			var y0 float64
			if ci < len(baselines) {
				y0 = baselines[ci]
			}
			s.Values[ci] = Value{Y0: y0, Y1: y0 + v}
		}
		for ci := range min(len(row), len(baselines)) {
			baselines[ci] = s.Values[ci].Y1
		}
		out = append(out, s)
	}
	return out
}
