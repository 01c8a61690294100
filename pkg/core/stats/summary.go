package stats

// Summary collects the descriptive statistics reported for a sample.
type Summary struct {
	Count  int           `json:"count"`
	Sum    float64       `json:"sum"`
	Mean   float64       `json:"mean"`
	StdDev float64       `json:"std_dev"`
	Min    float64       `json:"min"`
	Max    float64       `json:"max"`
	Box    *BoxPlotStats `json:"box,omitempty"`
}

// Summarize computes a Summary without modifying xs. NaN and infinite
// values are treated as missing and do not count. StdDev is 0 for fewer
// than two values and Box is nil for an empty sample.
func Summarize(xs []float64) Summary {
	xs = finite(xs)
	s := Summary{Count: len(xs), Sum: Sum(xs)}
	if m, ok := Mean(xs); ok {
		s.Mean = m
	}
	if sd, ok := StdDev(xs); ok {
		s.StdDev = sd
	}
	if lo, hi, ok := Extent(xs); ok {
		s.Min, s.Max = lo, hi
	}
	if b, ok := BoxPlot(sortedCopy(xs)); ok {
		s.Box = &b
	}
	return s
}
