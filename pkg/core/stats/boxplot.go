package stats

import "sort"

// BoxPlotStats summarizes a distribution for a box-and-whisker mark.
//
// Whiskers are the most extreme observed values that still lie inside the
// Tukey fences (Q1 - 1.5 IQR, Q3 + 1.5 IQR). Outliers lie strictly outside
// the fences and are listed in ascending order.
type BoxPlotStats struct {
	Q1           float64   `json:"q1"`
	Median       float64   `json:"median"`
	Q3           float64   `json:"q3"`
	IQR          float64   `json:"iqr"`
	LowerWhisker float64   `json:"lower_whisker"`
	UpperWhisker float64   `json:"upper_whisker"`
	Mean         float64   `json:"mean"`
	Outliers     []float64 `json:"outliers"`
}

// LowerFence returns Q1 - 1.5 IQR.
func (b BoxPlotStats) LowerFence() float64 { return b.Q1 - 1.5*b.IQR }

// UpperFence returns Q3 + 1.5 IQR.
func (b BoxPlotStats) UpperFence() float64 { return b.Q3 + 1.5*b.IQR }

// BoxPlot computes box plot statistics for xs, which is sorted in place.
func BoxPlot(xs []float64) (BoxPlotStats, bool) {
	if len(xs) == 0 {
		return BoxPlotStats{}, false
	}
	sort.Float64s(xs)

	b := BoxPlotStats{
		Q1:     Percentile(xs, 0.25),
		Median: Percentile(xs, 0.5),
		Q3:     Percentile(xs, 0.75),
	}
	b.IQR = b.Q3 - b.Q1
	lf, uf := b.LowerFence(), b.UpperFence()

	b.LowerWhisker = b.Q1
	for _, x := range xs {
		if x >= lf {
			b.LowerWhisker = x
			break
		}
	}
	b.UpperWhisker = b.Q3
	for i := len(xs) - 1; i >= 0; i-- {
		if xs[i] <= uf {
			b.UpperWhisker = xs[i]
			break
		}
	}

	b.Mean = Sum(xs) / float64(len(xs))
	b.Outliers = []float64{}
	for _, x := range xs {
		if x < lf || x > uf {
			b.Outliers = append(b.Outliers, x)
		}
	}
	return b, true
}
