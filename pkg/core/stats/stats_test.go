package stats

import (
	"fmt"
	"math"
	"testing"

	"github.com/matzehuels/lodviz/pkg/core/data"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestExtent(t *testing.T) {
	lo, hi, ok := Extent([]float64{1, 5, 3, 9, 2})
	if !ok || lo != 1 || hi != 9 {
		t.Errorf("Extent = %v, %v, %v; want 1, 9, true", lo, hi, ok)
	}
	if _, _, ok := Extent(nil); ok {
		t.Error("Extent(nil) should not be ok")
	}
}

func TestMean(t *testing.T) {
	if m, ok := Mean([]float64{1, 2, 3, 4, 5}); !ok || !approx(m, 3) {
		t.Errorf("Mean = %v, %v; want 3", m, ok)
	}
	if _, ok := Mean(nil); ok {
		t.Error("Mean(nil) should not be ok")
	}
}

func TestSum(t *testing.T) {
	if got := Sum([]float64{1.5, 2.5, -1}); got != 3 {
		t.Errorf("Sum = %v, want 3", got)
	}
	if got := Sum(nil); got != 0 {
		t.Errorf("Sum(nil) = %v, want 0", got)
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want float64
	}{
		{"odd", []float64{3, 1, 2}, 2},
		{"even", []float64{4, 1, 3, 2}, 2.5},
		{"single", []float64{7}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Median(tt.in)
			if !ok || !approx(got, tt.want) {
				t.Errorf("Median = %v, %v; want %v", got, ok, tt.want)
			}
		})
	}

	xs := []float64{3, 1, 2}
	Median(xs)
	if fmt.Sprint(xs) != "[1 2 3]" {
		t.Errorf("Median should sort in place, got %v", xs)
	}
	if _, ok := Median(nil); ok {
		t.Error("Median(nil) should not be ok")
	}
}

func TestStdDev(t *testing.T) {
	sd, ok := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if !ok || math.Abs(sd-math.Sqrt(32.0/7)) > 1e-9 {
		t.Errorf("StdDev = %v, %v; want %v", sd, ok, math.Sqrt(32.0/7))
	}
	if _, ok := StdDev([]float64{1}); ok {
		t.Error("StdDev of one value should not be ok")
	}
}

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	tests := []struct {
		p, want float64
	}{
		{0, 1},
		{0.5, 2.5},
		{0.25, 1.75},
		{1, 4},
	}
	for _, tt := range tests {
		if got := Percentile(sorted, tt.p); !approx(got, tt.want) {
			t.Errorf("Percentile(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if got := Percentile(nil, 0.5); got != 0 {
		t.Errorf("Percentile(nil) = %v, want 0", got)
	}
	if got := Percentile([]float64{42}, 0.9); got != 42 {
		t.Errorf("Percentile(single) = %v, want 42", got)
	}
}

func TestBoxPlot(t *testing.T) {
	b, ok := BoxPlot([]float64{100, 9, 8, 7, 6, 5, 4, 3, 2, 1})
	if !ok {
		t.Fatal("BoxPlot not ok")
	}
	checks := []struct {
		name      string
		got, want float64
	}{
		{"Q1", b.Q1, 3.25},
		{"Median", b.Median, 5.5},
		{"Q3", b.Q3, 7.75},
		{"IQR", b.IQR, 4.5},
		{"LowerWhisker", b.LowerWhisker, 1},
		{"UpperWhisker", b.UpperWhisker, 9},
		{"Mean", b.Mean, 14.5},
	}
	for _, c := range checks {
		if !approx(c.got, c.want) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if fmt.Sprint(b.Outliers) != "[100]" {
		t.Errorf("Outliers = %v, want [100]", b.Outliers)
	}
	if b.LowerWhisker < b.LowerFence() || b.UpperWhisker > b.UpperFence() {
		t.Error("whiskers must lie inside the fences")
	}
}

func TestBoxPlotNoOutliers(t *testing.T) {
	b, ok := BoxPlot([]float64{1, 2, 3, 4, 5})
	if !ok {
		t.Fatal("BoxPlot not ok")
	}
	if len(b.Outliers) != 0 || b.Outliers == nil {
		t.Errorf("Outliers = %#v, want empty non-nil", b.Outliers)
	}
	if _, ok := BoxPlot(nil); ok {
		t.Error("BoxPlot(nil) should not be ok")
	}
}

func TestHistogramFixed(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	bins := Histogram(xs, Fixed(5))
	want := []int{2, 2, 2, 2, 3}
	if len(bins) != len(want) {
		t.Fatalf("got %d bins, want %d", len(bins), len(want))
	}
	for i, b := range bins {
		if b.Count != want[i] {
			t.Errorf("bin %d count = %d, want %d", i, b.Count, want[i])
		}
		if !approx(b.X0, float64(2*i)) || !approx(b.X1, float64(2*i+2)) {
			t.Errorf("bin %d = [%v, %v)", i, b.X0, b.X1)
		}
	}
}

func TestHistogramRules(t *testing.T) {
	uniform := make([]float64, 100)
	for i := range uniform {
		uniform[i] = float64(i)
	}
	tests := []struct {
		name  string
		xs    []float64
		rule  Rule
		nbins int
	}{
		{"sturges", []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, Sturges, 5},
		{"fd falls back to sturges", []float64{1, 1, 1, 1, 1, 1, 1, 5}, FreedmanDiaconis, 4},
		{"zero value is fd", []float64{1, 1, 1, 1, 1, 1, 1, 5}, Rule{}, 4},
		{"fixed zero clamps to one", uniform, Fixed(0), 1},
		{"scott", uniform, Scott, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bins := Histogram(tt.xs, tt.rule)
			if len(bins) != tt.nbins {
				t.Errorf("Histogram(%v) = %d bins, want %d", tt.rule, len(bins), tt.nbins)
			}
			total := 0
			for _, b := range bins {
				total += b.Count
			}
			if total != len(tt.xs) {
				t.Errorf("counts sum to %d, want %d", total, len(tt.xs))
			}
		})
	}
}

func TestHistogramDegenerate(t *testing.T) {
	bins := Histogram([]float64{3, 3, 3}, Sturges)
	if len(bins) != 1 || bins[0] != (Bin{X0: 3, X1: 4, Count: 3}) {
		t.Errorf("Histogram(constant) = %+v", bins)
	}
	if bins := Histogram(nil, Sturges); len(bins) != 0 {
		t.Errorf("Histogram(nil) = %+v, want empty", bins)
	}
}

func TestHistogramNonFinite(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	tests := []struct {
		name  string
		xs    []float64
		rule  Rule
		nbins int
		count int
	}{
		{"nan dropped", []float64{0, 1, nan, 2, 3, 4}, Fixed(2), 2, 5},
		{"leading nan", []float64{nan, 0, 10}, Fixed(5), 5, 2},
		{"inf dropped", []float64{-inf, 0, 5, 10, inf}, Sturges, 3, 3},
		{"sturges with nan", []float64{1, 2, 3, nan, 4, 5, 6, 7, 8}, Sturges, 4, 8},
		{"only nan", []float64{nan, nan}, Sturges, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bins := Histogram(tt.xs, tt.rule)
			if len(bins) != tt.nbins {
				t.Fatalf("Histogram = %d bins, want %d: %+v", len(bins), tt.nbins, bins)
			}
			total := 0
			for _, b := range bins {
				total += b.Count
				if math.IsNaN(b.X0) || math.IsNaN(b.X1) || math.IsInf(b.X0, 0) || math.IsInf(b.X1, 0) {
					t.Errorf("bin edges not finite: %+v", b)
				}
			}
			if total != tt.count {
				t.Errorf("counts sum to %d, want %d", total, tt.count)
			}
		})
	}
}

func TestParseRule(t *testing.T) {
	tests := []struct {
		in      string
		want    Rule
		wantErr bool
	}{
		{"", FreedmanDiaconis, false},
		{"fd", FreedmanDiaconis, false},
		{"Sturges", Sturges, false},
		{"scott", Scott, false},
		{"fixed:12", Fixed(12), false},
		{"fixed:0", Rule{}, true},
		{"fixed:x", Rule{}, true},
		{"rice", Rule{}, true},
	}
	for _, tt := range tests {
		got, err := ParseRule(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRule(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseRule(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	var r Rule
	if err := r.UnmarshalText([]byte("fixed:7")); err != nil || r.Bins() != 7 {
		t.Errorf("UnmarshalText = %v, %v", r, err)
	}
	if b, _ := r.MarshalText(); string(b) != "fixed:7" {
		t.Errorf("MarshalText = %s", b)
	}
}

func TestGaussianKDE(t *testing.T) {
	xs := []float64{1, 2, 2.5, 3, 4, 5}
	k, ok := GaussianKDE(xs, 200)
	if !ok {
		t.Fatal("GaussianKDE not ok")
	}
	if len(k.Xs) != 200 || len(k.Ys) != 200 {
		t.Fatalf("got %d/%d samples, want 200", len(k.Xs), len(k.Ys))
	}

	sd, _ := StdDev(xs)
	h := Bandwidth(sd, len(xs))
	if !approx(k.Xs[0], 1-3*h) || !approx(k.Xs[199], 5+3*h) {
		t.Errorf("grid = [%v, %v], want [%v, %v]", k.Xs[0], k.Xs[199], 1-3*h, 5+3*h)
	}

	// Trapezoid integral over the grid is close to 1.
	var area float64
	for i := 1; i < len(k.Xs); i++ {
		area += (k.Xs[i] - k.Xs[i-1]) * (k.Ys[i] + k.Ys[i-1]) / 2
	}
	if math.Abs(area-1) > 0.02 {
		t.Errorf("density integrates to %v, want about 1", area)
	}
}

func TestGaussianKDEFailures(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		n    int
	}{
		{"one value", []float64{1}, 10},
		{"zero points", []float64{1, 2}, 0},
		{"no spread", []float64{2, 2, 2}, 10},
	}
	for _, tt := range tests {
		if _, ok := GaussianKDE(tt.xs, tt.n); ok {
			t.Errorf("%s: GaussianKDE should fail", tt.name)
		}
	}
}

func TestGaussianKDESinglePoint(t *testing.T) {
	k, ok := GaussianKDE([]float64{1, 3}, 1)
	if !ok || len(k.Xs) != 1 {
		t.Fatalf("GaussianKDE(n=1) = %+v, %v", k, ok)
	}
}

func TestSMA(t *testing.T) {
	if got := SMA([]float64{1, 2, 3, 4, 5}, 3); fmt.Sprint(got) != "[2 3 4]" {
		t.Errorf("SMA = %v, want [2 3 4]", got)
	}
	if got := SMA([]float64{1, 2}, 0); len(got) != 0 {
		t.Errorf("SMA(window 0) = %v", got)
	}
	if got := SMA([]float64{1, 2}, 3); len(got) != 0 {
		t.Errorf("SMA(window > n) = %v", got)
	}
}

func TestEMA(t *testing.T) {
	tests := []struct {
		alpha float64
		want  string
	}{
		{0.5, "[1 1.5 2.25]"},
		{2, "[1 2 3]"},
		{-1, "[1 1 1]"},
	}
	for _, tt := range tests {
		if got := EMA([]float64{1, 2, 3}, tt.alpha); fmt.Sprint(got) != tt.want {
			t.Errorf("EMA(alpha %v) = %v, want %v", tt.alpha, got, tt.want)
		}
	}
	if got := EMA(nil, 0.5); len(got) != 0 {
		t.Errorf("EMA(nil) = %v", got)
	}
}

func TestLinearRegression(t *testing.T) {
	pts := []data.DataPoint{data.Point(0, 1), data.Point(1, 3), data.Point(2, 5), data.Point(3, 7)}
	b0, b1, ok := LinearRegression(pts)
	if !ok || !approx(b0, 1) || !approx(b1, 2) {
		t.Errorf("LinearRegression = %v, %v, %v; want 1, 2", b0, b1, ok)
	}

	if _, _, ok := LinearRegression(pts[:1]); ok {
		t.Error("one point should not fit")
	}
	vertical := []data.DataPoint{data.Point(2, 1), data.Point(2, 5)}
	if _, _, ok := LinearRegression(vertical); ok {
		t.Error("identical x should not fit")
	}

	line, ok := TrendLine(pts)
	if !ok || line[0] != data.Point(0, 1) || line[1] != data.Point(3, 7) {
		t.Errorf("TrendLine = %v, %v", line, ok)
	}
}

func TestSummarize(t *testing.T) {
	xs := []float64{5, 1, 3}
	s := Summarize(xs)
	if s.Count != 3 || s.Sum != 9 || !approx(s.Mean, 3) || s.Min != 1 || s.Max != 5 {
		t.Errorf("Summarize = %+v", s)
	}
	if !approx(s.StdDev, 2) {
		t.Errorf("StdDev = %v, want 2", s.StdDev)
	}
	if s.Box == nil || s.Box.Median != 3 {
		t.Errorf("Box = %+v", s.Box)
	}
	if fmt.Sprint(xs) != "[5 1 3]" {
		t.Errorf("Summarize modified its input: %v", xs)
	}
	if empty := Summarize(nil); empty.Box != nil || empty.Count != 0 {
		t.Errorf("Summarize(nil) = %+v", empty)
	}
}

func TestSummarizeNonFinite(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	tests := []struct {
		name     string
		xs       []float64
		count    int
		mean     float64
		min, max float64
	}{
		{"nan", []float64{5, nan, 1, 3}, 3, 3, 1, 5},
		{"inf", []float64{inf, 2, 4, -inf}, 2, 3, 2, 4},
		{"nan first", []float64{nan, 10}, 1, 10, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.xs)
			if s.Count != tt.count || !approx(s.Mean, tt.mean) || s.Min != tt.min || s.Max != tt.max {
				t.Errorf("Summarize(%v) = %+v", tt.xs, s)
			}
			for _, v := range []float64{s.Sum, s.Mean, s.StdDev} {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Errorf("Summarize(%v) has non-finite field: %+v", tt.xs, s)
				}
			}
			if s.Box == nil || math.IsNaN(s.Box.Median) {
				t.Errorf("Box = %+v", s.Box)
			}
		})
	}

	if s := Summarize([]float64{nan, inf}); s.Count != 0 || s.Box != nil {
		t.Errorf("Summarize(all non-finite) = %+v, want empty summary", s)
	}
}

func ExampleHistogram() {
	for _, b := range Histogram([]float64{1, 2, 2, 3, 3, 3, 4}, Fixed(3)) {
		fmt.Printf("[%.0f, %.0f) %d\n", b.X0, b.X1, b.Count)
	}
	// Output:
	// [1, 2) 1
	// [2, 3) 2
	// [3, 4) 4
}

func ExampleBoxPlot() {
	b, _ := BoxPlot([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100})
	fmt.Println(b.Median, b.UpperWhisker, b.Outliers)
	// Output: 5.5 9 [100]
}
