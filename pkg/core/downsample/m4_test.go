package downsample

import (
	"fmt"
	"testing"

	"github.com/matzehuels/lodviz/pkg/core/data"
)

func TestM4PassThrough(t *testing.T) {
	pts := sine(40)
	if got := M4(pts, 10); len(got) != len(pts) {
		t.Errorf("M4(40, 10) returned %d points, want 40", len(got))
	}
}

func TestM4Empty(t *testing.T) {
	if got := M4(nil, 100); len(got) != 0 {
		t.Errorf("M4(nil) = %v, want empty", got)
	}
	if got := M4(sine(100), 0); len(got) != 0 {
		t.Errorf("M4(100, 0) = %v, want empty", got)
	}
}

func TestM4ZeroRange(t *testing.T) {
	pts := make([]data.DataPoint, 50)
	for i := range pts {
		pts[i] = data.Point(1, float64(i))
	}
	if got := M4(pts, 2); len(got) != 50 {
		t.Errorf("M4 on zero x-range returned %d points, want 50", len(got))
	}
}

func TestM4Reduces(t *testing.T) {
	pts := sine(10_000)
	got := M4(pts, 200)
	if len(got) == 0 || len(got) > 4*200 {
		t.Fatalf("M4(10000, 200) returned %d points", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].X < got[i-1].X {
			t.Fatalf("M4 output not sorted at %d: %v > %v", i, got[i-1].X, got[i].X)
		}
	}
	if got[0] != pts[0] || got[len(got)-1] != pts[len(pts)-1] {
		t.Error("M4 should keep the first and last points")
	}
}

func TestM4KeepsExtremes(t *testing.T) {
	pts := make([]data.DataPoint, 1000)
	for i := range pts {
		pts[i] = data.Point(float64(i), 0)
	}
	pts[500].Y = 100
	pts[700].Y = -100

	var spike, dip bool
	for _, p := range M4(pts, 10) {
		spike = spike || p == pts[500]
		dip = dip || p == pts[700]
	}
	if !spike || !dip {
		t.Errorf("M4 lost an extreme: spike=%v dip=%v", spike, dip)
	}
}

func TestM4FlatBuckets(t *testing.T) {
	pts := make([]data.DataPoint, 10)
	for i := range pts {
		pts[i] = data.Point(float64(i), 0)
	}
	got := M4(pts, 2)
	want := []data.DataPoint{
		data.Point(0, 0), data.Point(4, 0),
		data.Point(5, 0), data.Point(9, 0),
	}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("M4 = %v, want %v", got, want)
	}
}

func TestThinOHLC(t *testing.T) {
	bars := func(n int) []data.OhlcBar {
		out := make([]data.OhlcBar, n)
		for i := range out {
			c := float64(i % 17)
			out[i] = data.OhlcBar{Timestamp: float64(i * 60), Open: c, High: c + 1, Low: c - 1, Close: c}
		}
		return out
	}

	small := bars(MaxOHLCBars)
	if got := ThinOHLC(small, 600); len(got) != MaxOHLCBars {
		t.Errorf("ThinOHLC(%d) = %d bars, want unchanged", MaxOHLCBars, len(got))
	}

	large := bars(5000)
	got := ThinOHLC(large, 600)
	if len(got) == 0 || len(got) > 4*100 {
		t.Fatalf("ThinOHLC(5000, 600) = %d bars", len(got))
	}
	if got[0] != large[0] || got[len(got)-1] != large[len(large)-1] {
		t.Error("ThinOHLC should keep the first and last bars")
	}
	for i := 1; i < len(got); i++ {
		if got[i].Timestamp <= got[i-1].Timestamp {
			t.Fatalf("ThinOHLC reordered bars at %d", i)
		}
	}

	// Narrow charts still get at least 20 columns.
	if got := ThinOHLC(large, 10); len(got) < 20 {
		t.Errorf("ThinOHLC(width 10) = %d bars, want at least 20", len(got))
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in      string
		want    Algorithm
		wantErr bool
	}{
		{"lttb", AlgoLTTB, false},
		{" M4 ", AlgoM4, false},
		{"none", AlgoNone, false},
		{"", AlgoNone, false},
		{"minmax", "", true},
	}
	for _, tt := range tests {
		got, err := ParseAlgorithm(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAlgorithm(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAlgorithm(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestApply(t *testing.T) {
	pts := sine(1000)
	if got := Apply(AlgoLTTB, pts, 50); len(got) != 50 {
		t.Errorf("Apply(lttb) = %d points, want 50", len(got))
	}
	if got := Apply(AlgoM4, pts, 50); len(got) > 200 {
		t.Errorf("Apply(m4) = %d points, want <= 200", len(got))
	}
	if got := Apply(AlgoNone, pts, 50); len(got) != 1000 {
		t.Errorf("Apply(none) = %d points, want 1000", len(got))
	}
}

func ExampleM4() {
	pts := make([]data.DataPoint, 100)
	for i := range pts {
		pts[i] = data.Point(float64(i), 0)
	}
	pts[42].Y = 7
	for _, p := range M4(pts, 1) {
		fmt.Println(p)
	}
	// Output:
	// {0 0}
	// {42 7}
	// {99 0}
}
