package stack

import (
	"fmt"
	"testing"

	"github.com/matzehuels/lodviz/pkg/core/data"
)

func TestSeries(t *testing.T) {
	got := Series([][]float64{
		{10, 20, 30},
		{5, 5, 5},
		{1, 2, 3},
	})
	if len(got) != 3 {
		t.Fatalf("Series returned %d rows, want 3", len(got))
	}
	want := [][]Value{
		{{0, 10}, {0, 20}, {0, 30}},
		{{10, 15}, {20, 25}, {30, 35}},
		{{15, 16}, {25, 27}, {35, 38}},
	}
	for si := range want {
		if got[si].Index != si {
			t.Errorf("row %d Index = %d", si, got[si].Index)
		}
		if fmt.Sprint(got[si].Values) != fmt.Sprint(want[si]) {
			t.Errorf("row %d = %v, want %v", si, got[si].Values, want[si])
		}
	}
}

func TestSeriesRaggedRows(t *testing.T) {
	got := Series([][]float64{
		{1, 2},
		{10, 10, 10},
		{100},
		{1000, 1000},
	})
	tests := []struct {
		name   string
		si, ci int
		want   Value
	}{
		{"overflow starts at zero", 1, 2, Value{0, 10}},
		{"within range stacks", 1, 1, Value{2, 12}},
		{"short row stacks", 2, 0, Value{11, 111}},
		{"short row leaves later baselines", 3, 1, Value{12, 1012}},
		{"baseline after short row", 3, 0, Value{111, 1111}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if v := got[tt.si].Values[tt.ci]; v != tt.want {
				t.Errorf("row %d Values[%d] = %v, want %v", tt.si, tt.ci, v, tt.want)
			}
		})
	}
}

func TestSeriesEmpty(t *testing.T) {
	if got := Series(nil); len(got) != 0 {
		t.Errorf("Series(nil) = %v", got)
	}
}

func TestWaterfall(t *testing.T) {
	segs := Waterfall([]data.WaterfallBar{
		data.WaterfallStart("Opening", 100),
		data.WaterfallDelta("Sales", 50),
		data.WaterfallDelta("Costs", -30),
		data.WaterfallTotal("Closing", 0),
	})

	want := []struct {
		y0, y1, running float64
		up              bool
	}{
		{0, 100, 100, true},
		{100, 150, 150, true},
		{120, 150, 120, false},
		{0, 120, 120, true},
	}
	if len(segs) != len(want) {
		t.Fatalf("Waterfall returned %d segments", len(segs))
	}
	for i, w := range want {
		s := segs[i]
		if s.Y0 != w.y0 || s.Y1 != w.y1 || s.Running != w.running || s.Up != w.up {
			t.Errorf("segment %d (%s) = %+v, want %+v", i, s.Label, s, w)
		}
	}

	lo, hi := Extent(segs)
	if lo != 0 || hi != 150 {
		t.Errorf("Extent = %v, %v; want 0, 150", lo, hi)
	}
}

func TestWaterfallNegativeRunning(t *testing.T) {
	segs := Waterfall([]data.WaterfallBar{
		data.WaterfallDelta("loss", -40),
		data.WaterfallTotal("net", 0),
	})
	if segs[0].Y0 != -40 || segs[0].Y1 != 0 || segs[0].Up {
		t.Errorf("delta segment = %+v", segs[0])
	}
	if segs[1].Y0 != -40 || segs[1].Y1 != 0 || segs[1].Up {
		t.Errorf("total segment = %+v", segs[1])
	}
	if lo, _ := Extent(segs); lo != -40 {
		t.Errorf("Extent low = %v, want -40", lo)
	}
}

func ExampleSeries() {
	for _, s := range Series([][]float64{{3, 4}, {1, 2}}) {
		fmt.Println(s.Index, s.Values)
	}
	// Output:
	// 0 [{0 3} {0 4}]
	// 1 [{3 4} {4 6}]
}
