package scale

import (
	"fmt"
	"testing"
)

func TestTicks(t *testing.T) {
	tests := []struct {
		name  string
		scale Scale
		count int
		want  []float64
	}{
		{"five", NewLinear(0, 100, 0, 1), 5, []float64{0, 20, 40, 60, 80, 100}},
		{"one", NewLinear(-1, 1, 0, 1), 1, []float64{-1, 1}},
		{"zero count", NewLinear(3, 9, 0, 1), 0, []float64{3}},
		{"time", NewTime(0, 60, 0, 1), 3, []float64{0, 20, 40, 60}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ticks(tt.scale, tt.count)
			if len(got) != len(tt.want) {
				t.Fatalf("Ticks() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if !approx(got[i], tt.want[i]) {
					t.Errorf("Ticks()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNiceTicksLinear(t *testing.T) {
	ticks := NiceTicks(KindLinear, 0, 97)
	if len(ticks) < 2 {
		t.Fatalf("NiceTicks returned %d ticks, want at least 2", len(ticks))
	}
	labelled := 0
	for i, tk := range ticks {
		if tk.Value < 0 || tk.Value > 97 {
			t.Errorf("tick %v outside domain", tk.Value)
		}
		if i > 0 && tk.Value <= ticks[i-1].Value {
			t.Errorf("ticks not increasing at %d: %v", i, ticks)
		}
		if !tk.IsMinor() {
			labelled++
		}
	}
	if labelled < 2 {
		t.Errorf("want at least 2 labelled ticks, got %d", labelled)
	}
}

func TestNiceTicksLog(t *testing.T) {
	var majors []float64
	for _, tk := range NiceTicks(KindLog, 1, 1000) {
		if !tk.IsMinor() {
			majors = append(majors, tk.Value)
		}
	}
	want := []float64{1, 10, 100, 1000}
	if fmt.Sprint(majors) != fmt.Sprint(want) {
		t.Errorf("log major ticks = %v, want %v", majors, want)
	}
}

func TestNiceTicksTime(t *testing.T) {
	for _, tk := range NiceTicks(KindTime, 0, 86400) {
		if tk.IsMinor() {
			continue
		}
		if len(tk.Label) < len("1970-01-01T00:00:00Z") {
			t.Errorf("time label %q is not RFC3339", tk.Label)
		}
	}
}

func TestNiceTicksDegenerate(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		min, max float64
		label    string
	}{
		{"flat", KindLinear, 5, 5, "5"},
		{"inverted", KindLinear, 10, 1, "10"},
		{"log non-positive", KindLog, 0, 100, "0"},
		{"time flat", KindTime, 0, 0, "1970-01-01T00:00:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NiceTicks(tt.kind, tt.min, tt.max)
			if len(got) != 1 || got[0].Value != tt.min || got[0].Label != tt.label {
				t.Errorf("NiceTicks = %+v, want single tick %v %q", got, tt.min, tt.label)
			}
		})
	}
}
