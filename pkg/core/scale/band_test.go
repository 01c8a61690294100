package scale

import (
	"fmt"
	"testing"
)

func TestBandScale(t *testing.T) {
	b := NewBand([]string{"a", "b", "c", "d"}, 0, 400, 0.2)

	if got := b.Step(); !approx(got, 100) {
		t.Errorf("Step() = %v, want 100", got)
	}
	if got := b.BandWidth(); !approx(got, 80) {
		t.Errorf("BandWidth() = %v, want 80", got)
	}

	tests := []struct {
		i          int
		start, mid float64
	}{
		{0, 10, 50},
		{1, 110, 150},
		{3, 310, 350},
	}
	for _, tt := range tests {
		if got := b.MapIndex(tt.i); !approx(got, tt.start) {
			t.Errorf("MapIndex(%d) = %v, want %v", tt.i, got, tt.start)
		}
		if got := b.MapIndexCenter(tt.i); !approx(got, tt.mid) {
			t.Errorf("MapIndexCenter(%d) = %v, want %v", tt.i, got, tt.mid)
		}
	}
}

func TestBandMapCategory(t *testing.T) {
	b := NewBand([]string{"x", "y", "x"}, 0, 300, 0)

	got, ok := b.MapCategory("x")
	if !ok || got != 0 {
		t.Errorf("MapCategory(x) = %v, %v; want first match at 0", got, ok)
	}
	got, ok = b.MapCategory("y")
	if !ok || !approx(got, 100) {
		t.Errorf("MapCategory(y) = %v, %v", got, ok)
	}
	if _, ok := b.MapCategory("z"); ok {
		t.Error("MapCategory(z) should not be found")
	}
}

func TestBandEmptyAndClamp(t *testing.T) {
	empty := NewBand(nil, 0, 100, 0.1)
	if !empty.IsEmpty() || empty.Len() != 0 {
		t.Error("empty band scale should report empty")
	}
	if empty.Step() != 0 || empty.BandWidth() != 0 {
		t.Errorf("empty Step/BandWidth = %v/%v, want 0/0", empty.Step(), empty.BandWidth())
	}

	if p := NewBand([]string{"a"}, 0, 1, 3).Padding(); p != 1 {
		t.Errorf("padding clamp high = %v, want 1", p)
	}
	if p := NewBand([]string{"a"}, 0, 1, -1).Padding(); p != 0 {
		t.Errorf("padding clamp low = %v, want 0", p)
	}
}

func TestBandReversedRange(t *testing.T) {
	b := NewBand([]string{"a", "b"}, 200, 0, 0)
	if got := b.Step(); !approx(got, 100) {
		t.Errorf("Step() on reversed range = %v, want 100", got)
	}
}

func ExampleBand() {
	b := NewBand([]string{"Mon", "Tue", "Wed"}, 0, 300, 0.1)
	fmt.Printf("%.1f %.1f\n", b.Step(), b.BandWidth())
	fmt.Printf("%.1f\n", b.MapIndexCenter(1))
	// Output:
	// 100.0 90.0
	// 150.0
}
