package scale

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLinearMap(t *testing.T) {
	tests := []struct {
		name  string
		scale Linear
		in    float64
		want  float64
	}{
		{"start", NewLinear(0, 100, 0, 500), 0, 0},
		{"middle", NewLinear(0, 100, 0, 500), 50, 250},
		{"end", NewLinear(0, 100, 0, 500), 100, 500},
		{"inverted range", NewLinear(0, 10, 300, 0), 2.5, 225},
		{"extrapolates", NewLinear(0, 10, 0, 100), 20, 200},
		{"zero-width domain", NewLinear(5, 5, 10, 90), 123, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scale.Map(tt.in); !approx(got, tt.want) {
				t.Errorf("Map(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLinearInverse(t *testing.T) {
	s := NewLinear(-20, 80, 40, 640)
	for _, v := range []float64{-20, -3.5, 0, 17, 79.99, 80} {
		if got := s.Inverse(s.Map(v)); !approx(got, v) {
			t.Errorf("Inverse(Map(%v)) = %v", v, got)
		}
	}

	flat := NewLinear(1, 2, 7, 7)
	if got := flat.Inverse(100); got != 1 {
		t.Errorf("zero-width range Inverse = %v, want 1", got)
	}
}

func TestLinearDomainRange(t *testing.T) {
	s := NewLinear(1, 2, 3, 4)
	if d0, d1 := s.Domain(); d0 != 1 || d1 != 2 {
		t.Errorf("Domain() = %v, %v", d0, d1)
	}
	if r0, r1 := s.Range(); r0 != 3 || r1 != 4 {
		t.Errorf("Range() = %v, %v", r0, r1)
	}
}

func TestTimeScale(t *testing.T) {
	s := NewTime(1_700_000_000, 1_700_003_600, 0, 360)
	if got := s.Map(1_700_001_800); !approx(got, 180) {
		t.Errorf("Map(half hour) = %v, want 180", got)
	}
	if got := s.Inverse(90); !approx(got, 1_700_000_900) {
		t.Errorf("Inverse(90) = %v", got)
	}
	if KindOf(s) != KindTime {
		t.Errorf("KindOf(Time) = %v", KindOf(s))
	}
}

func TestLogScale(t *testing.T) {
	s := NewLog(1, 1000, 0, 300)

	tests := []struct {
		in, want float64
	}{
		{1, 0},
		{10, 100},
		{100, 200},
		{1000, 300},
		{0, 0},
		{-5, 0},
	}
	for _, tt := range tests {
		if got := s.Map(tt.in); !approx(got, tt.want) {
			t.Errorf("Map(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if got := s.Inverse(200); math.Abs(got-100) > 1e-9 {
		t.Errorf("Inverse(200) = %v, want 100", got)
	}
	if KindOf(s) != KindLog {
		t.Errorf("KindOf(Log) = %v", KindOf(s))
	}
}

func TestLogScaleBase2(t *testing.T) {
	s := NewLogBase(1, 8, 0, 3, 2)
	if got := s.Map(4); !approx(got, 2) {
		t.Errorf("Map(4) = %v, want 2", got)
	}
	if s.Base() != 2 {
		t.Errorf("Base() = %v", s.Base())
	}
}

func TestLogScalePanics(t *testing.T) {
	tests := []struct {
		name         string
		d0, d1, base float64
	}{
		{"zero domain", 0, 10, 10},
		{"negative domain", 1, -10, 10},
		{"base one", 1, 10, 1},
		{"negative base", 1, 10, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			NewLogBase(tt.d0, tt.d1, 0, 100, tt.base)
		})
	}
}

func TestPaddedDomain(t *testing.T) {
	lo, hi := PaddedDomain(0, 100, 0.02)
	if !approx(lo, -2) || !approx(hi, 102) {
		t.Errorf("PaddedDomain = %v, %v", lo, hi)
	}
	lo, hi = PaddedDomain(5, 5, 0.02)
	if lo != 4 || hi != 6 {
		t.Errorf("zero-width PaddedDomain = %v, %v", lo, hi)
	}
}
