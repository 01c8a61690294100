package scale

import (
	"math"
)

// epsilon matches the float64 machine epsilon.
const epsilon = 2.220446049250313e-16

// Scale maps values between a data domain and a pixel range.
type Scale interface {
	// Map converts a domain value to a range value.
	Map(v float64) float64
	// Inverse converts a range value back to a domain value.
	Inverse(r float64) float64
	// Domain returns the domain bounds as given at construction.
	Domain() (float64, float64)
	// Range returns the range bounds as given at construction.
	Range() (float64, float64)
}

// Kind names a scale implementation.
type Kind string

// Scale kinds.
const (
	KindLinear Kind = "linear"
	KindLog    Kind = "log"
	KindTime   Kind = "time"
	KindBand   Kind = "band"
)

// KindOf returns the kind of a continuous scale.
func KindOf(s Scale) Kind {
	switch s.(type) {
	case Log, *Log:
		return KindLog
	case Time, *Time:
		return KindTime
	default:
		return KindLinear
	}
}

// =============================================================================
// Linear
// =============================================================================

// Linear is an affine domain-to-range mapping.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear creates a linear scale.
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Map returns r0 + ((v-d0)/(d1-d0))*(r1-r0), or r0 for a zero-width domain.
func (s Linear) Map(v float64) float64 {
	return lerp(s.d0, s.d1, s.r0, s.r1, v)
}

// Inverse is the algebraic inverse of Map, or d0 for a zero-width range.
func (s Linear) Inverse(r float64) float64 {
	return lerp(s.r0, s.r1, s.d0, s.d1, r)
}

// Domain returns (d0, d1).
func (s Linear) Domain() (float64, float64) { return s.d0, s.d1 }

// Range returns (r0, r1).
func (s Linear) Range() (float64, float64) { return s.r0, s.r1 }

// lerp maps v from [a0,a1] onto [b0,b1], returning b0 when the source
// interval has zero width.
func lerp(a0, a1, b0, b1, v float64) float64 {
	span := a1 - a0
	if math.Abs(span) < epsilon {
		return b0
	}
	return b0 + ((v-a0)/span)*(b1-b0)
}

// =============================================================================
// Time
// =============================================================================

// Time is a linear scale over numeric timestamps.
type Time struct {
	Linear
}

// NewTime creates a time scale. Timestamps are plain numbers in any unit.
func NewTime(t0, t1, r0, r1 float64) Time {
	return Time{Linear: NewLinear(t0, t1, r0, r1)}
}

// =============================================================================
// Log
// =============================================================================

// Log maps values through log_base before interpolating.
type Log struct {
	d0, d1 float64
	r0, r1 float64
	base   float64
	logD0  float64
	logD1  float64
}

// NewLog creates a base-10 log scale. It panics if either domain bound is
// not positive.
func NewLog(d0, d1, r0, r1 float64) Log {
	return NewLogBase(d0, d1, r0, r1, 10)
}

// NewLogBase creates a log scale with the given base. It panics if either
// domain bound is not positive, or if base <= 0 or base == 1.
func NewLogBase(d0, d1, r0, r1, base float64) Log {
	if d0 <= 0 || d1 <= 0 {
		panic("scale: log domain bounds must be positive")
	}
	if base <= 0 || base == 1 {
		panic("scale: log base must be positive and not equal to 1")
	}
	s := Log{d0: d0, d1: d1, r0: r0, r1: r1, base: base}
	s.logD0 = s.log(d0)
	s.logD1 = s.log(d1)
	return s
}

func (s Log) log(v float64) float64 {
	return math.Log(v) / math.Log(s.base)
}

// Map interpolates log_base(v) across the range. Non-positive values map
// to r0.
func (s Log) Map(v float64) float64 {
	if v <= 0 {
		return s.r0
	}
	return lerp(s.logD0, s.logD1, s.r0, s.r1, s.log(v))
}

// Inverse returns base^(log d0 + t*(log d1 - log d0)) where t is the
// normalized position of r in the range, or d0 for a zero-width range.
func (s Log) Inverse(r float64) float64 {
	span := s.r1 - s.r0
	if math.Abs(span) < epsilon {
		return s.d0
	}
	t := (r - s.r0) / span
	return math.Pow(s.base, s.logD0+t*(s.logD1-s.logD0))
}

// Domain returns (d0, d1).
func (s Log) Domain() (float64, float64) { return s.d0, s.d1 }

// Range returns (r0, r1).
func (s Log) Range() (float64, float64) { return s.r0, s.r1 }

// Base returns the logarithm base.
func (s Log) Base() float64 { return s.base }

// =============================================================================
// Domain Helpers
// =============================================================================

// PaddedDomain widens [min, max] by frac of its width on each side. A
// zero-width domain is widened by 1 on each side so it can be mapped.
func PaddedDomain(min, max, frac float64) (float64, float64) {
	w := max - min
	if math.Abs(w) < epsilon {
		return min - 1, max + 1
	}
	pad := w * frac
	return min - pad, max + pad
}
