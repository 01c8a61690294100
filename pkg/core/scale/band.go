package scale

import "math"

// Band maps ordered category labels onto equal-width bands of a pixel
// range. A padding fraction of each step is left as gutter, split evenly
// on both sides of the band.
type Band struct {
	categories []string
	r0, r1     float64
	padding    float64
}

// NewBand creates a band scale. Padding is clamped to [0, 1].
func NewBand(categories []string, r0, r1, padding float64) Band {
	return Band{
		categories: categories,
		r0:         r0,
		r1:         r1,
		padding:    math.Max(0, math.Min(1, padding)),
	}
}

// Step returns the distance between the starts of adjacent bands. An empty
// scale has a zero step.
func (b Band) Step() float64 {
	if len(b.categories) == 0 {
		return 0
	}
	return math.Abs(b.r1-b.r0) / float64(len(b.categories))
}

// BandWidth returns the drawable width of one band.
func (b Band) BandWidth() float64 {
	return b.Step() * (1 - b.padding)
}

// Padding returns the clamped padding fraction.
func (b Band) Padding() float64 { return b.padding }

// MapIndex returns the start position of band i.
func (b Band) MapIndex(i int) float64 {
	step := b.Step()
	return b.r0 + float64(i)*step + step*b.padding/2
}

// MapIndexCenter returns the center position of band i.
func (b Band) MapIndexCenter(i int) float64 {
	return b.MapIndex(i) + b.BandWidth()/2
}

// MapCategory returns the start position of the first band labelled name.
// Lookup is a linear scan.
func (b Band) MapCategory(name string) (float64, bool) {
	i := b.Index(name)
	if i < 0 {
		return 0, false
	}
	return b.MapIndex(i), true
}

// Index returns the position of the first category equal to name, or -1.
func (b Band) Index(name string) int {
	for i, c := range b.categories {
		if c == name {
			return i
		}
	}
	return -1
}

// Len returns the number of categories.
func (b Band) Len() int { return len(b.categories) }

// IsEmpty reports whether the scale has no categories.
func (b Band) IsEmpty() bool { return len(b.categories) == 0 }

// Categories returns the category labels in band order.
func (b Band) Categories() []string { return b.categories }

// Range returns (r0, r1).
func (b Band) Range() (float64, float64) { return b.r0, b.r1 }
