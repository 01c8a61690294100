package data

import (
	"math"
)

// Epsilon is the tolerance used by the kernel for degenerate widths.
// It equals the IEEE-754 machine epsilon for float64.
const Epsilon = 2.220446049250313e-16

// =============================================================================
// Points and Series
// =============================================================================

// DataPoint is a single (x, y) sample. Equality is exact float comparison.
type DataPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Point is shorthand for DataPoint{X: x, Y: y}.
func Point(x, y float64) DataPoint {
	return DataPoint{X: x, Y: y}
}

// Series is a named, ordered sequence of values.
type Series[T any] struct {
	Name    string `json:"name"`
	Data    []T    `json:"data"`
	Visible bool   `json:"visible"`
}

// NewSeries creates a visible series.
func NewSeries[T any](name string, data []T) Series[T] {
	return Series[T]{Name: name, Data: data, Visible: true}
}

// Len returns the number of values in the series.
func (s Series[T]) Len() int { return len(s.Data) }

// =============================================================================
// Dataset
// =============================================================================

// Dataset is an ordered collection of point series.
type Dataset struct {
	Series []Series[DataPoint] `json:"series"`
}

// NewDataset returns an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{}
}

// FromSeries returns a dataset holding a single series.
func FromSeries(s Series[DataPoint]) *Dataset {
	return &Dataset{Series: []Series[DataPoint]{s}}
}

// AddSeries appends s to the dataset.
func (d *Dataset) AddSeries(s Series[DataPoint]) {
	d.Series = append(d.Series, s)
}

// PointCount returns the total number of points across all series.
func (d *Dataset) PointCount() int {
	n := 0
	for _, s := range d.Series {
		n += len(s.Data)
	}
	return n
}

// Bounds is an axis-aligned extent in data space.
type Bounds struct {
	XMin float64 `json:"x_min"`
	XMax float64 `json:"x_max"`
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
}

// Extent returns the combined bounds of all visible series.
// It reports false when no visible series has any points.
func (d *Dataset) Extent() (Bounds, bool) {
	b := Bounds{
		XMin: math.Inf(1), XMax: math.Inf(-1),
		YMin: math.Inf(1), YMax: math.Inf(-1),
	}
	found := false
	for _, s := range d.Series {
		if !s.Visible {
			continue
		}
		for _, p := range s.Data {
			b.XMin = math.Min(b.XMin, p.X)
			b.XMax = math.Max(b.XMax, p.X)
			b.YMin = math.Min(b.YMin, p.Y)
			b.YMax = math.Max(b.YMax, p.Y)
			found = true
		}
	}
	if !found {
		return Bounds{}, false
	}
	return b, true
}

// =============================================================================
// Bar Dataset
// =============================================================================

// BarSeries holds one value per category.
type BarSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// BarDataset pairs an ordered category list with one or more value series.
// Consumers assume len(Values) == len(Categories) and treat missing values
// as zero; the type does not enforce it.
type BarDataset struct {
	Categories []string    `json:"categories"`
	Series     []BarSeries `json:"series"`
}

// NewBarDataset creates a bar dataset with the given categories.
func NewBarDataset(categories []string) *BarDataset {
	return &BarDataset{Categories: categories}
}

// AddSeries appends a named value series.
func (b *BarDataset) AddSeries(name string, values []float64) {
	b.Series = append(b.Series, BarSeries{Name: name, Values: values})
}

// Value returns the value of series si at category ci, or 0 when either
// index is out of range.
func (b *BarDataset) Value(si, ci int) float64 {
	if si < 0 || si >= len(b.Series) {
		return 0
	}
	vals := b.Series[si].Values
	if ci < 0 || ci >= len(vals) {
		return 0
	}
	return vals[ci]
}

// Matrix returns series values padded or truncated to the category count,
// the shape expected by stacking.
func (b *BarDataset) Matrix() [][]float64 {
	out := make([][]float64, len(b.Series))
	for si := range b.Series {
		row := make([]float64, len(b.Categories))
		for ci := range row {
			row[ci] = b.Value(si, ci)
		}
		out[si] = row
	}
	return out
}

// =============================================================================
// OHLC
// =============================================================================

// OhlcBar is one candlestick.
type OhlcBar struct {
	Timestamp float64 `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
}

// IsBullish reports whether the bar closed at or above its open.
func (b OhlcBar) IsBullish() bool {
	return b.Close >= b.Open
}

// =============================================================================
// Waterfall
// =============================================================================

// WaterfallKind controls how a waterfall bar affects the running total.
type WaterfallKind int

const (
	// WaterfallDeltaKind adds the value to the running total.
	WaterfallDeltaKind WaterfallKind = iota
	// WaterfallStartKind resets the running total to the value.
	WaterfallStartKind
	// WaterfallTotalKind shows the running total without changing it.
	WaterfallTotalKind
)

var waterfallKindNames = map[WaterfallKind]string{
	WaterfallDeltaKind: "delta",
	WaterfallStartKind: "start",
	WaterfallTotalKind: "total",
}

// String returns the lowercase kind name.
func (k WaterfallKind) String() string {
	if s, ok := waterfallKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k WaterfallKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *WaterfallKind) UnmarshalText(b []byte) error {
	for kind, name := range waterfallKindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return unknownName("waterfall kind", string(b))
}

// WaterfallBar is one labelled step in a waterfall chart.
type WaterfallBar struct {
	Label string        `json:"label"`
	Value float64       `json:"value"`
	Kind  WaterfallKind `json:"kind"`
}

// WaterfallDelta creates a bar that moves the running total by value.
func WaterfallDelta(label string, value float64) WaterfallBar {
	return WaterfallBar{Label: label, Value: value, Kind: WaterfallDeltaKind}
}

// WaterfallStart creates a bar that resets the running total to value.
func WaterfallStart(label string, value float64) WaterfallBar {
	return WaterfallBar{Label: label, Value: value, Kind: WaterfallStartKind}
}

// WaterfallTotal creates a bar that displays the running total. The value
// is ignored by layout.
func WaterfallTotal(label string, value float64) WaterfallBar {
	return WaterfallBar{Label: label, Value: value, Kind: WaterfallTotalKind}
}
