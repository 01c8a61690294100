// Package data defines the value types shared by every part of the chart
// kernel: points, series, datasets, bar datasets, OHLC bars, waterfall bars,
// channel data types, marks and selections.
//
// # Lifecycle
//
// All types are plain values created by callers for one render pass. The
// kernel never mutates a [Series] or [Dataset] it receives; functions that
// transform data return fresh slices. The Visible flag on a series belongs
// to the caller (legend toggles) and is only read by the kernel.
//
// # Ordering
//
// Order is significant everywhere. Series order in a [Dataset] determines
// stack order, palette index and legend order. Category order in a
// [BarDataset] determines band order. Neither type enforces unique names.
//
// # Selections
//
// A [Selection] describes what the user picked on a chart: a set of point
// indices, an x (and optionally y) interval, or a union of selections.
// Intervals are normalized at construction so the bounds are always
// ordered:
//
//	sel := data.IntervalX(5, 2) // stored as [2, 5]
//	sel.Contains(data.Point(3, 0), 0) // true
package data
