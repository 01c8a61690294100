// Package downsample reduces the number of points in a series while keeping
// its visual shape.
//
// # Algorithms
//
// [LTTB] (Largest-Triangle-Three-Buckets) picks one point per index bucket,
// choosing the point that forms the largest triangle with the previously
// selected point and the centroid of the next bucket. It always keeps the
// first and last points and returns exactly threshold points.
//
// [M4] splits the x-range into one bucket per pixel column and keeps the
// first, last, minimum and maximum point of each bucket. This preserves
// every extreme a line renderer would draw at that resolution.
//
// [ThinOHLC] applies M4 to candlestick closes when a series holds more bars
// than can be drawn legibly.
//
// Inputs are never modified. Every function returns a new slice, including
// the pass-through cases where no reduction is needed.
//
// # Example
//
//	pts := downsample.LTTB(series.Data, 500)
//	cols := downsample.M4(series.Data, int(width))
package downsample
