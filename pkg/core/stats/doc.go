// Package stats provides the descriptive statistics behind distribution
// charts: extents, central tendency, box plots, histograms, kernel density
// estimates, moving averages and least-squares trend lines.
//
// # Optional Results
//
// Functions that have no meaningful answer for small inputs return a
// second ok value instead of NaN. [Mean] and [Extent] need one value,
// [StdDev] needs two (it is the sample standard deviation, n-1 in the
// denominator).
//
// # In-place Sorting
//
// [Median] and [BoxPlot] sort their argument in place. Pass a copy when
// the caller's order matters; [Summarize] always copies.
//
// # Histogram Rules
//
// [Histogram] chooses a bin count with a [Rule]:
//
//   - [Sturges]: ceil(log2 n) + 1
//   - [Scott]: bin width 3.49 σ n^(-1/3)
//   - [FreedmanDiaconis]: bin width 2 IQR n^(-1/3), falling back to
//     Sturges when the IQR is zero (the default rule)
//   - [Fixed]: an explicit bin count
//
// Bins are equal width; the last bin is closed on the right so the maximum
// value is always counted.
package stats
