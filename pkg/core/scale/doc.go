// Package scale maps data values (the domain) to screen coordinates (the
// range) and back.
//
// # Scales
//
// Every continuous scale implements [Scale]:
//
//   - [Linear]: affine mapping between domain and range.
//   - [Log]: affine mapping in log space; domain bounds must be positive.
//   - [Time]: linear arithmetic over numeric timestamps, no calendar logic.
//
// [Band] is the categorical scale. It splits a pixel range into one
// equal-width band per category, reserving a padding fraction of each step
// as gutter.
//
// # Degenerate Inputs
//
// Scales never divide by zero. A zero-width domain makes Map return the
// start of the range; a zero-width range makes Inverse return the start of
// the domain. Log maps non-positive values to the start of the range.
// Constructing a Log scale with a non-positive domain bound or an invalid
// base is a programming error and panics.
//
// # Ticks
//
// [Ticks] produces evenly spaced domain values for axes and grid lines.
// [NiceTicks] delegates to gonum's plot tickers to produce rounded,
// labelled ticks for linear, log and time axes.
package scale
