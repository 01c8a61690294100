// Package interact holds the pure computations behind chart interaction:
// nearest-point lookup for tooltips and zoom/pan viewport transforms.
//
// Nothing here tracks pointer or keyboard state. Callers translate their
// events into normalized coordinates (0..1 across the plot area, y growing
// downward) and apply the matching [Viewport] method.
package interact
