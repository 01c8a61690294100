package interact

import (
	"math"

	"github.com/matzehuels/lodviz/pkg/core/data"
	"github.com/matzehuels/lodviz/pkg/core/scale"
)

// Viewport is the data-space window currently shown by a chart.
type Viewport struct {
	XMin float64 `json:"x_min"`
	XMax float64 `json:"x_max"`
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
}

// FromBounds returns the viewport covering b.
func FromBounds(b data.Bounds) Viewport {
	return Viewport{XMin: b.XMin, XMax: b.XMax, YMin: b.YMin, YMax: b.YMax}
}

// Bounds converts the viewport back to data bounds.
func (v Viewport) Bounds() data.Bounds {
	return data.Bounds{XMin: v.XMin, XMax: v.XMax, YMin: v.YMin, YMax: v.YMax}
}

// Zoom scales the window by 1/factor around the normalized position
// (cx, cy), which keeps pointing at the same data value. factor > 1 zooms
// in. A factor that is not positive and finite leaves v unchanged.
func (v Viewport) Zoom(factor, cx, cy float64) Viewport {
	if !(factor > 0) || math.IsInf(factor, 1) {
		return v
	}
	xr := v.XMax - v.XMin
	yr := v.YMax - v.YMin
	fx := v.XMin + cx*xr
	fy := v.YMin + cy*yr

	nxr := xr / factor
	nyr := yr / factor
	xMin := fx - cx*nxr
	yMin := fy - cy*nyr
	return Viewport{XMin: xMin, XMax: xMin + nxr, YMin: yMin, YMax: yMin + nyr}
}

// ZoomToBox narrows the window to a rectangle given by two normalized
// corners. y is measured from the top of the plot, where YMax is drawn.
func (v Viewport) ZoomToBox(x1, y1, x2, y2 float64) Viewport {
	xr := v.XMax - v.XMin
	yr := v.YMax - v.YMin
	return Viewport{
		XMin: v.XMin + min(x1, x2)*xr,
		XMax: v.XMin + max(x1, x2)*xr,
		YMin: v.YMax - max(y1, y2)*yr,
		YMax: v.YMax - min(y1, y2)*yr,
	}
}

// Pan shifts the window by (dx, dy) in data units.
func (v Viewport) Pan(dx, dy float64) Viewport {
	return Viewport{XMin: v.XMin + dx, XMax: v.XMax + dx, YMin: v.YMin + dy, YMax: v.YMax + dy}
}

// Contains reports whether p lies inside the window, edges included.
func (v Viewport) Contains(p data.DataPoint) bool {
	return p.X >= v.XMin && p.X <= v.XMax && p.Y >= v.YMin && p.Y <= v.YMax
}

// XScale maps the window's x-range onto [0, width].
func (v Viewport) XScale(width float64) scale.Linear {
	return scale.NewLinear(v.XMin, v.XMax, 0, width)
}

// YScale maps the window's y-range onto [height, 0] so larger values are
// drawn higher.
func (v Viewport) YScale(height float64) scale.Linear {
	return scale.NewLinear(v.YMin, v.YMax, height, 0)
}

// ZoomState pairs the current viewport with the one it started from.
type ZoomState struct {
	Original Viewport `json:"original"`
	Current  Viewport `json:"current"`
}

// NewZoomState starts unzoomed at v.
func NewZoomState(v Viewport) ZoomState {
	return ZoomState{Original: v, Current: v}
}

func (z ZoomState) Zoom(factor, cx, cy float64) ZoomState {
	z.Current = z.Current.Zoom(factor, cx, cy)
	return z
}

func (z ZoomState) ZoomToBox(x1, y1, x2, y2 float64) ZoomState {
	z.Current = z.Current.ZoomToBox(x1, y1, x2, y2)
	return z
}

func (z ZoomState) Pan(dx, dy float64) ZoomState {
	z.Current = z.Current.Pan(dx, dy)
	return z
}

// Reset returns to the original viewport.
func (z ZoomState) Reset() ZoomState {
	z.Current = z.Original
	return z
}

// Level returns how far the x-axis is magnified relative to the original,
// 1 when unzoomed or when either range is empty.
func (z ZoomState) Level() float64 {
	cur := z.Current.XMax - z.Current.XMin
	orig := z.Original.XMax - z.Original.XMin
	if cur == 0 || orig == 0 {
		return 1
	}
	return orig / cur
}
