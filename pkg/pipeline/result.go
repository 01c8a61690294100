package pipeline

import (
	"time"

	"github.com/matzehuels/lodviz/pkg/core/arc"
	"github.com/matzehuels/lodviz/pkg/core/data"
	"github.com/matzehuels/lodviz/pkg/core/scale"
	"github.com/matzehuels/lodviz/pkg/core/stats"
)

// Result is a computed chart: scales plus pixel-space geometry for one
// mark. Exactly one geometry list is set, matching Mark.
type Result struct {
	Mark   ChartType `json:"mark"`
	Title  string    `json:"title,omitempty"`
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Plot   Rect      `json:"plot"`
	Legend bool      `json:"legend"`

	X *Axis `json:"x,omitempty"`
	Y *Axis `json:"y,omitempty"`

	Series    []SeriesGeometry    `json:"series,omitempty"`
	Bars      []BarGeometry       `json:"bars,omitempty"`
	Slices    []SliceGeometry     `json:"slices,omitempty"`
	Bins      []BinGeometry       `json:"bins,omitempty"`
	Boxes     []BoxGeometry       `json:"boxes,omitempty"`
	Waterfall []WaterfallGeometry `json:"waterfall,omitempty"`
	Candles   []CandleGeometry    `json:"candles,omitempty"`

	// Stats summarizes the y channel, or x for histograms.
	Stats *stats.Summary `json:"stats,omitempty"`

	Timing    Timing    `json:"-"`
	CacheInfo CacheInfo `json:"-"`
}

// Timing records how long each stage took.
type Timing struct {
	Load       time.Duration
	Encode     time.Duration
	Downsample time.Duration
	Geometry   time.Duration
	Total      time.Duration
}

// CacheInfo tracks whether the result came from the cache.
type CacheInfo struct {
	Hit bool
	Key string
}

// Rect is a pixel rectangle with its origin at the top-left corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Axis describes one scale. Continuous axes carry a domain and ticks; band
// axes carry categories and the band width.
type Axis struct {
	Kind       scale.Kind   `json:"kind"`
	Domain     [2]float64   `json:"domain"`
	Range      [2]float64   `json:"range"`
	Ticks      []scale.Tick `json:"ticks,omitempty"`
	Categories []string     `json:"categories,omitempty"`
	BandWidth  float64      `json:"band_width,omitempty"`
}

// SeriesGeometry is one point series in pixel space.
type SeriesGeometry struct {
	Name    string           `json:"name"`
	Visible bool             `json:"visible"`
	Points  []data.DataPoint `json:"points"`
	// Baseline holds the lower edge of an area, one point per Points entry.
	Baseline []data.DataPoint `json:"baseline,omitempty"`
	// Radii holds circle radii from the size channel.
	Radii []float64 `json:"radii,omitempty"`
	// Trend is the least-squares line across the plot, when requested.
	Trend *[2]data.DataPoint `json:"trend,omitempty"`
	// SourcePoints is the point count before downsampling.
	SourcePoints int `json:"source_points"`
}

// BarGeometry is one bar rectangle.
type BarGeometry struct {
	Series   string  `json:"series"`
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	Rect
}

// SliceGeometry is one pie or donut slice.
type SliceGeometry struct {
	Label string `json:"label"`
	arc.Slice
	Path     string         `json:"path"`
	Centroid data.DataPoint `json:"centroid"`
}

// BinGeometry is one histogram bar with its data-space bin edges.
type BinGeometry struct {
	stats.Bin
	Rect
}

// BoxGeometry is one box plot. Y positions are pixels; Stats keeps the
// data-space values.
type BoxGeometry struct {
	Label        string             `json:"label"`
	X            float64            `json:"x"`
	Width        float64            `json:"width"`
	Q1           float64            `json:"q1"`
	Median       float64            `json:"median"`
	Q3           float64            `json:"q3"`
	LowerWhisker float64            `json:"lower_whisker"`
	UpperWhisker float64            `json:"upper_whisker"`
	Outliers     []float64          `json:"outliers"`
	Density      []data.DataPoint   `json:"density,omitempty"`
	Stats        stats.BoxPlotStats `json:"stats"`
}

// WaterfallGeometry is one waterfall step.
type WaterfallGeometry struct {
	Label   string             `json:"label"`
	Kind    data.WaterfallKind `json:"kind"`
	Value   float64            `json:"value"`
	Running float64            `json:"running"`
	Up      bool               `json:"up"`
	Rect
}

// CandleGeometry is one candlestick in pixels. Body spans Open to Close,
// the wick spans High to Low.
type CandleGeometry struct {
	X       float64      `json:"x"`
	Width   float64      `json:"width"`
	Open    float64      `json:"open"`
	High    float64      `json:"high"`
	Low     float64      `json:"low"`
	Close   float64      `json:"close"`
	Bullish bool         `json:"bullish"`
	Bar     data.OhlcBar `json:"bar"`
}
