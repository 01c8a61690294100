// Package pipeline turns a tidy table and chart options into computed
// chart geometry.
//
// The CLI and the API server both run charts through this package so they
// share defaults, validation and caching.
//
// # Stages
//
//  1. Load: parse RFC 3339 text in temporal columns to timestamps.
//  2. Encode: convert rows to series, bars, values or candles per mark.
//  3. Downsample: reduce each series concurrently (LTTB or M4).
//  4. Scale: derive domains, pixel ranges and nice ticks.
//  5. Geometry: compute pixel-space shapes for the mark.
//  6. Stats: summarize the y channel.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	opts := pipeline.Options{
//	    Mark:     pipeline.ChartLine,
//	    Encoding: table.NewEncoding(table.Temporal("ts"), table.Quantitative("cpu")),
//	    Downsample: pipeline.DownsampleOptions{Algorithm: downsample.AlgoLTTB, Threshold: 500},
//	}
//	result, err := runner.Execute(ctx, tbl, opts)
//
// [Compute] runs the same stages without a cache.
package pipeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lodviz/pkg/cache"
	"github.com/matzehuels/lodviz/pkg/core/chart"
	"github.com/matzehuels/lodviz/pkg/core/data"
	"github.com/matzehuels/lodviz/pkg/core/downsample"
	"github.com/matzehuels/lodviz/pkg/core/stats"
	"github.com/matzehuels/lodviz/pkg/core/table"
	"github.com/matzehuels/lodviz/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultPadding is the band padding for bar, box and waterfall charts.
	DefaultPadding = 0.1

	// DefaultDomainPadding widens continuous y domains on each side.
	DefaultDomainPadding = 0.05

	// MinThreshold is the smallest non-zero downsampling target.
	MinThreshold = 3

	// MinRadius and MaxRadius bound circle radii from the size channel.
	MinRadius = 2.0
	MaxRadius = 20.0

	// KDEPoints is the number of density samples per box.
	KDEPoints = 50
)

// DefaultOHLC names the candlestick columns used when none are configured.
var DefaultOHLC = OHLCFields{Open: "open", High: "high", Low: "low", Close: "close"}

// =============================================================================
// Chart Types
// =============================================================================

// ChartType selects the geometry the pipeline computes.
type ChartType string

const (
	ChartLine        ChartType = "line"
	ChartArea        ChartType = "area"
	ChartBar         ChartType = "bar"
	ChartPoint       ChartType = "point"
	ChartCircle      ChartType = "circle"
	ChartPie         ChartType = "pie"
	ChartHistogram   ChartType = "histogram"
	ChartBox         ChartType = "box"
	ChartWaterfall   ChartType = "waterfall"
	ChartCandlestick ChartType = "candlestick"
)

// ChartTypes lists every supported chart type.
var ChartTypes = []ChartType{
	ChartLine, ChartArea, ChartBar, ChartPoint, ChartCircle,
	ChartPie, ChartHistogram, ChartBox, ChartWaterfall, ChartCandlestick,
}

// ParseChartType parses a chart type name, ignoring case.
func ParseChartType(s string) (ChartType, error) {
	c := ChartType(strings.ToLower(strings.TrimSpace(s)))
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// Validate checks that c is a known chart type.
func (c ChartType) Validate() error {
	for _, t := range ChartTypes {
		if c == t {
			return nil
		}
	}
	names := make([]string, len(ChartTypes))
	for i, t := range ChartTypes {
		names[i] = string(t)
	}
	return errors.New(errors.ErrCodeInvalidMark, "invalid mark %q (must be one of: %s)", string(c), strings.Join(names, ", "))
}

// Mark returns the kernel mark for the point and bar chart types.
func (c ChartType) Mark() (data.Mark, bool) {
	switch c {
	case ChartLine:
		return data.MarkLine, true
	case ChartArea:
		return data.MarkArea, true
	case ChartBar:
		return data.MarkBar, true
	case ChartPoint:
		return data.MarkPoint, true
	case ChartCircle:
		return data.MarkCircle, true
	}
	return 0, false
}

// IsContinuous reports whether c plots point series on continuous axes.
func (c ChartType) IsContinuous() bool {
	switch c {
	case ChartLine, ChartArea, ChartPoint, ChartCircle:
		return true
	}
	return false
}

// NeedsY reports whether c reads the y channel.
func (c ChartType) NeedsY() bool {
	return c != ChartHistogram && c != ChartCandlestick
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// DownsampleOptions selects the series reduction.
type DownsampleOptions struct {
	Algorithm downsample.Algorithm `json:"algorithm,omitempty" toml:"algorithm"`
	// Threshold is the LTTB point count or the M4 pixel column count. Zero
	// means no reduction for LTTB and the plot width for M4.
	Threshold int `json:"threshold,omitempty" toml:"threshold"`
}

// HistogramOptions selects the bin rule.
type HistogramOptions struct {
	Rule stats.Rule `json:"rule" toml:"rule"`
}

// OHLCFields names the candlestick columns. The timestamp comes from the
// x channel.
type OHLCFields struct {
	Open  string `json:"open,omitempty" toml:"open"`
	High  string `json:"high,omitempty" toml:"high"`
	Low   string `json:"low,omitempty" toml:"low"`
	Close string `json:"close,omitempty" toml:"close"`
}

// Options contains all configuration for one chart. It decodes from the
// chart TOML file and from API request bodies.
type Options struct {
	Title  string        `json:"title,omitempty" toml:"title"`
	Mark   ChartType     `json:"mark" toml:"mark"`
	Width  int           `json:"width,omitempty" toml:"width"`
	Height int           `json:"height,omitempty" toml:"height"`
	Margin *chart.Margin `json:"margin,omitempty" toml:"margin"`
	Grid   *chart.Grid   `json:"grid,omitempty" toml:"grid"`

	Encoding   table.Encoding    `json:"encoding" toml:"encoding"`
	Downsample DownsampleOptions `json:"downsample" toml:"downsample"`
	Histogram  HistogramOptions  `json:"histogram" toml:"histogram"`
	OHLC       OHLCFields        `json:"ohlc" toml:"ohlc"`

	// Stacked stacks bar and area series.
	Stacked bool `json:"stacked,omitempty" toml:"stacked"`
	// Padding is the band padding in [0, 1]; nil means DefaultPadding.
	Padding *float64 `json:"padding,omitempty" toml:"padding"`
	// InnerRadius turns a pie into a donut, as a fraction of the outer radius.
	InnerRadius float64 `json:"inner_radius,omitempty" toml:"inner_radius"`
	// Trend adds a least-squares trend line to each point series.
	Trend bool `json:"trend,omitempty" toml:"trend"`
	// WaterfallKind names a column holding "start", "delta" or "total"
	// per row. Without it every row is a delta.
	WaterfallKind string `json:"waterfall_kind,omitempty" toml:"waterfall_kind"`

	// Runtime options (not serialized)
	Refresh bool        `json:"-" toml:"-"`
	Logger  *log.Logger `json:"-" toml:"-"`

	validated bool
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Mark == "" {
		o.Mark = ChartLine
	}
	if err := o.Mark.Validate(); err != nil {
		return err
	}
	if err := o.validateEncoding(); err != nil {
		return err
	}

	if o.Downsample.Algorithm == "" {
		o.Downsample.Algorithm = downsample.AlgoNone
		if o.Downsample.Threshold > 0 {
			o.Downsample.Algorithm = downsample.AlgoLTTB
		}
	}
	algo, err := downsample.ParseAlgorithm(string(o.Downsample.Algorithm))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidAlgorithm, err, "downsample")
	}
	o.Downsample.Algorithm = algo
	if err := errors.ValidateThreshold(o.Downsample.Threshold, MinThreshold); err != nil {
		return err
	}

	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "chart dimensions cannot be negative, got %dx%d", o.Width, o.Height)
	}
	w, h := o.ChartConfig().Size()
	if err := errors.ValidateDimensions(w, h); err != nil {
		return err
	}
	if o.Width == 0 {
		o.Width = chart.DefaultWidth
	}
	if o.Height == 0 {
		o.Height = chart.DefaultHeight
	}

	if o.Padding != nil {
		if err := errors.ValidatePadding(*o.Padding); err != nil {
			return err
		}
	}
	if o.InnerRadius < 0 || o.InnerRadius >= 1 {
		return errors.New(errors.ErrCodeInvalidInput, "inner_radius must be in [0, 1), got %v", o.InnerRadius)
	}
	o.setOHLCDefaults()

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

func (o *Options) validateEncoding() error {
	if err := errors.ValidateFieldName(o.Encoding.X.Name); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidEncoding, err, "x channel")
	}
	if o.Mark.NeedsY() {
		if err := o.Encoding.Validate(); err != nil {
			return err
		}
	}
	if o.Mark.IsContinuous() && o.Encoding.X.Type.IsCategorical() {
		return errors.New(errors.ErrCodeInvalidEncoding, "%s charts need a quantitative or temporal x field, got %s", o.Mark, o.Encoding.X.Type)
	}
	return nil
}

func (o *Options) setOHLCDefaults() {
	if o.OHLC.Open == "" {
		o.OHLC.Open = DefaultOHLC.Open
	}
	if o.OHLC.High == "" {
		o.OHLC.High = DefaultOHLC.High
	}
	if o.OHLC.Low == "" {
		o.OHLC.Low = DefaultOHLC.Low
	}
	if o.OHLC.Close == "" {
		o.OHLC.Close = DefaultOHLC.Close
	}
}

// BandPadding returns the configured band padding or DefaultPadding.
func (o *Options) BandPadding() float64 {
	if o.Padding != nil {
		return *o.Padding
	}
	return DefaultPadding
}

// ChartConfig returns the layout part of the options.
func (o *Options) ChartConfig() chart.Config {
	return chart.Config{
		Title:  o.Title,
		Width:  o.Width,
		Height: o.Height,
		Grid:   o.Grid,
		Margin: o.Margin,
	}
}

// Spec builds the chart spec for t. Only chart types with a kernel mark
// have one.
func (o *Options) Spec(t *table.DataTable) (chart.Spec, error) {
	mark, ok := o.Mark.Mark()
	if !ok {
		return chart.Spec{}, errors.New(errors.ErrCodeUnsupported, "%s charts have no kernel mark", o.Mark)
	}
	b := chart.NewBuilder().Table(t).Mark(mark).X(o.Encoding.X).Y(o.Encoding.Y).Config(o.ChartConfig())
	if o.Encoding.Color != nil {
		b.Color(*o.Encoding.Color)
	}
	if o.Encoding.Size != nil {
		b.Size(*o.Encoding.Size)
	}
	return b.Build()
}

// ChartKeyOpts returns the cache key options for a chart.
func (o *Options) ChartKeyOpts() cache.ChartKeyOpts {
	fields := []string{o.Encoding.X.Name, o.Encoding.X.Type.String(), o.Encoding.Y.Name, o.Encoding.Y.Type.String()}
	if c := o.Encoding.Color; c != nil {
		fields = append(fields, "color="+c.Name)
	}
	if s := o.Encoding.Size; s != nil {
		fields = append(fields, "size="+s.Name)
	}
	if o.Mark == ChartCandlestick {
		fields = append(fields, o.OHLC.Open, o.OHLC.High, o.OHLC.Low, o.OHLC.Close)
	}
	if o.Mark == ChartWaterfall && o.WaterfallKind != "" {
		fields = append(fields, "kind="+o.WaterfallKind)
	}
	var grid chart.Grid
	if o.Grid != nil {
		grid = *o.Grid
	}
	fields = append(fields, fmt.Sprintf("stacked=%t trend=%t padding=%v inner=%v margin=%+v grid=%+v",
		o.Stacked, o.Trend, o.BandPadding(), o.InnerRadius, o.ChartConfig().EffectiveMargin(), grid))

	return cache.ChartKeyOpts{
		Mark:      string(o.Mark),
		Fields:    fields,
		Width:     o.Width,
		Height:    o.Height,
		Algorithm: string(o.Downsample.Algorithm),
		Threshold: o.Downsample.Threshold,
		Rule:      o.Histogram.Rule.String(),
		Title:     o.Title,
	}
}
