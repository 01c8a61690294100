package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/lodviz/pkg/core/data"
	"github.com/matzehuels/lodviz/pkg/core/downsample"
	"github.com/matzehuels/lodviz/pkg/core/scale"
	"github.com/matzehuels/lodviz/pkg/core/stats"
	"github.com/matzehuels/lodviz/pkg/core/table"
	"github.com/matzehuels/lodviz/pkg/errors"
	"github.com/matzehuels/lodviz/pkg/observability"
)

// Compute runs every stage for t without caching. The input table is not
// modified.
func Compute(ctx context.Context, t *table.DataTable, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.New(errors.ErrCodeInvalidTable, "table is required")
	}

	start := time.Now()
	c := &computation{
		ctx:   ctx,
		opts:  &opts,
		frame: newFrame(&opts),
	}
	c.res = &Result{
		Mark:   opts.Mark,
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Plot:   c.frame.plot,
	}

	if err := c.stage(observability.StageLoad, &c.res.Timing.Load, func() error {
		return c.load(t)
	}); err != nil {
		return nil, err
	}

	var err error
	switch opts.Mark {
	case ChartLine, ChartArea, ChartPoint, ChartCircle:
		err = c.series()
	case ChartBar:
		err = c.bars()
	case ChartPie:
		err = c.pie()
	case ChartHistogram:
		err = c.histogram()
	case ChartBox:
		err = c.boxes()
	case ChartWaterfall:
		err = c.waterfall()
	case ChartCandlestick:
		err = c.candles()
	}
	if err != nil {
		return nil, err
	}

	if err := c.stage(observability.StageStats, nil, c.summarize); err != nil {
		return nil, err
	}

	c.res.Timing.Total = time.Since(start)
	opts.Logger.Debug("computed chart", "mark", opts.Mark, "rows", c.table.Len(), "duration", c.res.Timing.Total)
	return c.res, nil
}

// computation carries the state of one Compute call.
type computation struct {
	ctx   context.Context
	opts  *Options
	frame frame
	table *table.DataTable
	res   *Result
}

// stage runs fn as a named stage, reporting it to the pipeline hooks and
// adding its duration to d when d is non-nil.
func (c *computation) stage(name string, d *time.Duration, fn func() error) error {
	if err := c.ctx.Err(); err != nil {
		return err
	}
	hooks := observability.Pipeline()
	hooks.OnStageStart(c.ctx, name)
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	if d != nil {
		*d += elapsed
	}
	hooks.OnStageComplete(c.ctx, name, elapsed, err)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// =============================================================================
// Load
// =============================================================================

// load copies t and parses RFC 3339 text in temporal channels.
func (c *computation) load(t *table.DataTable) error {
	c.table = t.Clone()
	enc := c.opts.Encoding
	fields := []*table.Field{&enc.X, &enc.Y, enc.Color, enc.Size}
	for _, f := range fields {
		if f == nil || f.Name == "" || f.Type != data.Temporal {
			continue
		}
		n, err := c.table.ParseTimes(f.Name)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidTable, err, "parse timestamps")
		}
		if n > 0 {
			c.opts.Logger.Debug("parsed timestamps", "column", f.Name, "cells", n)
		}
	}
	return nil
}

// =============================================================================
// Frame
// =============================================================================

// frame is the pixel layout of the plot area.
type frame struct {
	plot Rect
}

func newFrame(o *Options) frame {
	cfg := o.ChartConfig()
	m := cfg.EffectiveMargin()
	w, h := cfg.InnerSize()
	return frame{plot: Rect{X: m.Left, Y: m.Top, Width: w, Height: h}}
}

// xRange runs left to right.
func (f frame) xRange() (float64, float64) { return f.plot.X, f.plot.X + f.plot.Width }

// yRange runs bottom to top so larger values sit higher.
func (f frame) yRange() (float64, float64) { return f.plot.Y + f.plot.Height, f.plot.Y }

func (f frame) center() (float64, float64) {
	return f.plot.X + f.plot.Width/2, f.plot.Y + f.plot.Height/2
}

// =============================================================================
// Scales
// =============================================================================

// xScale returns a time scale for temporal fields and a linear one otherwise.
func (c *computation) xScale(lo, hi float64) scale.Scale {
	lo, hi = scale.PaddedDomain(lo, hi, 0)
	r0, r1 := c.frame.xRange()
	if c.opts.Encoding.X.Type == data.Temporal {
		return scale.NewTime(lo, hi, r0, r1)
	}
	return scale.NewLinear(lo, hi, r0, r1)
}

// yScale pads [lo, hi] but never moves a zero bound off zero.
func (c *computation) yScale(lo, hi float64) scale.Linear {
	y0, y1 := scale.PaddedDomain(lo, hi, DefaultDomainPadding)
	if lo == 0 && hi != 0 {
		y0 = 0
	}
	if hi == 0 && lo != 0 {
		y1 = 0
	}
	r0, r1 := c.frame.yRange()
	return scale.NewLinear(y0, y1, r0, r1)
}

func continuousAxis(s scale.Scale) *Axis {
	d0, d1 := s.Domain()
	r0, r1 := s.Range()
	kind := scale.KindOf(s)
	return &Axis{
		Kind:   kind,
		Domain: [2]float64{d0, d1},
		Range:  [2]float64{r0, r1},
		Ticks:  scale.NiceTicks(kind, min(d0, d1), max(d0, d1)),
	}
}

func bandAxis(b scale.Band) *Axis {
	r0, r1 := b.Range()
	return &Axis{
		Kind:       scale.KindBand,
		Domain:     [2]float64{0, float64(b.Len())},
		Range:      [2]float64{r0, r1},
		Categories: b.Categories(),
		BandWidth:  b.BandWidth(),
	}
}

func mapPoint(xs, ys scale.Scale, p data.DataPoint) data.DataPoint {
	return data.Point(xs.Map(p.X), ys.Map(p.Y))
}

// =============================================================================
// Downsampling
// =============================================================================

// target returns the downsampling target for the configured algorithm.
func (c *computation) target() int {
	n := c.opts.Downsample.Threshold
	if c.opts.Downsample.Algorithm == downsample.AlgoM4 && n == 0 {
		n = max(int(c.frame.plot.Width), 1)
	}
	return n
}

// downsample reduces every series of ds concurrently and returns the
// point counts before reduction.
func (c *computation) downsample(ds *data.Dataset) ([]int, error) {
	counts := make([]int, len(ds.Series))
	for i, s := range ds.Series {
		counts[i] = len(s.Data)
	}
	algo := c.opts.Downsample.Algorithm
	if algo == downsample.AlgoNone {
		return counts, nil
	}

	n := c.target()
	g, ctx := errgroup.WithContext(c.ctx)
	for i := range ds.Series {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s := &ds.Series[i]
			s.Data = algo.Apply(s.Data, n)
			observability.Pipeline().OnDownsample(ctx, string(algo), counts[i], len(s.Data))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	kept := ds.PointCount()
	c.opts.Logger.Debug("downsampled series", "algorithm", algo, "series", len(ds.Series), "points", kept)
	return counts, nil
}

// =============================================================================
// Stats
// =============================================================================

// summarize reports the distribution of the main value channel.
func (c *computation) summarize() error {
	var values []float64
	switch c.opts.Mark {
	case ChartHistogram:
		values = c.table.ExtractNumeric(c.opts.Encoding.X.Name)
	case ChartCandlestick:
		values = c.table.ExtractNumeric(c.opts.OHLC.Close)
	default:
		values = c.table.ExtractNumeric(c.opts.Encoding.Y.Name)
	}
	if len(values) == 0 {
		return nil
	}
	s := stats.Summarize(values)
	c.res.Stats = &s
	return nil
}
