package pipeline

import (
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/lodviz/pkg/core/arc"
	"github.com/matzehuels/lodviz/pkg/core/data"
	"github.com/matzehuels/lodviz/pkg/core/downsample"
	"github.com/matzehuels/lodviz/pkg/core/scale"
	"github.com/matzehuels/lodviz/pkg/core/stack"
	"github.com/matzehuels/lodviz/pkg/core/stats"
	"github.com/matzehuels/lodviz/pkg/core/table"
	"github.com/matzehuels/lodviz/pkg/errors"
	"github.com/matzehuels/lodviz/pkg/observability"
)

// =============================================================================
// Point Series (line, area, point, circle)
// =============================================================================

func (c *computation) series() error {
	var ds *data.Dataset
	var sizes [][]float64
	if err := c.stage(observability.StageEncode, &c.res.Timing.Encode, func() error {
		spec, err := c.opts.Spec(c.table)
		if err != nil {
			return err
		}
		ds = spec.ResolveDataset()
		if c.opts.Mark == ChartCircle && c.opts.Encoding.Size != nil {
			sizes = seriesSizes(c.table, c.opts.Encoding)
		}
		return nil
	}); err != nil {
		return err
	}

	stacked := c.opts.Stacked && c.opts.Mark == ChartArea
	skipReduce := sizes != nil || stacked
	if skipReduce && c.opts.Downsample.Algorithm != downsample.AlgoNone {
		c.opts.Logger.Warn("downsampling skipped", "reason", "points must stay aligned", "mark", c.opts.Mark)
	}

	counts := make([]int, len(ds.Series))
	for i, s := range ds.Series {
		counts[i] = len(s.Data)
	}
	if !skipReduce {
		if err := c.stage(observability.StageDownsample, &c.res.Timing.Downsample, func() error {
			var err error
			counts, err = c.downsample(ds)
			return err
		}); err != nil {
			return err
		}
	}

	var layers []stack.Stacked
	if stacked {
		var err error
		if layers, err = stackSeries(ds); err != nil {
			return err
		}
	}

	var xs scale.Scale
	var ys scale.Linear
	if err := c.stage(observability.StageScale, nil, func() error {
		b, ok := ds.Extent()
		if !ok {
			b = data.Bounds{XMin: 0, XMax: 1, YMin: 0, YMax: 1}
		}
		lo, hi := b.YMin, b.YMax
		if c.opts.Mark == ChartArea {
			lo, hi = min(lo, 0), max(hi, 0)
		}
		for _, l := range layers {
			for _, v := range l.Values {
				lo, hi = min(lo, v.Y0), max(hi, v.Y1)
			}
		}
		xs = c.xScale(b.XMin, b.XMax)
		ys = c.yScale(lo, hi)
		c.res.X, c.res.Y = continuousAxis(xs), continuousAxis(ys)
		return nil
	}); err != nil {
		return err
	}

	return c.stage(observability.StageGeometry, &c.res.Timing.Geometry, func() error {
		out := make([]SeriesGeometry, len(ds.Series))
		var g errgroup.Group
		for i, s := range ds.Series {
			g.Go(func() error {
				sg := SeriesGeometry{
					Name:         s.Name,
					Visible:      s.Visible,
					Points:       make([]data.DataPoint, len(s.Data)),
					SourcePoints: counts[i],
				}
				for j, p := range s.Data {
					if layers != nil {
						p.Y = layers[i].Values[j].Y1
					}
					sg.Points[j] = mapPoint(xs, ys, p)
				}
				if c.opts.Mark == ChartArea {
					sg.Baseline = make([]data.DataPoint, len(s.Data))
					for j, p := range s.Data {
						base := 0.0
						if layers != nil {
							base = layers[i].Values[j].Y0
						}
						sg.Baseline[j] = data.Point(xs.Map(p.X), ys.Map(base))
					}
				}
				if sizes != nil {
					sg.Radii = radii(sizes[i])
				}
				if c.opts.Trend {
					if tl, ok := stats.TrendLine(s.Data); ok {
						line := [2]data.DataPoint{mapPoint(xs, ys, tl[0]), mapPoint(xs, ys, tl[1])}
						sg.Trend = &line
					}
				}
				out[i] = sg
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		c.res.Series = out
		c.res.Legend = c.opts.ChartConfig().LegendVisible(len(out))
		return nil
	})
}

// stackSeries stacks series point by point. All series need the same length.
func stackSeries(ds *data.Dataset) ([]stack.Stacked, error) {
	matrix := make([][]float64, len(ds.Series))
	for i, s := range ds.Series {
		if len(s.Data) != len(ds.Series[0].Data) {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"stacked areas need equal-length series: %q has %d points, %q has %d",
				ds.Series[0].Name, len(ds.Series[0].Data), s.Name, len(s.Data))
		}
		row := make([]float64, len(s.Data))
		for j, p := range s.Data {
			row[j] = p.Y
		}
		matrix[i] = row
	}
	return stack.Series(matrix), nil
}

// seriesSizes returns the size channel per series, aligned with the points
// ToDataset produces for the same encoding. Missing sizes are zero.
func seriesSizes(t *table.DataTable, enc table.Encoding) [][]float64 {
	groups := []table.Group{{Key: table.DefaultSeries, Table: t}}
	if enc.Color != nil {
		groups = t.GroupBy(enc.Color.Name)
	}
	out := make([][]float64, len(groups))
	for i, g := range groups {
		sizes := []float64{}
		for _, r := range g.Table.Rows() {
			_, okX := r.Get(enc.X.Name).AsFloat()
			_, okY := r.Get(enc.Y.Name).AsFloat()
			if !okX || !okY {
				continue
			}
			v, _ := r.Get(enc.Size.Name).AsFloat()
			sizes = append(sizes, v)
		}
		out[i] = sizes
	}
	return out
}

// radii maps sizes to circle radii so that area grows linearly with size.
func radii(sizes []float64) []float64 {
	out := make([]float64, len(sizes))
	lo, hi, ok := stats.Extent(sizes)
	if !ok {
		return out
	}
	s := scale.NewLinear(math.Sqrt(max(lo, 0)), math.Sqrt(max(hi, 0)), MinRadius, MaxRadius)
	for i, v := range sizes {
		if hi <= lo {
			out[i] = (MinRadius + MaxRadius) / 2
			continue
		}
		out[i] = s.Map(math.Sqrt(max(v, 0)))
	}
	return out
}

// =============================================================================
// Bars
// =============================================================================

func (c *computation) bars() error {
	var bars *data.BarDataset
	if err := c.stage(observability.StageEncode, &c.res.Timing.Encode, func() error {
		spec, err := c.opts.Spec(c.table)
		if err != nil {
			return err
		}
		bars = spec.ResolveBarDataset()
		return nil
	}); err != nil {
		return err
	}

	matrix := bars.Matrix()
	var layers []stack.Stacked
	if c.opts.Stacked {
		layers = stack.Series(matrix)
	}

	var band scale.Band
	var ys scale.Linear
	if err := c.stage(observability.StageScale, nil, func() error {
		var lo, hi float64
		for si, row := range matrix {
			for ci, v := range row {
				if layers != nil {
					seg := layers[si].Values[ci]
					lo, hi = min(lo, seg.Y0), max(hi, seg.Y1)
				} else {
					lo, hi = min(lo, v), max(hi, v)
				}
			}
		}
		r0, r1 := c.frame.xRange()
		band = scale.NewBand(bars.Categories, r0, r1, c.opts.BandPadding())
		ys = c.yScale(lo, hi)
		c.res.X, c.res.Y = bandAxis(band), continuousAxis(ys)
		return nil
	}); err != nil {
		return err
	}

	return c.stage(observability.StageGeometry, &c.res.Timing.Geometry, func() error {
		out := []BarGeometry{}
		n := max(len(matrix), 1)
		for si, row := range matrix {
			for ci, v := range row {
				x, w := band.MapIndex(ci), band.BandWidth()
				y0, y1 := 0.0, v
				if layers != nil {
					seg := layers[si].Values[ci]
					y0, y1 = seg.Y0, seg.Y1
				} else {
					w /= float64(n)
					x += float64(si) * w
				}
				out = append(out, BarGeometry{
					Series:   bars.Series[si].Name,
					Category: bars.Categories[ci],
					Value:    v,
					Rect:     span(x, w, ys.Map(y0), ys.Map(y1)),
				})
			}
		}
		c.res.Bars = out
		c.res.Legend = c.opts.ChartConfig().LegendVisible(len(matrix))
		return nil
	})
}

// span returns the rectangle between two pixel y positions.
func span(x, w, ya, yb float64) Rect {
	return Rect{X: x, Y: min(ya, yb), Width: w, Height: math.Abs(ya - yb)}
}

// =============================================================================
// Pie
// =============================================================================

func (c *computation) pie() error {
	var labels []string
	var values []float64
	if err := c.stage(observability.StageEncode, &c.res.Timing.Encode, func() error {
		enc := table.NewEncoding(c.opts.Encoding.X, c.opts.Encoding.Y)
		bars := c.table.ToBarDataset(enc)
		labels, values = bars.Categories, bars.Matrix()[0]
		return nil
	}); err != nil {
		return err
	}

	return c.stage(observability.StageGeometry, &c.res.Timing.Geometry, func() error {
		cx, cy := c.frame.center()
		outer := min(c.frame.plot.Width, c.frame.plot.Height) / 2
		inner := outer * c.opts.InnerRadius

		slices := arc.Compute(values)
		out := make([]SliceGeometry, 0, len(slices))
		i := 0
		for ci, v := range values {
			if !arc.Counted(v) {
				continue
			}
			s := slices[i]
			i++
			x, y := arc.Centroid(cx, cy, (outer+inner)/2, s.StartAngle, s.EndAngle)
			out = append(out, SliceGeometry{
				Label:    labels[ci],
				Slice:    s,
				Path:     arc.Path(cx, cy, outer, inner, s.StartAngle, s.EndAngle),
				Centroid: data.Point(x, y),
			})
		}
		c.res.Slices = out
		c.res.Legend = c.opts.ChartConfig().LegendVisible(len(out))
		return nil
	})
}

// =============================================================================
// Histogram
// =============================================================================

func (c *computation) histogram() error {
	var bins []stats.Bin
	if err := c.stage(observability.StageEncode, &c.res.Timing.Encode, func() error {
		bins = stats.Histogram(c.table.ExtractNumeric(c.opts.Encoding.X.Name), c.opts.Histogram.Rule)
		c.opts.Logger.Debug("binned values", "rule", c.opts.Histogram.Rule, "bins", len(bins))
		return nil
	}); err != nil {
		return err
	}

	var xs, ys scale.Linear
	if err := c.stage(observability.StageScale, nil, func() error {
		lo, hi, top := 0.0, 1.0, 0
		if len(bins) > 0 {
			lo, hi = bins[0].X0, bins[len(bins)-1].X1
		}
		for _, b := range bins {
			top = max(top, b.Count)
		}
		r0, r1 := c.frame.xRange()
		xs = scale.NewLinear(lo, hi, r0, r1)
		ys = c.yScale(0, float64(top))
		c.res.X, c.res.Y = continuousAxis(xs), continuousAxis(ys)
		return nil
	}); err != nil {
		return err
	}

	return c.stage(observability.StageGeometry, &c.res.Timing.Geometry, func() error {
		out := make([]BinGeometry, len(bins))
		for i, b := range bins {
			x0, x1 := xs.Map(b.X0), xs.Map(b.X1)
			out[i] = BinGeometry{Bin: b, Rect: span(x0, x1-x0, ys.Map(0), ys.Map(float64(b.Count)))}
		}
		c.res.Bins = out
		return nil
	})
}

// =============================================================================
// Box Plot
// =============================================================================

type boxGroup struct {
	label  string
	values []float64
}

func (c *computation) boxes() error {
	var groups []boxGroup
	if err := c.stage(observability.StageEncode, &c.res.Timing.Encode, func() error {
		x, y := c.opts.Encoding.X, c.opts.Encoding.Y
		if !x.Type.IsCategorical() {
			groups = []boxGroup{{label: y.Name, values: c.table.ExtractNumeric(y.Name)}}
			return nil
		}
		for _, g := range c.table.GroupBy(x.Name) {
			groups = append(groups, boxGroup{label: g.Key, values: g.Table.ExtractNumeric(y.Name)})
		}
		return nil
	}); err != nil {
		return err
	}

	boxes := make([]stats.BoxPlotStats, 0, len(groups))
	kept := groups[:0]
	for _, g := range groups {
		b, ok := stats.BoxPlot(append([]float64(nil), g.values...))
		if !ok {
			continue
		}
		boxes = append(boxes, b)
		kept = append(kept, g)
	}
	groups = kept

	var band scale.Band
	var ys scale.Linear
	if err := c.stage(observability.StageScale, nil, func() error {
		labels := make([]string, len(groups))
		var all []float64
		for i, g := range groups {
			labels[i] = g.label
			all = append(all, g.values...)
		}
		lo, hi, ok := stats.Extent(all)
		if !ok {
			lo, hi = 0, 1
		}
		r0, r1 := c.frame.xRange()
		band = scale.NewBand(labels, r0, r1, c.opts.BandPadding())
		ys = c.yScale(lo, hi)
		c.res.X, c.res.Y = bandAxis(band), continuousAxis(ys)
		return nil
	}); err != nil {
		return err
	}

	return c.stage(observability.StageGeometry, &c.res.Timing.Geometry, func() error {
		out := make([]BoxGeometry, len(boxes))
		for i, b := range boxes {
			bg := BoxGeometry{
				Label:        groups[i].label,
				X:            band.MapIndex(i),
				Width:        band.BandWidth(),
				Q1:           ys.Map(b.Q1),
				Median:       ys.Map(b.Median),
				Q3:           ys.Map(b.Q3),
				LowerWhisker: ys.Map(b.LowerWhisker),
				UpperWhisker: ys.Map(b.UpperWhisker),
				Outliers:     make([]float64, len(b.Outliers)),
				Stats:        b,
			}
			for j, o := range b.Outliers {
				bg.Outliers[j] = ys.Map(o)
			}
			bg.Density = density(groups[i].values, ys)
			out[i] = bg
		}
		c.res.Boxes = out
		return nil
	})
}

// density returns a violin outline: X is the density scaled to [0, 1],
// Y the pixel position of the sample.
func density(values []float64, ys scale.Linear) []data.DataPoint {
	kde, ok := stats.GaussianKDE(values, KDEPoints)
	if !ok {
		return nil
	}
	_, peak, _ := stats.Extent(kde.Ys)
	out := make([]data.DataPoint, len(kde.Xs))
	for i := range kde.Xs {
		d := 0.0
		if peak > 0 {
			d = kde.Ys[i] / peak
		}
		out[i] = data.Point(d, ys.Map(kde.Xs[i]))
	}
	return out
}

// =============================================================================
// Waterfall
// =============================================================================

func (c *computation) waterfall() error {
	var bars []data.WaterfallBar
	if err := c.stage(observability.StageEncode, &c.res.Timing.Encode, func() error {
		var err error
		bars, err = waterfallBars(c.table, c.opts.Encoding, c.opts.WaterfallKind)
		return err
	}); err != nil {
		return err
	}
	segs := stack.Waterfall(bars)

	var band scale.Band
	var ys scale.Linear
	if err := c.stage(observability.StageScale, nil, func() error {
		labels := make([]string, len(segs))
		for i, s := range segs {
			labels[i] = s.Label
		}
		lo, hi := stack.Extent(segs)
		r0, r1 := c.frame.xRange()
		band = scale.NewBand(labels, r0, r1, c.opts.BandPadding())
		ys = c.yScale(lo, hi)
		c.res.X, c.res.Y = bandAxis(band), continuousAxis(ys)
		return nil
	}); err != nil {
		return err
	}

	return c.stage(observability.StageGeometry, &c.res.Timing.Geometry, func() error {
		out := make([]WaterfallGeometry, len(segs))
		for i, s := range segs {
			out[i] = WaterfallGeometry{
				Label:   s.Label,
				Kind:    s.Kind,
				Value:   s.Value,
				Running: s.Running,
				Up:      s.Up,
				Rect:    span(band.MapIndex(i), band.BandWidth(), ys.Map(s.Y0), ys.Map(s.Y1)),
			}
		}
		c.res.Waterfall = out
		return nil
	})
}

// waterfallBars reads one bar per row. Rows without a numeric y are
// skipped unless they are totals, which take their value from the running
// sum.
func waterfallBars(t *table.DataTable, enc table.Encoding, kindCol string) ([]data.WaterfallBar, error) {
	out := []data.WaterfallBar{}
	for i, r := range t.Rows() {
		kind := data.WaterfallDeltaKind
		if kindCol != "" {
			if s, ok := r.Get(kindCol).AsString(); ok {
				if err := kind.UnmarshalText([]byte(s)); err != nil {
					return nil, errors.Wrap(errors.ErrCodeInvalidTable, err, "row %d", i)
				}
			}
		}
		label, ok := r.Get(enc.X.Name).AsString()
		if !ok {
			label = r.Get(enc.X.Name).Key()
		}
		v, ok := r.Get(enc.Y.Name).AsFloat()
		if !ok && kind != data.WaterfallTotalKind {
			continue
		}
		out = append(out, data.WaterfallBar{Label: label, Value: v, Kind: kind})
	}
	return out, nil
}

// =============================================================================
// Candlesticks
// =============================================================================

func (c *computation) candles() error {
	var bars []data.OhlcBar
	if err := c.stage(observability.StageEncode, &c.res.Timing.Encode, func() error {
		bars = ohlcBars(c.table, c.opts.Encoding.X.Name, c.opts.OHLC)
		return nil
	}); err != nil {
		return err
	}

	if err := c.stage(observability.StageDownsample, &c.res.Timing.Downsample, func() error {
		n := len(bars)
		bars = downsample.ThinOHLC(bars, c.frame.plot.Width)
		observability.Pipeline().OnDownsample(c.ctx, "ohlc", n, len(bars))
		return nil
	}); err != nil {
		return err
	}

	var xs scale.Scale
	var ys scale.Linear
	if err := c.stage(observability.StageScale, nil, func() error {
		if len(bars) == 0 {
			xs, ys = c.xScale(0, 1), c.yScale(0, 1)
		} else {
			tlo, thi := bars[0].Timestamp, bars[0].Timestamp
			lo, hi := bars[0].Low, bars[0].High
			for _, b := range bars[1:] {
				tlo, thi = min(tlo, b.Timestamp), max(thi, b.Timestamp)
				lo, hi = min(lo, b.Low), max(hi, b.High)
			}
			if len(bars) > 1 {
				half := (thi - tlo) / float64(len(bars)-1) / 2
				tlo, thi = tlo-half, thi+half
			}
			xs, ys = c.xScale(tlo, thi), c.yScale(lo, hi)
		}
		c.res.X, c.res.Y = continuousAxis(xs), continuousAxis(ys)
		return nil
	}); err != nil {
		return err
	}

	return c.stage(observability.StageGeometry, &c.res.Timing.Geometry, func() error {
		w := 1.0
		if len(bars) > 0 {
			w = max(c.frame.plot.Width/float64(len(bars))*0.7, 1)
		}
		out := make([]CandleGeometry, len(bars))
		for i, b := range bars {
			out[i] = CandleGeometry{
				X:       xs.Map(b.Timestamp),
				Width:   w,
				Open:    ys.Map(b.Open),
				High:    ys.Map(b.High),
				Low:     ys.Map(b.Low),
				Close:   ys.Map(b.Close),
				Bullish: b.IsBullish(),
				Bar:     b,
			}
		}
		c.res.Candles = out
		return nil
	})
}

// ohlcBars reads one bar per row where the timestamp and all four prices
// are present.
func ohlcBars(t *table.DataTable, tsCol string, f OHLCFields) []data.OhlcBar {
	out := []data.OhlcBar{}
	for _, r := range t.Rows() {
		var vals [5]float64
		ok := true
		for i, col := range []string{tsCol, f.Open, f.High, f.Low, f.Close} {
			if vals[i], ok = r.Get(col).AsFloat(); !ok {
				break
			}
		}
		if !ok {
			continue
		}
		out = append(out, data.OhlcBar{Timestamp: vals[0], Open: vals[1], High: vals[2], Low: vals[3], Close: vals[4]})
	}
	return out
}
