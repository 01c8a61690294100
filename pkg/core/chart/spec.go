package chart

import (
	"github.com/matzehuels/lodviz/pkg/core/data"
	"github.com/matzehuels/lodviz/pkg/core/table"
	"github.com/matzehuels/lodviz/pkg/errors"
)

// DataKind tells which variant a ChartData holds.
type DataKind int

const (
	NoData DataKind = iota
	TimeSeriesData
	CategoricalData
	TableData
)

// ChartData is the data behind a chart: a point dataset, a bar dataset or
// a tidy table still to be encoded.
type ChartData struct {
	kind  DataKind
	ds    *data.Dataset
	bars  *data.BarDataset
	table *table.DataTable
}

// TimeSeries wraps a point dataset.
func TimeSeries(ds *data.Dataset) ChartData { return ChartData{kind: TimeSeriesData, ds: ds} }

// Categorical wraps a bar dataset.
func Categorical(b *data.BarDataset) ChartData { return ChartData{kind: CategoricalData, bars: b} }

// Table wraps a tidy table.
func Table(t *table.DataTable) ChartData { return ChartData{kind: TableData, table: t} }

// Kind returns the variant held.
func (d ChartData) Kind() DataKind { return d.kind }

// Dataset returns the point dataset of a TimeSeries value.
func (d ChartData) Dataset() (*data.Dataset, bool) { return d.ds, d.kind == TimeSeriesData }

// BarDataset returns the bar dataset of a Categorical value.
func (d ChartData) BarDataset() (*data.BarDataset, bool) { return d.bars, d.kind == CategoricalData }

// Table returns the table of a Table value.
func (d ChartData) Table() (*table.DataTable, bool) { return d.table, d.kind == TableData }

// Spec is a validated chart description.
type Spec struct {
	Data   ChartData
	Mark   data.Mark
	X      table.Field
	Y      *table.Field
	Color  *table.Field
	Size   *table.Field
	Config Config
}

// Encoding returns the Spec's channels as a table encoding. It reports
// false when no y field is set.
func (s Spec) Encoding() (table.Encoding, bool) {
	if s.Y == nil {
		return table.Encoding{}, false
	}
	return table.NewEncoding(s.X, *s.Y).WithColorOpt(s.Color).WithSizeOpt(s.Size), true
}

// ResolveDataset returns the point dataset to draw. A table is converted
// with the Spec's encoding, or yields an empty dataset without a y field.
// Bar data yields an empty dataset.
func (s Spec) ResolveDataset() *data.Dataset {
	switch s.Data.kind {
	case TimeSeriesData:
		return s.Data.ds
	case TableData:
		if enc, ok := s.Encoding(); ok {
			return s.Data.table.ToDataset(enc)
		}
	}
	return data.NewDataset()
}

// ResolveBarDataset returns the bar dataset to draw. A table is converted
// with the Spec's x, y and color fields, or yields an empty bar dataset
// without a y field. Point data yields an empty bar dataset.
func (s Spec) ResolveBarDataset() *data.BarDataset {
	switch s.Data.kind {
	case CategoricalData:
		return s.Data.bars
	case TableData:
		if s.Y != nil {
			enc := table.NewEncoding(s.X, *s.Y).WithColorOpt(s.Color)
			return s.Data.table.ToBarDataset(enc)
		}
	}
	return data.NewBarDataset([]string{})
}

// Builder assembles a Spec. Setters may be called in any order; the last
// call wins.
type Builder struct {
	data    ChartData
	mark    data.Mark
	hasMark bool
	x       *table.Field
	y       *table.Field
	color   *table.Field
	size    *table.Field
	config  Config
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder { return &Builder{} }

// Data sets a point dataset.
func (b *Builder) Data(ds *data.Dataset) *Builder {
	b.data = TimeSeries(ds)
	return b
}

// Points sets a single series named "default".
func (b *Builder) Points(pts []data.DataPoint) *Builder {
	return b.Data(data.FromSeries(data.NewSeries(table.DefaultSeries, pts)))
}

// Bars sets a bar dataset.
func (b *Builder) Bars(bars *data.BarDataset) *Builder {
	b.data = Categorical(bars)
	return b
}

// Table sets a tidy table.
func (b *Builder) Table(t *table.DataTable) *Builder {
	b.data = Table(t)
	return b
}

func (b *Builder) Mark(m data.Mark) *Builder {
	b.mark, b.hasMark = m, true
	return b
}

func (b *Builder) X(f table.Field) *Builder     { b.x = &f; return b }
func (b *Builder) Y(f table.Field) *Builder     { b.y = &f; return b }
func (b *Builder) Color(f table.Field) *Builder { b.color = &f; return b }
func (b *Builder) Size(f table.Field) *Builder  { b.size = &f; return b }

func (b *Builder) Title(title string) *Builder {
	b.config.Title = title
	return b
}

// Grid shows or hides grid lines on both axes.
func (b *Builder) Grid(show bool) *Builder {
	b.config.Grid = &Grid{ShowX: show, ShowY: show}
	return b
}

// Config replaces the whole layout configuration.
func (b *Builder) Config(c Config) *Builder {
	b.config = c
	return b
}

// Build validates the builder and returns the Spec. Missing data, mark or
// x field is an ErrCodeInvalidSpec error.
func (b *Builder) Build() (Spec, error) {
	switch {
	case b.data.kind == NoData:
		return Spec{}, errors.New(errors.ErrCodeInvalidSpec, "chart data is required")
	case b.data.ds == nil && b.data.bars == nil && b.data.table == nil:
		return Spec{}, errors.New(errors.ErrCodeInvalidSpec, "chart data is nil")
	case !b.hasMark:
		return Spec{}, errors.New(errors.ErrCodeInvalidSpec, "mark is required")
	case b.x == nil:
		return Spec{}, errors.New(errors.ErrCodeInvalidSpec, "x field is required")
	}
	return Spec{
		Data:   b.data,
		Mark:   b.mark,
		X:      *b.x,
		Y:      b.y,
		Color:  b.color,
		Size:   b.size,
		Config: b.config,
	}, nil
}
