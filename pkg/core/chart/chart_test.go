package chart

import (
	"fmt"
	"testing"

	"github.com/matzehuels/lodviz/pkg/core/data"
	"github.com/matzehuels/lodviz/pkg/core/table"
	"github.com/matzehuels/lodviz/pkg/errors"
)

func samplePoints() []data.DataPoint {
	return []data.DataPoint{data.Point(0, 1), data.Point(1, 3), data.Point(2, 2)}
}

func sampleTable() *table.DataTable {
	return table.NewTable(
		table.Row(map[string]any{"date": 1, "amount": 10, "product": "a"}),
		table.Row(map[string]any{"date": 2, "amount": 12, "product": "a"}),
		table.Row(map[string]any{"date": 1, "amount": 4, "product": "b"}),
	)
}

func TestBuilderRequired(t *testing.T) {
	spec, err := NewBuilder().
		Points(samplePoints()).
		Mark(data.MarkLine).
		X(table.Temporal("time")).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if spec.Mark != data.MarkLine || spec.X.Name != "time" || spec.X.Type != data.Temporal {
		t.Errorf("spec = %+v", spec)
	}
	ds, ok := spec.Data.Dataset()
	if !ok || len(ds.Series) != 1 || ds.Series[0].Len() != 3 {
		t.Errorf("Data.Dataset() = %+v, %v", ds, ok)
	}
	if spec.Y != nil || spec.Color != nil || spec.Size != nil {
		t.Error("optional fields should be unset")
	}
}

func TestBuilderOptionals(t *testing.T) {
	spec, err := NewBuilder().
		Title("My Chart").
		Grid(true).
		Size(table.Quantitative("magnitude")).
		Color(table.Nominal("category")).
		Y(table.Quantitative("y")).
		X(table.Quantitative("x")).
		Mark(data.MarkPoint).
		Points(samplePoints()).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if spec.Y.Name != "y" || spec.Color.Name != "category" || spec.Size.Name != "magnitude" {
		t.Errorf("fields = %v %v %v", spec.Y, spec.Color, spec.Size)
	}
	if spec.Config.Title != "My Chart" || spec.Config.Grid == nil || !spec.Config.Grid.ShowX || !spec.Config.Grid.ShowY {
		t.Errorf("config = %+v", spec.Config)
	}
}

func TestBuilderMissing(t *testing.T) {
	tests := []struct {
		name string
		b    *Builder
	}{
		{"no data", NewBuilder().Mark(data.MarkBar).X(table.Nominal("c"))},
		{"nil data", NewBuilder().Data(nil).Mark(data.MarkBar).X(table.Nominal("c"))},
		{"no mark", NewBuilder().Points(samplePoints()).X(table.Nominal("c"))},
		{"no x", NewBuilder().Points(samplePoints()).Mark(data.MarkBar)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.b.Build()
			if !errors.Is(err, errors.ErrCodeInvalidSpec) {
				t.Errorf("Build() error = %v, want %s", err, errors.ErrCodeInvalidSpec)
			}
		})
	}
}

func TestMarkZeroValueIsAccepted(t *testing.T) {
	// The first mark constant is a valid choice, not "unset".
	spec, err := NewBuilder().Points(samplePoints()).Mark(data.Mark(0)).X(table.Quantitative("x")).Build()
	if err != nil || spec.Mark != data.Mark(0) {
		t.Errorf("Build() = %v, %v", spec.Mark, err)
	}
}

func TestChartDataAccessors(t *testing.T) {
	bars := data.NewBarDataset([]string{"a"})
	d := Categorical(bars)
	if d.Kind() != CategoricalData {
		t.Errorf("Kind() = %v", d.Kind())
	}
	if got, ok := d.BarDataset(); !ok || got != bars {
		t.Error("BarDataset() should return the wrapped dataset")
	}
	if _, ok := d.Dataset(); ok {
		t.Error("Dataset() on bar data should not be ok")
	}
	if _, ok := d.Table(); ok {
		t.Error("Table() on bar data should not be ok")
	}
	tbl := sampleTable()
	if got, ok := Table(tbl).Table(); !ok || got != tbl {
		t.Error("Table() should return the wrapped table")
	}
}

func TestResolveDataset(t *testing.T) {
	build := func(b *Builder) Spec {
		t.Helper()
		s, err := b.Build()
		if err != nil {
			t.Fatal(err)
		}
		return s
	}

	fromTable := build(NewBuilder().Table(sampleTable()).Mark(data.MarkLine).
		X(table.Quantitative("date")).Y(table.Quantitative("amount")).Color(table.Nominal("product")))
	ds := fromTable.ResolveDataset()
	if len(ds.Series) != 2 || ds.Series[0].Name != "a" || ds.Series[0].Len() != 2 {
		t.Errorf("ResolveDataset(table) = %+v", ds.Series)
	}

	noY := build(NewBuilder().Table(sampleTable()).Mark(data.MarkLine).X(table.Quantitative("date")))
	if ds := noY.ResolveDataset(); len(ds.Series) != 0 {
		t.Errorf("ResolveDataset without y = %+v", ds.Series)
	}
	if _, ok := noY.Encoding(); ok {
		t.Error("Encoding() without y should not be ok")
	}

	bars := build(NewBuilder().Bars(data.NewBarDataset([]string{"x"})).Mark(data.MarkBar).X(table.Nominal("c")))
	if ds := bars.ResolveDataset(); len(ds.Series) != 0 {
		t.Errorf("ResolveDataset(bars) = %+v", ds.Series)
	}

	points := build(NewBuilder().Points(samplePoints()).Mark(data.MarkLine).X(table.Quantitative("x")))
	if ds := points.ResolveDataset(); ds.PointCount() != 3 {
		t.Errorf("ResolveDataset(points) has %d points", ds.PointCount())
	}
}

func TestResolveBarDataset(t *testing.T) {
	tbl := table.NewTable(
		table.Row(map[string]any{"fruit": "apple", "n": 3, "shop": "x"}),
		table.Row(map[string]any{"fruit": "pear", "n": 5, "shop": "x"}),
		table.Row(map[string]any{"fruit": "apple", "n": 1, "shop": "y"}),
	)
	spec, err := NewBuilder().Table(tbl).Mark(data.MarkBar).
		X(table.Nominal("fruit")).Y(table.Quantitative("n")).Color(table.Nominal("shop")).Build()
	if err != nil {
		t.Fatal(err)
	}
	bars := spec.ResolveBarDataset()
	if fmt.Sprint(bars.Categories) != "[apple pear]" || len(bars.Series) != 2 {
		t.Fatalf("ResolveBarDataset = %+v", bars)
	}
	if fmt.Sprint(bars.Matrix()) != "[[3 5] [1 0]]" {
		t.Errorf("Matrix() = %v", bars.Matrix())
	}

	spec.Y = nil
	if got := spec.ResolveBarDataset(); len(got.Categories) != 0 || len(got.Series) != 0 {
		t.Errorf("ResolveBarDataset without y = %+v", got)
	}
	spec.Data = TimeSeries(data.NewDataset())
	if got := spec.ResolveBarDataset(); len(got.Series) != 0 {
		t.Errorf("ResolveBarDataset(points) = %+v", got)
	}
}

func TestConfig(t *testing.T) {
	var c Config
	if w, h := c.Size(); w != DefaultWidth || h != DefaultHeight {
		t.Errorf("Size() = %v, %v", w, h)
	}
	if w, h := c.InnerSize(); w != 720 || h != 330 {
		t.Errorf("InnerSize() = %v, %v; want 720, 330", w, h)
	}
	c = Config{Width: 100, Height: 50, Margin: &Margin{Top: 40, Bottom: 40, Left: 10, Right: 10}}
	if w, h := c.InnerSize(); w != 80 || h != 0 {
		t.Errorf("InnerSize() = %v, %v; want 80, 0", w, h)
	}

	if c.LegendVisible(1) || !c.LegendVisible(2) {
		t.Error("legend should default to more than one series")
	}
	off := false
	c.ShowLegend = &off
	if c.LegendVisible(5) {
		t.Error("ShowLegend=false should hide the legend")
	}
}

func ExampleBuilder() {
	spec, err := NewBuilder().
		Points([]data.DataPoint{data.Point(0, 1), data.Point(1, 2)}).
		Mark(data.MarkArea).
		X(table.Quantitative("x")).
		Title("demo").
		Build()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(spec.Mark, spec.Config.Title, spec.ResolveDataset().PointCount())
	// Output: area demo 2
}
