package table

import "github.com/matzehuels/lodviz/pkg/core/data"

// DefaultSeries names the only series produced without a color field.
const DefaultSeries = "default"

// ToDataset converts the table to line series using e.X and e.Y. With a
// color field there is one series per group; otherwise a single series
// named DefaultSeries.
func (t *DataTable) ToDataset(e Encoding) *data.Dataset {
	if e.Color == nil {
		return data.FromSeries(data.NewSeries(DefaultSeries, t.ExtractXY(e.X.Name, e.Y.Name)))
	}
	ds := data.NewDataset()
	for _, g := range t.GroupBy(e.Color.Name) {
		ds.AddSeries(data.NewSeries(g.Key, g.Table.ExtractXY(e.X.Name, e.Y.Name)))
	}
	return ds
}

// ToBarDataset converts the table to grouped bars. Categories are the
// distinct text values of e.X in first-occurrence order. Each series takes,
// per category, the y of the first matching row, or 0 when none matches.
func (t *DataTable) ToBarDataset(e Encoding) *data.BarDataset {
	categories := []string{}
	seen := make(map[string]struct{})
	for _, r := range t.rows {
		s, ok := r.Get(e.X.Name).AsString()
		if !ok {
			continue
		}
		if _, dup := seen[s]; !dup {
			seen[s] = struct{}{}
			categories = append(categories, s)
		}
	}

	bars := data.NewBarDataset(categories)
	if e.Color == nil {
		bars.AddSeries(DefaultSeries, t.categoryValues(categories, e))
		return bars
	}
	for _, g := range t.GroupBy(e.Color.Name) {
		bars.AddSeries(g.Key, g.Table.categoryValues(categories, e))
	}
	return bars
}

func (t *DataTable) categoryValues(categories []string, e Encoding) []float64 {
	first := make(map[string]DataRow, len(categories))
	for _, r := range t.rows {
		s, ok := r.Get(e.X.Name).AsString()
		if !ok {
			continue
		}
		if _, done := first[s]; !done {
			first[s] = r
		}
	}
	values := make([]float64, len(categories))
	for i, c := range categories {
		if r, ok := first[c]; ok {
			values[i], _ = r.Get(e.Y.Name).AsFloat()
		}
	}
	return values
}
