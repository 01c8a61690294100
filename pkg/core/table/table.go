package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/matzehuels/lodviz/pkg/core/data"
)

// DataRow maps column names to cells.
type DataRow map[string]FieldValue

// Row builds a DataRow from Go values using Value.
func Row(values map[string]any) DataRow {
	r := make(DataRow, len(values))
	for k, v := range values {
		r[k] = Value(v)
	}
	return r
}

// Get returns the cell in col, or null when the row has no such column.
func (r DataRow) Get(col string) FieldValue {
	return r[col]
}

// DataTable is an ordered list of rows.
type DataTable struct {
	rows []DataRow
}

// NewTable returns a table holding rows.
func NewTable(rows ...DataRow) *DataTable {
	return FromRows(rows)
}

// FromRows returns a table that takes ownership of rows.
func FromRows(rows []DataRow) *DataTable {
	if rows == nil {
		rows = []DataRow{}
	}
	return &DataTable{rows: rows}
}

// Push appends a row.
func (t *DataTable) Push(r DataRow) { t.rows = append(t.rows, r) }

// Clone returns a copy of t whose rows can be modified independently.
func (t *DataTable) Clone() *DataTable {
	rows := make([]DataRow, len(t.rows))
	for i, r := range t.rows {
		c := make(DataRow, len(r))
		for k, v := range r {
			c[k] = v
		}
		rows[i] = c
	}
	return FromRows(rows)
}

// Len returns the number of rows.
func (t *DataTable) Len() int { return len(t.rows) }

// IsEmpty reports whether the table has no rows.
func (t *DataTable) IsEmpty() bool { return len(t.rows) == 0 }

// Rows returns the rows in order. The slice is shared with the table.
func (t *DataTable) Rows() []DataRow { return t.rows }

// Columns returns the sorted union of column names over all rows.
func (t *DataTable) Columns() []string {
	seen := make(map[string]struct{})
	for _, r := range t.rows {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// ExtractNumeric returns the numeric value of col for each row where it has
// one, in row order.
func (t *DataTable) ExtractNumeric(col string) []float64 {
	out := []float64{}
	for _, r := range t.rows {
		if v, ok := r.Get(col).AsFloat(); ok {
			out = append(out, v)
		}
	}
	return out
}

// ExtractText returns the text of col for each row where it is text.
func (t *DataTable) ExtractText(col string) []string {
	out := []string{}
	for _, r := range t.rows {
		if s, ok := r.Get(col).AsString(); ok {
			out = append(out, s)
		}
	}
	return out
}

// ExtractXY returns one point per row where both columns are numeric.
func (t *DataTable) ExtractXY(xCol, yCol string) []data.DataPoint {
	out := []data.DataPoint{}
	for _, r := range t.rows {
		x, ok := r.Get(xCol).AsFloat()
		if !ok {
			continue
		}
		y, ok := r.Get(yCol).AsFloat()
		if !ok {
			continue
		}
		out = append(out, data.Point(x, y))
	}
	return out
}

// Group is the subset of rows sharing a key.
type Group struct {
	Key   string
	Table *DataTable
}

// GroupBy partitions rows by the key of col, in order of first
// occurrence.
func (t *DataTable) GroupBy(col string) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, r := range t.rows {
		key := r.Get(col).Key()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key, Table: FromRows(nil)})
		}
		groups[i].Table.Push(r)
	}
	if groups == nil {
		groups = []Group{}
	}
	return groups
}

// ParseTimes converts RFC3339 text cells in col to timestamps in place and
// returns how many cells changed. Cells of any other kind are left alone.
func (t *DataTable) ParseTimes(col string) (int, error) {
	n := 0
	for i, r := range t.rows {
		s, ok := r.Get(col).AsString()
		if !ok {
			continue
		}
		ts, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return n, fmt.Errorf("row %d: column %q: %w", i, col, err)
		}
		r[col] = Time(ts)
		n++
	}
	return n, nil
}

type tableJSON struct {
	Rows []DataRow `json:"rows"`
}

// MarshalJSON encodes the table as {"rows": [...]}.
func (t *DataTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(tableJSON{Rows: t.rows})
}

// UnmarshalJSON accepts {"rows": [...]} or a bare array of rows.
func (t *DataTable) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	var rows []DataRow
	if len(b) > 0 && b[0] == '[' {
		if err := json.Unmarshal(b, &rows); err != nil {
			return err
		}
	} else {
		var tj tableJSON
		if err := json.Unmarshal(b, &tj); err != nil {
			return err
		}
		rows = tj.Rows
	}
	*t = *FromRows(rows)
	return nil
}
