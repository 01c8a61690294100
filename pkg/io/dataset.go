package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/lodviz/pkg/core/data"
)

type dataset struct {
	Series []series `json:"series"`
}

type series struct {
	Name    string  `json:"name"`
	Data    []point `json:"data"`
	Visible *bool   `json:"visible,omitempty"`
}

// point is an [x, y] pair on the wire.
type point data.DataPoint

func (p point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

func (p *point) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var obj data.DataPoint
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		*p = point(obj)
		return nil
	}
	var pair []float64
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("point must be [x, y] or {\"x\", \"y\"}: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("point must have 2 coordinates, got %d", len(pair))
	}
	*p = point{X: pair[0], Y: pair[1]}
	return nil
}

// ReadDataset decodes a dataset document from r.
func ReadDataset(r io.Reader) (*data.Dataset, error) {
	var in dataset
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	ds := data.NewDataset()
	for _, s := range in.Series {
		pts := make([]data.DataPoint, len(s.Data))
		for i, p := range s.Data {
			pts[i] = data.DataPoint(p)
		}
		out := data.NewSeries(s.Name, pts)
		if s.Visible != nil {
			out.Visible = *s.Visible
		}
		ds.AddSeries(out)
	}
	return ds, nil
}

// ImportDataset reads a dataset document from the file at path.
func ImportDataset(path string) (*data.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDataset(f)
}

// WriteDataset encodes ds with points as [x, y] pairs. Hidden series keep
// an explicit "visible": false.
func WriteDataset(ds *data.Dataset, w io.Writer) error {
	out := dataset{Series: make([]series, len(ds.Series))}
	for i, s := range ds.Series {
		pts := make([]point, len(s.Data))
		for j, p := range s.Data {
			pts[j] = point(p)
		}
		out.Series[i] = series{Name: s.Name, Data: pts}
		if !s.Visible {
			hidden := false
			out.Series[i].Visible = &hidden
		}
	}
	return WriteJSON(w, out)
}

// Points converts raw wire points, as embedded in API requests, to data points.
type Points []point

// DataPoints returns the decoded points.
func (p Points) DataPoints() []data.DataPoint {
	out := make([]data.DataPoint, len(p))
	for i, v := range p {
		out[i] = data.DataPoint(v)
	}
	return out
}

// NewPoints converts data points to their wire form.
func NewPoints(pts []data.DataPoint) Points {
	out := make(Points, len(pts))
	for i, v := range pts {
		out[i] = point(v)
	}
	return out
}
