package interact

import (
	"math"
	"sort"

	"github.com/matzehuels/lodviz/pkg/core/data"
)

// FindNearest returns the point of an x-sorted slice whose x is closest
// to target. When two neighbours are equally close the earlier one wins.
// ok is false for an empty slice.
func FindNearest(points []data.DataPoint, target float64) (index int, p data.DataPoint, ok bool) {
	n := len(points)
	if n == 0 {
		return 0, data.DataPoint{}, false
	}
	i := sort.Search(n, func(i int) bool { return points[i].X >= target })
	switch {
	case i == 0:
		index = 0
	case i >= n:
		index = n - 1
	default:
		index = i - 1
		if math.Abs(points[i].X-target) < math.Abs(points[i-1].X-target) {
			index = i
		}
	}
	return index, points[index], true
}

// Hit is the nearest point of one series.
type Hit struct {
	Series string         `json:"series"`
	Index  int            `json:"index"`
	Point  data.DataPoint `json:"point"`
}

// NearestAll looks up the point closest to x in every visible, non-empty
// series of ds, in series order.
func NearestAll(ds *data.Dataset, x float64) []Hit {
	hits := []Hit{}
	if ds == nil {
		return hits
	}
	for _, s := range ds.Series {
		if !s.Visible {
			continue
		}
		if i, p, ok := FindNearest(s.Data, x); ok {
			hits = append(hits, Hit{Series: s.Name, Index: i, Point: p})
		}
	}
	return hits
}
