package downsample

import (
	"math"

	"github.com/matzehuels/lodviz/pkg/core/data"
)

// MaxOHLCBars is the number of candlesticks drawn without thinning.
const MaxOHLCBars = 200

// minOHLCColumns is the smallest number of M4 columns used for thinning.
const minOHLCColumns = 20

// ThinOHLC reduces a candlestick series that has more than MaxOHLCBars
// bars. M4 runs over the (timestamp, close) line with one column per six
// pixels of width (at least 20), and the bars whose timestamps survive are
// returned in their original order. Smaller series are copied unchanged.
func ThinOHLC(bars []data.OhlcBar, width float64) []data.OhlcBar {
	if len(bars) <= MaxOHLCBars {
		out := make([]data.OhlcBar, len(bars))
		copy(out, bars)
		return out
	}

	closes := make([]data.DataPoint, len(bars))
	for i, b := range bars {
		closes[i] = data.Point(b.Timestamp, b.Close)
	}

	cols := max(int(width)/6, minOHLCColumns)
	keep := make(map[uint64]struct{})
	for _, p := range M4(closes, cols) {
		keep[math.Float64bits(p.X)] = struct{}{}
	}

	out := make([]data.OhlcBar, 0, len(keep))
	for _, b := range bars {
		if _, ok := keep[math.Float64bits(b.Timestamp)]; ok {
			out = append(out, b)
		}
	}
	return out
}
