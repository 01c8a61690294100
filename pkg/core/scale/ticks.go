package scale

import (
	"sort"
	"strconv"
	"time"

	"gonum.org/v1/plot"
)

// Tick is a labelled or minor tick position in domain units.
type Tick struct {
	Value float64 `json:"value"`
	Label string  `json:"label,omitempty"`
}

// IsMinor reports whether the tick carries no label.
func (t Tick) IsMinor() bool { return t.Label == "" }

// Ticks returns count+1 evenly spaced domain values from d0 to d1
// inclusive. A count of zero yields only d0.
func Ticks(s Scale, count int) []float64 {
	d0, d1 := s.Domain()
	if count <= 0 {
		return []float64{d0}
	}
	out := make([]float64, count+1)
	step := (d1 - d0) / float64(count)
	for i := range out {
		out[i] = d0 + float64(i)*step
	}
	return out
}

// TimeFormat is the label layout used for time ticks.
const TimeFormat = time.RFC3339

// NiceTicks returns rounded, human-friendly ticks covering [min, max] for
// the given scale kind. Timestamps are interpreted as Unix seconds. When
// max <= min, or a log domain is not positive, it returns a single tick at
// min.
func NiceTicks(kind Kind, min, max float64) []Tick {
	if max <= min || (kind == KindLog && min <= 0) {
		return []Tick{{Value: min, Label: label(kind, min)}}
	}

	var ticker plot.Ticker
	switch kind {
	case KindLog:
		ticker = plot.LogTicks{Prec: -1}
	case KindTime:
		ticker = plot.TimeTicks{Format: TimeFormat, Time: plot.UTCUnixTime}
	default:
		ticker = plot.DefaultTicks{}
	}

	pts := ticker.Ticks(min, max)
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].Value < pts[j].Value })
	out := make([]Tick, 0, len(pts))
	for _, t := range pts {
		if t.Value < min || t.Value > max {
			continue
		}
		// LogTicks emits each decade twice, labelled first.
		if n := len(out); n > 0 && out[n-1].Value == t.Value {
			continue
		}
		out = append(out, Tick{Value: t.Value, Label: t.Label})
	}
	return out
}

func label(kind Kind, v float64) string {
	if kind == KindTime {
		return plot.UTCUnixTime(v).Format(TimeFormat)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
