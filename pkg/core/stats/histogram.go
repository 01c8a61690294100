package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Bin is one histogram bucket covering [X0, X1).
type Bin struct {
	X0    float64 `json:"x0"`
	X1    float64 `json:"x1"`
	Count int     `json:"count"`
}

type ruleKind int

const (
	ruleFD ruleKind = iota
	ruleSturges
	ruleScott
	ruleFixed
)

// Rule selects how many bins a histogram uses. The zero value is
// FreedmanDiaconis.
type Rule struct {
	kind ruleKind
	bins int
}

var (
	Sturges          = Rule{kind: ruleSturges}
	Scott            = Rule{kind: ruleScott}
	FreedmanDiaconis = Rule{kind: ruleFD}
)

// Fixed returns a rule with exactly k bins. Values below 1 mean one bin.
func Fixed(k int) Rule { return Rule{kind: ruleFixed, bins: k} }

// Bins returns the explicit bin count of a Fixed rule and 0 otherwise.
func (r Rule) Bins() int {
	if r.kind == ruleFixed {
		return r.bins
	}
	return 0
}

func (r Rule) String() string {
	switch r.kind {
	case ruleSturges:
		return "sturges"
	case ruleScott:
		return "scott"
	case ruleFixed:
		return "fixed:" + strconv.Itoa(r.bins)
	}
	return "fd"
}

func (r Rule) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Rule) UnmarshalText(b []byte) error {
	v, err := ParseRule(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// ParseRule parses "sturges", "scott", "fd" (or "freedman-diaconis") and
// "fixed:K". The empty string is the default rule.
func ParseRule(s string) (Rule, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "fd", "freedman-diaconis":
		return FreedmanDiaconis, nil
	case "sturges":
		return Sturges, nil
	case "scott":
		return Scott, nil
	}
	if rest, ok := strings.CutPrefix(s, "fixed:"); ok {
		k, err := strconv.Atoi(rest)
		if err != nil || k < 1 {
			return Rule{}, fmt.Errorf("invalid bin count %q", rest)
		}
		return Fixed(k), nil
	}
	return Rule{}, fmt.Errorf("unknown histogram rule: %q", s)
}

// Histogram counts xs into equal-width bins spanning [min, max]. The last
// bin is right-closed. When every value is equal the result is a single
// bin [min, min+1) holding all of them. NaN and infinite values are not
// counted.
func Histogram(xs []float64, rule Rule) []Bin {
	xs = finite(xs)
	lo, hi, ok := Extent(xs)
	if !ok {
		return []Bin{}
	}
	n := len(xs)
	if math.Abs(hi-lo) < Epsilon {
		return []Bin{{X0: lo, X1: lo + 1, Count: n}}
	}

	k := max(binCount(xs, lo, hi, rule), 1)
	width := (hi - lo) / float64(k)
	bins := make([]Bin, k)
	for i := range bins {
		bins[i] = Bin{X0: lo + float64(i)*width, X1: lo + float64(i+1)*width}
	}
	for _, x := range xs {
		if x < lo || x > hi {
			continue
		}
		idx := min(int(math.Floor((x-lo)/width)), k-1)
		bins[idx].Count++
	}
	return bins
}

func binCount(xs []float64, lo, hi float64, rule Rule) int {
	n := float64(len(xs))
	span := hi - lo
	switch rule.kind {
	case ruleSturges:
		return sturges(n)
	case ruleScott:
		sd, ok := StdDev(xs)
		if !ok || sd <= 0 {
			return 1
		}
		return int(math.Ceil(span / (3.49 * sd * math.Pow(n, -1.0/3))))
	case ruleFixed:
		return rule.bins
	}
	sorted := sortedCopy(xs)
	iqr := Percentile(sorted, 0.75) - Percentile(sorted, 0.25)
	if iqr <= 0 {
		return sturges(n)
	}
	return int(math.Ceil(span / (2 * iqr * math.Pow(n, -1.0/3))))
}

func sturges(n float64) int {
	return int(math.Ceil(math.Log2(n))) + 1
}
