package downsample

import (
	"fmt"
	"strings"

	"github.com/matzehuels/lodviz/pkg/core/data"
)

// Algorithm names a downsampling strategy.
type Algorithm string

const (
	AlgoNone Algorithm = "none"
	AlgoLTTB Algorithm = "lttb"
	AlgoM4   Algorithm = "m4"
)

// Algorithms lists the accepted algorithm names in display order.
var Algorithms = []Algorithm{AlgoNone, AlgoLTTB, AlgoM4}

// ParseAlgorithm converts a case-insensitive name into an Algorithm.
// The empty string parses as AlgoNone.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch a := Algorithm(strings.ToLower(strings.TrimSpace(s))); a {
	case "":
		return AlgoNone, nil
	case AlgoNone, AlgoLTTB, AlgoM4:
		return a, nil
	}
	return "", fmt.Errorf("unknown downsample algorithm: %q", s)
}

func (a Algorithm) String() string { return string(a) }

// Apply runs the algorithm with target n. For AlgoLTTB n is the number of
// output points; for AlgoM4 it is the pixel width. AlgoNone and unknown
// algorithms copy the input.
func (a Algorithm) Apply(points []data.DataPoint, n int) []data.DataPoint {
	switch a {
	case AlgoLTTB:
		return LTTB(points, n)
	case AlgoM4:
		return M4(points, n)
	}
	return clone(points)
}

// Apply is shorthand for algo.Apply(points, n).
func Apply(algo Algorithm, points []data.DataPoint, n int) []data.DataPoint {
	return algo.Apply(points, n)
}
