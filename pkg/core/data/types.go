package data

import "fmt"

// DataType classifies the values an encoding channel carries.
type DataType int

const (
	// Quantitative is continuous numeric data.
	Quantitative DataType = iota
	// Temporal is date/time data.
	Temporal
	// Nominal is unordered categorical data.
	Nominal
	// Ordinal is ordered categorical data.
	Ordinal
)

var dataTypeNames = []string{"quantitative", "temporal", "nominal", "ordinal"}

// String returns the lowercase type name.
func (t DataType) String() string {
	if int(t) >= 0 && int(t) < len(dataTypeNames) {
		return dataTypeNames[t]
	}
	return "unknown"
}

// IsCategorical reports whether the type is nominal or ordinal.
func (t DataType) IsCategorical() bool {
	return t == Nominal || t == Ordinal
}

// MarshalText implements encoding.TextMarshaler.
func (t DataType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *DataType) UnmarshalText(b []byte) error {
	v, err := ParseDataType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseDataType parses a lowercase type name.
func ParseDataType(s string) (DataType, error) {
	for i, name := range dataTypeNames {
		if name == s {
			return DataType(i), nil
		}
	}
	return 0, unknownName("data type", s)
}

// Mark is the visual primitive used to draw data.
type Mark int

const (
	// MarkLine connects points with a line.
	MarkLine Mark = iota
	// MarkArea fills the region under or between lines.
	MarkArea
	// MarkBar draws vertical bars.
	MarkBar
	// MarkPoint draws individual points.
	MarkPoint
	// MarkCircle draws circles with variable size.
	MarkCircle
)

var markNames = []string{"line", "area", "bar", "point", "circle"}

// String returns the lowercase mark name.
func (m Mark) String() string {
	if int(m) >= 0 && int(m) < len(markNames) {
		return markNames[m]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (m Mark) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mark) UnmarshalText(b []byte) error {
	v, err := ParseMark(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseMark parses a lowercase mark name.
func ParseMark(s string) (Mark, error) {
	for i, name := range markNames {
		if name == s {
			return Mark(i), nil
		}
	}
	return 0, unknownName("mark", s)
}

func unknownName(kind, name string) error {
	return fmt.Errorf("unknown %s: %q", kind, name)
}
