package table

import (
	"github.com/matzehuels/lodviz/pkg/core/data"
	"github.com/matzehuels/lodviz/pkg/errors"
)

// Field binds a table column to a visual channel.
type Field struct {
	Name string        `json:"name" toml:"name"`
	Type data.DataType `json:"type" toml:"type"`
}

// NewField returns a field for column name with the given type.
func NewField(name string, t data.DataType) Field { return Field{Name: name, Type: t} }

func Quantitative(name string) Field { return NewField(name, data.Quantitative) }
func Temporal(name string) Field     { return NewField(name, data.Temporal) }
func Nominal(name string) Field      { return NewField(name, data.Nominal) }
func Ordinal(name string) Field      { return NewField(name, data.Ordinal) }

// Encoding maps table columns to the x, y, color and size channels.
type Encoding struct {
	X     Field  `json:"x" toml:"x"`
	Y     Field  `json:"y" toml:"y"`
	Color *Field `json:"color,omitempty" toml:"color,omitempty"`
	Size  *Field `json:"size,omitempty" toml:"size,omitempty"`
}

// NewEncoding returns an encoding with only x and y set.
func NewEncoding(x, y Field) Encoding { return Encoding{X: x, Y: y} }

// WithColor returns a copy of e with a color field.
func (e Encoding) WithColor(f Field) Encoding {
	e.Color = &f
	return e
}

// WithSize returns a copy of e with a size field.
func (e Encoding) WithSize(f Field) Encoding {
	e.Size = &f
	return e
}

// WithColorOpt is WithColor when f is non-nil and a copy of e otherwise.
func (e Encoding) WithColorOpt(f *Field) Encoding {
	if f == nil {
		return e
	}
	return e.WithColor(*f)
}

// WithSizeOpt is WithSize when f is non-nil and a copy of e otherwise.
func (e Encoding) WithSizeOpt(f *Field) Encoding {
	if f == nil {
		return e
	}
	return e.WithSize(*f)
}

// Validate checks every set field name.
func (e Encoding) Validate() error {
	fields := []struct {
		channel string
		f       *Field
	}{{"x", &e.X}, {"y", &e.Y}, {"color", e.Color}, {"size", e.Size}}
	for _, c := range fields {
		if c.f == nil {
			continue
		}
		if err := errors.ValidateFieldName(c.f.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidEncoding, err, "%s channel", c.channel)
		}
	}
	return nil
}
