package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Kind identifies the variant held by a FieldValue.
type Kind int

const (
	KindNull Kind = iota
	KindNumeric
	KindText
	KindTimestamp
	KindBool
)

var kindNames = [...]string{
	KindNull:      "null",
	KindNumeric:   "numeric",
	KindText:      "text",
	KindTimestamp: "timestamp",
	KindBool:      "bool",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// NullKey is the grouping key of null and missing cells.
const NullKey = "__null__"

// FieldValue is a single table cell. The zero value is null.
type FieldValue struct {
	kind Kind
	num  float64
	text string
}

// Numeric returns a numeric cell.
func Numeric(v float64) FieldValue { return FieldValue{kind: KindNumeric, num: v} }

// Text returns a text cell.
func Text(s string) FieldValue { return FieldValue{kind: KindText, text: s} }

// Timestamp returns a timestamp cell holding seconds since the Unix epoch.
func Timestamp(sec float64) FieldValue { return FieldValue{kind: KindTimestamp, num: sec} }

// Time returns a timestamp cell for t.
func Time(t time.Time) FieldValue {
	return Timestamp(float64(t.Unix()) + float64(t.Nanosecond())/1e9)
}

// Bool returns a boolean cell.
func Bool(b bool) FieldValue {
	v := FieldValue{kind: KindBool}
	if b {
		v.num = 1
	}
	return v
}

// Null returns a null cell.
func Null() FieldValue { return FieldValue{} }

// Value converts a Go value into a cell. Integers and floats become
// numeric, strings text, bools bool, time.Time a timestamp, and nil null.
// Other types are formatted as text with %v.
func Value(v any) FieldValue {
	switch x := v.(type) {
	case nil:
		return Null()
	case FieldValue:
		return x
	case float64:
		return Numeric(x)
	case float32:
		return Numeric(float64(x))
	case int:
		return Numeric(float64(x))
	case int32:
		return Numeric(float64(x))
	case int64:
		return Numeric(float64(x))
	case uint:
		return Numeric(float64(x))
	case uint64:
		return Numeric(float64(x))
	case string:
		return Text(x)
	case bool:
		return Bool(x)
	case time.Time:
		return Time(x)
	}
	return Text(fmt.Sprintf("%v", v))
}

// Kind returns the variant held by v.
func (v FieldValue) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v FieldValue) IsNull() bool { return v.kind == KindNull }

// AsFloat widens numeric, timestamp and bool (0 or 1) cells to float64.
func (v FieldValue) AsFloat() (float64, bool) {
	switch v.kind {
	case KindNumeric, KindTimestamp, KindBool:
		return v.num, true
	}
	return 0, false
}

// AsString returns the text of a text cell.
func (v FieldValue) AsString() (string, bool) {
	if v.kind == KindText {
		return v.text, true
	}
	return "", false
}

// AsTimestamp returns the seconds of a timestamp or numeric cell.
func (v FieldValue) AsTimestamp() (float64, bool) {
	switch v.kind {
	case KindNumeric, KindTimestamp:
		return v.num, true
	}
	return 0, false
}

// AsBool returns the value of a bool cell.
func (v FieldValue) AsBool() (bool, bool) {
	if v.kind == KindBool {
		return v.num != 0, true
	}
	return false, false
}

// Key returns the grouping key of v.
func (v FieldValue) Key() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumeric, KindTimestamp:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.num != 0)
	}
	return NullKey
}

// String formats v for display. Null prints as "null".
func (v FieldValue) String() string {
	if v.kind == KindNull {
		return "null"
	}
	return v.Key()
}

type taggedValue struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

// MarshalJSON encodes v as {"type": kind, "value": v}.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	var raw any
	switch v.kind {
	case KindNumeric, KindTimestamp:
		raw = v.num
	case KindText:
		raw = v.text
	case KindBool:
		raw = v.num != 0
	}
	return json.Marshal(struct {
		Type  string `json:"type"`
		Value any    `json:"value"`
	}{v.kind.String(), raw})
}

// UnmarshalJSON decodes a tagged value or a plain JSON scalar.
func (v *FieldValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var t taggedValue
		if err := json.Unmarshal(b, &t); err != nil {
			return err
		}
		return v.fromTagged(t)
	}

	var plain any
	if err := json.Unmarshal(b, &plain); err != nil {
		return err
	}
	switch x := plain.(type) {
	case nil:
		*v = Null()
	case float64:
		*v = Numeric(x)
	case string:
		*v = Text(x)
	case bool:
		*v = Bool(x)
	default:
		return fmt.Errorf("unsupported cell value %s", b)
	}
	return nil
}

func (v *FieldValue) fromTagged(t taggedValue) error {
	switch t.Type {
	case "null":
		*v = Null()
		return nil
	case "numeric", "timestamp":
		var f float64
		if err := json.Unmarshal(t.Value, &f); err != nil {
			return fmt.Errorf("%s cell: %w", t.Type, err)
		}
		if t.Type == "timestamp" {
			*v = Timestamp(f)
		} else {
			*v = Numeric(f)
		}
	case "text":
		var s string
		if err := json.Unmarshal(t.Value, &s); err != nil {
			return fmt.Errorf("text cell: %w", err)
		}
		*v = Text(s)
	case "bool":
		var bv bool
		if err := json.Unmarshal(t.Value, &bv); err != nil {
			return fmt.Errorf("bool cell: %w", err)
		}
		*v = Bool(bv)
	default:
		return fmt.Errorf("unknown cell type %q", t.Type)
	}
	return nil
}
