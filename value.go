// FILE: bbconfig/value.go
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
	KindFloat
	KindList
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a configuration value: a boolean, integer, float, string or an ordered
// list of such values. The zero Value is the empty string.
type Value struct {
	kind Kind
	s    string
	b    bool
	i    int64
	f    float64
	list []Value
}

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// IntValue returns an integer Value.
func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }

// FloatValue returns a float Value.
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }

// ListValue returns a list Value holding a copy of items.
func ListValue(items ...Value) Value {
	list := make([]Value, len(items))
	copy(list, items)
	return Value{kind: KindList, list: list}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// AsString returns the string held by v, or ErrTypeMismatch.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", v.mismatch(KindString)
	}
	return v.s, nil
}

// AsBool returns the boolean held by v, or ErrTypeMismatch.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, v.mismatch(KindBool)
	}
	return v.b, nil
}

// AsInt returns the integer held by v, or ErrTypeMismatch.
func (v Value) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, v.mismatch(KindInt)
	}
	return v.i, nil
}

// AsFloat returns the float held by v. Integers widen to float64; any other kind
// yields ErrTypeMismatch.
func (v Value) AsFloat() (float64, error) {
	switch v.kind {
	case KindFloat:
		return v.f, nil
	case KindInt:
		return float64(v.i), nil
	default:
		return 0, v.mismatch(KindFloat)
	}
}

// AsList returns a copy of the items held by v, or ErrTypeMismatch.
func (v Value) AsList() ([]Value, error) {
	if v.kind != KindList {
		return nil, v.mismatch(KindList)
	}
	list := make([]Value, len(v.list))
	copy(list, v.list)
	return list, nil
}

func (v Value) mismatch(want Kind) error {
	return fmt.Errorf("%w: want %s, have %s (%s)", ErrTypeMismatch, want, v.kind, v.String())
}

// String returns the text form used when v is substituted into a placeholder.
// Coercing the result yields v again for every scalar kind.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return strings.Join(parts, ", ")
	default:
		return v.s
	}
}

// Interface returns v as a plain Go value: string, bool, int64, float64 or []any.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Interface()
		}
		return out
	default:
		return v.s
	}
}

// Equal reports whether v and other hold the same kind and value.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f || (math.IsNaN(v.f) && math.IsNaN(other.f))
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	default:
		return v.s == other.s
	}
}

// MarshalJSON encodes v for the shared snapshot. Floats always carry a fractional
// part so that they decode as floats; NaN and infinities become strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindBool:
		return json.Marshal(v.b)
	case KindInt:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return json.Marshal(formatFloat(v.f))
		}
		return []byte(formatFloat(v.f)), nil
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		return json.Marshal(v.s)
	}
}

// UnmarshalJSON decodes a snapshot entry. Numbers become Int when they are
// integral literals and Float otherwise.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ValueOf converts a Go value into a Value. Strings are kept as raw strings;
// they are only coerced when read through the store.
func ValueOf(x any) (Value, error) {
	switch t := x.(type) {
	case Value:
		return t, nil
	case string:
		return StringValue(t), nil
	case bool:
		return BoolValue(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return IntValue(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("%w: json number %q: %w", ErrUnsupportedType, t.String(), err)
		}
		return FloatValue(f), nil
	case []string:
		items := make([]Value, len(t))
		for i, s := range t {
			items[i] = StringValue(s)
		}
		return Value{kind: KindList, list: items}, nil
	case []Value:
		return ListValue(t...), nil
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			parsed, err := ValueOf(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = parsed
		}
		return Value{kind: KindList, list: items}, nil
	case nil:
		return Value{}, fmt.Errorf("%w: nil", ErrUnsupportedType)
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return IntValue(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Value{}, fmt.Errorf("%w: unsigned integer %d overflows int64", ErrUnsupportedType, u)
		}
		return IntValue(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return FloatValue(rv.Float()), nil
	}

	if s, ok := x.(fmt.Stringer); ok {
		return StringValue(s.String()), nil
	}
	return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedType, x)
}

// Coerce converts text into a typed scalar. Rules, first match wins:
// "True"/"False" become booleans, ASCII digit runs become integers, decimal
// numbers become floats, anything else stays a (trimmed) string.
func Coerce(s string) Value {
	s = strings.TrimSpace(s)
	switch s {
	case "True":
		return BoolValue(true)
	case "False":
		return BoolValue(false)
	}
	if isDigits(s) {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return IntValue(i)
		}
	}
	if s != "" && !strings.ContainsAny(s, "xX_") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return FloatValue(f)
		}
	}
	return StringValue(s)
}

// CoerceValue coerces string values and returns every other kind unchanged.
func CoerceValue(v Value) Value {
	if v.kind != KindString {
		return v
	}
	return Coerce(v.s)
}

// CoerceList splits s on commas and coerces each trimmed piece. Text without a
// comma is coerced as a single scalar.
func CoerceList(s string) Value {
	if !strings.Contains(s, ",") {
		return Coerce(s)
	}
	pieces := strings.Split(s, ",")
	items := make([]Value, len(pieces))
	for i, piece := range pieces {
		items[i] = Coerce(piece)
	}
	return Value{kind: KindList, list: items}
}

// formatFloat renders f so that Coerce parses it back as a float.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
