package rpc

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"

	"github.com/pkg/errors"
)

// Value holds a serialized JSON document, ready to be used as a Javascript literal.
//
// The zero Value is `null`.
type Value struct {
	raw []byte
}

// Valuer is implemented by types that know how to convert themselves to a Value.
// ToValue uses it in preference to the JSON encoding of the type.
type Valuer interface {
	ToStructuredValue() (Value, error)
}

// SerializationError is returned when a value can't be converted to JSON.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return "failed to serialize callback argument: " + e.Err.Error()
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

func newSerializationError(err error) error {
	var serr *SerializationError
	if errors.As(err, &serr) {
		return err
	}
	return errors.WithStack(&SerializationError{Err: err})
}

// String returns the JSON text of the value.
func (v Value) String() string {
	if len(v.raw) == 0 {
		return "null"
	}
	return string(v.raw)
}

// MarshalJSON implements json.Marshaler, so Values can be embedded in other structures.
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(v.String()), nil
}

// Null returns the `null` value.
func Null() Value { return Value{} }

// String converts a Go string to a Javascript string.
func String(s string) Value {
	return mustMarshal(s)
}

// Bool converts b to a Javascript boolean.
func Bool(b bool) Value {
	if b {
		return Value{raw: []byte("true")}
	}
	return Value{raw: []byte("false")}
}

// Int converts i to a Javascript number.
func Int(i int64) Value {
	return mustMarshal(i)
}

// Uint converts u to a Javascript number.
func Uint(u uint64) Value {
	return mustMarshal(u)
}

// Float converts f to a Javascript number. NaN and infinities have no JSON
// representation and become `null`.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	return mustMarshal(f)
}

func mustMarshal(v any) Value {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(errors.Wrapf(err, "rpc: failed to marshal %T", v))
	}
	return Value{raw: raw}
}

// ToValue converts any Go value to a Value:
//
//   - a Value is returned unchanged;
//   - a Valuer is converted with its ToStructuredValue method, except nil pointers, which are `null`;
//   - anything else is encoded with `encoding/json`.
//
// It returns a *SerializationError (wrapped with a stack trace) if the conversion fails,
// e.g. for channels or functions. Unlike Float, non-finite floats (NaN, ±Inf) are an
// error here, also when nested inside structures, since `encoding/json` rejects them.
func ToValue(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case *Value:
		if x == nil {
			return Null(), nil
		}
		return *x, nil
	case Valuer:
		if rv := reflect.ValueOf(x); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return Null(), nil
		}
		val, err := x.ToStructuredValue()
		if err != nil {
			return Value{}, newSerializationError(err)
		}
		return val, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return Value{}, newSerializationError(err)
	}
	return Value{raw: raw}, nil
}

// MustValue is like ToValue, but panics on error. Meant for values known to be serializable.
func MustValue(v any) Value {
	val, err := ToValue(v)
	if err != nil {
		panic(err)
	}
	return val
}

// RawValue validates and compacts an already encoded JSON document.
// Like `json.Marshal`, it escapes `<`, `>`, `&`, U+2028 and U+2029 inside strings, so the
// result is safe to embed in a `<script>` element.
func RawValue(data []byte) (Value, error) {
	if !json.Valid(data) {
		return Value{}, newSerializationError(errors.Errorf("invalid JSON document %q", truncate(data, 40)))
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return Value{}, newSerializationError(err)
	}
	var escaped bytes.Buffer
	json.HTMLEscape(&escaped, buf.Bytes())
	return Value{raw: escaped.Bytes()}, nil
}

func truncate(data []byte, n int) string {
	if len(data) <= n {
		return string(data)
	}
	return string(data[:n]) + "..."
}
