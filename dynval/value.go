// Package dynval models arbitrary decoded JSON values as a closed tagged
// union. Query responses arrive with no schema known ahead of time; dynval
// gives every cell a concrete tag that consumers switch over exhaustively
// instead of probing an open `any`.
package dynval

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

// Value is a sealed interface representing one decoded JSON value.
// Only Null, Bool, Int, Uint, Double, String, Array, Object, and Empty
// implement it. Values are immutable once constructed.
type Value interface {
	dynValue() // Sealed - only these types implement it
}

// Null represents a JSON null.
// Distinct from Empty: null is a value the server sent; Empty is no value at all.
type Null struct{}

func (Null) dynValue() {}

// MarshalJSON implements json.Marshaler for Null.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// Bool represents a JSON boolean.
type Bool bool

func (Bool) dynValue() {}

// Int represents a JSON number that parses losslessly as a signed 64-bit
// integer. The decoder probes Int before Double, so `42` always tags as Int.
type Int int64

func (Int) dynValue() {}

// Uint represents a JSON number that overflows int64 but fits uint64.
type Uint uint64

func (Uint) dynValue() {}

// Double represents a JSON number with a fractional or exponent part, or one
// outside both integer ranges.
type Double float64

func (Double) dynValue() {}

// String represents a JSON string.
type String string

func (String) dynValue() {}

// Array represents a JSON array of Values.
type Array []Value

func (Array) dynValue() {}

// Object represents a JSON object mapping string keys to Values.
type Object map[string]Value

func (Object) dynValue() {}

// Empty is the unit tag for the absence of any value. It is never produced by
// decoding JSON; it exists so that "no value" and "JSON null" stay distinct.
type Empty struct{}

func (Empty) dynValue() {}

// NewString creates a String value.
func NewString(s string) String {
	return String(s)
}

// NewInt creates an Int value.
func NewInt(n int64) Int {
	return Int(n)
}

// NewUint creates a Uint value.
func NewUint(n uint64) Uint {
	return Uint(n)
}

// NewDouble creates a Double value.
func NewDouble(f float64) Double {
	return Double(f)
}

// NewBool creates a Bool value.
func NewBool(b bool) Bool {
	return Bool(b)
}

// NewArray creates an Array from values.
func NewArray(vals ...Value) Array {
	return Array(vals)
}

// FromPtr wraps the pointee as-is, or returns Empty when the pointer is nil.
// This is the only constructor that produces Empty.
func FromPtr[V Value](p *V) Value {
	if p == nil {
		return Empty{}
	}
	return *p
}

// SortedKeys returns the object's keys in lexicographic order.
// Object is a map; iterate via SortedKeys wherever output must be stable.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Equal reports whether two Values are equal: tags must match and the wrapped
// native values must be equal, recursively for Array and Object. Values of
// different tags are never equal, even when textually similar: Int(1),
// String("1"), and Bool(true) are three mutually unequal values.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case Null:
		_, ok := b.(Null)
		return ok
	case Empty:
		_, ok := b.(Empty)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Uint:
		bv, ok := b.(Uint)
		return ok && av == bv
	case Double:
		bv, ok := b.(Double)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Object:
		bv, ok := b.(Object)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, ae := range av {
			be, ok := bv[k]
			if !ok || !Equal(ae, be) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Marshal renders a Value back to JSON bytes. Object keys are emitted in
// sorted order so output is deterministic. Empty has no JSON form and
// marshals as null.
func Marshal(v Value) ([]byte, error) {
	switch val := v.(type) {
	case Null, Empty:
		return []byte("null"), nil
	case Bool:
		return strconv.AppendBool(nil, bool(val)), nil
	case Int:
		return strconv.AppendInt(nil, int64(val), 10), nil
	case Uint:
		return strconv.AppendUint(nil, uint64(val), 10), nil
	case Double:
		return json.Marshal(float64(val))
	case String:
		return json.Marshal(string(val))
	case Array:
		return marshalArray(val)
	case Object:
		return marshalObject(val)
	default:
		return nil, fmt.Errorf("unknown Value type: %T", v)
	}
}

func marshalArray(arr Array) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		elemBytes, err := Marshal(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(elemBytes)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func marshalObject(obj Object) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range obj.SortedKeys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		valBytes, err := Marshal(obj[k])
		if err != nil {
			return nil, fmt.Errorf("marshal value for key %q: %w", k, err)
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
