package dynval

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DecodeError reports a JSON position that matched none of the Value tags.
// It aborts the whole decode; there are no partial results.
type DecodeError struct {
	// Path locates the failing position, e.g. "rows[3].total".
	Path string

	// Reason describes why no tag matched.
	Reason string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decode: %s", e.Reason)
	}
	return fmt.Sprintf("decode at %s: %s", e.Path, e.Reason)
}

// Decode parses JSON bytes into a Value with no prior knowledge of shape.
// Numbers are kept as json.Number so that integers never degrade to float64
// before probing.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &DecodeError{Reason: err.Error()}
	}

	return fromJSON(raw, "$")
}

// FromJSON converts an already-parsed JSON tree (the `any` shapes produced by
// encoding/json with UseNumber) into a Value. Callers who hold raw bytes
// should prefer Decode, which guarantees lossless number handling.
func FromJSON(raw any) (Value, error) {
	return fromJSON(raw, "$")
}

// fromJSON probes the candidate tags in a fixed order, first match wins:
// null, bool, signed integer, unsigned integer, double, string, array,
// object. Integer-before-double is load-bearing: a number that parses
// losslessly as an integer must tag as Int, never Double.
func fromJSON(raw any, path string) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(v), nil
	case json.Number:
		return numberValue(v, path)
	case float64:
		// Trees parsed without UseNumber carry every number as float64.
		// Re-probe through the string form to preserve the integer tags.
		return numberValue(json.Number(strconv.FormatFloat(v, 'g', -1, 64)), path)
	case int:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint64:
		return Uint(v), nil
	case string:
		return String(v), nil
	case []any:
		arr := make(Array, len(v))
		for i, elem := range v {
			ev, err := fromJSON(elem, path+"["+strconv.Itoa(i)+"]")
			if err != nil {
				return nil, err
			}
			arr[i] = ev
		}
		return arr, nil
	case map[string]any:
		obj := make(Object, len(v))
		for k, elem := range v {
			ev, err := fromJSON(elem, path+"."+k)
			if err != nil {
				return nil, err
			}
			obj[k] = ev
		}
		return obj, nil
	default:
		return nil, &DecodeError{
			Path:   path,
			Reason: fmt.Sprintf("unsupported value of type %T", raw),
		}
	}
}

func numberValue(n json.Number, path string) (Value, error) {
	s := string(n)
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(i), nil
		}
		if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return Uint(u), nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return nil, &DecodeError{Path: path, Reason: fmt.Sprintf("unparseable number %q", s)}
	}
	return Double(f), nil
}
