package cli

import (
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/swift-glide/questdb-go/queryenc"
)

// ParamDoc wraps a parsed YAML mapping as an encodable parameter record.
// YAML is the CLI's dynamic input; its scalar set is closed, so the bridge
// to the encoder is a plain type switch, keyed field by keyed field. Null
// fields are skipped entirely, matching the encoder's absent-field rule.
type ParamDoc struct {
	fields map[string]any
}

// LoadParams reads a YAML parameter document from path.
func LoadParams(path string) (*ParamDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load params: %w", err)
	}
	return ParseParams(data)
}

// ParseParams parses a YAML parameter document. The top level must be a
// mapping.
func ParseParams(data []byte) (*ParamDoc, error) {
	var fields map[string]any
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parse params: %w", err)
	}
	return &ParamDoc{fields: fields}, nil
}

// EncodeFields implements queryenc.Encodable.
func (d *ParamDoc) EncodeFields(w *queryenc.FieldWriter) error {
	keys := make([]string, 0, len(d.fields))
	for k := range d.fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := writeField(w, k, d.fields[k]); err != nil {
			return err
		}
	}
	return nil
}

func writeField(w *queryenc.FieldWriter, key string, v any) error {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return w.String(key, val)
	case bool:
		return w.Bool(key, val)
	case int:
		return w.Int(key, int64(val))
	case int64:
		return w.Int(key, val)
	case uint64:
		return w.Uint(key, val)
	case float64:
		return w.Double(key, val)
	case time.Time:
		return w.Time(key, val)
	case map[string]any:
		return w.Object(key, &ParamDoc{fields: val})
	case []any:
		return w.List(key, func(l *queryenc.ListWriter) error {
			return writeElems(l, val)
		})
	default:
		return fmt.Errorf("parameter %q: unsupported YAML value of type %T", key, v)
	}
}

func writeElems(l *queryenc.ListWriter, elems []any) error {
	for _, e := range elems {
		if err := writeElem(l, e); err != nil {
			return err
		}
	}
	return nil
}

func writeElem(l *queryenc.ListWriter, v any) error {
	switch val := v.(type) {
	case string:
		return l.String(val)
	case bool:
		return l.Bool(val)
	case int:
		return l.Int(int64(val))
	case int64:
		return l.Int(val)
	case uint64:
		return l.Uint(val)
	case float64:
		return l.Double(val)
	case time.Time:
		return l.Time(val)
	case map[string]any:
		return l.Object(&ParamDoc{fields: val})
	case []any:
		return l.List(func(inner *queryenc.ListWriter) error {
			return writeElems(inner, val)
		})
	default:
		return fmt.Errorf("unsupported YAML sequence element of type %T", v)
	}
}
