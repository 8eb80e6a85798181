package queryenc

import (
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// FieldWriter is the visitor handed to an Encodable's EncodeFields. Each
// typed method attaches one field to the ValueTree under construction.
// Optional variants skip nil pointers entirely: no fragment, no child, no
// trace of the key.
type FieldWriter struct {
	enc  *Encoder
	node *ValueTree
	path []string
}

func (w *FieldWriter) leaf(key, text string) error {
	f, err := w.fragment(key, text)
	if err != nil {
		return err
	}
	w.node.Child(key).Append(f)
	return nil
}

func (w *FieldWriter) fragment(key, text string) (Fragment, error) {
	if !utf8.ValidString(text) {
		return Fragment{}, &EncodingError{Value: text, Path: w.childPath(key)}
	}
	return NewFragment(text), nil
}

func (w *FieldWriter) childPath(key string) []string {
	path := make([]string, 0, len(w.path)+1)
	path = append(path, w.path...)
	return append(path, key)
}

// String writes a string field.
func (w *FieldWriter) String(key, v string) error {
	return w.leaf(key, v)
}

// Int writes a signed integer field.
func (w *FieldWriter) Int(key string, v int64) error {
	return w.leaf(key, strconv.FormatInt(v, 10))
}

// Uint writes an unsigned integer field.
func (w *FieldWriter) Uint(key string, v uint64) error {
	return w.leaf(key, strconv.FormatUint(v, 10))
}

// Double writes a floating-point field.
func (w *FieldWriter) Double(key string, v float64) error {
	return w.leaf(key, strconv.FormatFloat(v, 'g', -1, 64))
}

// Bool writes a boolean field.
func (w *FieldWriter) Bool(key string, v bool) error {
	return w.leaf(key, strconv.FormatBool(v))
}

// UUID writes a UUID field in canonical 8-4-4-4-12 form.
func (w *FieldWriter) UUID(key string, id uuid.UUID) error {
	return w.leaf(key, id.String())
}

// Time writes a date field per the encoder's date strategy.
func (w *FieldWriter) Time(key string, t time.Time) error {
	switch w.enc.dates {
	case DateISO8601:
		return w.leaf(key, t.UTC().Format(time.RFC3339))
	case DateCustom:
		if w.enc.dateFunc == nil {
			return w.leaf(key, t.UTC().Format(time.RFC3339))
		}
		return w.enc.dateFunc(key, t, w)
	default:
		return w.Int(key, t.Unix())
	}
}

// Encoded writes a field whose value is already percent-encoded. The
// serializer emits it verbatim.
func (w *FieldWriter) Encoded(key, v string) error {
	w.node.Child(key).Append(NewEncodedFragment(v))
	return nil
}

// Bare writes a keyless scalar at the current level. At the top level it
// serializes without a key or "=".
func (w *FieldWriter) Bare(v string) error {
	if !utf8.ValidString(v) {
		return &EncodingError{Value: v, Path: w.path}
	}
	w.node.Append(NewFragment(v))
	return nil
}

// Object recurses into a nested record, attaching its fields as a named
// child. An object that writes no fields leaves no trace.
func (w *FieldWriter) Object(key string, v Encodable) error {
	cw := &FieldWriter{enc: w.enc, node: w.node.Child(key), path: w.childPath(key)}
	return v.EncodeFields(cw)
}

// List writes a sequence field. Elements are collected through the
// ListWriter and collapsed per the encoder's array strategy.
func (w *FieldWriter) List(key string, build func(l *ListWriter) error) error {
	lw := &ListWriter{enc: w.enc, path: w.childPath(key)}
	if err := build(lw); err != nil {
		return err
	}
	return lw.collapse(w.node, key)
}

// Strings writes a sequence of strings.
func (w *FieldWriter) Strings(key string, vs []string) error {
	return w.List(key, func(l *ListWriter) error {
		for _, v := range vs {
			if err := l.String(v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Ints writes a sequence of signed integers.
func (w *FieldWriter) Ints(key string, vs []int64) error {
	return w.List(key, func(l *ListWriter) error {
		for _, v := range vs {
			if err := l.Int(v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Doubles writes a sequence of floating-point numbers.
func (w *FieldWriter) Doubles(key string, vs []float64) error {
	return w.List(key, func(l *ListWriter) error {
		for _, v := range vs {
			if err := l.Double(v); err != nil {
				return err
			}
		}
		return nil
	})
}

// OptString writes a string field, or nothing when v is nil.
func (w *FieldWriter) OptString(key string, v *string) error {
	if v == nil {
		return nil
	}
	return w.String(key, *v)
}

// OptInt writes a signed integer field, or nothing when v is nil.
func (w *FieldWriter) OptInt(key string, v *int64) error {
	if v == nil {
		return nil
	}
	return w.Int(key, *v)
}

// OptUint writes an unsigned integer field, or nothing when v is nil.
func (w *FieldWriter) OptUint(key string, v *uint64) error {
	if v == nil {
		return nil
	}
	return w.Uint(key, *v)
}

// OptDouble writes a floating-point field, or nothing when v is nil.
func (w *FieldWriter) OptDouble(key string, v *float64) error {
	if v == nil {
		return nil
	}
	return w.Double(key, *v)
}

// OptBool writes a boolean field, or nothing when v is nil.
func (w *FieldWriter) OptBool(key string, v *bool) error {
	if v == nil {
		return nil
	}
	return w.Bool(key, *v)
}

// OptTime writes a date field, or nothing when v is nil.
func (w *FieldWriter) OptTime(key string, v *time.Time) error {
	if v == nil {
		return nil
	}
	return w.Time(key, *v)
}

// OptUUID writes a UUID field, or nothing when v is nil.
func (w *FieldWriter) OptUUID(key string, v *uuid.UUID) error {
	if v == nil {
		return nil
	}
	return w.UUID(key, *v)
}
