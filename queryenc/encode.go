package queryenc

import (
	"fmt"
	"strings"
	"time"
)

// ArrayStrategy selects how sequence fields render on the wire.
// The strategy is an encoder-wide setting, independent of nesting depth.
type ArrayStrategy int

const (
	// ArrayBracketed renders a[]=1&a[]=2.
	ArrayBracketed ArrayStrategy = iota

	// ArraySeparated joins elements with the configured separator: a=1,2.
	ArraySeparated

	// ArrayRepeated repeats the key per element: a=1&a=2.
	ArrayRepeated
)

// String implements fmt.Stringer for flag parsing and diagnostics.
func (s ArrayStrategy) String() string {
	switch s {
	case ArrayBracketed:
		return "bracketed"
	case ArraySeparated:
		return "separator"
	case ArrayRepeated:
		return "repeated"
	default:
		return fmt.Sprintf("ArrayStrategy(%d)", int(s))
	}
}

// ParseArrayStrategy converts a strategy name to its ArrayStrategy.
func ParseArrayStrategy(name string) (ArrayStrategy, error) {
	switch name {
	case "bracketed":
		return ArrayBracketed, nil
	case "separator":
		return ArraySeparated, nil
	case "repeated":
		return ArrayRepeated, nil
	default:
		return 0, fmt.Errorf("unknown array strategy %q: must be bracketed, separator, or repeated", name)
	}
}

// DateEncoding selects how time.Time leaves render. Fixed at encoder
// construction.
type DateEncoding int

const (
	// DateEpochSeconds renders seconds since the Unix epoch as a number.
	DateEpochSeconds DateEncoding = iota

	// DateISO8601 renders RFC 3339 text in UTC.
	DateISO8601

	// DateCustom delegates to a DateFormatFunc, which recurses into a fresh
	// sub-writer and may emit any shape under the field's key.
	DateCustom
)

// ParseDateEncoding converts an encoding name to its DateEncoding.
func ParseDateEncoding(name string) (DateEncoding, error) {
	switch name {
	case "epoch":
		return DateEpochSeconds, nil
	case "iso8601":
		return DateISO8601, nil
	default:
		return 0, fmt.Errorf("unknown date encoding %q: must be epoch or iso8601", name)
	}
}

// DateFormatFunc encodes a date under key using the supplied writer. The
// writer is positioned at the field's parent, so the callback decides whether
// the date becomes one scalar or a nested structure.
type DateFormatFunc func(key string, t time.Time, w *FieldWriter) error

// Encodable is the capability an encodable parameter record implements.
// EncodeFields walks the record's fields through the writer; the encoder
// never inspects the record itself.
type Encodable interface {
	EncodeFields(w *FieldWriter) error
}

// EncodingError reports a leaf whose text form cannot be percent-encoded.
// It aborts the entire encode; there is no partial output.
type EncodingError struct {
	// Value is the offending leaf's text form.
	Value string

	// Path locates the leaf, outermost key first.
	Path []string
}

// Error implements the error interface.
func (e *EncodingError) Error() string {
	return fmt.Sprintf("cannot percent-encode value %q at %s", e.Value, strings.Join(e.Path, "."))
}

// Encoder converts Encodable parameter records into percent-encoded query
// strings. An Encoder is immutable after construction and safe for
// concurrent use; each Encode call builds and discards its own ValueTree.
type Encoder struct {
	arrays    ArrayStrategy
	separator string
	dates     DateEncoding
	dateFunc  DateFormatFunc
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithArrayStrategy sets the sequence rendering strategy.
func WithArrayStrategy(s ArrayStrategy) Option {
	return func(e *Encoder) { e.arrays = s }
}

// WithSeparator sets the element separator used by ArraySeparated.
func WithSeparator(sep string) Option {
	return func(e *Encoder) { e.separator = sep }
}

// WithDateEncoding sets the date rendering strategy.
func WithDateEncoding(d DateEncoding) Option {
	return func(e *Encoder) { e.dates = d }
}

// WithDateFormat installs a custom date callback and selects DateCustom.
func WithDateFormat(fn DateFormatFunc) Option {
	return func(e *Encoder) {
		e.dates = DateCustom
		e.dateFunc = fn
	}
}

// NewEncoder creates an Encoder. Defaults: bracketed arrays, "," separator,
// epoch-seconds dates.
func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{
		arrays:    ArrayBracketed,
		separator: ",",
		dates:     DateEpochSeconds,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode traverses params and returns the flattened query string.
// A leaf that cannot be percent-encoded aborts with *EncodingError.
func (e *Encoder) Encode(params Encodable) (string, error) {
	root := NewValueTree()
	w := &FieldWriter{enc: e, node: root}
	if err := params.EncodeFields(w); err != nil {
		return "", err
	}
	return Serialize(root), nil
}
