package result

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/swift-glide/questdb-go/dynval"
)

// Row maps column names to decoded cell values for one dataset row. Rows are
// transient: projection builds one, hands it to the record materializer, and
// discards it.
type Row map[string]dynval.Value

// Value returns the raw cell value for a column.
func (r Row) Value(name string) (dynval.Value, bool) {
	v, ok := r[name]
	return v, ok
}

func (r Row) cell(name string) (dynval.Value, error) {
	v, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("column %q: not present", name)
	}
	return v, nil
}

// String returns a string-tagged cell. Any other tag is an error; there is
// no cross-tag coercion.
func (r Row) String(name string) (string, error) {
	v, err := r.cell(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(dynval.String)
	if !ok {
		return "", fmt.Errorf("column %q: %T is not a string", name, v)
	}
	return string(s), nil
}

// Int returns a signed-integer cell. Uint cells within int64 range also
// qualify; the wire does not distinguish them below the overflow boundary.
func (r Row) Int(name string) (int64, error) {
	v, err := r.cell(name)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case dynval.Int:
		return int64(n), nil
	case dynval.Uint:
		if uint64(n) > math.MaxInt64 {
			return 0, fmt.Errorf("column %q: %d overflows int64", name, uint64(n))
		}
		return int64(n), nil
	default:
		return 0, fmt.Errorf("column %q: %T is not an integer", name, v)
	}
}

// Uint returns an unsigned-integer cell. Non-negative Int cells qualify.
func (r Row) Uint(name string) (uint64, error) {
	v, err := r.cell(name)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case dynval.Uint:
		return uint64(n), nil
	case dynval.Int:
		if n < 0 {
			return 0, fmt.Errorf("column %q: %d is negative", name, int64(n))
		}
		return uint64(n), nil
	default:
		return 0, fmt.Errorf("column %q: %T is not an integer", name, v)
	}
}

// Double returns a floating-point cell. Integer-tagged cells qualify: a
// double column whose value happens to be whole arrives as an integer on the
// wire.
func (r Row) Double(name string) (float64, error) {
	v, err := r.cell(name)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case dynval.Double:
		return float64(n), nil
	case dynval.Int:
		return float64(int64(n)), nil
	case dynval.Uint:
		return float64(uint64(n)), nil
	default:
		return 0, fmt.Errorf("column %q: %T is not a number", name, v)
	}
}

// Bool returns a boolean cell.
func (r Row) Bool(name string) (bool, error) {
	v, err := r.cell(name)
	if err != nil {
		return false, err
	}
	b, ok := v.(dynval.Bool)
	if !ok {
		return false, fmt.Errorf("column %q: %T is not a boolean", name, v)
	}
	return bool(b), nil
}

// Time returns a timestamp cell. Timestamps arrive as ISO 8601 strings.
func (r Row) Time(name string) (time.Time, error) {
	s, err := r.String(name)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("column %q: %v", name, err)
	}
	return t, nil
}

// UUID returns a UUID cell, parsed from its string form.
func (r Row) UUID(name string) (uuid.UUID, error) {
	s, err := r.String(name)
	if err != nil {
		return uuid.UUID{}, err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("column %q: %v", name, err)
	}
	return id, nil
}

// OptString returns a string cell, or nil when the cell is null.
func (r Row) OptString(name string) (*string, error) {
	if r.isNull(name) {
		return nil, nil
	}
	s, err := r.String(name)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// OptInt returns a signed-integer cell, or nil when the cell is null.
func (r Row) OptInt(name string) (*int64, error) {
	if r.isNull(name) {
		return nil, nil
	}
	n, err := r.Int(name)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// OptDouble returns a floating-point cell, or nil when the cell is null.
func (r Row) OptDouble(name string) (*float64, error) {
	if r.isNull(name) {
		return nil, nil
	}
	f, err := r.Double(name)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// OptTime returns a timestamp cell, or nil when the cell is null.
func (r Row) OptTime(name string) (*time.Time, error) {
	if r.isNull(name) {
		return nil, nil
	}
	t, err := r.Time(name)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r Row) isNull(name string) bool {
	v, ok := r[name]
	if !ok {
		return false
	}
	_, isNull := v.(dynval.Null)
	return isNull
}
