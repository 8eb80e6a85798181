package queryenc

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ListWriter collects the elements of one sequence field. How the collected
// elements land in the ValueTree is decided only at collapse time, by the
// encoder's ArrayStrategy:
//
//   - bracketed: scalar elements route through a synthetic empty-string child
//     key, which flattens to repeated key[]=. Nested sequences recurse
//     through the same synthetic key, yielding key[][]=.
//   - separator: all scalar elements, recursively through nested sequences,
//     join into one fragment with the configured separator.
//   - repeated: one fragment per element under the same key; nested
//     sequences collapse under the element's index.
//
// Keyed (object) elements always land under their element index, matching
// bracket notation such as parent[child][0].
type ListWriter struct {
	enc   *Encoder
	path  []string
	elems []listElem
}

// listElem is one collected element: exactly one field is set.
type listElem struct {
	frag *Fragment
	node *ValueTree
	list *ListWriter
}

func (l *ListWriter) scalar(text string) error {
	if !utf8.ValidString(text) {
		return &EncodingError{
			Value: text,
			Path:  append(append([]string{}, l.path...), strconv.Itoa(len(l.elems))),
		}
	}
	f := NewFragment(text)
	l.elems = append(l.elems, listElem{frag: &f})
	return nil
}

// String appends a string element.
func (l *ListWriter) String(v string) error {
	return l.scalar(v)
}

// Int appends a signed integer element.
func (l *ListWriter) Int(v int64) error {
	return l.scalar(strconv.FormatInt(v, 10))
}

// Uint appends an unsigned integer element.
func (l *ListWriter) Uint(v uint64) error {
	return l.scalar(strconv.FormatUint(v, 10))
}

// Double appends a floating-point element.
func (l *ListWriter) Double(v float64) error {
	return l.scalar(strconv.FormatFloat(v, 'g', -1, 64))
}

// Bool appends a boolean element.
func (l *ListWriter) Bool(v bool) error {
	return l.scalar(strconv.FormatBool(v))
}

// UUID appends a UUID element in canonical form.
func (l *ListWriter) UUID(id uuid.UUID) error {
	return l.scalar(id.String())
}

// Time appends a date element. Epoch and ISO strategies apply as for keyed
// fields; a custom date callback needs a key to write under, so DateCustom
// falls back to ISO 8601 inside sequences.
func (l *ListWriter) Time(t time.Time) error {
	if l.enc.dates == DateEpochSeconds {
		return l.Int(t.Unix())
	}
	return l.scalar(t.UTC().Format(time.RFC3339))
}

// Object appends a keyed element. Its fields collapse under the element's
// index in the sequence.
func (l *ListWriter) Object(v Encodable) error {
	idx := strconv.Itoa(len(l.elems))
	node := NewValueTree()
	cw := &FieldWriter{
		enc:  l.enc,
		node: node,
		path: append(append([]string{}, l.path...), idx),
	}
	if err := v.EncodeFields(cw); err != nil {
		return err
	}
	l.elems = append(l.elems, listElem{node: node})
	return nil
}

// List appends a nested sequence element.
func (l *ListWriter) List(build func(inner *ListWriter) error) error {
	inner := &ListWriter{
		enc:  l.enc,
		path: append(append([]string{}, l.path...), strconv.Itoa(len(l.elems))),
	}
	if err := build(inner); err != nil {
		return err
	}
	l.elems = append(l.elems, listElem{list: inner})
	return nil
}

// collapse attaches the collected elements to parent under key, per the
// encoder's array strategy.
func (l *ListWriter) collapse(parent *ValueTree, key string) error {
	switch l.enc.arrays {
	case ArraySeparated:
		return l.collapseSeparated(parent, key)
	case ArrayRepeated:
		return l.collapseRepeated(parent.Child(key))
	default:
		return l.collapseBracketed(parent.Child(key))
	}
}

func (l *ListWriter) collapseBracketed(node *ValueTree) error {
	for i, el := range l.elems {
		switch {
		case el.frag != nil:
			node.Child("").Append(*el.frag)
		case el.node != nil:
			// Sibling nested sequences collapse into one shared node, so a
			// fixed element index could collide with an element grafted by
			// another sequence. Take the first free index at or after i.
			node.adopt(freeIndex(node, i), el.node)
		case el.list != nil:
			if err := el.list.collapse(node, ""); err != nil {
				return err
			}
		}
	}
	return nil
}

// freeIndex returns the first decimal index key at or after i that is not
// yet a child of node.
func freeIndex(node *ValueTree, i int) string {
	for {
		key := strconv.Itoa(i)
		if _, ok := node.children[key]; !ok {
			return key
		}
		i++
	}
}

func (l *ListWriter) collapseRepeated(node *ValueTree) error {
	for i, el := range l.elems {
		switch {
		case el.frag != nil:
			node.Append(*el.frag)
		case el.node != nil:
			node.adopt(strconv.Itoa(i), el.node)
		case el.list != nil:
			if err := el.list.collapse(node, strconv.Itoa(i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *ListWriter) collapseSeparated(parent *ValueTree, key string) error {
	texts := l.flattenScalars(nil)
	if len(texts) > 0 {
		parent.Child(key).Append(NewFragment(strings.Join(texts, l.enc.separator)))
	}
	if l.hasKeyed() {
		l.adoptKeyed(parent.Child(key))
	}
	return nil
}

// adoptKeyed grafts keyed elements under their index, recursing through
// nested sequences so an object inside an inner sequence still reaches the
// wire as key[outer][inner][field].
func (l *ListWriter) adoptKeyed(node *ValueTree) {
	for i, el := range l.elems {
		switch {
		case el.node != nil:
			node.adopt(strconv.Itoa(i), el.node)
		case el.list != nil:
			if el.list.hasKeyed() {
				el.list.adoptKeyed(node.Child(strconv.Itoa(i)))
			}
		}
	}
}

// hasKeyed reports whether any element, at any nesting depth, is keyed.
func (l *ListWriter) hasKeyed() bool {
	for _, el := range l.elems {
		if el.node != nil {
			return true
		}
		if el.list != nil && el.list.hasKeyed() {
			return true
		}
	}
	return false
}

// flattenScalars collects scalar element texts in order, recursing through
// nested sequences. Keyed elements are skipped here; they collapse under
// their index instead.
func (l *ListWriter) flattenScalars(texts []string) []string {
	for _, el := range l.elems {
		switch {
		case el.frag != nil:
			texts = append(texts, el.frag.Decoded())
		case el.list != nil:
			texts = el.list.flattenScalars(texts)
		}
	}
	return texts
}
