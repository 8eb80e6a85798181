// Package queryenc converts structured parameter records into
// application/x-www-form-urlencoded query strings. Nesting renders as bracket
// notation (parent[child][0]=value); sequences render per a configurable
// array strategy. Encoding builds an intermediate ValueTree of Fragments,
// then flattens it; neither survives the encode call.
package queryenc

import (
	"net/url"

	"golang.org/x/text/unicode/norm"
)

// Fragment is a single scalar tracked in one of two states: raw text that
// still needs percent-encoding, or text that is already encoded and must pass
// through verbatim.
type Fragment struct {
	text    string
	encoded bool
}

// NewFragment creates a Fragment holding raw text.
func NewFragment(raw string) Fragment {
	return Fragment{text: raw}
}

// NewEncodedFragment creates a Fragment whose text is already
// percent-encoded. The serializer emits it verbatim.
func NewEncodedFragment(enc string) Fragment {
	return Fragment{text: enc, encoded: true}
}

// Decoded returns the fragment's text with any percent-encoding removed.
// A malformed escape sequence in an already-encoded fragment is left as-is.
func (f Fragment) Decoded() string {
	if !f.encoded {
		return f.text
	}
	s, err := url.PathUnescape(f.text)
	if err != nil {
		return f.text
	}
	return s
}

// Equal reports whether two fragments carry the same text, compared on the
// decoded, NFC-normalized form. Two differently-escaped (or
// differently-composed) representations of the same text compare equal.
// CanonicalText is the matching map key for hash-based lookups.
func (f Fragment) Equal(other Fragment) bool {
	return f.CanonicalText() == other.CanonicalText()
}

// CanonicalText returns the decoded, NFC-normalized text of the fragment.
func (f Fragment) CanonicalText() string {
	return norm.NFC.String(f.Decoded())
}

// wire returns the percent-encoded form ready for the query string.
func (f Fragment) wire() string {
	if f.encoded {
		return f.text
	}
	return Escape(f.text)
}
