package queryenc

import "strings"

// Escape percent-encodes s for use in a query-string key or value. The
// allowlist is the standard query-safe set minus the structural characters
// `? & = [ ] ; +`. Hex digits are upper-case. The input must be valid UTF-8;
// leaf writers validate before any Fragment is created.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isQuerySafe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0xf])
	}
	return b.String()
}

const upperhex = "0123456789ABCDEF"

func isQuerySafe(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-' || c == '.' || c == '_' || c == '~':
		return true
	case strings.IndexByte("!$'()*,:@/", c) >= 0:
		return true
	default:
		return false
	}
}

// Serialize flattens a ValueTree rooted at the given path into the final
// query string. The first path segment renders verbatim (percent-encoded);
// every later segment wraps as [segment]. Fragments at path length zero are
// emitted bare, without a key. Child results are serialized recursively and
// joined with "&".
func Serialize(t *ValueTree, path ...string) string {
	var parts []string
	key := renderKey(path)
	for _, f := range t.values {
		if key == "" {
			parts = append(parts, f.wire())
		} else {
			parts = append(parts, key+"="+f.wire())
		}
	}
	for _, k := range t.sortedChildKeys() {
		child := t.children[k]
		if child.IsEmpty() {
			continue
		}
		if s := Serialize(child, append(path, k)...); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "&")
}

func renderKey(path []string) string {
	if len(path) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(Escape(path[0]))
	for _, seg := range path[1:] {
		b.WriteByte('[')
		b.WriteString(Escape(seg))
		b.WriteByte(']')
	}
	return b.String()
}
